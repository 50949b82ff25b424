package transport

// Capabilities describes the features supported by a transport backend. The
// binder uses it to decide, among other things, how consumer handles
// acknowledge messages and whether filter enforcement has to happen
// client-side.
type Capabilities struct {
	// SupportsAck indicates the transport supports explicit acknowledgment.
	SupportsAck bool

	// SupportsNack indicates the transport supports negative acknowledgment
	// with redelivery.
	SupportsNack bool

	// SupportsOrdering indicates the transport guarantees ordering within a
	// partition or stream.
	SupportsOrdering bool

	// SupportsNativeFiltering indicates the broker can evaluate attribute
	// filters server-side. When false, resolved filters are enforced by the
	// consumer-side envelope stage only.
	SupportsNativeFiltering bool

	// SupportsReply indicates the transport can carry request/reply
	// exchanges.
	SupportsReply bool

	// MaxMessageSize is the maximum message size in bytes (0 = unknown).
	MaxMessageSize int64

	// Name is the transport-kind name.
	Name string

	// Version is the transport/driver version.
	Version string
}

// RequiresClientSideFiltering reports whether resolved filters must be
// enforced by the consumer pipeline.
func (c Capabilities) RequiresClientSideFiltering() bool {
	return !c.SupportsNativeFiltering
}

// SupportsReliableDelivery reports at-least-once delivery semantics.
func (c Capabilities) SupportsReliableDelivery() bool {
	return c.SupportsAck && c.SupportsNack
}

// Predefined capability sets for the bundled transports.
var (
	// ChannelCapabilities for the in-memory Go channel transport.
	ChannelCapabilities = Capabilities{
		Name:             "channel",
		SupportsAck:      true,
		SupportsNack:     true,
		SupportsOrdering: true,
		SupportsReply:    false,
	}

	// HTTPCapabilities for the HTTP transport.
	HTTPCapabilities = Capabilities{
		Name:          "http",
		SupportsReply: true,
	}

	// KafkaCapabilities for the Apache Kafka transport.
	KafkaCapabilities = Capabilities{
		Name:             "kafka",
		SupportsAck:      true,
		SupportsOrdering: true,
		MaxMessageSize:   1048576,
	}

	// NATSCapabilities for the NATS Core transport.
	NATSCapabilities = Capabilities{
		Name:                    "nats",
		SupportsNativeFiltering: true, // subject-based
		SupportsReply:           true,
		MaxMessageSize:          1048576,
	}

	// NATSJetStreamCapabilities for the NATS JetStream transport.
	NATSJetStreamCapabilities = Capabilities{
		Name:                    "nats-jetstream",
		SupportsAck:             true,
		SupportsNack:            true,
		SupportsOrdering:        true,
		SupportsNativeFiltering: true,
		MaxMessageSize:          1048576,
	}

	// RabbitMQCapabilities for the RabbitMQ/AMQP transport.
	RabbitMQCapabilities = Capabilities{
		Name:             "rabbitmq",
		SupportsAck:      true,
		SupportsNack:     true,
		SupportsOrdering: true,
		SupportsReply:    true,
	}

	// AWSCapabilities for the AWS SNS/SQS transport.
	AWSCapabilities = Capabilities{
		Name:                    "aws",
		SupportsAck:             true,
		SupportsNack:            true,
		SupportsNativeFiltering: true, // SNS filter policies
		MaxMessageSize:          262144,
	}
)
