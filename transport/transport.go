// Package transport defines the core interfaces and types for eventbind
// transports. Each transport implementation (kafka, nats, aws, etc.) lives in
// its own sub-package and registers itself with the transport registry under
// its transport-kind name.
package transport

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// RoutingHeaderHost is the transport routing header stripped from outgoing
// messages so transport addressing never leaks into the payload envelope.
const RoutingHeaderHost = "Host"

// Transport combines the publisher and subscriber pair produced by a builder.
// Only the side needed by the binding has to be non-nil.
type Transport struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
}

// Resource is the transport-facing view of a resolved resource definition.
// *resource.Definition satisfies it; keeping an interface here means custom
// transports never import the resolver internals.
type Resource interface {
	// TransportName returns the transport kind used for registry lookup.
	TransportName() string

	// LogicalName returns the resolved logical resource name.
	LogicalName() string

	// TargetURL returns the network coordinate the transport connects to.
	TargetURL() string

	// ReplyTarget returns the resource's default reply destination.
	ReplyTarget() string
}

// BindingConfig is the transport configuration derived by the binder for one
// binding attempt.
type BindingConfig struct {
	// SpecVersion is the envelope spec version of the selected codec.
	SpecVersion string

	// RemoveEnvelopeHeaders strips envelope headers from reply messages when
	// the binding does not reply with a full envelope.
	RemoveEnvelopeHeaders bool

	// Reply is the resolved reply destination, if any.
	Reply string
}

// Builder is the function signature for creating a transport bound to one
// resolved resource. Builders must not perform message I/O; connections may
// be opened lazily on first use where the underlying client allows it.
type Builder func(ctx context.Context, cfg Config, binding BindingConfig, res Resource, logger watermill.LoggerAdapter) (Transport, error)

// Config provides the connection-level settings transports need. The
// interface keeps transports independent of the full config package.
type Config interface {
	// Kafka
	GetKafkaBrokers() []string
	GetKafkaConsumerGroup() string

	// RabbitMQ
	GetRabbitMQURL() string

	// NATS (core and JetStream)
	GetNATSURL() string

	// HTTP
	GetHTTPServerAddress() string

	// AWS
	GetAWSRegion() string
	GetAWSAccountID() string
	GetAWSAccessKeyID() string
	GetAWSSecretAccessKey() string
	GetAWSEndpoint() string
}

// CapabilitiesProvider is implemented by transports that can report their
// capabilities.
type CapabilitiesProvider interface {
	Capabilities() Capabilities
}
