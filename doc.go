// Package eventbind resolves abstract endpoint addresses to concrete backend
// resources and binds them to Watermill publishers and subscribers. An endpoint
// address names a resource type (channel, endpoint, or event) and a logical
// name; the resolver matches it against a registry of resource definitions,
// falls back to a reserved "default" definition when no named one exists, and
// layers endpoint-local filters and CloudEvents attribute overrides onto the
// winning definition without mutating the registry.
//
// Endpoint is the entry point: fill Config, create an Endpoint for a resource
// type and event type ID, and call CreateProducer or CreateConsumer. Producers
// stamp outgoing messages with CloudEvents attributes for the configured spec
// version; consumers normalise incoming metadata, apply the resolved filters,
// and skip messages that do not match before invoking the processor stage.
//
// # Transports
//
// The resolved definition selects the transport by name. Seven transports ship
// out of the box:
//   - channel: In-memory Go channels for testing
//   - kafka: High-throughput streaming with consumer groups
//   - rabbitmq: AMQP-based durable queues
//   - aws: AWS SNS/SQS with LocalStack support
//   - nats: Core NATS messaging
//   - nats-jetstream: NATS JetStream with durable consumers
//   - http: Request/response messaging against the definition's URL
//
// Transports register themselves on import; blank-import the ones you need, or
// pull in all of them via the transport/transports package. Custom transports
// plug in through RegisterTransport.
//
// # Envelope versions
//
// CloudEvents attribute handling is pluggable by spec version. Versions "1.0"
// (the default) and "0.3" are built in; EnvelopeForVersion returns the codec
// for a version and Config.CloudEventsSpecVersion selects it per endpoint.
package eventbind
