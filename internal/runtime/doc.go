/*
Package runtime implements the endpoint binder: the glue between an abstract
endpoint address, the resource resolver, the envelope codecs, and the
transport registry.

# Architecture Overview

An Endpoint is constructed for one resource type and logical name. Binding a
producer or consumer resolves the matching resource definition, builds the
transport for that definition's transport kind, and composes the message
pipeline for the bound role.

# Package Structure

## Endpoint Binder (endpoint.go)

NewEndpoint validates the configuration and selects the envelope codec.
CreateProducer and CreateConsumer perform one resolution each and return
independent handles; neither performs message I/O during binding.

## Handles (producer.go, consumer.go)

Producer runs the envelope-encoding stage, strips the transport routing
header, and publishes. Consumer owns the subscription loop: each inbound
message runs through envelope decoding, filter enforcement, the user
processor, and optionally the reply-envelope stage; acknowledgment follows
the pipeline outcome and the transport's capabilities.

## Observability (metrics.go, stages.go)

Resolution and binding counters are exported through Prometheus; consumer
pipelines run inside an OpenTelemetry span.

# Sub-packages

  - config/: Binding configuration with validation and environment loading
  - envelope/: Version-pluggable CloudEvents attribute codecs
  - errors/: Sentinel errors
  - ids/: ULID generation for envelope IDs
  - jsoncodec/: JSON marshaling utilities
  - logging/: Logger interface and adapters
  - metadata/: Message metadata utilities
  - pipeline/: The processing stage abstraction
  - properties/: Late-bound transport option application
  - resolver/: Resource definition registry and resolution
  - resource/: Resource definitions, filters, and match criteria
*/
package runtime
