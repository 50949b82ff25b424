package runtime

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/eventbind/internal/runtime/envelope"
	errspkg "github.com/drblury/eventbind/internal/runtime/errors"
	idspkg "github.com/drblury/eventbind/internal/runtime/ids"
	loggingpkg "github.com/drblury/eventbind/internal/runtime/logging"
	metadatapkg "github.com/drblury/eventbind/internal/runtime/metadata"
	"github.com/drblury/eventbind/internal/runtime/pipeline"
	"github.com/drblury/eventbind/internal/runtime/resource"
	transportpkg "github.com/drblury/eventbind/transport"
)

// Producer is the composed handle returned by CreateProducer: the envelope
// stage runs first, the transport routing header is stripped, then the raw
// publisher sends. Safe for concurrent Send calls; ordering is the
// transport's contract.
type Producer struct {
	res       *resource.Definition
	topic     string
	stage     pipeline.Stage
	publisher message.Publisher
	logger    loggingpkg.ServiceLogger
}

// Send runs the message through the envelope stage and publishes it.
func (p *Producer) Send(ctx context.Context, msg *message.Message) error {
	if msg == nil {
		return errspkg.ErrEventPayloadRequired
	}
	if ctx != nil {
		msg.SetContext(ctx)
	}

	if err := p.stage(ctx, msg); err != nil {
		return err
	}

	// Transport addressing must not leak into the payload envelope.
	delete(msg.Metadata, transportpkg.RoutingHeaderHost)

	return p.publisher.Publish(p.topic, msg)
}

// SendPayload marshals an arbitrary payload (protobuf messages via protojson,
// everything else via JSON), wraps it in a fresh message, and sends it.
func (p *Producer) SendPayload(ctx context.Context, payload any, md metadatapkg.Metadata) error {
	if payload == nil {
		return errspkg.ErrEventPayloadRequired
	}

	data, contentType, err := envelope.MarshalData(payload)
	if err != nil {
		return err
	}

	msg := message.NewMessage(idspkg.NewULID(), data)
	msg.Metadata = metadatapkg.ToWatermill(md)
	msg.Metadata[envelope.KeyDataContentType] = contentType

	return p.Send(ctx, msg)
}

// Resource returns the resolved definition this producer is bound to.
func (p *Producer) Resource() *resource.Definition { return p.res }

// Close releases the underlying publisher.
func (p *Producer) Close() error {
	return p.publisher.Close()
}
