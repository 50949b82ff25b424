package runtime

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/drblury/eventbind/internal/runtime/pipeline"
	"github.com/drblury/eventbind/internal/runtime/resource"
)

// tracerStage wraps a stage in an OpenTelemetry span named after the
// bound resource. Skipped messages are not recorded as errors.
func tracerStage(role string, res *resource.Definition, next pipeline.Stage) pipeline.Stage {
	tracer := otel.Tracer("eventbind")
	return func(ctx context.Context, msg *message.Message) error {
		spanCtx, span := tracer.Start(ctx, "ProcessMessage")
		defer span.End()

		span.SetAttributes(
			attribute.String("message.uuid", msg.UUID),
			attribute.String("resource.type", string(res.Type)),
			attribute.String("resource.name", res.Name),
			attribute.String("binding.role", role),
		)

		err := next(spanCtx, msg)
		if err != nil && !errors.Is(err, pipeline.ErrSkip) {
			span.RecordError(err)
		}
		return err
	}
}
