// Package pipeline defines the processing stage abstraction shared by the
// envelope codecs, the endpoint binder, and the transports. A stage transforms
// an in-flight message in place; stages never perform I/O at construction
// time.
package pipeline

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"
)

// ErrSkip signals that the current message should be acknowledged without
// running any downstream stage. Filter stages return it for messages that do
// not qualify for the binding.
var ErrSkip = errors.New("eventbind: skip message")

// Stage is one unit of message processing.
type Stage func(ctx context.Context, msg *message.Message) error

// Chain composes stages into a single stage executing strictly in order.
// Nil stages are skipped. The first error stops the chain; downstream stages
// do not run for that message.
func Chain(stages ...Stage) Stage {
	compact := make([]Stage, 0, len(stages))
	for _, s := range stages {
		if s != nil {
			compact = append(compact, s)
		}
	}
	return func(ctx context.Context, msg *message.Message) error {
		for _, s := range compact {
			if err := s(ctx, msg); err != nil {
				return err
			}
		}
		return nil
	}
}
