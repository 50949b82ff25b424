package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	loggingpkg "github.com/drblury/eventbind/internal/runtime/logging"
	"github.com/drblury/eventbind/internal/runtime/pipeline"
	"github.com/drblury/eventbind/internal/runtime/resource"
	transportpkg "github.com/drblury/eventbind/transport"
)

// Consumer is the composed handle returned by CreateConsumer. Message
// delivery is driven by the transport subscription; the handle runs the
// pipeline once per inbound message and acknowledges based on the outcome.
// The pipeline stages are stateless, so concurrent deliveries are safe.
type Consumer struct {
	res        *resource.Definition
	topic      string
	pipeline   pipeline.Stage
	subscriber message.Subscriber
	caps       transportpkg.Capabilities
	logger     loggingpkg.ServiceLogger

	startOnce sync.Once
	closeOnce sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

// Start subscribes to the transport and begins dispatching messages through
// the pipeline. It returns once the subscription is established; processing
// continues until the context is cancelled or Close is called.
func (c *Consumer) Start(ctx context.Context) error {
	var startErr error
	c.startOnce.Do(func() {
		runCtx, cancel := context.WithCancel(ctx)

		ch, err := c.subscriber.Subscribe(runCtx, c.topic)
		if err != nil {
			cancel()
			startErr = fmt.Errorf("eventbind: subscribe %s for %s: %w", c.topic, c.res, err)
			return
		}

		c.cancel = cancel
		go c.run(ch)
	})
	return startErr
}

func (c *Consumer) run(ch <-chan *message.Message) {
	defer close(c.done)

	for msg := range ch {
		err := c.pipeline(msg.Context(), msg)
		switch {
		case err == nil:
			msg.Ack()
		case errors.Is(err, pipeline.ErrSkip):
			c.logger.Trace("Message filtered out", loggingpkg.LogFields{
				"message_uuid": msg.UUID,
				"resource":     c.res.String(),
			})
			msg.Ack()
		default:
			c.logger.Error("Message pipeline failed", err, loggingpkg.LogFields{
				"message_uuid": msg.UUID,
				"resource":     c.res.String(),
			})
			// Redelivery is the transport's contract. Without nack support,
			// the message is acknowledged so the subscription keeps moving.
			if c.caps.SupportsNack {
				msg.Nack()
			} else {
				msg.Ack()
			}
		}
	}
}

// Resource returns the resolved definition this consumer is bound to.
func (c *Consumer) Resource() *resource.Definition { return c.res }

// Close stops the subscription and waits for in-flight dispatching to end.
func (c *Consumer) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if c.cancel != nil {
			c.cancel()
			<-c.done
		}
		err = c.subscriber.Close()
	})
	return err
}
