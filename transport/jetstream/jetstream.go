// Package jetstream provides a NATS JetStream transport for eventbind with
// at-least-once delivery and durable consumers.
package jetstream

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/nats-io/nats.go"

	"github.com/drblury/eventbind/transport"
)

// TransportName is the name used to register this transport.
const TransportName = "nats-jetstream"

const (
	// DefaultStreamName is used when the resource does not imply a stream.
	DefaultStreamName = "EVENTBIND"

	// DefaultAckWait is the default ack wait timeout.
	DefaultAckWait = 30 * time.Second

	headerUUID = "Eventbind-Uuid"
)

// ConnectFactory allows overriding the NATS connection for testing.
var ConnectFactory = func(url string, opts ...nats.Option) (*nats.Conn, error) {
	return nats.Connect(url, opts...)
}

func init() {
	transport.RegisterWithCapabilities(TransportName, Build, transport.NATSJetStreamCapabilities)
}

// Build creates a new JetStream transport bound to the resolved resource.
func Build(ctx context.Context, cfg transport.Config, binding transport.BindingConfig, res transport.Resource, logger watermill.LoggerAdapter) (transport.Transport, error) {
	url := res.TargetURL()
	if url == "" {
		url = cfg.GetNATSURL()
	}

	t, err := New(Config{
		URL:        url,
		StreamName: streamNameFor(res),
		Durable:    durableNameFor(res),
	}, logger)
	if err != nil {
		return transport.Transport{}, err
	}

	return transport.Transport{
		Publisher:  t,
		Subscriber: t,
	}, nil
}

func streamNameFor(res transport.Resource) string {
	name := res.LogicalName()
	if name == "" {
		return DefaultStreamName
	}
	return DefaultStreamName + "_" + sanitize(name)
}

func durableNameFor(res transport.Resource) string {
	name := res.LogicalName()
	if name == "" {
		return "eventbind"
	}
	return "eventbind_" + sanitize(name)
}

func sanitize(name string) string {
	return strings.NewReplacer(".", "_", "*", "_", ">", "_", "/", "_").Replace(strings.ToUpper(name))
}

// Capabilities returns the capabilities of this transport.
func Capabilities() transport.Capabilities {
	return transport.NATSJetStreamCapabilities
}

// Config holds JetStream-specific configuration.
type Config struct {
	// URL is the NATS server URL.
	URL string

	// StreamName is the JetStream stream to publish and subscribe on.
	StreamName string

	// Durable is the durable consumer name.
	Durable string

	// AckWait is the duration to wait for acknowledgment.
	AckWait time.Duration
}

func (c Config) withDefaults() Config {
	if c.StreamName == "" {
		c.StreamName = DefaultStreamName
	}
	if c.Durable == "" {
		c.Durable = "eventbind"
	}
	if c.AckWait <= 0 {
		c.AckWait = DefaultAckWait
	}
	return c
}

// Transport implements message.Publisher and message.Subscriber on top of a
// JetStream stream.
type Transport struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	cfg    Config
	logger watermill.LoggerAdapter

	closing chan struct{}
	closed  bool
	mu      sync.Mutex
	wg      sync.WaitGroup
}

// New connects to the server and ensures the configured stream exists.
func New(cfg Config, logger watermill.LoggerAdapter) (*Transport, error) {
	cfg = cfg.withDefaults()

	conn, err := ConnectFactory(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("eventbind: jetstream connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("eventbind: jetstream context: %w", err)
	}

	if _, err := js.AddStream(&nats.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{cfg.StreamName + ".>"},
	}); err != nil && err != nats.ErrStreamNameAlreadyInUse {
		conn.Close()
		return nil, fmt.Errorf("eventbind: jetstream stream %q: %w", cfg.StreamName, err)
	}

	return &Transport{
		conn:    conn,
		js:      js,
		cfg:     cfg,
		logger:  logger,
		closing: make(chan struct{}),
	}, nil
}

func (t *Transport) subject(topic string) string {
	return t.cfg.StreamName + "." + topic
}

// Publish sends messages onto the stream subject derived from the topic.
func (t *Transport) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		natsMsg := nats.NewMsg(t.subject(topic))
		natsMsg.Data = msg.Payload
		natsMsg.Header.Set(headerUUID, msg.UUID)
		for k, v := range msg.Metadata {
			natsMsg.Header.Set(k, v)
		}

		if _, err := t.js.PublishMsg(natsMsg); err != nil {
			return fmt.Errorf("eventbind: jetstream publish %q: %w", topic, err)
		}
	}
	return nil
}

// Subscribe delivers stream messages for the topic on the returned channel.
// Messages are acknowledged or redelivered based on the watermill ack/nack.
func (t *Transport) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	out := make(chan *message.Message)

	sub, err := t.js.Subscribe(t.subject(topic), func(natsMsg *nats.Msg) {
		t.handleMessage(ctx, natsMsg, out)
	}, nats.Durable(t.cfg.Durable), nats.ManualAck(), nats.AckWait(t.cfg.AckWait))
	if err != nil {
		return nil, fmt.Errorf("eventbind: jetstream subscribe %q: %w", topic, err)
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		select {
		case <-ctx.Done():
		case <-t.closing:
		}
		if err := sub.Unsubscribe(); err != nil {
			t.logger.Error("Failed to unsubscribe", err, watermill.LogFields{"topic": topic})
		}
		close(out)
	}()

	return out, nil
}

func (t *Transport) handleMessage(ctx context.Context, natsMsg *nats.Msg, out chan<- *message.Message) {
	uuid := natsMsg.Header.Get(headerUUID)
	msg := message.NewMessage(uuid, natsMsg.Data)
	for k := range natsMsg.Header {
		if k == headerUUID {
			continue
		}
		msg.Metadata[k] = natsMsg.Header.Get(k)
	}
	msg.SetContext(ctx)

	select {
	case out <- msg:
	case <-ctx.Done():
		return
	case <-t.closing:
		return
	}

	select {
	case <-msg.Acked():
		if err := natsMsg.Ack(); err != nil {
			t.logger.Error("Failed to ack", err, nil)
		}
	case <-msg.Nacked():
		if err := natsMsg.Nak(); err != nil {
			t.logger.Error("Failed to nack", err, nil)
		}
	case <-ctx.Done():
	case <-t.closing:
	}
}

// Close unsubscribes everything and drops the connection.
func (t *Transport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	close(t.closing)
	t.mu.Unlock()

	t.wg.Wait()
	t.conn.Close()
	return nil
}
