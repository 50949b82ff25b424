package runtime

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	configpkg "github.com/drblury/eventbind/internal/runtime/config"
	"github.com/drblury/eventbind/internal/runtime/resolver"
	"github.com/drblury/eventbind/internal/runtime/resource"
	transportpkg "github.com/drblury/eventbind/transport"
)

type mockPublisher struct {
	mu        sync.Mutex
	published map[string][]*message.Message
	closed    bool
}

func newMockPublisher() *mockPublisher {
	return &mockPublisher{published: make(map[string][]*message.Message)}
}

func (p *mockPublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published[topic] = append(p.published[topic], messages...)
	return nil
}

func (p *mockPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *mockPublisher) messages(topic string) []*message.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*message.Message(nil), p.published[topic]...)
}

type mockSubscriber struct {
	mu     sync.Mutex
	ch     chan *message.Message
	topics []string
	closed bool
}

func newMockSubscriber() *mockSubscriber {
	return &mockSubscriber{ch: make(chan *message.Message, 16)}
}

// Subscribe mirrors Watermill subscriber semantics: the returned channel is
// closed when the context is cancelled or the subscriber is closed.
func (s *mockSubscriber) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	s.mu.Lock()
	s.topics = append(s.topics, topic)
	s.mu.Unlock()

	out := make(chan *message.Message)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-s.ch:
				if !ok {
					return
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (s *mockSubscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	return nil
}

func (s *mockSubscriber) deliver(msg *message.Message) {
	s.ch <- msg
}

// testTransport registers a builder backed by the given mocks under the
// "channel" transport kind on a fresh registry.
func testTransport(pub *mockPublisher, sub *mockSubscriber) *transportpkg.Registry {
	reg := transportpkg.NewRegistry()
	reg.RegisterWithCapabilities("channel",
		func(ctx context.Context, cfg transportpkg.Config, binding transportpkg.BindingConfig, res transportpkg.Resource, logger watermill.LoggerAdapter) (transportpkg.Transport, error) {
			return transportpkg.Transport{Publisher: pub, Subscriber: sub}, nil
		},
		transportpkg.ChannelCapabilities)
	return reg
}

func testResolver(defs ...*resource.Definition) *resolver.Registry {
	reg := resolver.NewRegistry()
	reg.Register(defs...)
	return reg
}

func noopStage(ctx context.Context, msg *message.Message) error { return nil }

func testEndpoint(t resource.Type, typeID string, cfg *configpkg.Config, deps Dependencies) (*Endpoint, error) {
	if cfg == nil {
		cfg = &configpkg.Config{}
	}
	return NewEndpoint(t, typeID, cfg, nil, deps)
}
