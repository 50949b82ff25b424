package runtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configpkg "github.com/drblury/eventbind/internal/runtime/config"
	"github.com/drblury/eventbind/internal/runtime/envelope"
	"github.com/drblury/eventbind/internal/runtime/pipeline"
	"github.com/drblury/eventbind/internal/runtime/resource"
	transportpkg "github.com/drblury/eventbind/transport"
)

func newTestConsumer(t *testing.T, cfg *configpkg.Config, def *resource.Definition, processor pipeline.Stage) (*Consumer, *mockSubscriber) {
	t.Helper()

	sub := newMockSubscriber()
	ep, err := testEndpoint(def.Type, def.Name, cfg, Dependencies{
		Resolver:   testResolver(def),
		Transports: testTransport(newMockPublisher(), sub),
	})
	require.NoError(t, err)

	consumer, err := ep.CreateConsumer(context.Background(), processor)
	require.NoError(t, err)
	return consumer, sub
}

func waitAcked(t *testing.T, msg *message.Message) {
	t.Helper()
	select {
	case <-msg.Acked():
	case <-time.After(time.Second):
		t.Fatalf("message %s was not acked in time", msg.UUID)
	}
}

func waitNacked(t *testing.T, msg *message.Message) {
	t.Helper()
	select {
	case <-msg.Nacked():
	case <-time.After(time.Second):
		t.Fatalf("message %s was not nacked in time", msg.UUID)
	}
}

func TestConsumerProcessesAndAcks(t *testing.T) {
	var got []string
	consumer, sub := newTestConsumer(t, nil, channelSource("orders"),
		func(ctx context.Context, msg *message.Message) error {
			got = append(got, string(msg.Payload))
			return nil
		})

	require.NoError(t, consumer.Start(context.Background()))
	defer consumer.Close()

	msg := message.NewMessage("msg-1", []byte("payload"))
	sub.deliver(msg)

	waitAcked(t, msg)
	assert.Equal(t, []string{"payload"}, got)
	assert.Equal(t, []string{"orders"}, sub.topics)
}

func TestConsumerSkipsFilteredMessages(t *testing.T) {
	processed := false
	consumer, sub := newTestConsumer(t, &configpkg.Config{
		Filters: map[string]string{"filter.subject": "order-42"},
	}, channelSource("orders"),
		func(ctx context.Context, msg *message.Message) error {
			processed = true
			return nil
		})

	require.NoError(t, consumer.Start(context.Background()))
	defer consumer.Close()

	miss := message.NewMessage("msg-1", nil)
	miss.Metadata.Set(envelope.KeySubject, "order-7")
	sub.deliver(miss)
	waitAcked(t, miss)
	assert.False(t, processed)

	hit := message.NewMessage("msg-2", nil)
	hit.Metadata.Set(envelope.KeySubject, "order-42")
	sub.deliver(hit)
	waitAcked(t, hit)
	assert.True(t, processed)
}

func TestConsumerNativeFilteringSkipsClientEnforcement(t *testing.T) {
	sub := newMockSubscriber()
	caps := transportpkg.ChannelCapabilities
	caps.SupportsNativeFiltering = true

	reg := transportpkg.NewRegistry()
	reg.RegisterWithCapabilities("channel",
		func(ctx context.Context, cfg transportpkg.Config, binding transportpkg.BindingConfig, res transportpkg.Resource, logger watermill.LoggerAdapter) (transportpkg.Transport, error) {
			return transportpkg.Transport{Subscriber: sub}, nil
		}, caps)

	ep, err := testEndpoint(resource.TypeChannel, "orders", &configpkg.Config{
		Filters: map[string]string{"filter.subject": "order-42"},
	}, Dependencies{
		Resolver:   testResolver(channelSource("orders")),
		Transports: reg,
	})
	require.NoError(t, err)

	processed := false
	consumer, err := ep.CreateConsumer(context.Background(),
		func(ctx context.Context, msg *message.Message) error {
			processed = true
			return nil
		})
	require.NoError(t, err)

	require.NoError(t, consumer.Start(context.Background()))
	defer consumer.Close()

	// The broker is trusted to have matched the filter already, so a message
	// without the attribute still reaches the processor.
	msg := message.NewMessage("msg-1", nil)
	sub.deliver(msg)
	waitAcked(t, msg)
	assert.True(t, processed)
}

func TestConsumerNacksOnProcessorError(t *testing.T) {
	consumer, sub := newTestConsumer(t, nil, channelSource("orders"),
		func(ctx context.Context, msg *message.Message) error {
			return errors.New("downstream unavailable")
		})

	require.NoError(t, consumer.Start(context.Background()))
	defer consumer.Close()

	msg := message.NewMessage("msg-1", nil)
	sub.deliver(msg)
	waitNacked(t, msg)
}

func TestConsumerEventTypeFiltering(t *testing.T) {
	def := &resource.Definition{
		Type:          resource.TypeEvent,
		Name:          resource.DefaultName,
		Role:          resource.RoleSource,
		TransportKind: "channel",
	}

	var seen []string
	sub := newMockSubscriber()
	ep, err := testEndpoint(resource.TypeEvent, "orders.created", nil, Dependencies{
		Resolver:   testResolver(def),
		Transports: testTransport(newMockPublisher(), sub),
	})
	require.NoError(t, err)

	consumer, err := ep.CreateConsumer(context.Background(),
		func(ctx context.Context, msg *message.Message) error {
			seen = append(seen, msg.Metadata[envelope.KeyType])
			return nil
		})
	require.NoError(t, err)

	require.NoError(t, consumer.Start(context.Background()))
	defer consumer.Close()

	// The subscription is addressed by the resolved event type.
	assert.Equal(t, []string{"orders.created"}, sub.topics)

	other := message.NewMessage("msg-1", nil)
	other.Metadata.Set(envelope.KeyType, "payments.settled")
	sub.deliver(other)
	waitAcked(t, other)

	match := message.NewMessage("msg-2", nil)
	match.Metadata.Set(envelope.KeyType, "orders.created")
	sub.deliver(match)
	waitAcked(t, match)

	assert.Equal(t, []string{"orders.created"}, seen)
}

func TestConsumerReplyWithCloudEventStampsEnvelope(t *testing.T) {
	consumer, sub := newTestConsumer(t, &configpkg.Config{
		Source:              "gateway",
		ReplyWithCloudEvent: true,
	}, channelSource("orders"), noopStage)

	require.NoError(t, consumer.Start(context.Background()))
	defer consumer.Close()

	msg := message.NewMessage("msg-1", nil)
	sub.deliver(msg)
	waitAcked(t, msg)

	// The producer-side stage ran after the processor.
	assert.Equal(t, "1.0", msg.Metadata[envelope.KeySpecVersion])
	assert.Equal(t, "gateway", msg.Metadata[envelope.KeySource])
}

func TestConsumerStartIsIdempotent(t *testing.T) {
	consumer, sub := newTestConsumer(t, nil, channelSource("orders"), noopStage)

	require.NoError(t, consumer.Start(context.Background()))
	require.NoError(t, consumer.Start(context.Background()))
	defer consumer.Close()

	assert.Len(t, sub.topics, 1)
}

func TestConsumerCloseStopsSubscription(t *testing.T) {
	consumer, sub := newTestConsumer(t, nil, channelSource("orders"), noopStage)

	require.NoError(t, consumer.Start(context.Background()))
	require.NoError(t, consumer.Close())
	assert.True(t, sub.closed)

	// Closing again is safe.
	require.NoError(t, consumer.Close())
}

func TestConsumerResource(t *testing.T) {
	consumer, _ := newTestConsumer(t, nil, channelSource("orders"), noopStage)
	defer consumer.Close()

	assert.Equal(t, "orders", consumer.Resource().Name)
	assert.Equal(t, resource.RoleSource, consumer.Resource().Role)
}
