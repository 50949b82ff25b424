package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainRunsStagesInOrder(t *testing.T) {
	var order []string
	stage := func(name string) Stage {
		return func(ctx context.Context, msg *message.Message) error {
			order = append(order, name)
			return nil
		}
	}

	chain := Chain(stage("first"), stage("second"), stage("third"))
	err := chain(context.Background(), message.NewMessage("id", nil))

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestChainStopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	reached := false

	chain := Chain(
		func(ctx context.Context, msg *message.Message) error { return boom },
		func(ctx context.Context, msg *message.Message) error {
			reached = true
			return nil
		},
	)

	err := chain(context.Background(), message.NewMessage("id", nil))
	assert.ErrorIs(t, err, boom)
	assert.False(t, reached)
}

func TestChainSkipsNilStages(t *testing.T) {
	ran := false
	chain := Chain(nil, func(ctx context.Context, msg *message.Message) error {
		ran = true
		return nil
	}, nil)

	require.NoError(t, chain(context.Background(), message.NewMessage("id", nil)))
	assert.True(t, ran)
}

func TestChainPropagatesSkip(t *testing.T) {
	downstream := false
	chain := Chain(
		func(ctx context.Context, msg *message.Message) error { return ErrSkip },
		func(ctx context.Context, msg *message.Message) error {
			downstream = true
			return nil
		},
	)

	err := chain(context.Background(), message.NewMessage("id", nil))
	assert.ErrorIs(t, err, ErrSkip)
	assert.False(t, downstream)
}

func TestEmptyChainSucceeds(t *testing.T) {
	chain := Chain()
	assert.NoError(t, chain(context.Background(), message.NewMessage("id", nil)))
}
