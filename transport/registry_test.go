package transport

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilder(tr Transport, err error) Builder {
	return func(ctx context.Context, cfg Config, binding BindingConfig, res Resource, logger watermill.LoggerAdapter) (Transport, error) {
		return tr, err
	}
}

func TestRegistryRegisterAndBuild(t *testing.T) {
	reg := NewRegistry()
	want := Transport{Publisher: &mockPublisher{}}
	reg.Register("fake", testBuilder(want, nil))

	got, err := reg.Build(context.Background(), &mockConfig{}, BindingConfig{},
		&mockResource{transportName: "fake"}, watermill.NopLogger{})

	require.NoError(t, err)
	assert.Equal(t, want.Publisher, got.Publisher)
}

func TestRegistryBuildUnknownTransport(t *testing.T) {
	reg := NewRegistry()
	reg.Register("known", testBuilder(Transport{}, nil))

	_, err := reg.Build(context.Background(), &mockConfig{}, BindingConfig{},
		&mockResource{transportName: "mystery"}, watermill.NopLogger{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"mystery"`)
	assert.Contains(t, err.Error(), "known")
}

func TestRegistryBuildNilResource(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Build(context.Background(), &mockConfig{}, BindingConfig{}, nil, watermill.NopLogger{})
	assert.Error(t, err)
}

func TestRegistryBuildPropagatesBuilderError(t *testing.T) {
	reg := NewRegistry()
	boom := errors.New("connect failed")
	reg.Register("fake", testBuilder(Transport{}, boom))

	_, err := reg.Build(context.Background(), &mockConfig{}, BindingConfig{},
		&mockResource{transportName: "fake"}, watermill.NopLogger{})
	assert.ErrorIs(t, err, boom)
}

func TestRegistryCapabilities(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterWithCapabilities("fake", testBuilder(Transport{}, nil), Capabilities{
		Name:        "fake",
		SupportsAck: true,
	})

	caps := reg.GetCapabilities("fake")
	assert.True(t, caps.SupportsAck)

	// Unknown transports report a zero capability set carrying the name.
	unknown := reg.GetCapabilities("mystery")
	assert.Equal(t, "mystery", unknown.Name)
	assert.False(t, unknown.SupportsAck)
}

func TestRegistryNamesAndHas(t *testing.T) {
	reg := NewRegistry()
	reg.Register("a", testBuilder(Transport{}, nil))
	reg.Register("b", testBuilder(Transport{}, nil))

	assert.ElementsMatch(t, []string{"a", "b"}, reg.Names())
	assert.True(t, reg.Has("a"))
	assert.False(t, reg.Has("c"))
}

func TestDefaultRegistryHelpers(t *testing.T) {
	original := DefaultRegistry
	defer func() { DefaultRegistry = original }()
	DefaultRegistry = NewRegistry()

	Register("fake", testBuilder(Transport{Publisher: &mockPublisher{}}, nil))
	assert.True(t, DefaultRegistry.Has("fake"))

	tr, err := Build(context.Background(), &mockConfig{}, BindingConfig{},
		&mockResource{transportName: "fake"}, watermill.NopLogger{})
	require.NoError(t, err)
	assert.NotNil(t, tr.Publisher)

	RegisterWithCapabilities("caps", testBuilder(Transport{}, nil), Capabilities{Name: "caps", SupportsNack: true})
	assert.True(t, GetCapabilities("caps").SupportsNack)
}
