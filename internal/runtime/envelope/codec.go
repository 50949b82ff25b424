package envelope

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	idspkg "github.com/drblury/eventbind/internal/runtime/ids"
	"github.com/drblury/eventbind/internal/runtime/pipeline"
	"github.com/drblury/eventbind/internal/runtime/resource"
)

// Options carries the binding-level values codec stages need. The zero value
// is usable; defaults are applied at stage construction.
type Options struct {
	// Source is stamped as the envelope source attribute when the message does
	// not carry one.
	Source string

	// DefaultEventType is used when neither the message nor the resolved
	// resource names an event type.
	DefaultEventType string

	// Now overrides the clock, for tests.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Source == "" {
		o.Source = "eventbind"
	}
	if o.DefaultEventType == "" {
		o.DefaultEventType = "eventbind.event"
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Codec produces the envelope-processing stages for one spec version. Stage
// construction is pure; no I/O happens until a message flows through.
type Codec interface {
	// CloudEvent returns the canonical attribute spec of this codec's version.
	CloudEvent() *Spec

	// Producer returns the stage that stamps envelope attributes and applies
	// the resolved resource's attribute overrides before a message is sent.
	Producer(opts Options, res *resource.Definition) pipeline.Stage

	// Consumer returns the stage that normalises envelope attributes on an
	// inbound message and enforces the resolved resource's filters. Messages
	// that do not satisfy every filter are skipped, not failed.
	Consumer(opts Options, res *resource.Definition) pipeline.Stage
}

// UnsupportedVersionError reports a request for an envelope version with no
// registered codec.
type UnsupportedVersionError struct {
	Version string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("eventbind: unsupported envelope spec version %q", e.Version)
}

var codecs = map[string]Codec{
	SpecVersionV1:  &codec{spec: specV1},
	SpecVersionV03: &codec{spec: specV03},
}

// ForVersion returns the codec registered for the given spec version. An
// empty version selects the default.
func ForVersion(version string) (Codec, error) {
	if version == "" {
		version = DefaultSpecVersion
	}
	c, ok := codecs[version]
	if !ok {
		return nil, &UnsupportedVersionError{Version: version}
	}
	return c, nil
}

// IsSupported reports whether a codec exists for the version.
func IsSupported(version string) bool {
	if version == "" {
		return true
	}
	_, ok := codecs[version]
	return ok
}

// Versions lists the registered spec versions.
func Versions() []string {
	out := make([]string, 0, len(codecs))
	for v := range codecs {
		out = append(out, v)
	}
	return out
}

type codec struct {
	spec *Spec
}

func (c *codec) CloudEvent() *Spec { return c.spec }

func (c *codec) Producer(opts Options, res *resource.Definition) pipeline.Stage {
	opts = opts.withDefaults()
	spec := c.spec

	return func(ctx context.Context, msg *message.Message) error {
		md := ensureMetadata(msg)

		md[KeySpecVersion] = spec.Version()
		if md[KeyID] == "" {
			if msg.UUID != "" {
				md[KeyID] = msg.UUID
			} else {
				md[KeyID] = idspkg.NewULID()
			}
		}
		if md[KeySource] == "" {
			md[KeySource] = opts.Source
		}
		if md[KeyType] == "" {
			md[KeyType] = eventType(res, opts)
		}
		if md[KeyTime] == "" {
			md[KeyTime] = opts.Now().UTC().Format(time.RFC3339)
		}

		for k, v := range res.CeOverrides {
			md[spec.MetadataKey(k)] = v
		}
		return nil
	}
}

func (c *codec) Consumer(opts Options, res *resource.Definition) pipeline.Stage {
	opts = opts.withDefaults()
	spec := c.spec

	return func(ctx context.Context, msg *message.Message) error {
		md := ensureMetadata(msg)

		// Decorate plain (non-envelope) messages with the attributes the rest
		// of the pipeline relies on. The event type is left untouched so
		// type filters keep their meaning.
		if md[KeySpecVersion] == "" {
			md[KeySpecVersion] = spec.Version()
		}
		if md[KeyID] == "" {
			if msg.UUID != "" {
				md[KeyID] = msg.UUID
			} else {
				md[KeyID] = idspkg.NewULID()
			}
		}
		if md[KeySource] == "" {
			md[KeySource] = opts.Source
		}
		if md[KeyTime] == "" {
			md[KeyTime] = opts.Now().UTC().Format(time.RFC3339)
		}

		if !matchesFilters(spec, res.Filters, md) {
			return pipeline.ErrSkip
		}
		return nil
	}
}

func eventType(res *resource.Definition, opts Options) string {
	if res != nil && res.CloudEventType != "" {
		return res.CloudEventType
	}
	return opts.DefaultEventType
}

func matchesFilters(spec *Spec, filters *resource.FilterSet, md message.Metadata) bool {
	ok := true
	filters.Each(func(key, want string) bool {
		if md[spec.MetadataKey(key)] != want {
			ok = false
			return false
		}
		return true
	})
	return ok
}

func ensureMetadata(msg *message.Message) message.Metadata {
	if msg.Metadata == nil {
		msg.Metadata = message.Metadata{}
	}
	return msg.Metadata
}
