// Package envelope implements the version-pluggable event-envelope codecs.
// An envelope is the CloudEvents-style metadata wrapper carried in message
// headers; codecs translate between envelope attributes and transport
// metadata without touching the payload bytes.
package envelope

// Attribute identifiers shared by every envelope spec version.
const (
	AttrID              = "id"
	AttrSource          = "source"
	AttrSpecVersion     = "specversion"
	AttrType            = "type"
	AttrTime            = "time"
	AttrSubject         = "subject"
	AttrDataContentType = "datacontenttype"
	AttrDataSchema      = "dataschema"
	AttrSchemaURL       = "schemaurl"
)

// Metadata keys used to carry envelope attributes on a transport message.
const (
	KeyID              = "ce-id"
	KeySource          = "ce-source"
	KeySpecVersion     = "ce-specversion"
	KeyType            = "ce-type"
	KeyTime            = "ce-time"
	KeySubject         = "ce-subject"
	KeyDataContentType = "content-type"
	KeyDataSchema      = "ce-dataschema"
	KeySchemaURL       = "ce-schemaurl"
)

// CloudEventTypeKey is the reserved filter key the resolver injects for
// event-typed resources. Consumers match it against the envelope type
// attribute of inbound messages.
const CloudEventTypeKey = KeyType

// Supported spec versions.
const (
	SpecVersionV1  = "1.0"
	SpecVersionV03 = "0.3"

	DefaultSpecVersion = SpecVersionV1
)

// Attribute describes one envelope context attribute and the metadata key it
// travels under.
type Attribute struct {
	ID       string
	Key      string
	Required bool
}

// Spec is the canonical attribute table for one envelope version.
type Spec struct {
	version string
	attrs   []Attribute
	byID    map[string]Attribute
}

func newSpec(version string, attrs ...Attribute) *Spec {
	byID := make(map[string]Attribute, len(attrs))
	for _, a := range attrs {
		byID[a.ID] = a
	}
	return &Spec{version: version, attrs: attrs, byID: byID}
}

// Version returns the spec version identifier, e.g. "1.0".
func (s *Spec) Version() string { return s.version }

// Attributes returns the attribute table in declaration order.
func (s *Spec) Attributes() []Attribute {
	out := make([]Attribute, len(s.attrs))
	copy(out, s.attrs)
	return out
}

// Attribute looks up an attribute by its identifier.
func (s *Spec) Attribute(id string) (Attribute, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// MetadataKey maps an attribute identifier to its metadata key. Unknown
// identifiers pass through unchanged so opaque keys keep working.
func (s *Spec) MetadataKey(id string) string {
	if a, ok := s.byID[id]; ok {
		return a.Key
	}
	return id
}

var specV1 = newSpec(SpecVersionV1,
	Attribute{ID: AttrID, Key: KeyID, Required: true},
	Attribute{ID: AttrSource, Key: KeySource, Required: true},
	Attribute{ID: AttrSpecVersion, Key: KeySpecVersion, Required: true},
	Attribute{ID: AttrType, Key: KeyType, Required: true},
	Attribute{ID: AttrTime, Key: KeyTime},
	Attribute{ID: AttrSubject, Key: KeySubject},
	Attribute{ID: AttrDataContentType, Key: KeyDataContentType},
	Attribute{ID: AttrDataSchema, Key: KeyDataSchema},
)

var specV03 = newSpec(SpecVersionV03,
	Attribute{ID: AttrID, Key: KeyID, Required: true},
	Attribute{ID: AttrSource, Key: KeySource, Required: true},
	Attribute{ID: AttrSpecVersion, Key: KeySpecVersion, Required: true},
	Attribute{ID: AttrType, Key: KeyType, Required: true},
	Attribute{ID: AttrTime, Key: KeyTime},
	Attribute{ID: AttrSubject, Key: KeySubject},
	Attribute{ID: AttrDataContentType, Key: KeyDataContentType},
	Attribute{ID: AttrSchemaURL, Key: KeySchemaURL},
)
