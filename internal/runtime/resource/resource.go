// Package resource defines the declarative description of an addressable
// backend endpoint and the matching rules used during resolution. Canonical
// definitions held in a registry are never mutated; every resolution works on
// a Clone.
package resource

import "fmt"

// Type is the kind of routable resource a definition describes.
type Type string

const (
	TypeChannel  Type = "channel"
	TypeEndpoint Type = "endpoint"
	TypeEvent    Type = "event"
)

// ParseType converts a string into a Type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeChannel, TypeEndpoint, TypeEvent:
		return Type(s), nil
	default:
		return "", fmt.Errorf("eventbind: unknown resource type %q", s)
	}
}

// EndpointRole states whether a binding consumes (source) or produces (sink)
// events. Role must match exactly during resolution; there is no fallback
// across roles.
type EndpointRole string

const (
	RoleSource EndpointRole = "source"
	RoleSink   EndpointRole = "sink"
)

// ParseEndpointRole converts a string into an EndpointRole.
func ParseEndpointRole(s string) (EndpointRole, error) {
	switch EndpointRole(s) {
	case RoleSource, RoleSink:
		return EndpointRole(s), nil
	default:
		return "", fmt.Errorf("eventbind: unknown endpoint role %q", s)
	}
}

// DefaultName is the reserved logical name used by the fallback resolution
// step when no name-specific definition exists.
const DefaultName = "default"

// Reserved configuration key prefixes. Keys carrying one of these prefixes
// have it stripped before being stored on a resolved definition.
const (
	FilterPrefix     = "filter."
	CeOverridePrefix = "ce.override."
)

// DefaultTransportKind is assumed when a definition does not name a transport.
const DefaultTransportKind = "http"

// Definition describes one routable backend resource. The JSON shape matches
// the environment document consumed by config.ParseEnvironment.
type Definition struct {
	Type Type   `json:"type"`
	Name string `json:"name"`

	Role EndpointRole `json:"endpointKind"`

	// Identity of the backing platform object, used as match criteria.
	ObjectAPIVersion string `json:"objectApiVersion,omitempty"`
	ObjectKind       string `json:"objectKind,omitempty"`
	ObjectName       string `json:"objectName,omitempty"`

	// TransportKind selects the transport builder that handles this resource.
	TransportKind string `json:"transport,omitempty"`

	// URL is the network coordinate the transport connects to.
	URL string `json:"url,omitempty"`

	// Reply is the default reply destination for request/reply exchanges.
	Reply string `json:"reply,omitempty"`

	// CloudEventType is set only on resolved copies of event-typed resources.
	CloudEventType string `json:"ceType,omitempty"`

	// Filters and CeOverrides are layered onto resolved copies; the canonical
	// definition keeps them empty.
	Filters     *FilterSet        `json:"-"`
	CeOverrides map[string]string `json:"-"`
}

// Matches reports whether the definition answers to the given type and
// logical name.
func (d *Definition) Matches(t Type, name string) bool {
	return d.Type == t && d.Name == name
}

// Clone returns a deep copy of the definition. Filters and overrides are
// copied so the returned definition can be mutated freely.
func (d *Definition) Clone() *Definition {
	clone := *d
	clone.Filters = d.Filters.Clone()
	if d.CeOverrides != nil {
		clone.CeOverrides = make(map[string]string, len(d.CeOverrides))
		for k, v := range d.CeOverrides {
			clone.CeOverrides[k] = v
		}
	}
	return &clone
}

// CloneWithoutFilters returns a copy of the definition with the layered
// filters and overrides dropped, for transports that enforce filters
// server-side.
func (d *Definition) CloneWithoutFilters() *Definition {
	clone := *d
	clone.Filters = nil
	clone.CeOverrides = nil
	return &clone
}

// AddFilter records a filter entry, initialising the set on first use.
func (d *Definition) AddFilter(key, value string) {
	if d.Filters == nil {
		d.Filters = NewFilterSet()
	}
	d.Filters.Set(key, value)
}

// AddCeOverride records a cloud-event attribute override.
func (d *Definition) AddCeOverride(key, value string) {
	if d.CeOverrides == nil {
		d.CeOverrides = make(map[string]string)
	}
	d.CeOverrides[key] = value
}

// Transport view accessors. These satisfy the transport.Resource interface
// without the transport package depending on this one.

// TransportName returns the transport kind, defaulting to http.
func (d *Definition) TransportName() string {
	if d.TransportKind == "" {
		return DefaultTransportKind
	}
	return d.TransportKind
}

// LogicalName returns the logical resource name.
func (d *Definition) LogicalName() string { return d.Name }

// TargetURL returns the network coordinate of the backing resource.
func (d *Definition) TargetURL() string { return d.URL }

// ReplyTarget returns the default reply destination.
func (d *Definition) ReplyTarget() string { return d.Reply }

func (d *Definition) String() string {
	return fmt.Sprintf("%s/%s/%s", d.Type, d.Role, d.Name)
}

// Criteria narrows candidate definitions by the identity of the backing
// platform object. A zero-valued field matches any candidate.
type Criteria struct {
	APIVersion string
	Kind       string
	Name       string
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.APIVersion == "" && c.Kind == "" && c.Name == ""
}

// Match reports whether the definition satisfies every set criterion.
func (c Criteria) Match(d *Definition) bool {
	if c.APIVersion != "" && d.ObjectAPIVersion != c.APIVersion {
		return false
	}
	if c.Kind != "" && d.ObjectKind != c.Kind {
		return false
	}
	if c.Name != "" && d.ObjectName != c.Name {
		return false
	}
	return true
}
