// Package resolver matches an abstract endpoint request against the union of
// registered and environment-supplied resource definitions, applies the
// fallback-to-default strategy, and layers per-binding filters and overrides
// onto a cloned copy of the winning definition.
package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/drblury/eventbind/internal/runtime/envelope"
	"github.com/drblury/eventbind/internal/runtime/resource"
)

// Request is one resolution attempt. Name is the logical resource name; the
// criteria narrow candidates by platform-object identity.
type Request struct {
	Type     resource.Type
	Role     resource.EndpointRole
	Name     string
	Criteria resource.Criteria
}

// Snapshot is the immutable view of the binding configuration captured at
// resolution time. It decouples the resolver from the config package and
// keeps concurrent resolutions from observing each other's mutations.
type Snapshot struct {
	Filters     map[string]string
	CeOverrides map[string]string
	Environment []*resource.Definition
}

// NotFoundError reports that no definition satisfied the request, even after
// the fallback to the reserved default name.
type NotFoundError struct {
	Type resource.Type
	Role resource.EndpointRole
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("eventbind: unable to find a resource definition for %s/%s/%s", e.Type, e.Role, e.Name)
}

// Resolve finds the definition answering the request and returns a resolved
// clone with filters and overrides layered in. The canonical definitions in
// the registry and the snapshot environment are never mutated.
func Resolve(reg *Registry, req Request, snap Snapshot) (*resource.Definition, error) {
	if reg == nil {
		reg = DefaultRegistry
	}

	// Static definitions are searched before environment-supplied ones; the
	// first match wins. The ordering is an implementation tie-break, not a
	// documented priority.
	candidates := append(reg.FindAll(), snap.Environment...)

	winner := lookup(candidates, req, req.Name)
	if winner == nil {
		// Channels and endpoints can usually derive their resource name from
		// the request, but event-typed endpoints cannot, so a definition named
		// "default" acts as the catch-all.
		winner = lookup(candidates, req, resource.DefaultName)
	}
	if winner == nil {
		return nil, &NotFoundError{Type: req.Type, Role: req.Role, Name: req.Name}
	}

	resolved := winner.Clone()

	// Layering follows key order so repeated resolutions produce filter sets
	// with identical pair ordering.
	for _, k := range sortedKeys(snap.Filters) {
		resolved.AddFilter(strings.TrimPrefix(k, resource.FilterPrefix), snap.Filters[k])
	}
	for _, k := range sortedKeys(snap.CeOverrides) {
		resolved.AddCeOverride(strings.TrimPrefix(k, resource.CeOverridePrefix), snap.CeOverrides[k])
	}

	// Event-typed resources receive a synthetic type filter derived from the
	// lookup name, so consumers only see events of the requested type. This
	// keys off the winning definition's type: an event resource reached via
	// the default fallback is treated the same way.
	if winner.Type == resource.TypeEvent && req.Name != "" {
		resolved.CloudEventType = req.Name
		resolved.AddFilter(envelope.CloudEventTypeKey, req.Name)
	}

	return resolved, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lookup(candidates []*resource.Definition, req Request, name string) *resource.Definition {
	for _, d := range candidates {
		if d == nil || !d.Matches(req.Type, name) {
			continue
		}
		if d.Role != req.Role {
			continue
		}
		if !req.Criteria.Match(d) {
			continue
		}
		return d
	}
	return nil
}
