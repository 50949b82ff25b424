package config

import (
	"fmt"
	"os"

	"github.com/drblury/eventbind/internal/runtime/jsoncodec"
	"github.com/drblury/eventbind/internal/runtime/resource"
)

// EnvironmentVariable names the process environment variable holding the
// discovered resource definitions as a JSON document.
const EnvironmentVariable = "EVENTBIND_ENVIRONMENT"

// environmentDocument is the wire shape of the discovery document.
type environmentDocument struct {
	Resources []*resource.Definition `json:"resources"`
}

// ParseEnvironment decodes a discovery document into resource definitions.
// The document is an object with a "resources" array; a bare array is also
// accepted.
func ParseEnvironment(data []byte) ([]*resource.Definition, error) {
	var doc environmentDocument
	if err := jsoncodec.Unmarshal(data, &doc); err != nil {
		var bare []*resource.Definition
		if bareErr := jsoncodec.Unmarshal(data, &bare); bareErr == nil {
			return bare, nil
		}
		return nil, fmt.Errorf("eventbind: parse environment document: %w", err)
	}
	return doc.Resources, nil
}

// LoadEnvironment reads the discovery document from EnvironmentVariable.
// A missing or empty variable yields no definitions and no error.
func LoadEnvironment() ([]*resource.Definition, error) {
	raw := os.Getenv(EnvironmentVariable)
	if raw == "" {
		return nil, nil
	}
	return ParseEnvironment([]byte(raw))
}
