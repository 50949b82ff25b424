package eventbind

import (
	"errors"
	"testing"
)

func TestEndpointExportsPropagateErrors(t *testing.T) {
	if _, err := NewEndpoint(TypeChannel, "orders", nil, nil, Dependencies{}); !errors.Is(err, ErrConfigRequired) {
		t.Fatalf("expected config required error, got %v", err)
	}
}

func TestResolveExport(t *testing.T) {
	reg := &ResolverRegistry{}
	reg.Register(&ResourceDefinition{Type: TypeChannel, Name: "orders", Role: RoleSource})

	res, err := Resolve(reg, ResolveRequest{Type: TypeChannel, Role: RoleSource, Name: "orders"}, ResolverSnapshot{})
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
	if res.Name != "orders" {
		t.Fatalf("expected orders definition, got %q", res.Name)
	}
}

func TestResolveNotFoundExport(t *testing.T) {
	_, err := Resolve(&ResolverRegistry{}, ResolveRequest{Type: TypeEvent, Role: RoleSink, Name: "x"}, ResolverSnapshot{})

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestEnvelopeExports(t *testing.T) {
	codec, err := EnvelopeForVersion(SpecVersionV03)
	if err != nil {
		t.Fatalf("unexpected error selecting envelope codec: %v", err)
	}
	if codec.CloudEvent().Version() != SpecVersionV03 {
		t.Fatalf("expected version %q, got %q", SpecVersionV03, codec.CloudEvent().Version())
	}

	if _, err := EnvelopeForVersion("2.0"); err == nil {
		t.Fatal("expected error for unknown envelope version")
	}
}

func TestParseExports(t *testing.T) {
	if _, err := ParseResourceType("channel"); err != nil {
		t.Fatalf("parse resource type failed: %v", err)
	}
	if _, err := ParseEndpointRole("sink"); err != nil {
		t.Fatalf("parse endpoint role failed: %v", err)
	}
}

func TestEncodingExportAliases(t *testing.T) {
	payload := map[string]string{"hello": "world"}
	if _, err := Marshal(payload); err != nil {
		t.Fatalf("marshal alias failed: %v", err)
	}
	if _, err := MarshalIndent(payload, "", "  "); err != nil {
		t.Fatalf("marshal indent alias failed: %v", err)
	}
	if err := Unmarshal([]byte(`{"hello":"world"}`), &payload); err != nil {
		t.Fatalf("unmarshal alias failed: %v", err)
	}
}

func TestMetadataExport(t *testing.T) {
	md := NewMetadata("key", "value")
	if md["key"] != "value" {
		t.Fatalf("expected metadata to contain key, got %#v", md)
	}
}

func TestNewULIDExport(t *testing.T) {
	a, b := NewULID(), NewULID()
	if len(a) != 26 || len(b) != 26 {
		t.Fatalf("expected 26-character ULIDs, got %q and %q", a, b)
	}
	if a == b {
		t.Fatal("expected distinct ULIDs")
	}
}

func TestParseEnvironmentExport(t *testing.T) {
	defs, err := ParseEnvironment([]byte(`{"resources":[{"type":"channel","name":"orders","endpointKind":"source"}]}`))
	if err != nil {
		t.Fatalf("parse environment failed: %v", err)
	}
	if len(defs) != 1 || defs[0].Name != "orders" {
		t.Fatalf("unexpected definitions: %#v", defs)
	}
}
