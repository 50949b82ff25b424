package envelope

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/drblury/eventbind/internal/runtime/jsoncodec"
)

// Content types reported by MarshalData.
const (
	ContentTypeJSON      = "application/json"
	ContentTypeProtoJSON = "application/cloudevents+json"
)

var protoJSONMarshalOptions = protojson.MarshalOptions{
	EmitUnpopulated: true,
}

// MarshalData encodes an event payload for transport. Protobuf messages are
// encoded with protojson so payloads stay readable across transports; every
// other value goes through the module's JSON codec. The returned string is
// the content type to advertise on the envelope.
func MarshalData(data any) ([]byte, string, error) {
	if pm, ok := data.(proto.Message); ok {
		payload, err := protoJSONMarshalOptions.Marshal(pm)
		if err != nil {
			return nil, "", fmt.Errorf("eventbind: marshal proto payload: %w", err)
		}
		return payload, ContentTypeProtoJSON, nil
	}

	payload, err := jsoncodec.Marshal(data)
	if err != nil {
		return nil, "", fmt.Errorf("eventbind: marshal payload: %w", err)
	}
	return payload, ContentTypeJSON, nil
}
