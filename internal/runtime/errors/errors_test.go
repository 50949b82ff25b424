package errors

import (
	"errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"config", ErrConfigRequired, "eventbind: configuration is required"},
		{"logger", ErrLoggerRequired, "eventbind: logger is required"},
		{"processor", ErrProcessorRequired, "eventbind: processor function is required"},
		{"type id", ErrTypeIDRequired, "eventbind: resource type id is required"},
		{"publisher", ErrPublisherRequired, "eventbind: publisher is required"},
		{"subscriber", ErrSubscriberRequired, "eventbind: subscriber is required"},
		{"topic", ErrTopicRequired, "eventbind: topic is required"},
		{"payload", ErrEventPayloadRequired, "eventbind: event payload is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Error() != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, tc.err.Error())
			}
			if !errors.Is(tc.err, tc.err) {
				t.Fatal("sentinel must match itself")
			}
		})
	}
}
