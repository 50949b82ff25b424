// Package errors holds the sentinel errors shared across eventbind packages.
package errors

import sterrors "errors"

var (
	ErrConfigRequired       = sterrors.New("eventbind: configuration is required")
	ErrLoggerRequired       = sterrors.New("eventbind: logger is required")
	ErrProcessorRequired    = sterrors.New("eventbind: processor function is required")
	ErrTypeIDRequired       = sterrors.New("eventbind: resource type id is required")
	ErrPublisherRequired    = sterrors.New("eventbind: publisher is required")
	ErrSubscriberRequired   = sterrors.New("eventbind: subscriber is required")
	ErrTopicRequired        = sterrors.New("eventbind: topic is required")
	ErrEventPayloadRequired = sterrors.New("eventbind: event payload is required")
)
