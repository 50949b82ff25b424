package runtime

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"

	configpkg "github.com/drblury/eventbind/internal/runtime/config"
	"github.com/drblury/eventbind/internal/runtime/envelope"
	errspkg "github.com/drblury/eventbind/internal/runtime/errors"
	loggingpkg "github.com/drblury/eventbind/internal/runtime/logging"
	"github.com/drblury/eventbind/internal/runtime/pipeline"
	"github.com/drblury/eventbind/internal/runtime/properties"
	"github.com/drblury/eventbind/internal/runtime/resolver"
	"github.com/drblury/eventbind/internal/runtime/resource"
	transportpkg "github.com/drblury/eventbind/transport"
)

// Dependencies holds the optional collaborators an Endpoint can use. Nil
// fields fall back to the process-wide defaults.
type Dependencies struct {
	Resolver   *resolver.Registry
	Transports *transportpkg.Registry
}

// Endpoint binds one abstract endpoint address (resource type + logical name)
// to live producer and consumer handles. Construction selects the envelope
// codec; resolution and transport construction happen per binding attempt.
// Binding is synchronous and performs no message I/O itself.
type Endpoint struct {
	resourceType resource.Type
	typeID       string

	conf     *configpkg.Config
	logger   loggingpkg.ServiceLogger
	wmLogger watermill.LoggerAdapter

	resolver   *resolver.Registry
	transports *transportpkg.Registry
	codec      envelope.Codec
}

// NewEndpoint constructs an Endpoint for the given resource type and logical
// name. The configured TypeID, when set, overrides the logical name taken
// from the address. Fails when the configuration is invalid or names an
// envelope version with no registered codec.
func NewEndpoint(t resource.Type, typeID string, conf *configpkg.Config, log loggingpkg.ServiceLogger, deps Dependencies) (*Endpoint, error) {
	if conf == nil {
		return nil, errspkg.ErrConfigRequired
	}
	if log == nil {
		log = loggingpkg.Nop()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	codec, err := envelope.ForVersion(conf.CloudEventsSpecVersion)
	if err != nil {
		return nil, err
	}

	if conf.TypeID != "" {
		typeID = conf.TypeID
	}
	// Only event-typed endpoints may omit the logical name; they can still
	// resolve through the reserved default definition.
	if typeID == "" && t != resource.TypeEvent {
		return nil, errspkg.ErrTypeIDRequired
	}

	reg := deps.Resolver
	if reg == nil {
		reg = resolver.DefaultRegistry
	}
	transports := deps.Transports
	if transports == nil {
		transports = transportpkg.DefaultRegistry
	}

	log.Info("Creating endpoint binding", loggingpkg.LogFields{
		"resource_type": t,
		"type_id":       typeID,
		"spec_version":  codec.CloudEvent().Version(),
	})

	return &Endpoint{
		resourceType: t,
		typeID:       typeID,
		conf:         conf,
		logger:       log,
		wmLogger:     loggingpkg.NewWatermillAdapter(log),
		resolver:     reg,
		transports:   transports,
		codec:        codec,
	}, nil
}

// Type returns the resource type of the endpoint address.
func (e *Endpoint) Type() resource.Type { return e.resourceType }

// TypeID returns the effective logical resource name.
func (e *Endpoint) TypeID() string { return e.typeID }

// CreateProducer resolves the sink-role resource definition and returns a
// producer handle wired through the envelope-encoding stage. No network I/O
// happens until the first Send.
func (e *Endpoint) CreateProducer(ctx context.Context) (*Producer, error) {
	res, err := e.lookupDefinition(resource.RoleSink)
	if err != nil {
		return nil, err
	}
	topic := topicFor(res)
	if topic == "" {
		return nil, errspkg.ErrTopicRequired
	}

	stage := e.codec.Producer(e.envelopeOptions(), res)

	t, err := e.transports.Build(ctx, e.conf, e.bindingConfig(res), res, e.wmLogger)
	if err != nil {
		return nil, fmt.Errorf("eventbind: create producer for %s: %w", res, err)
	}
	if t.Publisher == nil {
		return nil, errspkg.ErrPublisherRequired
	}

	if err := e.applyTransportOptions(t.Publisher); err != nil {
		return nil, err
	}

	bindingsTotal.WithLabelValues(res.TransportName(), string(resource.RoleSink)).Inc()

	return &Producer{
		res:       res,
		topic:     topic,
		stage:     stage,
		publisher: t.Publisher,
		logger:    e.logger,
	}, nil
}

// CreateConsumer resolves the source-role resource definition and returns a
// consumer handle whose pipeline runs the envelope-decoding stage, then the
// user processor, then (when replying with a full envelope) the producer
// stage. A failed stage skips the rest of the pipeline for that message.
func (e *Endpoint) CreateConsumer(ctx context.Context, processor pipeline.Stage) (*Consumer, error) {
	if processor == nil {
		return nil, errspkg.ErrProcessorRequired
	}

	res, err := e.lookupDefinition(resource.RoleSource)
	if err != nil {
		return nil, err
	}
	topic := topicFor(res)
	if topic == "" {
		return nil, errspkg.ErrTopicRequired
	}

	caps := e.transports.GetCapabilities(res.TransportName())

	opts := e.envelopeOptions()
	// Brokers that evaluate attribute filters server-side deliver matching
	// messages only, so the decoding stage gets a filter-free view of the
	// definition.
	filterView := res
	if !caps.RequiresClientSideFiltering() {
		filterView = res.CloneWithoutFilters()
	}
	ceStage := e.codec.Consumer(opts, filterView)
	var replyStage pipeline.Stage
	if e.conf.ReplyWithCloudEvent {
		replyStage = e.codec.Producer(opts, res)
	}

	pl := tracerStage(string(resource.RoleSource), res, pipeline.Chain(ceStage, processor, replyStage))

	t, err := e.transports.Build(ctx, e.conf, e.bindingConfig(res), res, e.wmLogger)
	if err != nil {
		return nil, fmt.Errorf("eventbind: create consumer for %s: %w", res, err)
	}
	if t.Subscriber == nil {
		return nil, errspkg.ErrSubscriberRequired
	}

	if err := e.applyTransportOptions(t.Subscriber); err != nil {
		return nil, err
	}

	bindingsTotal.WithLabelValues(res.TransportName(), string(resource.RoleSource)).Inc()

	return &Consumer{
		res:        res,
		topic:      topic,
		pipeline:   pl,
		subscriber: t.Subscriber,
		caps:       caps,
		logger:     e.logger,
		done:       make(chan struct{}),
	}, nil
}

func (e *Endpoint) lookupDefinition(role resource.EndpointRole) (*resource.Definition, error) {
	req := resolver.Request{
		Type:     e.resourceType,
		Role:     role,
		Name:     e.typeID,
		Criteria: e.conf.Criteria(),
	}

	res, err := resolver.Resolve(e.resolver, req, e.conf.ResolverSnapshot())
	if err != nil {
		resolutionsTotal.WithLabelValues(string(e.resourceType), string(role), "not_found").Inc()
		return nil, err
	}

	resolutionsTotal.WithLabelValues(string(e.resourceType), string(role), "resolved").Inc()
	e.logger.Debug("Resolved resource definition", loggingpkg.LogFields{
		"resource":  res.String(),
		"transport": res.TransportName(),
		"filters":   res.Filters.Len(),
	})
	return res, nil
}

func (e *Endpoint) bindingConfig(res *resource.Definition) transportpkg.BindingConfig {
	reply := e.conf.Reply
	if reply == "" {
		reply = res.Reply
	}
	return transportpkg.BindingConfig{
		SpecVersion:           e.codec.CloudEvent().Version(),
		RemoveEnvelopeHeaders: !e.conf.ReplyWithCloudEvent,
		Reply:                 reply,
	}
}

func (e *Endpoint) envelopeOptions() envelope.Options {
	return envelope.Options{
		Source:           e.conf.Source,
		DefaultEventType: e.typeID,
	}
}

func (e *Endpoint) applyTransportOptions(target any) error {
	applied, err := properties.Apply(target, e.conf.TransportOptions, e.conf.TransportOptionsMandatory)
	if err != nil {
		return err
	}
	if applied > 0 {
		e.logger.Debug("Applied transport options", loggingpkg.LogFields{"applied": applied})
	}
	return nil
}

// topicFor derives the transport topic from the resolved definition.
// Event-typed resolutions address the event type; everything else uses the
// logical name.
func topicFor(res *resource.Definition) string {
	if res.Type == resource.TypeEvent && res.CloudEventType != "" {
		return res.CloudEventType
	}
	return res.Name
}
