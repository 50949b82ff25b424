package eventbind

import (
	runtimepkg "github.com/drblury/eventbind/internal/runtime"
	configpkg "github.com/drblury/eventbind/internal/runtime/config"
	envelopepkg "github.com/drblury/eventbind/internal/runtime/envelope"
	errspkg "github.com/drblury/eventbind/internal/runtime/errors"
	idspkg "github.com/drblury/eventbind/internal/runtime/ids"
	jsoncodec "github.com/drblury/eventbind/internal/runtime/jsoncodec"
	loggingpkg "github.com/drblury/eventbind/internal/runtime/logging"
	metadatapkg "github.com/drblury/eventbind/internal/runtime/metadata"
	pipelinepkg "github.com/drblury/eventbind/internal/runtime/pipeline"
	resolverpkg "github.com/drblury/eventbind/internal/runtime/resolver"
	resourcepkg "github.com/drblury/eventbind/internal/runtime/resource"
	transportpkg "github.com/drblury/eventbind/transport"
)

type (
	Config       = configpkg.Config
	Endpoint     = runtimepkg.Endpoint
	Dependencies = runtimepkg.Dependencies
	Producer     = runtimepkg.Producer
	Consumer     = runtimepkg.Consumer

	// Resource model
	ResourceType       = resourcepkg.Type
	EndpointRole       = resourcepkg.EndpointRole
	ResourceDefinition = resourcepkg.Definition
	Criteria           = resourcepkg.Criteria
	FilterSet          = resourcepkg.FilterSet

	// Resolution
	ResolveRequest   = resolverpkg.Request
	ResolverSnapshot = resolverpkg.Snapshot
	ResolverRegistry = resolverpkg.Registry
	NotFoundError    = resolverpkg.NotFoundError

	// Event envelopes
	EnvelopeSpec            = envelopepkg.Spec
	EnvelopeCodec           = envelopepkg.Codec
	EnvelopeAttribute       = envelopepkg.Attribute
	UnsupportedVersionError = envelopepkg.UnsupportedVersionError

	// Message processing
	Stage = pipelinepkg.Stage

	Metadata = metadatapkg.Metadata

	LogFields     = loggingpkg.LogFields
	ServiceLogger = loggingpkg.ServiceLogger

	// Modular transport types
	Transport             = transportpkg.Transport
	TransportBuilder      = transportpkg.Builder
	TransportConfig       = transportpkg.Config
	TransportRegistry     = transportpkg.Registry
	TransportCapabilities = transportpkg.Capabilities
	BindingConfig         = transportpkg.BindingConfig
)

// Resource type and role constants.
const (
	TypeChannel  = resourcepkg.TypeChannel
	TypeEndpoint = resourcepkg.TypeEndpoint
	TypeEvent    = resourcepkg.TypeEvent

	RoleSource = resourcepkg.RoleSource
	RoleSink   = resourcepkg.RoleSink

	DefaultName      = resourcepkg.DefaultName
	FilterPrefix     = resourcepkg.FilterPrefix
	CeOverridePrefix = resourcepkg.CeOverridePrefix
)

// CloudEvents spec versions accepted by Config.CloudEventsSpecVersion.
const (
	SpecVersionV1  = envelopepkg.SpecVersionV1
	SpecVersionV03 = envelopepkg.SpecVersionV03
)

var (
	NewEndpoint = runtimepkg.NewEndpoint

	ParseResourceType = resourcepkg.ParseType
	ParseEndpointRole = resourcepkg.ParseEndpointRole

	// Resource registry
	DefaultResolverRegistry = resolverpkg.DefaultRegistry
	RegisterResource        = resolverpkg.Register
	Resolve                 = resolverpkg.Resolve

	// Environment loading
	ParseEnvironment = configpkg.ParseEnvironment
	LoadEnvironment  = configpkg.LoadEnvironment

	// Envelope codecs
	EnvelopeForVersion = envelopepkg.ForVersion
	EnvelopeVersions   = envelopepkg.Versions

	// Message processing
	ChainStages = pipelinepkg.Chain
	ErrSkip     = pipelinepkg.ErrSkip

	// Modular transport registry
	// Import individual transports via: _ "github.com/drblury/eventbind/transport/kafka"
	DefaultTransportRegistry = transportpkg.DefaultRegistry
	RegisterTransport        = transportpkg.Register
	BuildTransport           = transportpkg.Build
	GetCapabilities          = transportpkg.GetCapabilities

	Marshal       = jsoncodec.Marshal
	MarshalIndent = jsoncodec.MarshalIndent
	Unmarshal     = jsoncodec.Unmarshal
	Encode        = jsoncodec.Encode
	Decode        = jsoncodec.Decode

	ErrConfigRequired       = errspkg.ErrConfigRequired
	ErrLoggerRequired       = errspkg.ErrLoggerRequired
	ErrProcessorRequired    = errspkg.ErrProcessorRequired
	ErrTypeIDRequired       = errspkg.ErrTypeIDRequired
	ErrPublisherRequired    = errspkg.ErrPublisherRequired
	ErrSubscriberRequired   = errspkg.ErrSubscriberRequired
	ErrTopicRequired        = errspkg.ErrTopicRequired
	ErrEventPayloadRequired = errspkg.ErrEventPayloadRequired

	NewSlogServiceLogger = loggingpkg.NewSlogServiceLogger

	NewMetadata = metadatapkg.New

	NewULID = idspkg.NewULID
)

// Envelope metadata keys - use these constants for standard CloudEvents fields.
const (
	MetadataKeyID              = envelopepkg.KeyID
	MetadataKeySource          = envelopepkg.KeySource
	MetadataKeySpecVersion     = envelopepkg.KeySpecVersion
	MetadataKeyType            = envelopepkg.KeyType
	MetadataKeyTime            = envelopepkg.KeyTime
	MetadataKeySubject         = envelopepkg.KeySubject
	MetadataKeyDataContentType = envelopepkg.KeyDataContentType
)
