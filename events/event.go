// Package events implements the Body Decoder Registry: one decoder per
// telemetry schema, dispatched by the numeric wire id carried in each
// Framed event.
//
// Grounded on _examples/original_source/build-scan/lib/src/events/*.rs.
// The upstream events/mod.rs registry snapshot only wires up 2 of the ~33
// schemas the individual decoder files implement; this package completes
// that registry rather than reproducing its staleness.
package events

// DecodedEvent is the sum type produced by decoding one frame body. Each
// schema's event struct implements it by reporting its own wire id, so
// callers can type-switch on the concrete type without a separate tag field.
type DecodedEvent interface {
	WireID() uint16
}

// RawEvent is returned for any wire id the registry has no decoder for.
// The body is kept verbatim; spec.md's extended registry covers every wire
// id actually observed in practice, so this is the unknown-schema fallback
// rather than the common case.
type RawEvent struct {
	ID   uint16
	Body []byte
}

func (e RawEvent) WireID() uint16 { return e.ID }

// Wire ids, grouped as spec.md's core and extended registry tables do.
const (
	WireTaskIdentity               = 117
	WireTaskStarted                = 1563
	WireTaskFinished               = 2074
	WireTaskInputsFilePropertyRoot = 88
	WireTaskInputsImplementation   = 91
	WireTaskInputsPropertyNames    = 92
	WireTaskInputsSnapshotStarted  = 94
	WireTaskInputsValueProperties  = 95
	WirePlannedNode                = 119
	WireTransformExecutionRequest  = 137
	WireTaskInputsFileProperty     = 345
	WireTaskInputsSnapshotFinished = 349

	WireBuildAgent                 = 2
	WireBuildRequestedTasks        = 5
	WireBuildStarted               = 6
	WireHardware                   = 12
	WireJvmArgs                    = 13
	WireJvm                        = 14
	WireLocality                   = 15
	WireOs                         = 16
	WireScopeIds                   = 39
	WireFileRefRoots               = 49
	WireEncoding                   = 56
	WireJavaToolchainUsage         = 115
	WireTaskRegistrationSummary    = 122
	WireTransformIdentification    = 136
	WireTransformExecutionStarted  = 138
	WireBasicMemoryStats           = 257
	WireBuildFinished              = 259
	WireDaemonState                = 265
	WireOutputStyledText           = 274
	WireTransformExecutionFinished = 395
	WireResourceUsage              = 407
	WireBuildModes                 = 516
)

type decodeFunc func(body []byte) (DecodedEvent, error)

// Registry dispatches frame bodies to their per-schema decoder by wire id.
// An unregistered wire id decodes to a RawEvent rather than erroring, so an
// unrecognized schema never aborts a decode (spec.md §4.6).
type Registry struct {
	decoders map[uint16]decodeFunc
}

// NewRegistry builds a registry with every schema in spec.md's core and
// extended registry tables wired in.
func NewRegistry() *Registry {
	r := &Registry{decoders: make(map[uint16]decodeFunc, 40)}

	r.register(WireTaskIdentity, decodeTaskIdentity)
	r.register(WireTaskStarted, decodeTaskStarted)
	r.register(WireTaskFinished, decodeTaskFinished)
	r.register(WireTaskInputsFilePropertyRoot, decodeTaskInputsFilePropertyRoot)
	r.register(WireTaskInputsImplementation, decodeTaskInputsImplementation)
	r.register(WireTaskInputsPropertyNames, decodeTaskInputsPropertyNames)
	r.register(WireTaskInputsSnapshotStarted, decodeTaskInputsSnapshottingStarted)
	r.register(WireTaskInputsValueProperties, decodeTaskInputsValueProperties)
	r.register(WirePlannedNode, decodePlannedNode)
	r.register(WireTransformExecutionRequest, decodeTransformExecutionRequest)
	r.register(WireTaskInputsFileProperty, decodeTaskInputsFileProperty)
	r.register(WireTaskInputsSnapshotFinished, decodeTaskInputsSnapshottingFinished)

	r.register(WireBuildAgent, decodeBuildAgent)
	r.register(WireBuildRequestedTasks, decodeBuildRequestedTasks)
	r.register(WireBuildStarted, decodeBuildStarted)
	r.register(WireHardware, decodeHardware)
	r.register(WireJvmArgs, decodeJvmArgs)
	r.register(WireJvm, decodeJvm)
	r.register(WireLocality, decodeLocality)
	r.register(WireOs, decodeOs)
	r.register(WireScopeIds, decodeScopeIds)
	r.register(WireFileRefRoots, decodeFileRefRoots)
	r.register(WireEncoding, decodeEncoding)
	r.register(WireJavaToolchainUsage, decodeJavaToolchainUsage)
	r.register(WireTaskRegistrationSummary, decodeTaskRegistrationSummary)
	r.register(WireTransformIdentification, decodeTransformIdentification)
	r.register(WireTransformExecutionStarted, decodeTransformExecutionStarted)
	r.register(WireBasicMemoryStats, decodeBasicMemoryStats)
	r.register(WireBuildFinished, decodeBuildFinished)
	r.register(WireDaemonState, decodeDaemonState)
	r.register(WireOutputStyledText, decodeOutputStyledText)
	r.register(WireTransformExecutionFinished, decodeTransformExecutionFinished)
	r.register(WireResourceUsage, decodeResourceUsage)
	r.register(WireBuildModes, decodeBuildModes)

	return r
}

func (r *Registry) register(wireID uint16, fn decodeFunc) {
	r.decoders[wireID] = fn
}

// Decode interprets body according to the schema registered for wireID, or
// returns a RawEvent if none is registered.
func (r *Registry) Decode(wireID uint16, body []byte) (DecodedEvent, error) {
	if fn, ok := r.decoders[wireID]; ok {
		return fn(body)
	}
	raw := make([]byte, len(body))
	copy(raw, body)
	return RawEvent{ID: wireID, Body: raw}, nil
}
