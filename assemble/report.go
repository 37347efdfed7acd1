// Package assemble implements the Assembler (spec.md §4.7): a single pass
// over the decoded event stream that groups events by correlation id into
// task records and aggregates the build-level summaries that make up the
// final Report.
//
// Grounded on
// _examples/original_source/build-scan/lib/src/assembly.rs and models.rs.
// models.rs itself is stale relative to assembly.rs's actual field usage
// (it is missing TaskInputs, PlannedNodeData, TransformExecutionRequestData
// and others that assembly.rs constructs inline), so the types below follow
// assembly.rs's construction sites rather than the incomplete models.rs.
package assemble

import "github.com/arloliu/buildscan-decoder/events"

// TaskOutcome enumerates a finished task's result, by ordinal exactly as
// transmitted on the wire (spec.md §3).
type TaskOutcome int

const (
	OutcomeUpToDate TaskOutcome = iota
	OutcomeSkipped
	OutcomeFailed
	OutcomeSuccess
	OutcomeFromCache
	OutcomeNoSource
	OutcomeAvoidedForUnknownReason
)

func taskOutcomeFromOrdinal(ordinal uint64) (TaskOutcome, bool) {
	if ordinal > uint64(OutcomeAvoidedForUnknownReason) {
		return 0, false
	}
	return TaskOutcome(ordinal), true
}

// PropertyNames is the declared-inputs sub-structure listing a task's
// value/file input and output property names.
type PropertyNames struct {
	ValueInputs []string `json:"value_inputs,omitempty"`
	FileInputs  []string `json:"file_inputs,omitempty"`
	Outputs     []string `json:"outputs,omitempty"`
}

// Implementation is the declared-inputs sub-structure describing a task's
// action class and classloader hashes.
type Implementation struct {
	ClassLoaderHash         []byte   `json:"class_loader_hash,omitempty"`
	ActionClassLoaderHashes [][]byte `json:"action_class_loader_hashes,omitempty"`
	ActionClassNames        []string `json:"action_class_names,omitempty"`
}

// ValueProperties is the declared-inputs sub-structure listing content
// hashes of a task's value-typed input properties.
type ValueProperties struct {
	Hashes [][]byte `json:"hashes,omitempty"`
}

// FilePropertyRootChild is one child entry under a file-property root's
// snapshot tree.
type FilePropertyRootChild struct {
	Name   *string `json:"name,omitempty"`
	Hash   []byte  `json:"hash,omitempty"`
	Parent *int32  `json:"parent,omitempty"`
}

// FilePropertyRoot is the root of one file-typed input's snapshot tree. A
// task can have more than one (one per file-typed input property).
type FilePropertyRoot struct {
	FileRoot *uint64                 `json:"file_root,omitempty"`
	FilePath *string                 `json:"file_path,omitempty"`
	RootHash []byte                  `json:"root_hash,omitempty"`
	Children []FilePropertyRootChild `json:"children,omitempty"`
}

// FileProperty describes one file-typed input property. A task can have
// more than one.
type FileProperty struct {
	Attributes []string `json:"attributes,omitempty"`
	Hash       []byte    `json:"hash,omitempty"`
	Roots      []int64   `json:"roots,omitempty"`
}

// SnapshottingResult is the successful outcome of a task's input
// snapshotting: the hash plus the ids of the property/implementation
// events it refers to, copied as decoded.
type SnapshottingResult struct {
	Hash           []byte `json:"hash,omitempty"`
	Implementation *int64 `json:"implementation,omitempty"`
	PropertyNames  *int64 `json:"property_names,omitempty"`
	ValueInputs    *int64 `json:"value_inputs,omitempty"`
	FileInputs     []int64 `json:"file_inputs,omitempty"`
}

// TaskInputs is the optional declared-inputs block: included on a task only
// if at least one of its six sub-structures was observed (spec.md §3).
type TaskInputs struct {
	PropertyNames      *PropertyNames      `json:"property_names,omitempty"`
	Implementation     *Implementation     `json:"implementation,omitempty"`
	ValueProperties    *ValueProperties    `json:"value_properties,omitempty"`
	FilePropertyRoots  []FilePropertyRoot  `json:"file_property_roots,omitempty"`
	FileProperties     []FileProperty      `json:"file_properties,omitempty"`
	SnapshottingResult *SnapshottingResult `json:"snapshotting_result,omitempty"`
}

// Task is one assembled task record (spec.md §3).
type Task struct {
	ID                            int64       `json:"id"`
	BuildPath                     string      `json:"build_path"`
	TaskPath                      string      `json:"task_path"`
	ClassName                     *string     `json:"class_name,omitempty"`
	Outcome                       *TaskOutcome `json:"outcome,omitempty"`
	Cacheable                     *bool       `json:"cacheable,omitempty"`
	CachingDisabledReasonCategory *string     `json:"caching_disabled_reason_category,omitempty"`
	CachingDisabledExplanation    *string     `json:"caching_disabled_explanation,omitempty"`
	OriginBuildCacheKey           []byte      `json:"origin_build_cache_key,omitempty"`
	Actionable                    *bool       `json:"actionable,omitempty"`
	StartedAt                     *int64      `json:"started_at,omitempty"`
	FinishedAt                    *int64      `json:"finished_at,omitempty"`
	DurationMs                    *int64      `json:"duration_ms,omitempty"`
	Inputs                        *TaskInputs `json:"inputs,omitempty"`
}

// PlannedNode is a work-graph node planned before execution.
type PlannedNode struct {
	ID             *int64  `json:"id,omitempty"`
	Dependencies   []int64 `json:"dependencies,omitempty"`
	MustRunAfter   []int64 `json:"must_run_after,omitempty"`
	ShouldRunAfter []int64 `json:"should_run_after,omitempty"`
	FinalizedBy    []int64 `json:"finalized_by,omitempty"`
}

// TransformExecutionRequest links a planned node to the transform identity
// and execution record it requests.
type TransformExecutionRequest struct {
	NodeID           *int64 `json:"node_id,omitempty"`
	IdentificationID *int64 `json:"identification_id,omitempty"`
	ExecutionID      *int64 `json:"execution_id,omitempty"`
}

// RawEventCount is the per-wire-id occurrence count for schemas the
// registry had no decoder for.
type RawEventCount struct {
	WireID uint16 `json:"wire_id"`
	Count  int    `json:"count"`
}

// TaskRegistrationSummary is the last-writer-wins total registered task
// count for the build.
type TaskRegistrationSummary struct {
	TaskCount int32 `json:"task_count"`
}

// MemoryPoolSnapshot is one named JVM memory pool's high-water mark.
type MemoryPoolSnapshot struct {
	Name      *string `json:"name,omitempty"`
	Heap      bool    `json:"heap"`
	Init      *int64  `json:"init,omitempty"`
	Used      *int64  `json:"used,omitempty"`
	Committed *int64  `json:"committed,omitempty"`
	Max       *int64  `json:"max,omitempty"`
}

// BasicMemoryStats is the last-writer-wins JVM memory snapshot for the
// build.
type BasicMemoryStats struct {
	Free          *int64               `json:"free,omitempty"`
	Total         *int64               `json:"total,omitempty"`
	Max           *int64               `json:"max,omitempty"`
	GcTime        *int64               `json:"gc_time,omitempty"`
	PeakSnapshots []MemoryPoolSnapshot `json:"peak_snapshots,omitempty"`
}

// Environment aggregates the build/agent/runtime descriptor events that
// assembly.rs decodes but never surfaces (spec.md SPEC_FULL.md §4). Each
// field is a last-writer-wins singleton, matching the existing precedent
// set by TaskRegistrationSummary and BasicMemoryStats.
type Environment struct {
	BuildAgent          *events.BuildAgentEvent          `json:"build_agent,omitempty"`
	BuildRequestedTasks *events.BuildRequestedTasksEvent `json:"build_requested_tasks,omitempty"`
	BuildFinished       *events.BuildFinishedEvent       `json:"build_finished,omitempty"`
	BuildModes          *events.BuildModesEvent          `json:"build_modes,omitempty"`
	DaemonState         *events.DaemonStateEvent         `json:"daemon_state,omitempty"`
	Encoding            *events.EncodingEvent            `json:"encoding,omitempty"`
	Hardware            *events.HardwareEvent            `json:"hardware,omitempty"`
	Jvm                 *events.JvmEvent                 `json:"jvm,omitempty"`
	JvmArgs             *events.JvmArgsEvent              `json:"jvm_args,omitempty"`
	Locality            *events.LocalityEvent            `json:"locality,omitempty"`
	Os                  *events.OsEvent                  `json:"os,omitempty"`
	ScopeIds            *events.ScopeIdsEvent             `json:"scope_ids,omitempty"`
	FileRefRoots        *events.FileRefRootsEvent         `json:"file_ref_roots,omitempty"`
	JavaToolchains      []events.JavaToolchainUsageEvent  `json:"java_toolchains,omitempty"`
}

// Transform is one assembled transform-execution record, joined from
// TransformExecutionStarted/TransformIdentification/TransformExecutionFinished
// the same way Task joins TaskStarted/TaskIdentity/TaskFinished. The
// original assembler never performs this join; SPEC_FULL.md §4 adds it as
// a natural completion of protocol coverage already decoded.
type Transform struct {
	ID                            int64    `json:"id"`
	ComponentIdentity             int32    `json:"component_identity,omitempty"`
	InputArtifactName             string   `json:"input_artifact_name,omitempty"`
	TransformActionClass          string   `json:"transform_action_class,omitempty"`
	FromAttributes                []int32  `json:"from_attributes,omitempty"`
	ToAttributes                  []int32  `json:"to_attributes,omitempty"`
	StartedAt                     *int64   `json:"started_at,omitempty"`
	FinishedAt                    *int64   `json:"finished_at,omitempty"`
	DurationMs                    *int64   `json:"duration_ms,omitempty"`
	FailureID                     *int64   `json:"failure_id,omitempty"`
	Outcome                       *uint64  `json:"outcome,omitempty"`
	ExecutionReasons              []string `json:"execution_reasons,omitempty"`
	CachingDisabledReasonCategory *string  `json:"caching_disabled_reason_category,omitempty"`
	CachingDisabledExplanation    *string  `json:"caching_disabled_explanation,omitempty"`
	OriginBuildCacheKey           []byte   `json:"origin_build_cache_key,omitempty"`
}

// ConsoleSpan is one styled run of console output, with its parent event's
// category/log-level/owner resolved onto it (spec.md SPEC_FULL.md §4).
type ConsoleSpan struct {
	Category  *string `json:"category,omitempty"`
	LogLevel  *string `json:"log_level,omitempty"`
	Text      string  `json:"text"`
	Style     *string `json:"style,omitempty"`
	OwnerType *uint64 `json:"owner_type,omitempty"`
	OwnerID   *string `json:"owner_id,omitempty"`
}

// Report is the Assembler's output (spec.md §3).
type Report struct {
	Tasks                      []Task                      `json:"tasks"`
	PlannedNodes               []PlannedNode               `json:"planned_nodes,omitempty"`
	TransformExecutionRequests []TransformExecutionRequest `json:"transform_execution_requests,omitempty"`
	RawEvents                  []RawEventCount             `json:"raw_event_summary,omitempty"`
	TaskRegistrationSummary    *TaskRegistrationSummary    `json:"task_registration_summary,omitempty"`
	BasicMemoryStats           *BasicMemoryStats           `json:"basic_memory_stats,omitempty"`

	// Additive, SPEC_FULL.md §4: never populated by the original assembler.
	Environment   *Environment  `json:"environment,omitempty"`
	Transforms    []Transform   `json:"transforms,omitempty"`
	ConsoleOutput []ConsoleSpan `json:"console_output,omitempty"`

	// PayloadDigest is a stable xxHash64 of the decoded event stream (see
	// DESIGN.md), letting two decodes of the same bytes be compared without
	// hashing the whole serialized report.
	PayloadDigest uint64 `json:"payload_digest"`
}
