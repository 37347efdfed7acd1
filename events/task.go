package events

import "github.com/arloliu/buildscan-decoder/wire"

// TaskIdentityEvent binds a correlation id to the task's build and task
// paths. Grounded on task_identity.rs.
type TaskIdentityEvent struct {
	ID        int64
	BuildPath string
	TaskPath  string
}

func (e TaskIdentityEvent) WireID() uint16 { return WireTaskIdentity }

func decodeTaskIdentity(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()

	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e TaskIdentityEvent
	if wire.BytePresent(flags, 0) {
		e.ID, err = r.FixedI64LE()
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 1) {
		e.BuildPath, err = table.Read(r)
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 2) {
		e.TaskPath, err = table.Read(r)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// TaskStartedEvent records when a task began executing. The optional
// ConfigurationParentRef field has no surfaced equivalent in the report
// (spec.md Design Notes) and is read and discarded. Grounded on
// task_started.rs.
type TaskStartedEvent struct {
	ID        int64
	BuildPath string
	Path      string
	ClassName *string
}

func (e TaskStartedEvent) WireID() uint16 { return WireTaskStarted }

func decodeTaskStarted(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()

	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e TaskStartedEvent
	if wire.BytePresent(flags, 0) {
		e.ID, err = r.ZigzagI64()
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 1) {
		e.BuildPath, err = table.Read(r)
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 2) {
		e.Path, err = table.Read(r)
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 3) {
		className, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.ClassName = &className
	}
	if wire.BytePresent(flags, 4) {
		parentFlags, err := r.FlagsByte()
		if err != nil {
			return nil, err
		}
		if wire.BytePresent(parentFlags, 0) {
			if _, err := r.EnumOrdinal(); err != nil {
				return nil, err
			}
		}
		if wire.BytePresent(parentFlags, 1) {
			if _, err := r.ZigzagI64(); err != nil {
				return nil, err
			}
		}
	}
	return e, nil
}

// TaskFinishedEvent records a task's outcome. Its flags word is the wide,
// fixed big-endian 13-bit form; cacheable and actionable ride directly on
// flag bits with no payload of their own, always present as true/false
// (never absent), unlike DaemonState's nullable single_use. Grounded on
// task_finished.rs.
type TaskFinishedEvent struct {
	ID                           int64
	Path                         string
	Outcome                      *uint64
	Cacheable                    bool
	CachingDisabledReasonCategory *string
	CachingDisabledExplanation    *string
	OriginBuildInvocationID       *string
	OriginBuildCacheKey           []byte
	Actionable                    bool
	SkipReasonMessage             *string
}

func (e TaskFinishedEvent) WireID() uint16 { return WireTaskFinished }

func decodeTaskFinished(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()

	flags, err := r.FlagsU16BE()
	if err != nil {
		return nil, err
	}

	var e TaskFinishedEvent
	if wire.FieldPresent(flags, 0) {
		e.ID, err = r.FixedI64LE()
		if err != nil {
			return nil, err
		}
	}
	if wire.FieldPresent(flags, 1) {
		e.Path, err = table.Read(r)
		if err != nil {
			return nil, err
		}
	}
	if wire.FieldPresent(flags, 2) {
		ordinal, err := r.EnumOrdinal()
		if err != nil {
			return nil, err
		}
		e.Outcome = &ordinal
	}
	if wire.FieldPresent(flags, 3) {
		if _, err := table.Read(r); err != nil {
			return nil, err
		}
	}

	e.Cacheable = wire.FieldPresent(flags, 4)

	if wire.FieldPresent(flags, 5) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.CachingDisabledReasonCategory = &s
	}
	if wire.FieldPresent(flags, 6) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.CachingDisabledExplanation = &s
	}
	if wire.FieldPresent(flags, 7) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.OriginBuildInvocationID = &s
	}
	if wire.FieldPresent(flags, 8) {
		e.OriginBuildCacheKey, err = r.ByteArray()
		if err != nil {
			return nil, err
		}
	}
	if wire.FieldPresent(flags, 9) {
		if _, err := r.ZigzagI64(); err != nil {
			return nil, err
		}
	}

	e.Actionable = wire.FieldPresent(flags, 10)

	if wire.FieldPresent(flags, 11) {
		n, err := r.Uvarint()
		if err != nil {
			return nil, err
		}
		for i := uint64(0); i < n; i++ {
			if _, err := table.Read(r); err != nil {
				return nil, err
			}
		}
	}
	if wire.FieldPresent(flags, 12) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.SkipReasonMessage = &s
	}

	return e, nil
}

// PlannedNodeEvent is a work-graph node planned before execution. Grounded
// on planned_node.rs.
type PlannedNodeEvent struct {
	ID               *int64
	Dependencies     []int64
	MustRunAfter     []int64
	ShouldRunAfter   []int64
	FinalizedBy      []int64
}

func (e PlannedNodeEvent) WireID() uint16 { return WirePlannedNode }

func decodePlannedNode(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e PlannedNodeEvent
	if wire.BytePresent(flags, 0) {
		id, err := r.FixedI64LE()
		if err != nil {
			return nil, err
		}
		e.ID = &id
	}
	if wire.BytePresent(flags, 1) {
		e.Dependencies, err = r.ListOfI64()
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 2) {
		e.MustRunAfter, err = r.ListOfI64()
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 3) {
		e.ShouldRunAfter, err = r.ListOfI64()
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 4) {
		e.FinalizedBy, err = r.ListOfI64()
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// TransformExecutionRequestEvent links a planned node to the transform
// identity and execution record it requests. Grounded on
// transform_execution_request.rs.
type TransformExecutionRequestEvent struct {
	NodeID           *int64
	IdentificationID *int64
	ExecutionID      *int64
}

func (e TransformExecutionRequestEvent) WireID() uint16 { return WireTransformExecutionRequest }

func decodeTransformExecutionRequest(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e TransformExecutionRequestEvent
	if wire.BytePresent(flags, 0) {
		v, err := r.FixedI64LE()
		if err != nil {
			return nil, err
		}
		e.NodeID = &v
	}
	if wire.BytePresent(flags, 1) {
		v, err := r.FixedI64LE()
		if err != nil {
			return nil, err
		}
		e.IdentificationID = &v
	}
	if wire.BytePresent(flags, 2) {
		v, err := r.FixedI64LE()
		if err != nil {
			return nil, err
		}
		e.ExecutionID = &v
	}
	return e, nil
}
