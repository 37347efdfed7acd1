package events

import "github.com/arloliu/buildscan-decoder/wire"

// BuildStartedEvent marks the start of the build. Its body is empty: the
// event carries no fields of its own, only its presence in the event
// stream. Grounded on build_started.rs.
type BuildStartedEvent struct{}

func (e BuildStartedEvent) WireID() uint16 { return WireBuildStarted }

func decodeBuildStarted(body []byte) (DecodedEvent, error) {
	return BuildStartedEvent{}, nil
}

// BuildRequestedTasksEvent lists the task paths requested and excluded on
// the command line. Grounded on build_requested_tasks.rs.
type BuildRequestedTasksEvent struct {
	Requested []string
	Excluded  []string
}

func (e BuildRequestedTasksEvent) WireID() uint16 { return WireBuildRequestedTasks }

func decodeBuildRequestedTasks(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e BuildRequestedTasksEvent
	if wire.BytePresent(flags, 0) {
		e.Requested, err = table.ReadList(r)
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 1) {
		e.Excluded, err = table.ReadList(r)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// BuildFinishedEvent marks the end of the build, carrying a failure id
// when the build failed. Grounded on build_finished.rs.
type BuildFinishedEvent struct {
	FailureID *int64
}

func (e BuildFinishedEvent) WireID() uint16 { return WireBuildFinished }

func decodeBuildFinished(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e BuildFinishedEvent
	if wire.BytePresent(flags, 0) {
		v, err := r.ZigzagI64()
		if err != nil {
			return nil, err
		}
		e.FailureID = &v
	}
	return e, nil
}

// BuildModesEvent reports which build switches were active. The first 9
// fields ride directly on flag bits with no payload, same as TaskFinished's
// cacheable/actionable; MaxWorkers is the one field with an actual payload,
// gated on bit 9. Grounded on build_modes.rs.
type BuildModesEvent struct {
	RefreshDependencies bool
	Rerun                bool
	Offline              bool
	DryRun               bool
	ContinueOnFailure    bool
	ParallelProjectExecution bool
	ConfigureOnDemand    bool
	ConfigurationCache   bool
	Watch                bool
	MaxWorkers           *int32
}

func (e BuildModesEvent) WireID() uint16 { return WireBuildModes }

func decodeBuildModes(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	flags, err := r.FlagsU16BE()
	if err != nil {
		return nil, err
	}

	e := BuildModesEvent{
		RefreshDependencies:      wire.FieldPresent(flags, 0),
		Rerun:                    wire.FieldPresent(flags, 1),
		Offline:                  wire.FieldPresent(flags, 2),
		DryRun:                   wire.FieldPresent(flags, 3),
		ContinueOnFailure:        wire.FieldPresent(flags, 4),
		ParallelProjectExecution: wire.FieldPresent(flags, 5),
		ConfigureOnDemand:        wire.FieldPresent(flags, 6),
		ConfigurationCache:       wire.FieldPresent(flags, 7),
		Watch:                    wire.FieldPresent(flags, 8),
	}
	if wire.FieldPresent(flags, 9) {
		v, err := r.PositiveVarintI32()
		if err != nil {
			return nil, err
		}
		e.MaxWorkers = &v
	}
	return e, nil
}

// DaemonStateEvent describes the Gradle daemon serving the build.
// SingleUse follows the nullable-bool convention (present-only-as-true,
// absent as nil) rather than TaskFinished's always-populated convention:
// the daemon either reports itself single-use or says nothing about it.
// Grounded on daemon_state.rs.
type DaemonStateEvent struct {
	StartTime              *int64
	IdleTimeout            *int64
	BuildNumber            *int32
	NumberOfRunningDaemons *int32
	SingleUse              *bool
}

func (e DaemonStateEvent) WireID() uint16 { return WireDaemonState }

func decodeDaemonState(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e DaemonStateEvent
	if wire.BytePresent(flags, 0) {
		v, err := r.PositiveVarintI64()
		if err != nil {
			return nil, err
		}
		e.StartTime = &v
	}
	if wire.BytePresent(flags, 1) {
		v, err := r.PositiveVarintI64()
		if err != nil {
			return nil, err
		}
		e.IdleTimeout = &v
	}
	if wire.BytePresent(flags, 2) {
		v, err := r.PositiveVarintI32()
		if err != nil {
			return nil, err
		}
		e.BuildNumber = &v
	}
	if wire.BytePresent(flags, 3) {
		v, err := r.PositiveVarintI32()
		if err != nil {
			return nil, err
		}
		e.NumberOfRunningDaemons = &v
	}
	if wire.BytePresent(flags, 4) {
		v := true
		e.SingleUse = &v
	}
	return e, nil
}

// TaskRegistrationSummaryEvent reports the total number of registered
// tasks. No flags word: the count is always present. Last writer wins if
// more than one is seen in a stream. Grounded on
// task_registration_summary.rs.
type TaskRegistrationSummaryEvent struct {
	TaskCount int32
}

func (e TaskRegistrationSummaryEvent) WireID() uint16 { return WireTaskRegistrationSummary }

func decodeTaskRegistrationSummary(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	n, err := r.PositiveVarintI32()
	if err != nil {
		return nil, err
	}
	return TaskRegistrationSummaryEvent{TaskCount: n}, nil
}

// MemoryPoolSnapshotEvent is one named JVM memory pool's high-water mark.
// Heap follows the direct (non-optional) boolean-on-flag-bit convention,
// distinct from DaemonState's nullable SingleUse: every snapshot reports
// whether it is a heap pool, never omitting the answer.
type MemoryPoolSnapshotEvent struct {
	Name      *string
	Heap      bool
	Init      *int64
	Used      *int64
	Committed *int64
	Max       *int64
}

// BasicMemoryStatsEvent is a point-in-time snapshot of JVM memory usage.
// Last writer wins if more than one is seen in a stream. Grounded on
// basic_memory_stats.rs.
type BasicMemoryStatsEvent struct {
	Free          *int64
	Total         *int64
	Max           *int64
	GcTime        *int64
	PeakSnapshots []MemoryPoolSnapshotEvent
}

func (e BasicMemoryStatsEvent) WireID() uint16 { return WireBasicMemoryStats }

func decodeMemoryPoolSnapshot(r *wire.Reader, table *wire.StringTable) (MemoryPoolSnapshotEvent, error) {
	flags, err := r.FlagsByte()
	if err != nil {
		return MemoryPoolSnapshotEvent{}, err
	}

	var s MemoryPoolSnapshotEvent
	if wire.BytePresent(flags, 0) {
		name, err := table.Read(r)
		if err != nil {
			return MemoryPoolSnapshotEvent{}, err
		}
		s.Name = &name
	}

	s.Heap = wire.BytePresent(flags, 1)

	if wire.BytePresent(flags, 2) {
		v, err := r.ZigzagI64()
		if err != nil {
			return MemoryPoolSnapshotEvent{}, err
		}
		s.Init = &v
	}
	if wire.BytePresent(flags, 3) {
		v, err := r.ZigzagI64()
		if err != nil {
			return MemoryPoolSnapshotEvent{}, err
		}
		s.Used = &v
	}
	if wire.BytePresent(flags, 4) {
		v, err := r.ZigzagI64()
		if err != nil {
			return MemoryPoolSnapshotEvent{}, err
		}
		s.Committed = &v
	}
	if wire.BytePresent(flags, 5) {
		v, err := r.ZigzagI64()
		if err != nil {
			return MemoryPoolSnapshotEvent{}, err
		}
		s.Max = &v
	}
	return s, nil
}

func decodeBasicMemoryStats(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e BasicMemoryStatsEvent
	if wire.BytePresent(flags, 0) {
		v, err := r.ZigzagI64()
		if err != nil {
			return nil, err
		}
		e.Free = &v
	}
	if wire.BytePresent(flags, 1) {
		v, err := r.ZigzagI64()
		if err != nil {
			return nil, err
		}
		e.Total = &v
	}
	if wire.BytePresent(flags, 2) {
		v, err := r.ZigzagI64()
		if err != nil {
			return nil, err
		}
		e.Max = &v
	}
	if wire.BytePresent(flags, 3) {
		v, err := r.ZigzagI64()
		if err != nil {
			return nil, err
		}
		e.GcTime = &v
	}
	if wire.BytePresent(flags, 4) {
		count, err := r.PositiveVarintI32()
		if err != nil {
			return nil, err
		}
		e.PeakSnapshots = make([]MemoryPoolSnapshotEvent, 0, count)
		for i := int32(0); i < count; i++ {
			snap, err := decodeMemoryPoolSnapshot(r, table)
			if err != nil {
				return nil, err
			}
			e.PeakSnapshots = append(e.PeakSnapshots, snap)
		}
	}
	return e, nil
}
