package assemble

import (
	"sort"

	"github.com/arloliu/buildscan-decoder/endian"
	"github.com/arloliu/buildscan-decoder/events"
	"github.com/arloliu/buildscan-decoder/frame"
	"github.com/arloliu/buildscan-decoder/internal/hash"
)

var digestByteOrder = endian.GetBigEndianEngine()

// Pair is one decoded event alongside the frame it was decoded from, the
// Assembler's sole input (spec.md §4.7).
type Pair struct {
	Frame frame.Framed
	Event events.DecodedEvent
}

type finishedInfo struct {
	outcome               *uint64
	cacheable             bool
	reasonCategory        *string
	reasonExplanation     *string
	originBuildCacheKey   []byte
	actionable            bool
	timestamp             int64
}

type startedInfo struct {
	className *string
	timestamp int64
}

type transformStarted struct {
	timestamp int64
}

type transformFinished struct {
	failureID             *int64
	outcome               *uint64
	executionReasons      []string
	reasonCategory        *string
	reasonExplanation     *string
	originBuildCacheKey   []byte
	timestamp             int64
}

// Assemble runs the single-pass grouping algorithm over pairs and returns
// the final Report. Grounded on
// _examples/original_source/build-scan/lib/src/assembly.rs.
func Assemble(pairs []Pair) Report {
	identities := make(map[int64]events.TaskIdentityEvent)
	started := make(map[int64]startedInfo)
	finished := make(map[int64]finishedInfo)
	rawCounts := make(map[uint16]int)

	propertyNames := make(map[int64]events.TaskInputsPropertyNamesEvent)
	implementation := make(map[int64]events.TaskInputsImplementationEvent)
	valueProperties := make(map[int64]events.TaskInputsValuePropertiesEvent)
	filePropertyRoots := make(map[int64][]events.TaskInputsFilePropertyRootEvent)
	fileProperties := make(map[int64][]events.TaskInputsFilePropertyEvent)
	snapshottingFinished := make(map[int64]events.TaskInputsSnapshottingFinishedEvent)

	var plannedNodes []events.PlannedNodeEvent
	var transformRequests []events.TransformExecutionRequestEvent
	var taskRegistrationSummary *events.TaskRegistrationSummaryEvent
	var basicMemoryStats *events.BasicMemoryStatsEvent

	var env Environment
	var envSeen bool
	var javaToolchains []events.JavaToolchainUsageEvent
	var consoleOutput []ConsoleSpan

	transformIdentities := make(map[int64]events.TransformIdentificationEvent)
	transformsStarted := make(map[int64]transformStarted)
	transformsFinished := make(map[int64]transformFinished)

	digest := hash.NewDigest()

	for _, p := range pairs {
		writeFrameDigest(digest, p.Frame)

		switch e := p.Event.(type) {
		case events.TaskIdentityEvent:
			identities[e.ID] = e
		case events.TaskStartedEvent:
			started[e.ID] = startedInfo{className: e.ClassName, timestamp: p.Frame.Timestamp}
		case events.TaskFinishedEvent:
			finished[e.ID] = finishedInfo{
				outcome:             e.Outcome,
				cacheable:           e.Cacheable,
				reasonCategory:      e.CachingDisabledReasonCategory,
				reasonExplanation:   e.CachingDisabledExplanation,
				originBuildCacheKey: e.OriginBuildCacheKey,
				actionable:          e.Actionable,
				timestamp:           p.Frame.Timestamp,
			}
		case events.TaskInputsPropertyNamesEvent:
			if e.ID != nil {
				propertyNames[*e.ID] = e
			}
		case events.TaskInputsImplementationEvent:
			if e.ID != nil {
				implementation[*e.ID] = e
			}
		case events.TaskInputsValuePropertiesEvent:
			if e.ID != nil {
				valueProperties[*e.ID] = e
			}
		case events.TaskInputsFilePropertyRootEvent:
			if e.ID != nil {
				filePropertyRoots[*e.ID] = append(filePropertyRoots[*e.ID], e)
			}
		case events.TaskInputsFilePropertyEvent:
			if e.ID != nil {
				fileProperties[*e.ID] = append(fileProperties[*e.ID], e)
			}
		case events.TaskInputsSnapshottingStartedEvent:
			// decoded for protocol coverage; not consumed by assembly
		case events.TaskInputsSnapshottingFinishedEvent:
			if e.Task != nil {
				snapshottingFinished[*e.Task] = e
			}
		case events.PlannedNodeEvent:
			plannedNodes = append(plannedNodes, e)
		case events.TransformExecutionRequestEvent:
			transformRequests = append(transformRequests, e)
		case events.TaskRegistrationSummaryEvent:
			taskRegistrationSummary = &e
		case events.BasicMemoryStatsEvent:
			basicMemoryStats = &e

		case events.TransformIdentificationEvent:
			transformIdentities[e.ID] = e
		case events.TransformExecutionStartedEvent:
			transformsStarted[e.ID] = transformStarted{timestamp: p.Frame.Timestamp}
		case events.TransformExecutionFinishedEvent:
			transformsFinished[e.ID] = transformFinished{
				failureID:           e.FailureID,
				outcome:             e.Outcome,
				executionReasons:    e.ExecutionReasons,
				reasonCategory:      e.CachingDisabledReasonCategory,
				reasonExplanation:   e.CachingDisabledExplanation,
				originBuildCacheKey: e.OriginBuildCacheKey,
				timestamp:           p.Frame.Timestamp,
			}

		case events.BuildAgentEvent:
			env.BuildAgent, envSeen = &e, true
		case events.BuildRequestedTasksEvent:
			env.BuildRequestedTasks, envSeen = &e, true
		case events.BuildFinishedEvent:
			env.BuildFinished, envSeen = &e, true
		case events.BuildModesEvent:
			env.BuildModes, envSeen = &e, true
		case events.DaemonStateEvent:
			env.DaemonState, envSeen = &e, true
		case events.EncodingEvent:
			env.Encoding, envSeen = &e, true
		case events.HardwareEvent:
			env.Hardware, envSeen = &e, true
		case events.JvmEvent:
			env.Jvm, envSeen = &e, true
		case events.JvmArgsEvent:
			env.JvmArgs, envSeen = &e, true
		case events.LocalityEvent:
			env.Locality, envSeen = &e, true
		case events.OsEvent:
			env.Os, envSeen = &e, true
		case events.ScopeIdsEvent:
			env.ScopeIds, envSeen = &e, true
		case events.FileRefRootsEvent:
			env.FileRefRoots, envSeen = &e, true
		case events.JavaToolchainUsageEvent:
			javaToolchains = append(javaToolchains, e)
			envSeen = true
		case events.BuildStartedEvent:
			// decoded for protocol coverage; marks the stream start only

		case events.OutputStyledTextEvent:
			for _, span := range e.Spans {
				consoleOutput = append(consoleOutput, ConsoleSpan{
					Category:  e.Category,
					LogLevel:  e.LogLevel,
					Text:      span.Text,
					Style:     span.Style,
					OwnerType: e.OwnerType,
					OwnerID:   e.OwnerID,
				})
			}

		case events.RawEvent:
			rawCounts[e.ID]++
		}
	}

	tasks := make([]Task, 0, len(identities))
	for id, identity := range identities {
		var className *string
		var startedAt *int64
		if s, ok := started[id]; ok {
			className = s.className
			ts := s.timestamp
			startedAt = &ts
		}

		var finishedAt, durationMs *int64
		var outcome *TaskOutcome
		var cacheable, actionable *bool
		var reasonCategory, reasonExplanation *string
		var originBuildCacheKey []byte
		if f, ok := finished[id]; ok {
			ts := f.timestamp
			finishedAt = &ts
			if startedAt != nil {
				d := ts - *startedAt
				durationMs = &d
			}
			if f.outcome != nil {
				if o, ok := taskOutcomeFromOrdinal(*f.outcome); ok {
					outcome = &o
				}
			}
			c := f.cacheable
			cacheable = &c
			a := f.actionable
			actionable = &a
			reasonCategory = f.reasonCategory
			reasonExplanation = f.reasonExplanation
			originBuildCacheKey = f.originBuildCacheKey
		}

		inputs := buildTaskInputs(id, propertyNames, implementation, valueProperties,
			filePropertyRoots, fileProperties, snapshottingFinished)

		tasks = append(tasks, Task{
			ID:                            id,
			BuildPath:                     identity.BuildPath,
			TaskPath:                      identity.TaskPath,
			ClassName:                     className,
			Outcome:                       outcome,
			Cacheable:                     cacheable,
			CachingDisabledReasonCategory: reasonCategory,
			CachingDisabledExplanation:    reasonExplanation,
			OriginBuildCacheKey:           originBuildCacheKey,
			Actionable:                    actionable,
			StartedAt:                     startedAt,
			FinishedAt:                    finishedAt,
			DurationMs:                    durationMs,
			Inputs:                        inputs,
		})
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	rawEvents := make([]RawEventCount, 0, len(rawCounts))
	for wireID, count := range rawCounts {
		rawEvents = append(rawEvents, RawEventCount{WireID: wireID, Count: count})
	}
	sort.Slice(rawEvents, func(i, j int) bool { return rawEvents[i].WireID < rawEvents[j].WireID })

	report := Report{
		Tasks:                      tasks,
		PlannedNodes:               convertPlannedNodes(plannedNodes),
		TransformExecutionRequests: convertTransformRequests(transformRequests),
		RawEvents:                  rawEvents,
		TaskRegistrationSummary:    convertTaskRegistrationSummary(taskRegistrationSummary),
		BasicMemoryStats:           convertBasicMemoryStats(basicMemoryStats),
		Transforms:                 buildTransforms(transformIdentities, transformsStarted, transformsFinished),
		ConsoleOutput:              consoleOutput,
		PayloadDigest:              digest.Sum64(),
	}
	if envSeen {
		env.JavaToolchains = javaToolchains
		report.Environment = &env
	}
	return report
}

func writeFrameDigest(d *hash.Digest, f frame.Framed) {
	var hdr [14]byte
	digestByteOrder.PutUint16(hdr[0:2], f.WireID)
	digestByteOrder.PutUint64(hdr[2:10], uint64(f.Timestamp))
	digestByteOrder.PutUint32(hdr[10:14], uint32(f.Ordinal))
	d.Write(hdr[:])
	d.Write(f.Body)
}

func buildTaskInputs(
	id int64,
	propertyNames map[int64]events.TaskInputsPropertyNamesEvent,
	implementation map[int64]events.TaskInputsImplementationEvent,
	valueProperties map[int64]events.TaskInputsValuePropertiesEvent,
	filePropertyRoots map[int64][]events.TaskInputsFilePropertyRootEvent,
	fileProperties map[int64][]events.TaskInputsFilePropertyEvent,
	snapshottingFinished map[int64]events.TaskInputsSnapshottingFinishedEvent,
) *TaskInputs {
	var pn *PropertyNames
	if e, ok := propertyNames[id]; ok {
		pn = &PropertyNames{ValueInputs: e.ValueInputs, FileInputs: e.FileInputs, Outputs: e.Outputs}
	}
	var impl *Implementation
	if e, ok := implementation[id]; ok {
		impl = &Implementation{
			ClassLoaderHash:         e.ClassLoaderHash,
			ActionClassLoaderHashes: e.ActionClassLoaderHashes,
			ActionClassNames:        e.ActionClassNames,
		}
	}
	var vp *ValueProperties
	if e, ok := valueProperties[id]; ok {
		vp = &ValueProperties{Hashes: e.Hashes}
	}
	var roots []FilePropertyRoot
	for _, e := range filePropertyRoots[id] {
		children := make([]FilePropertyRootChild, 0, len(e.Children))
		for _, c := range e.Children {
			children = append(children, FilePropertyRootChild{Name: c.Name, Hash: c.Hash, Parent: c.Parent})
		}
		roots = append(roots, FilePropertyRoot{
			FileRoot: e.File.Root,
			FilePath: e.File.Path,
			RootHash: e.RootHash,
			Children: children,
		})
	}
	var props []FileProperty
	for _, e := range fileProperties[id] {
		props = append(props, FileProperty{Attributes: e.Attributes, Hash: e.Hash, Roots: e.Roots})
	}
	var sr *SnapshottingResult
	if e, ok := snapshottingFinished[id]; ok && e.Result != nil {
		sr = &SnapshottingResult{
			Hash:           e.Result.Hash,
			Implementation: e.Result.Implementation,
			PropertyNames:  e.Result.PropertyNames,
			ValueInputs:    e.Result.ValueInputs,
			FileInputs:     e.Result.FileInputs,
		}
	}

	if pn == nil && impl == nil && vp == nil && len(roots) == 0 && len(props) == 0 && sr == nil {
		return nil
	}
	return &TaskInputs{
		PropertyNames:      pn,
		Implementation:     impl,
		ValueProperties:    vp,
		FilePropertyRoots:  roots,
		FileProperties:     props,
		SnapshottingResult: sr,
	}
}

func buildTransforms(
	identities map[int64]events.TransformIdentificationEvent,
	started map[int64]transformStarted,
	finished map[int64]transformFinished,
) []Transform {
	transforms := make([]Transform, 0, len(identities))
	for id, identity := range identities {
		t := Transform{
			ID:                   id,
			ComponentIdentity:    identity.ComponentIdentity,
			InputArtifactName:    identity.InputArtifactName,
			TransformActionClass: identity.TransformActionClass,
			FromAttributes:       identity.FromAttributes,
			ToAttributes:         identity.ToAttributes,
		}
		if s, ok := started[id]; ok {
			ts := s.timestamp
			t.StartedAt = &ts
		}
		if f, ok := finished[id]; ok {
			ts := f.timestamp
			t.FinishedAt = &ts
			if t.StartedAt != nil {
				d := ts - *t.StartedAt
				t.DurationMs = &d
			}
			t.FailureID = f.failureID
			t.Outcome = f.outcome
			t.ExecutionReasons = f.executionReasons
			t.CachingDisabledReasonCategory = f.reasonCategory
			t.CachingDisabledExplanation = f.reasonExplanation
			t.OriginBuildCacheKey = f.originBuildCacheKey
		}
		transforms = append(transforms, t)
	}
	sort.Slice(transforms, func(i, j int) bool { return transforms[i].ID < transforms[j].ID })
	return transforms
}

func convertPlannedNodes(src []events.PlannedNodeEvent) []PlannedNode {
	if len(src) == 0 {
		return nil
	}
	out := make([]PlannedNode, 0, len(src))
	for _, e := range src {
		out = append(out, PlannedNode{
			ID:             e.ID,
			Dependencies:   e.Dependencies,
			MustRunAfter:   e.MustRunAfter,
			ShouldRunAfter: e.ShouldRunAfter,
			FinalizedBy:    e.FinalizedBy,
		})
	}
	return out
}

func convertTransformRequests(src []events.TransformExecutionRequestEvent) []TransformExecutionRequest {
	if len(src) == 0 {
		return nil
	}
	out := make([]TransformExecutionRequest, 0, len(src))
	for _, e := range src {
		out = append(out, TransformExecutionRequest{
			NodeID:           e.NodeID,
			IdentificationID: e.IdentificationID,
			ExecutionID:      e.ExecutionID,
		})
	}
	return out
}

func convertTaskRegistrationSummary(e *events.TaskRegistrationSummaryEvent) *TaskRegistrationSummary {
	if e == nil {
		return nil
	}
	return &TaskRegistrationSummary{TaskCount: e.TaskCount}
}

func convertBasicMemoryStats(e *events.BasicMemoryStatsEvent) *BasicMemoryStats {
	if e == nil {
		return nil
	}
	snapshots := make([]MemoryPoolSnapshot, 0, len(e.PeakSnapshots))
	for _, s := range e.PeakSnapshots {
		snapshots = append(snapshots, MemoryPoolSnapshot{
			Name:      s.Name,
			Heap:      s.Heap,
			Init:      s.Init,
			Used:      s.Used,
			Committed: s.Committed,
			Max:       s.Max,
		})
	}
	return &BasicMemoryStats{
		Free:          e.Free,
		Total:         e.Total,
		Max:           e.Max,
		GcTime:        e.GcTime,
		PeakSnapshots: snapshots,
	}
}
