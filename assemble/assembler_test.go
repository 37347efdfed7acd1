package assemble

import (
	"testing"

	"github.com/arloliu/buildscan-decoder/events"
	"github.com/arloliu/buildscan-decoder/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fr(wireID uint16, ts int64) frame.Framed {
	return frame.Framed{WireID: wireID, Timestamp: ts, Ordinal: 0}
}

func TestAssembleSingleTask(t *testing.T) {
	className := "org.gradle.DefaultTask"
	outcome := uint64(3)
	pairs := []Pair{
		{fr(117, 1000), events.TaskIdentityEvent{ID: 1, BuildPath: ":", TaskPath: ":app:build"}},
		{fr(1563, 2000), events.TaskStartedEvent{ID: 1, BuildPath: ":", Path: ":app:build", ClassName: &className}},
		{fr(2074, 3000), events.TaskFinishedEvent{ID: 1, Path: ":app:build", Outcome: &outcome, Cacheable: false, Actionable: false}},
	}

	report := Assemble(pairs)

	require.Len(t, report.Tasks, 1)
	task := report.Tasks[0]
	assert.Equal(t, ":app:build", task.TaskPath)
	require.NotNil(t, task.StartedAt)
	assert.Equal(t, int64(2000), *task.StartedAt)
	require.NotNil(t, task.FinishedAt)
	assert.Equal(t, int64(3000), *task.FinishedAt)
	require.NotNil(t, task.DurationMs)
	assert.Equal(t, int64(1000), *task.DurationMs)
	require.NotNil(t, task.Outcome)
	assert.Equal(t, OutcomeSuccess, *task.Outcome)
	assert.Nil(t, task.Inputs)
}

func TestAssembleTaskWithoutIdentityIsSuppressed(t *testing.T) {
	pairs := []Pair{
		{fr(1563, 1000), events.TaskStartedEvent{ID: 99, BuildPath: ":", Path: ":unknown"}},
		{fr(2074, 2000), events.TaskFinishedEvent{ID: 99, Path: ":unknown"}},
	}
	report := Assemble(pairs)
	assert.Empty(t, report.Tasks)
}

func TestAssembleTaskWithDeclaredInputs(t *testing.T) {
	id := int64(1)
	pairs := []Pair{
		{fr(117, 1000), events.TaskIdentityEvent{ID: 1, BuildPath: ":", TaskPath: ":app:compileJava"}},
		{fr(92, 1100), events.TaskInputsPropertyNamesEvent{ID: &id, ValueInputs: []string{"sourceCompatibility"}}},
	}
	report := Assemble(pairs)
	require.Len(t, report.Tasks, 1)
	require.NotNil(t, report.Tasks[0].Inputs)
	require.NotNil(t, report.Tasks[0].Inputs.PropertyNames)
	assert.Equal(t, []string{"sourceCompatibility"}, report.Tasks[0].Inputs.PropertyNames.ValueInputs)
}

func TestAssembleRawEventCounting(t *testing.T) {
	pairs := []Pair{
		{fr(9999, 1000), events.RawEvent{ID: 9999, Body: []byte{0x01}}},
		{fr(9999, 1100), events.RawEvent{ID: 9999, Body: []byte{0x02}}},
		{fr(8888, 1200), events.RawEvent{ID: 8888, Body: nil}},
	}
	report := Assemble(pairs)
	require.Len(t, report.RawEvents, 2)
	assert.Equal(t, RawEventCount{WireID: 8888, Count: 1}, report.RawEvents[0])
	assert.Equal(t, RawEventCount{WireID: 9999, Count: 2}, report.RawEvents[1])
}

func TestAssembleEnvironmentSingleton(t *testing.T) {
	pairs := []Pair{
		{fr(12, 1000), events.HardwareEvent{NumProcessors: 8}},
		{fr(12, 2000), events.HardwareEvent{NumProcessors: 16}},
	}
	report := Assemble(pairs)
	require.NotNil(t, report.Environment)
	require.NotNil(t, report.Environment.Hardware)
	assert.Equal(t, int32(16), report.Environment.Hardware.NumProcessors)
}

func TestAssembleNoEnvironmentWhenNoneSeen(t *testing.T) {
	pairs := []Pair{
		{fr(117, 1000), events.TaskIdentityEvent{ID: 1, BuildPath: ":", TaskPath: ":app"}},
	}
	report := Assemble(pairs)
	assert.Nil(t, report.Environment)
}

func TestAssembleTransformJoin(t *testing.T) {
	pairs := []Pair{
		{fr(138, 500), events.TransformExecutionStartedEvent{ID: 7}},
		{fr(136, 510), events.TransformIdentificationEvent{ID: 7, InputArtifactName: "jar"}},
		{fr(395, 900), events.TransformExecutionFinishedEvent{ID: 7}},
	}
	report := Assemble(pairs)
	require.Len(t, report.Transforms, 1)
	tr := report.Transforms[0]
	assert.Equal(t, "jar", tr.InputArtifactName)
	require.NotNil(t, tr.StartedAt)
	assert.Equal(t, int64(500), *tr.StartedAt)
	require.NotNil(t, tr.DurationMs)
	assert.Equal(t, int64(400), *tr.DurationMs)
}

func TestAssembleConsoleOutput(t *testing.T) {
	category := "LIFECYCLE"
	pairs := []Pair{
		{fr(274, 100), events.OutputStyledTextEvent{
			Category: &category,
			Spans:    []events.OutputSpan{{Text: "Building..."}},
		}},
	}
	report := Assemble(pairs)
	require.Len(t, report.ConsoleOutput, 1)
	assert.Equal(t, "Building...", report.ConsoleOutput[0].Text)
	require.NotNil(t, report.ConsoleOutput[0].Category)
	assert.Equal(t, "LIFECYCLE", *report.ConsoleOutput[0].Category)
}

func TestAssemblePayloadDigestDeterministic(t *testing.T) {
	pairs := []Pair{
		{fr(117, 1000), events.TaskIdentityEvent{ID: 1, BuildPath: ":", TaskPath: ":app"}},
	}
	r1 := Assemble(pairs)
	r2 := Assemble(pairs)
	assert.Equal(t, r1.PayloadDigest, r2.PayloadDigest)
	assert.NotZero(t, r1.PayloadDigest)
}
