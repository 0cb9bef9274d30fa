package site

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/metrics"
)

type testRecorder struct {
	metrics.NoopRecorder
	stageDurations map[string]int
	stageResults   map[string]metrics.ResultLabel
	outcomes       []metrics.BuildOutcomeLabel
}

func newTestRecorder() *testRecorder {
	return &testRecorder{stageDurations: map[string]int{}, stageResults: map[string]metrics.ResultLabel{}}
}

func (r *testRecorder) ObserveStageDuration(stage string, _ time.Duration) { r.stageDurations[stage]++ }
func (r *testRecorder) IncStageResult(stage string, res metrics.ResultLabel) {
	r.stageResults[stage] = res
}
func (r *testRecorder) IncBuildOutcome(o metrics.BuildOutcomeLabel) { r.outcomes = append(r.outcomes, o) }

func newTestState(rec metrics.Recorder) *BuildState {
	return &BuildState{recorder: rec, Report: NewReport("test")}
}

func TestRunStages_StopsOnFatal(t *testing.T) {
	rec := newTestRecorder()
	bs := newTestState(rec)
	var ran []StageName
	step := func(name StageName, err error) StageDef {
		return StageDef{Name: name, Fn: func(context.Context, *BuildState) error {
			ran = append(ran, name)
			return err
		}}
	}
	boom := errors.New("boom")

	err := RunStages(context.Background(), bs, []StageDef{
		step(StageClean, nil),
		step(StagePages, boom),
		step(StageAssets, nil),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageErrorFatal, se.Kind)
	assert.Equal(t, StagePages, se.Stage)

	assert.Equal(t, []StageName{StageClean, StagePages}, ran)
	assert.Equal(t, metrics.ResultSuccess, rec.stageResults["clean"])
	assert.Equal(t, metrics.ResultFatal, rec.stageResults["pages"])
	assert.Equal(t, 1, rec.stageDurations["pages"])

	bs.Report.Finish()
	assert.Equal(t, OutcomeFailed, bs.Report.Outcome)
}

func TestRunStages_WarningContinues(t *testing.T) {
	bs := newTestState(newTestRecorder())
	ran := 0

	err := RunStages(context.Background(), bs, NewPipeline().
		Add(StageVerifyLinks, func(context.Context, *BuildState) error {
			ran++
			return NewWarnStageError(StageVerifyLinks, errors.New("soft"))
		}).
		Add(StageAssets, func(context.Context, *BuildState) error {
			ran++
			return nil
		}).
		Build())

	require.NoError(t, err)
	assert.Equal(t, 2, ran)
	bs.Report.Finish()
	assert.Equal(t, OutcomeWarning, bs.Report.Outcome)
	assert.Len(t, bs.Report.Warnings, 1)
}

func TestRunStages_CanceledBeforeStage(t *testing.T) {
	bs := newTestState(newTestRecorder())
	ctx, cancel := context.WithCancel(context.Background())

	err := RunStages(ctx, bs, []StageDef{
		{Name: StageClean, Fn: func(context.Context, *BuildState) error {
			cancel()
			return nil
		}},
		{Name: StagePages, Fn: func(context.Context, *BuildState) error {
			t.Fatal("stage after cancellation must not run")
			return nil
		}},
	})

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageErrorCanceled, se.Kind)
	assert.Equal(t, StageResultCanceled, bs.Report.StageResults[StagePages])
}

func TestRunStages_ContextErrorFromStageIsCanceled(t *testing.T) {
	bs := newTestState(newTestRecorder())

	err := RunStages(context.Background(), bs, []StageDef{
		{Name: StagePages, Fn: func(context.Context, *BuildState) error { return context.DeadlineExceeded }},
	})

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageErrorCanceled, se.Kind)
}

func TestPipeline_AddIf(t *testing.T) {
	noop := func(context.Context, *BuildState) error { return nil }
	defs := NewPipeline().Add(StageClean, noop).AddIf(false, StageVerifyLinks, noop).Build()
	assert.Len(t, defs, 1)
}

func TestBuild_RecordsOutcomeMetric(t *testing.T) {
	f := newFixture(t, map[string]string{"src/content/index.md": "# Home\n"})
	rec := newTestRecorder()

	_, err := NewBuilder(f.cfg, WithProgress(f.progress), WithRecorder(rec)).Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []metrics.BuildOutcomeLabel{metrics.BuildOutcomeSuccess}, rec.outcomes)
	assert.Equal(t, metrics.ResultSuccess, rec.stageResults["assets"])
}
