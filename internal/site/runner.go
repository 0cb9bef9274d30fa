package site

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/observability"
)

// RunStages executes stages in order, recording timing, and stops on the first
// fatal or canceled stage. Warning stage errors are recorded and the run continues.
func RunStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := NewCanceledStageError(st.Name, err)
			bs.Report.AddError(se)
			bs.Report.RecordStageResult(st.Name, StageResultCanceled, bs.recorder)
			return se
		}

		sctx := observability.WithStage(ctx, string(st.Name))
		t0 := time.Now()
		err := st.Fn(sctx, bs)
		dur := time.Since(t0)

		bs.Report.StageDurations[st.Name] = dur
		bs.recorder.ObserveStageDuration(string(st.Name), dur)

		se := classifyStageError(st.Name, err)
		res := StageResultSuccess
		if se != nil {
			switch se.Kind {
			case StageErrorWarning:
				res = StageResultWarning
				bs.Report.AddWarning(se)
			case StageErrorCanceled:
				res = StageResultCanceled
				bs.Report.AddError(se)
			default:
				res = StageResultFatal
				bs.Report.AddError(se)
			}
		}
		bs.Report.RecordStageResult(st.Name, res, bs.recorder)
		observability.DebugContext(sctx, "Stage complete",
			logfields.DurationMS(dur),
			slog.String("result", string(res)))

		if se != nil && se.Kind != StageErrorWarning {
			return se
		}
	}
	return nil
}

func classifyStageError(stage StageName, err error) *StageError {
	if err == nil {
		return nil
	}
	var se *StageError
	if stdErrors.As(err, &se) {
		return se
	}
	if stdErrors.Is(err, context.Canceled) || stdErrors.Is(err, context.DeadlineExceeded) {
		return NewCanceledStageError(stage, err)
	}
	return NewFatalStageError(stage, err)
}

func stageMetric(res StageResult) metrics.ResultLabel {
	switch res {
	case StageResultWarning:
		return metrics.ResultWarning
	case StageResultFatal:
		return metrics.ResultFatal
	case StageResultCanceled:
		return metrics.ResultCanceled
	default:
		return metrics.ResultSuccess
	}
}
