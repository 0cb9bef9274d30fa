package site

import (
	"context"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/linkverify"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/observability"
)

// stageVerifyLinks checks the local links of every page written by this build.
// Broken links are reported as a stage warning and never fail the build.
func stageVerifyLinks(ctx context.Context, bs *BuildState) error {
	broken, err := linkverify.Verify(bs.cfg.Output.Directory, bs.Emitted)
	if err != nil {
		return NewWarnStageError(StageVerifyLinks,
			ferrors.FileSystemError("failed to verify links").WithCause(err).Warning().Build())
	}
	bs.Report.BrokenLinks = broken
	bs.recorder.SetBrokenLinks(len(broken))

	for _, b := range broken {
		observability.WarnContext(ctx, "Broken link",
			logfields.File(b.Source),
			logfields.Output(b.Target))
	}
	if len(broken) > 0 {
		return NewWarnStageError(StageVerifyLinks,
			ferrors.ContentError("local links without a target").WithCause(ErrBrokenLinks).
				WithContext("count", len(broken)).Warning().Build())
	}
	return nil
}
