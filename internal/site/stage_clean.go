package site

import (
	"context"
	"log/slog"
	"os"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/fsutil"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/observability"
)

// stageClean removes generated files from the top level of the output root and
// resets the output asset subtree. Nested directories are left alone.
func stageClean(ctx context.Context, bs *BuildState) error {
	out := bs.cfg.Output.Directory
	if err := os.MkdirAll(out, 0o755); err != nil {
		return ferrors.FileSystemError("failed to create output directory").WithCause(err).
			WithContext("path", out).Build()
	}

	removed, err := fsutil.RemoveTopLevel(out, bs.cfg.GeneratedExtensions())
	if err != nil {
		return ferrors.FileSystemError("failed to remove stale output").WithCause(err).
			WithContext("path", out).Build()
	}
	for _, name := range removed {
		observability.DebugContext(ctx, "Removed stale output", logfields.File(name))
	}
	bs.Report.Removed = len(removed)

	target := bs.cfg.AssetTarget()
	if err := fsutil.EnsureEmptyDir(target); err != nil {
		return ferrors.FileSystemError("failed to reset asset directory").WithCause(err).
			WithContext("path", target).Build()
	}

	observability.InfoContext(ctx, "Output cleaned",
		logfields.Output(out),
		logfields.Count(len(removed)),
		slog.String("assets", target))
	return nil
}
