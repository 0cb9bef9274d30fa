package site

import (
	"context"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/fsutil"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/observability"
)

// stageAssets copies the static template files to the output root and the
// content asset subtree to the output asset subtree.
func stageAssets(ctx context.Context, bs *BuildState) error {
	tplDir := bs.cfg.Templates.Directory
	out := bs.cfg.Output.Directory
	static, err := fsutil.CopyTopLevel(tplDir, out, bs.cfg.Templates.StaticExtensions)
	if err != nil {
		return ferrors.FileSystemError("failed to copy static files").WithCause(err).
			WithContext("path", tplDir).Build()
	}
	for _, name := range static {
		observability.DebugContext(ctx, "Copied static file", logfields.File(name))
	}
	bs.Report.Assets += len(static)

	src := bs.cfg.AssetSource()
	if !fsutil.IsDir(src) {
		observability.DebugContext(ctx, "No asset directory, skipping", logfields.Path(src))
	} else {
		n, err := fsutil.CopyDir(src, bs.cfg.AssetTarget())
		if err != nil {
			return ferrors.FileSystemError("failed to copy assets").WithCause(err).
				WithContext("path", src).Build()
		}
		bs.Report.Assets += n
	}

	bs.recorder.AddEmitted("asset", bs.Report.Assets)
	observability.InfoContext(ctx, "Assets copied", logfields.Count(bs.Report.Assets))
	return nil
}
