package site

import (
	"context"
	stdErrors "errors"
	"log/slog"

	"git.home.luguber.info/inful/sitegen/internal/content"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/observability"
	"git.home.luguber.info/inful/sitegen/internal/templates"
)

// stageDiscover lists the content tree and parses the page layouts.
func stageDiscover(ctx context.Context, bs *BuildState) error {
	root := bs.cfg.Content.Directory
	tree, err := content.Discover(root, bs.rules, bs.cfg.Content.AssetDir)
	if err != nil {
		if stdErrors.Is(err, content.ErrContentRootNotFound) {
			return ferrors.NotFoundError("content directory not found").WithCause(err).
				WithContext("path", root).Build()
		}
		return ferrors.FileSystemError("failed to read content directory").WithCause(err).
			WithContext("path", root).Build()
	}
	bs.Tree = tree

	dir := bs.cfg.Templates.Directory
	engine, err := templates.Load(dir, bs.cfg.Templates.Page, bs.cfg.Templates.List)
	if err != nil {
		return ferrors.TemplateError("failed to load templates").WithCause(err).
			WithContext("path", dir).Build()
	}
	bs.Engine = engine

	observability.InfoContext(ctx, "Content discovered",
		logfields.Path(root),
		slog.Int("documents", len(tree.Documents)),
		slog.Int("collections", len(tree.Collections)))
	return nil
}

// stageNavigation builds the navigation index once for every render of this build.
func stageNavigation(ctx context.Context, bs *BuildState) error {
	nav := content.BuildNavigation(bs.Tree.Entries, bs.rules)
	bs.Navigation = nav
	bs.navMap = nav.Map()
	bs.navEntries = nav.Entries()
	bs.Report.NavEntries = nav.Len()

	for _, e := range bs.navEntries {
		observability.DebugContext(ctx, "Navigation entry", logfields.Label(e.Label), logfields.Output(e.Path))
	}
	return nil
}
