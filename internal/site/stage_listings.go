package site

import (
	"context"
	"path/filepath"

	"git.home.luguber.info/inful/sitegen/internal/content"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/fsutil"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/observability"
)

// stageListings renders one listing page per collection.
func stageListings(ctx context.Context, bs *BuildState) error {
	for _, col := range bs.Tree.Collections {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := bs.emitListing(ctx, col); err != nil {
			return err
		}
	}
	bs.recorder.AddEmitted("listing", bs.Report.Listings)
	return nil
}

func (bs *BuildState) emitListing(ctx context.Context, col content.Collection) error {
	items := make(map[string]string, len(col.Items))
	links := make([]content.NavEntry, 0, len(col.Items))
	for _, doc := range col.Items {
		items[doc.Name] = doc.OutputName
		links = append(links, content.NavEntry{Label: doc.Name, Path: doc.OutputName})
	}

	data := ListData{
		Nav:        bs.navMap,
		NavEntries: bs.navEntries,
		Items:      items,
		Links:      links,
		Title:      col.Name,
	}

	name := bs.cfg.Templates.List
	out, err := bs.Engine.RenderBytes(name, data)
	if err != nil {
		return ferrors.TemplateError("failed to render listing").WithCause(err).
			WithContext("collection", col.Name).WithContext("template", name).Build()
	}

	target := filepath.Join(bs.cfg.Output.Directory, col.OutputName)
	if err := fsutil.WriteFile(target, out); err != nil {
		return ferrors.FileSystemError("failed to write listing").WithCause(err).
			WithContext("path", target).Build()
	}

	bs.printProgress(col.Path)
	bs.Emitted = append(bs.Emitted, col.OutputName)
	bs.Report.Listings++
	observability.DebugContext(ctx, "Listing written",
		logfields.Collection(col.Name), logfields.Output(col.OutputName), logfields.Count(len(items)))
	return nil
}
