package site

import (
	"context"
	"html/template"
	"path/filepath"

	"git.home.luguber.info/inful/sitegen/internal/content"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/frontmatter"
	"git.home.luguber.info/inful/sitegen/internal/fsutil"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/observability"
)

// stagePages renders one page per discovered document.
func stagePages(ctx context.Context, bs *BuildState) error {
	for _, doc := range bs.Tree.Documents {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := bs.emitPage(ctx, doc); err != nil {
			return err
		}
	}
	bs.recorder.AddEmitted("page", bs.Report.Pages)
	return nil
}

func (bs *BuildState) emitPage(ctx context.Context, doc content.Document) error {
	raw, err := doc.Read()
	if err != nil {
		return ferrors.FileSystemError("failed to read document").WithCause(err).
			WithContext("path", doc.Path).Build()
	}

	page := parsePage(ctx, doc, raw)

	body, err := bs.renderer.Render(page.Body)
	if err != nil {
		return ferrors.MarkdownError("failed to render markdown").WithCause(err).
			WithContext("path", doc.Path).Build()
	}

	fingerprint, err := page.Fingerprint()
	if err != nil {
		return ferrors.ContentError("failed to fingerprint document").WithCause(err).
			WithContext("path", doc.Path).Build()
	}

	title := page.Title()
	if title == "" {
		title = bs.rules.Label(doc.RelativePath)
	}

	data := PageData{
		Content:     template.HTML(body), // #nosec G203 -- rendered from author content
		Nav:         bs.navMap,
		NavEntries:  bs.navEntries,
		Title:       title,
		Meta:        page.Fields,
		Source:      doc.RelativePath,
		Output:      doc.OutputName,
		Fingerprint: fingerprint,
	}

	name := bs.cfg.Templates.Page
	out, err := bs.Engine.RenderBytes(name, data)
	if err != nil {
		return ferrors.TemplateError("failed to render page").WithCause(err).
			WithContext("path", doc.Path).WithContext("template", name).Build()
	}

	target := filepath.Join(bs.cfg.Output.Directory, doc.OutputName)
	if err := fsutil.WriteFile(target, out); err != nil {
		return ferrors.FileSystemError("failed to write page").WithCause(err).
			WithContext("path", target).Build()
	}

	bs.printProgress(doc.Path)
	bs.Emitted = append(bs.Emitted, doc.OutputName)
	bs.Report.Pages++
	observability.DebugContext(ctx, "Page written", logfields.File(doc.RelativePath), logfields.Output(doc.OutputName))
	return nil
}

// parsePage splits frontmatter from the document. A malformed block is not
// fatal: the whole text is rendered as Markdown, as if it had no frontmatter.
func parsePage(ctx context.Context, doc content.Document, raw []byte) *frontmatter.Page {
	page, err := frontmatter.Parse(raw)
	if err != nil {
		observability.WarnContext(ctx, "Ignoring malformed frontmatter",
			logfields.File(doc.RelativePath), logfields.Error(err))
		return &frontmatter.Page{Fields: map[string]any{}, Body: raw}
	}
	return page
}
