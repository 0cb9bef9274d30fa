package site

import (
	"html/template"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

// PageData is the context passed to the page layout.
type PageData struct {
	// Content is the rendered Markdown body.
	Content template.HTML
	// Nav maps navigation labels to output paths. Ranging over it in a
	// template visits labels in sorted order.
	Nav map[string]string
	// NavEntries holds the same entries in discovery order.
	NavEntries []content.NavEntry
	// Title is the frontmatter title, or the navigation label of the document.
	Title string
	// Meta holds the decoded frontmatter fields.
	Meta map[string]any
	// Source is the document path relative to the content root.
	Source string
	// Output is the generated file name.
	Output string
	// Fingerprint identifies the document content.
	Fingerprint string
}

// ListData is the context passed to the listing layout of a collection.
type ListData struct {
	Nav        map[string]string
	NavEntries []content.NavEntry
	// Items maps each document name (without extension) to its output path.
	Items map[string]string
	// Links holds Items in file name order.
	Links []content.NavEntry
	// Title is the collection directory name.
	Title string
}
