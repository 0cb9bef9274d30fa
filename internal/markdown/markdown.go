// Package markdown converts Markdown bodies into HTML fragments with goldmark.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

// Renderer turns Markdown source into an HTML fragment.
type Renderer interface {
	Render(src []byte) ([]byte, error)
}

// Options selects goldmark extensions and renderer behaviour.
type Options struct {
	GFM        bool
	HeadingIDs bool
	HardWraps  bool
	// EscapeHTML drops raw HTML from the source instead of passing it through.
	EscapeHTML bool
}

// OptionsFromConfig maps the markdown section of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		GFM:        cfg.Markdown.GFM,
		HeadingIDs: cfg.Markdown.HeadingIDs,
		HardWraps:  cfg.Markdown.HardWraps,
		EscapeHTML: cfg.Markdown.EscapeHTML,
	}
}

// GoldmarkRenderer is the goldmark-backed Renderer.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a renderer for opts. The returned value is safe for reuse
// across documents.
func NewRenderer(opts Options) *GoldmarkRenderer {
	var exts []goldmark.Extender
	if opts.GFM {
		exts = append(exts, extension.GFM)
	}

	var parserOpts []parser.Option
	if opts.HeadingIDs {
		parserOpts = append(parserOpts, parser.WithAutoHeadingID())
	}

	var rendererOpts []goldmark.Option
	var htmlOpts []renderer.Option
	if opts.HardWraps {
		htmlOpts = append(htmlOpts, gmhtml.WithHardWraps())
	}
	if !opts.EscapeHTML {
		htmlOpts = append(htmlOpts, gmhtml.WithUnsafe())
	}
	rendererOpts = append(rendererOpts,
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(htmlOpts...),
	)

	return &GoldmarkRenderer{md: goldmark.New(rendererOpts...)}
}

// Render converts src to HTML.
func (r *GoldmarkRenderer) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	return buf.Bytes(), nil
}
