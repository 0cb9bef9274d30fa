package content

import (
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

// Rules control how a content path becomes a navigation label and an output filename.
type Rules struct {
	MarkupExt string // ".md"
	OutputExt string // ".html"
	Separator string // joins flattened segments, "."
	IndexName string // "index"
	HomeLabel string // "Home"
}

// RulesFromConfig extracts the naming rules from cfg.
func RulesFromConfig(cfg *config.Config) Rules {
	return Rules{
		MarkupExt: cfg.Content.Extension,
		OutputExt: cfg.Output.Extension,
		Separator: cfg.Output.Separator,
		IndexName: cfg.Content.IndexName,
		HomeLabel: cfg.Content.HomeLabel,
	}
}

// Derive maps a path relative to the content root to its navigation label and flat
// output filename. Directories have no markup extension and derive the same way:
// "blog" -> ("Blog", "blog.html").
func Derive(rel string, r Rules) (label, outputPath string) {
	stem := r.stem(rel)
	return r.label(stem), r.flatten(stem) + r.OutputExt
}

// OutputPath is the flat output filename for rel.
func (r Rules) OutputPath(rel string) string {
	_, out := Derive(rel, r)
	return out
}

// Label is the navigation label for rel.
func (r Rules) Label(rel string) string {
	label, _ := Derive(rel, r)
	return label
}

// IsMarkup reports whether name carries the markup extension.
func (r Rules) IsMarkup(name string) bool {
	return strings.EqualFold(filepath.Ext(name), r.MarkupExt)
}

// stem normalises separators and strips the markup extension.
func (r Rules) stem(rel string) string {
	p := path.Clean(filepath.ToSlash(rel))
	p = strings.TrimPrefix(p, "./")
	if ext := path.Ext(p); strings.EqualFold(ext, r.MarkupExt) {
		p = strings.TrimSuffix(p, ext)
	}
	return p
}

func (r Rules) flatten(stem string) string {
	return strings.ReplaceAll(stem, "/", r.Separator)
}

func (r Rules) label(stem string) string {
	if stem == r.IndexName {
		return r.HomeLabel
	}
	return titleWords(r.flatten(stem))
}

// titleWords title-cases every run of letters on its own, so "my_notes" and
// "blog.post1" become "My_Notes" and "Blog.Post1". cases.Title alone treats
// "_" and "." as inside a word.
func titleWords(s string) string {
	caser := cases.Title(language.English)
	var b strings.Builder
	start := -1
	for i, r := range s {
		switch {
		case unicode.IsLetter(r):
			if start < 0 {
				start = i
			}
		case start >= 0:
			b.WriteString(caser.String(s[start:i]))
			b.WriteRune(r)
			start = -1
		default:
			b.WriteRune(r)
		}
	}
	if start >= 0 {
		b.WriteString(caser.String(s[start:]))
	}
	return b.String()
}
