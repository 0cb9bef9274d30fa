// Package templates loads the page layouts from the template directory and
// executes them with html/template.
//
// Every top-level *.html file that is not itself a page layout is parsed into a
// shared base set, so layouts can {{template "header.html" .}} or override
// {{block}} definitions from a base layout. Each page layout is parsed on top of
// its own clone of the base set.
package templates

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/util/sets"
)

var (
	// ErrTemplateNotFound indicates a requested layout is missing from the template directory.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrTemplateParse indicates a template file failed to parse.
	ErrTemplateParse = errors.New("template parse failed")
	// ErrTemplateExecute indicates executing a layout failed.
	ErrTemplateExecute = errors.New("template execution failed")
)

// missingKey makes a lookup of an absent map key an execution error. Clone does
// not carry options over, so it is set on every layout.
const missingKey = "missingkey=error"

// Engine holds parsed page layouts keyed by file name.
type Engine struct {
	dir   string
	pages map[string]*template.Template
}

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	title := cases.Title(language.English)
	return template.FuncMap{
		"title":    title.String,
		"safeHTML": func(s string) template.HTML { return template.HTML(s) }, // #nosec G203 -- author-controlled content
		"lower":    strings.ToLower,
	}
}

// Load parses the named page layouts found in dir.
func Load(dir string, pages ...string) (*Engine, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplateParse, dir, err)
	}
	sort.Strings(files)

	present := sets.New[string]()
	for _, f := range files {
		present.Add(filepath.Base(f))
	}
	for _, p := range pages {
		if !present.Has(p) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, filepath.Join(dir, p))
		}
	}

	base := template.New("").Funcs(Funcs()).Option(missingKey)
	layouts := sets.New(pages...)
	for _, f := range files {
		name := filepath.Base(f)
		if layouts.Has(name) {
			continue
		}
		if err := parseFile(base, f); err != nil {
			return nil, err
		}
		slog.Debug("Loaded partial template", logfields.Template(name))
	}

	e := &Engine{dir: dir, pages: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("%w: clone base set: %w", ErrTemplateParse, err)
		}
		t.Option(missingKey)
		if err := parseFile(t, filepath.Join(dir, p)); err != nil {
			return nil, err
		}
		e.pages[p] = t
	}
	return e, nil
}

func parseFile(t *template.Template, path string) error {
	// #nosec G304 -- path comes from a glob of the configured template directory
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTemplateParse, path, err)
	}
	if _, err := t.New(filepath.Base(path)).Parse(string(src)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTemplateParse, path, err)
	}
	return nil
}

// Render executes the layout name with data into w.
func (e *Engine) Render(w io.Writer, name string, data any) error {
	t, ok := e.pages[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, filepath.Join(e.dir, name))
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTemplateExecute, name, err)
	}
	return nil
}

// RenderBytes executes the layout name and returns the full output. Nothing is
// returned on failure, so callers never write a partial page.
func (e *Engine) RenderBytes(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Render(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
