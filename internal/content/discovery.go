// Package content discovers markup documents and collections under a content root
// and derives their navigation labels and flat output names.
package content

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/util/sets"
)

// Document is a markup source file at depth 1 or 2 under the content root.
type Document struct {
	Path         string // filesystem path
	RelativePath string // slash-separated, relative to the content root
	Collection   string // empty for top-level documents
	Name         string // file name without extension
	OutputName   string // flattened output filename
}

// Collection is a directory directly under the content root.
type Collection struct {
	Name       string
	Path       string
	OutputName string
	Items      []Document // immediate markup children, sorted
}

// Entry is a top-level item of the content root that appears in the navigation.
type Entry struct {
	Name         string
	RelativePath string
	IsDir        bool
}

// Tree is the result of a discovery pass.
type Tree struct {
	Root        string
	Entries     []Entry
	Documents   []Document
	Collections []Collection
}

// Discover lists the content root: top-level markup documents, collection
// directories and the markup documents directly inside each collection. Hidden
// entries and the names in exclude are skipped; nothing below depth 2 is visited.
func Discover(root string, rules Rules, exclude ...string) (*Tree, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("%s is not a directory", root)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrContentRootNotFound, root, err)
	}

	skip := sets.New(exclude...)
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirReadFailed, root, err)
	}

	tree := &Tree{Root: root}
	for _, e := range entries {
		name := e.Name()
		if isHidden(name) || skip.Has(name) {
			continue
		}
		switch {
		case e.IsDir():
			col, err := discoverCollection(root, name, rules)
			if err != nil {
				return nil, err
			}
			tree.Entries = append(tree.Entries, Entry{Name: name, RelativePath: name, IsDir: true})
			tree.Collections = append(tree.Collections, col)
			tree.Documents = append(tree.Documents, col.Items...)
		case rules.IsMarkup(name):
			tree.Entries = append(tree.Entries, Entry{Name: name, RelativePath: name})
			tree.Documents = append(tree.Documents, newDocument(root, "", name, rules))
		default:
			slog.Debug("Skipping non-markup file", logfields.Path(filepath.Join(root, name)))
		}
	}

	sort.Slice(tree.Documents, func(i, j int) bool {
		return tree.Documents[i].RelativePath < tree.Documents[j].RelativePath
	})

	slog.Debug("Content discovered",
		logfields.Path(root),
		slog.Int("documents", len(tree.Documents)),
		slog.Int("collections", len(tree.Collections)))
	return tree, nil
}

func discoverCollection(root, name string, rules Rules) (Collection, error) {
	dir := filepath.Join(root, name)
	children, err := os.ReadDir(dir)
	if err != nil {
		return Collection{}, fmt.Errorf("%w: %s: %w", ErrDirReadFailed, dir, err)
	}

	col := Collection{Name: name, Path: dir, OutputName: rules.OutputPath(name)}
	for _, c := range children {
		if c.IsDir() || isHidden(c.Name()) || !rules.IsMarkup(c.Name()) {
			continue
		}
		col.Items = append(col.Items, newDocument(root, name, c.Name(), rules))
	}
	return col, nil
}

func newDocument(root, collection, filename string, rules Rules) Document {
	rel := path.Join(collection, filename)
	return Document{
		Path:         filepath.Join(root, filepath.FromSlash(rel)),
		RelativePath: rel,
		Collection:   collection,
		Name:         strings.TrimSuffix(filename, filepath.Ext(filename)),
		OutputName:   rules.OutputPath(rel),
	}
}

// Read returns the raw document text. Content is not cached on the Document.
func (d Document) Read() ([]byte, error) {
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileReadFailed, d.Path, err)
	}
	return data, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
