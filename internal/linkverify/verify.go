package linkverify

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// BrokenLink is a local link whose target does not exist under the output root.
type BrokenLink struct {
	Source string // page the link was found in, relative to the root
	Link   Link
	Target string // resolved path, relative to the root
}

func (b BrokenLink) String() string {
	return fmt.Sprintf("%s: <%s %s=%q> -> %s", b.Source, b.Link.Tag, b.Link.Attribute, b.Link.URL, b.Target)
}

// Verify checks the local links of each page (paths relative to root) and
// returns the ones that do not resolve to an existing file or directory.
func Verify(root string, pages []string) ([]BrokenLink, error) {
	var broken []BrokenLink
	for _, page := range pages {
		found, err := verifyPage(root, page)
		if err != nil {
			return broken, err
		}
		broken = append(broken, found...)
	}
	return broken, nil
}

func verifyPage(root, page string) ([]BrokenLink, error) {
	full := filepath.Join(root, filepath.FromSlash(page))
	f, err := os.Open(filepath.Clean(full))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").
			WithContext("html_path", full).Build()
	}
	defer func() {
		_ = f.Close()
	}()

	links, err := ExtractLinks(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", page, err)
	}

	var broken []BrokenLink
	for _, l := range links {
		if !IsLocal(l.URL) {
			continue
		}
		target, ok := Resolve(page, l.URL)
		if !ok {
			broken = append(broken, BrokenLink{Source: page, Link: l, Target: l.URL})
			continue
		}
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(target))); err != nil {
			broken = append(broken, BrokenLink{Source: page, Link: l, Target: target})
		}
	}
	return broken, nil
}

// Resolve returns the slash path, relative to the site root, that a local link
// on page points at. Query and fragment are dropped. ok is false when the link
// escapes the root.
func Resolve(page, link string) (target string, ok bool) {
	u, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	p := u.Path
	if strings.HasPrefix(p, "/") {
		p = path.Clean(strings.TrimPrefix(p, "/"))
	} else {
		p = path.Join(path.Dir(page), p)
	}
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", false
	}
	return p, true
}
