// Package frontmatter separates optional YAML frontmatter from a Markdown body.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrMissingClosingDelimiter indicates the document opened a frontmatter block
// that is never closed.
var ErrMissingClosingDelimiter = errors.New("frontmatter opening delimiter without closing delimiter")

// ErrInvalidYAML indicates the frontmatter block is not a YAML mapping.
var ErrInvalidYAML = errors.New("frontmatter is not valid YAML")

// Page is a parsed document. Body never contains the frontmatter block.
type Page struct {
	Fields map[string]any
	Raw    []byte // frontmatter without delimiters
	Body   []byte
	Had    bool
}

// Parse splits content and decodes its frontmatter. Documents without a
// leading delimiter line yield an empty Fields map and the full input as Body.
func Parse(content []byte) (*Page, error) {
	raw, body, had, err := Split(content)
	if err != nil {
		return nil, err
	}
	p := &Page{Fields: map[string]any{}, Raw: raw, Body: body, Had: had}
	if len(bytes.TrimSpace(raw)) == 0 {
		return p, nil
	}
	if err := yaml.Unmarshal(raw, &p.Fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}
	if p.Fields == nil {
		p.Fields = map[string]any{}
	}
	return p, nil
}

// Split returns the raw frontmatter and the body. The newline style of the first
// line (LF or CRLF) is used to find the delimiters.
func Split(content []byte) (raw, body []byte, had bool, err error) {
	nl := []byte("\n")
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = []byte("\r\n")
	}

	open := append([]byte(delimiter), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}
	rest := content[len(open):]

	// Empty block: the closing delimiter follows immediately.
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}

	closing := append(append([]byte{}, nl...), open...)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		// A closing delimiter on the last line without a trailing newline.
		tail := append(append([]byte{}, nl...), delimiter...)
		if bytes.HasSuffix(rest, tail) {
			return rest[:len(rest)-len(tail)+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], rest[idx+len(closing):], true, nil
}

// String returns the string value of key, or "" when absent or not a string.
func (p *Page) String(key string) string {
	s, _ := p.Fields[key].(string)
	return s
}

// Title returns the "title" field.
func (p *Page) Title() string { return p.String("title") }
