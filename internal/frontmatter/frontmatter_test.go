package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NoFrontmatter(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	p, err := Parse(input)
	require.NoError(t, err)
	assert.False(t, p.Had)
	assert.Empty(t, p.Fields)
	assert.Equal(t, input, p.Body)
}

func TestParse_Fields(t *testing.T) {
	p, err := Parse([]byte("---\ntitle: About us\ntags: [a, b]\n---\n# About\n"))
	require.NoError(t, err)

	assert.True(t, p.Had)
	assert.Equal(t, "About us", p.Title())
	assert.Equal(t, []any{"a", "b"}, p.Fields["tags"])
	assert.Equal(t, "# About\n", string(p.Body))
	assert.Equal(t, "", p.String("missing"))
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantRaw  string
		wantBody string
		wantHad  bool
	}{
		{"lf", "---\nkey: value\n---\n# T\n", "key: value\n", "# T\n", true},
		{"crlf", "---\r\nkey: value\r\n---\r\n# T\r\n", "key: value\r\n", "# T\r\n", true},
		{"empty block", "---\n---\nbody", "", "body", true},
		{"closing at eof", "---\nkey: value\n---", "key: value\n", "", true},
		{"thematic break later in body", "# T\n\n---\n", "", "# T\n\n---\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, body, had, err := Split([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantHad, had)
			assert.Equal(t, tt.wantRaw, string(raw))
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestSplit_MissingClosingDelimiter(t *testing.T) {
	_, _, _, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("---\n: [\n---\nbody"))
	require.ErrorIs(t, err, ErrInvalidYAML)
}

func TestFingerprint_IgnoresKeyOrderAndExistingField(t *testing.T) {
	a, err := Parse([]byte("---\ntitle: A\ntags: [x]\n---\nbody\n"))
	require.NoError(t, err)
	b, err := Parse([]byte("---\ntags: [x]\nfingerprint: stale\ntitle: A\n---\nbody\n"))
	require.NoError(t, err)

	fa, err := a.Fingerprint()
	require.NoError(t, err)
	fb, err := b.Fingerprint()
	require.NoError(t, err)

	assert.NotEmpty(t, fa)
	assert.Equal(t, fa, fb)
}

func TestFingerprint_ChangesWithBody(t *testing.T) {
	a, err := Parse([]byte("one"))
	require.NoError(t, err)
	b, err := Parse([]byte("two"))
	require.NoError(t, err)

	fa, err := a.Fingerprint()
	require.NoError(t, err)
	fb, err := b.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fa, fb)
}
