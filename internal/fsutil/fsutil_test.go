package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestCopyDir_PreservesStructureAndBytes(t *testing.T) {
	src := filepath.Join(t.TempDir(), "assets")
	dst := filepath.Join(t.TempDir(), "out", "assets")
	write(t, filepath.Join(src, "logo.svg"), "<svg/>")
	write(t, filepath.Join(src, "img", "a.png"), "\x89PNG\x00\x01")

	n, err := CopyDir(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := os.ReadFile(filepath.Join(dst, "img", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG\x00\x01"), got)
	assert.FileExists(t, filepath.Join(dst, "logo.svg"))
}

func TestCopyDir_MissingSource(t *testing.T) {
	_, err := CopyDir(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	require.Error(t, err)
}

func TestCopyTopLevel_FiltersByExtension(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	write(t, filepath.Join(src, "style.css"), "body{}")
	write(t, filepath.Join(src, "app.JS"), "x()")
	write(t, filepath.Join(src, "content.html"), "<p/>")
	write(t, filepath.Join(src, "sub", "nested.css"), "nested")

	copied, err := CopyTopLevel(src, dst, []string{".js", ".css"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"style.css", "app.JS"}, copied)
	assert.NoFileExists(t, filepath.Join(dst, "content.html"))
	assert.NoFileExists(t, filepath.Join(dst, "nested.css"))
	assert.NoDirExists(t, filepath.Join(dst, "sub"))
}

func TestRemoveTopLevel(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "old.html"), "x")
	write(t, filepath.Join(dir, "old.css"), "x")
	write(t, filepath.Join(dir, "keep.txt"), "x")
	write(t, filepath.Join(dir, "sub", "deep.html"), "x")

	removed, err := RemoveTopLevel(dir, []string{".html", ".css", ".js"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"old.html", "old.css"}, removed)
	assert.FileExists(t, filepath.Join(dir, "keep.txt"))
	assert.FileExists(t, filepath.Join(dir, "sub", "deep.html"))

	removed, err = RemoveTopLevel(filepath.Join(dir, "missing"), []string{".html"})
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestEnsureEmptyDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".assets")

	require.NoError(t, EnsureEmptyDir(dir), "missing directory is created")
	assert.True(t, IsDir(dir))

	write(t, filepath.Join(dir, "stale", "x.png"), "x")
	require.NoError(t, EnsureEmptyDir(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFile_CreatesParent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "index.html")
	require.NoError(t, WriteFile(p, []byte("<p>hi</p>")))

	got, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(got))
}
