// Package fsutil holds the file operations the build uses on the output tree.
package fsutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/util/sets"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFile writes data to path, creating the parent directory if needed.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	// #nosec G306 -- generated site files are meant to be world readable
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// CopyFile copies src to dst byte for byte and keeps the source permissions.
func CopyFile(src, dst string) error {
	// #nosec G304 -- src comes from walking a configured directory
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer func() {
		_ = in.Close()
	}()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	// #nosec G304 -- dst is under the configured output directory
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}
	return nil
}

// CopyDir copies the tree rooted at src into dst and returns the number of
// files copied. Entries that are neither regular files nor directories are skipped.
func CopyDir(src, dst string) (int, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", src, err)
	}
	if err := os.MkdirAll(dst, info.Mode().Perm()|0o700); err != nil {
		return 0, fmt.Errorf("create %s: %w", dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", src, err)
	}

	copied := 0
	for _, e := range entries {
		from := filepath.Join(src, e.Name())
		to := filepath.Join(dst, e.Name())
		switch {
		case e.IsDir():
			n, err := CopyDir(from, to)
			copied += n
			if err != nil {
				return copied, err
			}
		case e.Type().IsRegular():
			if err := CopyFile(from, to); err != nil {
				return copied, err
			}
			copied++
		default:
			slog.Debug("Skipping non-regular file", logfields.Path(from))
		}
	}
	return copied, nil
}

// CopyTopLevel copies the regular files directly inside src whose extension is
// in exts to dst. Subdirectories are not visited. It returns the copied file names.
func CopyTopLevel(src, dst string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	if err := os.MkdirAll(dst, dirPerm); err != nil {
		return nil, fmt.Errorf("create %s: %w", dst, err)
	}

	want := extSet(exts)
	var copied []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !want.Has(strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		if err := CopyFile(filepath.Join(src, e.Name()), filepath.Join(dst, e.Name())); err != nil {
			return copied, err
		}
		copied = append(copied, e.Name())
	}
	return copied, nil
}

// RemoveTopLevel deletes the regular files directly inside dir whose extension is
// in exts and returns their names. A missing dir removes nothing.
func RemoveTopLevel(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	want := extSet(exts)
	var removed []string
	for _, e := range entries {
		if e.IsDir() || !want.Has(strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return removed, fmt.Errorf("remove %s: %w", e.Name(), err)
		}
		removed = append(removed, e.Name())
	}
	return removed, nil
}

// EnsureEmptyDir removes dir and everything below it, then recreates it empty.
// A missing dir is not an error.
func EnsureEmptyDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func extSet(exts []string) sets.Set[string] {
	s := sets.New[string]()
	for _, e := range exts {
		s.Add(strings.ToLower(e))
	}
	return s
}
