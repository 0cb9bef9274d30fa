package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyOutput     = "output"
	KeyCollection = "collection"
	KeyLabel      = "label"
	KeyTemplate   = "template"
	KeyCount      = "count"
	KeyName       = "name"
	KeyError      = "error"
)

func BuildID(id string) slog.Attr        { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr        { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func File(f string) slog.Attr            { return slog.String(KeyFile, f) }
func Output(p string) slog.Attr          { return slog.String(KeyOutput, p) }
func Collection(name string) slog.Attr   { return slog.String(KeyCollection, name) }
func Label(l string) slog.Attr           { return slog.String(KeyLabel, l) }
func Template(name string) slog.Attr     { return slog.String(KeyTemplate, name) }
func Count(n int) slog.Attr              { return slog.Int(KeyCount, n) }
func Name(n string) slog.Attr            { return slog.String(KeyName, n) }
func DurationMS(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
