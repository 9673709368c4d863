package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeyCollection = "collection"
	KeyMaterial   = "material"
	KeyView       = "view"
	KeyFragment   = "fragment"
	KeyOutput     = "output"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr      { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr    { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func Collection(c string) slog.Attr  { return slog.String(KeyCollection, c) }
func Material(id string) slog.Attr   { return slog.String(KeyMaterial, id) }
func View(id string) slog.Attr       { return slog.String(KeyView, id) }
func Fragment(id string) slog.Attr   { return slog.String(KeyFragment, id) }
func Output(dir string) slog.Attr    { return slog.String(KeyOutput, dir) }
func Count(n int) slog.Attr          { return slog.Int(KeyCount, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
