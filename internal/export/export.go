// Package export isolates the legacy CMS widget export behind a plugin
// interface. The exporter is invoked only for bundled items carrying the
// triggering data flag; its failures are reported but never abort the run.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// Widget is a bundled material handed to an exporter.
type Widget struct {
	ID       string
	Name     string
	HTML     string
	Settings map[string]any // raw value of the triggering front-matter flag
}

// Exporter emits a rendered material into an external system's format.
type Exporter interface {
	ExportWidget(w Widget) error
}

// widgetTemplate is the fixed marker-file layout the downstream CMS imports.
const widgetTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<widget id="{{.ID}}" label="{{.Name}}"{{range $k, $v := .Settings}} {{$k}}="{{$v}}"{{end}}>
<content><![CDATA[
{{.HTML}}
]]></content>
</widget>
`

// LegacyCMS writes one templated marker file per widget into a nested output
// tree parallel to the bundles.
type LegacyCMS struct {
	root string
	tpl  *template.Template
}

// NewLegacyCMS creates an exporter rooted at dir.
func NewLegacyCMS(dir string) *LegacyCMS {
	return &LegacyCMS{
		root: dir,
		tpl:  template.Must(template.New("widget").Parse(widgetTemplate)),
	}
}

// ExportWidget implements Exporter.
func (l *LegacyCMS) ExportWidget(w Widget) error {
	if w.ID == "" {
		return fmt.Errorf("export widget: empty id")
	}

	var buf bytes.Buffer
	if err := l.tpl.Execute(&buf, w); err != nil {
		return fmt.Errorf("render widget marker %q: %w", w.ID, err)
	}

	dir := filepath.Join(l.root, "widgets", w.ID)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create widget directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "widget.xml"), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write widget marker %q: %w", w.ID, err)
	}
	return nil
}
