package main

import (
	"fmt"
	"os"
	"path/filepath"

	"posterpad/internal/export"
)

// withDefaultExt appends .json to names typed without an extension.
func withDefaultExt(name string) string {
	if filepath.Ext(name) == "" {
		return name + ".json"
	}
	return name
}

// document projects the current page and boxes into the export contract.
func (m *model) document() export.Document {
	p := m.surface.Preset()
	return export.Build(p.Name, p.Page(), m.store.Boxes())
}

// exportDocument writes the document to path in the format its extension
// names.
func (m *model) exportDocument(path string) error {
	format, err := export.FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.Write(m.document(), format, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
