// Package render turns templates into on-disk artifacts while tracking
// whether anything actually changed, so callers can compute a minimal
// restart set. Rendering is pure; all I/O sits in Sync.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"
)

const (
	secretMode  = os.FileMode(0o600)
	regularMode = os.FileMode(0o644)
)

// Renderer implements ports.ArtifactSyncer.
type Renderer struct{}

func New() *Renderer { return &Renderer{} }

// Render executes tmpl with data. A template parse or execution error is
// fatal for the artifact; callers abort the provisioning pass.
func (r *Renderer) Render(tmpl string, data any) (string, error) {
	t, err := template.New("artifact").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// Sync writes content to path atomically if it differs from what is
// already there. A missing destination counts as changed.
func (r *Renderer) Sync(path, content string, secret bool) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, []byte(content)) {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	mode := regularMode
	if secret {
		mode = secretMode
	}
	if err := writeAtomic(path, []byte(content), mode); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// Existing returns the current on-disk content of path, if any.
func (r *Renderer) Existing(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

func writeAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	tmp := fmt.Sprintf("%s.tmp-%d", path, time.Now().UnixNano())
	if err := os.WriteFile(tmp, data, mode); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
