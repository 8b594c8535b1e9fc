package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/acessolab/a11yscan/internal/model"
)

// DefaultExportFile is the filename used when the user does not provide
// one at the export prompt.
const DefaultExportFile = "relatorio_acessibilidade.json"

// ErrExport is returned when a report cannot be written to disk.
var ErrExport = errors.New("failed to export report")

// ExportJSON writes the report as pretty-printed JSON to the given path.
// An empty path falls back to DefaultExportFile in the current directory.
// Parent directories are created as needed. It returns the path actually
// written so callers can echo it back to the user.
func ExportJSON(rep *model.Report, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultExportFile
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("%w: %v", ErrExport, err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}

	if _, err := NewJSONWriter(f, WithPrettyPrint()).Write(rep); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}
	return path, nil
}

// ExportMarkdown writes the report as Markdown to the given path.
func ExportMarkdown(rep *model.Report, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrExport)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("%w: %v", ErrExport, err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}

	if _, err := NewMarkdownWriter(f).Write(rep); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}
	return path, nil
}
