// Package artifacts persists run outputs to disk: per-page markdown dumps,
// per-document field JSON and the batch summary.
package artifacts

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"contractocr/internal/extract"
	"contractocr/internal/ocr"
)

// Writer drops run artifacts under a single output directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{dir: dir, logger: logger}
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

func (w *Writer) ensureDir() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

// WriteSummary serializes the extraction result for a batch of inputs to
// summary.json.
func (w *Writer) WriteSummary(inputs []string, res *extract.Result) (string, error) {
	if err := w.ensureDir(); err != nil {
		return "", err
	}
	payload := map[string]any{
		"inputs": inputs,
		"fields": res,
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}
	path := filepath.Join(w.dir, "summary.json")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	w.logger.Info("artifacts.summary.ok", "path", path, "inputs", len(inputs))
	return path, nil
}

// WritePages dumps each page's markdown text and raw result next to the
// summary, named after the source document. Pages with no markdown are
// skipped.
func (w *Writer) WritePages(source string, pages []ocr.PageResult) error {
	if err := w.ensureDir(); err != nil {
		return err
	}
	stem := docStem(source)
	for _, page := range pages {
		if page.Markdown != nil {
			text, err := markdownText(page.Markdown)
			if err != nil {
				return err
			}
			name := fmt.Sprintf("%s_page_%03d.md", stem, page.PageIndex)
			if err := os.WriteFile(filepath.Join(w.dir, name), []byte(text), 0o644); err != nil {
				return fmt.Errorf("write page markdown: %w", err)
			}
		}
		if len(page.Raw) > 0 {
			b, err := json.MarshalIndent(page.Raw, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal page result: %w", err)
			}
			name := fmt.Sprintf("%s_page_%03d.json", stem, page.PageIndex)
			if err := os.WriteFile(filepath.Join(w.dir, name), b, 0o644); err != nil {
				return fmt.Errorf("write page result: %w", err)
			}
		}
	}
	w.logger.Info("artifacts.pages.ok", "source", source, "pages", len(pages))
	return nil
}

func docStem(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func markdownText(payload any) (string, error) {
	switch v := payload.(type) {
	case string:
		return v, nil
	case map[string]any:
		if s, ok := v["markdown_text"].(string); ok {
			return s, nil
		}
		if s, ok := v["markdown"].(string); ok {
			return s, nil
		}
		return "", nil
	default:
		return "", fmt.Errorf("unexpected markdown payload type %T", payload)
	}
}
