package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"airbnb-analytics/models"
	"airbnb-analytics/utils"
)

// JSONWriter writes the analytics results to a pretty-printed JSON file
type JSONWriter struct {
	filePath string
	logger   *utils.Logger
}

// NewJSONWriter creates a new JSONWriter
func NewJSONWriter(filePath string, logger *utils.Logger) *JSONWriter {
	return &JSONWriter{filePath: filePath, logger: logger}
}

// WriteResults encodes results and replaces the output file atomically, so a
// failed run never leaves a partial file behind.
func (w *JSONWriter) WriteResults(results *models.AnalyticsResults) error {
	data, err := encodeResults(results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	dir := filepath.Dir(w.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(w.filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write results: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close results: %w", err)
	}
	if err := os.Rename(tmp.Name(), w.filePath); err != nil {
		return fmt.Errorf("failed to move results into place: %w", err)
	}

	w.logger.Info("Results written to: %s (%d bytes)", w.filePath, len(data))
	return nil
}

// ReadResults returns the raw bytes of the last written results file
func (w *JSONWriter) ReadResults() ([]byte, error) {
	data, err := os.ReadFile(w.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	return data, nil
}

// encodeResults pretty-prints with two-space indent and leaves &, < and >
// unescaped. The encoder's trailing newline is dropped.
func encodeResults(results *models.AnalyticsResults) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
