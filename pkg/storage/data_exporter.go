// Package storage writes result documents to stdout or to files.
package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"keyword-planner/pkg/logger"
)

// DataExporter writes JSON documents, keeping the key order a value's own
// MarshalJSON produces
type DataExporter struct {
	indent string
	log    *logger.Logger
}

// NewDataExporter creates an exporter. An empty indent writes compact JSON.
func NewDataExporter(indent string) *DataExporter {
	return &DataExporter{
		indent: indent,
		log:    logger.GetLogger().WithField("component", "data_exporter"),
	}
}

// Encode renders v followed by a newline
func (de *DataExporter) Encode(v interface{}) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if de.indent == "" {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", de.indent)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return append(data, '\n'), nil
}

// Write encodes v onto w
func (de *DataExporter) Write(w io.Writer, v interface{}) error {
	data, err := de.Encode(v)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// ExportFile writes v to path through a temporary file in the same
// directory, so readers never see a partial document
func (de *DataExporter) ExportFile(path string, v interface{}) error {
	data, err := de.Encode(v)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move result into place: %w", err)
	}

	de.log.WithFields(map[string]interface{}{
		"path":  path,
		"bytes": len(data),
	}).Info("Result exported")
	return nil
}
