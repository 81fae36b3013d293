package modelio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("cannot tell the model format of %q: use .json, .yaml or .yml", path)
}

// Read decodes a document. Unknown fields are rejected.
func Read(r io.Reader, f Format) (*Document, error) {
	var d Document
	switch f {
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("decoding JSON model: %w", err)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("decoding YAML model: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported model format %q", f)
	}
	return &d, nil
}

// Write encodes a document.
func Write(w io.Writer, d *Document, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encoding JSON model: %w", err)
		}
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encoding YAML model: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported model format %q", f)
	}
	return nil
}

// LoadFile reads a document, choosing the format by extension.
func LoadFile(path string) (*Document, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	d, err := Read(fh, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// SaveFile writes a document, choosing the format by extension.
func SaveFile(path string, d *Document) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(fh, d, f); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
