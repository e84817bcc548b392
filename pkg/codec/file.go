package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile stages a document from a file, choosing the codec by extension:
// .json, .yaml/.yml, or .hcl. Files with no recognized extension are
// sniffed for HCL.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	case ".hcl":
		return ParseHCL(data)
	}
	if IsHCL(data) {
		return ParseHCL(data)
	}
	return nil, fmt.Errorf("unrecognized curve document format: %s", path)
}

// SaveFile writes a document to a file as JSON or YAML by extension. HCL is
// an authoring format only and is not written back.
func SaveFile(path string, doc *Document) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = EncodeJSON(doc)
	case ".yaml", ".yml":
		data, err = EncodeYAML(doc)
	default:
		return fmt.Errorf("unsupported save format for %s (want .json, .yaml or .yml)", path)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
