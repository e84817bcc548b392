package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeYAML stages a document from YAML.
func DecodeYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode curve document: %w", err)
	}
	return &doc, nil
}

// EncodeYAML renders a document as YAML.
func EncodeYAML(doc *Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode curve document: %w", err)
	}
	return data, nil
}
