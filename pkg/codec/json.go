package codec

import (
	"encoding/json"
	"fmt"
)

// DecodeJSON stages a document from JSON.
func DecodeJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode curve document: %w", err)
	}
	return &doc, nil
}

// EncodeJSON renders a document as indented JSON.
func EncodeJSON(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode curve document: %w", err)
	}
	return data, nil
}
