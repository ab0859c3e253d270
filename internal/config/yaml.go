package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML Document and flattens it. Unknown fields are
// rejected so typos like "rules:" fail loudly.
func ParseYAML(data []byte) (MapSource, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return MapSource{}, nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return doc.Flatten(), nil
}
