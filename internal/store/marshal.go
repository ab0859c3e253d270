package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/scenariocast/internal/ir"
)

// marshalStrings converts a string list to canonical JSON TEXT.
func marshalStrings(ss []string) (string, error) {
	if ss == nil {
		ss = []string{}
	}
	data, err := ir.MarshalCanonical(ss)
	if err != nil {
		return "", fmt.Errorf("marshal strings: %w", err)
	}
	return string(data), nil
}

func unmarshalStrings(data string) ([]string, error) {
	out := []string{}
	if data == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("unmarshal strings: %w", err)
	}
	return out, nil
}

// marshalValues converts converted scenario values to JSON TEXT. Values
// may be floats, so canonical JSON does not apply; the encoder runs with
// HTML escaping disabled so stored text matches the canonical columns.
func marshalValues(vals []any) (string, error) {
	if vals == nil {
		vals = []any{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(vals); err != nil {
		return "", fmt.Errorf("marshal values: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalValues decodes values with json.Number so integers survive
// without float64 precision loss.
func unmarshalValues(data string) ([]any, error) {
	out := []any{}
	if data == "" {
		return out, nil
	}
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("unmarshal values: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
