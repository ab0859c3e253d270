package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/scenariocast/internal/casterr"
)

// Format identifies a configuration file format.
type Format string

const (
	FormatProperties Format = "properties"
	FormatYAML       Format = "yaml"
	FormatCUE        Format = "cue"
)

// DetectFormat picks the format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".properties":
		return FormatProperties, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", casterr.Configuration(casterr.CodeInvalidSource,
			"unsupported configuration file %q (want .properties, .yaml, .yml or .cue)", path)
	}
}

// Load reads and parses a configuration file, choosing the format from its
// extension.
func Load(path string) (MapSource, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	return Parse(format, filepath.Base(path), data)
}

// Parse parses data in the given format. name is used in CUE positions.
func Parse(format Format, name string, data []byte) (MapSource, error) {
	switch format {
	case FormatProperties:
		return ParseProperties(bytes.NewReader(data))
	case FormatYAML:
		return ParseYAML(data)
	case FormatCUE:
		return ParseCUE(name, data)
	default:
		return nil, casterr.Configuration(casterr.CodeInvalidSource, "unknown configuration format %q", format)
	}
}
