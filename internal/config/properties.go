package config

import (
	"fmt"
	"io"

	"github.com/magiconair/properties"
)

// ParseProperties reads a Java-style properties document.
//
// Supported syntax: "key=value", "key:value" and "key value" pairs; "#" and
// "!" comment lines; a trailing backslash continues the value on the next
// line (leading whitespace of the continuation is dropped); escapes \t \n \r
// \f \\ \uXXXX and escaped separators. Later duplicates win.
//
// ${key} references are left as written: rule clauses and tokens are taken
// verbatim.
func ParseProperties(r io.Reader) (MapSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read properties: %w", err)
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse properties: %w", err)
	}

	src := make(MapSource, p.Len())
	for _, key := range p.Keys() {
		value, _ := p.Get(key)
		src[key] = value
	}
	return src, nil
}
