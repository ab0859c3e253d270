// Package config provides the key/value configuration sources a fixture
// registry reads cases from.
//
// Three file formats are supported and all flatten to the same keys:
//
//   - Java-style .properties files (casedesc0=..., var0=..., rule0=...)
//   - YAML documents with a cases list
//   - CUE documents with the same shape as YAML
//
// # Keys
//
// Per-case keys carry a 0-based index suffix (plus debug_index):
//
//	casedesc{i} var{i} rule{i} pair{i} caseId{i} exempt{i} converter{i}
//
// Index-free keys:
//
//	casedesc      comma-separated case descriptions (alternative to casedesc{i})
//	commonvar     variable groups appended to every case
//	commonexempt  exemption clause applied to every case
//	debug_index   offset added to every case index when looking keys up
package config

import (
	"sort"
	"strconv"
	"strings"

	"github.com/roach88/scenariocast/internal/casterr"
)

// Key is a configuration key prefix.
type Key string

const (
	KeyCaseDesc     Key = "casedesc"
	KeyVar          Key = "var"
	KeyRule         Key = "rule"
	KeyPair         Key = "pair"
	KeyCaseID       Key = "caseId"
	KeyExempt       Key = "exempt"
	KeyConverter    Key = "converter"
	KeyCommonVar    Key = "commonvar"
	KeyCommonExempt Key = "commonexempt"
	KeyDebugIndex   Key = "debug_index"
)

// Indexed returns the key for a case index, e.g. KeyRule.Indexed(2) == "rule2".
func (k Key) Indexed(i int) string {
	return string(k) + strconv.Itoa(i)
}

// String returns the bare key.
func (k Key) String() string {
	return string(k)
}

// Source is a read-only key/value store with property-file semantics.
type Source interface {
	// Lookup returns the raw value for key and whether it is present.
	Lookup(key string) (string, bool)

	// Keys returns every key in sorted order.
	Keys() []string
}

// MapSource is an in-memory Source.
type MapSource map[string]string

// Lookup implements Source.
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Keys implements Source.
func (m MapSource) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DebugIndex returns the debug_index offset, 0 when unset.
func DebugIndex(src Source) (int, error) {
	raw, ok := src.Lookup(KeyDebugIndex.String())
	if !ok || strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, casterr.Configuration(casterr.CodeInvalidDebugIndex,
			"debug_index must be a non-negative integer, got %q", raw).WithKey(KeyDebugIndex.String())
	}
	return n, nil
}
