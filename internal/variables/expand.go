// Package variables expands raw variable declarations into typed groups and
// combines groups into concrete scenarios.
//
// A raw declaration looks like:
//
//	arg1=0, arg1=5 | arg2=0, arg2=5 |
//
// Groups are separated by "|" and tokens within a group by a caller-chosen
// separator (normally ","). An empty group declares "no variable at this
// position" and contributes nothing to the product. Trailing empty groups,
// tokens and converter ids are dropped, so the trailing "|" above declares
// two groups.
package variables

import (
	"errors"
	"strings"

	"github.com/roach88/scenariocast/internal/casterr"
	"github.com/roach88/scenariocast/internal/convert"
)

// GroupSeparator separates variable groups in a raw declaration.
const GroupSeparator = "|"

// TokenSeparator is the usual separator between tokens within a group.
const TokenSeparator = ","

// CommonIndex is the case index used when expanding groups shared by all cases.
const CommonIndex = -1

// Group is one variable axis of a case.
type Group struct {
	// Tokens are the trimmed raw tokens in declaration order.
	// Rule clauses match against these.
	Tokens []string

	// Values are the converted tokens, aligned with Tokens.
	Values []any

	// ConverterID identifies the converter that produced Values.
	ConverterID string
}

// Expander expands raw declarations and remembers, per case, which converter
// each raw token went through.
//
// An Expander is owned by a single registry build; it is not safe for
// concurrent use. The converter registry it reads from is.
type Expander struct {
	converters *convert.Registry
	tokenConv  map[int]map[string]convert.Converter
}

// NewExpander creates an expander backed by the given converter registry.
func NewExpander(converters *convert.Registry) *Expander {
	return &Expander{
		converters: converters,
		tokenConv:  make(map[int]map[string]convert.Converter),
	}
}

// Expand splits raw into groups and converts every token.
//
// converterSpec is either empty (string converter for every group) or a
// "|"-separated list with exactly one converter id per raw group, empty groups
// included. For caseIndex >= 0 the token to converter mapping is recorded and
// available through TokenConverters. Nothing is recorded when an error is
// returned.
func (e *Expander) Expand(caseIndex int, raw, separator, converterSpec string) ([]Group, error) {
	rawGroups := splitList(raw, GroupSeparator)

	converterIDs, err := converterIDs(converterSpec, len(rawGroups))
	if err != nil {
		return nil, err.WithCase(caseIndex)
	}

	groups := make([]Group, 0, len(rawGroups))
	pending := make(map[string]convert.Converter)

	for i, rawGroup := range rawGroups {
		conv, err := e.converters.Get(converterIDs[i])
		if err != nil {
			return nil, withCase(err, caseIndex)
		}

		tokens := splitList(rawGroup, separator)
		if len(tokens) == 0 || (len(tokens) == 1 && tokens[0] == "") {
			continue
		}

		values, err := convert.Apply(conv, converterIDs[i], tokens)
		if err != nil {
			return nil, withCase(err, caseIndex)
		}

		for _, tok := range tokens {
			pending[tok] = conv
		}

		groups = append(groups, Group{
			Tokens:      tokens,
			Values:      values,
			ConverterID: converterIDs[i],
		})
	}

	if caseIndex > CommonIndex {
		m := e.tokenConv[caseIndex]
		if m == nil {
			m = make(map[string]convert.Converter, len(pending))
			e.tokenConv[caseIndex] = m
		}
		for tok, conv := range pending {
			m[tok] = conv
		}
	}

	return groups, nil
}

// TokenConverters returns a copy of the raw token to converter mapping
// recorded for caseIndex. The map is empty if nothing was recorded.
func (e *Expander) TokenConverters(caseIndex int) map[string]convert.Converter {
	src := e.tokenConv[caseIndex]
	out := make(map[string]convert.Converter, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func converterIDs(spec string, groupCount int) ([]string, *casterr.Error) {
	ids := make([]string, groupCount)
	if strings.TrimSpace(spec) == "" {
		for i := range ids {
			ids[i] = convert.String
		}
		return ids, nil
	}

	parts := splitList(spec, GroupSeparator)
	if len(parts) != groupCount {
		return nil, casterr.Configuration(casterr.CodeConverterCountMismatch,
			"converter list %q has %d entries for %d variable groups", spec, len(parts), groupCount)
	}
	for i, p := range parts {
		if p == "" {
			p = convert.String
		}
		ids[i] = p
	}
	return ids, nil
}

func withCase(err error, caseIndex int) error {
	var ce *casterr.Error
	if errors.As(err, &ce) {
		return ce.WithCase(caseIndex)
	}
	return err
}

// splitList splits s on sep, trims every part and drops trailing empty
// parts. Interior empty parts are kept. A string without sep is returned as
// its single trimmed part, even when empty.
func splitList(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	if len(parts) == 1 {
		return parts
	}
	end := len(parts)
	for end > 0 && parts[end-1] == "" {
		end--
	}
	return parts[:end]
}
