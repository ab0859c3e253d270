package fixture

import (
	"strings"

	"github.com/roach88/scenariocast/internal/casterr"
	"github.com/roach88/scenariocast/internal/rule"
)

// Pair links two outcomes of a binary rule so either can be inferred from
// the other. One of the two is usually the only outcome declared in the rule
// (e.g. rule "true:a and b" with pair "true:false").
//
// Forward maps the first outcome to the second, reverse the second to the
// first. Pair does not check that either value is a declared outcome.
type Pair struct {
	forward map[string]string
	reverse map[string]string
}

// NewPair creates a pair of two outcomes.
func NewPair(first, second string) Pair {
	return Pair{
		forward: map[string]string{first: second},
		reverse: map[string]string{second: first},
	}
}

// ParsePair parses "A:B". Both sides are trimmed and must be non-empty.
func ParsePair(s string) (Pair, error) {
	parts := strings.Split(strings.TrimSpace(s), rule.OutcomeSeparator)
	if len(parts) != 2 {
		return Pair{}, casterr.Configuration(casterr.CodeInvalidPair,
			"pair %q must have the form first:second", s)
	}
	first, second := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if first == "" || second == "" {
		return Pair{}, casterr.Configuration(casterr.CodeInvalidPair,
			"pair %q has an empty side", s)
	}
	return NewPair(first, second), nil
}

// IsZero reports whether p holds no pair.
func (p Pair) IsZero() bool {
	return len(p.forward) == 0
}

// Forward returns the second outcome when given the first.
func (p Pair) Forward(first string) (string, bool) {
	v, ok := p.forward[first]
	return v, ok
}

// Reverse returns the first outcome when given the second.
func (p Pair) Reverse(second string) (string, bool) {
	v, ok := p.reverse[second]
	return v, ok
}

// Complement returns the other side of the pair for either outcome.
func (p Pair) Complement(outcome string) (string, bool) {
	if v, ok := p.Forward(outcome); ok {
		return v, true
	}
	return p.Reverse(outcome)
}

// First returns the first outcome, or "" for the zero Pair.
func (p Pair) First() string {
	for k := range p.forward {
		return k
	}
	return ""
}

// Second returns the second outcome, or "" for the zero Pair.
func (p Pair) Second() string {
	for _, v := range p.forward {
		return v
	}
	return ""
}

// String returns "first:second", or "" for the zero Pair.
func (p Pair) String() string {
	if p.IsZero() {
		return ""
	}
	return p.First() + rule.OutcomeSeparator + p.Second()
}
