// Package fixture assembles cases from configuration into immutable
// CaseFixtures and resolves the expected outcome of each scenario.
package fixture

import (
	"errors"
	"strings"

	"github.com/roach88/scenariocast/internal/casterr"
	"github.com/roach88/scenariocast/internal/convert"
	"github.com/roach88/scenariocast/internal/rule"
	"github.com/roach88/scenariocast/internal/variables"
)

// CaseFixture is one fully built case. It is immutable once built; every
// accessor returns a copy of slices and maps.
type CaseFixture struct {
	index       int
	description string
	groups      []variables.Group
	rule        *rule.Rule
	pair        Pair
	exemption   string
	caseIDs     []string
	tokenConv   map[string]convert.Converter
}

// Expectation is the resolved expectation for one scenario.
type Expectation struct {
	// Outcome is the expected outcome. Empty when Exempt.
	Outcome string

	// Exempt is true when the scenario matched the exemption clause.
	Exempt bool

	// Inferred is true when Outcome came from the pair complement rather than
	// a matching clause.
	Inferred bool
}

// Index returns the case position.
func (f *CaseFixture) Index() int { return f.index }

// Description returns the case description.
func (f *CaseFixture) Description() string { return f.description }

// Rule returns the case rule.
func (f *CaseFixture) Rule() *rule.Rule { return f.rule }

// Groups returns the variable groups, case groups first then common groups.
func (f *CaseFixture) Groups() []variables.Group {
	out := make([]variables.Group, len(f.groups))
	copy(out, f.groups)
	return out
}

// Pair returns the outcome pair and whether one is configured.
func (f *CaseFixture) Pair() (Pair, bool) {
	return f.pair, !f.pair.IsZero()
}

// Exemption returns the exemption clause and whether one is configured.
func (f *CaseFixture) Exemption() (string, bool) {
	return f.exemption, f.exemption != ""
}

// CaseIDs returns the identifier labels. Never empty.
func (f *CaseFixture) CaseIDs() []string {
	out := make([]string, len(f.caseIDs))
	copy(out, f.caseIDs)
	return out
}

// TokenConverters returns the raw token to converter mapping.
func (f *CaseFixture) TokenConverters() map[string]convert.Converter {
	out := make(map[string]convert.Converter, len(f.tokenConv))
	for k, v := range f.tokenConv {
		out[k] = v
	}
	return out
}

// Value converts a raw token with the converter it was declared under.
// Unknown tokens are returned unchanged.
func (f *CaseFixture) Value(token string) (any, error) {
	conv, ok := f.tokenConv[token]
	if !ok {
		return token, nil
	}
	v, err := conv.Convert(token)
	if err != nil {
		return nil, casterr.Configuration(casterr.CodeConversionFailed,
			"cannot convert token %q", token).WithCase(f.index).WithCause(err)
	}
	return v, nil
}

// Scenarios returns the cartesian product of the case's groups.
func (f *CaseFixture) Scenarios() []variables.Scenario {
	return variables.Product(f.groups)
}

// IsExempt reports whether the exemption clause holds for the tokens.
// A case without an exemption exempts nothing.
func (f *CaseFixture) IsExempt(tokens []string) (bool, error) {
	if f.exemption == "" {
		return false, nil
	}
	ok, err := f.rule.Evaluator().Match(f.exemption, tokens)
	if err != nil {
		return false, withCase(err, f.index)
	}
	return ok, nil
}

// Expect resolves the expectation for a scenario.
//
// Exempt scenarios have no outcome. Otherwise the single matching rule
// outcome wins. When nothing matches and the rule declares exactly one
// outcome with a configured pair, the pair complement of that outcome is
// expected. Any other unmatched scenario is a configuration error.
func (f *CaseFixture) Expect(tokens []string) (Expectation, error) {
	exempt, err := f.IsExempt(tokens)
	if err != nil {
		return Expectation{}, err
	}
	if exempt {
		return Expectation{Exempt: true}, nil
	}

	outcome, ok, err := f.rule.Outcome(tokens)
	if err != nil {
		return Expectation{}, withCase(err, f.index)
	}
	if ok {
		return Expectation{Outcome: outcome}, nil
	}

	if outcomes := f.rule.Definition().Outcomes(); len(outcomes) == 1 && !f.pair.IsZero() {
		if other, ok := f.pair.Complement(outcomes[0]); ok {
			return Expectation{Outcome: other, Inferred: true}, nil
		}
	}

	return Expectation{}, casterr.Configuration(casterr.CodeNoOutcome,
		"no rule outcome matches scenario [%s]", strings.Join(tokens, ", ")).WithCase(f.index)
}

// Builder assembles a CaseFixture.
type Builder struct {
	f CaseFixture
}

// NewBuilder starts a fixture with the required parts.
func NewBuilder(description string, groups []variables.Group, r *rule.Rule) *Builder {
	return &Builder{f: CaseFixture{
		description: description,
		groups:      groups,
		rule:        r,
	}}
}

// Index sets the case position. Defaults to 0.
func (b *Builder) Index(i int) *Builder {
	b.f.index = i
	return b
}

// Pair sets the outcome pair, replacing any earlier one.
func (b *Builder) Pair(p Pair) *Builder {
	b.f.pair = p
	return b
}

// Exempt sets the exemption clause. The clause is stored verbatim.
func (b *Builder) Exempt(clause string) *Builder {
	b.f.exemption = clause
	return b
}

// CaseIDs sets the identifier labels. Defaults to the description.
func (b *Builder) CaseIDs(ids ...string) *Builder {
	b.f.caseIDs = ids
	return b
}

// Converters sets the raw token to converter mapping.
func (b *Builder) Converters(m map[string]convert.Converter) *Builder {
	b.f.tokenConv = m
	return b
}

// Build validates the parts and returns an independent CaseFixture.
// The rule clauses and the exemption clause are compiled up front when the
// evaluator supports it.
func (b *Builder) Build() (*CaseFixture, error) {
	if b.f.rule == nil {
		return nil, casterr.MissingKey("rule", b.f.index)
	}
	if err := b.f.rule.Validate(); err != nil {
		return nil, withCase(err, b.f.index)
	}
	if b.f.exemption != "" {
		if c, ok := b.f.rule.Evaluator().(interface{ Compile(string) error }); ok {
			if err := c.Compile(b.f.exemption); err != nil {
				return nil, withCase(err, b.f.index)
			}
		}
	}

	f := b.f
	f.groups = make([]variables.Group, len(b.f.groups))
	copy(f.groups, b.f.groups)

	if len(b.f.caseIDs) == 0 {
		f.caseIDs = []string{b.f.description}
	} else {
		f.caseIDs = make([]string, len(b.f.caseIDs))
		copy(f.caseIDs, b.f.caseIDs)
	}

	f.tokenConv = make(map[string]convert.Converter, len(b.f.tokenConv))
	for k, v := range b.f.tokenConv {
		f.tokenConv[k] = v
	}

	return &f, nil
}

func withCase(err error, caseIndex int) error {
	var ce *casterr.Error
	if errors.As(err, &ce) && ce.CaseIndex == casterr.NoCase {
		return ce.WithCase(caseIndex)
	}
	return err
}
