// Package rule parses outcome-to-clause rule definitions and evaluates
// clauses against generated scenarios.
//
// A definition maps outcome names to clauses:
//
//	true:present and not blank~false:absent or blank
//
// Items are separated by "~" and each item splits into outcome and clause on
// a single ":". Clauses are boolean expressions over token presence; see
// ClauseEvaluator for the grammar.
package rule

import (
	"strings"

	"github.com/roach88/scenariocast/internal/casterr"
)

// Separators used in rule definitions.
const (
	ItemSeparator    = "~"
	OutcomeSeparator = ":"
)

// Entry is one outcome and the clause that selects it.
type Entry struct {
	Outcome string `json:"outcome" yaml:"outcome"`
	Clause  string `json:"clause" yaml:"clause"`
}

// Definition is an ordered outcome to clause mapping. Outcome names are
// unique; order is the first-seen order of the source string.
type Definition struct {
	entries []Entry
	index   map[string]int
}

// ParseDefinition parses a rule definition string.
// It fails with a rule format error on malformed or duplicate input; a
// Definition is built completely or not at all.
func ParseDefinition(def string) (*Definition, error) {
	return ParseDefinitionPtr(&def)
}

// ParseDefinitionPtr is ParseDefinition for an optional definition; nil is a
// rule format error.
func ParseDefinitionPtr(def *string) (*Definition, error) {
	if def == nil {
		return nil, casterr.RuleFormat(casterr.CodeNullDefinition, "outcome-to-clause definition must not be null")
	}

	trimmed := strings.TrimSpace(*def)
	if strings.HasSuffix(trimmed, ",") || strings.HasSuffix(trimmed, ItemSeparator) {
		return nil, casterr.RuleFormat(casterr.CodeTrailingSeparator,
			"invalid trailing comma/separator detected in %q", *def)
	}

	d := &Definition{index: make(map[string]int)}
	for _, item := range strings.Split(*def, ItemSeparator) {
		entry, err := parseItem(item)
		if err != nil {
			return nil, err
		}
		if _, dup := d.index[entry.Outcome]; dup {
			return nil, casterr.RuleFormat(casterr.CodeDuplicateOutcome,
				"duplicate outcome %q detected", entry.Outcome)
		}
		d.index[entry.Outcome] = len(d.entries)
		d.entries = append(d.entries, entry)
	}

	return d, nil
}

func parseItem(item string) (Entry, error) {
	if !strings.Contains(item, OutcomeSeparator) {
		return Entry{}, casterr.RuleFormat(casterr.CodeMissingColon,
			"rule item %q: a colon is required to separate the outcome followed by the rule clause", item)
	}

	// Every colon counts, trailing ones included: "a:b:" has three parts.
	parts := strings.Split(item, OutcomeSeparator)
	if len(parts) > 2 {
		return Entry{}, casterr.RuleFormat(casterr.CodeTooManyColons, "rule item %q has too many colons", item)
	}

	outcome := strings.TrimSpace(parts[0])
	if outcome == "" {
		return Entry{}, casterr.RuleFormat(casterr.CodeInvalidColonPlacement,
			"rule item %q has invalid colon placement", item)
	}

	clause := strings.TrimSpace(parts[1])
	if clause == "" {
		return Entry{}, casterr.RuleFormat(casterr.CodeInvalidColonPlacement,
			"rule item %q has invalid colon placement: empty clause", item)
	}

	return Entry{Outcome: outcome, Clause: clause}, nil
}

// Entries returns the entries in definition order.
func (d *Definition) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Outcomes returns the outcome names in definition order.
func (d *Definition) Outcomes() []string {
	out := make([]string, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.Outcome
	}
	return out
}

// Clause returns the clause for outcome.
func (d *Definition) Clause(outcome string) (string, bool) {
	i, ok := d.index[outcome]
	if !ok {
		return "", false
	}
	return d.entries[i].Clause, true
}

// Len returns the number of entries.
func (d *Definition) Len() int {
	return len(d.entries)
}

// String renders the definition back into its source form.
func (d *Definition) String() string {
	items := make([]string, len(d.entries))
	for i, e := range d.entries {
		items[i] = e.Outcome + OutcomeSeparator + e.Clause
	}
	return strings.Join(items, ItemSeparator)
}
