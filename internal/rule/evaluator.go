package rule

import (
	"strings"
	"sync"

	"github.com/roach88/scenariocast/internal/casterr"
)

// Evaluator decides whether a clause holds for a scenario.
// Evaluation must be a pure function of the clause and the scenario's tokens.
type Evaluator interface {
	Match(clause string, scenario []string) (bool, error)
}

// ClauseEvaluator is the bundled Evaluator. A token in a clause is true when
// the scenario contains an equal token. Terms combine with "and", "or", "not"
// and parentheses; precedence is not, then and, then or. Tokens containing
// spaces or keywords are written in single quotes:
//
//	'Has Value' and not (blank or null)
//
// Compiled clauses are cached. Thread-safety: safe for concurrent use.
type ClauseEvaluator struct {
	mu    sync.Mutex
	cache map[string]node
}

// NewClauseEvaluator creates an evaluator with an empty compile cache.
func NewClauseEvaluator() *ClauseEvaluator {
	return &ClauseEvaluator{cache: make(map[string]node)}
}

// Compile parses clause and caches the result. Syntax errors are rule format
// errors.
func (e *ClauseEvaluator) Compile(clause string) error {
	_, err := e.compiled(clause)
	return err
}

// Match implements Evaluator.
func (e *ClauseEvaluator) Match(clause string, scenario []string) (bool, error) {
	n, err := e.compiled(clause)
	if err != nil {
		return false, err
	}
	present := make(map[string]struct{}, len(scenario))
	for _, tok := range scenario {
		present[tok] = struct{}{}
	}
	return n.eval(present), nil
}

func (e *ClauseEvaluator) compiled(clause string) (node, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if n, ok := e.cache[clause]; ok {
		return n, nil
	}
	n, err := compile(clause)
	if err != nil {
		return nil, casterr.RuleFormat(casterr.CodeInvalidClause, "invalid clause %q", clause).WithCause(err)
	}
	e.cache[clause] = n
	return n, nil
}

// compiler is implemented by evaluators that can check syntax up front.
type compiler interface {
	Compile(clause string) error
}

// Rule binds a Definition to an Evaluator.
type Rule struct {
	def       *Definition
	evaluator Evaluator
}

// New creates a Rule. A nil evaluator selects a fresh ClauseEvaluator.
func New(def *Definition, evaluator Evaluator) *Rule {
	if evaluator == nil {
		evaluator = NewClauseEvaluator()
	}
	return &Rule{def: def, evaluator: evaluator}
}

// Parse is ParseDefinition followed by New.
func Parse(def string, evaluator Evaluator) (*Rule, error) {
	d, err := ParseDefinition(def)
	if err != nil {
		return nil, err
	}
	return New(d, evaluator), nil
}

// Definition returns the underlying definition.
func (r *Rule) Definition() *Definition {
	return r.def
}

// Evaluator returns the evaluator used by the rule.
func (r *Rule) Evaluator() Evaluator {
	return r.evaluator
}

// Validate compiles every clause when the evaluator supports it.
func (r *Rule) Validate() error {
	c, ok := r.evaluator.(compiler)
	if !ok {
		return nil
	}
	for _, e := range r.def.entries {
		if err := c.Compile(e.Clause); err != nil {
			return err
		}
	}
	return nil
}

// Matches returns every outcome whose clause holds, in definition order.
func (r *Rule) Matches(scenario []string) ([]string, error) {
	var matched []string
	for _, e := range r.def.entries {
		ok, err := r.evaluator.Match(e.Clause, scenario)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, e.Outcome)
		}
	}
	return matched, nil
}

// Outcome returns the single outcome whose clause holds for scenario.
// It returns false when no clause matches. More than one match is a
// configuration defect.
func (r *Rule) Outcome(scenario []string) (string, bool, error) {
	matched, err := r.Matches(scenario)
	if err != nil {
		return "", false, err
	}
	switch len(matched) {
	case 0:
		return "", false, nil
	case 1:
		return matched[0], true, nil
	default:
		return "", false, casterr.Configuration(casterr.CodeAmbiguousOutcome,
			"scenario [%s] matches outcomes %s", strings.Join(scenario, ", "), strings.Join(matched, ", "))
	}
}
