package harness

import (
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/roach88/scenariocast/internal/fixture"
	"github.com/roach88/scenariocast/internal/ir"
)

// Generator expands fixtures into parameters.
type Generator struct {
	logger *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets the generator logger. Default: discard.
func WithLogger(l *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = l
	}
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs by default
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate is NewGenerator().Generate.
func Generate(fixtures []*fixture.CaseFixture) ([]Parameter, error) {
	return NewGenerator().Generate(fixtures)
}

// Generate returns one Parameter per scenario, fixtures in order and
// scenarios in product order. The first configuration error aborts
// generation.
func (g *Generator) Generate(fixtures []*fixture.CaseFixture) ([]Parameter, error) {
	var params []Parameter
	for _, f := range fixtures {
		caseParams, err := g.generateCase(f)
		if err != nil {
			return nil, err
		}
		params = append(params, caseParams...)
	}
	if params == nil {
		params = []Parameter{}
	}
	return params, nil
}

func (g *Generator) generateCase(f *fixture.CaseFixture) ([]Parameter, error) {
	scenarios := f.Scenarios()
	params := make([]Parameter, 0, len(scenarios))
	exempt := 0

	for _, sc := range scenarios {
		exp, err := f.Expect(sc.Tokens)
		if err != nil {
			return nil, err
		}
		id, err := ir.ScenarioID(f.Index(), f.Description(), sc.Tokens)
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", f.Index(), err)
		}
		if exp.Exempt {
			exempt++
		}

		params = append(params, Parameter{
			Name:        ParameterName(f.Description(), sc.Tokens),
			ID:          id,
			CaseIndex:   f.Index(),
			Description: f.Description(),
			CaseIDs:     f.CaseIDs(),
			Tokens:      sc.Tokens,
			Values:      sc.Values,
			Outcome:     exp.Outcome,
			Exempt:      exp.Exempt,
			Inferred:    exp.Inferred,
		})
	}

	g.logger.Debug("case generated",
		"case", f.Index(),
		"description", f.Description(),
		"scenarios", len(params),
		"exempt", exempt,
	)
	return params, nil
}

// ParameterName formats "<description>: tok1, tok2".
func ParameterName(description string, tokens []string) string {
	if len(tokens) == 0 {
		return description
	}
	return description + ": " + strings.Join(tokens, ", ")
}

// SelectFixtures keeps the fixtures whose description or any identifier
// matches the path.Match pattern. An empty pattern keeps everything.
func SelectFixtures(fixtures []*fixture.CaseFixture, pattern string) ([]*fixture.CaseFixture, error) {
	if pattern == "" {
		return fixtures, nil
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid case pattern %q: %w", pattern, err)
	}

	var out []*fixture.CaseFixture
	for _, f := range fixtures {
		names := append([]string{f.Description()}, f.CaseIDs()...)
		for _, name := range names {
			if ok, _ := path.Match(pattern, name); ok {
				out = append(out, f)
				break
			}
		}
	}
	return out, nil
}

// Summary counts parameters by outcome. Exempt parameters are counted
// under the empty outcome.
func Summary(params []Parameter) map[string]int {
	counts := make(map[string]int)
	for _, p := range params {
		counts[p.Outcome]++
	}
	return counts
}
