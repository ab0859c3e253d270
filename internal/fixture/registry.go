package fixture

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/scenariocast/internal/casterr"
	"github.com/roach88/scenariocast/internal/config"
	"github.com/roach88/scenariocast/internal/convert"
	"github.com/roach88/scenariocast/internal/rule"
	"github.com/roach88/scenariocast/internal/variables"
)

// Registry reads cases from a configuration source and builds CaseFixtures.
//
// Initialize populates the per-case collections in a fixed order: cases,
// variables, rules, identifiers, exemptions, pairs. Every collection holds
// one entry per case; Build only reads them.
//
// The key index of case i is i + debug_index, which lets a configuration
// run a single case out of a larger file without renumbering it.
type Registry struct {
	src        config.Source
	converters *convert.Registry
	evaluator  rule.Evaluator
	logger     *slog.Logger

	initialized bool
	initErr     error
	debug       int

	descriptions []string
	groups       [][]variables.Group
	tokenConv    []map[string]convert.Converter
	rules        []*rule.Rule
	caseIDs      [][]string
	exemptions   []string
	pairs        []Pair
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithConverters sets the converter registry. Default: convert.NewRegistry().
func WithConverters(c *convert.Registry) RegistryOption {
	return func(r *Registry) {
		r.converters = c
	}
}

// WithEvaluator sets the clause evaluator shared by all rules and
// exemptions. Default: rule.NewClauseEvaluator().
func WithEvaluator(e rule.Evaluator) RegistryOption {
	return func(r *Registry) {
		r.evaluator = e
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = l
	}
}

// NewRegistry creates a registry over src. Nothing is read until
// Initialize or Build is called.
func NewRegistry(src config.Source, opts ...RegistryOption) *Registry {
	r := &Registry{src: src}
	for _, opt := range opts {
		opt(r)
	}
	if r.converters == nil {
		r.converters = convert.NewRegistry()
	}
	if r.evaluator == nil {
		r.evaluator = rule.NewClauseEvaluator()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Initialize reads every case from the source. It runs once; later calls
// return the first result.
func (r *Registry) Initialize() error {
	if r.initialized {
		return r.initErr
	}
	r.initialized = true
	r.initErr = r.initialize()
	if r.initErr != nil {
		r.logger.Debug("fixture registry initialization failed", "error", r.initErr)
		return r.initErr
	}
	r.logger.Info("fixture registry initialized",
		"cases", len(r.descriptions),
		"debug_index", r.debug,
	)
	return nil
}

func (r *Registry) initialize() error {
	debug, err := config.DebugIndex(r.src)
	if err != nil {
		return err
	}
	r.debug = debug

	steps := []func() error{
		r.initCases,
		r.initVariables,
		r.initRules,
		r.initIdentifiers,
		r.initExemptions,
		r.initPairs,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// CaseCount returns the number of declared cases.
func (r *Registry) CaseCount() (int, error) {
	if err := r.Initialize(); err != nil {
		return 0, err
	}
	return len(r.descriptions), nil
}

// DebugIndex returns the key offset in effect.
func (r *Registry) DebugIndex() (int, error) {
	if err := r.Initialize(); err != nil {
		return 0, err
	}
	return r.debug, nil
}

// Build returns the fixture for case i.
func (r *Registry) Build(i int) (*CaseFixture, error) {
	if err := r.Initialize(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(r.descriptions) {
		return nil, casterr.Configuration(casterr.CodeCaseOutOfRange,
			"case index %d is outside [0, %d)", i, len(r.descriptions)).WithCase(i)
	}

	b := NewBuilder(r.descriptions[i], r.groups[i], r.rules[i]).
		Index(i).
		CaseIDs(r.caseIDs[i]...).
		Exempt(r.exemptions[i]).
		Converters(r.tokenConv[i])
	if !r.pairs[i].IsZero() {
		b.Pair(r.pairs[i])
	}
	return b.Build()
}

// Fixtures builds every case in ascending order.
func (r *Registry) Fixtures() ([]*CaseFixture, error) {
	n, err := r.CaseCount()
	if err != nil {
		return nil, err
	}
	out := make([]*CaseFixture, 0, n)
	for i := 0; i < n; i++ {
		f, err := r.Build(i)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *Registry) key(k config.Key, i int) string {
	return k.Indexed(i + r.debug)
}

// initCases reads the case list, either from the comma list under
// "casedesc" (first debug_index entries dropped) or from consecutive
// casedesc{i} keys starting at debug_index.
func (r *Registry) initCases() error {
	seen := make(map[string]int)
	add := func(desc, key string) error {
		if desc == "" {
			return casterr.MissingKey(key, len(r.descriptions))
		}
		if prev, ok := seen[desc]; ok {
			return casterr.Configuration(casterr.CodeDuplicateCase,
				"case description %q is already declared by case %d", desc, prev).
				WithKey(key).WithCase(len(r.descriptions))
		}
		seen[desc] = len(r.descriptions)
		r.descriptions = append(r.descriptions, desc)
		return nil
	}

	if list, ok := r.src.Lookup(config.KeyCaseDesc.String()); ok {
		entries := strings.Split(list, ",")
		if r.debug > len(entries) {
			return nil
		}
		for _, e := range entries[r.debug:] {
			if err := add(strings.TrimSpace(e), config.KeyCaseDesc.String()); err != nil {
				return err
			}
		}
		return nil
	}

	for i := 0; ; i++ {
		key := r.key(config.KeyCaseDesc, i)
		desc, ok := r.src.Lookup(key)
		if !ok {
			return nil
		}
		if err := add(strings.TrimSpace(desc), key); err != nil {
			return err
		}
	}
}

func (r *Registry) initVariables() error {
	expander := variables.NewExpander(r.converters)

	var common []variables.Group
	if raw, ok := r.src.Lookup(config.KeyCommonVar.String()); ok {
		groups, err := expander.Expand(variables.CommonIndex, raw, variables.TokenSeparator, "")
		if err != nil {
			return annotate(err, config.KeyCommonVar.String(), casterr.NoCase)
		}
		common = groups
	}

	stringConv, err := r.converters.Get(convert.String)
	if err != nil {
		return err
	}

	for i := range r.descriptions {
		varKey := r.key(config.KeyVar, i)
		raw, ok := r.src.Lookup(varKey)
		if !ok {
			return casterr.MissingKey(varKey, i)
		}

		convKey := r.key(config.KeyConverter, i)
		spec, _ := r.src.Lookup(convKey)

		groups, err := expander.Expand(i, raw, variables.TokenSeparator, spec)
		if err != nil {
			key := varKey
			if casterr.CodeOf(err) == casterr.CodeConverterCountMismatch ||
				casterr.CodeOf(err) == casterr.CodeConverterNotFound {
				key = convKey
			}
			return annotate(err, key, i)
		}

		tc := expander.TokenConverters(i)
		for _, g := range common {
			for _, tok := range g.Tokens {
				if _, ok := tc[tok]; !ok {
					tc[tok] = stringConv
				}
			}
		}

		r.groups = append(r.groups, variables.Combine(groups, common))
		r.tokenConv = append(r.tokenConv, tc)

		r.logger.Debug("case variables expanded",
			"case", i,
			"description", r.descriptions[i],
			"groups", len(groups),
			"common_groups", len(common),
		)
	}
	return nil
}

func (r *Registry) initRules() error {
	for i := range r.descriptions {
		key := r.key(config.KeyRule, i)
		raw, ok := r.src.Lookup(key)
		if !ok {
			return casterr.MissingKey(key, i)
		}
		def, err := rule.ParseDefinition(raw)
		if err != nil {
			return annotate(err, key, i)
		}
		r.rules = append(r.rules, rule.New(def, r.evaluator))

		r.logger.Debug("case rule parsed",
			"case", i,
			"outcomes", def.Outcomes(),
		)
	}
	return nil
}

func (r *Registry) initIdentifiers() error {
	for i, desc := range r.descriptions {
		var ids []string
		if raw, ok := r.src.Lookup(r.key(config.KeyCaseID, i)); ok {
			for _, id := range strings.Split(raw, ",") {
				if id = strings.TrimSpace(id); id != "" {
					ids = append(ids, id)
				}
			}
		}
		if len(ids) == 0 {
			ids = []string{desc}
		}
		r.caseIDs = append(r.caseIDs, ids)
	}
	return nil
}

// initExemptions combines each case exemption with commonexempt as
// "(case) or (common)".
func (r *Registry) initExemptions() error {
	common := ""
	if raw, ok := r.src.Lookup(config.KeyCommonExempt.String()); ok {
		common = strings.TrimSpace(raw)
	}

	for i := range r.descriptions {
		clause := ""
		if raw, ok := r.src.Lookup(r.key(config.KeyExempt, i)); ok {
			clause = strings.TrimSpace(raw)
		}
		switch {
		case clause != "" && common != "":
			clause = "(" + clause + ") or (" + common + ")"
		case clause == "":
			clause = common
		}
		r.exemptions = append(r.exemptions, clause)
	}
	return nil
}

func (r *Registry) initPairs() error {
	for i := range r.descriptions {
		key := r.key(config.KeyPair, i)
		raw, ok := r.src.Lookup(key)
		if !ok || strings.TrimSpace(raw) == "" {
			r.pairs = append(r.pairs, Pair{})
			continue
		}
		p, err := ParsePair(raw)
		if err != nil {
			return annotate(err, key, i)
		}
		r.pairs = append(r.pairs, p)
	}
	return nil
}

// annotate attaches a key and case index to a casterr.Error that lacks them.
func annotate(err error, key string, caseIndex int) error {
	var ce *casterr.Error
	if !errors.As(err, &ce) {
		return err
	}
	if ce.Key == "" {
		ce = ce.WithKey(key)
	}
	if ce.CaseIndex == casterr.NoCase && caseIndex != casterr.NoCase {
		ce = ce.WithCase(caseIndex)
	}
	return ce
}
