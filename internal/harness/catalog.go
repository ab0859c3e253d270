package harness

import (
	"github.com/roach88/scenariocast/internal/fixture"
	"github.com/roach88/scenariocast/internal/store"
)

// CatalogInput converts fixtures and their generated parameters into the
// form store.SaveRun persists.
func CatalogInput(source string, fixtures []*fixture.CaseFixture, params []Parameter) store.RunInput {
	in := store.RunInput{
		Source:    source,
		Cases:     make([]store.CaseRecord, 0, len(fixtures)),
		Scenarios: make([]store.ScenarioRecord, 0, len(params)),
	}

	for _, f := range fixtures {
		rec := store.CaseRecord{
			Index:       f.Index(),
			Description: f.Description(),
			CaseIDs:     f.CaseIDs(),
			Rule:        f.Rule().Definition().String(),
		}
		if p, ok := f.Pair(); ok {
			rec.Pair = p.String()
		}
		if e, ok := f.Exemption(); ok {
			rec.Exemption = e
		}
		in.Cases = append(in.Cases, rec)
	}

	for _, p := range params {
		in.Scenarios = append(in.Scenarios, store.ScenarioRecord{
			ID:        p.ID,
			CaseIndex: p.CaseIndex,
			Name:      p.Name,
			Tokens:    p.Tokens,
			Values:    p.Values,
			Outcome:   p.Outcome,
			Exempt:    p.Exempt,
			Inferred:  p.Inferred,
		})
	}
	return in
}
