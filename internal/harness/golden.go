package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/scenariocast/internal/ir"
)

// Snapshot renders parameters as canonical JSON for golden comparison.
//
// Scenario IDs and converted values are left out: IDs are derived from the
// other fields, and values may be floats, which canonical JSON forbids.
func Snapshot(params []Parameter) ([]byte, error) {
	list := make([]any, len(params))
	for i, p := range params {
		entry := map[string]any{
			"case":     p.CaseIndex,
			"case_ids": p.CaseIDs,
			"name":     p.Name,
			"tokens":   p.Tokens,
		}
		if p.Exempt {
			entry["exempt"] = true
		} else {
			entry["outcome"] = p.Outcome
		}
		if p.Inferred {
			entry["inferred"] = true
		}
		list[i] = entry
	}
	return ir.MarshalCanonical(map[string]any{"scenarios": list})
}

// AssertGolden compares the parameter snapshot against
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, params []Parameter) error {
	t.Helper()

	data, err := Snapshot(params)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
