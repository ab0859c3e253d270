package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/scenariocast/internal/ir"
	"github.com/roach88/scenariocast/internal/testutil"
)

// createTestStore creates a store in a temp dir with deterministic run IDs
// and timestamps.
func createTestStore(t *testing.T, ids ...string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path,
		WithIDGenerator(testutil.NewFixedIDGenerator(ids...)),
		WithClock(testutil.NewDeterministicClock()),
	)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testRunInput builds a small two-case run.
func testRunInput() RunInput {
	return RunInput{
		Source: "fixture.properties",
		Cases: []CaseRecord{
			{Index: 0, Description: "Divide", CaseIDs: []string{"divide"}, Rule: "ERROR:arg2=0~OK:not arg2=0"},
			{Index: 1, Description: "Flag", CaseIDs: []string{"Flag"}, Rule: "true:on", Pair: "true:false", Exemption: "skip"},
		},
		Scenarios: []ScenarioRecord{
			testScenario(0, "Divide", []string{"arg2=0"}, []any{"arg2=0"}, "ERROR"),
			testScenario(0, "Divide", []string{"arg2=5"}, []any{"arg2=5"}, "OK"),
			testScenario(1, "Flag", []string{"on"}, []any{1.5}, "true"),
			{
				ID:        ir.MustScenarioID(1, "Flag", []string{"skip"}),
				CaseIndex: 1,
				Name:      "Flag: skip",
				Tokens:    []string{"skip"},
				Values:    []any{true},
				Exempt:    true,
			},
		},
	}
}

func testScenario(caseIndex int, desc string, tokens []string, vals []any, outcome string) ScenarioRecord {
	return ScenarioRecord{
		ID:        ir.MustScenarioID(caseIndex, desc, tokens),
		CaseIndex: caseIndex,
		Name:      desc + ": " + tokens[0],
		Tokens:    tokens,
		Values:    vals,
		Outcome:   outcome,
	}
}
