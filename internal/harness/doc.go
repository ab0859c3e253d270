// Package harness turns case fixtures into test parameters and runs them as
// go test subtests.
//
// # Generation
//
// Generate expands every fixture into its scenarios and resolves each
// scenario's expectation:
//
//	reg := fixture.NewRegistry(src)
//	fixtures, err := reg.Fixtures()
//	params, err := harness.Generate(fixtures)
//
// Every Parameter is named "<description>: tok1, tok2" and carries a
// content-addressed ID (ir.ScenarioID) that is stable across runs.
//
// # Running
//
// RunCases runs one subtest per parameter and skips exempt ones:
//
//	harness.RunCases(t, params, func(t *testing.T, p harness.Parameter) {
//	    got := subject(p.Values...)
//	    assert.Equal(t, p.Outcome, got)
//	})
//
// # Golden Snapshots
//
// AssertGolden renders parameters as canonical JSON and compares them with
// testdata/golden/<name>.golden. To regenerate golden files, run:
//
//	go test ./internal/harness -update
package harness
