package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scenariocast/internal/store"
)

// seedCatalog generates flagsConfig into a fresh catalog n times and
// returns the database path and the last generate result.
func seedCatalog(t *testing.T, n int) (string, GenerateResult) {
	t.Helper()
	path := writeConfig(t, "flags.properties", flagsConfig)
	db := filepath.Join(t.TempDir(), "catalog.db")

	var result GenerateResult
	for i := 0; i < n; i++ {
		out, _, err := execute(t, "--format", "json", "generate", "--db", db, path)
		require.NoError(t, err)
		decodeResponse(t, out, &result)
	}
	return db, result
}

func TestCatalogListRuns(t *testing.T) {
	db, last := seedCatalog(t, 2)

	out, _, err := execute(t, "--format", "json", "catalog", db)
	require.NoError(t, err)

	var runs []store.Run
	decodeResponse(t, out, &runs)
	require.Len(t, runs, 2)
	assert.Less(t, runs[0].Seq, runs[1].Seq)
	assert.Equal(t, last.RunID, runs[1].ID)
	assert.Equal(t, runs[0].Digest, runs[1].Digest)
	assert.Equal(t, 6, runs[1].ScenarioCount)

	text, _, err := execute(t, "catalog", db)
	require.NoError(t, err)
	assert.Contains(t, text, last.RunID)
	assert.Contains(t, text, "2 case(s)  6 scenario(s)")
}

func TestCatalogEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "empty.db")
	st, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, _, err := execute(t, "catalog", db)
	require.NoError(t, err)
	assert.Equal(t, "no runs\n", out)
}

func TestCatalogShowRun(t *testing.T) {
	db, last := seedCatalog(t, 1)

	out, _, err := execute(t, "--format", "json", "catalog", "--run", last.RunID, db)
	require.NoError(t, err)

	var detail RunDetail
	decodeResponse(t, out, &detail)
	assert.Equal(t, last.RunID, detail.Run.ID)
	require.Len(t, detail.Cases, 2)
	assert.Equal(t, "true:a and b", detail.Cases[0].Rule)
	assert.Equal(t, []string{"flags"}, detail.Cases[0].CaseIDs)
	require.Len(t, detail.Scenarios, 6)
	assert.Equal(t, "Flags: a, b", detail.Scenarios[0].Name)
}

func TestCatalogShowLatestText(t *testing.T) {
	db, last := seedCatalog(t, 2)

	out, _, err := execute(t, "catalog", "--latest", db)
	require.NoError(t, err)

	assert.Contains(t, out, last.RunID)
	assert.Contains(t, out, "case 0: Flags\n")
	assert.Contains(t, out, "  rule: true:a and b\n")
	assert.Contains(t, out, "  pair: true:false\n")
	assert.Contains(t, out, "  exempt: x and y\n")
	assert.Contains(t, out, "  Flags: x, y -> exempt\n")
	assert.Contains(t, out, "case 1: Divide\n")
	assert.Contains(t, out, "  Divide: arg2=5 -> OK\n")
}

func TestCatalogScenarioHistory(t *testing.T) {
	db, last := seedCatalog(t, 3)
	id := last.Scenarios[1].ID

	out, _, err := execute(t, "--format", "json", "catalog", "--scenario", id, db)
	require.NoError(t, err)

	var history []store.ScenarioRecord
	decodeResponse(t, out, &history)
	require.Len(t, history, 3)
	for _, sc := range history {
		assert.Equal(t, id, sc.ID)
		assert.Equal(t, "false", sc.Outcome)
		assert.True(t, sc.Inferred)
	}
	assert.Equal(t, last.RunID, history[2].RunID)
}

func TestCatalogErrors(t *testing.T) {
	db, _ := seedCatalog(t, 1)

	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{"missing_catalog", []string{"catalog", filepath.Join(t.TempDir(), "absent.db")}, ErrCodeIO},
		{"unknown_run", []string{"catalog", "--run", "nope", db}, ErrCodeStore},
		{"exclusive_flags", []string{"catalog", "--latest", "--run", "x", db}, ErrCodeFlags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.wantCode+"]")
		})
	}
}
