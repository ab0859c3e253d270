package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrRunNotFound is returned by GetRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

type scanner interface {
	Scan(dest ...any) error
}

const runColumns = `seq, id, source, digest, case_count, scenario_count, created_at`

// ListRuns returns every run, oldest first.
// Returns an empty slice (not nil) when the catalog is empty.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run. Unknown IDs yield ErrRunNotFound.
func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return r, err
}

// LatestRun returns the most recently stored run.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY seq DESC LIMIT 1`)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	return r, err
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var created string
	if err := row.Scan(&r.Seq, &r.ID, &r.Source, &r.Digest, &r.CaseCount, &r.ScenarioCount, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Run{}, fmt.Errorf("scan run %s: created_at: %w", r.ID, err)
	}
	r.CreatedAt = t
	return r, nil
}

// ReadCases returns the cases of a run in index order.
func (s *Store) ReadCases(ctx context.Context, runID string) ([]CaseRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT case_index, description, case_ids, rule, pair, exemption
		FROM cases
		WHERE run_id = ?
		ORDER BY case_index ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query cases: %w", err)
	}
	defer rows.Close()

	cases := []CaseRecord{}
	for rows.Next() {
		var c CaseRecord
		var ids string
		if err := rows.Scan(&c.Index, &c.Description, &ids, &c.Rule, &c.Pair, &c.Exemption); err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		if c.CaseIDs, err = unmarshalStrings(ids); err != nil {
			return nil, fmt.Errorf("case %d: %w", c.Index, err)
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cases: %w", err)
	}
	return cases, nil
}

const scenarioColumns = `run_id, position, id, case_index, name, tokens, vals, outcome, exempt, inferred`

// ReadScenarios returns the scenarios of a run in generation order.
func (s *Store) ReadScenarios(ctx context.Context, runID string) ([]ScenarioRecord, error) {
	return s.queryScenarios(ctx, `
		SELECT `+scenarioColumns+`
		FROM scenarios
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
}

// ScenarioHistory returns every stored occurrence of a scenario ID across
// runs, oldest run first.
func (s *Store) ScenarioHistory(ctx context.Context, scenarioID string) ([]ScenarioRecord, error) {
	return s.queryScenarios(ctx, `
		SELECT s.run_id, s.position, s.id, s.case_index, s.name, s.tokens, s.vals, s.outcome, s.exempt, s.inferred
		FROM scenarios s
		JOIN runs r ON r.id = s.run_id
		WHERE s.id = ?
		ORDER BY r.seq ASC, s.position ASC
	`, scenarioID)
}

func (s *Store) queryScenarios(ctx context.Context, query string, args ...any) ([]ScenarioRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scenarios: %w", err)
	}
	defer rows.Close()

	out := []ScenarioRecord{}
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenarios: %w", err)
	}
	return out, nil
}

func scanScenario(row scanner) (ScenarioRecord, error) {
	var sc ScenarioRecord
	var tokens, vals string
	var exempt, inferred int
	if err := row.Scan(&sc.RunID, &sc.Position, &sc.ID, &sc.CaseIndex, &sc.Name,
		&tokens, &vals, &sc.Outcome, &exempt, &inferred); err != nil {
		return ScenarioRecord{}, fmt.Errorf("scan scenario: %w", err)
	}

	var err error
	if sc.Tokens, err = unmarshalStrings(tokens); err != nil {
		return ScenarioRecord{}, fmt.Errorf("scenario %d: %w", sc.Position, err)
	}
	if sc.Values, err = unmarshalValues(vals); err != nil {
		return ScenarioRecord{}, fmt.Errorf("scenario %d: %w", sc.Position, err)
	}
	sc.Exempt = exempt != 0
	sc.Inferred = inferred != 0
	return sc, nil
}
