package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/scenariocast/internal/ir"
)

// SaveRun stores a complete run in one transaction and returns the stored
// Run. The run digest covers the scenario IDs in order.
func (s *Store) SaveRun(ctx context.Context, in RunInput) (Run, error) {
	ids := make([]string, len(in.Scenarios))
	for i, sc := range in.Scenarios {
		ids[i] = sc.ID
	}
	digest, err := ir.RunDigest(ids)
	if err != nil {
		return Run{}, fmt.Errorf("save run: %w", err)
	}

	run := Run{
		ID:            s.ids.NewID(),
		Source:        in.Source,
		Digest:        digest,
		CaseCount:     len(in.Cases),
		ScenarioCount: len(in.Scenarios),
		CreatedAt:     s.clock.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("save run: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, digest, case_count, scenario_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.Source, run.Digest, run.CaseCount, run.ScenarioCount, run.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return Run{}, fmt.Errorf("save run: insert run: %w", err)
	}
	if run.Seq, err = res.LastInsertId(); err != nil {
		return Run{}, fmt.Errorf("save run: run seq: %w", err)
	}

	for _, c := range in.Cases {
		caseIDs, err := marshalStrings(c.CaseIDs)
		if err != nil {
			return Run{}, fmt.Errorf("save run: case %d: %w", c.Index, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cases (run_id, case_index, description, case_ids, rule, pair, exemption)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, run.ID, c.Index, c.Description, caseIDs, c.Rule, c.Pair, c.Exemption); err != nil {
			return Run{}, fmt.Errorf("save run: insert case %d: %w", c.Index, err)
		}
	}

	for pos, sc := range in.Scenarios {
		tokens, err := marshalStrings(sc.Tokens)
		if err != nil {
			return Run{}, fmt.Errorf("save run: scenario %d: %w", pos, err)
		}
		vals, err := marshalValues(sc.Values)
		if err != nil {
			return Run{}, fmt.Errorf("save run: scenario %d: %w", pos, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO scenarios (run_id, position, id, case_index, name, tokens, vals, outcome, exempt, inferred)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, pos, sc.ID, sc.CaseIndex, sc.Name, tokens, vals, sc.Outcome,
			boolToInt(sc.Exempt), boolToInt(sc.Inferred)); err != nil {
			return Run{}, fmt.Errorf("save run: insert scenario %d: %w", pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("save run: commit: %w", err)
	}
	return run, nil
}

// DeleteRun removes a run and everything recorded under it.
// Deleting an unknown run is not an error.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}
