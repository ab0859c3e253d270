package store

import "time"

// Run is one stored generation run.
type Run struct {
	Seq           int64     `json:"seq"`
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	Digest        string    `json:"digest"`
	CaseCount     int       `json:"case_count"`
	ScenarioCount int       `json:"scenario_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// CaseRecord is the stored form of a case fixture.
type CaseRecord struct {
	Index       int      `json:"index"`
	Description string   `json:"description"`
	CaseIDs     []string `json:"case_ids"`
	Rule        string   `json:"rule"`
	Pair        string   `json:"pair,omitempty"`
	Exemption   string   `json:"exemption,omitempty"`
}

// ScenarioRecord is the stored form of a generated scenario.
type ScenarioRecord struct {
	RunID     string   `json:"run_id,omitempty"`
	Position  int      `json:"position"`
	ID        string   `json:"id"`
	CaseIndex int      `json:"case_index"`
	Name      string   `json:"name"`
	Tokens    []string `json:"tokens"`
	Values    []any    `json:"values"`
	Outcome   string   `json:"outcome,omitempty"`
	Exempt    bool     `json:"exempt,omitempty"`
	Inferred  bool     `json:"inferred,omitempty"`
}

// RunInput is everything SaveRun persists.
type RunInput struct {
	// Source names the configuration the run was generated from.
	Source    string
	Cases     []CaseRecord
	Scenarios []ScenarioRecord
}
