package harness

// Parameter is one generated scenario with its expectation.
type Parameter struct {
	// Name is "<description>: tok1, tok2", or the description alone for a
	// scenario without tokens.
	Name string `json:"name"`

	// ID is the content-addressed scenario ID.
	ID string `json:"id"`

	CaseIndex   int      `json:"case_index"`
	Description string   `json:"description"`
	CaseIDs     []string `json:"case_ids"`

	// Tokens are the raw scenario tokens, case groups first.
	Tokens []string `json:"tokens"`

	// Values are the converted tokens, aligned with Tokens.
	Values []any `json:"values"`

	// Outcome is the expected outcome. Empty when Exempt.
	Outcome string `json:"outcome,omitempty"`

	Exempt bool `json:"exempt,omitempty"`

	// Inferred is true when Outcome is the pair complement of the single
	// rule outcome.
	Inferred bool `json:"inferred,omitempty"`
}
