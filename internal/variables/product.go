package variables

import "strings"

// Scenario is one concrete combination: one token from each group, in group
// declaration order. Position is significant; callers look tokens up by index.
type Scenario struct {
	Tokens []string
	Values []any
}

// String joins the tokens with ", ".
func (s Scenario) String() string {
	return strings.Join(s.Tokens, ", ")
}

// Contains reports whether token appears anywhere in the scenario.
func (s Scenario) Contains(token string) bool {
	for _, t := range s.Tokens {
		if t == token {
			return true
		}
	}
	return false
}

// Product returns the cartesian product of groups. The first group varies
// slowest, so [[a b] [x y]] yields (a,x) (a,y) (b,x) (b,y).
//
// Zero groups yield a single empty scenario. A group with zero tokens yields
// no scenarios at all.
func Product(groups []Group) []Scenario {
	total := 1
	for _, g := range groups {
		total *= len(g.Tokens)
	}

	out := make([]Scenario, 0, total)
	idx := make([]int, len(groups))

	for n := 0; n < total; n++ {
		sc := Scenario{
			Tokens: make([]string, len(groups)),
			Values: make([]any, len(groups)),
		}
		for gi, g := range groups {
			sc.Tokens[gi] = g.Tokens[idx[gi]]
			if gi < len(g.Values) && idx[gi] < len(g.Values) {
				sc.Values[gi] = g.Values[idx[gi]]
			} else {
				sc.Values[gi] = g.Tokens[idx[gi]]
			}
		}
		out = append(out, sc)

		// Odometer increment, last group fastest.
		for gi := len(groups) - 1; gi >= 0; gi-- {
			idx[gi]++
			if idx[gi] < len(groups[gi].Tokens) {
				break
			}
			idx[gi] = 0
		}
	}

	return out
}

// Combine appends common groups after a case's own groups.
func Combine(caseGroups, common []Group) []Group {
	out := make([]Group, 0, len(caseGroups)+len(common))
	out = append(out, caseGroups...)
	return append(out, common...)
}
