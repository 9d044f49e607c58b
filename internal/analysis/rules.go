package analysis

import "fmt"

// ruleTable evaluates an ordered band list first-match-wins. Tables are
// validated at construction so that every value matches some band.
type ruleTable struct {
	name  string
	bands []Band
}

func newRuleTable(name string, bands []Band) (ruleTable, error) {
	if len(bands) == 0 {
		return ruleTable{}, fmt.Errorf("%s: rule table is empty", name)
	}
	for i, b := range bands {
		if b.Label == "" {
			return ruleTable{}, fmt.Errorf("%s: band %d has no label", name, i)
		}
		bounds := 0
		if b.GreaterThan != nil {
			bounds++
		}
		if b.AtLeast != nil {
			bounds++
		}
		if b.AtMost != nil {
			bounds++
		}
		if bounds > 1 {
			return ruleTable{}, fmt.Errorf("%s: band %q sets more than one bound", name, b.Label)
		}
		if b.catchAll() && i != len(bands)-1 {
			return ruleTable{}, fmt.Errorf("%s: catch-all band %q must be last", name, b.Label)
		}
	}
	if !bands[len(bands)-1].catchAll() {
		return ruleTable{}, fmt.Errorf("%s: final band %q must be an unconditional catch-all", name, bands[len(bands)-1].Label)
	}
	return ruleTable{name: name, bands: bands}, nil
}

func (t ruleTable) categorize(v float64) Band {
	for _, b := range t.bands {
		if b.matches(v) {
			return b
		}
	}
	// Unreachable: the constructor requires a trailing catch-all.
	return t.bands[len(t.bands)-1]
}
