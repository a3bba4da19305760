package analysis

import (
	"github.com/ishankgp/MF-return-tracker/internal/contracts"
	"github.com/ishankgp/MF-return-tracker/internal/selection"
)

// FormulaRanking is one formula's full ranking of the snapshot
type FormulaRanking struct {
	Formula     string                 `json:"formula"`
	Kind        string                 `json:"kind"`
	Outcome     Outcome                `json:"outcome"`
	TargetRanks map[string]int         `json:"target_ranks"` // 0 when the target is absent
	Funds       []contracts.RankedFund `json:"rankings"`
}

// Top returns the first n ranked funds
func (r *FormulaRanking) Top(n int) []contracts.RankedFund {
	return selection.Top(r.Funds, n)
}

// Comparison is the result of running a registry over one snapshot
type Comparison struct {
	Years   []int    `json:"years"`
	Targets []string `json:"targets"`
	TopK    int      `json:"top_k"`
	Basis   string   `json:"basis"`
	Funds   int      `json:"funds"`
	Usable  int      `json:"usable"`

	Rankings []FormulaRanking `json:"formulas"`

	// Formulas with both targets in the top K, in registry order
	Successful []string `json:"successful"`

	// Per target, the formulas that put it in the top K
	TargetHits map[string][]string `json:"target_hits"`

	// First successful formula, empty when none succeeded
	Recommended string `json:"recommended,omitempty"`
}

// Ranking looks up a formula's ranking by name
func (c *Comparison) Ranking(name string) (*FormulaRanking, bool) {
	for i := range c.Rankings {
		if c.Rankings[i].Formula == name {
			return &c.Rankings[i], true
		}
	}
	return nil, false
}

// Recommendation returns the recommended formula's ranking, if any
func (c *Comparison) Recommendation() (*FormulaRanking, bool) {
	if c.Recommended == "" {
		return nil, false
	}
	return c.Ranking(c.Recommended)
}
