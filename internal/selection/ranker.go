package selection

import (
	"sort"
	"strings"

	"github.com/ishankgp/MF-return-tracker/internal/contracts"
	"github.com/ishankgp/MF-return-tracker/pkg/logger"
)

// Basis selects the score a ranking orders by
type Basis int

const (
	// BasisNormalized orders by the 0-100 normalized score
	BasisNormalized Basis = iota

	// BasisRaw orders by the raw formula score
	BasisRaw
)

// String returns the basis name
func (b Basis) String() string {
	if b == BasisRaw {
		return "raw"
	}
	return "normalized"
}

// Score returns the score of sf that this basis orders by
func (b Basis) Score(sf contracts.ScoredFund) float64 {
	if b == BasisRaw {
		return sf.RawScore
	}
	return float64(sf.NormalizedScore)
}

// Ranker orders scored funds and assigns ranks
type Ranker struct {
	logger *logger.Logger
}

// NewRanker creates a new ranker
func NewRanker(logger *logger.Logger) *Ranker {
	return &Ranker{
		logger: logger,
	}
}

// Rank sorts a copy of scored descending by basis and assigns 1-based ranks.
// Ties keep their input order.
func (r *Ranker) Rank(scored []contracts.ScoredFund, basis Basis) []contracts.RankedFund {
	ranked := make([]contracts.RankedFund, len(scored))
	for i, s := range scored {
		ranked[i] = contracts.RankedFund{ScoredFund: s}
	}

	// Sort by score (descending), stable for ties
	sort.SliceStable(ranked, func(i, j int) bool {
		return basis.Score(ranked[i].ScoredFund) > basis.Score(ranked[j].ScoredFund)
	})

	// Assign ranks
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	if len(ranked) > 0 {
		r.logger.WithFields(map[string]interface{}{
			"total_funds": len(ranked),
			"basis":       basis.String(),
			"top_fund":    ranked[0].FundName,
			"top_score":   basis.Score(ranked[0].ScoredFund),
		}).Debug("Ranking completed")
	}

	return ranked
}

// Matches reports whether a fund name contains the target substring
func Matches(fundName, target string) bool {
	return target != "" && strings.Contains(fundName, target)
}

// InTopK reports whether any fund matching target ranks within the first k
func InTopK(ranked []contracts.RankedFund, target string, k int) bool {
	for i := range ranked {
		if ranked[i].IsTopRanked(k) && Matches(ranked[i].FundName, target) {
			return true
		}
	}
	return false
}

// RankOf returns the rank of the first fund matching target, 0 when absent
func RankOf(ranked []contracts.RankedFund, target string) int {
	for _, rf := range ranked {
		if Matches(rf.FundName, target) {
			return rf.Rank
		}
	}
	return 0
}

// Top returns at most the first n entries
func Top(ranked []contracts.RankedFund, n int) []contracts.RankedFund {
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
