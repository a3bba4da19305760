package contracts

// FundStats is the per-fund statistics tuple derived from selected years.
// Computed fresh per run, never persisted.
type FundStats struct {
	FundName            string  `json:"fund_name"`
	MeanReturn          float64 `json:"mean_return"`           // percent
	TotalAbsoluteReturn float64 `json:"total_absolute_return"` // percent, compounded
	WorstDrawdown       float64 `json:"worst_drawdown"`        // percent, always > 0
	StdDev              float64 `json:"std_dev"`               // population std-dev of selected returns
	YearsUsed           int     `json:"years_used"`
}

// ScoredFund is FundStats plus one formula's scores
type ScoredFund struct {
	FundStats
	RawScore        float64 `json:"raw_score"`
	NormalizedScore int     `json:"normalized_score"` // 0-100, comparable within one formula run
}

// RankedFund is a ScoredFund with its 1-based position
type RankedFund struct {
	ScoredFund
	Rank int `json:"rank"`
}

// IsTopRanked checks if the fund is in top N ranks
func (r *RankedFund) IsTopRanked(n int) bool {
	return r.Rank <= n && r.Rank > 0
}
