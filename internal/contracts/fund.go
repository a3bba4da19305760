package contracts

// FundList is the provider payload: { "funds": [...] }.
// A payload without the funds key decodes to an empty list.
type FundList struct {
	Funds []FundRecord `json:"funds"`
}

// FundRecord is one fund as returned by the data provider
type FundRecord struct {
	Name          string                     `json:"name"`
	Code          string                     `json:"code,omitempty"`
	CurrentNAV    float64                    `json:"current_nav,omitempty"`
	CurrentDate   string                     `json:"current_date,omitempty"`
	Returns       map[string]float64         `json:"returns,omitempty"`
	YearBreakdown map[string]YearlyBreakdown `json:"year_breakdown,omitempty"`
}

// Breakdown returns the yearly breakdown for a lookback window key such as "5year"
func (f *FundRecord) Breakdown(window string) (YearlyBreakdown, bool) {
	if f.YearBreakdown == nil {
		return YearlyBreakdown{}, false
	}
	b, ok := f.YearBreakdown[window]
	return b, ok
}

// YearlyBreakdown holds per-year returns (percent) and drawdown figures for one
// lookback window. Every figure is optional; nil means absent, not zero.
type YearlyBreakdown struct {
	Year1 *float64 `json:"year1,omitempty"`
	Year2 *float64 `json:"year2,omitempty"`
	Year3 *float64 `json:"year3,omitempty"`
	Year4 *float64 `json:"year4,omitempty"`
	Year5 *float64 `json:"year5,omitempty"`

	// Aggregate drawdowns over the trailing 2, 3 and 5 years
	MaxDrawdown2Y *float64 `json:"max_dd_2y,omitempty"`
	MaxDrawdown3Y *float64 `json:"max_dd_3y,omitempty"`
	MaxDrawdown5Y *float64 `json:"max_dd_5y,omitempty"`

	// Per-year drawdowns
	Year1MaxDrawdown *float64 `json:"year1_max_dd,omitempty"`
	Year2MaxDrawdown *float64 `json:"year2_max_dd,omitempty"`
	Year3MaxDrawdown *float64 `json:"year3_max_dd,omitempty"`
	Year4MaxDrawdown *float64 `json:"year4_max_dd,omitempty"`
	Year5MaxDrawdown *float64 `json:"year5_max_dd,omitempty"`

	TotalAbsolute *float64 `json:"total_absolute,omitempty"`
}

// Return returns the percentage return for year 1..5, nil when absent
func (b *YearlyBreakdown) Return(year int) *float64 {
	switch year {
	case 1:
		return b.Year1
	case 2:
		return b.Year2
	case 3:
		return b.Year3
	case 4:
		return b.Year4
	case 5:
		return b.Year5
	}
	return nil
}

// YearMaxDrawdown returns the drawdown recorded for year 1..5, nil when absent
func (b *YearlyBreakdown) YearMaxDrawdown(year int) *float64 {
	switch year {
	case 1:
		return b.Year1MaxDrawdown
	case 2:
		return b.Year2MaxDrawdown
	case 3:
		return b.Year3MaxDrawdown
	case 4:
		return b.Year4MaxDrawdown
	case 5:
		return b.Year5MaxDrawdown
	}
	return nil
}

// Float returns a pointer to v. Handy for building breakdowns in code and tests.
func Float(v float64) *float64 {
	return &v
}
