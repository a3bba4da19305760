package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ishankgp/MF-return-tracker/internal/contracts"
	"github.com/ishankgp/MF-return-tracker/pkg/logger"
)

// DefaultWindow is the year_breakdown key the extractor reads
const DefaultWindow = "5year"

// DefaultDrawdown replaces a missing, zero or negative drawdown.
// It stands for an unknown-risk penalty.
const DefaultDrawdown = 30.0

// DrawdownPolicy selects how the applicable drawdown is resolved
type DrawdownPolicy int

const (
	// DrawdownWindowDispatch matches the selected years against the standard
	// trailing windows and falls back to the worst per-year drawdown.
	DrawdownWindowDispatch DrawdownPolicy = iota

	// DrawdownFullWindow always uses the 5-year aggregate drawdown.
	DrawdownFullWindow
)

// String returns the policy name
func (p DrawdownPolicy) String() string {
	switch p {
	case DrawdownFullWindow:
		return "full-window"
	default:
		return "window-dispatch"
	}
}

// Extractor turns fund records into FundStats for a set of selected years
type Extractor struct {
	window string
	policy DrawdownPolicy
	logger *logger.Logger
}

// NewExtractor creates an extractor. An empty window means DefaultWindow.
func NewExtractor(window string, policy DrawdownPolicy, log *logger.Logger) *Extractor {
	if window == "" {
		window = DefaultWindow
	}
	return &Extractor{
		window: window,
		policy: policy,
		logger: log,
	}
}

// Extract computes statistics for one fund. ok is false when the fund has no
// breakdown for the window or none of the selected years carries a return.
func (e *Extractor) Extract(fund contracts.FundRecord, years contracts.YearSet) (contracts.FundStats, bool) {
	breakdown, ok := fund.Breakdown(e.window)
	if !ok {
		return contracts.FundStats{}, false
	}

	returns := SelectedReturns(&breakdown, years)
	if len(returns) == 0 {
		return contracts.FundStats{}, false
	}

	mean, stdDev := PopMeanStdDev(returns)

	return contracts.FundStats{
		FundName:            fund.Name,
		MeanReturn:          mean,
		TotalAbsoluteReturn: CompoundedReturn(returns),
		WorstDrawdown:       ResolveDrawdown(&breakdown, years, e.policy),
		StdDev:              stdDev,
		YearsUsed:           len(returns),
	}, true
}

// ExtractAll extracts every usable fund, keeping input order
func (e *Extractor) ExtractAll(funds []contracts.FundRecord, years contracts.YearSet) []contracts.FundStats {
	result := make([]contracts.FundStats, 0, len(funds))

	for _, fund := range funds {
		fs, ok := e.Extract(fund, years)
		if !ok {
			e.logger.WithFields(map[string]interface{}{
				"fund":   fund.Name,
				"window": e.window,
				"years":  years.String(),
			}).Debug("Skipping fund without usable returns")
			continue
		}
		result = append(result, fs)
	}

	e.logger.WithFields(map[string]interface{}{
		"funds":  len(funds),
		"usable": len(result),
		"policy": e.policy.String(),
	}).Debug("Fund statistics extracted")

	return result
}

// SelectedReturns collects the present returns of the selected years in
// ascending year order. Absent years are skipped.
func SelectedReturns(b *contracts.YearlyBreakdown, years contracts.YearSet) []float64 {
	var returns []float64
	for _, year := range years.Sorted() {
		if r := b.Return(year); r != nil {
			returns = append(returns, *r)
		}
	}
	return returns
}

// CompoundedReturn chains period returns: (prod(1 + r/100) - 1) * 100
func CompoundedReturn(returns []float64) float64 {
	growth := make([]float64, len(returns))
	for i, r := range returns {
		growth[i] = 1 + r/100
	}
	return (floats.Prod(growth) - 1) * 100
}

// PopMeanStdDev returns the arithmetic mean and population standard deviation
// (divide by n). Both are zero for empty input.
func PopMeanStdDev(values []float64) (mean, stdDev float64) {
	if len(values) == 0 {
		return 0, 0
	}

	mean, variance := stat.PopMeanVariance(values, nil)
	if variance < 0 {
		// rounding residue from the compensated two-pass algorithm
		variance = 0
	}
	return mean, math.Sqrt(variance)
}

// ResolveDrawdown picks the drawdown that applies to the selected years and
// substitutes DefaultDrawdown when it is missing or not positive.
//
// Window dispatch tests exact set equality in order: {4,5} uses the 2-year
// aggregate, {3,4,5} the 3-year aggregate, {1..5} the 5-year aggregate. Any
// other selection takes the largest positive per-year drawdown among the
// selected years.
func ResolveDrawdown(b *contracts.YearlyBreakdown, years contracts.YearSet, policy DrawdownPolicy) float64 {
	var dd *float64

	switch {
	case policy == DrawdownFullWindow:
		dd = b.MaxDrawdown5Y
	case years.Equal(4, 5):
		dd = b.MaxDrawdown2Y
	case years.Equal(3, 4, 5):
		dd = b.MaxDrawdown3Y
	case years.Equal(1, 2, 3, 4, 5):
		dd = b.MaxDrawdown5Y
	default:
		dd = worstYearDrawdown(b, years)
	}

	if dd == nil || *dd <= 0 || math.IsNaN(*dd) {
		return DefaultDrawdown
	}
	return *dd
}

// worstYearDrawdown returns the largest positive per-year drawdown, nil if none
func worstYearDrawdown(b *contracts.YearlyBreakdown, years contracts.YearSet) *float64 {
	var worst *float64
	for _, year := range years.Sorted() {
		dd := b.YearMaxDrawdown(year)
		if dd == nil || *dd <= 0 {
			continue
		}
		if worst == nil || *dd > *worst {
			v := *dd
			worst = &v
		}
	}
	return worst
}
