package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishankgp/MF-return-tracker/internal/contracts"
	"github.com/ishankgp/MF-return-tracker/internal/formula"
	"github.com/ishankgp/MF-return-tracker/pkg/logger"
)

// steady builds a fund returning r every year with a 5y drawdown of dd
func steady(name string, r, dd float64) contracts.FundRecord {
	f := contracts.Float
	return contracts.FundRecord{
		Name: name,
		YearBreakdown: map[string]contracts.YearlyBreakdown{
			"5year": {
				Year1: f(r), Year2: f(r), Year3: f(r), Year4: f(r), Year5: f(r),
				MaxDrawdown5Y: f(dd),
			},
		},
	}
}

func universe() []contracts.FundRecord {
	return []contracts.FundRecord{
		steady("Bandhan Small Cap Fund", 30, 15),
		steady("Motilal Oswal Midcap Fund", 25, 12),
		steady("Quant Small Cap Fund", 35, 40),
		steady("HDFC Balanced Advantage", 10, 8),
		{Name: "Newly Launched Fund"},
	}
}

func newHarness(t *testing.T, opts Options) *Harness {
	t.Helper()
	h, err := NewHarness(opts, logger.NewNop())
	require.NoError(t, err)
	return h
}

func TestNewHarness_Validation(t *testing.T) {
	_, err := NewHarness(Options{Targets: []string{"Only"}}, logger.NewNop())
	assert.Error(t, err)

	_, err = NewHarness(Options{Targets: []string{"A", "B", "C"}}, logger.NewNop())
	assert.Error(t, err)

	_, err = NewHarness(Options{TopK: -1}, logger.NewNop())
	assert.Error(t, err)

	h := newHarness(t, Options{})
	assert.Equal(t, []string{"Bandhan", "Motilal"}, h.Targets())
	assert.Equal(t, 3, h.TopK())
	assert.Equal(t, 24, h.Formulas().Len())
}

func TestCompare_Outcomes(t *testing.T) {
	extremes := formula.Formula{
		Name: "Distance From 27.5",
		Kind: formula.KindDirect,
		Score: func(in formula.Input) float64 {
			return math.Abs(in.MeanReturn - 27.5)
		},
	}

	reg := formula.MustRegistry(
		formula.DrawdownPenalized("Mean Only", 1, 0),
		formula.DrawdownPenalized("Drawdown Only", 0, 1),
		formula.PowerRatio("Calmar", 1, 1),
		extremes,
	)

	h := newHarness(t, Options{Comparison: reg, TopK: 2})

	cmp, err := h.Compare(universe(), contracts.AllYears())
	require.NoError(t, err)

	assert.Equal(t, 5, cmp.Funds)
	assert.Equal(t, 4, cmp.Usable)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, cmp.Years)
	assert.Equal(t, "normalized", cmp.Basis)
	require.Len(t, cmp.Rankings, 4)

	outcomes := map[string]Outcome{}
	for _, r := range cmp.Rankings {
		outcomes[r.Formula] = r.Outcome
		assert.Len(t, r.Funds, 4)
	}
	assert.Equal(t, OutcomePartialFirst, outcomes["Mean Only"])
	assert.Equal(t, OutcomePartialSecond, outcomes["Drawdown Only"])
	assert.Equal(t, OutcomeSuccess, outcomes["Calmar"])
	assert.Equal(t, OutcomeNone, outcomes["Distance From 27.5"])

	assert.Equal(t, []string{"Calmar"}, cmp.Successful)
	assert.Equal(t, "Calmar", cmp.Recommended)
	assert.Equal(t, []string{"Mean Only", "Calmar"}, cmp.TargetHits["Bandhan"])
	assert.Equal(t, []string{"Drawdown Only", "Calmar"}, cmp.TargetHits["Motilal"])

	// tied normalized scores keep input order
	dist, ok := cmp.Ranking("Distance From 27.5")
	require.True(t, ok)
	assert.Equal(t, "HDFC Balanced Advantage", dist.Funds[0].FundName)
	assert.Equal(t, 100, dist.Funds[0].NormalizedScore)
	assert.Equal(t, 3, dist.TargetRanks["Bandhan"])
	assert.Equal(t, 4, dist.TargetRanks["Motilal"])

	rec, ok := cmp.Recommendation()
	require.True(t, ok)
	assert.Equal(t, "Motilal Oswal Midcap Fund", rec.Funds[0].FundName)
	assert.Equal(t, 100, rec.Funds[0].NormalizedScore)
	assert.Len(t, rec.Top(5), 4)
}

func TestCompare_DefaultRegistry(t *testing.T) {
	h := newHarness(t, Options{})

	cmp, err := h.Compare(universe(), contracts.AllYears())
	require.NoError(t, err)

	require.Len(t, cmp.Rankings, 24)
	assert.Equal(t, "Current (Return^1.5 ÷ Drawdown)", cmp.Recommended)
	assert.Equal(t, cmp.Successful[0], cmp.Recommended)

	for _, r := range cmp.Rankings {
		for i, fund := range r.Funds {
			assert.Equal(t, i+1, fund.Rank, r.Formula)
			assert.GreaterOrEqual(t, fund.NormalizedScore, 0)
			assert.LessOrEqual(t, fund.NormalizedScore, 100)
			assert.False(t, math.IsNaN(fund.RawScore), r.Formula)
		}
	}
}

func TestCompare_NoSuccess(t *testing.T) {
	reg := formula.MustRegistry(formula.DrawdownPenalized("Mean Only", 1, 0))
	h := newHarness(t, Options{Comparison: reg, TopK: 1})

	cmp, err := h.Compare(universe(), contracts.AllYears())
	require.NoError(t, err)

	assert.Empty(t, cmp.Successful)
	assert.Empty(t, cmp.Recommended)
	assert.Empty(t, cmp.TargetHits["Bandhan"])
	assert.Empty(t, cmp.TargetHits["Motilal"])

	_, ok := cmp.Recommendation()
	assert.False(t, ok)
}

func TestCompare_EmptyResult(t *testing.T) {
	h := newHarness(t, Options{})

	_, err := h.Compare([]contracts.FundRecord{{Name: "No Data"}}, contracts.AllYears())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyResult))

	_, err = h.Compare(nil, contracts.AllYears())
	assert.True(t, errors.Is(err, ErrEmptyResult))
}

func TestComposite(t *testing.T) {
	h := newHarness(t, Options{})

	cmp, err := h.Composite(universe(), contracts.AllYears())
	require.NoError(t, err)
	require.Len(t, cmp.Rankings, 2)
	assert.Equal(t, "raw", cmp.Basis)

	a := cmp.Rankings[0]
	assert.Equal(t, "Composite A: 70% Return - 30% Drawdown", a.Formula)
	assert.InDelta(t, 16.5, a.Funds[0].RawScore, 1e-9)
	assert.Equal(t, 1, a.TargetRanks["Bandhan"])
	assert.Equal(t, 2, a.TargetRanks["Motilal"])

	b := cmp.Rankings[1]
	assert.Equal(t, "Quant Small Cap Fund", b.Funds[0].FundName)
	assert.InDelta(t, 24.5, b.Funds[0].RawScore, 1e-9)
	assert.Equal(t, 2, b.TargetRanks["Bandhan"])
	assert.Equal(t, 3, b.TargetRanks["Motilal"])
}

func TestRankFormula(t *testing.T) {
	h := newHarness(t, Options{})

	r, err := h.RankFormula("Option 3: Return Minus Drawdown", universe(), contracts.AllYears())
	require.NoError(t, err)
	assert.Equal(t, "Bandhan Small Cap Fund", r.Funds[0].FundName)
	assert.Equal(t, OutcomeSuccess, r.Outcome)

	_, err = h.RankFormula("Option 99", universe(), contracts.AllYears())
	assert.True(t, errors.Is(err, ErrUnknownFormula))
}

func TestOutcome_Empty(t *testing.T) {
	h := newHarness(t, Options{})
	assert.Equal(t, OutcomeNone, h.Outcome(nil))
}
