package formula

import (
	"fmt"
	"math"
)

// Kind tells the evaluator which inputs a formula reads
type Kind int

const (
	// KindDirect formulas read natural-unit percentages
	KindDirect Kind = iota

	// KindNormalized formulas read batch min-max normalized return and
	// drawdown on a 0-100 scale
	KindNormalized
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNormalized:
		return "normalized"
	default:
		return "direct"
	}
}

// Input is everything a formula may read for one fund.
// Batch-wide fields are filled by the evaluator before scoring.
type Input struct {
	MeanReturn          float64
	Drawdown            float64
	TotalAbsoluteReturn float64

	// Min-max normalized across the batch, 0-100 (KindNormalized only)
	NormalizedReturn   float64
	NormalizedDrawdown float64

	// Cross-fund maxima of the batch
	MaxMeanReturn          float64
	MaxTotalAbsoluteReturn float64
}

// Formula is a named, pure scoring function
type Formula struct {
	Name  string
	Kind  Kind
	Score func(Input) float64
}

// signedPow raises |x| to p keeping the sign of x, so fractional exponents
// stay defined for negative mean returns.
func signedPow(x, p float64) float64 {
	if x < 0 {
		return -math.Pow(-x, p)
	}
	return math.Pow(x, p)
}

// PowerRatio scores meanReturn^p / drawdown^q. Drawdown is always positive
// upstream.
func PowerRatio(name string, p, q float64) Formula {
	return Formula{
		Name: name,
		Kind: KindDirect,
		Score: func(in Input) float64 {
			return signedPow(in.MeanReturn, p) / math.Pow(in.Drawdown, q)
		},
	}
}

// ReturnMinusDrawdown scores meanReturn - drawdown
func ReturnMinusDrawdown(name string) Formula {
	return Formula{
		Name: name,
		Kind: KindDirect,
		Score: func(in Input) float64 {
			return in.MeanReturn - in.Drawdown
		},
	}
}

// MultiplicativePenalty scores meanReturn * (1 - drawdown/100)
func MultiplicativePenalty(name string) Formula {
	return Formula{
		Name: name,
		Kind: KindDirect,
		Score: func(in Input) float64 {
			return in.MeanReturn * (1 - in.Drawdown/100)
		},
	}
}

// DrawdownPenalized scores wr*meanReturn - wd*drawdown on natural units
func DrawdownPenalized(name string, wr, wd float64) Formula {
	return Formula{
		Name: name,
		Kind: KindDirect,
		Score: func(in Input) float64 {
			return wr*in.MeanReturn - wd*in.Drawdown
		},
	}
}

// GapToBestPenalized scores wr*meanReturn - wg*(best total absolute - own total absolute)
func GapToBestPenalized(name string, wr, wg float64) Formula {
	return Formula{
		Name: name,
		Kind: KindDirect,
		Score: func(in Input) float64 {
			gap := in.MaxTotalAbsoluteReturn - in.TotalAbsoluteReturn
			return wr*in.MeanReturn - wg*gap
		},
	}
}

// NormalizedWeighted scores wr*normReturn - wd*normDrawdown
func NormalizedWeighted(name string, wr, wd float64) Formula {
	return Formula{
		Name: name,
		Kind: KindNormalized,
		Score: func(in Input) float64 {
			return wr*in.NormalizedReturn - wd*in.NormalizedDrawdown
		},
	}
}

// weightLabel renders 0.7/0.3 as "70% Return - 30% Drawdown"
func weightLabel(wr, wd float64, penalty string) string {
	return fmt.Sprintf("%.0f%% Return - %.0f%% %s", wr*100, wd*100, penalty)
}
