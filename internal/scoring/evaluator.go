package scoring

import (
	"gonum.org/v1/gonum/floats"

	"github.com/ishankgp/MF-return-tracker/internal/contracts"
	"github.com/ishankgp/MF-return-tracker/internal/formula"
	"github.com/ishankgp/MF-return-tracker/pkg/logger"
)

// Evaluator applies one formula to a batch of fund statistics
type Evaluator struct {
	logger *logger.Logger
}

// NewEvaluator creates a new evaluator
func NewEvaluator(log *logger.Logger) *Evaluator {
	return &Evaluator{
		logger: log,
	}
}

// Evaluate scores every fund with f and normalizes the batch.
// The input slice is not modified; output order matches input order.
func (e *Evaluator) Evaluate(f formula.Formula, stats []contracts.FundStats) []contracts.ScoredFund {
	inputs := BuildInputs(stats, f.Kind)

	raw := make([]float64, len(inputs))
	for i, in := range inputs {
		raw[i] = f.Score(in)
	}

	normalized := Normalize(raw)

	scored := make([]contracts.ScoredFund, len(stats))
	for i, fs := range stats {
		scored[i] = contracts.ScoredFund{
			FundStats:       fs,
			RawScore:        raw[i],
			NormalizedScore: normalized[i],
		}
	}

	e.logger.WithFields(map[string]interface{}{
		"formula": f.Name,
		"kind":    f.Kind.String(),
		"funds":   len(scored),
	}).Debug("Formula evaluated")

	return scored
}

// BuildInputs turns a stats snapshot into formula inputs. Batch maxima are
// always filled; normalized return and drawdown only for KindNormalized.
func BuildInputs(stats []contracts.FundStats, kind formula.Kind) []formula.Input {
	inputs := make([]formula.Input, len(stats))
	if len(stats) == 0 {
		return inputs
	}

	means := make([]float64, len(stats))
	totals := make([]float64, len(stats))
	drawdowns := make([]float64, len(stats))
	for i, fs := range stats {
		means[i] = fs.MeanReturn
		totals[i] = fs.TotalAbsoluteReturn
		drawdowns[i] = fs.WorstDrawdown
	}

	maxMean := floats.Max(means)
	maxTotal := floats.Max(totals)

	var normReturns, normDrawdowns []float64
	if kind == formula.KindNormalized {
		normReturns = NormalizeValues(means)
		normDrawdowns = NormalizeValues(drawdowns)
	}

	for i, fs := range stats {
		inputs[i] = formula.Input{
			MeanReturn:             fs.MeanReturn,
			Drawdown:               fs.WorstDrawdown,
			TotalAbsoluteReturn:    fs.TotalAbsoluteReturn,
			MaxMeanReturn:          maxMean,
			MaxTotalAbsoluteReturn: maxTotal,
		}
		if kind == formula.KindNormalized {
			inputs[i].NormalizedReturn = normReturns[i]
			inputs[i].NormalizedDrawdown = normDrawdowns[i]
		}
	}

	return inputs
}
