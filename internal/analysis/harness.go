package analysis

import (
	"errors"
	"fmt"

	"github.com/ishankgp/MF-return-tracker/internal/contracts"
	"github.com/ishankgp/MF-return-tracker/internal/formula"
	"github.com/ishankgp/MF-return-tracker/internal/scoring"
	"github.com/ishankgp/MF-return-tracker/internal/selection"
	"github.com/ishankgp/MF-return-tracker/internal/stats"
	"github.com/ishankgp/MF-return-tracker/pkg/logger"
)

var (
	// ErrEmptyResult is returned when no fund has usable statistics
	ErrEmptyResult = errors.New("no fund has usable statistics")

	// ErrUnknownFormula is returned when a formula name is not registered
	ErrUnknownFormula = errors.New("unknown formula")
)

// Outcome classifies a ranking against the two target funds
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomePartialFirst  Outcome = "partial_first"
	OutcomePartialSecond Outcome = "partial_second"
	OutcomeNone          Outcome = "none"
)

// DefaultTopK is the cut-off a target must reach
const DefaultTopK = 3

// DefaultTargets are the funds the comparison looks for
var DefaultTargets = []string{"Bandhan", "Motilal"}

// Options configure a Harness. Zero values fall back to defaults.
type Options struct {
	Extractor  *stats.Extractor
	Comparison *formula.Registry
	Composite  *formula.Registry
	Targets    []string
	TopK       int
}

// Harness runs formula registries over one fund snapshot and judges each
// ranking against the targets
type Harness struct {
	extractor  *stats.Extractor
	evaluator  *scoring.Evaluator
	ranker     *selection.Ranker
	comparison *formula.Registry
	composite  *formula.Registry
	targets    []string
	topK       int
	logger     *logger.Logger
}

// NewHarness creates a harness. Exactly two targets are required.
func NewHarness(opts Options, log *logger.Logger) (*Harness, error) {
	if opts.Extractor == nil {
		opts.Extractor = stats.NewExtractor(stats.DefaultWindow, stats.DrawdownWindowDispatch, log)
	}
	if opts.Comparison == nil {
		opts.Comparison = formula.ComparisonRegistry()
	}
	if opts.Composite == nil {
		opts.Composite = formula.CompositeRegistry()
	}
	if len(opts.Targets) == 0 {
		opts.Targets = DefaultTargets
	}
	if opts.TopK == 0 {
		opts.TopK = DefaultTopK
	}

	if len(opts.Targets) != 2 {
		return nil, fmt.Errorf("exactly two target funds required, got %d", len(opts.Targets))
	}
	if opts.TopK < 1 {
		return nil, fmt.Errorf("top-k must be at least 1, got %d", opts.TopK)
	}

	targets := make([]string, len(opts.Targets))
	copy(targets, opts.Targets)

	return &Harness{
		extractor:  opts.Extractor,
		evaluator:  scoring.NewEvaluator(log),
		ranker:     selection.NewRanker(log),
		comparison: opts.Comparison,
		composite:  opts.Composite,
		targets:    targets,
		topK:       opts.TopK,
		logger:     log,
	}, nil
}

// Targets returns the target fund substrings
func (h *Harness) Targets() []string {
	out := make([]string, len(h.targets))
	copy(out, h.targets)
	return out
}

// TopK returns the rank cut-off
func (h *Harness) TopK() int {
	return h.topK
}

// Formulas returns the comparison registry
func (h *Harness) Formulas() *formula.Registry {
	return h.comparison
}

// Compare runs every comparison formula, ranked by normalized score
func (h *Harness) Compare(funds []contracts.FundRecord, years contracts.YearSet) (*Comparison, error) {
	return h.run(h.comparison, selection.BasisNormalized, funds, years)
}

// Composite runs composite A and B, ranked by raw score
func (h *Harness) Composite(funds []contracts.FundRecord, years contracts.YearSet) (*Comparison, error) {
	return h.run(h.composite, selection.BasisRaw, funds, years)
}

// RankFormula runs a single named comparison formula
func (h *Harness) RankFormula(name string, funds []contracts.FundRecord, years contracts.YearSet) (*FormulaRanking, error) {
	f, ok := h.comparison.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormula, name)
	}

	reg, err := formula.NewRegistry(f)
	if err != nil {
		return nil, err
	}

	cmp, err := h.run(reg, selection.BasisNormalized, funds, years)
	if err != nil {
		return nil, err
	}
	return &cmp.Rankings[0], nil
}

// Outcome judges whether the targets made the top K of ranked
func (h *Harness) Outcome(ranked []contracts.RankedFund) Outcome {
	first := selection.InTopK(ranked, h.targets[0], h.topK)
	second := selection.InTopK(ranked, h.targets[1], h.topK)

	switch {
	case first && second:
		return OutcomeSuccess
	case first:
		return OutcomePartialFirst
	case second:
		return OutcomePartialSecond
	default:
		return OutcomeNone
	}
}

func (h *Harness) run(reg *formula.Registry, basis selection.Basis, funds []contracts.FundRecord, years contracts.YearSet) (*Comparison, error) {
	snapshot := h.extractor.ExtractAll(funds, years)
	if len(snapshot) == 0 {
		return nil, fmt.Errorf("%w: %d funds fetched, years %s", ErrEmptyResult, len(funds), years.String())
	}

	cmp := &Comparison{
		Years:      years.Sorted(),
		Targets:    h.Targets(),
		TopK:       h.topK,
		Basis:      basis.String(),
		Funds:      len(funds),
		Usable:     len(snapshot),
		Rankings:   make([]FormulaRanking, 0, reg.Len()),
		Successful: []string{},
		TargetHits: make(map[string][]string, len(h.targets)),
	}
	for _, target := range h.targets {
		cmp.TargetHits[target] = []string{}
	}

	for _, f := range reg.All() {
		// every formula gets its own copy of the snapshot
		input := make([]contracts.FundStats, len(snapshot))
		copy(input, snapshot)

		ranked := h.ranker.Rank(h.evaluator.Evaluate(f, input), basis)

		fr := FormulaRanking{
			Formula:     f.Name,
			Kind:        f.Kind.String(),
			Outcome:     h.Outcome(ranked),
			TargetRanks: make(map[string]int, len(h.targets)),
			Funds:       ranked,
		}

		for _, target := range h.targets {
			fr.TargetRanks[target] = selection.RankOf(ranked, target)
			if selection.InTopK(ranked, target, h.topK) {
				cmp.TargetHits[target] = append(cmp.TargetHits[target], f.Name)
			}
		}

		if fr.Outcome == OutcomeSuccess {
			cmp.Successful = append(cmp.Successful, f.Name)
		}

		cmp.Rankings = append(cmp.Rankings, fr)
	}

	if len(cmp.Successful) > 0 {
		cmp.Recommended = cmp.Successful[0]
	}

	h.logger.WithFields(map[string]interface{}{
		"formulas":    len(cmp.Rankings),
		"successful":  len(cmp.Successful),
		"usable":      cmp.Usable,
		"years":       years.String(),
		"basis":       cmp.Basis,
		"recommended": cmp.Recommended,
	}).Info("Formula comparison completed")

	return cmp, nil
}
