package formula

import (
	"fmt"
)

// Registry is an immutable, ordered set of formulas with unique names.
// Build it once and pass it to the harness; nothing mutates it afterwards.
type Registry struct {
	formulas []Formula
	index    map[string]int
}

// NewRegistry validates and freezes the given formulas in order
func NewRegistry(formulas ...Formula) (*Registry, error) {
	r := &Registry{
		formulas: make([]Formula, 0, len(formulas)),
		index:    make(map[string]int, len(formulas)),
	}

	for _, f := range formulas {
		if f.Name == "" {
			return nil, fmt.Errorf("formula name must not be empty")
		}
		if f.Score == nil {
			return nil, fmt.Errorf("formula %q has no score function", f.Name)
		}
		if _, exists := r.index[f.Name]; exists {
			return nil, fmt.Errorf("formula %q registered twice", f.Name)
		}
		r.index[f.Name] = len(r.formulas)
		r.formulas = append(r.formulas, f)
	}

	return r, nil
}

// MustRegistry is NewRegistry that panics on invalid input.
// Use it only for the static tables below.
func MustRegistry(formulas ...Formula) *Registry {
	r, err := NewRegistry(formulas...)
	if err != nil {
		panic(err)
	}
	return r
}

// All returns a copy of the formulas in registration order
func (r *Registry) All() []Formula {
	out := make([]Formula, len(r.formulas))
	copy(out, r.formulas)
	return out
}

// Get looks up a formula by name
func (r *Registry) Get(name string) (Formula, bool) {
	i, ok := r.index[name]
	if !ok {
		return Formula{}, false
	}
	return r.formulas[i], true
}

// Names returns formula names in registration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.formulas))
	for i, f := range r.formulas {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of formulas
func (r *Registry) Len() int {
	return len(r.formulas)
}

// weight pairs shared by the natural-unit and normalized weighted families
var weightPairs = [][2]float64{
	{0.70, 0.30},
	{0.60, 0.40},
	{0.80, 0.20},
	{0.75, 0.25},
	{0.65, 0.35},
}

// ComparisonFormulas returns the candidate formulas compared by the harness
func ComparisonFormulas() []Formula {
	formulas := []Formula{
		PowerRatio("Current (Return^1.5 ÷ Drawdown)", 1.5, 1),
		PowerRatio("Option 1: Calmar Ratio (Linear)", 1, 1),
		PowerRatio("Option 2: Square Root Drawdown", 1, 0.5),
		ReturnMinusDrawdown("Option 3: Return Minus Drawdown"),
		PowerRatio("Option 4: Squared Drawdown Penalty", 1, 2),
		MultiplicativePenalty("Option 5: Multiplicative Penalty"),
		PowerRatio("Option 6: Hybrid (Return^1.2 ÷ Drawdown^1.5)", 1.2, 1.5),
		PowerRatio("Option 7: Return ÷ Drawdown^1.3", 1, 1.3),
		PowerRatio("Option 8: Return^1.1 ÷ Drawdown^1.2", 1.1, 1.2),
		PowerRatio("Option 9: Return ÷ Drawdown^1.05", 1, 1.05),
		PowerRatio("Option 10: Return^1.15 ÷ Drawdown^1.25", 1.15, 1.25),
		PowerRatio("Option 11: Return^1.25 ÷ Drawdown^1.35", 1.25, 1.35),
		PowerRatio("Option 12: Return^1.35 ÷ Drawdown^1.45", 1.35, 1.45),
		PowerRatio("Option 13: Return^1.05 ÷ Drawdown^1.15", 1.05, 1.15),
	}

	for i, w := range weightPairs {
		name := fmt.Sprintf("Weighted %d: %s", i+1, weightLabel(w[0], w[1], "Drawdown"))
		formulas = append(formulas, DrawdownPenalized(name, w[0], w[1]))
	}

	for i, w := range weightPairs {
		name := fmt.Sprintf("Normalized %d: %s", i+1, weightLabel(w[0], w[1], "Drawdown"))
		formulas = append(formulas, NormalizedWeighted(name, w[0], w[1]))
	}

	return formulas
}

// CompositeFormulas returns composite A (drawdown penalized) and composite B
// (gap to the best compounded return penalized)
func CompositeFormulas() []Formula {
	return []Formula{
		DrawdownPenalized("Composite A: "+weightLabel(0.7, 0.3, "Drawdown"), 0.7, 0.3),
		GapToBestPenalized("Composite B: "+weightLabel(0.7, 0.3, "Gap to Max Total Absolute"), 0.7, 0.3),
	}
}

// ComparisonRegistry builds the registry used by the compare command
func ComparisonRegistry() *Registry {
	return MustRegistry(ComparisonFormulas()...)
}

// CompositeRegistry builds the registry used by the composite command
func CompositeRegistry() *Registry {
	return MustRegistry(CompositeFormulas()...)
}
