package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ishankgp/MF-return-tracker/internal/analysis"
	"github.com/ishankgp/MF-return-tracker/internal/contracts"
	"github.com/ishankgp/MF-return-tracker/internal/formula"
	"github.com/ishankgp/MF-return-tracker/internal/scheduler"
	"github.com/ishankgp/MF-return-tracker/internal/selection"
)

// BreakdownSize is how many funds the recommendation breakdown lists
const BreakdownSize = 5

const (
	targetMarker = "⭐"
	topMarker    = "🏆"
	ruleWidth    = 80
)

// Reporter renders analysis results as text tables
type Reporter struct {
	w io.Writer
}

// New creates a reporter writing to w
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format, args...)
}

func (r *Reporter) heading(title string) {
	rule := strings.Repeat("=", ruleWidth)
	r.printf("\n%s\n%s\n%s\n", rule, title, rule)
}

func (r *Reporter) newTable(columns []table.ColumnConfig, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.AppendHeader(header)
	t.SetColumnConfigs(columns)
	return t
}

// markers returns the target and top-k badges for a ranked fund
func markers(rf contracts.RankedFund, targets []string, topK int) string {
	var badges []string
	for _, target := range targets {
		if selection.Matches(rf.FundName, target) {
			badges = append(badges, targetMarker)
			break
		}
	}
	if rf.IsTopRanked(topK) {
		badges = append(badges, topMarker)
	}
	return strings.Join(badges, " ")
}

// Comparison prints every formula's ranking followed by the summary and the
// recommendation
func (r *Reporter) Comparison(cmp *analysis.Comparison) {
	r.printf("Loaded %d funds, %d with usable statistics for years %s\n",
		cmp.Funds, cmp.Usable, joinInts(cmp.Years))

	for i := range cmp.Rankings {
		r.Ranking(&cmp.Rankings[i], cmp.Targets, cmp.TopK)
	}

	r.Summary(cmp)
	r.Recommendation(cmp)
}

// Ranking prints one formula's ranking table and its outcome line
func (r *Reporter) Ranking(fr *analysis.FormulaRanking, targets []string, topK int) {
	r.heading("FORMULA: " + fr.Formula)

	number := text.NewNumberTransformer("%.2f")
	t := r.newTable([]table.ColumnConfig{
		{Name: "Rank", Align: text.AlignRight},
		{Name: "Score", Align: text.AlignRight},
		{Name: "Raw", Align: text.AlignRight, Transformer: number},
		{Name: "Return %", Align: text.AlignRight, Transformer: number},
		{Name: "Drawdown %", Align: text.AlignRight, Transformer: number},
	}, table.Row{"Rank", "Fund", "Score", "Raw", "Return %", "Drawdown %", ""})

	for _, rf := range fr.Funds {
		t.AppendRow(table.Row{
			rf.Rank, rf.FundName, rf.NormalizedScore, rf.RawScore,
			rf.MeanReturn, rf.WorstDrawdown, markers(rf, targets, topK),
		})
	}
	t.Render()

	r.printf("\n%s\n", OutcomeLine(fr.Outcome, targets, topK))
}

// OutcomeLine describes an outcome in one sentence
func OutcomeLine(o analysis.Outcome, targets []string, topK int) string {
	first, second := targets[0], targets[1]

	switch o {
	case analysis.OutcomeSuccess:
		return fmt.Sprintf("✅ SUCCESS: both %s and %s are in the top %d", first, second, topK)
	case analysis.OutcomePartialFirst:
		return fmt.Sprintf("⚠️  PARTIAL: %s is in the top %d, but %s is not", first, topK, second)
	case analysis.OutcomePartialSecond:
		return fmt.Sprintf("⚠️  PARTIAL: %s is in the top %d, but %s is not", second, topK, first)
	default:
		return fmt.Sprintf("❌ Neither %s nor %s is in the top %d", first, second, topK)
	}
}

// Summary lists the successful formulas, or per-target partial matches when
// none succeeded
func (r *Reporter) Summary(cmp *analysis.Comparison) {
	r.heading("SUMMARY")

	first, second := cmp.Targets[0], cmp.Targets[1]

	if len(cmp.Successful) > 0 {
		r.printf("\n✅ FORMULAS THAT PUT BOTH %s AND %s IN TOP %d:\n",
			strings.ToUpper(first), strings.ToUpper(second), cmp.TopK)
		for i, name := range cmp.Successful {
			r.printf("   %d. %s\n", i+1, name)
		}
		return
	}

	r.printf("\n❌ No formula puts both %s and %s in the top %d\n", first, second, cmp.TopK)

	for _, target := range cmp.Targets {
		hits := cmp.TargetHits[target]
		if len(hits) == 0 {
			continue
		}
		r.printf("\nFormulas with %s in top %d:\n", target, cmp.TopK)
		for _, name := range hits {
			r.printf("  - %s\n", name)
		}
	}
}

// Recommendation prints the recommended formula with a breakdown of its
// leading funds, or suggestions when nothing succeeded
func (r *Reporter) Recommendation(cmp *analysis.Comparison) {
	r.heading("RECOMMENDATION")

	rec, ok := cmp.Recommendation()
	if !ok {
		r.printf("\n⚠️  No single formula achieves both goals.\n")
		r.printf("Consider:\n")
		r.printf("1. Using a formula that heavily penalizes drawdowns (Options 4, 6, 7, 8)\n")
		r.printf("2. Checking whether the targets have lower drawdowns than the leaders\n")
		r.printf("3. Using a weighted or normalized combination\n")
		return
	}

	r.printf("\n🎯 RECOMMENDED: %s\n", rec.Formula)
	r.printf("\nDetailed breakdown:\n")

	number := text.NewNumberTransformer("%.2f")
	t := r.newTable([]table.ColumnConfig{
		{Name: "Rank", Align: text.AlignRight},
		{Name: "Score", Align: text.AlignRight},
		{Name: "Raw", Align: text.AlignRight, Transformer: text.NewNumberTransformer("%.4f")},
		{Name: "Return %", Align: text.AlignRight, Transformer: number},
		{Name: "Drawdown %", Align: text.AlignRight, Transformer: number},
		{Name: "Std Dev %", Align: text.AlignRight, Transformer: number},
	}, table.Row{"Rank", "Fund", "Score", "Raw", "Return %", "Drawdown %", "Std Dev %"})

	for _, rf := range rec.Top(BreakdownSize) {
		t.AppendRow(table.Row{
			rf.Rank, rf.FundName, rf.NormalizedScore, rf.RawScore,
			rf.MeanReturn, rf.WorstDrawdown, rf.StdDev,
		})
	}
	t.Render()
}

// Composite prints raw-score composite rankings and the target ranks
func (r *Reporter) Composite(cmp *analysis.Comparison) {
	r.printf("Loaded %d funds, %d with usable statistics for years %s\n",
		cmp.Funds, cmp.Usable, joinInts(cmp.Years))

	number := text.NewNumberTransformer("%.2f")
	for _, fr := range cmp.Rankings {
		r.heading(fr.Formula)

		t := r.newTable([]table.ColumnConfig{
			{Name: "Rank", Align: text.AlignRight},
			{Name: "Score", Align: text.AlignRight, Transformer: number},
			{Name: "Mean %", Align: text.AlignRight, Transformer: number},
			{Name: "Drawdown %", Align: text.AlignRight, Transformer: number},
			{Name: "Total Abs %", Align: text.AlignRight, Transformer: number},
		}, table.Row{"Rank", "Fund", "Score", "Mean %", "Drawdown %", "Total Abs %", ""})

		for _, rf := range fr.Funds {
			t.AppendRow(table.Row{
				rf.Rank, rf.FundName, rf.RawScore, rf.MeanReturn,
				rf.WorstDrawdown, rf.TotalAbsoluteReturn, markers(rf, cmp.Targets, cmp.TopK),
			})
		}
		t.Render()
	}

	r.printf("\n")
	for _, fr := range cmp.Rankings {
		r.printf("%s → %s\n", fr.Formula, targetRanks(fr, cmp.Targets))
	}
}

// JobStatus prints one line per run: counts, the latest outcome and the next tick
func (r *Reporter) JobStatus(st scheduler.JobStatus) {
	next := "after start"
	if !st.Next.IsZero() {
		next = st.Next.Format(time.RFC3339)
	}

	last := "no runs yet"
	if st.Last != nil {
		last = st.Last.Summary
		if !st.Last.OK() {
			last = "failed: " + st.Last.Error
		}
	}

	r.printf("🕒 %s: %d runs, %d failed, %.0f%% ok | %s | next %s\n",
		st.Job, st.Runs, st.Failures, st.SuccessRate*100, last, next)
}

// Formulas lists a registry
func (r *Reporter) Formulas(reg *formula.Registry) {
	t := r.newTable([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
	}, table.Row{"#", "Formula", "Inputs"})

	for i, f := range reg.All() {
		t.AppendRow(table.Row{i + 1, f.Name, f.Kind.String()})
	}
	t.Render()
}

func targetRanks(fr analysis.FormulaRanking, targets []string) string {
	parts := make([]string, len(targets))
	for i, target := range targets {
		rank := "N/A"
		if n := fr.TargetRanks[target]; n > 0 {
			rank = fmt.Sprintf("%d", n)
		}
		parts[i] = fmt.Sprintf("%s Rank: %s", target, rank)
	}
	return strings.Join(parts, ", ")
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ",")
}
