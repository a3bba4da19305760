package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ishankgp/MF-return-tracker/internal/analysis"
	"github.com/ishankgp/MF-return-tracker/internal/contracts"
	"github.com/ishankgp/MF-return-tracker/pkg/logger"
)

// FundSource supplies the fund snapshot for one request
type FundSource interface {
	FetchFunds(ctx context.Context) ([]contracts.FundRecord, error)
}

// RankingHandler serves formula rankings computed per request
type RankingHandler struct {
	source       FundSource
	harness      *analysis.Harness
	defaultYears contracts.YearSet
	logger       *logger.Logger
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(source FundSource, harness *analysis.Harness, defaultYears contracts.YearSet, log *logger.Logger) *RankingHandler {
	return &RankingHandler{
		source:       source,
		harness:      harness,
		defaultYears: defaultYears,
		logger:       log,
	}
}

// FormulaItem describes one registered formula
type FormulaItem struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// GetFormulas lists the comparison formulas
// GET /api/formulas
func (h *RankingHandler) GetFormulas(w http.ResponseWriter, r *http.Request) {
	formulas := h.harness.Formulas().All()

	items := make([]FormulaItem, len(formulas))
	for i, f := range formulas {
		items[i] = FormulaItem{Name: f.Name, Kind: f.Kind.String()}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"formulas": items,
		"count":    len(items),
	})
}

// GetRankings runs the full comparison
// GET /api/rankings?years=1,2,3
func (h *RankingHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	funds, years, ok := h.load(w, r)
	if !ok {
		return
	}

	cmp, err := h.harness.Compare(funds, years)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, cmp)
}

// GetFormulaRanking ranks funds under a single formula
// GET /api/rankings/{formula}?years=1,2,3
func (h *RankingHandler) GetFormulaRanking(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["formula"]
	if _, ok := h.harness.Formulas().Get(name); !ok {
		respondError(w, http.StatusNotFound, "Unknown formula: "+name)
		return
	}

	funds, years, ok := h.load(w, r)
	if !ok {
		return
	}

	ranking, err := h.harness.RankFormula(name, funds, years)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, ranking)
}

// GetComposite runs the composite A/B analysis
// GET /api/composite?years=1,2,3
func (h *RankingHandler) GetComposite(w http.ResponseWriter, r *http.Request) {
	funds, years, ok := h.load(w, r)
	if !ok {
		return
	}

	cmp, err := h.harness.Composite(funds, years)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, cmp)
}

// load parses the years parameter and fetches the snapshot, writing the
// error response itself on failure
func (h *RankingHandler) load(w http.ResponseWriter, r *http.Request) ([]contracts.FundRecord, contracts.YearSet, bool) {
	years := h.defaultYears
	if raw := r.URL.Query().Get("years"); raw != "" {
		parsed, err := contracts.ParseYearSet(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid years: "+err.Error())
			return nil, nil, false
		}
		years = parsed
	}

	funds, err := h.source.FetchFunds(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return nil, nil, false
	}

	return funds, years, true
}

func (h *RankingHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	h.logger.WithError(err).WithFields(map[string]interface{}{
		"path":   r.URL.Path,
		"status": status,
	}).Warn("Ranking request failed")

	respondError(w, status, err.Error())
}
