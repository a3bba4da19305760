package jobs

import (
	"context"
	"fmt"
	"sync"

	"github.com/ishankgp/MF-return-tracker/internal/analysis"
	"github.com/ishankgp/MF-return-tracker/internal/contracts"
	"github.com/ishankgp/MF-return-tracker/pkg/logger"
)

// Refresher fetches a fresh fund snapshot, bypassing any cache
type Refresher interface {
	Refresh(ctx context.Context) ([]contracts.FundRecord, error)
}

// RefreshJob periodically re-fetches fund data and re-runs the comparison
type RefreshJob struct {
	source   Refresher
	harness  *analysis.Harness
	years    contracts.YearSet
	schedule string
	onResult func(*analysis.Comparison)
	logger   *logger.Logger

	mu     sync.RWMutex
	latest *analysis.Comparison
}

// NewRefreshJob creates a new refresh job. onResult may be nil.
func NewRefreshJob(
	source Refresher,
	harness *analysis.Harness,
	years contracts.YearSet,
	schedule string,
	onResult func(*analysis.Comparison),
	log *logger.Logger,
) *RefreshJob {
	return &RefreshJob{
		source:   source,
		harness:  harness,
		years:    years,
		schedule: schedule,
		onResult: onResult,
		logger:   log,
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "fund_refresh"
}

// Schedule returns the cron schedule
func (j *RefreshJob) Schedule() string {
	return j.schedule
}

// Run fetches and compares once
func (j *RefreshJob) Run(ctx context.Context) error {
	funds, err := j.source.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh funds: %w", err)
	}

	cmp, err := j.harness.Compare(funds, j.years)
	if err != nil {
		return fmt.Errorf("compare formulas: %w", err)
	}

	j.mu.Lock()
	previous := j.latest
	j.latest = cmp
	j.mu.Unlock()

	if previous != nil && previous.Recommended != cmp.Recommended {
		j.logger.WithFields(map[string]interface{}{
			"previous": previous.Recommended,
			"current":  cmp.Recommended,
		}).Warn("Recommended formula changed")
	}

	if j.onResult != nil {
		j.onResult(cmp)
	}

	return nil
}

// Latest returns the most recent successful comparison, nil before the first
func (j *RefreshJob) Latest() *analysis.Comparison {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.latest
}

// Summary describes the latest comparison for the run log
func (j *RefreshJob) Summary() string {
	cmp := j.Latest()
	if cmp == nil {
		return ""
	}

	recommended := cmp.Recommended
	if recommended == "" {
		recommended = "none"
	}
	return fmt.Sprintf("recommended=%s successful=%d/%d usable=%d",
		recommended, len(cmp.Successful), len(cmp.Rankings), cmp.Usable)
}
