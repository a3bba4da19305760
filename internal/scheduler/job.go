package scheduler

import (
	"context"
	"time"
)

// maxRuns bounds the run records kept per job
const maxRuns = 100

// Job represents a scheduled job
type Job interface {
	// Name returns the job name
	Name() string

	// Run executes the job
	Run(ctx context.Context) error

	// Schedule returns the cron schedule expression
	// Examples: "@every 10m", "0 */6 * * *"
	Schedule() string
}

// Summarizer is implemented by jobs that can describe their latest result,
// e.g. the formula a refresh recommended
type Summarizer interface {
	Summary() string
}

// RunRecord is one execution of a job
type RunRecord struct {
	Started time.Time     `json:"started"`
	Elapsed time.Duration `json:"elapsed"`
	Error   string        `json:"error,omitempty"`
	Summary string        `json:"summary,omitempty"`
}

// OK reports whether the run succeeded
func (r RunRecord) OK() bool {
	return r.Error == ""
}

// runLog keeps the latest runs of one job, oldest first
type runLog struct {
	records  []RunRecord
	failures int
}

func (l *runLog) add(r RunRecord) {
	if !r.OK() {
		l.failures++
	}
	l.records = append(l.records, r)

	if len(l.records) > maxRuns {
		if !l.records[0].OK() {
			l.failures--
		}
		l.records = l.records[1:]
	}
}

func (l *runLog) last() (RunRecord, bool) {
	if len(l.records) == 0 {
		return RunRecord{}, false
	}
	return l.records[len(l.records)-1], true
}

// successRate is the share of kept runs that succeeded, 0 before any run
func (l *runLog) successRate() float64 {
	if len(l.records) == 0 {
		return 0
	}
	return float64(len(l.records)-l.failures) / float64(len(l.records))
}
