package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ishankgp/MF-return-tracker/pkg/logger"
)

// parser accepts 5 or 6 field expressions and descriptors such as "@every 10m"
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateSchedule checks a cron expression without scheduling anything
func ValidateSchedule(spec string) error {
	if _, err := parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

// JobStatus is a point-in-time view of a job's runs
type JobStatus struct {
	Job         string     `json:"job"`
	Schedule    string     `json:"schedule"`
	Runs        int        `json:"runs"`
	Failures    int        `json:"failures"`
	SuccessRate float64    `json:"success_rate"`
	Last        *RunRecord `json:"last,omitempty"`
	Next        time.Time  `json:"next"`
}

// Scheduler manages scheduled jobs.
// A failed run is recorded and waits for its next tick; runs are not retried.
type Scheduler struct {
	cron    *cron.Cron
	logger  *logger.Logger
	jobs    map[string]Job
	entries map[string]cron.EntryID
	runs    map[string]*runLog
	mu      sync.RWMutex

	timeout    time.Duration
	onComplete func(JobStatus)
}

// New creates a new scheduler. timeout bounds a single run; zero means none.
func New(log *logger.Logger, timeout time.Duration) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger:  log,
		jobs:    make(map[string]Job),
		entries: make(map[string]cron.EntryID),
		runs:    make(map[string]*runLog),
		timeout: timeout,
	}
}

// OnComplete registers fn to receive the job status after every run.
// Call it before Start.
func (s *Scheduler) OnComplete(fn func(JobStatus)) {
	s.onComplete = fn
}

// AddJob adds a job to the scheduler
func (s *Scheduler) AddJob(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobName := job.Name()

	if _, exists := s.jobs[jobName]; exists {
		return fmt.Errorf("job %s already exists", jobName)
	}

	id, err := s.cron.AddFunc(job.Schedule(), func() {
		_ = s.runJob(job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", jobName, err)
	}

	s.jobs[jobName] = job
	s.entries[jobName] = id
	s.runs[jobName] = &runLog{}

	s.logger.WithFields(map[string]interface{}{
		"job":      jobName,
		"schedule": job.Schedule(),
	}).Info("Job added to scheduler")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.logger.Info("Starting scheduler")
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

// RunNow runs a job synchronously outside of its schedule and returns the
// job's error. Call it before Start so it cannot overlap a tick.
func (s *Scheduler) RunNow(jobName string) error {
	s.mu.RLock()
	job, exists := s.jobs[jobName]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("job %s not found", jobName)
	}

	return s.runJob(job)
}

// Status returns the run statistics and next tick of a job. Next is zero
// until the scheduler is started.
func (s *Scheduler) Status(jobName string) (JobStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[jobName]
	if !exists {
		return JobStatus{}, false
	}

	log := s.runs[jobName]
	status := JobStatus{
		Job:         jobName,
		Schedule:    job.Schedule(),
		Runs:        len(log.records),
		Failures:    log.failures,
		SuccessRate: log.successRate(),
		Next:        s.cron.Entry(s.entries[jobName]).Next,
	}
	if last, ok := log.last(); ok {
		status.Last = &last
	}

	return status, true
}

// runJob executes a job once, records the result and reports the status
func (s *Scheduler) runJob(job Job) error {
	jobName := job.Name()
	startTime := time.Now()

	s.logger.WithField("job", jobName).Info("Job started")

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	err := job.Run(ctx)

	record := RunRecord{
		Started: startTime,
		Elapsed: time.Since(startTime),
	}
	if err != nil {
		record.Error = err.Error()
	} else if sum, ok := job.(Summarizer); ok {
		record.Summary = sum.Summary()
	}

	s.mu.Lock()
	if log, exists := s.runs[jobName]; exists {
		log.add(record)
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"job":      jobName,
			"duration": record.Elapsed,
			"error":    record.Error,
		}).Error("Job failed")
	} else {
		s.logger.WithFields(map[string]interface{}{
			"job":      jobName,
			"duration": record.Elapsed,
			"summary":  record.Summary,
		}).Info("Job completed successfully")
	}

	if s.onComplete != nil {
		if status, ok := s.Status(jobName); ok {
			s.onComplete(status)
		}
	}

	return err
}
