package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ishankgp/MF-return-tracker/internal/analysis"
	"github.com/ishankgp/MF-return-tracker/internal/report"
	"github.com/ishankgp/MF-return-tracker/internal/scheduler"
	"github.com/ishankgp/MF-return-tracker/internal/scheduler/jobs"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the comparison on a schedule",
	Long: `Refreshes the fund snapshot on a cron schedule, re-runs the comparison
and prints the summary, recommendation and job status after every run. The
first run happens right away and its failure is returned.

Example:
  go run ./cmd/fundrank watch
  go run ./cmd/fundrank watch --schedule "0 */6 * * *" --years 3,4,5`,
	RunE: runWatch,
}

var (
	watchSchedule string
	watchYears    string
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "", "cron expression (default from REFRESH_SCHEDULE)")
	watchCmd.Flags().StringVar(&watchYears, "years", "", "selected years (default from SELECTED_YEARS)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer d.Close()

	schedule := d.cfg.RefreshSchedule
	if watchSchedule != "" {
		schedule = watchSchedule
	}
	if err := scheduler.ValidateSchedule(schedule); err != nil {
		return err
	}

	years, err := d.years(watchYears)
	if err != nil {
		return err
	}

	harness, err := d.newHarness(harnessOptions{})
	if err != nil {
		return err
	}

	out := report.New(cmd.OutOrStdout())
	job := jobs.NewRefreshJob(d.funds, harness, years, schedule, func(cmp *analysis.Comparison) {
		out.Summary(cmp)
		out.Recommendation(cmp)
	}, d.log)

	sched := scheduler.New(d.log, d.cfg.FundAPI.Timeout*2)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("add refresh job: %w", err)
	}

	// first run completes before the first tick; a failure ends the command
	if err := sched.RunNow(job.Name()); err != nil {
		return fmt.Errorf("initial refresh: %w", err)
	}

	sched.OnComplete(out.JobStatus)
	sched.Start()
	defer sched.Stop()

	if status, ok := sched.Status(job.Name()); ok {
		out.JobStatus(status)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Watching with schedule %q, press Ctrl+C to stop\n", schedule)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
