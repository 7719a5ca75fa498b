package jobs

import (
	"context"
	"log/slog"
	"time"

	"optiroute/internal/core/application/usecases/queries"
	"optiroute/internal/core/domain/model/job"

	"github.com/robfig/cron/v3"
)

const stuckJobSchedule = "0 * * * * *"

type ProcessingJobLister interface {
	Handle(ctx context.Context, query queries.ListJobsQuery) ([]queries.ListJobsQueryResponse, error)
}

// StuckJobReportJob logs jobs that have stayed in PROCESSING longer than the
// threshold. It only reports; the jobs are left untouched.
type StuckJobReportJob struct {
	lister    ProcessingJobLister
	threshold time.Duration
	now       func() time.Time
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStuckJobReportJob creates a job that checks once a minute.
func NewStuckJobReportJob(lister ProcessingJobLister, threshold time.Duration, logger *slog.Logger) *StuckJobReportJob {
	return &StuckJobReportJob{
		lister:    lister,
		threshold: threshold,
		now:       time.Now,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stuck_job_report_job"),
	}
}

// Start schedules the report.
func (j *StuckJobReportJob) Start() error {
	_, err := j.cron.AddFunc(stuckJobSchedule, func() {
		j.Report(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stuck job report started (running every minute)", "threshold", j.threshold.String())
	return nil
}

// Report runs one check and returns how many stuck jobs were found.
func (j *StuckJobReportJob) Report(ctx context.Context) int {
	cutoff := j.now().Add(-j.threshold)

	query, err := queries.NewListJobsQuery([]job.Status{job.Processing}, &cutoff, queries.MaxListLimit)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stuck job report failed", "error", err)
		return 0
	}

	rows, err := j.lister.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stuck job report failed", "error", err)
		return 0
	}

	for _, row := range rows {
		j.logger.WarnContext(ctx, "Job stuck in processing",
			"job_id", row.ID.String(),
			"created_at", row.CreatedAt,
			"input_file", row.InputFilePath,
		)
	}

	return len(rows)
}

// Stop stops the schedule and waits for a running report to finish.
func (j *StuckJobReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stuck job report stopped")
}
