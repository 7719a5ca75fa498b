package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	stuckJobReportJob *StuckJobReportJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	processingLister ProcessingJobLister,
	stuckThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		stuckJobReportJob: NewStuckJobReportJob(processingLister, stuckThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.stuckJobReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start stuck job report: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stuckJobReportJob.Stop()
}
