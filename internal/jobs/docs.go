// Package jobs provides scheduled background tasks for the worker.
//
// Jobs are cron-based, built on github.com/robfig/cron/v3 with second
// precision.
//
// # Available Jobs
//
// StuckJobReportJob runs at the start of every minute and logs jobs that have
// been in PROCESSING for longer than the configured threshold. A worker crash
// after the PROCESSING commit leaves such jobs behind; nothing requeues them,
// so the report is how operators find them.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(listJobsHandler, 30*time.Minute, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
