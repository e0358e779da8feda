// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. StatisticsRefreshJob - Recomputes per-customer statistics for every
// active store on a configurable schedule, typically nightly.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(storesHandler, recalculateHandler, "0 3 * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The refresh job logs failures per store and moves on; statistics
// correctness never depends on the job because a stale row is recomputed
// synchronously on the next read.
package jobs
