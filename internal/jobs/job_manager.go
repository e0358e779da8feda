package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	statisticsRefreshJob *StatisticsRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the handlers as dependencies to wire up the job execution.
func NewJobManager(
	stores queries.GetActiveStoresQueryHandler,
	recalculateHandler commands.RecalculateStatisticsCommandHandler,
	statisticsSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		statisticsRefreshJob: NewStatisticsRefreshJob(stores, recalculateHandler, statisticsSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.statisticsRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start statistics refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.statisticsRefreshJob.Stop()
}
