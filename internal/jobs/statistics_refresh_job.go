package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StatisticsRefreshJob recomputes customer statistics for every active store
// on a schedule. Statistics stay correct without it, since a stale read
// recomputes synchronously; the job keeps the read path warm so user-facing
// reads rarely pay for the recomputation themselves.
type StatisticsRefreshJob struct {
	stores   queries.GetActiveStoresQueryHandler
	handler  commands.RecalculateStatisticsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStatisticsRefreshJob creates a job refreshing statistics per store.
// The schedule is a standard cron expression, typically nightly.
func NewStatisticsRefreshJob(
	stores queries.GetActiveStoresQueryHandler,
	handler commands.RecalculateStatisticsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *StatisticsRefreshJob {
	return &StatisticsRefreshJob{
		stores:   stores,
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "statistics_refresh_job"),
	}
}

// Start schedules the refresh job.
func (j *StatisticsRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Statistics refresh job started", "schedule", j.schedule)
	return nil
}

// Stop stops the refresh job.
func (j *StatisticsRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Statistics refresh job stopped")
}

func (j *StatisticsRefreshJob) run() {
	ctx := context.Background()

	stores, err := j.stores.Handle(ctx, queries.NewGetActiveStoresQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Statistics refresh failed to list stores", "error", err)
		return
	}

	for _, store := range stores {
		cmd, cmdErr := commands.NewRecalculateStatisticsCommand(store.StoreID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Statistics refresh skipped store",
				"storeId", store.StoreID.String(), "error", cmdErr)
			continue
		}

		refreshed, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			// One store failing must not starve the rest.
			j.logger.ErrorContext(ctx, "Statistics refresh failed for store",
				"storeId", store.StoreID.String(), "refreshed", refreshed, "error", handleErr)
			continue
		}

		j.logger.InfoContext(ctx, "Statistics refreshed",
			"storeId", store.StoreID.String(), "customers", refreshed)
	}
}
