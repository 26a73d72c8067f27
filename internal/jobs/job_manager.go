package jobs

import (
	"context"
	"fmt"

	"warehouse/internal/pkg/logger"
	"warehouse/internal/pkg/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	inventoryMetricsJob *InventoryMetricsJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes query handlers as dependencies to wire up the job execution.
func NewJobManager(
	grouped GroupedReportHandler,
	boxes BoxListHandler,
	m *metrics.Metrics,
	inventorySchedule string,
	log *logger.Logger,
) *JobManager {
	return &JobManager{
		inventoryMetricsJob: NewInventoryMetricsJob(grouped, boxes, m, inventorySchedule, log),
	}
}

// StartAll refreshes the inventory once and starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll(ctx context.Context) error {
	if err := jm.inventoryMetricsJob.Refresh(ctx); err != nil {
		jm.inventoryMetricsJob.logger.Warn("Initial inventory refresh failed", "error", err)
	}

	if err := jm.inventoryMetricsJob.Start(); err != nil {
		return fmt.Errorf("failed to start inventory metrics job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll(ctx context.Context) {
	jm.inventoryMetricsJob.Stop(ctx)
}
