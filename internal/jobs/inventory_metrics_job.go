package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/pkg/logger"
	"warehouse/internal/pkg/metrics"
)

// DefaultInventorySchedule refreshes the inventory gauges every 30 seconds.
const DefaultInventorySchedule = "*/30 * * * * *"

type (
	GroupedReportHandler interface {
		Handle(
			ctx context.Context,
			query queries.GetPalletsGroupedByExpirationQuery,
		) ([]queries.ExpirationGroup, error)
	}

	BoxListHandler interface {
		Handle(ctx context.Context, query queries.GetAllBoxesQuery) ([]queries.BoxSummary, error)
	}
)

// InventoryMetricsJob periodically reads the warehouse snapshot and publishes it as
// Prometheus gauges. It only reads, so it never competes with the single writer.
type InventoryMetricsJob struct {
	grouped  GroupedReportHandler
	boxes    BoxListHandler
	metrics  *metrics.Metrics
	schedule string
	cron     *cron.Cron
	logger   *logger.Logger
	now      func() time.Time
}

// NewInventoryMetricsJob creates the job. An empty schedule falls back to
// DefaultInventorySchedule. Schedules use the six-field cron syntax with seconds.
func NewInventoryMetricsJob(
	grouped GroupedReportHandler,
	boxes BoxListHandler,
	m *metrics.Metrics,
	schedule string,
	log *logger.Logger,
) *InventoryMetricsJob {
	if schedule == "" {
		schedule = DefaultInventorySchedule
	}
	log = log.With("component", "inventory_metrics_job")
	cronLog := newCronLogger(log)

	return &InventoryMetricsJob{
		grouped:  grouped,
		boxes:    boxes,
		metrics:  m,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		logger: log,
		now:    time.Now,
	}
}

// Start schedules the refresh and runs the cron loop.
func (j *InventoryMetricsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if err := j.Refresh(context.Background()); err != nil {
			j.logger.Error("Inventory refresh failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Inventory metrics job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running refresh to finish or ctx to end.
func (j *InventoryMetricsJob) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
	}
	j.logger.Info("Inventory metrics job stopped")
}

// Refresh reads both reports' source data once and replaces the inventory gauges.
// Gauges keep their previous values when a query fails.
func (j *InventoryMetricsJob) Refresh(ctx context.Context) error {
	groups, err := j.grouped.Handle(ctx, queries.NewGetPalletsGroupedByExpirationQuery())
	if err != nil {
		return err
	}
	boxes, err := j.boxes.Handle(ctx, queries.NewGetAllBoxesQuery())
	if err != nil {
		return err
	}

	inv := metrics.Inventory{
		Boxes:           len(boxes),
		PalletsByExpiry: make(map[string]int, len(groups)),
		RefreshedAt:     j.now(),
	}
	for _, group := range groups {
		inv.Pallets += len(group.Pallets)
		inv.PalletsByExpiry[group.ExpireDate.String()] = len(group.Pallets)
	}
	for _, box := range boxes {
		if box.PalletID == nil {
			inv.UnplacedBoxes++
		}
	}

	j.metrics.SetInventory(inv)
	j.logger.Debug("Inventory refreshed",
		"pallets", inv.Pallets, "boxes", inv.Boxes, "unplaced_boxes", inv.UnplacedBoxes)
	return nil
}
