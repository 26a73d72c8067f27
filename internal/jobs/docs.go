// Package jobs provides scheduled background tasks for the warehouse.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Jobs only read: every write goes through the command handlers.
//
// # Available Jobs
//
// 1. InventoryMetricsJob - loads the pallet and box snapshot and publishes the
// warehouse_inventory_* Prometheus gauges (pallets, boxes, unplaced boxes and pallets
// per derived expire date)
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(groupedHandler, boxesHandler, m, "*/30 * * * * *", log)
//
//	if err := jobManager.StartAll(ctx); err != nil {
//		log.Fatal("Failed to start jobs", "error", err)
//	}
//	defer jobManager.StopAll(shutdownCtx)
//
// # Scheduling
//
// Schedules use the six-field cron syntax, seconds first. Runs never overlap: a tick
// that arrives while the previous refresh is still running is skipped.
//
// # Error Handling
//
// A failed refresh is logged and leaves the gauges at their previous values. Panics
// inside a run are recovered and logged by the scheduler.
package jobs
