package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLowStockScan scans the catalog for products at or below minimum stock.
	TaskLowStockScan = "inventory:low_stock_scan"
	// TaskReportsWarmup pre-builds the preset period reports into the cache.
	TaskReportsWarmup = "reports:warmup"
)

// LowStockScanPayload configures a scan run.
type LowStockScanPayload struct {
	// IncludeMedium also flags products in the medium band.
	IncludeMedium bool `json:"include_medium"`
}

// NewLowStockScanTask constructs an Asynq task.
func NewLowStockScanTask(payload LowStockScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, data), nil
}

// ReportsWarmupPayload configures which presets to warm. Empty means all.
type ReportsWarmupPayload struct {
	Periods []string `json:"periods,omitempty"`
}

// NewReportsWarmupTask constructs an Asynq task.
func NewReportsWarmupTask(payload ReportsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportsWarmup, data), nil
}
