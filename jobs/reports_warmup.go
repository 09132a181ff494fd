package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/century-soap/century-soap/internal/reports"
)

// ReportBuilder pre-builds period reports.
type ReportBuilder interface {
	BuildPeriod(ctx context.Context, period reports.Period) (reports.ReportData, error)
}

// ReportsWarmupJob populates the report cache for the preset windows so
// the first dashboard visit of the day is served hot.
type ReportsWarmupJob struct {
	Reports ReportBuilder
	Logger  *slog.Logger
}

// NewReportsWarmupJob wires dependencies for the warmup handler.
func NewReportsWarmupJob(builder ReportBuilder, logger *slog.Logger) *ReportsWarmupJob {
	return &ReportsWarmupJob{Reports: builder, Logger: logger}
}

// Handle processes warmup tasks.
func (j *ReportsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("reports warmup: handler not configured")
	}
	var payload ReportsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	periods := []reports.Period{reports.PeriodWeek, reports.PeriodMonth, reports.PeriodQuarter, reports.PeriodYear}
	if len(payload.Periods) > 0 {
		periods = periods[:0]
		for _, p := range payload.Periods {
			periods = append(periods, reports.Period(p))
		}
	}

	for _, period := range periods {
		if _, err := j.Reports.BuildPeriod(ctx, period); err != nil {
			j.logger().Error("warm report", slog.String("period", string(period)), slog.Any("error", err))
			return err
		}
		j.logger().Info("report warmed", slog.String("period", string(period)))
	}
	return nil
}

func (j *ReportsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
