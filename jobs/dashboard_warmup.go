package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meridian-crm/meridian-crm/internal/dashboard"
)

var defaultWarmupPeriods = []string{"weekly", "monthly", "ytd"}

// DashboardWarmupJob pre-populates the dashboard stats cache so the first
// page load after a cache bump does not pay the aggregation cost.
type DashboardWarmupJob struct {
	Dashboard *dashboard.Service
	Logger    *slog.Logger
	Metrics   *Metrics
	clock     func() time.Time
}

// NewDashboardWarmupJob wires dependencies for the warmup handler.
func NewDashboardWarmupJob(dashboardSvc *dashboard.Service, logger *slog.Logger, metrics *Metrics) *DashboardWarmupJob {
	return &DashboardWarmupJob{
		Dashboard: dashboardSvc,
		Logger:    logger,
		Metrics:   metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes dashboard warmup tasks.
func (j *DashboardWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Dashboard == nil {
		return errors.New("dashboard warmup: handler not configured")
	}
	tracker := j.Metrics.Track(TaskDashboardWarmup)
	var payload DashboardWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return tracker.End(asynq.SkipRetry)
	}
	periods := payload.Periods
	if len(periods) == 0 {
		periods = defaultWarmupPeriods
	}

	logger := j.logger()
	logger.Info("starting dashboard warmup", slog.Int("periods", len(periods)))

	start := j.now()
	for _, period := range periods {
		// Warm the admin scope only; per-user scopes are filled on demand.
		periodCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
		_, err := j.Dashboard.GetStats(periodCtx, period, nil, nil, nil)
		cancel()
		if err != nil {
			logger.Error("warm period", slog.String("period", period), slog.Any("error", err))
			return tracker.End(err)
		}
	}

	logger.Info("completed dashboard warmup", slog.Duration("duration", time.Since(start)))
	return tracker.End(nil)
}

func (j *DashboardWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskDashboardWarmup))
	}
	return slog.Default().With(slog.String("job", TaskDashboardWarmup))
}

func (j *DashboardWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
