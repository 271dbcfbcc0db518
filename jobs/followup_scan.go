package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LeadFollowupScanJob logs open leads whose follow-up date is today or
// earlier so the sales team sees them in the worker output and the
// activity log stays honest about stale pipeline entries.
type LeadFollowupScanJob struct {
	Pool    *pgxpool.Pool
	Logger  *slog.Logger
	Metrics *Metrics
}

// NewLeadFollowupScanJob wires dependencies for the follow-up scan.
func NewLeadFollowupScanJob(pool *pgxpool.Pool, logger *slog.Logger, metrics *Metrics) *LeadFollowupScanJob {
	return &LeadFollowupScanJob{Pool: pool, Logger: logger, Metrics: metrics}
}

// Handle processes follow-up scan tasks.
func (j *LeadFollowupScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Pool == nil {
		return errors.New("followup scan: handler not configured")
	}
	tracker := j.Metrics.Track(TaskLeadFollowupScan)

	logger := j.logger()
	rows, err := j.Pool.Query(ctx, `
		SELECT l.id, l.party_name, l.follow_up_date, u.name
		FROM leads l
		JOIN users u ON l.created_by = u.id
		WHERE l.status = 'Open' AND l.follow_up_date IS NOT NULL AND l.follow_up_date <= CURRENT_DATE
		ORDER BY l.follow_up_date
	`)
	if err != nil {
		logger.Error("query due leads", slog.Any("error", err))
		return tracker.End(err)
	}
	defer rows.Close()

	due := 0
	for rows.Next() {
		var (
			id        int64
			partyName string
			followUp  time.Time
			owner     string
		)
		if err := rows.Scan(&id, &partyName, &followUp, &owner); err != nil {
			return tracker.End(err)
		}
		logger.Info("lead follow-up due",
			slog.Int64("lead_id", id),
			slog.String("party", partyName),
			slog.String("follow_up_date", followUp.Format("2006-01-02")),
			slog.String("owner", owner))
		due++
	}
	if err := rows.Err(); err != nil {
		return tracker.End(err)
	}

	logger.Info("completed follow-up scan", slog.Int("due", due))
	return tracker.End(nil)
}

func (j *LeadFollowupScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskLeadFollowupScan))
	}
	return slog.Default().With(slog.String("job", TaskLeadFollowupScan))
}
