package shared

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentLog represents a record stored in document_logs.
type DocumentLog struct {
	ActorID  int64
	Action   string
	Entity   string
	EntityID string
	Meta     map[string]any
	At       time.Time
}

// DocumentLogger writes records into document_logs.
type DocumentLogger struct {
	pool *pgxpool.Pool
}

// NewDocumentLogger returns a new DocumentLogger.
func NewDocumentLogger(pool *pgxpool.Pool) *DocumentLogger {
	return &DocumentLogger{pool: pool}
}

// Record persists the log entry.
func (l *DocumentLogger) Record(ctx context.Context, log DocumentLog) error {
	if l == nil {
		return errors.New("document logger not initialised")
	}
	if log.Action == "" || log.Entity == "" || log.EntityID == "" {
		return errors.New("document log requires action/entity/entity_id")
	}
	metaJSON, err := json.Marshal(log.Meta)
	if err != nil {
		return err
	}
	var at any
	if !log.At.IsZero() {
		at = log.At
	}
	_, err = l.pool.Exec(ctx, `INSERT INTO document_logs (actor_id, action, entity, entity_id, meta, occurred_at) VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))`, log.ActorID, log.Action, log.Entity, log.EntityID, metaJSON, at)
	return err
}
