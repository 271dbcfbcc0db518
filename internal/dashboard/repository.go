package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meridian-crm/meridian-crm/internal/documents"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

type Repository interface {
	CountLeadsByStatus(ctx context.Context, rng shared.DateRange, createdBy *int64) (map[string]int, error)
	CountDocumentsByStatus(ctx context.Context, kind documents.Kind, rng shared.DateRange, createdBy *int64) (map[string]int, error)
	DocumentValue(ctx context.Context, kind documents.Kind, rng shared.DateRange, createdBy *int64) (float64, error)
	CountParties(ctx context.Context) (int, error)
	CountItems(ctx context.Context) (int, error)
	RecentActivity(ctx context.Context, limit int) ([]Activity, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db dbtx
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) CountLeadsByStatus(ctx context.Context, rng shared.DateRange, createdBy *int64) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM leads WHERE 1=1`
	args, query := appendScope(query, nil, "created_at", rng, createdBy)
	query += " GROUP BY status"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *repository) CountDocumentsByStatus(ctx context.Context, kind documents.Kind, rng shared.DateRange, createdBy *int64) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM documents WHERE kind = $1`
	args := []interface{}{kind}
	args, query = appendScope(query, args, "doc_date", rng, createdBy)
	query += " GROUP BY status"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		if status == "" {
			status = "Draft"
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *repository) DocumentValue(ctx context.Context, kind documents.Kind, rng shared.DateRange, createdBy *int64) (float64, error) {
	query := `SELECT COALESCE(SUM(grand_total), 0) FROM documents WHERE kind = $1`
	args := []interface{}{kind}
	args, query = appendScope(query, args, "doc_date", rng, createdBy)

	var total pgtype.Numeric
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	if !total.Valid {
		return 0, nil
	}
	f, _ := total.Float64Value()
	return f.Float64, nil
}

func (r *repository) CountParties(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM parties`).Scan(&count)
	return count, err
}

func (r *repository) CountItems(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM items`).Scan(&count)
	return count, err
}

func (r *repository) RecentActivity(ctx context.Context, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
		SELECT l.action, l.entity, l.entity_id, COALESCE(u.name, ''), l.occurred_at
		FROM document_logs l
		LEFT JOIN users u ON l.actor_id = u.id
		ORDER BY l.occurred_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Activity
	for rows.Next() {
		var a Activity
		var at pgtype.Timestamptz
		if err := rows.Scan(&a.Action, &a.Entity, &a.EntityID, &a.ActorName, &at); err != nil {
			return nil, err
		}
		if at.Valid {
			a.OccurredAt = at.Time
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// appendScope adds the shared date-range and ownership filters to a query
// that already opens its WHERE clause.
func appendScope(query string, args []interface{}, dateCol string, rng shared.DateRange, createdBy *int64) ([]interface{}, string) {
	argPos := len(args) + 1
	if !rng.From.IsZero() {
		query += fmt.Sprintf(" AND %s >= $%d", dateCol, argPos)
		args = append(args, rng.From)
		argPos++
	}
	if !rng.To.IsZero() {
		query += fmt.Sprintf(" AND %s <= $%d", dateCol, argPos)
		args = append(args, rng.To)
		argPos++
	}
	if createdBy != nil {
		query += fmt.Sprintf(" AND created_by = $%d", argPos)
		args = append(args, *createdBy)
	}
	return args, query
}

// Activity is one row of the recent-activity feed.
type Activity struct {
	Action     string    `json:"action"`
	Entity     string    `json:"entity"`
	EntityID   string    `json:"entity_id"`
	ActorName  string    `json:"actor_name"`
	OccurredAt time.Time `json:"occurred_at"`
}
