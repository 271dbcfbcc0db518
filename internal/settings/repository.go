package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, updates map[string]interface{}) error
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

// Get returns the single settings row, inserting the defaults on first use.
func (r *repository) Get(ctx context.Context) (*Settings, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO settings (id, company_name, quotation_prefix, pi_prefix, soa_prefix, payment_terms, delivery_terms, terms_and_conditions)
		VALUES (1, '', 'QTN-', 'PI-', 'SOA-', '', '', '')
		ON CONFLICT (id) DO UPDATE SET id = settings.id
		RETURNING id, company_name, quotation_prefix, pi_prefix, soa_prefix, payment_terms, delivery_terms, terms_and_conditions, updated_at
	`)

	var s Settings
	var updatedAt pgtype.Timestamptz
	err := row.Scan(
		&s.ID, &s.CompanyName, &s.QuotationPrefix, &s.PIPrefix, &s.SOAPrefix,
		&s.PaymentTerms, &s.DeliveryTerms, &s.TermsAndConditions, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		s.UpdatedAt = updatedAt.Time
	}
	return &s, nil
}

func (r *repository) Update(ctx context.Context, updates map[string]interface{}) error {
	query := "UPDATE settings SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"company_name", "quotation_prefix", "pi_prefix", "soa_prefix", "payment_terms", "delivery_terms", "terms_and_conditions"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += " WHERE id = 1"
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
