package reports

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meridian-crm/meridian-crm/internal/documents"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

type Repository interface {
	ItemSales(ctx context.Context, kind documents.Kind, rng shared.DateRange) ([]ItemSales, error)
	PartySales(ctx context.Context, kind documents.Kind, rng shared.DateRange) ([]PartySales, error)
	UserSales(ctx context.Context, kind documents.Kind, rng shared.DateRange) ([]UserSales, error)
	LeadConversion(ctx context.Context, rng shared.DateRange) (*LeadConversion, error)
	PendingLeads(ctx context.Context) ([]PendingLead, error)
	QuotationAging(ctx context.Context) ([]QuotationAging, error)
	GSTSummary(ctx context.Context, kind documents.Kind, rng shared.DateRange) ([]GSTSummary, error)
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

func rangeClause(rng shared.DateRange, args []interface{}, col string) (string, []interface{}) {
	clause := ""
	argPos := len(args) + 1
	if !rng.From.IsZero() {
		clause += fmt.Sprintf(" AND %s >= $%d", col, argPos)
		args = append(args, rng.From)
		argPos++
	}
	if !rng.To.IsZero() {
		clause += fmt.Sprintf(" AND %s <= $%d", col, argPos)
		args = append(args, rng.To)
	}
	return clause, args
}

func (r *repository) ItemSales(ctx context.Context, kind documents.Kind, rng shared.DateRange) ([]ItemSales, error) {
	args := []interface{}{kind}
	clause, args := rangeClause(rng, args, "d.doc_date")
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT l.item_code, l.item_name, SUM(l.quantity), SUM(l.taxable_value), SUM(l.tax_amount), SUM(l.line_total)
		FROM document_lines l
		JOIN documents d ON l.document_id = d.id
		WHERE d.kind = $1%s
		GROUP BY l.item_code, l.item_name
		ORDER BY SUM(l.line_total) DESC
	`, clause), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ItemSales
	for rows.Next() {
		var row ItemSales
		var qty, taxable, tax, total pgtype.Numeric
		if err := rows.Scan(&row.ItemCode, &row.ItemName, &qty, &taxable, &tax, &total); err != nil {
			return nil, err
		}
		row.Quantity = numericFloat(qty)
		row.TaxableValue = numericFloat(taxable)
		row.TaxAmount = numericFloat(tax)
		row.Total = numericFloat(total)
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *repository) PartySales(ctx context.Context, kind documents.Kind, rng shared.DateRange) ([]PartySales, error) {
	args := []interface{}{kind}
	clause, args := rangeClause(rng, args, "doc_date")
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT party_name, COUNT(*), SUM(subtotal), SUM(grand_total)
		FROM documents
		WHERE kind = $1%s
		GROUP BY party_name
		ORDER BY SUM(grand_total) DESC
	`, clause), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PartySales
	for rows.Next() {
		var row PartySales
		var taxable, total pgtype.Numeric
		if err := rows.Scan(&row.PartyName, &row.Documents, &taxable, &total); err != nil {
			return nil, err
		}
		row.TaxableValue = numericFloat(taxable)
		row.Total = numericFloat(total)
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *repository) UserSales(ctx context.Context, kind documents.Kind, rng shared.DateRange) ([]UserSales, error) {
	args := []interface{}{kind}
	clause, args := rangeClause(rng, args, "d.doc_date")
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT u.name, COUNT(*), SUM(d.grand_total)
		FROM documents d
		JOIN users u ON d.created_by = u.id
		WHERE d.kind = $1%s
		GROUP BY u.name
		ORDER BY SUM(d.grand_total) DESC
	`, clause), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []UserSales
	for rows.Next() {
		var row UserSales
		var total pgtype.Numeric
		if err := rows.Scan(&row.UserName, &row.Documents, &total); err != nil {
			return nil, err
		}
		row.Total = numericFloat(total)
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *repository) LeadConversion(ctx context.Context, rng shared.DateRange) (*LeadConversion, error) {
	args := []interface{}{}
	clause, args := rangeClause(rng, args, "created_at")
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT status, COUNT(*) FROM leads WHERE 1=1%s GROUP BY status
	`, clause), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &LeadConversion{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		summary.Total += count
		switch status {
		case "Open":
			summary.Open = count
		case "Converted":
			summary.Converted = count
		case "Lost":
			summary.Lost = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if summary.Total > 0 {
		summary.ConversionRate = float64(summary.Converted) / float64(summary.Total) * 100
	}
	return summary, nil
}

func (r *repository) PendingLeads(ctx context.Context) ([]PendingLead, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, party_name, contact_person, mobile, follow_up_date,
		       EXTRACT(DAY FROM NOW() - created_at)::int
		FROM leads
		WHERE status = 'Open'
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PendingLead
	for rows.Next() {
		var row PendingLead
		var followUp pgtype.Date
		if err := rows.Scan(&row.ID, &row.PartyName, &row.ContactPerson, &row.Mobile, &followUp, &row.AgeDays); err != nil {
			return nil, err
		}
		if followUp.Valid {
			t := followUp.Time
			row.FollowUpDate = &t
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *repository) QuotationAging(ctx context.Context) ([]QuotationAging, error) {
	rows, err := r.db.Query(ctx, `
		SELECT doc_number, party_name, doc_date, status, grand_total,
		       EXTRACT(DAY FROM NOW() - doc_date)::int
		FROM documents
		WHERE kind = 'quotation' AND status NOT IN ('Successful', 'Lost')
		ORDER BY doc_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []QuotationAging
	for rows.Next() {
		var row QuotationAging
		var docDate pgtype.Date
		var total pgtype.Numeric
		if err := rows.Scan(&row.DocNumber, &row.PartyName, &docDate, &row.Status, &total, &row.AgeDays); err != nil {
			return nil, err
		}
		if docDate.Valid {
			row.DocDate = docDate.Time
		}
		row.GrandTotal = numericFloat(total)
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *repository) GSTSummary(ctx context.Context, kind documents.Kind, rng shared.DateRange) ([]GSTSummary, error) {
	args := []interface{}{kind}
	clause, args := rangeClause(rng, args, "doc_date")
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT tax_type, COUNT(*), SUM(subtotal), SUM(tax_total)
		FROM documents
		WHERE kind = $1%s
		GROUP BY tax_type
		ORDER BY tax_type
	`, clause), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []GSTSummary
	for rows.Next() {
		var row GSTSummary
		var taxable, tax pgtype.Numeric
		if err := rows.Scan(&row.TaxType, &row.Documents, &taxable, &tax); err != nil {
			return nil, err
		}
		row.TaxableValue = numericFloat(taxable)
		row.TaxAmount = numericFloat(tax)
		result = append(result, row)
	}
	return result, rows.Err()
}

func numericFloat(n pgtype.Numeric) float64 {
	if !n.Valid {
		return 0
	}
	f, _ := n.Float64Value()
	return f.Float64
}
