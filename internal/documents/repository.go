package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meridian-crm/meridian-crm/internal/platform/db"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Document, error)
	List(ctx context.Context, req ListDocumentsRequest) ([]DocumentWithDetails, int, error)
	Create(ctx context.Context, doc Document) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	ReplaceLines(ctx context.Context, documentID int64, lines []DocumentLine) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	SetLocked(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	NextNumber(ctx context.Context, kind Kind) (int64, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const documentColumns = `id, kind, doc_number, party_id, party_name, doc_date, status, tax_type, is_locked,
	subtotal, tax_total, grand_total, validity_days, payment_terms, delivery_terms,
	terms_and_conditions, remarks, party_confirmation_id, source_document_id, source_lead_id,
	created_by, created_at, updated_at`

const lineColumns = `id, document_id, item_id, item_code, item_name, description, hsn, uom,
	rate, quantity, discount_percent, gst_percent, taxable_value, tax_amount, line_total, line_order`

func (r *repository) Get(ctx context.Context, id int64) (*Document, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM documents WHERE id = $1`, documentColumns), id)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	lines, err := r.getLines(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines
	return doc, nil
}

func (r *repository) getLines(ctx context.Context, documentID int64) ([]DocumentLine, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`SELECT %s FROM document_lines WHERE document_id = $1 ORDER BY line_order, id`, lineColumns), documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []DocumentLine
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return lines, rows.Err()
}

func (r *repository) List(ctx context.Context, req ListDocumentsRequest) ([]DocumentWithDetails, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	conditions = append(conditions, fmt.Sprintf("d.kind = $%d", argPos))
	args = append(args, req.Kind)
	argPos++

	if req.PartyID != nil {
		conditions = append(conditions, fmt.Sprintf("d.party_id = $%d", argPos))
		args = append(args, *req.PartyID)
		argPos++
	}
	if req.CreatedBy != nil {
		conditions = append(conditions, fmt.Sprintf("d.created_by = $%d", argPos))
		args = append(args, *req.CreatedBy)
		argPos++
	}
	if req.Status != nil && *req.Status != "" {
		conditions = append(conditions, fmt.Sprintf("d.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}
	if req.Search != nil && *req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(d.doc_number ILIKE $%d OR d.party_name ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+*req.Search+"%")
		argPos++
	}
	if req.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("d.doc_date >= $%d", argPos))
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("d.doc_date <= $%d", argPos))
		args = append(args, *req.DateTo)
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM documents d %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 1000
	}
	query := fmt.Sprintf(`
		SELECT d.id, d.kind, d.doc_number, d.party_id, d.party_name, d.doc_date, d.status, d.tax_type, d.is_locked,
		       d.subtotal, d.tax_total, d.grand_total, d.validity_days, d.payment_terms, d.delivery_terms,
		       d.terms_and_conditions, d.remarks, d.party_confirmation_id, d.source_document_id, d.source_lead_id,
		       d.created_by, d.created_at, d.updated_at,
		       u.name AS created_by_name
		FROM documents d
		JOIN users u ON d.created_by = u.id
		%s
		ORDER BY d.doc_date DESC, d.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []DocumentWithDetails
	for rows.Next() {
		var d DocumentWithDetails
		var docDate pgtype.Date
		var subtotal, taxTotal, grandTotal pgtype.Numeric
		var sourceDocID, sourceLeadID pgtype.Int8
		var createdAt, updatedAt pgtype.Timestamptz

		err := rows.Scan(
			&d.ID, &d.Kind, &d.DocNumber, &d.PartyID, &d.PartyName, &docDate, &d.Status, &d.TaxType, &d.IsLocked,
			&subtotal, &taxTotal, &grandTotal, &d.ValidityDays, &d.PaymentTerms, &d.DeliveryTerms,
			&d.TermsAndConditions, &d.Remarks, &d.PartyConfirmationID, &sourceDocID, &sourceLeadID,
			&d.CreatedBy, &createdAt, &updatedAt,
			&d.CreatedByName,
		)
		if err != nil {
			return nil, 0, err
		}
		applyDocumentNullables(&d.Document, docDate, subtotal, taxTotal, grandTotal, sourceDocID, sourceLeadID, createdAt, updatedAt)
		result = append(result, d)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, doc Document) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO documents (kind, doc_number, party_id, party_name, doc_date, status, tax_type, is_locked,
			subtotal, tax_total, grand_total, validity_days, payment_terms, delivery_terms,
			terms_and_conditions, remarks, party_confirmation_id, source_document_id, source_lead_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id
	`, doc.Kind, doc.DocNumber, doc.PartyID, doc.PartyName, doc.DocDate, doc.Status, doc.TaxType, doc.IsLocked,
		doc.Subtotal, doc.TaxTotal, doc.GrandTotal, doc.ValidityDays, doc.PaymentTerms, doc.DeliveryTerms,
		doc.TermsAndConditions, doc.Remarks, doc.PartyConfirmationID, doc.SourceDocumentID, doc.SourceLeadID,
		doc.CreatedBy).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE documents SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{
		"party_id", "party_name", "doc_date", "status", "tax_type",
		"subtotal", "tax_total", "grand_total", "validity_days",
		"payment_terms", "delivery_terms", "terms_and_conditions",
		"remarks", "party_confirmation_id",
	} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ReplaceLines(ctx context.Context, documentID int64, lines []DocumentLine) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM document_lines WHERE document_id = $1`, documentID); err != nil {
		return err
	}
	for _, line := range lines {
		_, err := r.db.Exec(ctx, `
			INSERT INTO document_lines (document_id, item_id, item_code, item_name, description, hsn, uom,
				rate, quantity, discount_percent, gst_percent, taxable_value, tax_amount, line_total, line_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`, documentID, line.ItemID, line.ItemCode, line.ItemName, line.Description, line.HSN, line.UOM,
			line.Rate, line.Quantity, line.DiscountPercent, line.GSTPercent,
			line.TaxableValue, line.TaxAmount, line.LineTotal, line.LineOrder)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE documents SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetLocked marks a document locked. Locking is one-way; there is no
// corresponding unlock.
func (r *repository) SetLocked(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE documents SET is_locked = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document and its lines. Documents converted from this
// one keep existing; their provenance pointer is cleared first so the
// delete never trips the self-referencing foreign key.
func (r *repository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `UPDATE documents SET source_document_id = NULL WHERE source_document_id = $1`, id); err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM document_lines WHERE document_id = $1`, id); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// NextNumber reserves the next sequence value for a kind. The upsert keeps
// the counter race-free without an explicit lock.
func (r *repository) NextNumber(ctx context.Context, kind Kind) (int64, error) {
	var seq int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO document_sequences (doc_type, seq)
		VALUES ($1, 1)
		ON CONFLICT (doc_type)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq
	`, kind.SequenceKey()).Scan(&seq)
	return seq, err
}

func scanDocument(row pgx.Row) (*Document, error) {
	var d Document
	var docDate pgtype.Date
	var subtotal, taxTotal, grandTotal pgtype.Numeric
	var sourceDocID, sourceLeadID pgtype.Int8
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&d.ID, &d.Kind, &d.DocNumber, &d.PartyID, &d.PartyName, &docDate, &d.Status, &d.TaxType, &d.IsLocked,
		&subtotal, &taxTotal, &grandTotal, &d.ValidityDays, &d.PaymentTerms, &d.DeliveryTerms,
		&d.TermsAndConditions, &d.Remarks, &d.PartyConfirmationID, &sourceDocID, &sourceLeadID,
		&d.CreatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	applyDocumentNullables(&d, docDate, subtotal, taxTotal, grandTotal, sourceDocID, sourceLeadID, createdAt, updatedAt)
	return &d, nil
}

func applyDocumentNullables(d *Document, docDate pgtype.Date, subtotal, taxTotal, grandTotal pgtype.Numeric, sourceDocID, sourceLeadID pgtype.Int8, createdAt, updatedAt pgtype.Timestamptz) {
	if docDate.Valid {
		d.DocDate = docDate.Time
	}
	if subtotal.Valid {
		f, _ := subtotal.Float64Value()
		d.Subtotal = f.Float64
	}
	if taxTotal.Valid {
		f, _ := taxTotal.Float64Value()
		d.TaxTotal = f.Float64
	}
	if grandTotal.Valid {
		f, _ := grandTotal.Float64Value()
		d.GrandTotal = f.Float64
	}
	if sourceDocID.Valid {
		v := sourceDocID.Int64
		d.SourceDocumentID = &v
	}
	if sourceLeadID.Valid {
		v := sourceLeadID.Int64
		d.SourceLeadID = &v
	}
	if createdAt.Valid {
		d.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		d.UpdatedAt = updatedAt.Time
	}
}

func scanLine(row pgx.Row) (*DocumentLine, error) {
	var line DocumentLine
	var itemID pgtype.Int8
	var rate, quantity, discountPercent, gstPercent, taxableValue, taxAmount, lineTotal pgtype.Numeric

	err := row.Scan(
		&line.ID, &line.DocumentID, &itemID, &line.ItemCode, &line.ItemName, &line.Description, &line.HSN, &line.UOM,
		&rate, &quantity, &discountPercent, &gstPercent, &taxableValue, &taxAmount, &lineTotal, &line.LineOrder,
	)
	if err != nil {
		return nil, err
	}
	if itemID.Valid {
		v := itemID.Int64
		line.ItemID = &v
	}
	for dst, src := range map[*float64]pgtype.Numeric{
		&line.Rate: rate, &line.Quantity: quantity, &line.DiscountPercent: discountPercent,
		&line.GSTPercent: gstPercent, &line.TaxableValue: taxableValue,
		&line.TaxAmount: taxAmount, &line.LineTotal: lineTotal,
	} {
		if src.Valid {
			f, _ := src.Float64Value()
			*dst = f.Float64
		}
	}
	return &line, nil
}
