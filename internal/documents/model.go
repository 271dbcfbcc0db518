package documents

import "time"

// Document is a quotation, proforma invoice or SOA header. The party name
// is snapshotted at save time so renames never rewrite history; the same
// holds for every catalog field on the lines.
type Document struct {
	ID                  int64          `json:"id" db:"id"`
	Kind                Kind           `json:"kind" db:"kind"`
	DocNumber           string         `json:"doc_number" db:"doc_number"`
	PartyID             int64          `json:"party_id" db:"party_id"`
	PartyName           string         `json:"party_name" db:"party_name"`
	DocDate             time.Time      `json:"doc_date" db:"doc_date"`
	Status              string         `json:"status" db:"status"`
	TaxType             TaxType        `json:"tax_type" db:"tax_type"`
	IsLocked            bool           `json:"is_locked" db:"is_locked"`
	Subtotal            float64        `json:"subtotal" db:"subtotal"`
	TaxTotal            float64        `json:"tax_total" db:"tax_total"`
	GrandTotal          float64        `json:"grand_total" db:"grand_total"`
	ValidityDays        int            `json:"validity_days" db:"validity_days"`
	PaymentTerms        string         `json:"payment_terms" db:"payment_terms"`
	DeliveryTerms       string         `json:"delivery_terms" db:"delivery_terms"`
	TermsAndConditions  string         `json:"terms_and_conditions" db:"terms_and_conditions"`
	Remarks             string         `json:"remarks" db:"remarks"`
	PartyConfirmationID string         `json:"party_confirmation_id" db:"party_confirmation_id"`
	SourceDocumentID    *int64         `json:"source_document_id,omitempty" db:"source_document_id"`
	SourceLeadID        *int64         `json:"source_lead_id,omitempty" db:"source_lead_id"`
	CreatedBy           int64          `json:"created_by" db:"created_by"`
	CreatedAt           time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at" db:"updated_at"`
	Lines               []DocumentLine `json:"lines,omitempty" db:"-"`
}

// DocumentLine is an immutable catalog snapshot plus the commercial fields
// the user edits. Derived amounts are recomputed on every save.
type DocumentLine struct {
	ID              int64   `json:"id" db:"id"`
	DocumentID      int64   `json:"document_id" db:"document_id"`
	ItemID          *int64  `json:"item_id,omitempty" db:"item_id"`
	ItemCode        string  `json:"item_code" db:"item_code"`
	ItemName        string  `json:"item_name" db:"item_name"`
	Description     string  `json:"description" db:"description"`
	HSN             string  `json:"hsn" db:"hsn"`
	UOM             string  `json:"uom" db:"uom"`
	Rate            float64 `json:"rate" db:"rate"`
	Quantity        float64 `json:"quantity" db:"quantity"`
	DiscountPercent float64 `json:"discount_percent" db:"discount_percent"`
	GSTPercent      float64 `json:"gst_percent" db:"gst_percent"`
	TaxableValue    float64 `json:"taxable_value" db:"taxable_value"`
	TaxAmount       float64 `json:"tax_amount" db:"tax_amount"`
	LineTotal       float64 `json:"line_total" db:"line_total"`
	LineOrder       int     `json:"line_order" db:"line_order"`
}

// DocumentWithDetails carries list-view extras resolved by a join.
type DocumentWithDetails struct {
	Document
	CreatedByName string `json:"created_by_name" db:"created_by_name"`
}
