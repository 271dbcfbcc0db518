package settings

import "time"

// Settings is the single organisation-wide configuration row. Document
// numbering reads the prefixes; new documents inherit the default terms.
type Settings struct {
	ID                 int64     `json:"id" db:"id"`
	CompanyName        string    `json:"company_name" db:"company_name"`
	QuotationPrefix    string    `json:"quotation_prefix" db:"quotation_prefix"`
	PIPrefix           string    `json:"pi_prefix" db:"pi_prefix"`
	SOAPrefix          string    `json:"soa_prefix" db:"soa_prefix"`
	PaymentTerms       string    `json:"payment_terms" db:"payment_terms"`
	DeliveryTerms      string    `json:"delivery_terms" db:"delivery_terms"`
	TermsAndConditions string    `json:"terms_and_conditions" db:"terms_and_conditions"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}
