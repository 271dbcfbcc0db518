package reports

import "time"

// ItemSales aggregates document lines per catalog item.
type ItemSales struct {
	ItemCode     string  `json:"item_code"`
	ItemName     string  `json:"item_name"`
	Quantity     float64 `json:"quantity"`
	TaxableValue float64 `json:"taxable_value"`
	TaxAmount    float64 `json:"tax_amount"`
	Total        float64 `json:"total"`
}

// PartySales aggregates documents per party.
type PartySales struct {
	PartyName    string  `json:"party_name"`
	Documents    int     `json:"documents"`
	TaxableValue float64 `json:"taxable_value"`
	Total        float64 `json:"total"`
}

// UserSales aggregates documents per creating user.
type UserSales struct {
	UserName  string  `json:"user_name"`
	Documents int     `json:"documents"`
	Total     float64 `json:"total"`
}

// LeadConversion summarises the lead funnel.
type LeadConversion struct {
	Total          int     `json:"total"`
	Open           int     `json:"open"`
	Converted      int     `json:"converted"`
	Lost           int     `json:"lost"`
	ConversionRate float64 `json:"conversion_rate"`
}

// PendingLead is an open lead with its age for follow-up lists.
type PendingLead struct {
	ID            int64      `json:"id"`
	PartyName     string     `json:"party_name"`
	ContactPerson string     `json:"contact_person"`
	Mobile        string     `json:"mobile"`
	FollowUpDate  *time.Time `json:"follow_up_date,omitempty"`
	AgeDays       int        `json:"age_days"`
}

// QuotationAging is an unconverted quotation with its age.
type QuotationAging struct {
	DocNumber  string    `json:"doc_number"`
	PartyName  string    `json:"party_name"`
	DocDate    time.Time `json:"doc_date"`
	Status     string    `json:"status"`
	GrandTotal float64   `json:"grand_total"`
	AgeDays    int       `json:"age_days"`
}

// GSTSummary splits tax collected by classification.
type GSTSummary struct {
	TaxType      string  `json:"tax_type"`
	Documents    int     `json:"documents"`
	TaxableValue float64 `json:"taxable_value"`
	TaxAmount    float64 `json:"tax_amount"`
}
