package settings

type UpdateSettingsRequest struct {
	CompanyName        *string `json:"company_name,omitempty" validate:"omitempty,max=200"`
	QuotationPrefix    *string `json:"quotation_prefix,omitempty" validate:"omitempty,max=20"`
	PIPrefix           *string `json:"pi_prefix,omitempty" validate:"omitempty,max=20"`
	SOAPrefix          *string `json:"soa_prefix,omitempty" validate:"omitempty,max=20"`
	PaymentTerms       *string `json:"payment_terms,omitempty"`
	DeliveryTerms      *string `json:"delivery_terms,omitempty"`
	TermsAndConditions *string `json:"terms_and_conditions,omitempty"`
}
