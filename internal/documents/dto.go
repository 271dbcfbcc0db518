package documents

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// FlexFloat unmarshals from a JSON number or a numeric string. Anything
// else, including null and garbage text, coerces to 0 instead of failing
// the request.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexFloat(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err == nil {
			*f = FlexFloat(parsed)
			return nil
		}
	}
	*f = 0
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

func (f FlexFloat) Value() float64 {
	return float64(f)
}

// LineRequest describes one line of an incoming document. When item_id is
// set, blank catalog fields are filled from the item snapshot before
// calculation. Quantity is a pointer so an explicit zero survives the
// trip: omitted means "default", zero means zero.
type LineRequest struct {
	ItemID          *int64     `json:"item_id,omitempty"`
	ItemCode        string     `json:"item_code"`
	ItemName        string     `json:"item_name"`
	Description     string     `json:"description"`
	HSN             string     `json:"hsn"`
	UOM             string     `json:"uom"`
	Rate            FlexFloat  `json:"rate"`
	Quantity        *FlexFloat `json:"quantity,omitempty"`
	DiscountPercent FlexFloat  `json:"discount_percent"`
	GSTPercent      FlexFloat  `json:"gst_percent"`
	LineOrder       int        `json:"line_order"`
}

type CreateDocumentRequest struct {
	PartyID             int64         `json:"party_id" validate:"required"`
	DocDate             time.Time     `json:"doc_date"`
	Lines               []LineRequest `json:"lines"`
	ValidityDays        int           `json:"validity_days" validate:"gte=0"`
	PaymentTerms        string        `json:"payment_terms"`
	DeliveryTerms       string        `json:"delivery_terms"`
	TermsAndConditions  string        `json:"terms_and_conditions"`
	Remarks             string        `json:"remarks"`
	PartyConfirmationID string        `json:"party_confirmation_id"`
}

type UpdateDocumentRequest struct {
	PartyID             *int64         `json:"party_id,omitempty"`
	DocDate             *time.Time     `json:"doc_date,omitempty"`
	Status              *string        `json:"status,omitempty"`
	Lines               *[]LineRequest `json:"lines,omitempty"`
	ValidityDays        *int           `json:"validity_days,omitempty" validate:"omitempty,gte=0"`
	PaymentTerms        *string        `json:"payment_terms,omitempty"`
	DeliveryTerms       *string        `json:"delivery_terms,omitempty"`
	TermsAndConditions  *string        `json:"terms_and_conditions,omitempty"`
	Remarks             *string        `json:"remarks,omitempty"`
	PartyConfirmationID *string        `json:"party_confirmation_id,omitempty"`
}

type ListDocumentsRequest struct {
	Kind      Kind
	PartyID   *int64
	CreatedBy *int64
	Status    *string
	Search    *string
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int `validate:"gte=0,lte=1000"`
	Offset    int `validate:"gte=0"`
}
