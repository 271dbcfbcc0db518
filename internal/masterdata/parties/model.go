package parties

import "time"

type PartyStatus string

const (
	PartyStatusActive   PartyStatus = "Active"
	PartyStatusInactive PartyStatus = "Inactive"
)

// Party is a customer/counterparty master record. The GST number, when
// present, determines the tax classification for every document that
// references the party.
type Party struct {
	ID            int64       `json:"id" db:"id"`
	Name          string      `json:"party_name" db:"name"`
	Address       string      `json:"address" db:"address"`
	City          string      `json:"city" db:"city"`
	State         string      `json:"state" db:"state"`
	Pincode       string      `json:"pincode" db:"pincode"`
	GSTNumber     string      `json:"gst_number" db:"gst_number"`
	ContactPerson string      `json:"contact_person" db:"contact_person"`
	Mobile        string      `json:"mobile" db:"mobile"`
	Email         string      `json:"email" db:"email"`
	Status        PartyStatus `json:"status" db:"status"`
	CreatedBy     int64       `json:"created_by" db:"created_by"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}
