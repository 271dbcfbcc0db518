package leads

import "time"

type LeadStatus string

const (
	LeadStatusOpen      LeadStatus = "Open"
	LeadStatusConverted LeadStatus = "Converted"
	LeadStatusLost      LeadStatus = "Lost"
)

// Lead is an enquiry that has not become a document yet. The party is
// free text; a party master record only appears once a quotation is made.
type Lead struct {
	ID            int64      `json:"id" db:"id"`
	PartyName     string     `json:"party_name" db:"party_name"`
	ContactPerson string     `json:"contact_person" db:"contact_person"`
	Mobile        string     `json:"mobile" db:"mobile"`
	Email         string     `json:"email" db:"email"`
	Source        string     `json:"source" db:"source"`
	Requirement   string     `json:"requirement" db:"requirement"`
	Status        LeadStatus `json:"status" db:"status"`
	FollowUpDate  *time.Time `json:"follow_up_date,omitempty" db:"follow_up_date"`
	Remarks       string     `json:"remarks" db:"remarks"`
	CreatedBy     int64      `json:"created_by" db:"created_by"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
