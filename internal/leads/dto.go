package leads

import "time"

type CreateLeadRequest struct {
	PartyName     string     `json:"party_name" validate:"required,max=200"`
	ContactPerson string     `json:"contact_person" validate:"max=100"`
	Mobile        string     `json:"mobile" validate:"max=20"`
	Email         string     `json:"email" validate:"omitempty,email"`
	Source        string     `json:"source" validate:"max=100"`
	Requirement   string     `json:"requirement"`
	FollowUpDate  *time.Time `json:"follow_up_date,omitempty"`
	Remarks       string     `json:"remarks"`
}

type UpdateLeadRequest struct {
	PartyName     *string     `json:"party_name,omitempty" validate:"omitempty,max=200"`
	ContactPerson *string     `json:"contact_person,omitempty"`
	Mobile        *string     `json:"mobile,omitempty"`
	Email         *string     `json:"email,omitempty" validate:"omitempty,email"`
	Source        *string     `json:"source,omitempty"`
	Requirement   *string     `json:"requirement,omitempty"`
	Status        *LeadStatus `json:"status,omitempty"`
	FollowUpDate  *time.Time  `json:"follow_up_date,omitempty"`
	Remarks       *string     `json:"remarks,omitempty"`
}

type ListLeadsRequest struct {
	Search    *string
	Status    *LeadStatus
	CreatedBy *int64
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int `validate:"gte=0,lte=1000"`
	Offset    int `validate:"gte=0"`
}
