package parties

type CreatePartyRequest struct {
	Name          string `json:"party_name" validate:"required,max=200"`
	Address       string `json:"address" validate:"max=500"`
	City          string `json:"city" validate:"max=100"`
	State         string `json:"state" validate:"max=100"`
	Pincode       string `json:"pincode" validate:"max=10"`
	GSTNumber     string `json:"gst_number" validate:"max=15"`
	ContactPerson string `json:"contact_person" validate:"max=200"`
	Mobile        string `json:"mobile" validate:"max=15"`
	Email         string `json:"email" validate:"omitempty,email"`
}

type UpdatePartyRequest struct {
	Name          *string `json:"party_name,omitempty" validate:"omitempty,max=200"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty"`
	State         *string `json:"state,omitempty"`
	Pincode       *string `json:"pincode,omitempty"`
	GSTNumber     *string `json:"gst_number,omitempty" validate:"omitempty,max=15"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Mobile        *string `json:"mobile,omitempty"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive"`
}

type ListPartiesRequest struct {
	Search *string `json:"search,omitempty"`
	Status *PartyStatus
	Limit  int `json:"limit" validate:"gte=0,lte=1000"`
	Offset int `json:"offset" validate:"gte=0"`
}
