package items

type CreateItemRequest struct {
	Code        string  `json:"item_code" validate:"required,max=50"`
	Name        string  `json:"item_name" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=1000"`
	UOM         string  `json:"uom" validate:"required,max=20"`
	Rate        float64 `json:"rate" validate:"gte=0"`
	HSN         string  `json:"hsn" validate:"max=10"`
	GSTPercent  float64 `json:"gst_percent" validate:"gte=0,lte=100"`
	Brand       string  `json:"brand" validate:"max=100"`
	Category    string  `json:"category" validate:"max=100"`
}

type UpdateItemRequest struct {
	Code        *string  `json:"item_code,omitempty" validate:"omitempty,max=50"`
	Name        *string  `json:"item_name,omitempty" validate:"omitempty,max=200"`
	Description *string  `json:"description,omitempty"`
	UOM         *string  `json:"uom,omitempty" validate:"omitempty,max=20"`
	Rate        *float64 `json:"rate,omitempty" validate:"omitempty,gte=0"`
	HSN         *string  `json:"hsn,omitempty"`
	GSTPercent  *float64 `json:"gst_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	Brand       *string  `json:"brand,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

type ListItemsRequest struct {
	Search   *string
	Brand    *string
	Category *string
	Limit    int `validate:"gte=0,lte=1000"`
	Offset   int `validate:"gte=0"`
}
