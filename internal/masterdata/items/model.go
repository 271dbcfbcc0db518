package items

import "time"

// Item is a catalog master record. Documents copy the fields they need at
// selection time; later edits here never reach existing document lines.
type Item struct {
	ID          int64     `json:"id" db:"id"`
	Code        string    `json:"item_code" db:"code"`
	Name        string    `json:"item_name" db:"name"`
	Description string    `json:"description" db:"description"`
	UOM         string    `json:"uom" db:"uom"`
	Rate        float64   `json:"rate" db:"rate"`
	HSN         string    `json:"hsn" db:"hsn"`
	GSTPercent  float64   `json:"gst_percent" db:"gst_percent"`
	Brand       string    `json:"brand" db:"brand"`
	Category    string    `json:"category" db:"category"`
	CreatedBy   int64     `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
