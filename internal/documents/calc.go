package documents

// DefaultGSTPercent applies when a line carries no usable GST rate.
const DefaultGSTPercent = 18

// EffectiveGSTPercent substitutes the default for missing or non-positive
// rates. An explicit rate above zero always wins.
func EffectiveGSTPercent(gstPercent float64) float64 {
	if gstPercent <= 0 {
		return DefaultGSTPercent
	}
	return gstPercent
}

// CalculateLine fills the derived amounts of a line from rate, quantity,
// discount and GST percent. It overwrites whatever was there before, so
// recalculating an already-calculated line is a no-op.
func CalculateLine(line *DocumentLine) {
	gst := EffectiveGSTPercent(line.GSTPercent)
	line.TaxableValue = line.Rate * line.Quantity * (1 - line.DiscountPercent/100)
	line.TaxAmount = line.TaxableValue * gst / 100
	line.LineTotal = line.TaxableValue + line.TaxAmount
}

// Totals is the document-level aggregate of its lines.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	TaxTotal   float64 `json:"tax_total"`
	GrandTotal float64 `json:"grand_total"`
	CGST       float64 `json:"cgst"`
	SGST       float64 `json:"sgst"`
	IGST       float64 `json:"igst"`
}

// CalculateTotals sums calculated lines and splits the tax by type: an
// intra-state document shows equal CGST and SGST halves, anything else
// reports the whole tax as IGST.
func CalculateTotals(lines []DocumentLine, taxType TaxType) Totals {
	var t Totals
	for _, line := range lines {
		t.Subtotal += line.TaxableValue
		t.TaxTotal += line.TaxAmount
		t.GrandTotal += line.LineTotal
	}
	if taxType == TaxTypeCGSTSGST {
		t.CGST = t.TaxTotal / 2
		t.SGST = t.TaxTotal / 2
	} else {
		t.IGST = t.TaxTotal
	}
	return t
}
