package documents

import "strings"

// TaxType classifies how GST splits for a document. Intra-state supplies
// split into CGST+SGST halves; everything else is IGST.
type TaxType string

const (
	TaxTypeCGSTSGST TaxType = "CGST+SGST"
	TaxTypeIGST     TaxType = "IGST"
)

// TaxResolver decides the tax type from a party's GST number. The first two
// characters of a GSTIN are the state code; a match against the home state
// means an intra-state supply.
type TaxResolver struct {
	HomeStateCode string
}

func NewTaxResolver(homeStateCode string) TaxResolver {
	return TaxResolver{HomeStateCode: homeStateCode}
}

// Resolve returns CGST+SGST for home-state GST numbers and IGST otherwise.
// A missing or malformed GST number resolves to IGST.
func (t TaxResolver) Resolve(gstNumber string) TaxType {
	gst := strings.TrimSpace(gstNumber)
	if len(gst) < 2 || len(t.HomeStateCode) != 2 {
		return TaxTypeIGST
	}
	if gst[:2] == t.HomeStateCode {
		return TaxTypeCGSTSGST
	}
	return TaxTypeIGST
}
