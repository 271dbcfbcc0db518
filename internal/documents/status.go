package documents

// Workflow statuses per kind. These are independent of the lock flag: a
// locked document can still move through its status pipeline.
const (
	StatusQuotationInProcess  = "In Process"
	StatusQuotationSuccessful = "Successful"
	StatusQuotationLost       = "Lost"

	StatusPISubmitted   = "PI Submitted"
	StatusPIPaymentRecd = "Payment Recd"

	StatusSOAInProcess     = "In Process"
	StatusSOAMaterialGiven = "Material Given"
)

var statusesByKind = map[Kind][]string{
	KindQuotation:       {StatusQuotationInProcess, StatusQuotationSuccessful, StatusQuotationLost},
	KindProformaInvoice: {StatusPISubmitted, StatusPIPaymentRecd},
	KindSOA:             {StatusSOAInProcess, StatusSOAMaterialGiven},
}

// DefaultStatus returns the status a freshly created document starts in.
// Quotations start without a status.
func DefaultStatus(kind Kind) string {
	switch kind {
	case KindProformaInvoice:
		return StatusPISubmitted
	case KindSOA:
		return StatusSOAInProcess
	}
	return ""
}

// ValidStatus reports whether status is allowed for the given kind. The
// empty status is always allowed; it means "not yet classified".
func ValidStatus(kind Kind, status string) bool {
	if status == "" {
		return true
	}
	for _, s := range statusesByKind[kind] {
		if s == status {
			return true
		}
	}
	return false
}
