package documents

import (
	"errors"
	"fmt"
)

// Kind identifies a document family. Leads participate in the conversion
// graph as a source only; they live in their own package and carry no lines.
type Kind string

const (
	KindLead            Kind = "lead"
	KindQuotation       Kind = "quotation"
	KindProformaInvoice Kind = "proforma_invoice"
	KindSOA             Kind = "soa"
)

var ErrUnknownKind = errors.New("unknown document kind")

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindLead, KindQuotation, KindProformaInvoice, KindSOA:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// conversionEdges holds the allowed conversion targets per source kind.
// Quotations, PIs and SOAs convert freely among each other; a lead only
// ever becomes a quotation.
var conversionEdges = map[Kind][]Kind{
	KindLead:            {KindQuotation},
	KindQuotation:       {KindProformaInvoice, KindSOA},
	KindProformaInvoice: {KindQuotation, KindSOA},
	KindSOA:             {KindQuotation, KindProformaInvoice},
}

// CanConvert reports whether a document of kind from may be converted into
// a new document of kind to.
func CanConvert(from, to Kind) bool {
	for _, target := range conversionEdges[from] {
		if target == to {
			return true
		}
	}
	return false
}

// SequenceKey is the doc_type value used in document_sequences.
func (k Kind) SequenceKey() string {
	switch k {
	case KindQuotation:
		return "QTN"
	case KindProformaInvoice:
		return "PI"
	case KindSOA:
		return "SOA"
	case KindLead:
		return "LEAD"
	}
	return string(k)
}

// Label is the human-readable name used in PDFs and log entries.
func (k Kind) Label() string {
	switch k {
	case KindLead:
		return "Lead"
	case KindQuotation:
		return "Quotation"
	case KindProformaInvoice:
		return "Proforma Invoice"
	case KindSOA:
		return "Sale Order Acknowledgement"
	}
	return string(k)
}
