package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"lead", "quotation", "proforma_invoice", "soa"} {
		kind, err := ParseKind(valid)
		require.NoError(t, err)
		assert.Equal(t, Kind(valid), kind)
	}

	_, err := ParseKind("invoice")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestCanConvert(t *testing.T) {
	allowed := []struct{ from, to Kind }{
		{KindLead, KindQuotation},
		{KindQuotation, KindProformaInvoice},
		{KindQuotation, KindSOA},
		{KindProformaInvoice, KindQuotation},
		{KindProformaInvoice, KindSOA},
		{KindSOA, KindQuotation},
		{KindSOA, KindProformaInvoice},
	}
	for _, edge := range allowed {
		assert.True(t, CanConvert(edge.from, edge.to), "%s -> %s should be allowed", edge.from, edge.to)
	}

	rejected := []struct{ from, to Kind }{
		{KindQuotation, KindLead},
		{KindProformaInvoice, KindLead},
		{KindSOA, KindLead},
		{KindLead, KindProformaInvoice},
		{KindLead, KindSOA},
		{KindQuotation, KindQuotation},
		{KindSOA, KindSOA},
	}
	for _, edge := range rejected {
		assert.False(t, CanConvert(edge.from, edge.to), "%s -> %s should be rejected", edge.from, edge.to)
	}
}

func TestDefaultStatus(t *testing.T) {
	assert.Equal(t, "", DefaultStatus(KindQuotation))
	assert.Equal(t, StatusPISubmitted, DefaultStatus(KindProformaInvoice))
	assert.Equal(t, StatusSOAInProcess, DefaultStatus(KindSOA))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(KindQuotation, ""))
	assert.True(t, ValidStatus(KindQuotation, StatusQuotationSuccessful))
	assert.False(t, ValidStatus(KindQuotation, StatusPIPaymentRecd))
	assert.True(t, ValidStatus(KindProformaInvoice, StatusPIPaymentRecd))
	assert.False(t, ValidStatus(KindProformaInvoice, StatusSOAMaterialGiven))
	assert.True(t, ValidStatus(KindSOA, StatusSOAMaterialGiven))
}
