package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateLine(t *testing.T) {
	line := DocumentLine{Rate: 1000, Quantity: 2, DiscountPercent: 10, GSTPercent: 18}
	CalculateLine(&line)

	assert.InDelta(t, 1800, line.TaxableValue, 0.001)
	assert.InDelta(t, 324, line.TaxAmount, 0.001)
	assert.InDelta(t, 2124, line.LineTotal, 0.001)
}

func TestCalculateLineIsIdempotent(t *testing.T) {
	line := DocumentLine{Rate: 750.50, Quantity: 3, DiscountPercent: 5, GSTPercent: 12}
	CalculateLine(&line)
	first := line

	CalculateLine(&line)
	CalculateLine(&line)
	assert.Equal(t, first, line)
}

func TestCalculateLineGSTFallback(t *testing.T) {
	line := DocumentLine{Rate: 1000, Quantity: 2, DiscountPercent: 10}
	CalculateLine(&line)

	// No GST rate on the line falls back to 18%.
	assert.InDelta(t, 1800, line.TaxableValue, 0.001)
	assert.InDelta(t, 324, line.TaxAmount, 0.001)
	assert.InDelta(t, 2124, line.LineTotal, 0.001)

	negative := DocumentLine{Rate: 100, Quantity: 1, GSTPercent: -5}
	CalculateLine(&negative)
	assert.InDelta(t, 18, negative.TaxAmount, 0.001)
}

func TestCalculateLineZeroQuantity(t *testing.T) {
	line := DocumentLine{Rate: 1000, Quantity: 0, GSTPercent: 18}
	CalculateLine(&line)

	assert.Zero(t, line.TaxableValue)
	assert.Zero(t, line.TaxAmount)
	assert.Zero(t, line.LineTotal)
}

func TestCalculateTotals(t *testing.T) {
	lines := []DocumentLine{
		{Rate: 1000, Quantity: 2, DiscountPercent: 10, GSTPercent: 18},
		{Rate: 500, Quantity: 1, GSTPercent: 0},
	}
	for i := range lines {
		CalculateLine(&lines[i])
	}

	totals := CalculateTotals(lines, TaxTypeIGST)
	require.InDelta(t, 2300, totals.Subtotal, 0.001)
	require.InDelta(t, 414, totals.TaxTotal, 0.001)
	require.InDelta(t, 2714, totals.GrandTotal, 0.001)
	assert.InDelta(t, 414, totals.IGST, 0.001)
	assert.Zero(t, totals.CGST)
	assert.Zero(t, totals.SGST)

	// The grand total is the sum of the line totals: 2124 + 590.
	assert.InDelta(t, lines[0].LineTotal+lines[1].LineTotal, totals.GrandTotal, 0.001)
}

func TestCalculateTotalsIntraStateSplit(t *testing.T) {
	lines := []DocumentLine{{Rate: 1000, Quantity: 2, DiscountPercent: 10, GSTPercent: 18}}
	CalculateLine(&lines[0])

	totals := CalculateTotals(lines, TaxTypeCGSTSGST)
	assert.InDelta(t, 162, totals.CGST, 0.001)
	assert.InDelta(t, 162, totals.SGST, 0.001)
	assert.Zero(t, totals.IGST)
	assert.InDelta(t, totals.TaxTotal, totals.CGST+totals.SGST, 0.001)
}

func TestCalculateTotalsEmpty(t *testing.T) {
	totals := CalculateTotals(nil, TaxTypeIGST)
	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.TaxTotal)
	assert.Zero(t, totals.GrandTotal)
}
