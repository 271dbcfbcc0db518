package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxResolver(t *testing.T) {
	resolver := NewTaxResolver("27")

	tests := []struct {
		name string
		gst  string
		want TaxType
	}{
		{"home state prefix", "27AAPFU0939F1ZV", TaxTypeCGSTSGST},
		{"other state prefix", "29AAPFU0939F1ZV", TaxTypeIGST},
		{"missing gst number", "", TaxTypeIGST},
		{"too short", "2", TaxTypeIGST},
		{"exactly two chars", "27", TaxTypeCGSTSGST},
		{"surrounding whitespace", "  27AAPFU0939F1ZV  ", TaxTypeCGSTSGST},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Resolve(tt.gst))
		})
	}
}

func TestTaxResolverConfigurableHomeState(t *testing.T) {
	resolver := NewTaxResolver("29")
	assert.Equal(t, TaxTypeCGSTSGST, resolver.Resolve("29AAPFU0939F1ZV"))
	assert.Equal(t, TaxTypeIGST, resolver.Resolve("27AAPFU0939F1ZV"))
}

func TestTaxResolverUnsetHomeState(t *testing.T) {
	resolver := TaxResolver{}
	assert.Equal(t, TaxTypeIGST, resolver.Resolve("27AAPFU0939F1ZV"))
}
