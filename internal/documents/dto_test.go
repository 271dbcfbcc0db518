package documents

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloatUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"json number", `12.5`, 12.5},
		{"integer", `42`, 42},
		{"numeric string", `"12.5"`, 12.5},
		{"numeric string with spaces", `" 99 "`, 99},
		{"garbage string", `"abc"`, 0},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
		{"boolean", `true`, 0},
		{"array", `[1,2]`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexFloat
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.Equal(t, tt.want, f.Value())
		})
	}
}

func TestFlexFloatInLineRequest(t *testing.T) {
	payload := `{"item_name":"Widget","rate":"1000","quantity":2,"discount_percent":"10","gst_percent":"not a number"}`

	var lr LineRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &lr))
	assert.Equal(t, 1000.0, lr.Rate.Value())
	require.NotNil(t, lr.Quantity)
	assert.Equal(t, 2.0, lr.Quantity.Value())
	assert.Equal(t, 10.0, lr.DiscountPercent.Value())
	assert.Zero(t, lr.GSTPercent.Value())
}

func TestLineRequestQuantityZeroVsAbsent(t *testing.T) {
	var explicit LineRequest
	require.NoError(t, json.Unmarshal([]byte(`{"quantity":0}`), &explicit))
	require.NotNil(t, explicit.Quantity)
	assert.Zero(t, explicit.Quantity.Value())

	var coerced LineRequest
	require.NoError(t, json.Unmarshal([]byte(`{"quantity":"garbage"}`), &coerced))
	require.NotNil(t, coerced.Quantity)
	assert.Zero(t, coerced.Quantity.Value())

	var absent LineRequest
	require.NoError(t, json.Unmarshal([]byte(`{"item_name":"Widget"}`), &absent))
	assert.Nil(t, absent.Quantity)
}

func TestFlexFloatMarshal(t *testing.T) {
	out, err := json.Marshal(FlexFloat(12.5))
	require.NoError(t, err)
	assert.Equal(t, `12.5`, string(out))
}
