package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ID
	}{
		{"number", `{"id": 207119551}`, "207119551"},
		{"string", `{"id": "123"}`, "123"},
		{"null", `{"id": null}`, ""},
		{"absent", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Customer
			require.NoError(t, json.Unmarshal([]byte(tt.in), &c))
			assert.Equal(t, tt.want, c.ID)
		})
	}
}

func TestID_UnmarshalJSON_KeepsOtherValuesRaw(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{`{"id": true}`, "true"},
		{`{"id": {"id":1}}`, `{"id":1}`},
		{`{"id": [1, 2]}`, "[1, 2]"},
	}

	for _, tt := range tests {
		var c Customer
		require.NoError(t, json.Unmarshal([]byte(tt.in), &c), tt.in)
		assert.Equal(t, tt.want, c.ID, tt.in)
	}
}

func TestOrderList_DecodesPlatformPayload(t *testing.T) {
	payload := `{"orders":[{"id":450789469,"order_number":1001,"created_at":"2008-01-10T11:00:00-05:00",
		"line_items":[{"id":466157049,"title":"IPod Nano - 8gb","quantity":1,"product_type":"Cult Products"}]}]}`

	var list OrderList
	require.NoError(t, json.Unmarshal([]byte(payload), &list))
	require.Len(t, list.Orders, 1)

	order := list.Orders[0]
	assert.Equal(t, ID("450789469"), order.ID)
	assert.Equal(t, ID("1001"), order.OrderNumber)
	assert.Equal(t, "2008-01-10", order.CreatedDate())
	require.Len(t, order.LineItems, 1)
	assert.Equal(t, "Cult Products", order.LineItems[0].ProductType)
}

func TestOrder_CreatedDate_FallsBackToRaw(t *testing.T) {
	assert.Equal(t, "yesterday", Order{CreatedAt: "yesterday"}.CreatedDate())
}
