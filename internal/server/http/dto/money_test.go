package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/pharmanet/internal/domain/model"
)

func TestMoneyMarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "30", want: `"30.00"`},
		{in: "10.0000", want: `"10.00"`},
		{in: "0.5", want: `"0.50"`},
		{in: "0", want: `"0.00"`},
		{in: "0.3330", want: `"0.333"`},
		{in: "12.3456", want: `"12.3456"`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(NewMoney(decimal.RequireFromString(tt.in)))
		if err != nil {
			t.Fatalf("marshal %s: %v", tt.in, err)
		}
		if string(got) != tt.want {
			t.Errorf("marshal %s: got %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMoneyUnmarshalAcceptsNumbersAndStrings(t *testing.T) {
	var m struct {
		A Money `json:"a"`
		B Money `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":"9.59","b":19}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !m.A.Equal(decimal.RequireFromString("9.59")) || !m.B.Equal(decimal.NewFromInt(19)) {
		t.Fatalf("unexpected values %s %s", m.A, m.B)
	}
}

func TestOrderResponseRendersBackendsAlike(t *testing.T) {
	confirmed := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	order := func(price, lineTotal, total string) model.Order {
		return model.Order{
			ID:          "7f1c",
			ConfirmedAt: confirmed,
			Items: []model.LineItem{{
				Code: "00071015523", Quantity: 3,
				UnitPrice: decimal.RequireFromString(price), LineTotal: decimal.RequireFromString(lineTotal),
			}},
			Subtotal:    decimal.RequireFromString(lineTotal),
			DiscountPct: decimal.Zero,
			Discount:    decimal.Zero,
			Total:       decimal.RequireFromString(total),
		}
	}

	fromMemory, err := json.Marshal(NewOrderResponse(order("10", "30", "30")))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	fromPostgres, err := json.Marshal(NewOrderResponse(order("10.0000", "30.00", "30.00")))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(fromMemory) != string(fromPostgres) {
		t.Fatalf("renderings differ:\n%s\n%s", fromMemory, fromPostgres)
	}

	var body map[string]any
	if err := json.Unmarshal(fromMemory, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	item := body["items"].([]any)[0].(map[string]any)
	if item["line_total"] != "30.00" || item["unit_price"] != "10.00" || body["total"] != "30.00" {
		t.Fatalf("unexpected money fields %v", body)
	}
}

func TestProductResponsePrice(t *testing.T) {
	resp := NewProductResponse(model.Product{Code: "00071015523", Price: decimal.RequireFromString("12.5000")})
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back ProductResponse
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Model().Price.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("unexpected price %s in %s", back.Price, raw)
	}
}
