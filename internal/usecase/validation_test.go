package usecase

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
)

func TestValidateProductCode(t *testing.T) {
	valid := []string{"00000000001", "12345678901", "99999999999"}
	for _, code := range valid {
		if !ValidateProductCode(code) {
			t.Fatalf("expected code %s to be valid", code)
		}
	}

	invalid := []string{"", "1234567890", "123456789012", "1234567890a", "12345-67890", "١٢٣٤٥٦٧٨٩٠١"}
	for _, code := range invalid {
		if ValidateProductCode(code) {
			t.Fatalf("expected code %q to be invalid", code)
		}
	}
}

func TestValidateOrderRequest(t *testing.T) {
	line := model.OrderLine{Code: "00000000001", Quantity: 1}

	cases := []struct {
		name  string
		req   model.OrderRequest
		valid bool
	}{
		{"ok", model.OrderRequest{Lines: []model.OrderLine{line}}, true},
		{"full discount", model.OrderRequest{Lines: []model.OrderLine{line}, DiscountPct: decimal.NewFromInt(100)}, true},
		{"no lines", model.OrderRequest{}, false},
		{"bad code", model.OrderRequest{Lines: []model.OrderLine{{Code: "123", Quantity: 1}}}, false},
		{"zero quantity", model.OrderRequest{Lines: []model.OrderLine{{Code: "00000000001"}}}, false},
		{"negative discount", model.OrderRequest{Lines: []model.OrderLine{line}, DiscountPct: decimal.NewFromInt(-1)}, false},
		{"discount over 100", model.OrderRequest{Lines: []model.OrderLine{line}, DiscountPct: decimal.RequireFromString("100.01")}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateOrderRequest(tc.req)
			if tc.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.valid && !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
