package usecase

import (
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
)

// ProductCodeLength is the length of a normalized NDC-11 product code.
const ProductCodeLength = 11

var maxDiscount = decimal.NewFromInt(100)

// ValidateProductCode reports whether code is exactly eleven ASCII digits.
func ValidateProductCode(code string) bool {
	if len(code) != ProductCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

// ValidateOrderRequest checks the shape of an order before any stock is touched.
func ValidateOrderRequest(req model.OrderRequest) error {
	if len(req.Lines) == 0 {
		return domainErrors.Validationf("order must contain at least one item")
	}
	for i, line := range req.Lines {
		if !ValidateProductCode(line.Code) {
			return domainErrors.Validationf("items[%d]: product code %q must be %d digits", i, line.Code, ProductCodeLength)
		}
		if line.Quantity < 1 {
			return domainErrors.Validationf("items[%d]: quantity must be >= 1, got %d", i, line.Quantity)
		}
	}
	if req.DiscountPct.IsNegative() || req.DiscountPct.GreaterThan(maxDiscount) {
		return domainErrors.Validationf("discount_pct must be within [0, 100], got %s", req.DiscountPct)
	}
	return nil
}
