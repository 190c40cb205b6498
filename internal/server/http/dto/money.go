package dto

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/pharmanet/internal/domain/model"
)

// Money is an amount rendered with at least two decimals, so 30 goes out as
// "30.00" and a NUMERIC(14,4) read of 10.0000 as "10.00". Extra precision of
// unit prices is kept.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MarshalJSON renders the amount as a quoted string.
func (m Money) MarshalJSON() ([]byte, error) {
	s := m.Decimal.String()
	if m.Decimal.Round(2).Equal(m.Decimal) {
		s = m.Decimal.StringFixed(2)
	}
	return []byte(`"` + s + `"`), nil
}

// LineItemResponse is a priced order line.
type LineItemResponse struct {
	Code        string `json:"package_ndc_11"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   Money  `json:"unit_price"`
	LineTotal   Money  `json:"line_total"`
	Description string `json:"descripcion,omitempty"`
	GenericName string `json:"generic_name,omitempty"`
}

// NewLineItems converts priced lines keeping their order.
func NewLineItems(items []model.LineItem) []LineItemResponse {
	result := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, LineItemResponse{
			Code:        item.Code,
			Quantity:    item.Quantity,
			UnitPrice:   NewMoney(item.UnitPrice),
			LineTotal:   NewMoney(item.LineTotal),
			Description: item.Description,
			GenericName: item.GenericName,
		})
	}
	return result
}

func lineItemModels(items []LineItemResponse) []model.LineItem {
	result := make([]model.LineItem, 0, len(items))
	for _, item := range items {
		result = append(result, model.LineItem{
			Code:        item.Code,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Decimal,
			LineTotal:   item.LineTotal.Decimal,
			Description: item.Description,
			GenericName: item.GenericName,
		})
	}
	return result
}
