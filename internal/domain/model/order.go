package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is a requested product and quantity.
type OrderLine struct {
	Code     string
	Quantity int64
}

// OrderRequest is the input of an order commit.
type OrderRequest struct {
	Lines       []OrderLine
	DiscountPct decimal.Decimal
	ExternalRef string
	ClientID    string
}

// LineItem is a committed line with the price snapshot taken at commit time.
type LineItem struct {
	Code        string          `json:"package_ndc_11"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Description string          `json:"descripcion,omitempty"`
	GenericName string          `json:"generic_name,omitempty"`
}

// Order is a committed pharmacy order. Orders are never updated once stored.
type Order struct {
	ID          string
	Tenant      string
	ConfirmedAt time.Time
	Items       []LineItem
	Subtotal    decimal.Decimal
	DiscountPct decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
	ExternalRef string
	ClientID    string
}

// OrderFilter narrows and pages pharmacy order listings.
type OrderFilter struct {
	Since    *time.Time
	ClientID string
	Limit    int
	Offset   int
}
