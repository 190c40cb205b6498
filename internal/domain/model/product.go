package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry of one pharmacy together with its on-hand stock.
type Product struct {
	Code         string
	Description  string
	GenericName  string
	Manufacturer string
	SellingSize  *float64
	Price        decimal.Decimal
	Stock        int64
	UpdatedAt    time.Time
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Query string
	Since *time.Time
}

// CatalogItem is a product tagged with the pharmacy that offers it.
type CatalogItem struct {
	PharmacyID string
	Product
}

// CatalogFilter selects and pages the aggregated catalog.
type CatalogFilter struct {
	PharmacyID  string
	InStockOnly bool
	Limit       int
	Offset      int
}

// CatalogPage is one window of the aggregated catalog.
type CatalogPage struct {
	Total  int
	Limit  int
	Offset int
	Items  []CatalogItem
}
