package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSource tags records written by the orchestrator.
const RecordSource = "orchestrator"

// RoutedOrder is an order addressed to one pharmacy of the network.
type RoutedOrder struct {
	PharmacyID string
	OrderRequest
}

// OrderRecord is the orchestrator's copy of an order confirmed by a pharmacy.
type OrderRecord struct {
	ExternalOrderID string
	PharmacyOrderID string
	PharmacyID      string
	ClientID        string
	DiscountPct     decimal.Decimal
	Items           []LineItem
	Subtotal        decimal.Decimal
	Discount        decimal.Decimal
	Total           decimal.Decimal
	ConfirmedAt     time.Time
	Source          string
}

// RecordFilter narrows and pages orchestrator record listings.
type RecordFilter struct {
	PharmacyID string
	ClientID   string
	Limit      int
	Offset     int
}
