package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/pharmanet/internal/domain/model"
)

// OrderItemRequest is one requested line.
type OrderItemRequest struct {
	Code     string `json:"package_ndc_11"`
	Quantity int64  `json:"quantity"`
}

// OrderRequest is the body of a pharmacy order commit.
type OrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	DiscountPct     decimal.Decimal    `json:"discount_pct"`
	ExternalOrderID string             `json:"external_order_id,omitempty"`
	ClientID        string             `json:"client_id,omitempty"`
}

// NewOrderRequest converts a domain request into its wire form.
func NewOrderRequest(req model.OrderRequest) OrderRequest {
	items := make([]OrderItemRequest, 0, len(req.Lines))
	for _, l := range req.Lines {
		items = append(items, OrderItemRequest{Code: l.Code, Quantity: l.Quantity})
	}
	return OrderRequest{
		Items:           items,
		DiscountPct:     req.DiscountPct,
		ExternalOrderID: req.ExternalRef,
		ClientID:        req.ClientID,
	}
}

// Model converts the wire request into a domain request.
func (r OrderRequest) Model() model.OrderRequest {
	lines := make([]model.OrderLine, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, model.OrderLine{Code: item.Code, Quantity: item.Quantity})
	}
	return model.OrderRequest{
		Lines:       lines,
		DiscountPct: r.DiscountPct,
		ExternalRef: r.ExternalOrderID,
		ClientID:    r.ClientID,
	}
}

// RoutedOrderRequest is the body of an orchestrator order.
type RoutedOrderRequest struct {
	PharmacyID string `json:"pharmacy_id"`
	OrderRequest
}

// Model converts the wire request into a routed domain order.
func (r RoutedOrderRequest) Model() model.RoutedOrder {
	return model.RoutedOrder{PharmacyID: r.PharmacyID, OrderRequest: r.OrderRequest.Model()}
}

// OrderResponse is a committed pharmacy order.
type OrderResponse struct {
	OrderID         string             `json:"order_id"`
	ConfirmedAt     time.Time          `json:"confirmed_at"`
	Items           []LineItemResponse `json:"items"`
	Subtotal        Money              `json:"subtotal"`
	DiscountPct     decimal.Decimal    `json:"discount_pct"`
	Discount        Money              `json:"discount"`
	Total           Money              `json:"total"`
	ExternalOrderID string             `json:"external_order_id,omitempty"`
	ClientID        string             `json:"client_id,omitempty"`
}

// NewOrderResponse converts a domain order.
func NewOrderResponse(o model.Order) OrderResponse {
	return OrderResponse{
		OrderID:         o.ID,
		ConfirmedAt:     o.ConfirmedAt,
		Items:           NewLineItems(o.Items),
		Subtotal:        NewMoney(o.Subtotal),
		DiscountPct:     o.DiscountPct,
		Discount:        NewMoney(o.Discount),
		Total:           NewMoney(o.Total),
		ExternalOrderID: o.ExternalRef,
		ClientID:        o.ClientID,
	}
}

// NewOrderList converts orders keeping their order.
func NewOrderList(orders []model.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, NewOrderResponse(o))
	}
	return result
}

// Model converts the response into a domain order owned by tenant.
func (r OrderResponse) Model(tenant string) model.Order {
	return model.Order{
		ID:          r.OrderID,
		Tenant:      tenant,
		ConfirmedAt: r.ConfirmedAt,
		Items:       lineItemModels(r.Items),
		Subtotal:    r.Subtotal.Decimal,
		DiscountPct: r.DiscountPct,
		Discount:    r.Discount.Decimal,
		Total:       r.Total.Decimal,
		ExternalRef: r.ExternalOrderID,
		ClientID:    r.ClientID,
	}
}

// RecordResponse is the orchestrator's record of a confirmed order.
type RecordResponse struct {
	ExternalOrderID string             `json:"external_order_id"`
	PharmacyOrderID string             `json:"pharmacy_order_id"`
	PharmacyID      string             `json:"pharmacy_id"`
	ClientID        string             `json:"client_id,omitempty"`
	DiscountPct     decimal.Decimal    `json:"discount_pct"`
	Items           []LineItemResponse `json:"items"`
	Subtotal        Money              `json:"subtotal"`
	Discount        Money              `json:"discount"`
	Total           Money              `json:"total"`
	ConfirmedAt     time.Time          `json:"confirmed_at"`
	Source          string             `json:"source"`
}

// NewRecordResponse converts a domain record.
func NewRecordResponse(r model.OrderRecord) RecordResponse {
	return RecordResponse{
		ExternalOrderID: r.ExternalOrderID,
		PharmacyOrderID: r.PharmacyOrderID,
		PharmacyID:      r.PharmacyID,
		ClientID:        r.ClientID,
		DiscountPct:     r.DiscountPct,
		Items:           NewLineItems(r.Items),
		Subtotal:        NewMoney(r.Subtotal),
		Discount:        NewMoney(r.Discount),
		Total:           NewMoney(r.Total),
		ConfirmedAt:     r.ConfirmedAt,
		Source:          r.Source,
	}
}

// NewRecordList converts records keeping their order.
func NewRecordList(records []model.OrderRecord) []RecordResponse {
	result := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, NewRecordResponse(r))
	}
	return result
}
