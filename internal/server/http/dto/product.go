package dto

import (
	"time"

	"github.com/polkiloo/pharmanet/internal/domain/model"
)

// ProductResponse is a catalog entry as served by a pharmacy.
type ProductResponse struct {
	Code         string    `json:"package_ndc_11"`
	Description  string    `json:"descripcion"`
	GenericName  string    `json:"generic_name"`
	Manufacturer string    `json:"manufacturer_name"`
	SellingSize  *float64  `json:"selling_size"`
	Price        Money     `json:"price"`
	Stock        int64     `json:"stock"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewProductResponse converts a domain product.
func NewProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		Code:         p.Code,
		Description:  p.Description,
		GenericName:  p.GenericName,
		Manufacturer: p.Manufacturer,
		SellingSize:  p.SellingSize,
		Price:        NewMoney(p.Price),
		Stock:        p.Stock,
		UpdatedAt:    p.UpdatedAt,
	}
}

// NewProductList converts products keeping their order.
func NewProductList(products []model.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		result = append(result, NewProductResponse(p))
	}
	return result
}

// Model converts the response back into a domain product.
func (r ProductResponse) Model() model.Product {
	return model.Product{
		Code:         r.Code,
		Description:  r.Description,
		GenericName:  r.GenericName,
		Manufacturer: r.Manufacturer,
		SellingSize:  r.SellingSize,
		Price:        r.Price.Decimal,
		Stock:        r.Stock,
		UpdatedAt:    r.UpdatedAt,
	}
}

// CatalogItemResponse is a product of the aggregated catalog.
type CatalogItemResponse struct {
	PharmacyID string `json:"pharmacy_id"`
	ProductResponse
}

// CatalogPageResponse is one page of the aggregated catalog.
type CatalogPageResponse struct {
	Count  int                   `json:"count"`
	Total  int                   `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
	Items  []CatalogItemResponse `json:"items"`
}

// NewCatalogPageResponse converts an aggregated catalog page.
func NewCatalogPageResponse(page *model.CatalogPage) CatalogPageResponse {
	items := make([]CatalogItemResponse, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, CatalogItemResponse{PharmacyID: item.PharmacyID, ProductResponse: NewProductResponse(item.Product)})
	}
	return CatalogPageResponse{
		Count:  len(items),
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
		Items:  items,
	}
}

// PharmacyResponse is a registry entry.
type PharmacyResponse struct {
	ID      string `json:"pharmacy_id"`
	BaseURL string `json:"base_url"`
}

// NewPharmacyList converts the registry keeping its order.
func NewPharmacyList(pharmacies []model.Pharmacy) []PharmacyResponse {
	result := make([]PharmacyResponse, 0, len(pharmacies))
	for _, p := range pharmacies {
		result = append(result, PharmacyResponse{ID: p.ID, BaseURL: p.BaseURL})
	}
	return result
}
