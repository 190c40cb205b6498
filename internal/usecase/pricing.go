package usecase

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/pharmanet/internal/domain/model"
)

// Quote is the priced form of an order.
type Quote struct {
	Items    []model.LineItem
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// roundCents rounds the exact binary value of x to cents, ties to even. Each
// pricing step works on float64 values rounded this way, so totals agree to
// the cent with the pharmacy APIs already in the network.
func roundCents(x float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	return r
}

// money converts a value produced by roundCents into a two-place decimal.
func money(x float64) decimal.Decimal {
	return decimal.RequireFromString(strconv.FormatFloat(x, 'f', 2, 64))
}

// PriceOrder prices lines against the catalog snapshot in products. Every
// line code must be present in products.
func PriceOrder(lines []model.OrderLine, products map[string]model.Product, discountPct decimal.Decimal) Quote {
	q := Quote{Items: make([]model.LineItem, 0, len(lines))}
	subtotal := 0.0
	for _, line := range lines {
		p := products[line.Code]
		lineTotal := roundCents(p.Price.InexactFloat64() * float64(line.Quantity))
		subtotal = roundCents(subtotal + lineTotal)
		q.Items = append(q.Items, model.LineItem{
			Code:        line.Code,
			Quantity:    line.Quantity,
			UnitPrice:   p.Price,
			LineTotal:   money(lineTotal),
			Description: p.Description,
			GenericName: p.GenericName,
		})
	}
	discount := roundCents(subtotal * discountPct.InexactFloat64() / 100.0)
	total := roundCents(subtotal - discount)

	q.Subtotal = money(subtotal)
	q.Discount = money(discount)
	q.Total = money(total)
	return q
}
