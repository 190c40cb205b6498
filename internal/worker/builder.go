package worker

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/pharmanet/internal/server/http/dto"
)

// Intent is a built order plus what is needed to update the mirror on success.
type Intent struct {
	PharmacyID string
	Index      int
	Quantity   int64
	Request    dto.RoutedOrderRequest
}

// Builder picks pharmacies, products and quantities for synthetic orders.
type Builder struct {
	rnd         *rand.Rand
	pharmacies  []string
	maxQty      int64
	clientsMax  int
	discountPct decimal.Decimal
	seq         int
}

// NewBuilder creates a builder. seqStart is the last sequence number already used.
func NewBuilder(rnd *rand.Rand, pharmacies []string, maxQty int64, clientsMax int, discountPct decimal.Decimal, seqStart int) *Builder {
	if maxQty < 1 {
		maxQty = 1
	}
	if clientsMax < 1 {
		clientsMax = 1
	}
	return &Builder{
		rnd:         rnd,
		pharmacies:  append([]string(nil), pharmacies...),
		maxQty:      maxQty,
		clientsMax:  clientsMax,
		discountPct: discountPct,
		seq:         seqStart,
	}
}

// Build draws the next order. It reports false when the drawn pharmacy has
// no mirrored product covering the drawn quantity.
func (b *Builder) Build(mirror *StockMirror) (Intent, bool) {
	if len(b.pharmacies) == 0 {
		return Intent{}, false
	}
	pharmacyID := b.pharmacies[b.rnd.IntN(len(b.pharmacies))]
	qty := 1 + b.rnd.Int64N(b.maxQty)

	candidates := mirror.Candidates(pharmacyID, qty)
	if len(candidates) == 0 {
		return Intent{}, false
	}
	idx := candidates[b.rnd.IntN(len(candidates))]
	entry := mirror.Entry(pharmacyID, idx)

	b.seq++
	req := dto.RoutedOrderRequest{
		PharmacyID: pharmacyID,
		OrderRequest: dto.OrderRequest{
			Items:           []dto.OrderItemRequest{{Code: entry.Code, Quantity: qty}},
			DiscountPct:     b.discountPct,
			ExternalOrderID: fmt.Sprintf("FAC-%s-%05d", orderTag(pharmacyID), b.seq),
			ClientID:        fmt.Sprintf("CLI-%03d", 1+b.rnd.IntN(b.clientsMax)),
		},
	}
	return Intent{PharmacyID: pharmacyID, Index: idx, Quantity: qty, Request: req}, true
}

// orderTag derives the pharmacy part of an external order id: the trailing
// digits of the id padded to three, or the upper-cased id when it has none.
func orderTag(pharmacyID string) string {
	end := len(pharmacyID)
	start := end
	for start > 0 && pharmacyID[start-1] >= '0' && pharmacyID[start-1] <= '9' {
		start--
	}
	if start == end {
		return strings.ToUpper(pharmacyID)
	}
	digits := pharmacyID[start:end]
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	return digits
}
