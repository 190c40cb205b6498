package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
	"github.com/polkiloo/pharmanet/internal/domain/repository"
)

// Storage keeps catalog, orders and records in process memory. Every ledger
// operation holds the same mutex, so the conditional decrement is atomic.
type Storage struct {
	mu       sync.Mutex
	products map[string]model.Product
	orders   []model.Order
	records  []model.OrderRecord
	now      func() time.Time
}

// New creates empty in-memory storage.
func New() *Storage {
	return &Storage{
		products: make(map[string]model.Product),
		now:      time.Now,
	}
}

type ledger struct{ s *Storage }

type productRepository struct{ s *Storage }

type orderRepository struct{ s *Storage }

type recordRepository struct{ s *Storage }

func (s *Storage) Ledger() repository.StockLedger         { return &ledger{s: s} }
func (s *Storage) Products() repository.ProductRepository { return &productRepository{s: s} }
func (s *Storage) Orders() repository.OrderRepository     { return &orderRepository{s: s} }
func (s *Storage) Records() repository.RecordRepository   { return &recordRepository{s: s} }

// HealthCheck always succeeds.
func (s *Storage) HealthCheck(context.Context) error { return nil }

// --- StockLedger implementation ---

func (l *ledger) Decrement(ctx context.Context, code string, qty int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	p, ok := l.s.products[code]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	p.UpdatedAt = l.s.now().UTC()
	l.s.products[code] = p
	return true, nil
}

func (l *ledger) Increment(_ context.Context, code string, qty int64) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	p, ok := l.s.products[code]
	if !ok {
		return domainErrors.ErrNotFound
	}
	p.Stock += qty
	l.s.products[code] = p
	return nil
}

func (l *ledger) Available(_ context.Context, code string) (int64, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return l.s.products[code].Stock, nil
}

// --- ProductRepository implementation ---

func (r *productRepository) FindByCodes(_ context.Context, codes []string) (map[string]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	found := make(map[string]model.Product, len(codes))
	for _, code := range codes {
		if p, ok := r.s.products[code]; ok {
			found[code] = p
		}
	}
	return found, nil
}

func (r *productRepository) Get(_ context.Context, code string) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[code]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

func (r *productRepository) List(_ context.Context, filter model.ProductFilter) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	query := strings.ToLower(filter.Query)
	result := make([]model.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if filter.Since != nil && p.UpdatedAt.Before(*filter.Since) {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func matchesQuery(p model.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.GenericName), query) ||
		strings.Contains(p.Code, query)
}

func (r *productRepository) Upsert(_ context.Context, products []model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now().UTC()
	for _, p := range products {
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = now
		}
		r.s.products[p.Code] = p
	}
	return nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Insert(_ context.Context, order *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.orders {
		if existing.ID == order.ID {
			return domainErrors.ErrAlreadyExists
		}
	}
	r.s.orders = append(r.s.orders, *order)
	return nil
}

func (r *orderRepository) GetByID(_ context.Context, id string) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, o := range r.s.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *orderRepository) List(_ context.Context, filter model.OrderFilter) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]model.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		if filter.Since != nil && o.ConfirmedAt.Before(*filter.Since) {
			continue
		}
		if filter.ClientID != "" && o.ClientID != filter.ClientID {
			continue
		}
		matched = append(matched, o)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ConfirmedAt.After(matched[j].ConfirmedAt) })
	return window(matched, filter.Offset, filter.Limit), nil
}

// --- RecordRepository implementation ---

func (r *recordRepository) Insert(_ context.Context, record *model.OrderRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.records {
		if existing.ExternalOrderID == record.ExternalOrderID {
			return domainErrors.ErrAlreadyExists
		}
	}
	r.s.records = append(r.s.records, *record)
	return nil
}

func (r *recordRepository) GetByExternalID(_ context.Context, externalID string) (*model.OrderRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, rec := range r.s.records {
		if rec.ExternalOrderID == externalID {
			return &rec, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *recordRepository) List(_ context.Context, filter model.RecordFilter) ([]model.OrderRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]model.OrderRecord, 0, len(r.s.records))
	for _, rec := range r.s.records {
		if filter.PharmacyID != "" && rec.PharmacyID != filter.PharmacyID {
			continue
		}
		if filter.ClientID != "" && rec.ClientID != filter.ClientID {
			continue
		}
		matched = append(matched, rec)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ConfirmedAt.After(matched[j].ConfirmedAt) })
	return window(matched, filter.Offset, filter.Limit), nil
}

func window[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// Close is a no-op.
func (s *Storage) Close() {}
