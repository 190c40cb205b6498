package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
	"github.com/polkiloo/pharmanet/internal/domain/repository"
	"github.com/polkiloo/pharmanet/internal/pkg/clock"
)

const (
	defaultOrdersLimit = 50
	maxOrdersLimit     = 200
)

// Tenant identifies the pharmacy served by this instance.
type Tenant string

// OrderUseCase commits orders against the stock ledger and serves order reads.
type OrderUseCase struct {
	tenant   Tenant
	ledger   repository.StockLedger
	products repository.ProductRepository
	orders   repository.OrderRepository
	clock    clock.Clock
	newID    func() string
	logger   *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(tenant Tenant, ledger repository.StockLedger, products repository.ProductRepository, orders repository.OrderRepository, clk clock.Clock, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{
		tenant:   tenant,
		ledger:   ledger,
		products: products,
		orders:   orders,
		clock:    clk,
		newID:    uuid.NewString,
		logger:   logger,
	}
}

// Commit validates req, decrements stock line by line and persists the order.
// Any failure after the first decrement restores every applied decrement.
func (u *OrderUseCase) Commit(ctx context.Context, req model.OrderRequest) (*model.Order, error) {
	if err := ValidateOrderRequest(req); err != nil {
		return nil, err
	}

	codes := distinctCodes(req.Lines)
	products, err := u.products.FindByCodes(ctx, codes)
	if err != nil {
		return nil, domainErrors.Internal(err, "load products")
	}
	if missing := missingCodes(codes, products); len(missing) > 0 {
		return nil, &domainErrors.MissingProductsError{Codes: missing}
	}

	var applied CompensationLog
	for _, line := range req.Lines {
		ok, err := u.ledger.Decrement(ctx, line.Code, line.Quantity)
		if err != nil {
			u.compensate(ctx, &applied)
			return nil, domainErrors.Internal(err, "decrement stock")
		}
		if !ok {
			available := u.availableAt(ctx, line.Code)
			u.compensate(ctx, &applied)
			u.logger.Info("stock conflict",
				slog.String("tenant", string(u.tenant)),
				slog.String("code", line.Code),
				slog.Int64("requested", line.Quantity),
				slog.Int64("available", available),
			)
			return nil, &domainErrors.StockConflictError{Code: line.Code, Requested: line.Quantity, Available: available}
		}
		applied.Record(line.Code, line.Quantity)
	}

	quote := PriceOrder(req.Lines, products, req.DiscountPct)
	order := &model.Order{
		ID:          u.newID(),
		Tenant:      string(u.tenant),
		ConfirmedAt: u.clock.Now().UTC(),
		Items:       quote.Items,
		Subtotal:    quote.Subtotal,
		DiscountPct: req.DiscountPct,
		Discount:    quote.Discount,
		Total:       quote.Total,
		ExternalRef: req.ExternalRef,
		ClientID:    req.ClientID,
	}

	// Commit point. There is no intent log: a crash between the decrements
	// above and this insert leaves stock reduced without an order.
	if err := u.orders.Insert(ctx, order); err != nil {
		u.compensate(ctx, &applied)
		u.logger.Error("persist order failed",
			slog.String("tenant", string(u.tenant)),
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		return nil, domainErrors.Internal(err, "persist order")
	}

	return order, nil
}

// Get returns a committed order by identifier.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// List returns committed orders, newest first.
func (u *OrderUseCase) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	limit, err := normalizeLimit(filter.Limit, defaultOrdersLimit, maxOrdersLimit)
	if err != nil {
		return nil, err
	}
	if filter.Offset < 0 {
		return nil, domainErrors.Validationf("offset must be >= 0")
	}
	filter.Limit = limit
	return u.orders.List(ctx, filter)
}

// compensate replays applied decrements on a context that outlives request cancellation.
func (u *OrderUseCase) compensate(ctx context.Context, applied *CompensationLog) {
	if applied.Len() == 0 {
		return
	}
	_ = applied.Replay(context.WithoutCancel(ctx), u.ledger, u.logger)
}

func (u *OrderUseCase) availableAt(ctx context.Context, code string) int64 {
	available, err := u.ledger.Available(context.WithoutCancel(ctx), code)
	if err != nil {
		u.logger.Warn("read available stock failed", slog.String("code", code), slog.String("error", err.Error()))
		return 0
	}
	return max(available, 0)
}

func distinctCodes(lines []model.OrderLine) []string {
	seen := make(map[string]struct{}, len(lines))
	codes := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.Code]; ok {
			continue
		}
		seen[line.Code] = struct{}{}
		codes = append(codes, line.Code)
	}
	return codes
}

func missingCodes(codes []string, found map[string]model.Product) []string {
	var missing []string
	for _, code := range codes {
		if _, ok := found[code]; !ok {
			missing = append(missing, code)
		}
	}
	return missing
}

func normalizeLimit(limit, def, maxLimit int) (int, error) {
	switch {
	case limit == 0:
		return def, nil
	case limit < 0 || limit > maxLimit:
		return 0, domainErrors.Validationf("limit must be within [1, %d], got %d", maxLimit, limit)
	default:
		return limit, nil
	}
}
