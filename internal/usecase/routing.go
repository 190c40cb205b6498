package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
	"github.com/polkiloo/pharmanet/internal/domain/repository"
	"github.com/polkiloo/pharmanet/internal/pkg/clock"
)

const (
	defaultRecordsLimit = 50
	maxRecordsLimit     = 200
)

// PharmacyGateway reaches the pharmacies of the static registry.
type PharmacyGateway interface {
	Pharmacies() []model.Pharmacy
	Lookup(id string) (model.Pharmacy, bool)
	CommitOrder(ctx context.Context, pharmacyID string, req model.OrderRequest) (*model.Order, error)
	ListProducts(ctx context.Context, pharmacyID string) ([]model.Product, error)
}

// RoutingUseCase forwards orders to pharmacies and keeps the network-wide record.
type RoutingUseCase struct {
	gateway PharmacyGateway
	records repository.RecordRepository
	clock   clock.Clock
	logger  *slog.Logger
}

// NewRoutingUseCase constructs RoutingUseCase.
func NewRoutingUseCase(gateway PharmacyGateway, records repository.RecordRepository, clk clock.Clock, logger *slog.Logger) *RoutingUseCase {
	return &RoutingUseCase{gateway: gateway, records: records, clock: clk, logger: logger}
}

// RouteOrder forwards req to its pharmacy and records the confirmed order.
// Errors returned by the pharmacy are passed through unchanged. The record
// write is best effort: its failure is logged and never undoes the pharmacy order.
func (u *RoutingUseCase) RouteOrder(ctx context.Context, req model.RoutedOrder) (*model.OrderRecord, error) {
	if strings.TrimSpace(req.PharmacyID) == "" {
		return nil, domainErrors.Validationf("pharmacy_id is required")
	}
	if _, ok := u.gateway.Lookup(req.PharmacyID); !ok {
		return nil, errors.Mark(errors.Newf("pharmacy %q unknown", req.PharmacyID), domainErrors.ErrNotFound)
	}
	if strings.TrimSpace(req.ExternalRef) == "" {
		return nil, domainErrors.Validationf("external_order_id is required")
	}
	if len(req.Lines) == 0 {
		return nil, domainErrors.Validationf("order must contain at least one item")
	}

	order, err := u.gateway.CommitOrder(ctx, req.PharmacyID, req.OrderRequest)
	if err != nil {
		return nil, err
	}

	confirmedAt := order.ConfirmedAt
	if confirmedAt.IsZero() {
		confirmedAt = u.clock.Now().UTC()
	}
	record := &model.OrderRecord{
		ExternalOrderID: req.ExternalRef,
		PharmacyOrderID: order.ID,
		PharmacyID:      req.PharmacyID,
		ClientID:        req.ClientID,
		DiscountPct:     order.DiscountPct,
		Items:           order.Items,
		Subtotal:        order.Subtotal,
		Discount:        order.Discount,
		Total:           order.Total,
		ConfirmedAt:     confirmedAt,
		Source:          model.RecordSource,
	}

	if err := u.records.Insert(context.WithoutCancel(ctx), record); err != nil {
		u.logger.Error("persist order record failed",
			slog.String("external_order_id", record.ExternalOrderID),
			slog.String("pharmacy_id", record.PharmacyID),
			slog.String("pharmacy_order_id", record.PharmacyOrderID),
			slog.String("error", err.Error()),
		)
	}

	return record, nil
}

// Record returns the record for an external order id.
func (u *RoutingUseCase) Record(ctx context.Context, externalID string) (*model.OrderRecord, error) {
	return u.records.GetByExternalID(ctx, externalID)
}

// Records lists order records, newest first.
func (u *RoutingUseCase) Records(ctx context.Context, filter model.RecordFilter) ([]model.OrderRecord, error) {
	limit, err := normalizeLimit(filter.Limit, defaultRecordsLimit, maxRecordsLimit)
	if err != nil {
		return nil, err
	}
	if filter.Offset < 0 {
		return nil, domainErrors.Validationf("offset must be >= 0")
	}
	filter.Limit = limit
	return u.records.List(ctx, filter)
}

// Pharmacies returns the registry in its fixed order.
func (u *RoutingUseCase) Pharmacies() []model.Pharmacy {
	return u.gateway.Pharmacies()
}
