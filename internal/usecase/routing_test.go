package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
	"github.com/polkiloo/pharmanet/internal/pkg/clock"
	"github.com/polkiloo/pharmanet/internal/test"
)

var registry = []model.Pharmacy{
	{ID: "farma_001", BaseURL: "http://farma-001"},
	{ID: "farma_002", BaseURL: "http://farma-002"},
	{ID: "farma_003", BaseURL: "http://farma-003"},
}

func routedOrder(pharmacyID string) model.RoutedOrder {
	return model.RoutedOrder{
		PharmacyID: pharmacyID,
		OrderRequest: model.OrderRequest{
			Lines:       lines(codeA, 2),
			DiscountPct: decimal.NewFromInt(5),
			ExternalRef: "FAC-001-00001",
			ClientID:    "CLI-042",
		},
	}
}

func TestRouteOrderUnknownPharmacyMakesNoCall(t *testing.T) {
	gateway := &test.PharmacyGatewayStub{Registry: registry}
	uc := NewRoutingUseCase(gateway, &test.RecordRepositoryStub{}, clock.NewRealClock(), discardLogger())

	_, err := uc.RouteOrder(context.Background(), routedOrder("farma_999"))
	assert.True(t, errors.Is(err, domainErrors.ErrNotFound))
	assert.Zero(t, gateway.CommitCalls.Load())
}

func TestRouteOrderValidation(t *testing.T) {
	gateway := &test.PharmacyGatewayStub{Registry: registry}
	uc := NewRoutingUseCase(gateway, &test.RecordRepositoryStub{}, clock.NewRealClock(), discardLogger())

	noPharmacy := routedOrder("")
	noRef := routedOrder("farma_001")
	noRef.ExternalRef = " "
	noLines := routedOrder("farma_001")
	noLines.Lines = nil

	for _, req := range []model.RoutedOrder{noPharmacy, noRef, noLines} {
		_, err := uc.RouteOrder(context.Background(), req)
		assert.True(t, errors.Is(err, domainErrors.ErrValidation), "%+v: %v", req, err)
	}
	assert.Zero(t, gateway.CommitCalls.Load())
}

func TestRouteOrderRecordsConfirmedOrder(t *testing.T) {
	confirmed := time.Date(2025, 2, 2, 10, 0, 0, 0, time.UTC)
	gateway := &test.PharmacyGatewayStub{
		Registry: registry,
		CommitOrderFn: func(_ context.Context, id string, req model.OrderRequest) (*model.Order, error) {
			assert.Equal(t, "farma_002", id)
			assert.Equal(t, "FAC-001-00001", req.ExternalRef)
			return &model.Order{
				ID:          "ph-order-9",
				ConfirmedAt: confirmed,
				Items:       []model.LineItem{{Code: codeA, Quantity: 2, UnitPrice: dec("4.00"), LineTotal: dec("8.00")}},
				Subtotal:    dec("8.00"),
				DiscountPct: req.DiscountPct,
				Discount:    dec("0.40"),
				Total:       dec("7.60"),
			}, nil
		},
	}
	records := &test.RecordRepositoryStub{}
	uc := NewRoutingUseCase(gateway, records, clock.NewRealClock(), discardLogger())

	record, err := uc.RouteOrder(context.Background(), routedOrder("farma_002"))
	require.NoError(t, err)
	assert.Equal(t, "FAC-001-00001", record.ExternalOrderID)
	assert.Equal(t, "ph-order-9", record.PharmacyOrderID)
	assert.Equal(t, "farma_002", record.PharmacyID)
	assert.Equal(t, "CLI-042", record.ClientID)
	assert.Equal(t, confirmed, record.ConfirmedAt)
	assert.Equal(t, model.RecordSource, record.Source)
	assert.True(t, record.Total.Equal(dec("7.60")))
	require.Len(t, records.Inserted, 1)
	assert.Equal(t, *record, records.Inserted[0])
}

func TestRouteOrderFallsBackToLocalConfirmationTime(t *testing.T) {
	now := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	gateway := &test.PharmacyGatewayStub{Registry: registry}
	uc := NewRoutingUseCase(gateway, &test.RecordRepositoryStub{}, clock.NewFixedClock(now), discardLogger())

	record, err := uc.RouteOrder(context.Background(), routedOrder("farma_001"))
	require.NoError(t, err)
	assert.Equal(t, now, record.ConfirmedAt)
}

func TestRouteOrderPassesUpstreamErrorThrough(t *testing.T) {
	upstream := errors.New("pharmacy said 409")
	gateway := &test.PharmacyGatewayStub{
		Registry:      registry,
		CommitOrderFn: func(context.Context, string, model.OrderRequest) (*model.Order, error) { return nil, upstream },
	}
	records := &test.RecordRepositoryStub{}
	uc := NewRoutingUseCase(gateway, records, clock.NewRealClock(), discardLogger())

	_, err := uc.RouteOrder(context.Background(), routedOrder("farma_001"))
	assert.Same(t, upstream, err)
	assert.Empty(t, records.Inserted)
}

func TestRouteOrderRecordFailureIsBestEffort(t *testing.T) {
	gateway := &test.PharmacyGatewayStub{Registry: registry}
	records := &test.RecordRepositoryStub{InsertFn: func(context.Context, *model.OrderRecord) error {
		return errors.New("db down")
	}}
	uc := NewRoutingUseCase(gateway, records, clock.NewRealClock(), discardLogger())

	record, err := uc.RouteOrder(context.Background(), routedOrder("farma_001"))
	require.NoError(t, err)
	assert.Equal(t, "order-1", record.PharmacyOrderID)
	assert.EqualValues(t, 1, gateway.CommitCalls.Load())
}

func TestRecordQueries(t *testing.T) {
	records := &test.RecordRepositoryStub{ListFn: func(_ context.Context, f model.RecordFilter) ([]model.OrderRecord, error) {
		assert.Equal(t, defaultRecordsLimit, f.Limit)
		return []model.OrderRecord{{ExternalOrderID: "a"}}, nil
	}}
	uc := NewRoutingUseCase(&test.PharmacyGatewayStub{Registry: registry}, records, clock.NewRealClock(), discardLogger())

	list, err := uc.Records(context.Background(), model.RecordFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.Records(context.Background(), model.RecordFilter{Limit: -2})
	assert.True(t, errors.Is(err, domainErrors.ErrValidation))

	_, err = uc.Record(context.Background(), "missing")
	assert.True(t, errors.Is(err, domainErrors.ErrNotFound))

	assert.Equal(t, registry, uc.Pharmacies())
}
