//go:build integration

package postgres

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/polkiloo/pharmanet/internal/domain/model"
)

const (
	testUser     = "test"
	testPassword = "testpass"
)

func startPostgres(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	dsn := func(host string, port nat.Port) string {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", testUser, testPassword, host, port.Port())
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Cmd:        []string{"postgres", "-c", "fsync=off"},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", dsn).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		_ = container.Terminate(stopCtx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	return dsn(host, port)
}

func TestLedgerAgainstPostgres(t *testing.T) {
	dsn := startPostgres(t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ctx := context.Background()

	st, err := New(ctx, dsn, PharmacySchema, logger)
	require.NoError(t, err)
	t.Cleanup(st.Close)

	require.NoError(t, st.Products().Upsert(ctx, []model.Product{
		{Code: codeA, Description: "Amoxicillin", Price: decimal.RequireFromString("12.50"), Stock: 5},
	}))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := st.Ledger().Decrement(ctx, codeA, 3)
			require.NoError(t, err)
			if ok {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, applied, "exactly one concurrent decrement wins")
	left, err := st.Ledger().Available(ctx, codeA)
	require.NoError(t, err)
	require.EqualValues(t, 2, left)

	require.NoError(t, st.Ledger().Increment(ctx, codeA, 3))
	left, err = st.Ledger().Available(ctx, codeA)
	require.NoError(t, err)
	require.EqualValues(t, 5, left)

	p, err := st.Products().Get(ctx, codeA)
	require.NoError(t, err)
	require.True(t, p.Price.Equal(decimal.RequireFromString("12.5")))

	matched, err := st.Products().List(ctx, model.ProductFilter{Query: "_"})
	require.NoError(t, err)
	require.Empty(t, matched, "underscore is matched literally")
	matched, err = st.Products().List(ctx, model.ProductFilter{Query: "AMOX"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
}

func TestOrderJournalAgainstPostgres(t *testing.T) {
	dsn := startPostgres(t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ctx := context.Background()

	st, err := New(ctx, dsn, append(append([]string{}, PharmacySchema...), OrchestratorSchema...), logger)
	require.NoError(t, err)
	t.Cleanup(st.Close)

	order := sampleOrder()
	require.NoError(t, st.Orders().Insert(ctx, order))

	got, err := st.Orders().GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, got.Total.Equal(order.Total))
	require.Equal(t, order.ExternalRef, got.ExternalRef)

	list, err := st.Orders().List(ctx, model.OrderFilter{ClientID: "CLI-001", Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)

	record := &model.OrderRecord{
		ExternalOrderID: order.ExternalRef,
		PharmacyOrderID: order.ID,
		PharmacyID:      "farma_001",
		DiscountPct:     order.DiscountPct,
		Items:           order.Items,
		Subtotal:        order.Subtotal,
		Discount:        order.Discount,
		Total:           order.Total,
		ConfirmedAt:     order.ConfirmedAt,
		Source:          model.RecordSource,
	}
	require.NoError(t, st.Records().Insert(ctx, record))

	fetched, err := st.Records().GetByExternalID(ctx, record.ExternalOrderID)
	require.NoError(t, err)
	require.Equal(t, "", fetched.ClientID)
	require.Equal(t, model.RecordSource, fetched.Source)
}
