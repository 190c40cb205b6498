package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
)

const orderColumns = `id::text, tenant, confirmed_at, items, subtotal::text, discount_pct::text, discount::text, total::text,
                      COALESCE(external_order_id, ''), COALESCE(client_id, '')`

// --- OrderRepository implementation ---

func (r *orderRepository) Insert(ctx context.Context, order *model.Order) error {
	const query = `INSERT INTO orders (id, tenant, confirmed_at, items, subtotal, discount_pct, discount, total, external_order_id, client_id)
                   VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7::numeric, $8::numeric, NULLIF($9, ''), NULLIF($10, ''))`
	items, err := json.Marshal(order.Items)
	if err != nil {
		return errors.Wrap(err, "encode order items")
	}
	_, err = r.storage.pool.Exec(ctx, query,
		order.ID, order.Tenant, order.ConfirmedAt, items,
		order.Subtotal.String(), order.DiscountPct.String(), order.Discount.String(), order.Total.String(),
		order.ExternalRef, order.ClientID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domainErrors.ErrNotFound
	}
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Since != nil {
		args = append(args, *filter.Since)
		conditions = append(conditions, fmt.Sprintf("confirmed_at >= $%d", len(args)))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(` ORDER BY confirmed_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanOrder(row pgx.Row) (model.Order, error) {
	var (
		o                                      model.Order
		items                                  []byte
		subtotal, discountPct, discount, total string
	)
	if err := row.Scan(&o.ID, &o.Tenant, &o.ConfirmedAt, &items, &subtotal, &discountPct, &discount, &total, &o.ExternalRef, &o.ClientID); err != nil {
		return model.Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return model.Order{}, errors.Wrapf(err, "decode items of order %s", o.ID)
	}
	if err := parseDecimals(
		decimalField{subtotal, &o.Subtotal},
		decimalField{discountPct, &o.DiscountPct},
		decimalField{discount, &o.Discount},
		decimalField{total, &o.Total},
	); err != nil {
		return model.Order{}, errors.Wrapf(err, "order %s", o.ID)
	}
	o.ConfirmedAt = o.ConfirmedAt.UTC()
	return o, nil
}

type decimalField struct {
	raw string
	dst *decimal.Decimal
}

func parseDecimals(fields ...decimalField) error {
	for _, f := range fields {
		d, err := decimal.NewFromString(f.raw)
		if err != nil {
			return err
		}
		*f.dst = d
	}
	return nil
}
