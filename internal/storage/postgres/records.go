package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
)

const recordColumns = `external_order_id, pharmacy_order_id, pharmacy_id, COALESCE(client_id, ''), discount_pct::text, items,
                       subtotal::text, discount::text, total::text, confirmed_at, source`

// --- RecordRepository implementation ---

func (r *recordRepository) Insert(ctx context.Context, record *model.OrderRecord) error {
	const query = `INSERT INTO order_records (external_order_id, pharmacy_order_id, pharmacy_id, client_id, discount_pct, items,
                                              subtotal, discount, total, confirmed_at, source)
                   VALUES ($1, $2, $3, NULLIF($4, ''), $5::numeric, $6, $7::numeric, $8::numeric, $9::numeric, $10, $11)`
	items, err := json.Marshal(record.Items)
	if err != nil {
		return errors.Wrap(err, "encode record items")
	}
	_, err = r.storage.pool.Exec(ctx, query,
		record.ExternalOrderID, record.PharmacyOrderID, record.PharmacyID, record.ClientID,
		record.DiscountPct.String(), items,
		record.Subtotal.String(), record.Discount.String(), record.Total.String(),
		record.ConfirmedAt, record.Source,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *recordRepository) GetByExternalID(ctx context.Context, externalID string) (*model.OrderRecord, error) {
	const query = `SELECT ` + recordColumns + ` FROM order_records WHERE external_order_id = $1`
	record, err := scanRecord(r.storage.pool.QueryRow(ctx, query, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *recordRepository) List(ctx context.Context, filter model.RecordFilter) ([]model.OrderRecord, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.PharmacyID != "" {
		args = append(args, filter.PharmacyID)
		conditions = append(conditions, fmt.Sprintf("pharmacy_id = $%d", len(args)))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", len(args)))
	}

	query := `SELECT ` + recordColumns + ` FROM order_records`
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

	result := []model.OrderRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanRecord(row pgx.Row) (model.OrderRecord, error) {
	var (
		rec                                    model.OrderRecord
		items                                  []byte
		discountPct, subtotal, discount, total string
	)
	if err := row.Scan(&rec.ExternalOrderID, &rec.PharmacyOrderID, &rec.PharmacyID, &rec.ClientID, &discountPct, &items,
		&subtotal, &discount, &total, &rec.ConfirmedAt, &rec.Source); err != nil {
		return model.OrderRecord{}, err
	}
	if err := json.Unmarshal(items, &rec.Items); err != nil {
		return model.OrderRecord{}, errors.Wrapf(err, "decode items of record %s", rec.ExternalOrderID)
	}
	if err := parseDecimals(
		decimalField{discountPct, &rec.DiscountPct},
		decimalField{subtotal, &rec.Subtotal},
		decimalField{discount, &rec.Discount},
		decimalField{total, &rec.Total},
	); err != nil {
		return model.OrderRecord{}, errors.Wrapf(err, "record %s", rec.ExternalOrderID)
	}
	rec.ConfirmedAt = rec.ConfirmedAt.UTC()
	return rec, nil
}
