package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
)

const productColumns = `code, description, generic_name, manufacturer, selling_size, price::text, stock, updated_at`

// --- StockLedger implementation ---

// Decrement relies on the row lock taken by UPDATE: the stock check in the
// WHERE clause is re-evaluated after any concurrent writer commits.
func (l *ledger) Decrement(ctx context.Context, code string, qty int64) (bool, error) {
	const query = `UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE code = $2 AND stock >= $1`
	tag, err := l.storage.pool.Exec(ctx, query, qty, code)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (l *ledger) Increment(ctx context.Context, code string, qty int64) error {
	const query = `UPDATE products SET stock = stock + $1, updated_at = NOW() WHERE code = $2`
	tag, err := l.storage.pool.Exec(ctx, query, qty, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (l *ledger) Available(ctx context.Context, code string) (int64, error) {
	const query = `SELECT stock FROM products WHERE code = $1`
	var stock int64
	if err := l.storage.pool.QueryRow(ctx, query, code).Scan(&stock); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return stock, nil
}

// --- ProductRepository implementation ---

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p     model.Product
		price string
	)
	if err := row.Scan(&p.Code, &p.Description, &p.GenericName, &p.Manufacturer, &p.SellingSize, &price, &p.Stock, &p.UpdatedAt); err != nil {
		return model.Product{}, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return model.Product{}, errors.Wrapf(err, "parse price of %s", p.Code)
	}
	p.Price = parsed
	return p, nil
}

func (r *productRepository) FindByCodes(ctx context.Context, codes []string) (map[string]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE code = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, codes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[string]model.Product, len(codes))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		found[p.Code] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return found, nil
}

func (r *productRepository) Get(ctx context.Context, code string) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE code = $1`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// likeEscaper makes a search term match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Query != "" {
		args = append(args, "%"+likeEscaper.Replace(filter.Query)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(`(description ILIKE $%d ESCAPE '\' OR generic_name ILIKE $%d ESCAPE '\' OR code LIKE $%d ESCAPE '\')`, n, n, n))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		conditions = append(conditions, fmt.Sprintf("updated_at >= $%d", len(args)))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY code`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Upsert inserts products or refreshes their attributes. The code column is
// the conflict target and is never rewritten.
func (r *productRepository) Upsert(ctx context.Context, products []model.Product) error {
	const query = `INSERT INTO products (code, description, generic_name, manufacturer, selling_size, price, stock, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8)
                   ON CONFLICT (code) DO UPDATE SET
                       description = EXCLUDED.description,
                       generic_name = EXCLUDED.generic_name,
                       manufacturer = EXCLUDED.manufacturer,
                       selling_size = EXCLUDED.selling_size,
                       price = EXCLUDED.price,
                       stock = EXCLUDED.stock,
                       updated_at = EXCLUDED.updated_at`
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, p := range products {
			updatedAt := p.UpdatedAt
			if updatedAt.IsZero() {
				updatedAt = time.Now().UTC()
			}
			if _, err := tx.Exec(ctx, query, p.Code, p.Description, p.GenericName, p.Manufacturer, p.SellingSize, p.Price.String(), p.Stock, updatedAt); err != nil {
				return errors.Wrapf(err, "upsert product %s", p.Code)
			}
		}
		return nil
	})
}
