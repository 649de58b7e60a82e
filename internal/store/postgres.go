package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mamba-foods/stall-api/internal/order"
)

// Human-facing order numbers restart each day. Concurrent create
// transactions can read the same MAX and collide on the unique constraint;
// retry a few times like any sequence-by-max scheme.
const maxOrderNumberRetries = 3

// Postgres implements Store on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const orderColumns = `id, order_number, customer_id, items, total, status, payment_ref, created_at, updated_at`

func (p *Postgres) CreateOrder(ctx context.Context, o order.Order) (order.Order, error) {
	var lastErr error
	for attempt := 0; attempt < maxOrderNumberRetries; attempt++ {
		created, err := p.createOrderTx(ctx, o)
		if err == nil {
			return created, nil
		}
		if isDaySeqConflict(err) {
			lastErr = err
			continue
		}
		return order.Order{}, err
	}
	return order.Order{}, lastErr
}

func (p *Postgres) createOrderTx(ctx context.Context, o order.Order) (order.Order, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return order.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var seq int32
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(day_seq), 0) + 1 FROM orders WHERE order_day = CURRENT_DATE`,
	).Scan(&seq)
	if err != nil {
		return order.Order{}, fmt.Errorf("next order number: %w", err)
	}
	number := fmt.Sprintf("#%03d", seq)

	items, err := json.Marshal(o.Items)
	if err != nil {
		return order.Order{}, fmt.Errorf("marshal items: %w", err)
	}

	row := tx.QueryRow(ctx,
		`INSERT INTO orders (day_seq, order_number, customer_id, items, total, status, payment_ref)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+orderColumns,
		seq, number, o.CustomerID, items, decimalToNumeric(o.Total), string(order.StatusNew), o.PaymentRef,
	)
	created, err := scanOrder(row)
	if err != nil {
		return order.Order{}, fmt.Errorf("insert order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return order.Order{}, fmt.Errorf("commit tx: %w", err)
	}
	return created, nil
}

func (p *Postgres) GetOrder(ctx context.Context, id uuid.UUID) (order.Order, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, ErrNotFound
		}
		return order.Order{}, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (p *Postgres) LatestOrderByCustomer(ctx context.Context, customerID uuid.UUID) (order.Order, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1
		 ORDER BY created_at DESC LIMIT 1`, customerID)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, ErrNotFound
		}
		return order.Order{}, fmt.Errorf("latest order: %w", err)
	}
	return o, nil
}

func (p *Postgres) ListOrders(ctx context.Context) ([]order.Order, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (p *Postgres) UpdateStatus(ctx context.Context, id uuid.UUID, s order.Status) (order.Order, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1
		 RETURNING `+orderColumns,
		id, string(s))
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, ErrNotFound
		}
		return order.Order{}, fmt.Errorf("update status: %w", err)
	}
	return o, nil
}

// --- Helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (order.Order, error) {
	var (
		o      order.Order
		items  []byte
		total  pgtype.Numeric
		status string
	)
	err := row.Scan(&o.ID, &o.Number, &o.CustomerID, &items, &total, &status,
		&o.PaymentRef, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return order.Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return order.Order{}, fmt.Errorf("unmarshal items: %w", err)
	}
	o.Total = numericToDecimal(total)
	o.Status = order.Status(status)
	return o, nil
}

func isDaySeqConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "orders_order_day_day_seq_key"
	}
	return false
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
