package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("order not found")
)

// Repository is the single source of truth for persisted orders. Nothing
// above it touches stored state directly.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	UpdateFields(ctx context.Context, id string, p Patch) (*Order, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const orderColumns = `id, owner_id, customer_name, email, phone,
    street, city, state, postal_code, country,
    total_amount::text, payment_method, payment_status, status, cancellable,
    created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO orders (id, owner_id, customer_name, email, phone,
      street, city, state, postal_code, country,
      total_amount, payment_method, payment_status, status, cancellable,
      created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
  `, o.ID, o.OwnerID, o.Customer.Name, o.Customer.Email, o.Customer.Phone,
		o.Customer.Address.Street, o.Customer.Address.City, o.Customer.Address.State,
		o.Customer.Address.PostalCode, o.Customer.Address.Country,
		o.TotalAmount.String(), o.PaymentMethod, o.PaymentStatus, o.Status, o.Cancellable,
		o.CreatedAt, o.UpdatedAt); err != nil {
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (id, order_id, product_id, name, unit_price, quantity, size, image_url)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `, it.ID, o.ID, it.ProductID, it.Name, it.UnitPrice.String(), it.Quantity, it.Size, it.ImageURL); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE owner_id=$1 ORDER BY created_at DESC`, ownerID)
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *PGRepo) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	var ids []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return []Order{}, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

func (r *PGRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE owner_id=$1`, ownerID).Scan(&n)
	return n, err
}

// UpdateFields applies a partial update as a single-row atomic write and
// returns the updated order.
func (r *PGRepo) UpdateFields(ctx context.Context, id string, p Patch) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := []string{"updated_at = NOW()"}
	args := []any{id}
	if p.Status != nil {
		args = append(args, *p.Status)
		set = append(set, fmt.Sprintf("status = $%d", len(args)))
	}
	if p.PaymentStatus != nil {
		args = append(args, *p.PaymentStatus)
		set = append(set, fmt.Sprintf("payment_status = $%d", len(args)))
	}
	if p.Cancellable != nil {
		args = append(args, *p.Cancellable)
		set = append(set, fmt.Sprintf("cancellable = $%d", len(args)))
	}

	row := r.db.QueryRow(ctx, `
    UPDATE orders SET `+strings.Join(set, ", ")+`
    WHERE id = $1
    RETURNING `+orderColumns, args...)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *PGRepo) loadItems(ctx context.Context, orderIDs []string) (map[string][]Item, error) {
	rows, err := r.db.Query(ctx, `
    SELECT id, order_id, product_id, name, unit_price::text, quantity, size, image_url
    FROM order_items WHERE order_id = ANY($1)
  `, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]Item, len(orderIDs))
	for rows.Next() {
		var it Item
		var price string
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &price, &it.Quantity, &it.Size, &it.ImageURL); err != nil {
			return nil, err
		}
		it.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var total string
	if err := row.Scan(&o.ID, &o.OwnerID, &o.Customer.Name, &o.Customer.Email, &o.Customer.Phone,
		&o.Customer.Address.Street, &o.Customer.Address.City, &o.Customer.Address.State,
		&o.Customer.Address.PostalCode, &o.Customer.Address.Country,
		&total, &o.PaymentMethod, &o.PaymentStatus, &o.Status, &o.Cancellable,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	o.TotalAmount, err = decimal.NewFromString(total)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
