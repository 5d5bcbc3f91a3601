package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	Insert(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByCustomer(ctx context.Context, mobileNumber string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, status string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Insert writes the order and its line snapshots in one transaction.
func (r *PGRepo) Insert(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO orders (id, name, mobile_number, address, google_maps_location,
                        total_order_value, status, ordered_date)
    VALUES ($1,$2,$3,$4,$5,$6::numeric,$7,$8)
  `, o.ID, o.Name, o.MobileNumber, o.Address, o.GoogleMapsLocation,
		o.TotalOrderValue, o.Status, o.OrderedDate); err != nil {
		return err
	}

	for _, ln := range o.Items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_lines (id, order_id, category_name, item_name, quantity,
                               price_per_unit, total_price)
      VALUES ($1,$2,$3,$4,$5,$6::numeric,$7::numeric)
    `, ln.ID, o.ID, ln.CategoryName, ln.ItemName, ln.Quantity,
			ln.PricePerUnit, ln.TotalPrice); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	err := r.db.QueryRow(ctx, `
    SELECT id, name, mobile_number, address, google_maps_location,
           total_order_value::text, status, ordered_date
    FROM orders WHERE id=$1
  `, id).Scan(&o.ID, &o.Name, &o.MobileNumber, &o.Address, &o.GoogleMapsLocation,
		&o.TotalOrderValue, &o.Status, &o.OrderedDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id '%s'", ErrNotFound, id)
		}
		return nil, err
	}
	lines, err := r.linesOf(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = lines
	return &o, nil
}

func (r *PGRepo) linesOf(ctx context.Context, orderID string) ([]Line, error) {
	rows, err := r.db.Query(ctx, `
    SELECT id, order_id, category_name, item_name, quantity,
           price_per_unit::text, total_price::text
    FROM order_lines WHERE order_id=$1
  `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []Line{}
	for rows.Next() {
		var ln Line
		if err := rows.Scan(&ln.ID, &ln.OrderID, &ln.CategoryName, &ln.ItemName,
			&ln.Quantity, &ln.PricePerUnit, &ln.TotalPrice); err != nil {
			return nil, err
		}
		lines = append(lines, ln)
	}
	return lines, rows.Err()
}

func (r *PGRepo) ListByCustomer(ctx context.Context, mobileNumber string) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.list(ctx, `
    SELECT id, name, mobile_number, address, google_maps_location,
           total_order_value::text, status, ordered_date
    FROM orders WHERE mobile_number=$1
    ORDER BY ordered_date DESC
  `, mobileNumber)
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.list(ctx, `
    SELECT id, name, mobile_number, address, google_maps_location,
           total_order_value::text, status, ordered_date
    FROM orders
    ORDER BY ordered_date DESC
  `)
}

func (r *PGRepo) list(ctx context.Context, sql string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Name, &o.MobileNumber, &o.Address,
			&o.GoogleMapsLocation, &o.TotalOrderValue, &o.Status, &o.OrderedDate); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		lines, err := r.linesOf(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = lines
	}
	return out, nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// lines cascade via FK
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id '%s'", ErrNotFound, id)
	}
	return nil
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    UPDATE orders SET status = $2 WHERE id = $1
  `, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id '%s'", ErrNotFound, id)
	}
	return nil
}
