// Package catalog provides the repository interface and PostgreSQL
// implementation for categories and the items they own.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrCategoryExists    = errors.New("category already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, name string) error
	ListCategories(ctx context.Context) ([]Category, error)
	FindCategory(ctx context.Context, name string) (*Category, error)
	// FindItem resolves the first item with the given name inside the
	// category. Item names are not unique within a category; lookups keep
	// the oldest match.
	FindItem(ctx context.Context, categoryName, itemName string) (*Item, error)
	AddItem(ctx context.Context, categoryName string, it *Item) error
	UpdateItem(ctx context.Context, req UpdateItemRequest) error
	DeleteItem(ctx context.Context, itemID string) error
	// DecrementStock is a single conditional update guarded by
	// stock_available >= qty, so concurrent orders for the same item can
	// never drive stock negative.
	DecrementStock(ctx context.Context, categoryName, itemName string, qty int) error
	IncrementStock(ctx context.Context, categoryName, itemName string, qty int) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) CreateCategory(ctx context.Context, c *Category) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO categories (id, category_name, description, created_at)
		VALUES ($1,$2,$3,NOW())
	`, c.ID, c.Name, c.Description)
	if err != nil {
		// UNIQUE on category_name
		return fmt.Errorf("%w: '%s'", ErrCategoryExists, c.Name)
	}
	return nil
}

func (r *PGRepo) DeleteCategory(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// items cascade via FK
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE category_name=$1`, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: '%s'", ErrCategoryNotFound, name)
	}
	return nil
}

func (r *PGRepo) ListCategories(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, category_name, description, created_at
		FROM categories ORDER BY category_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		items, err := r.itemsOf(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *PGRepo) FindCategory(ctx context.Context, name string) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Category
	err := r.db.QueryRow(ctx, `
		SELECT id, category_name, description, created_at
		FROM categories WHERE category_name=$1
	`, name).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: '%s'", ErrCategoryNotFound, name)
		}
		return nil, err
	}
	items, err := r.itemsOf(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return &c, nil
}

func (r *PGRepo) itemsOf(ctx context.Context, categoryID string) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, category_id, item_name, description, quantity, price::text,
		       stock_available, created_at, updated_at
		FROM items WHERE category_id=$1 ORDER BY created_at
	`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Description,
			&it.Quantity, &it.Price, &it.StockAvailable, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PGRepo) FindItem(ctx context.Context, categoryName, itemName string) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var it Item
	err := r.db.QueryRow(ctx, `
		SELECT i.id, i.category_id, i.item_name, i.description, i.quantity,
		       i.price::text, i.stock_available, i.created_at, i.updated_at
		FROM items i
		JOIN categories c ON c.id = i.category_id
		WHERE c.category_name=$1 AND i.item_name=$2
		ORDER BY i.created_at
		LIMIT 1
	`, categoryName, itemName).Scan(&it.ID, &it.CategoryID, &it.Name, &it.Description,
		&it.Quantity, &it.Price, &it.StockAvailable, &it.CreatedAt, &it.UpdatedAt)
	if err == nil {
		return &it, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if exists, cerr := r.categoryExists(ctx, categoryName); cerr != nil {
		return nil, cerr
	} else if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrCategoryNotFound, categoryName)
	}
	return nil, fmt.Errorf("%w: '%s' in category '%s'", ErrItemNotFound, itemName, categoryName)
}

func (r *PGRepo) categoryExists(ctx context.Context, name string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE category_name=$1)`, name).Scan(&ok)
	return ok, err
}

func (r *PGRepo) AddItem(ctx context.Context, categoryName string, it *Item) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		INSERT INTO items (id, category_id, item_name, description, quantity,
		                   price, stock_available, created_at, updated_at)
		SELECT $1, c.id, $3, $4, $5, $6::numeric, $7, NOW(), NOW()
		FROM categories c WHERE c.category_name=$2
	`, it.ID, categoryName, it.Name, it.Description, it.Quantity, it.Price, it.StockAvailable)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: '%s'", ErrCategoryNotFound, categoryName)
	}
	return nil
}

func (r *PGRepo) UpdateItem(ctx context.Context, req UpdateItemRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cat, err := r.FindCategory(ctx, req.CategoryName)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE items SET
			item_name       = COALESCE($3, item_name),
			description     = COALESCE($4, description),
			quantity        = COALESCE($5, quantity),
			price           = COALESCE($6::numeric, price),
			stock_available = COALESCE($7, stock_available),
			updated_at      = NOW()
		WHERE id=$1 AND category_id=$2
	`, req.ItemID, cat.ID, req.Name, req.Description, req.Quantity, req.Price, req.StockAvailable)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id '%s' in category '%s'", ErrItemNotFound, req.ItemID, req.CategoryName)
	}
	return nil
}

func (r *PGRepo) DeleteItem(ctx context.Context, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id=$1`, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id '%s'", ErrItemNotFound, itemID)
	}
	return nil
}

func (r *PGRepo) DecrementStock(ctx context.Context, categoryName, itemName string, qty int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE items SET stock_available = stock_available - $3, updated_at = NOW()
		WHERE id = (
			SELECT i.id FROM items i
			JOIN categories c ON c.id = i.category_id
			WHERE c.category_name=$1 AND i.item_name=$2
			ORDER BY i.created_at
			LIMIT 1
		) AND stock_available >= $3
	`, categoryName, itemName, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	// No row updated: item missing or stock too low. Classify for the caller.
	if _, err := r.FindItem(ctx, categoryName, itemName); err != nil {
		return err
	}
	return fmt.Errorf("%w: item '%s'", ErrInsufficientStock, itemName)
}

func (r *PGRepo) IncrementStock(ctx context.Context, categoryName, itemName string, qty int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE items SET stock_available = stock_available + $3, updated_at = NOW()
		WHERE id = (
			SELECT i.id FROM items i
			JOIN categories c ON c.id = i.category_id
			WHERE c.category_name=$1 AND i.item_name=$2
			ORDER BY i.created_at
			LIMIT 1
		)
	`, categoryName, itemName, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: '%s' in category '%s'", ErrItemNotFound, itemName, categoryName)
	}
	return nil
}
