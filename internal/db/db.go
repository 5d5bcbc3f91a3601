// Package db owns the Postgres connection lifecycle: one pool created at
// process start, schema bootstrap, closed on shutdown.
package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 25
	cfg.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS categories (
  id            UUID PRIMARY KEY,
  category_name TEXT NOT NULL UNIQUE,
  description   TEXT NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS items (
  id              UUID PRIMARY KEY,
  category_id     UUID NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
  item_name       TEXT NOT NULL,
  description     TEXT NOT NULL DEFAULT '',
  quantity        DOUBLE PRECISION NOT NULL DEFAULT 0,
  price           NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
  stock_available INTEGER NOT NULL DEFAULT 0 CHECK (stock_available >= 0),
  created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_items_category ON items (category_id, item_name);

CREATE TABLE IF NOT EXISTS orders (
  id                   UUID PRIMARY KEY,
  name                 TEXT NOT NULL,
  mobile_number        TEXT NOT NULL,
  address              TEXT NOT NULL,
  google_maps_location TEXT NOT NULL DEFAULT '',
  total_order_value    NUMERIC(12,2) NOT NULL,
  status               TEXT NOT NULL,
  ordered_date         TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_mobile ON orders (mobile_number);
CREATE INDEX IF NOT EXISTS idx_orders_date ON orders (ordered_date DESC);

CREATE TABLE IF NOT EXISTS order_lines (
  id             UUID PRIMARY KEY,
  order_id       UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  category_name  TEXT NOT NULL,
  item_name      TEXT NOT NULL,
  quantity       INTEGER NOT NULL,
  price_per_unit NUMERIC(12,2) NOT NULL,
  total_price    NUMERIC(12,2) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_lines_order ON order_lines (order_id);
`

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	_, err := pool.Exec(ctx, schema)
	return err
}
