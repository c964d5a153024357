package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables the API needs if they are missing.
// order_number comes from a sequence, so it is monotonic but not gap-free
// (failed inserts still consume a value). public_token carries the only
// uniqueness constraint the order pipeline relies on.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			category TEXT NOT NULL,
			price BIGINT NOT NULL CHECK (price > 0),
			image_url TEXT,
			is_available BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			order_number BIGINT NOT NULL GENERATED BY DEFAULT AS IDENTITY,
			public_token TEXT NOT NULL UNIQUE,
			pickup_code TEXT NOT NULL,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'received',
			pickup_time TEXT NOT NULL,
			notes TEXT,
			total_amount BIGINT NOT NULL CHECK (total_amount > 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id UUID NOT NULL REFERENCES menu_items(id),
			quantity INT NOT NULL CHECK (quantity > 0),
			price_at_time BIGINT NOT NULL
		)`,
	}

	for _, s := range stmts {
		if _, err := pool.Exec(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
