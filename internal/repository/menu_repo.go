package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kiasiliventures/thesmokehouse/internal/model"
)

type MenuRepository struct {
	DB *pgxpool.Pool
}

func NewMenuRepository(db *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{DB: db}
}

// ListAvailable returns orderable items, category first then name, the order
// the menu page renders them in.
func (r *MenuRepository) ListAvailable(ctx context.Context) ([]model.MenuItem, error) {
	query := `SELECT id, name, description, category, price, image_url, is_available
		FROM menu_items WHERE is_available = TRUE ORDER BY category, name`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.Price, &m.ImageURL, &m.IsAvailable); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetByIDs returns catalog rows for exactly the given ids; unknown ids are
// simply absent from the result.
func (r *MenuRepository) GetByIDs(ctx context.Context, ids []string) ([]model.MenuItem, error) {
	query := `SELECT id, name, description, category, price, image_url, is_available
		FROM menu_items WHERE id = ANY($1::uuid[])`
	rows, err := r.DB.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.Price, &m.ImageURL, &m.IsAvailable); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
