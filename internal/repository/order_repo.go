package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kiasiliventures/thesmokehouse/internal/model"
)

const uniqueViolation = "23505"

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

// InsertOrder creates the order row and returns the store-assigned order
// number. A public_token collision surfaces as ErrDuplicateToken so the
// caller can regenerate and retry.
func (r *OrderRepository) InsertOrder(ctx context.Context, o *model.Order) (int64, error) {
	query := `INSERT INTO orders (id, public_token, pickup_code, name, phone, status, pickup_time, notes, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING order_number, created_at`
	var orderNumber int64
	err := r.DB.QueryRow(ctx, query,
		o.ID, o.PublicToken, o.PickupCode, o.Name, o.Phone, o.Status, o.PickupTime, o.Notes, o.TotalAmount,
	).Scan(&orderNumber, &o.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, ErrDuplicateToken
		}
		return 0, err
	}
	return orderNumber, nil
}

// InsertOrderItems writes all line items in one batch.
func (r *OrderRepository) InsertOrderItems(ctx context.Context, items []model.OrderItem) error {
	rows := make([][]interface{}, 0, len(items))
	for _, it := range items {
		rows = append(rows, []interface{}{it.ID, it.OrderID, it.MenuItemID, it.Quantity, it.PriceAtTime})
	}
	_, err := r.DB.CopyFrom(ctx,
		pgx.Identifier{"order_items"},
		[]string{"id", "order_id", "menu_item_id", "quantity", "price_at_time"},
		pgx.CopyFromRows(rows),
	)
	return err
}

// DeleteOrder removes an order row (line items cascade). Used only as the
// compensating action when the item batch fails after the order row landed.
func (r *OrderRepository) DeleteOrder(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	return err
}

const orderColumns = `id, order_number, public_token, pickup_code, name, phone, status, pickup_time, notes, total_amount, created_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.OrderNumber, &o.PublicToken, &o.PickupCode, &o.Name, &o.Phone,
		&o.Status, &o.PickupTime, &o.Notes, &o.TotalAmount, &o.CreatedAt)
}

// GetByPublicToken returns the order plus its line items joined with the
// current menu name/image for display.
func (r *OrderRepository) GetByPublicToken(ctx context.Context, token string) (*model.Order, error) {
	var o model.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE public_token=$1`
	if err := scanOrder(r.DB.QueryRow(ctx, query, token), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoRows
		}
		return nil, err
	}

	items, err := r.getOrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// GetByID returns the order row without items.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	if err := scanOrder(r.DB.QueryRow(ctx, query, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoRows
		}
		return nil, err
	}
	return &o, nil
}

// UpdateStatus mutates the status field only and returns the updated row.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	var o model.Order
	query := `UPDATE orders SET status=$1 WHERE id=$2 RETURNING ` + orderColumns
	if err := scanOrder(r.DB.QueryRow(ctx, query, status, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoRows
		}
		return nil, err
	}
	return &o, nil
}

// ListRecent returns orders newest first without items, for the admin board.
func (r *OrderRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1`
	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepository) getOrderItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	query := `SELECT oi.id, oi.order_id, oi.menu_item_id, oi.quantity, oi.price_at_time, mi.name, mi.image_url
		FROM order_items oi
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id=$1
		ORDER BY oi.id`
	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Quantity, &it.PriceAtTime, &it.ItemName, &it.ItemImage); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
