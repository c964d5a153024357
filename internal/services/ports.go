package services

import (
	"context"

	"github.com/kiasiliventures/thesmokehouse/internal/model"
)

// MenuReader is the read-only view of the catalog the order pipeline needs.
// Availability is re-checked through it at order time, never trusted from
// the cart.
type MenuReader interface {
	ListAvailable(ctx context.Context) ([]model.MenuItem, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.MenuItem, error)
}

// OrderStore is the record-store port behind order creation and fulfillment.
// InsertOrder must report repository.ErrDuplicateToken on a public_token
// uniqueness violation so the service can regenerate and retry; lookups and
// updates report repository.ErrNoRows for missing orders.
type OrderStore interface {
	InsertOrder(ctx context.Context, order *model.Order) (int64, error)
	InsertOrderItems(ctx context.Context, items []model.OrderItem) error
	DeleteOrder(ctx context.Context, id string) error
	GetByPublicToken(ctx context.Context, token string) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
}
