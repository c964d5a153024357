package model

import "time"

// OrderStatus is the fulfillment state of an order.
// received is assigned at creation and is never a transition target input
// the kitchen has to type; the rest are advanced from the admin board.
type OrderStatus string

const (
	StatusReceived  OrderStatus = "received"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusPickedUp  OrderStatus = "picked_up"
)

// OrderStatuses lists the valid states in fulfillment order.
var OrderStatuses = []OrderStatus{StatusReceived, StatusPreparing, StatusReady, StatusPickedUp}

func (s OrderStatus) IsValid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Rank returns the position of the status in the fulfillment flow (-1 if invalid).
func (s OrderStatus) Rank() int {
	for i, v := range OrderStatuses {
		if s == v {
			return i
		}
	}
	return -1
}

// Order represents a row in the orders table
type Order struct {
	ID          string      `json:"id"`
	OrderNumber int64       `json:"order_number"`
	PublicToken string      `json:"public_token"`
	PickupCode  string      `json:"pickup_code"`
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	Status      OrderStatus `json:"status"`
	PickupTime  string      `json:"pickup_time"`
	Notes       *string     `json:"notes,omitempty"`
	TotalAmount int64       `json:"total_amount"`
	CreatedAt   time.Time   `json:"created_at"`
	Items       []OrderItem `json:"items,omitempty"`
}

// OrderItem represents a row in the order_items table.
// PriceAtTime is the menu price snapshotted at order creation and never
// changes afterwards, even if the menu price does.
type OrderItem struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order_id"`
	MenuItemID  string  `json:"menu_item_id"`
	Quantity    int     `json:"quantity"`
	PriceAtTime int64   `json:"price_at_time"`
	ItemName    string  `json:"item_name,omitempty"`
	ItemImage   *string `json:"item_image,omitempty"`
}

// OrderLineRequest is one requested line in a guest checkout
type OrderLineRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid4"`
	Qty        int    `json:"qty" validate:"required,min=1,max=20"`
}

// CreateOrderRequest is the guest checkout payload. It is never persisted
// as-is; the order service revalidates every line against the catalog.
type CreateOrderRequest struct {
	Items      []OrderLineRequest `json:"items" validate:"required,min=1,max=50,dive"`
	PickupTime string             `json:"pickup_time" validate:"required,oneof=ASAP 30 45 60"`
	Name       string             `json:"name" validate:"required,min=2,max=80"`
	Phone      string             `json:"phone" validate:"required,min=7,max=30,phonechars"`
	Notes      string             `json:"notes" validate:"omitempty,max=300"`
}

// OrderReceipt is returned when a guest order is accepted
type OrderReceipt struct {
	PublicToken string `json:"public_token"`
	OrderNumber int64  `json:"order_number"`
	PickupCode  string `json:"pickup_code"`
}
