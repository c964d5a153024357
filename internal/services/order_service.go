package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kiasiliventures/thesmokehouse/internal/model"
	"github.com/kiasiliventures/thesmokehouse/internal/repository"
)

const (
	// total attempts at a unique public token before giving up
	maxTokenAttempts = 3
	// admin board page size
	adminListLimit = 100
)

type OrderService struct {
	Menu    MenuReader
	Store   OrderStore
	Limiter *RateLimiter

	// AdminCheck is the shared-secret comparison supplied by the hosting
	// layer. It must run before anything else an admin operation does.
	AdminCheck func(credential string) bool

	// StrictStatusFlow enforces forward-only fulfillment transitions. Off by
	// default: a small kitchen sometimes walks an order backwards on purpose.
	StrictStatusFlow bool

	Logger *slog.Logger
}

func NewOrderService(menu MenuReader, store OrderStore, limiter *RateLimiter, adminCheck func(string) bool, strict bool, logger *slog.Logger) *OrderService {
	return &OrderService{
		Menu:             menu,
		Store:            store,
		Limiter:          limiter,
		AdminCheck:       adminCheck,
		StrictStatusFlow: strict,
		Logger:           logger,
	}
}

// assembledLine is one validated order line carrying the catalog price
// snapshot that will be persisted as price_at_time.
type assembledLine struct {
	menuItemID  string
	quantity    int
	priceAtTime int64
}

// assemble revalidates the request against the authoritative catalog and
// recomputes the total. Client-supplied prices never enter here; a stale or
// unavailable cart entry is caught at this step, not earlier.
func (s *OrderService) assemble(ctx context.Context, req model.CreateOrderRequest) ([]assembledLine, int64, error) {
	seen := make(map[string]bool, len(req.Items))
	ids := make([]string, 0, len(req.Items))
	for _, line := range req.Items {
		if !seen[line.MenuItemID] {
			seen[line.MenuItemID] = true
			ids = append(ids, line.MenuItemID)
		}
	}

	catalog, err := s.Menu.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("validate menu items: %w", err)
	}
	byID := make(map[string]model.MenuItem, len(catalog))
	for _, item := range catalog {
		byID[item.ID] = item
	}

	var total int64
	lines := make([]assembledLine, 0, len(req.Items))
	for _, line := range req.Items {
		item, ok := byID[line.MenuItemID]
		if !ok || !item.IsAvailable {
			return nil, 0, ErrItemsUnavailable
		}
		total += item.Price * int64(line.Qty)
		lines = append(lines, assembledLine{
			menuItemID:  line.MenuItemID,
			quantity:    line.Qty,
			priceAtTime: item.Price,
		})
	}

	if total <= 0 {
		return nil, 0, ErrInvalidTotal
	}
	return lines, total, nil
}

// Submit runs the whole ingestion pipeline: admission gate, price authority,
// then the two-step create with bounded token retry and a compensating
// delete if the item batch fails.
func (s *OrderService) Submit(ctx context.Context, req model.CreateOrderRequest, clientAddr string) (*model.OrderReceipt, error) {
	if err := s.Limiter.Allow(clientAddr, req.Phone); err != nil {
		return nil, err
	}

	lines, total, err := s.assemble(ctx, req)
	if err != nil {
		return nil, err
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		token, err := PublicToken()
		if err != nil {
			return nil, err
		}
		code, err := PickupCode()
		if err != nil {
			return nil, err
		}

		order := &model.Order{
			ID:          uuid.NewString(),
			PublicToken: token,
			PickupCode:  code,
			Name:        req.Name,
			Phone:       req.Phone,
			Status:      model.StatusReceived,
			PickupTime:  req.PickupTime,
			Notes:       notes,
			TotalAmount: total,
		}

		orderNumber, err := s.Store.InsertOrder(ctx, order)
		if errors.Is(err, repository.ErrDuplicateToken) {
			s.Logger.Warn("public token collision, regenerating", "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create order: %w", err)
		}

		items := make([]model.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, model.OrderItem{
				ID:          uuid.NewString(),
				OrderID:     order.ID,
				MenuItemID:  line.menuItemID,
				Quantity:    line.quantity,
				PriceAtTime: line.priceAtTime,
			})
		}

		if err := s.Store.InsertOrderItems(ctx, items); err != nil {
			// an order must never exist with zero or partial line items
			if delErr := s.Store.DeleteOrder(ctx, order.ID); delErr != nil {
				s.Logger.Error("compensating delete failed", "order_id", order.ID, "error", delErr)
			}
			return nil, fmt.Errorf("save order items: %w", err)
		}

		s.Logger.Info("order created",
			"order_number", orderNumber,
			"total_amount", total,
			"lines", len(items))

		return &model.OrderReceipt{
			PublicToken: order.PublicToken,
			OrderNumber: orderNumber,
			PickupCode:  order.PickupCode,
		}, nil
	}

	return nil, ErrTokenGeneration
}

// GetByPublicToken returns an order with its items for customer tracking.
func (s *OrderService) GetByPublicToken(ctx context.Context, token string) (*model.Order, error) {
	order, err := s.Store.GetByPublicToken(ctx, token)
	if errors.Is(err, repository.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns the admin board view, newest first, bounded count.
func (s *OrderService) ListOrders(ctx context.Context, credential string) ([]model.Order, error) {
	if !s.AdminCheck(credential) {
		return nil, ErrUnauthorized
	}
	return s.Store.ListRecent(ctx, adminListLimit)
}

// SetStatus applies one fulfillment transition. The credential gate runs
// before the target status is even looked at; only the status field is ever
// mutated.
func (s *OrderService) SetStatus(ctx context.Context, orderID string, target model.OrderStatus, credential string) (*model.Order, error) {
	if !s.AdminCheck(credential) {
		return nil, ErrUnauthorized
	}
	if !target.IsValid() {
		return nil, ErrInvalidStatus
	}

	if s.StrictStatusFlow {
		current, err := s.Store.GetByID(ctx, orderID)
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		if err != nil {
			return nil, err
		}
		if target.Rank() <= current.Status.Rank() {
			return nil, ErrInvalidTransition
		}
	}

	order, err := s.Store.UpdateStatus(ctx, orderID, target)
	if errors.Is(err, repository.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	s.Logger.Info("order status updated", "order_id", orderID, "status", target)
	return order, nil
}
