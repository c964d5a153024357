package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiasiliventures/thesmokehouse/internal/middleware"
	"github.com/kiasiliventures/thesmokehouse/internal/model"
	"github.com/kiasiliventures/thesmokehouse/internal/repository"
)

const testAdminSecret = "kitchen-secret"

type fakeMenu struct {
	items map[string]model.MenuItem
	err   error
}

func (f *fakeMenu) ListAvailable(ctx context.Context) ([]model.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.MenuItem
	for _, it := range f.items {
		if it.IsAvailable {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeMenu) GetByIDs(ctx context.Context, ids []string) ([]model.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.MenuItem
	for _, id := range ids {
		if it, ok := f.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeStore struct {
	orders map[string]*model.Order
	items  map[string][]model.OrderItem

	insertCalls      int
	rejectDuplicates int // first N InsertOrder calls report a token collision
	itemsErr         error
	deleted          []string
	nextNumber       int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders: make(map[string]*model.Order),
		items:  make(map[string][]model.OrderItem),
	}
}

func (f *fakeStore) InsertOrder(ctx context.Context, o *model.Order) (int64, error) {
	f.insertCalls++
	if f.insertCalls <= f.rejectDuplicates {
		return 0, repository.ErrDuplicateToken
	}
	f.nextNumber++
	saved := *o
	saved.OrderNumber = f.nextNumber
	f.orders[o.ID] = &saved
	return f.nextNumber, nil
}

func (f *fakeStore) InsertOrderItems(ctx context.Context, items []model.OrderItem) error {
	if f.itemsErr != nil {
		return f.itemsErr
	}
	for _, it := range items {
		f.items[it.OrderID] = append(f.items[it.OrderID], it)
	}
	return nil
}

func (f *fakeStore) DeleteOrder(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.orders, id)
	delete(f.items, id)
	return nil
}

func (f *fakeStore) GetByPublicToken(ctx context.Context, token string) (*model.Order, error) {
	for _, o := range f.orders {
		if o.PublicToken == token {
			copied := *o
			copied.Items = f.items[o.ID]
			return &copied, nil
		}
	}
	return nil, repository.ErrNoRows
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrNoRows
	}
	copied := *o
	return &copied, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrNoRows
	}
	o.Status = status
	copied := *o
	return &copied, nil
}

func (f *fakeStore) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		out = append(out, *o)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrderService(menu *fakeMenu, store *fakeStore) *OrderService {
	return NewOrderService(menu, store, NewRateLimiter(), middleware.NewAdminCheck(testAdminSecret), false, testLogger())
}

func seedMenuItem(menu *fakeMenu, price int64, available bool) string {
	id := uuid.NewString()
	name := "Texas Brisket Plate"
	menu.items[id] = model.MenuItem{
		ID:          id,
		Name:        name,
		Category:    model.CategoryRoastedMeat,
		Price:       price,
		IsAvailable: available,
	}
	return id
}

func validRequest(lines ...model.OrderLineRequest) model.CreateOrderRequest {
	return model.CreateOrderRequest{
		Items:      lines,
		PickupTime: "ASAP",
		Name:       "Jane",
		Phone:      "+1234567",
	}
}

func TestSubmitComputesTotalFromCatalog(t *testing.T) {
	menu := &fakeMenu{items: map[string]model.MenuItem{}}
	store := newFakeStore()
	svc := newTestOrderService(menu, store)

	itemA := seedMenuItem(menu, 48000, true)
	req := validRequest(model.OrderLineRequest{MenuItemID: itemA, Qty: 2})

	receipt, err := svc.Submit(context.Background(), req, "10.0.0.1")
	require.NoError(t, err)

	assert.Positive(t, receipt.OrderNumber)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}$`), receipt.PickupCode)
	assert.NotEmpty(t, receipt.PublicToken)
	assert.NotContains(t, receipt.PublicToken, req.Phone)

	require.Len(t, store.orders, 1)
	for _, o := range store.orders {
		assert.Equal(t, int64(96000), o.TotalAmount, "total comes from catalog price, never the client")
		assert.Equal(t, model.StatusReceived, o.Status)

		items := store.items[o.ID]
		require.Len(t, items, 1)
		assert.Equal(t, int64(48000), items[0].PriceAtTime)
		assert.Equal(t, 2, items[0].Quantity)

		var sum int64
		for _, it := range items {
			sum += it.PriceAtTime * int64(it.Quantity)
		}
		assert.Equal(t, o.TotalAmount, sum)
	}
}

func TestSubmitRejectsUnavailableItem(t *testing.T) {
	menu := &fakeMenu{items: map[string]model.MenuItem{}}
	store := newFakeStore()
	svc := newTestOrderService(menu, store)

	// was available at cart time, retired before checkout
	stale := seedMenuItem(menu, 36000, false)
	req := validRequest(model.OrderLineRequest{MenuItemID: stale, Qty: 1})

	_, err := svc.Submit(context.Background(), req, "10.0.0.1")
	require.ErrorIs(t, err, ErrItemsUnavailable)
	assert.Empty(t, store.orders, "nothing is written when assembly rejects")
}

func TestSubmitRejectsUnknownItem(t *testing.T) {
	menu := &fakeMenu{items: map[string]model.MenuItem{}}
	svc := newTestOrderService(menu, newFakeStore())

	req := validRequest(model.OrderLineRequest{MenuItemID: uuid.NewString(), Qty: 1})
	_, err := svc.Submit(context.Background(), req, "10.0.0.1")
	require.ErrorIs(t, err, ErrItemsUnavailable)
}

func TestSubmitRejectsNonPositiveTotal(t *testing.T) {
	menu := &fakeMenu{items: map[string]model.MenuItem{}}
	svc := newTestOrderService(menu, newFakeStore())

	free := seedMenuItem(menu, 0, true)
	req := validRequest(model.OrderLineRequest{MenuItemID: free, Qty: 3})

	_, err := svc.Submit(context.Background(), req, "10.0.0.1")
	require.ErrorIs(t, err, ErrInvalidTotal)
}

func TestSubmitRetriesTokenCollision(t *testing.T) {
	menu := &fakeMenu{items: map[string]model.MenuItem{}}
	store := newFakeStore()
	store.rejectDuplicates = 2
	svc := newTestOrderService(menu, store)

	itemA := seedMenuItem(menu, 48000, true)
	req := validRequest(model.OrderLineRequest{MenuItemID: itemA, Qty: 1})

	receipt, err := svc.Submit(context.Background(), req, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 3, store.insertCalls, "two collisions then success")
	assert.NotNil(t, receipt)
}

func TestSubmitGivesUpAfterThreeCollisions(t *testing.T) {
	menu := &fakeMenu{items: map[string]model.MenuItem{}}
	store := newFakeStore()
	store.rejectDuplicates = 3
	svc := newTestOrderService(menu, store)

	itemA := seedMenuItem(menu, 48000, true)
	req := validRequest(model.OrderLineRequest{MenuItemID: itemA, Qty: 1})

	_, err := svc.Submit(context.Background(), req, "10.0.0.1")
	require.ErrorIs(t, err, ErrTokenGeneration)
	assert.Equal(t, 3, store.insertCalls)
	assert.Empty(t, store.orders)
}

func TestSubmitCompensatesWhenItemBatchFails(t *testing.T) {
	menu := &fakeMenu{items: map[string]model.MenuItem{}}
	store := newFakeStore()
	store.itemsErr = errors.New("copy failed")
	svc := newTestOrderService(menu, store)

	itemA := seedMenuItem(menu, 48000, true)
	req := validRequest(model.OrderLineRequest{MenuItemID: itemA, Qty: 1})

	_, err := svc.Submit(context.Background(), req, "10.0.0.1")
	require.Error(t, err)
	require.Len(t, store.deleted, 1, "the just-created order row is deleted")
	assert.Empty(t, store.orders, "no order survives with zero line items")
}

func TestSubmitDeduplicatesRequestedIDs(t *testing.T) {
	menu := &fakeMenu{items: map[string]model.MenuItem{}}
	store := newFakeStore()
	svc := newTestOrderService(menu, store)

	itemA := seedMenuItem(menu, 10000, true)
	req := validRequest(
		model.OrderLineRequest{MenuItemID: itemA, Qty: 1},
		model.OrderLineRequest{MenuItemID: itemA, Qty: 2},
	)

	_, err := svc.Submit(context.Background(), req, "10.0.0.1")
	require.NoError(t, err)
	for _, o := range store.orders {
		assert.Equal(t, int64(30000), o.TotalAmount)
		assert.Len(t, store.items[o.ID], 2, "each requested line persists separately")
	}
}

func TestSubmitRateLimitedByPhone(t *testing.T) {
	menu := &fakeMenu{items: map[string]model.MenuItem{}}
	store := newFakeStore()
	svc := newTestOrderService(menu, store)

	itemA := seedMenuItem(menu, 48000, true)

	// five submissions from the same phone inside one window; only the
	// admission gate changes between them (distinct addresses)
	for i := 0; i < 4; i++ {
		req := validRequest(model.OrderLineRequest{MenuItemID: itemA, Qty: 1})
		_, err := svc.Submit(context.Background(), req, fmt.Sprintf("10.0.5.%d", i))
		require.NoError(t, err)
	}

	req := validRequest(model.OrderLineRequest{MenuItemID: itemA, Qty: 1})
	_, err := svc.Submit(context.Background(), req, "10.0.5.9")
	require.ErrorIs(t, err, ErrRateLimited)
	var limited *RateLimitedError
	require.ErrorAs(t, err, &limited)
	assert.Contains(t, limited.Reason, "phone")
	assert.Len(t, store.orders, 4, "the denied submission wrote nothing")
}

func TestGetByPublicToken(t *testing.T) {
	menu := &fakeMenu{items: map[string]model.MenuItem{}}
	store := newFakeStore()
	svc := newTestOrderService(menu, store)

	itemA := seedMenuItem(menu, 48000, true)
	receipt, err := svc.Submit(context.Background(), validRequest(model.OrderLineRequest{MenuItemID: itemA, Qty: 2}), "10.0.0.1")
	require.NoError(t, err)

	order, err := svc.GetByPublicToken(context.Background(), receipt.PublicToken)
	require.NoError(t, err)
	assert.Equal(t, receipt.OrderNumber, order.OrderNumber)
	assert.Len(t, order.Items, 1)

	_, err = svc.GetByPublicToken(context.Background(), strings.Repeat("x", 32))
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListOrdersRequiresCredential(t *testing.T) {
	svc := newTestOrderService(&fakeMenu{items: map[string]model.MenuItem{}}, newFakeStore())

	_, err := svc.ListOrders(context.Background(), "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.ListOrders(context.Background(), "")
	require.ErrorIs(t, err, ErrUnauthorized)

	orders, err := svc.ListOrders(context.Background(), testAdminSecret)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func submitOne(t *testing.T, svc *OrderService, menu *fakeMenu) (string, *model.Order) {
	t.Helper()
	itemA := seedMenuItem(menu, 48000, true)
	receipt, err := svc.Submit(context.Background(), validRequest(model.OrderLineRequest{MenuItemID: itemA, Qty: 1}), "10.0.9.1")
	require.NoError(t, err)
	order, err := svc.GetByPublicToken(context.Background(), receipt.PublicToken)
	require.NoError(t, err)
	return order.ID, order
}

func TestSetStatus(t *testing.T) {
	menu := &fakeMenu{items: map[string]model.MenuItem{}}
	store := newFakeStore()
	svc := newTestOrderService(menu, store)
	orderID, before := submitOne(t, svc, menu)

	// every valid target works from any state when strict flow is off
	for _, target := range model.OrderStatuses {
		updated, err := svc.SetStatus(context.Background(), orderID, target, testAdminSecret)
		require.NoError(t, err)
		assert.Equal(t, target, updated.Status)

		// status is the only mutated field
		assert.Equal(t, before.OrderNumber, updated.OrderNumber)
		assert.Equal(t, before.PublicToken, updated.PublicToken)
		assert.Equal(t, before.PickupCode, updated.PickupCode)
		assert.Equal(t, before.TotalAmount, updated.TotalAmount)
		assert.Equal(t, before.Phone, updated.Phone)
	}
}

func TestSetStatusUnauthorizedNeverMutates(t *testing.T) {
	menu := &fakeMenu{items: map[string]model.MenuItem{}}
	store := newFakeStore()
	svc := newTestOrderService(menu, store)
	orderID, _ := submitOne(t, svc, menu)

	// even a valid target is rejected before validation runs
	_, err := svc.SetStatus(context.Background(), orderID, model.StatusReady, "nope")
	require.ErrorIs(t, err, ErrUnauthorized)

	// and an invalid one reports unauthorized, not invalid status
	_, err = svc.SetStatus(context.Background(), orderID, "burned", "nope")
	require.ErrorIs(t, err, ErrUnauthorized)

	current, err := store.GetByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReceived, current.Status)
}

func TestSetStatusInvalidTarget(t *testing.T) {
	menu := &fakeMenu{items: map[string]model.MenuItem{}}
	svc := newTestOrderService(menu, newFakeStore())
	orderID, _ := submitOne(t, svc, menu)

	_, err := svc.SetStatus(context.Background(), orderID, "cancelled", testAdminSecret)
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetStatusNotFound(t *testing.T) {
	svc := newTestOrderService(&fakeMenu{items: map[string]model.MenuItem{}}, newFakeStore())

	_, err := svc.SetStatus(context.Background(), uuid.NewString(), model.StatusReady, testAdminSecret)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestSetStatusStrictFlow(t *testing.T) {
	menu := &fakeMenu{items: map[string]model.MenuItem{}}
	store := newFakeStore()
	svc := newTestOrderService(menu, store)
	svc.StrictStatusFlow = true
	orderID, _ := submitOne(t, svc, menu)

	// forward moves are fine, including skips
	_, err := svc.SetStatus(context.Background(), orderID, model.StatusReady, testAdminSecret)
	require.NoError(t, err)

	// walking back is rejected
	_, err = svc.SetStatus(context.Background(), orderID, model.StatusReceived, testAdminSecret)
	require.ErrorIs(t, err, ErrInvalidTransition)

	// so is standing still
	_, err = svc.SetStatus(context.Background(), orderID, model.StatusReady, testAdminSecret)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.SetStatus(context.Background(), orderID, model.StatusPickedUp, testAdminSecret)
	require.NoError(t, err)
}
