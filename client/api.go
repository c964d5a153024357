// Package client is the customer-side SDK for the smokehouse API: a REST
// client, a locally persisted cart, and the order tracking poller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kiasiliventures/thesmokehouse/internal/middleware"
	"github.com/kiasiliventures/thesmokehouse/internal/model"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// apiError pulls the error body the server sends, falling back to a generic
// message when the body is not the expected JSON shape.
func apiError(resp *http.Response, fallback string) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("%s", body.Error)
	}
	return fmt.Errorf("%s", fallback)
}

func (c *Client) GetMenu(ctx context.Context) ([]model.MenuItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/smokehouse/menu", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp, "Failed to fetch menu")
	}
	var items []model.MenuItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateOrder(ctx context.Context, payload model.CreateOrderRequest) (*model.OrderReceipt, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/smokehouse/orders", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp, "Failed to place order")
	}
	var receipt model.OrderReceipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (c *Client) GetOrderByPublicToken(ctx context.Context, publicToken string) (*model.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/smokehouse/orders/"+publicToken, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp, "Order not found")
	}
	var order model.Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateAdminOrderStatus(ctx context.Context, id string, status model.OrderStatus, adminPassword string) (*model.Order, error) {
	b, err := json.Marshal(map[string]model.OrderStatus{"status": status})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/smokehouse/admin/orders/"+id, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.AdminPasswordHeader, adminPassword)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp, "Failed to update status")
	}
	var order model.Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}
