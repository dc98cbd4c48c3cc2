package commerce

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/gaibarra/33fitstudio/internal/backend"
)

// Client wraps the commerce endpoints.
type Client struct {
	api *backend.Client
}

func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

// Orders fetches one page of orders, optionally constrained to a status.
func (c *Client) Orders(ctx context.Context, token, status string, page int) (backend.Page[Order], error) {
	q := url.Values{}
	q.Set("ordering", "-created_at")
	if status != "" {
		q.Set("status", status)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	return backend.GetPage[Order](ctx, c.api, "/api/commerce/orders/", token, q)
}

// MyOrders fetches the signed-in customer's orders.
func (c *Client) MyOrders(ctx context.Context, token string) ([]Order, error) {
	page, err := c.Orders(ctx, token, "", 1)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) CreateOrder(ctx context.Context, token, productID string, quantity int) error {
	return c.api.Post(ctx, "/api/commerce/orders/", token, map[string]interface{}{
		"items": []map[string]interface{}{
			{"product": productID, "quantity": quantity},
		},
	}, nil)
}

func (c *Client) SetStatus(ctx context.Context, token, orderID, status string) error {
	return c.api.Post(ctx, "/api/commerce/orders/"+orderID+"/set_status/", token, map[string]string{
		"status": status,
	}, nil)
}

func (c *Client) DeleteOrder(ctx context.Context, token, orderID string) error {
	return c.api.Delete(ctx, "/api/commerce/orders/"+orderID+"/", token)
}

// PaymentLink asks the backend for the Mercado Pago checkout link of an order.
func (c *Client) PaymentLink(ctx context.Context, token, orderID string) (string, error) {
	var out struct {
		URL       string `json:"url"`
		InitPoint string `json:"init_point"`
	}
	if err := c.api.Post(ctx, "/api/commerce/orders/"+orderID+"/mp_link/", token, nil, &out); err != nil {
		return "", err
	}
	if out.URL != "" {
		return out.URL, nil
	}
	if out.InitPoint != "" {
		return out.InitPoint, nil
	}
	return "", errors.New("la respuesta de pago no trae enlace")
}

func (c *Client) Balance(ctx context.Context, token string) (*Balance, error) {
	var b Balance
	if err := c.api.Get(ctx, "/api/commerce/credits/balance/", token, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) Memberships(ctx context.Context, token string) ([]Membership, error) {
	page, err := backend.GetPage[Membership](ctx, c.api, "/api/commerce/memberships/", token, nil)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}
