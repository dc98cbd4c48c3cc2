package studio

import (
	"context"
	"net/url"

	"github.com/gaibarra/33fitstudio/internal/backend"
)

// Client wraps the studio endpoints: locations and the bio-link buttons.
type Client struct {
	api *backend.Client
}

func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

func (c *Client) Locations(ctx context.Context, token string) ([]Location, error) {
	page, err := backend.GetPage[Location](ctx, c.api, "/api/studios/location/", token, nil)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) CreateLocation(ctx context.Context, token string, form LocationForm) error {
	return c.api.Post(ctx, "/api/studios/location/", token, form.payload(), nil)
}

func (c *Client) UpdateLocation(ctx context.Context, token, id string, form LocationForm) error {
	return c.api.Patch(ctx, "/api/studios/location/"+id+"/", token, form.payload(), nil)
}

func (c *Client) DeleteLocation(ctx context.Context, token, id string) error {
	return c.api.Delete(ctx, "/api/studios/location/"+id+"/", token)
}

func (f LocationForm) payload() map[string]interface{} {
	return map[string]interface{}{
		"name":    f.Name,
		"address": f.Address,
		"tz":      f.TZ,
	}
}

// LocationNames builds the id-to-name lookup for the agenda.
func (c *Client) LocationNames(ctx context.Context, token string) (map[string]string, error) {
	items, err := c.Locations(ctx, token)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(items))
	for _, loc := range items {
		names[loc.ID] = loc.Name
	}
	return names, nil
}

func (c *Client) LinkButtons(ctx context.Context, token string) ([]LinkButton, error) {
	page, err := backend.GetPage[LinkButton](ctx, c.api, "/api/studios/linkbutton/", token, nil)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// PublicLinkButtons fetches the bio-link page entries without authentication;
// the studio is selected by query parameter rather than by the tenant header.
func (c *Client) PublicLinkButtons(ctx context.Context, studioID string) ([]LinkButton, error) {
	q := url.Values{}
	q.Set("studio_id", studioID)
	page, err := backend.GetPage[LinkButton](ctx, c.api, "/api/studios/linkbutton/public", "", q)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) CreateLinkButton(ctx context.Context, token string, form LinkButtonForm) error {
	return c.api.Post(ctx, "/api/studios/linkbutton/", token, form.payload(), nil)
}

func (c *Client) UpdateLinkButton(ctx context.Context, token, id string, form LinkButtonForm) error {
	return c.api.Patch(ctx, "/api/studios/linkbutton/"+id+"/", token, form.payload(), nil)
}

func (c *Client) DeleteLinkButton(ctx context.Context, token, id string) error {
	return c.api.Delete(ctx, "/api/studios/linkbutton/"+id+"/", token)
}

func (f LinkButtonForm) payload() map[string]interface{} {
	return map[string]interface{}{
		"label":     f.Label,
		"url":       f.URL,
		"kind":      f.Kind,
		"position":  f.Position,
		"is_active": f.IsActive,
	}
}
