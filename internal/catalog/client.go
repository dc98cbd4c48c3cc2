package catalog

import (
	"context"

	"github.com/gaibarra/33fitstudio/internal/backend"
)

// Client wraps the catalog endpoints. The public storefront pages call these
// without a token; the admin screens pass the operator's access token.
type Client struct {
	api *backend.Client
}

func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

func (c *Client) ClassTypes(ctx context.Context, token string) ([]ClassType, error) {
	page, err := backend.GetPage[ClassType](ctx, c.api, "/api/catalog/class-types/", token, nil)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) CreateClassType(ctx context.Context, token string, form ClassTypeForm) error {
	return c.api.Post(ctx, "/api/catalog/class-types/", token, form.payload(), nil)
}

func (c *Client) UpdateClassType(ctx context.Context, token, id string, form ClassTypeForm) error {
	return c.api.Patch(ctx, "/api/catalog/class-types/"+id+"/", token, form.payload(), nil)
}

func (c *Client) DeleteClassType(ctx context.Context, token, id string) error {
	return c.api.Delete(ctx, "/api/catalog/class-types/"+id+"/", token)
}

func (f ClassTypeForm) payload() map[string]interface{} {
	return map[string]interface{}{
		"name":             f.Name,
		"description":      f.Description,
		"duration_minutes": f.DurationMinutes,
	}
}

func (c *Client) Instructors(ctx context.Context, token string) ([]Instructor, error) {
	page, err := backend.GetPage[Instructor](ctx, c.api, "/api/catalog/instructors/", token, nil)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) CreateInstructor(ctx context.Context, token string, form InstructorForm) error {
	return c.api.Post(ctx, "/api/catalog/instructors/", token, form.payload(), nil)
}

func (c *Client) UpdateInstructor(ctx context.Context, token, id string, form InstructorForm) error {
	return c.api.Patch(ctx, "/api/catalog/instructors/"+id+"/", token, form.payload(), nil)
}

func (c *Client) DeleteInstructor(ctx context.Context, token, id string) error {
	return c.api.Delete(ctx, "/api/catalog/instructors/"+id+"/", token)
}

func (f InstructorForm) payload() map[string]interface{} {
	return map[string]interface{}{
		"full_name": f.FullName,
		"bio":       f.Bio,
		"is_active": f.IsActive,
	}
}

func (c *Client) Products(ctx context.Context, token string) ([]Product, error) {
	page, err := backend.GetPage[Product](ctx, c.api, "/api/catalog/products/", token, nil)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, form ProductForm) error {
	return c.api.Post(ctx, "/api/catalog/products/", token, form.payload(), nil)
}

func (c *Client) UpdateProduct(ctx context.Context, token, id string, form ProductForm) error {
	return c.api.Patch(ctx, "/api/catalog/products/"+id+"/", token, form.payload(), nil)
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.api.Delete(ctx, "/api/catalog/products/"+id+"/", token)
}

func (f ProductForm) payload() map[string]interface{} {
	currency := f.Currency
	if currency == "" {
		currency = "MXN"
	}
	return map[string]interface{}{
		"type":        f.Type,
		"name":        f.Name,
		"description": f.Description,
		"price_cents": f.PriceCents,
		"currency":    currency,
		"is_active":   f.IsActive,
		"meta":        f.Meta(),
	}
}

// ClassTypeNames builds the id-to-name lookup the agenda and reports use to
// label sessions.
func (c *Client) ClassTypeNames(ctx context.Context, token string) (map[string]string, error) {
	items, err := c.ClassTypes(ctx, token)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(items))
	for _, ct := range items {
		names[ct.ID] = ct.Name
	}
	return names, nil
}

func (c *Client) InstructorNames(ctx context.Context, token string) (map[string]string, error) {
	items, err := c.Instructors(ctx, token)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(items))
	for _, in := range items {
		names[in.ID] = in.FullName
	}
	return names, nil
}
