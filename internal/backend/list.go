package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
)

// Page is one page of a backend list. The backend answers either a bare JSON
// array or a paginated envelope {count, next, previous, results}; a bare
// array degrades to a single unpaginated page.
type Page[T any] struct {
	Items       []T
	Count       int
	Paginated   bool
	HasNext     bool
	HasPrevious bool
}

// PageCount derives the total number of pages from the envelope count and the
// size of the current page. Zero when unknown.
func (p Page[T]) PageCount() int {
	if !p.Paginated || p.Count == 0 || len(p.Items) == 0 {
		return 0
	}
	pages := p.Count / len(p.Items)
	if p.Count%len(p.Items) != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return pages
}

type listEnvelope struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  json.RawMessage `json:"results"`
}

// GetPage fetches a list endpoint and decodes either response shape.
func GetPage[T any](ctx context.Context, c *Client, path, token string, query url.Values) (Page[T], error) {
	full := path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	var raw json.RawMessage
	if err := c.Get(ctx, full, token, &raw); err != nil {
		return Page[T]{}, err
	}
	return DecodePage[T](raw)
}

func DecodePage[T any](raw []byte) (Page[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Page[T]{}, err
		}
		return Page[T]{Items: items, Count: len(items)}, nil
	}

	var env listEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Page[T]{}, err
	}
	page := Page[T]{
		Count:       env.Count,
		Paginated:   true,
		HasNext:     env.Next != nil && *env.Next != "",
		HasPrevious: env.Previous != nil && *env.Previous != "",
	}
	if len(env.Results) > 0 {
		if err := json.Unmarshal(env.Results, &page.Items); err != nil {
			return Page[T]{}, err
		}
	}
	return page, nil
}
