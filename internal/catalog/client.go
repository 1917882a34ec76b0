package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CategoryAll selects the unfiltered products endpoint.
const CategoryAll = "all"

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product mirrors the remote API record shape.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Rating      Rating  `json:"rating"`
}

var (
	ErrNotFound    = errors.New("catalog product not found")
	ErrBadStatus   = errors.New("catalog bad status")
	ErrUnavailable = errors.New("catalog unavailable")
)

// Client is a read-only client for the remote product API. Every call is a
// single best-effort attempt; there is no retry and no response caching.
type Client struct {
	BaseURL string
	Client  *http.Client
}

func NewClient(baseURL string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Categories returns the category names known to the remote API.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, c.BaseURL+"/products/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Products returns the catalog for a category, or the full catalog when
// category is CategoryAll.
func (c *Client) Products(ctx context.Context, category string) ([]Product, error) {
	u := c.BaseURL + "/products"
	if category != CategoryAll {
		u = c.BaseURL + "/products/category/" + url.PathEscape(category)
	}

	var out []Product
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Trending returns the remote API's default ordering truncated to limit.
// There is no ranking logic behind it.
func (c *Client) Trending(ctx context.Context, limit int) ([]Product, error) {
	var out []Product
	u := fmt.Sprintf("%s/products?limit=%d", c.BaseURL, limit)
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Product fetches a single record by identifier.
func (c *Client) Product(ctx context.Context, id int) (Product, error) {
	var p Product
	if err := c.getJSON(ctx, fmt.Sprintf("%s/products/%d", c.BaseURL, id), &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (c *Client) getJSON(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrUnavailable
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return ErrUnavailable
		}
		return ErrUnavailable
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadStatus, err)
	}
	return nil
}
