//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"
)

// Exercises a running storefront (docker compose up) against the live
// product API end to end: page load, category browse, cart mutations.
var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

func TestSystem_E2E(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	c := &http.Client{Jar: jar, Timeout: 15 * time.Second}

	body := getOK(t, c, baseURL+"/products")
	if !strings.Contains(body, `data-category="all"`) {
		t.Fatalf("products page missing category controls")
	}
	if !strings.Contains(body, "product-card") {
		t.Fatalf("products page missing product cards")
	}

	resp, err := c.PostForm(baseURL+"/cart/items", url.Values{"product_id": {"1"}})
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add to cart status=%d", resp.StatusCode)
	}

	var cartResp struct {
		Total float64 `json:"total"`
		Count int     `json:"count"`
	}
	if err := json.Unmarshal([]byte(getOK(t, c, baseURL+"/cart")), &cartResp); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if cartResp.Count != 1 || cartResp.Total <= 0 {
		t.Fatalf("cart after add: %+v", cartResp)
	}

	req, _ := http.NewRequest(http.MethodDelete, baseURL+"/cart/items/1", nil)
	resp, err = c.Do(req)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove status=%d", resp.StatusCode)
	}

	if err := json.Unmarshal([]byte(getOK(t, c, baseURL+"/cart")), &cartResp); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if cartResp.Count != 0 || cartResp.Total != 0 {
		t.Fatalf("cart after remove: %+v", cartResp)
	}
}

func getOK(t *testing.T, c *http.Client, url string) string {
	t.Helper()

	resp, err := c.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get %s status=%d body=%s", url, resp.StatusCode, string(raw))
	}
	return string(raw)
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}

		select {
		case <-ctx.Done():
			t.Fatalf("service never became ready: %v", ctx.Err())
		case <-time.After(2 * time.Second):
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
