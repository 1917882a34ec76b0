package web

import (
	"strings"
	"testing"

	"swiftcart/internal/cart"
	"swiftcart/internal/catalog"
)

func TestStars(t *testing.T) {
	tests := []struct {
		rate              float64
		full, half, empty int
	}{
		{rate: 0, empty: 5},
		{rate: 5, full: 5},
		{rate: 4.5, full: 4, half: 1},
		{rate: 3.2, full: 3, empty: 2},
		{rate: 2.9, full: 2, half: 1, empty: 2},
		{rate: 0.5, half: 1, empty: 4},
		{rate: 7, full: 5},
		{rate: -1, empty: 5},
	}

	for _, tt := range tests {
		got := Stars(tt.rate)
		if len(got) != 5 {
			t.Fatalf("Stars(%v) len=%d", tt.rate, len(got))
		}

		var full, half, empty int
		for _, c := range got {
			switch c {
			case "fa-solid fa-star":
				full++
			case "fa-solid fa-star-half-stroke":
				half++
			case "fa-regular fa-star":
				empty++
			default:
				t.Fatalf("Stars(%v) unknown class %q", tt.rate, c)
			}
		}
		if full != tt.full || half != tt.half || empty != tt.empty {
			t.Fatalf("Stars(%v) = %d/%d/%d, want %d/%d/%d",
				tt.rate, full, half, empty, tt.full, tt.half, tt.empty)
		}
	}
}

func TestMoney(t *testing.T) {
	for v, want := range map[float64]string{
		0:     "$0.00",
		9.99:  "$9.99",
		19.98: "$19.98",
		10:    "$10.00",
		0.5:   "$0.50",
	} {
		if got := Money(v); got != want {
			t.Fatalf("Money(%v)=%q want %q", v, got, want)
		}
	}
}

func TestNewCartView(t *testing.T) {
	empty := NewCartView(cart.Cart{})
	if empty.Total != "$0.00" || empty.Count != 0 || len(empty.Rows) != 0 {
		t.Fatalf("empty view = %+v", empty)
	}

	var c cart.Cart
	c.Add(catalog.Product{ID: 1, Title: "Backpack", Price: 9.99})
	c.Add(catalog.Product{ID: 1, Title: "Backpack", Price: 9.99})
	c.Add(catalog.Product{ID: 2, Title: "Monitor", Price: 10})

	v := NewCartView(c)
	if v.Count != 3 || v.Total != "$29.98" {
		t.Fatalf("view = %+v", v)
	}
	if v.Rows[0].Subtotal != "$19.98" || v.Rows[0].UnitPrice != "$9.99" || v.Rows[0].Quantity != 2 {
		t.Fatalf("row 0 = %+v", v.Rows[0])
	}
}

func TestRenderer_CartRegion(t *testing.T) {
	rd, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	buf, err := rd.Render("cart", NewCartView(cart.Cart{}))
	if err != nil {
		t.Fatalf("render empty cart: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "Your cart is empty.") {
		t.Fatalf("empty cart placeholder missing:\n%s", html)
	}
	if !strings.Contains(html, "$0.00") {
		t.Fatalf("empty cart total missing:\n%s", html)
	}

	var c cart.Cart
	c.Add(catalog.Product{ID: 1, Title: "Backpack", Price: 9.99, Image: "https://img.example/1.png"})
	c.Add(catalog.Product{ID: 1, Title: "Backpack", Price: 9.99})

	buf, err = rd.Render("cart", NewCartView(c))
	if err != nil {
		t.Fatalf("render cart: %v", err)
	}
	html = buf.String()
	for _, want := range []string{"Backpack", "$9.99 x 2", "$19.98", `data-delta="-1"`, `data-action="remove-item"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("cart region missing %q:\n%s", want, html)
		}
	}
}

func TestRenderer_GridStates(t *testing.T) {
	rd, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	buf, err := rd.Render("grid", GridView{Failed: true})
	if err != nil {
		t.Fatalf("render failed grid: %v", err)
	}
	if !strings.Contains(buf.String(), "Failed to load products.") {
		t.Fatalf("failure message missing:\n%s", buf.String())
	}

	buf, err = rd.Render("grid", GridView{})
	if err != nil {
		t.Fatalf("render empty grid: %v", err)
	}
	if !strings.Contains(buf.String(), "No products found.") {
		t.Fatalf("empty message missing:\n%s", buf.String())
	}

	buf, err = rd.Render("grid", GridView{Products: []catalog.Product{
		{ID: 1, Title: "Backpack", Price: 109.95, Category: "men's clothing", Rating: catalog.Rating{Rate: 3.9, Count: 120}},
	}})
	if err != nil {
		t.Fatalf("render grid: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"Backpack", "$109.95", "3.9", "(120)", `data-action="add-to-cart"`, `data-action="open-detail"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("card missing %q:\n%s", want, html)
		}
	}
}

func TestRenderer_Modal(t *testing.T) {
	rd, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	p := catalog.Product{
		ID:          7,
		Title:       "Gold Ring",
		Price:       168,
		Category:    "jewelery",
		Description: "A very shiny ring.",
		Rating:      catalog.Rating{Rate: 4.6, Count: 400},
	}

	buf, err := rd.Render("modal", NewModalView(p))
	if err != nil {
		t.Fatalf("render modal: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"Gold Ring", "$168.00", "A very shiny ring.", "jewelery", "(400 reviews)"} {
		if !strings.Contains(html, want) {
			t.Fatalf("modal missing %q:\n%s", want, html)
		}
	}
	if got := strings.Count(html, "fa-solid fa-star-half-stroke"); got != 1 {
		t.Fatalf("half stars=%d want 1", got)
	}
	if got := strings.Count(html, `"fa-solid fa-star"`); got != 4 {
		t.Fatalf("full stars=%d want 4", got)
	}
}
