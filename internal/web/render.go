package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"

	"swiftcart/internal/cart"
	"swiftcart/internal/catalog"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Money formats a dollar amount to two decimal places.
func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Stars maps a rating onto five glyph classes: floor(rate) full stars,
// one half star when the remainder is at least 0.5, empty for the rest.
func Stars(rate float64) []string {
	if rate < 0 {
		rate = 0
	}
	if rate > 5 {
		rate = 5
	}

	full := int(math.Floor(rate))
	half := rate-math.Floor(rate) >= 0.5

	out := make([]string, 0, 5)
	for i := 0; i < full; i++ {
		out = append(out, "fa-solid fa-star")
	}
	if half {
		out = append(out, "fa-solid fa-star-half-stroke")
	}
	for len(out) < 5 {
		out = append(out, "fa-regular fa-star")
	}
	return out
}

// CartRow is one rendered cart line.
type CartRow struct {
	ID        int
	Title     string
	Image     string
	UnitPrice string
	Quantity  int
	Subtotal  string
}

// CartView is the fully derived cart region: rows, badge count and the
// formatted grand total. An empty cart totals exactly "$0.00".
type CartView struct {
	Rows  []CartRow
	Count int
	Total string
}

func NewCartView(c cart.Cart) CartView {
	v := CartView{
		Rows:  make([]CartRow, 0, len(c)),
		Count: c.Count(),
		Total: Money(c.Total()),
	}
	for _, e := range c {
		v.Rows = append(v.Rows, CartRow{
			ID:        e.ID,
			Title:     e.Title,
			Image:     e.Image,
			UnitPrice: Money(e.Price),
			Quantity:  e.Quantity,
			Subtotal:  Money(e.Price * float64(e.Quantity)),
		})
	}
	return v
}

type CategoriesView struct {
	Categories []string
	Active     string
}

type GridView struct {
	Products []catalog.Product
	Failed   bool
}

type ModalView struct {
	Product catalog.Product
	Stars   []string
}

func NewModalView(p catalog.Product) ModalView {
	return ModalView{Product: p, Stars: Stars(p.Rating.Rate)}
}

type homeData struct {
	Cart     CartView
	Trending []catalog.Product
}

type productsData struct {
	Cart       CartView
	Categories CategoriesView
	Grid       GridView
}

// Renderer projects state into display regions. It holds the parsed
// template set and nothing else.
type Renderer struct {
	t *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"money": Money,
		"stars": Stars,
	}).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Renderer{t: t}, nil
}

func (r *Renderer) Render(name string, data any) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return &buf, nil
}
