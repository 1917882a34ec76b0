package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"swiftcart/internal/cart"
	"swiftcart/internal/catalog"
	"swiftcart/pkg/kit"
)

// Server is the storefront: catalog reads on one side, the session cart
// on the other, rendered regions out.
type Server struct {
	Catalog  *catalog.Client
	Index    *catalog.Index
	Carts    *cart.Service
	Sessions *Sessions
	Render   *Renderer
	Log      *zap.Logger

	TrendingLimit int

	// RateLimit caps cart mutations per client IP per minute; zero
	// disables limiting. Reads are never limited.
	RateLimit int
}

const defaultTrendingLimit = 3

func (s *Server) trendingLimit() int {
	if s.TrendingLimit > 0 {
		return s.TrendingLimit
	}
	return defaultTrendingLimit
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Carts.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(ur chi.Router) {
		ur.Use(s.Sessions.Middleware)

		ur.Get("/", s.homePage)
		ur.Get("/products", s.productsPage)
		ur.Get("/products/{id}/modal", s.productModal)

		ur.Get("/fragments/categories", s.categoriesFragment)
		ur.Get("/fragments/products", s.productsFragment)
		ur.Get("/fragments/trending", s.trendingFragment)
		ur.Get("/fragments/cart", s.cartFragment)

		ur.Get("/cart", s.cartJSON)

		mutate := ur.With()
		if s.RateLimit > 0 {
			limiter := kit.NewIPRateLimiter(s.RateLimit, time.Minute)
			mutate = ur.With(limiter.Middleware)
		}
		mutate.Post("/cart/items", s.addToCart)
		mutate.Delete("/cart/items/{id}", s.removeFromCart)
		mutate.Patch("/cart/items/{id}", s.adjustQuantity)
	})

	return r
}

// --- Pages ---

func (s *Server) homePage(w http.ResponseWriter, r *http.Request) {
	// A failed trending fetch leaves the section empty; the page still loads.
	trending, err := s.Catalog.Trending(r.Context(), s.trendingLimit())
	if err != nil {
		s.logFetchErr("trending", err)
		trending = nil
	} else {
		s.Index.Put(trending)
	}

	s.renderHTML(w, r, "home", homeData{
		Cart:     s.cartView(r),
		Trending: trending,
	})
}

func (s *Server) productsPage(w http.ResponseWriter, r *http.Request) {
	category := categoryParam(r)

	// A failed category fetch leaves only the pinned "all" control.
	categories, err := s.Catalog.Categories(r.Context())
	if err != nil {
		s.logFetchErr("categories", err)
		categories = nil
	}

	grid := s.fetchGrid(r.Context(), category)

	s.renderHTML(w, r, "products", productsData{
		Cart:       s.cartView(r),
		Categories: CategoriesView{Categories: categories, Active: category},
		Grid:       grid,
	})
}

// --- Fragments ---

func (s *Server) categoriesFragment(w http.ResponseWriter, r *http.Request) {
	categories, err := s.Catalog.Categories(r.Context())
	if err != nil {
		// The client keeps its current category controls.
		s.logFetchErr("categories", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.renderHTML(w, r, "categories", CategoriesView{
		Categories: categories,
		Active:     categoryParam(r),
	})
}

func (s *Server) productsFragment(w http.ResponseWriter, r *http.Request) {
	grid := s.fetchGrid(r.Context(), categoryParam(r))
	s.renderHTML(w, r, "grid", grid)
}

func (s *Server) trendingFragment(w http.ResponseWriter, r *http.Request) {
	trending, err := s.Catalog.Trending(r.Context(), s.trendingLimit())
	if err != nil {
		// The trending region simply stays empty.
		s.logFetchErr("trending", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.Index.Put(trending)
	s.renderHTML(w, r, "trending", trending)
}

func (s *Server) productModal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	p, err := s.Catalog.Product(r.Context(), id)
	if err != nil {
		// The detail view does not open.
		s.logFetchErr("product detail", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.Index.Put([]catalog.Product{p})
	s.renderHTML(w, r, "modal", NewModalView(p))
}

func (s *Server) cartFragment(w http.ResponseWriter, r *http.Request) {
	s.renderHTML(w, r, "cart", s.cartView(r))
}

// --- Cart commands ---

type cartResponse struct {
	Entries []cart.Entry `json:"entries"`
	Total   float64      `json:"total"`
	Count   int          `json:"count"`
}

func (s *Server) cartJSON(w http.ResponseWriter, r *http.Request) {
	sid, _ := SessionFromContext(r.Context())
	c := s.Carts.Get(r.Context(), sid)

	kit.WriteJSON(w, http.StatusOK, cartResponse{
		Entries: c,
		Total:   c.Total(),
		Count:   c.Count(),
	})
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad form", nil)
		return
	}

	id, err := strconv.Atoi(r.PostFormValue("product_id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	p, ok := s.Index.Get(id)
	if !ok {
		// Not in the last fetched catalog; one direct lookup before giving up.
		p, err = s.Catalog.Product(r.Context(), id)
		if errors.Is(err, catalog.ErrNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, "unknown product", map[string]any{"id": id})
			return
		}
		if err != nil {
			s.logFetchErr("product lookup", err)
			kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog unavailable", nil)
			return
		}
		s.Index.Put([]catalog.Product{p})
	}

	sid, _ := SessionFromContext(r.Context())
	c := s.Carts.Add(r.Context(), sid, p)
	s.renderHTML(w, r, "cart", NewCartView(c))
}

func (s *Server) removeFromCart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	sid, _ := SessionFromContext(r.Context())
	c := s.Carts.Remove(r.Context(), sid, id)
	s.renderHTML(w, r, "cart", NewCartView(c))
}

func (s *Server) adjustQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad form", nil)
		return
	}
	delta, err := strconv.Atoi(r.PostFormValue("delta"))
	if err != nil || delta == 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "bad delta", nil)
		return
	}

	sid, _ := SessionFromContext(r.Context())
	c := s.Carts.AdjustQuantity(r.Context(), sid, id, delta)
	s.renderHTML(w, r, "cart", NewCartView(c))
}

// --- Helpers ---

func categoryParam(r *http.Request) string {
	if c := r.URL.Query().Get("category"); c != "" {
		return c
	}
	return catalog.CategoryAll
}

func (s *Server) fetchGrid(ctx context.Context, category string) GridView {
	products, err := s.Catalog.Products(ctx, category)
	if err != nil {
		s.logFetchErr("products", err)
		return GridView{Failed: true}
	}

	s.Index.Put(products)
	return GridView{Products: products}
}

func (s *Server) cartView(r *http.Request) CartView {
	sid, _ := SessionFromContext(r.Context())
	return NewCartView(s.Carts.Get(r.Context(), sid))
}

func (s *Server) renderHTML(w http.ResponseWriter, r *http.Request, name string, data any) {
	buf, err := s.Render.Render(name, data)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("render fragment failed", zap.String("template", name), zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteHTML(w, http.StatusOK, buf)
}

func (s *Server) logFetchErr(what string, err error) {
	if s.Log != nil {
		s.Log.Error("catalog fetch failed", zap.String("what", what), zap.Error(err))
	}
}
