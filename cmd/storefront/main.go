package main

import (
	"database/sql"
	"os"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"swiftcart/internal/cart"
	"swiftcart/internal/catalog"
	"swiftcart/internal/web"
	"swiftcart/pkg/kit"
)

func main() {
	service := "storefront"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8080")
	catalogURL := getenv("CATALOG_URL", "https://fakestoreapi.com")

	sessionSecret := os.Getenv("SESSION_SECRET")
	if len(sessionSecret) < 32 {
		log.Fatal("SESSION_SECRET is required and must be at least 32 chars")
	}

	store := newCartStore(log)

	render, err := web.NewRenderer()
	if err != nil {
		log.Fatal("parse templates failed", zap.Error(err))
	}

	s := &web.Server{
		Catalog:       catalog.NewClient(catalogURL),
		Index:         catalog.NewIndex(),
		Carts:         cart.NewService(store, log),
		Sessions:      web.NewSessions(sessionSecret),
		Render:        render,
		Log:           log,
		TrendingLimit: getenvInt("TRENDING_LIMIT", 3),
		RateLimit:     getenvInt("RATE_LIMIT", 0),
	}

	reg := prometheus.NewRegistry()
	h := web.NewHandler(s, web.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func newCartStore(log *zap.Logger) cart.Store {
	backend := getenv("CART_BACKEND", "memory")

	switch backend {
	case "memory":
		return cart.NewMemStore()

	case "redis":
		addr := getenv("REDIS_ADDR", "localhost:6379")
		log.Info("using redis cart store", zap.String("addr", addr))
		return cart.NewRedisStore(addr)

	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			log.Fatal("DATABASE_URL is required for CART_BACKEND=postgres")
		}
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			log.Fatal("open postgres failed", zap.Error(err))
		}
		log.Info("using postgres cart store")
		return cart.NewPostgresStore(db)

	default:
		log.Fatal("unknown CART_BACKEND", zap.String("backend", backend))
		return nil
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
