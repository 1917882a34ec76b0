package cart

import (
	"context"
	"database/sql"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// PostgresStore persists carts in a single upsert table:
//
//	CREATE TABLE carts (
//	    session_id TEXT PRIMARY KEY,
//	    data       JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) Load(ctx context.Context, sessionID string) (Cart, error) {
	var raw []byte

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT data
			FROM carts
			WHERE session_id = $1
		`, sessionID).Scan(&raw)
	})

	if err == sql.ErrNoRows {
		return Cart{}, nil
	}
	if err != nil {
		return Cart{}, err
	}
	return decode(raw), nil
}

func (s *PostgresStore) Save(ctx context.Context, sessionID string, c Cart) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO carts (session_id, data, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (session_id)
			DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
		`, sessionID, encode(c), time.Now().UTC())
		return err
	})
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
