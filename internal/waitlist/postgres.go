package waitlist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS waitlist (
	email      TEXT PRIMARY KEY,
	joined_on  DATE NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresSink stores signups in a waitlist table. Repeat signups keep the
// original row.
type PostgresSink struct {
	pool *pgxpool.Pool
}

func NewPostgresSink(ctx context.Context, databaseURL string) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresSink{pool: pool}, nil
}

// Migrate creates the waitlist table if it does not exist.
func (s *PostgresSink) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create waitlist table: %w", err)
	}
	return nil
}

func (s *PostgresSink) Add(ctx context.Context, email string, joinedOn time.Time) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO waitlist (email, joined_on)
		VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING`,
		email, joinedOn,
	)
	if err != nil {
		return fmt.Errorf("insert waitlist signup: %w", err)
	}
	return nil
}

// Count returns the number of signups.
func (s *PostgresSink) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM waitlist`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count waitlist: %w", err)
	}
	return n, nil
}

func (s *PostgresSink) Close() {
	s.pool.Close()
}
