// Package session persists the per-wallet "was connected" flag that drives
// auto-reconnect on startup.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository stores the auto-reconnect flag per wallet address.
type Repository interface {
	SetConnected(ctx context.Context, wallet string, connected bool) error
	WasConnected(ctx context.Context, wallet string) (bool, error)
	LastConnected(ctx context.Context) (string, bool, error)
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL session repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) SetConnected(ctx context.Context, wallet string, connected bool) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO wallet_sessions (wallet, connected, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (wallet)
		 DO UPDATE SET connected = $2, updated_at = NOW()`,
		wallet, connected)
	if err != nil {
		return fmt.Errorf("saving session for %s: %w", wallet, err)
	}
	return nil
}

func (r *PgRepository) WasConnected(ctx context.Context, wallet string) (bool, error) {
	var connected bool
	err := r.pool.QueryRow(ctx,
		`SELECT connected FROM wallet_sessions WHERE wallet = $1`, wallet).Scan(&connected)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("reading session for %s: %w", wallet, err)
	}
	return connected, nil
}

// LastConnected returns the most recently updated connected wallet, if any.
func (r *PgRepository) LastConnected(ctx context.Context) (string, bool, error) {
	var wallet string
	err := r.pool.QueryRow(ctx,
		`SELECT wallet FROM wallet_sessions
		 WHERE connected
		 ORDER BY updated_at DESC
		 LIMIT 1`).Scan(&wallet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading last session: %w", err)
	}
	return wallet, true, nil
}
