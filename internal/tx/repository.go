package tx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HistoryRecord is a terminal transaction persisted for a wallet.
type HistoryRecord struct {
	ID          string    `json:"id"`
	Wallet      string    `json:"wallet"`
	Type        Type      `json:"type"`
	Status      Status    `json:"status"`
	Description string    `json:"description"`
	Hash        string    `json:"hash,omitempty"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ErrInvalidRecord indicates a record missing its identity fields.
var ErrInvalidRecord = errors.New("transaction record missing id or wallet")

// Repository defines persistent storage for terminal transactions.
type Repository interface {
	Save(ctx context.Context, rec HistoryRecord) error
	ListRecent(ctx context.Context, wallet string, limit int) ([]HistoryRecord, error)
	DeleteForWallet(ctx context.Context, wallet string) error
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL transaction history repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Save(ctx context.Context, rec HistoryRecord) error {
	if rec.ID == "" || rec.Wallet == "" {
		return ErrInvalidRecord
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO wallet_transactions (id, wallet, tx_type, status, description, tx_hash, error, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id)
		 DO UPDATE SET status = $4, tx_hash = $6, error = $7`,
		rec.ID, rec.Wallet, rec.Type, rec.Status, rec.Description, rec.Hash, rec.Error, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving transaction %s: %w", rec.ID, err)
	}
	return nil
}

func (r *PgRepository) ListRecent(ctx context.Context, wallet string, limit int) ([]HistoryRecord, error) {
	if limit <= 0 {
		limit = RecentCap
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, wallet, tx_type, status, description, tx_hash, error, created_at
		 FROM wallet_transactions
		 WHERE wallet = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, wallet, limit)
	if err != nil {
		return nil, fmt.Errorf("listing transactions for %s: %w", wallet, err)
	}
	defer rows.Close()

	var records []HistoryRecord
	for rows.Next() {
		var rec HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.Wallet, &rec.Type, &rec.Status,
			&rec.Description, &rec.Hash, &rec.Error, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}
	return records, nil
}

func (r *PgRepository) DeleteForWallet(ctx context.Context, wallet string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM wallet_transactions WHERE wallet = $1`, wallet)
	if err != nil {
		return fmt.Errorf("deleting transactions for %s: %w", wallet, err)
	}
	return nil
}
