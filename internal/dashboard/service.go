// Package dashboard orchestrates the read and write flows of the wallet
// dashboard: refreshing store state from the chain and running write
// operations with transaction/toast bookkeeping.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/galaport/wallet/internal/chainclient"
	"github.com/galaport/wallet/internal/domain"
	"github.com/galaport/wallet/internal/gateway"
	"github.com/galaport/wallet/internal/signer"
	"github.com/galaport/wallet/internal/store"
	"github.com/galaport/wallet/internal/tx"
	"github.com/galaport/wallet/internal/wallet"
)

// Reader is the unsigned read path of the chain gateway.
type Reader interface {
	FetchBalances(ctx context.Context, owner string) ([]domain.TokenBalance, error)
	FetchAllowances(ctx context.Context, grantedTo string, filter gateway.AllowanceFilter) ([]domain.TokenAllowance, error)
}

// Writer is the signed write path.
type Writer interface {
	Transfer(ctx context.Context, from, to string, key domain.TokenKey, instance, quantity decimal.Decimal) (signer.Result, error)
	Mint(ctx context.Context, owner string, key domain.TokenKey, quantity decimal.Decimal) (signer.Result, error)
	Burn(ctx context.Context, owner string, key domain.TokenKey, instance, quantity decimal.Decimal) (signer.Result, error)
	CreateCollection(ctx context.Context, spec chainclient.CollectionSpec) (signer.Result, error)
	GrantAllowance(ctx context.Context, key domain.TokenKey, grantedTo string, allowanceType domain.AllowanceType, quantity, uses decimal.Decimal, expires int64) (signer.Result, error)
}

// MetadataResolver resolves token-class metadata.
type MetadataResolver interface {
	Fetch(ctx context.Context, key domain.TokenKey) (domain.TokenMetadata, error)
}

// Service wires the wallet, stores, and chain clients together.
type Service struct {
	wallet   *wallet.Service
	reader   Reader
	writer   Writer
	metadata MetadataResolver
	store    *store.Store
	txs      *tx.Store
	history  tx.Repository // optional
}

// NewService creates the dashboard service. metadata and history may be nil.
func NewService(w *wallet.Service, reader Reader, writer Writer, metadata MetadataResolver, s *store.Store, txs *tx.Store, history tx.Repository) *Service {
	return &Service{
		wallet:   w,
		reader:   reader,
		writer:   writer,
		metadata: metadata,
		store:    s,
		txs:      txs,
		history:  history,
	}
}

// Refresh fetches balances and allowances for the connected wallet and
// replaces the store's raw snapshots, then resolves metadata for the classes
// present. Not connected is not an error; there is simply nothing to load.
func (s *Service) Refresh(ctx context.Context) error {
	state := s.wallet.State()
	if !state.Connected {
		return nil
	}

	balances, err := s.reader.FetchBalances(ctx, state.Address)
	if err != nil {
		return fmt.Errorf("refreshing balances: %w", err)
	}
	s.store.SetBalances(balances)

	allowances, err := s.reader.FetchAllowances(ctx, state.Address, gateway.AllowanceFilter{})
	if err != nil {
		return fmt.Errorf("refreshing allowances: %w", err)
	}
	s.store.SetAllowances(allowances)

	s.resolveMetadata(ctx)
	return nil
}

// RefreshIfStale refreshes only when the store's snapshot is older than the
// staleness window.
func (s *Service) RefreshIfStale(ctx context.Context) error {
	if !s.store.NeedsRefresh() {
		return nil
	}
	return s.Refresh(ctx)
}

func (s *Service) resolveMetadata(ctx context.Context) {
	if s.metadata == nil {
		return
	}
	var metas []domain.TokenMetadata
	for _, key := range s.store.TokenKeys() {
		meta, err := s.metadata.Fetch(ctx, key)
		if err != nil {
			slog.Warn("metadata resolution failed", "token", key, "error", err)
			continue
		}
		metas = append(metas, meta)
	}
	if len(metas) > 0 {
		s.store.SetMetadata(metas)
	}
}

// Transfer sends tokens to another wallet with full lifecycle bookkeeping.
func (s *Service) Transfer(ctx context.Context, to string, key domain.TokenKey, instance, quantity decimal.Decimal) error {
	return s.run(ctx, tx.TypeTransfer,
		fmt.Sprintf("Transfer %s %s to %s", quantity, key.Collection, to),
		func(ctx context.Context, from string) (signer.Result, error) {
			return s.writer.Transfer(ctx, from, to, key, instance, quantity)
		})
}

// Mint mints tokens to the connected wallet.
func (s *Service) Mint(ctx context.Context, key domain.TokenKey, quantity decimal.Decimal) error {
	return s.run(ctx, tx.TypeMint,
		fmt.Sprintf("Mint %s %s", quantity, key.Collection),
		func(ctx context.Context, owner string) (signer.Result, error) {
			return s.writer.Mint(ctx, owner, key, quantity)
		})
}

// Burn destroys tokens owned by the connected wallet.
func (s *Service) Burn(ctx context.Context, key domain.TokenKey, instance, quantity decimal.Decimal) error {
	return s.run(ctx, tx.TypeBurn,
		fmt.Sprintf("Burn %s %s", quantity, key.Collection),
		func(ctx context.Context, owner string) (signer.Result, error) {
			return s.writer.Burn(ctx, owner, key, instance, quantity)
		})
}

// CreateCollection creates a new token class.
func (s *Service) CreateCollection(ctx context.Context, spec chainclient.CollectionSpec) error {
	return s.run(ctx, tx.TypeCreateCollection,
		fmt.Sprintf("Create collection %s", spec.Key.Collection),
		func(ctx context.Context, _ string) (signer.Result, error) {
			return s.writer.CreateCollection(ctx, spec)
		})
}

// GrantAllowance grants a capability on a token class to another wallet.
func (s *Service) GrantAllowance(ctx context.Context, key domain.TokenKey, grantedTo string, allowanceType domain.AllowanceType, quantity, uses decimal.Decimal, expires int64) error {
	return s.run(ctx, tx.TypeGrantAllowance,
		fmt.Sprintf("Grant %s allowance on %s to %s", allowanceType, key.Collection, grantedTo),
		func(ctx context.Context, _ string) (signer.Result, error) {
			return s.writer.GrantAllowance(ctx, key, grantedTo, allowanceType, quantity, uses, expires)
		})
}

// run executes one write operation: pending record and toast first, then the
// signed call, then the terminal transition. Errors are surfaced to the
// bookkeeping and re-thrown to the caller; nothing is retried.
func (s *Service) run(ctx context.Context, txType tx.Type, description string, op func(ctx context.Context, owner string) (signer.Result, error)) error {
	state := s.wallet.State()
	if !state.Connected {
		return fmt.Errorf("no wallet connected")
	}

	txID, _ := s.txs.AddPending(txType, description)
	s.txs.MarkConfirming(txID)

	result, err := op(ctx, state.Address)
	if err != nil {
		s.txs.MarkFailed(txID, err.Error())
		s.persist(ctx, state.Address, txID)
		return err
	}

	s.txs.MarkComplete(txID, result.Hash)
	s.persist(ctx, state.Address, txID)
	return nil
}

// persist writes the terminal transaction to history. Persistence failures
// are logged, not surfaced; the in-memory bookkeeping is authoritative for
// the session.
func (s *Service) persist(ctx context.Context, walletAddr, txID string) {
	if s.history == nil {
		return
	}
	for _, rec := range s.txs.Recent() {
		if rec.ID != txID {
			continue
		}
		err := s.history.Save(ctx, tx.HistoryRecord{
			ID:          rec.ID,
			Wallet:      walletAddr,
			Type:        rec.Type,
			Status:      rec.Status,
			Description: rec.Description,
			Hash:        rec.Hash,
			Error:       rec.Error,
			CreatedAt:   rec.CreatedAt,
		})
		if err != nil {
			slog.Warn("failed to persist transaction", "tx", txID, "error", err)
		}
		return
	}
}
