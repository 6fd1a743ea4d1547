// Package export builds holdings reports from the dashboard store and writes
// them to spreadsheet destinations.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/galaport/wallet/internal/display"
	"github.com/galaport/wallet/internal/store"
	"github.com/galaport/wallet/internal/wallet"
)

// Report is one snapshot of the connected wallet's holdings.
type Report struct {
	Wallet      string
	GeneratedAt time.Time
	Tokens      []display.FungibleToken
	Collections []display.Collection
}

// SheetWriter writes a holdings report to a spreadsheet destination.
type SheetWriter interface {
	Write(ctx context.Context, report Report) error
}

// AddressSource reports the current wallet connection state.
type AddressSource interface {
	State() wallet.State
}

// Service assembles reports from store state and delegates writing.
type Service struct {
	wallet AddressSource
	store  *store.Store
	writer SheetWriter
	now    func() time.Time
}

// NewService creates a new export Service.
func NewService(w AddressSource, s *store.Store, writer SheetWriter) *Service {
	return &Service{
		wallet: w,
		store:  s,
		writer: writer,
		now:    time.Now,
	}
}

// Export writes the current holdings to the configured destination.
// Implements worker.Exporter. A disconnected wallet exports nothing.
func (s *Service) Export(ctx context.Context) error {
	state := s.wallet.State()
	if !state.Connected {
		return nil
	}

	report := Report{
		Wallet:      state.Address,
		GeneratedAt: s.now().UTC(),
		Tokens:      s.store.SortedTokens(),
		Collections: s.store.SortedCollections(),
	}

	if err := s.writer.Write(ctx, report); err != nil {
		return fmt.Errorf("writing holdings report: %w", err)
	}
	return nil
}

// buildTokens builds the TOKENS sheet data.
// Columns: Collection | Category | Type | AdditionalKey | Name | Symbol | Total | Locked | InUse | Spendable | Mint | Burn | Transfer
func buildTokens(report Report) [][]any {
	data := make([][]any, 0, len(report.Tokens)+1)
	data = append(data, []any{
		"Collection", "Category", "Type", "AdditionalKey",
		"Name", "Symbol",
		"Total", "Locked", "InUse", "Spendable",
		"Mint", "Burn", "Transfer",
	})

	for _, tok := range report.Tokens {
		data = append(data, []any{
			tok.Key.Collection, tok.Key.Category, tok.Key.Type, tok.Key.AdditionalKey,
			tok.Name, tok.Symbol,
			toFloat(tok.Total), toFloat(tok.Locked), toFloat(tok.InUse), toFloat(tok.Spendable),
			boolCell(tok.CanMint), boolCell(tok.CanBurn), boolCell(tok.CanTransfer),
		})
	}

	return data
}

// buildCollections builds the COLLECTIONS sheet data.
// Columns: Collection | Category | Type | AdditionalKey | Name | Owned
func buildCollections(report Report) [][]any {
	data := make([][]any, 0, len(report.Collections)+1)
	data = append(data, []any{
		"Collection", "Category", "Type", "AdditionalKey", "Name", "Owned",
	})

	for _, col := range report.Collections {
		data = append(data, []any{
			col.Key.Collection, col.Key.Category, col.Key.Type, col.Key.AdditionalKey,
			col.Name, col.OwnedCount,
		})
	}

	return data
}

func boolCell(b bool) int {
	if b {
		return 1
	}
	return 0
}
