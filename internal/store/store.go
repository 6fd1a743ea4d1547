// Package store holds the wallet's UI-relevant state: raw balances and
// allowances as private caches, with display records fully rederived on every
// setter. Data volumes are small, so correctness wins over incremental diffing.
package store

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/galaport/wallet/internal/display"
	"github.com/galaport/wallet/internal/domain"
)

// StaleAfter is the read-path staleness window: balances older than this
// should be refetched before display.
const StaleAfter = 30 * time.Second

// SortOption selects the total order for sorted views. Ties keep input order.
type SortOption string

const (
	SortBalanceDesc SortOption = "balance-desc"
	SortBalanceAsc  SortOption = "balance-asc"
	SortNameAsc     SortOption = "name-asc"
	SortNameDesc    SortOption = "name-desc"
	SortMintedAsc   SortOption = "minted-asc"
	SortMintedDesc  SortOption = "minted-desc"
)

// Store is the per-session state container for one wallet's token data.
type Store struct {
	mu sync.RWMutex

	// Raw inputs, kept for rederivation when the other input changes.
	rawBalances   []domain.TokenBalance
	rawAllowances []domain.TokenAllowance
	metadata      map[string]domain.TokenMetadata

	fungibles          []display.FungibleToken
	nfts               []display.NFT
	collections        []display.Collection
	creatorCollections []display.CreatorCollection

	expanded map[string]bool

	sortOption  SortOption
	lastFetched time.Time
	now         func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		metadata:   make(map[string]domain.TokenMetadata),
		expanded:   make(map[string]bool),
		sortOption: SortBalanceDesc,
		now:        time.Now,
	}
}

// SetBalances replaces the raw balance snapshot and rederives all views.
func (s *Store) SetBalances(balances []domain.TokenBalance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawBalances = balances
	s.lastFetched = s.now()
	s.recompute()
}

// SetAllowances replaces the raw allowance snapshot and rederives all views.
func (s *Store) SetAllowances(allowances []domain.TokenAllowance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawAllowances = allowances
	s.recompute()
}

// SetMetadata merges resolved token metadata and rederives all views.
func (s *Store) SetMetadata(metas []domain.TokenMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range metas {
		s.metadata[m.Key.String()] = m
	}
	s.recompute()
}

// SetSortOption changes the order of sorted views.
func (s *Store) SetSortOption(opt SortOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortOption = opt
}

// ToggleExpanded flips the expansion toggle for a creator collection.
func (s *Store) ToggleExpanded(key domain.TokenKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded[key.String()] = !s.expanded[key.String()]
	for i := range s.creatorCollections {
		if s.creatorCollections[i].Key.Matches(key) {
			s.creatorCollections[i].IsExpanded = s.expanded[key.String()]
		}
	}
}

// Clear resets all state to empty.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawBalances = nil
	s.rawAllowances = nil
	s.metadata = make(map[string]domain.TokenMetadata)
	s.expanded = make(map[string]bool)
	s.fungibles = nil
	s.nfts = nil
	s.collections = nil
	s.creatorCollections = nil
	s.lastFetched = time.Time{}
}

// NeedsRefresh reports whether the balance snapshot is stale.
func (s *Store) NeedsRefresh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now().Sub(s.lastFetched) > StaleAfter
}

// recompute rederives every display view from the raw caches.
// Callers must hold the write lock.
func (s *Store) recompute() {
	mints := lo.Filter(s.rawAllowances, func(a domain.TokenAllowance, _ int) bool {
		return a.Type == domain.AllowanceMint
	})
	burns := lo.Filter(s.rawAllowances, func(a domain.TokenAllowance, _ int) bool {
		return a.Type == domain.AllowanceBurn
	})

	s.fungibles = nil
	s.nfts = nil
	for _, balance := range s.rawBalances {
		meta := s.metadata[balance.Key.String()]
		if balance.IsNFT() {
			s.nfts = append(s.nfts, display.ToNFTs(balance, burns, meta)...)
		} else {
			s.fungibles = append(s.fungibles, display.ToFungibleToken(balance, mints, burns, meta))
		}
	}

	s.collections = display.ToCollections(s.nfts, s.metadata)

	s.creatorCollections = lo.Map(mints, func(a domain.TokenAllowance, _ int) display.CreatorCollection {
		cc := display.ToCreatorCollection(a, s.rawBalances, s.metadata[a.Key.String()])
		cc.IsExpanded = s.expanded[a.Key.String()]
		return cc
	})
}

// SortedTokens returns fungible tokens ordered by the current sort option.
func (s *Store) SortedTokens() []display.FungibleToken {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens := slices.Clone(s.fungibles)
	switch s.sortOption {
	case SortBalanceAsc:
		slices.SortStableFunc(tokens, func(a, b display.FungibleToken) int {
			return a.Total.Cmp(b.Total)
		})
	case SortBalanceDesc:
		slices.SortStableFunc(tokens, func(a, b display.FungibleToken) int {
			return b.Total.Cmp(a.Total)
		})
	case SortNameAsc:
		slices.SortStableFunc(tokens, func(a, b display.FungibleToken) int {
			return strings.Compare(a.Name, b.Name)
		})
	case SortNameDesc:
		slices.SortStableFunc(tokens, func(a, b display.FungibleToken) int {
			return strings.Compare(b.Name, a.Name)
		})
	}
	return tokens
}

// SortedCollections returns collections ordered by the current sort option.
func (s *Store) SortedCollections() []display.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	collections := slices.Clone(s.collections)
	switch s.sortOption {
	case SortNameAsc:
		slices.SortStableFunc(collections, func(a, b display.Collection) int {
			return strings.Compare(a.Name, b.Name)
		})
	case SortNameDesc:
		slices.SortStableFunc(collections, func(a, b display.Collection) int {
			return strings.Compare(b.Name, a.Name)
		})
	case SortMintedAsc:
		slices.SortStableFunc(collections, func(a, b display.Collection) int {
			return a.OwnedCount - b.OwnedCount
		})
	case SortMintedDesc:
		slices.SortStableFunc(collections, func(a, b display.Collection) int {
			return b.OwnedCount - a.OwnedCount
		})
	}
	return collections
}

// FilteredNFTs returns NFT records, optionally narrowed to one collection.
func (s *Store) FilteredNFTs(key *domain.TokenKey) []display.NFT {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if key == nil {
		return slices.Clone(s.nfts)
	}
	return lo.Filter(s.nfts, func(n display.NFT, _ int) bool {
		return n.Key.Matches(*key)
	})
}

// CreatorCollections returns the creator-side view of mint allowances.
func (s *Store) CreatorCollections() []display.CreatorCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.creatorCollections)
}

// Balances returns the current raw balance snapshot.
func (s *Store) Balances() []domain.TokenBalance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rawBalances)
}

// TokenKeys returns the distinct token classes present in the snapshot,
// in first-seen order. Used to resolve metadata for the snapshot.
func (s *Store) TokenKeys() []domain.TokenKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.UniqBy(
		lo.Map(s.rawBalances, func(b domain.TokenBalance, _ int) domain.TokenKey {
			return b.Key
		}),
		func(k domain.TokenKey) string { return k.String() },
	)
}
