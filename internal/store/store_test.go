package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/galaport/wallet/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	galaKey  = domain.TokenKey{Collection: "GALA", Category: "Unit", Type: "none", AdditionalKey: "none"}
	townKey  = domain.TokenKey{Collection: "Town", Category: "NFT", Type: "House", AdditionalKey: "none"}
	musicKey = domain.TokenKey{Collection: "Music", Category: "Unit", Type: "none", AdditionalKey: "none"}
)

func fungible(key domain.TokenKey, quantity string) domain.TokenBalance {
	return domain.TokenBalance{Key: key, Quantity: dec(quantity)}
}

func nftBalance(key domain.TokenKey, instances ...string) domain.TokenBalance {
	b := domain.TokenBalance{Key: key, Quantity: decimal.NewFromInt(int64(len(instances)))}
	for _, id := range instances {
		b.InstanceIDs = append(b.InstanceIDs, dec(id))
	}
	return b
}

func TestSetBalancesDerivesViews(t *testing.T) {
	s := New()
	s.SetBalances([]domain.TokenBalance{
		fungible(galaKey, "100"),
		nftBalance(townKey, "1", "2"),
	})

	if got := len(s.SortedTokens()); got != 1 {
		t.Errorf("fungible tokens = %d, want 1", got)
	}
	if got := len(s.FilteredNFTs(nil)); got != 2 {
		t.Errorf("nfts = %d, want 2", got)
	}
	if got := len(s.SortedCollections()); got != 1 {
		t.Errorf("collections = %d, want 1", got)
	}
}

func TestAllowancesRederiveExistingBalances(t *testing.T) {
	s := New()
	s.SetBalances([]domain.TokenBalance{fungible(galaKey, "0")})

	tokens := s.SortedTokens()
	if tokens[0].CanMint {
		t.Fatal("no allowances set yet")
	}

	s.SetAllowances([]domain.TokenAllowance{
		{Key: galaKey, Type: domain.AllowanceMint, Quantity: dec("10")},
	})

	tokens = s.SortedTokens()
	if !tokens[0].CanMint {
		t.Error("setting allowances must rederive capability flags from the cached balances")
	}
}

func TestSortedTokensByBalance(t *testing.T) {
	s := New()
	s.SetBalances([]domain.TokenBalance{
		fungible(galaKey, "10"),
		fungible(musicKey, "500"),
	})

	s.SetSortOption(SortBalanceDesc)
	tokens := s.SortedTokens()
	if tokens[0].Key != musicKey {
		t.Errorf("desc first = %s", tokens[0].Key)
	}

	s.SetSortOption(SortBalanceAsc)
	tokens = s.SortedTokens()
	if tokens[0].Key != galaKey {
		t.Errorf("asc first = %s", tokens[0].Key)
	}
}

func TestSortedTokensByName(t *testing.T) {
	s := New()
	s.SetBalances([]domain.TokenBalance{
		fungible(musicKey, "1"),
		fungible(galaKey, "1"),
	})
	s.SetSortOption(SortNameAsc)

	tokens := s.SortedTokens()
	if tokens[0].Name != "GALA" || tokens[1].Name != "Music" {
		t.Errorf("name order = %q, %q", tokens[0].Name, tokens[1].Name)
	}
}

func TestSortStability(t *testing.T) {
	s := New()
	// Equal balances: input order must be preserved.
	s.SetBalances([]domain.TokenBalance{
		fungible(musicKey, "5"),
		fungible(galaKey, "5"),
	})
	s.SetSortOption(SortBalanceDesc)

	tokens := s.SortedTokens()
	if tokens[0].Key != musicKey || tokens[1].Key != galaKey {
		t.Errorf("tie order not stable: %s, %s", tokens[0].Key, tokens[1].Key)
	}
}

func TestFilteredNFTsByCollection(t *testing.T) {
	s := New()
	s.SetBalances([]domain.TokenBalance{
		nftBalance(townKey, "1", "2"),
		nftBalance(musicKey, "7"),
	})

	filtered := s.FilteredNFTs(&townKey)
	if len(filtered) != 2 {
		t.Errorf("filtered = %d, want 2", len(filtered))
	}
	for _, n := range filtered {
		if n.Key != townKey {
			t.Errorf("unexpected key %s", n.Key)
		}
	}
}

func TestCreatorCollectionsAndToggle(t *testing.T) {
	s := New()
	s.SetBalances([]domain.TokenBalance{nftBalance(townKey, "1", "2")})
	s.SetAllowances([]domain.TokenAllowance{
		{Key: townKey, Type: domain.AllowanceMint, Quantity: dec("1000"), QuantitySpent: dec("50")},
	})

	ccs := s.CreatorCollections()
	if len(ccs) != 1 {
		t.Fatalf("creator collections = %d, want 1", len(ccs))
	}
	if ccs[0].MintAllowanceRaw != "950" {
		t.Errorf("remaining = %q", ccs[0].MintAllowanceRaw)
	}
	if ccs[0].IsExpanded {
		t.Error("collections start collapsed")
	}

	s.ToggleExpanded(townKey)
	if !s.CreatorCollections()[0].IsExpanded {
		t.Error("toggle should expand")
	}

	// Expansion survives recomputation.
	s.SetAllowances([]domain.TokenAllowance{
		{Key: townKey, Type: domain.AllowanceMint, Quantity: dec("1000"), QuantitySpent: dec("60")},
	})
	if !s.CreatorCollections()[0].IsExpanded {
		t.Error("expansion must survive rederivation")
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.SetBalances([]domain.TokenBalance{fungible(galaKey, "1")})
	s.Clear()

	if len(s.SortedTokens()) != 0 || len(s.FilteredNFTs(nil)) != 0 || len(s.SortedCollections()) != 0 {
		t.Error("clear must empty all views")
	}
	if !s.NeedsRefresh() {
		t.Error("cleared store must need refresh")
	}
}

func TestNeedsRefresh(t *testing.T) {
	s := New()
	now := time.Now()
	s.now = func() time.Time { return now }

	s.SetBalances(nil)
	if s.NeedsRefresh() {
		t.Error("freshly set store must not need refresh")
	}

	s.now = func() time.Time { return now.Add(StaleAfter + time.Second) }
	if !s.NeedsRefresh() {
		t.Error("store must go stale after the window")
	}
}

func TestTokenKeys(t *testing.T) {
	s := New()
	s.SetBalances([]domain.TokenBalance{
		fungible(galaKey, "1"),
		nftBalance(townKey, "1"),
		fungible(galaKey, "2"),
	})

	keys := s.TokenKeys()
	if len(keys) != 2 {
		t.Errorf("distinct keys = %d, want 2", len(keys))
	}
}
