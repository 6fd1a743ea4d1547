package display

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/galaport/wallet/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var galaKey = domain.TokenKey{Collection: "GALA", Category: "Unit", Type: "none", AdditionalKey: "none"}
var otherKey = domain.TokenKey{Collection: "Other", Category: "Unit", Type: "none", AdditionalKey: "none"}

func mintAllowance(key domain.TokenKey, quantity string) domain.TokenAllowance {
	return domain.TokenAllowance{Key: key, Type: domain.AllowanceMint, Quantity: dec(quantity)}
}

func burnAllowance(key domain.TokenKey) domain.TokenAllowance {
	return domain.TokenAllowance{Key: key, Type: domain.AllowanceBurn, Quantity: dec("1")}
}

func TestFungibleSpendableArithmetic(t *testing.T) {
	balance := domain.TokenBalance{
		Key:         galaKey,
		Quantity:    dec("100"),
		LockedHolds: []domain.Hold{{Quantity: dec("30")}},
		InUseHolds:  []domain.Hold{{Quantity: dec("20")}},
	}

	ft := ToFungibleToken(balance, nil, nil, domain.TokenMetadata{})
	if !ft.Spendable.Equal(ft.Total.Sub(ft.Locked).Sub(ft.InUse)) {
		t.Errorf("spendable %s != total %s - locked %s - inUse %s",
			ft.Spendable, ft.Total, ft.Locked, ft.InUse)
	}
	if ft.SpendableFormatted != "50" {
		t.Errorf("spendable formatted = %q", ft.SpendableFormatted)
	}
}

func TestFungibleSpendableNeverNegative(t *testing.T) {
	balance := domain.TokenBalance{
		Key:         galaKey,
		Quantity:    dec("10"),
		LockedHolds: []domain.Hold{{Quantity: dec("25")}},
	}

	ft := ToFungibleToken(balance, nil, nil, domain.TokenMetadata{})
	if ft.Spendable.IsNegative() {
		t.Errorf("spendable = %s, must never be negative", ft.Spendable)
	}
	if ft.SpendableFormatted != "0" {
		t.Errorf("spendable formatted = %q, want 0", ft.SpendableFormatted)
	}
}

func TestFungibleCanMint(t *testing.T) {
	balance := domain.TokenBalance{Key: galaKey, Quantity: decimal.Zero}

	withGrant := ToFungibleToken(balance, []domain.TokenAllowance{mintAllowance(galaKey, "100")}, nil, domain.TokenMetadata{})
	if !withGrant.CanMint {
		t.Error("matching mint allowance should set CanMint regardless of balance")
	}

	wrongClass := ToFungibleToken(balance, []domain.TokenAllowance{mintAllowance(otherKey, "100")}, nil, domain.TokenMetadata{})
	if wrongClass.CanMint {
		t.Error("mint allowance for another class must not set CanMint")
	}
}

func TestFungibleCanBurn(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		burns    []domain.TokenAllowance
		want     bool
	}{
		{"ownership alone", "5", nil, true},
		{"allowance alone", "0", []domain.TokenAllowance{burnAllowance(galaKey)}, true},
		{"neither", "0", nil, false},
		{"allowance other class", "0", []domain.TokenAllowance{burnAllowance(otherKey)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance := domain.TokenBalance{Key: galaKey, Quantity: dec(tt.quantity)}
			ft := ToFungibleToken(balance, nil, tt.burns, domain.TokenMetadata{})
			if ft.CanBurn != tt.want {
				t.Errorf("CanBurn = %v, want %v", ft.CanBurn, tt.want)
			}
		})
	}
}

func TestFungibleMetadataFallback(t *testing.T) {
	balance := domain.TokenBalance{Key: galaKey, Quantity: dec("1")}

	named := ToFungibleToken(balance, nil, nil, domain.TokenMetadata{Name: "Gala Token", Symbol: "GALA"})
	if named.Name != "Gala Token" || named.Symbol != "GALA" {
		t.Errorf("metadata not applied: %+v", named)
	}

	bare := ToFungibleToken(balance, nil, nil, domain.TokenMetadata{})
	if bare.Name != "GALA" {
		t.Errorf("name fallback = %q, want collection name", bare.Name)
	}
}
