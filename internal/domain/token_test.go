package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTokenKeyString(t *testing.T) {
	key := TokenKey{Collection: "GALA", Category: "Unit", Type: "none", AdditionalKey: "none"}
	if got := key.String(); got != "GALA|Unit|none|none" {
		t.Errorf("String() = %q", got)
	}
}

func TestSpendableQuantity(t *testing.T) {
	tests := []struct {
		name    string
		balance TokenBalance
		want    string
	}{
		{
			"no holds",
			TokenBalance{Quantity: dec("100")},
			"100",
		},
		{
			"locked and in use",
			TokenBalance{
				Quantity:    dec("100"),
				LockedHolds: []Hold{{Quantity: dec("30")}},
				InUseHolds:  []Hold{{Quantity: dec("20")}},
			},
			"50",
		},
		{
			"multiple holds summed",
			TokenBalance{
				Quantity:    dec("10"),
				LockedHolds: []Hold{{Quantity: dec("2")}, {Quantity: dec("3")}},
			},
			"5",
		},
		{
			"stale snapshot clamps at zero",
			TokenBalance{
				Quantity:    dec("5"),
				LockedHolds: []Hold{{Quantity: dec("10")}},
			},
			"0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.balance.SpendableQuantity()
			if !got.Equal(dec(tt.want)) {
				t.Errorf("SpendableQuantity() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIsNFT(t *testing.T) {
	fungible := TokenBalance{InstanceIDs: []decimal.Decimal{decimal.Zero}}
	if fungible.IsNFT() {
		t.Error("zero-only instance list should not be NFT")
	}

	nft := TokenBalance{InstanceIDs: []decimal.Decimal{dec("1"), dec("2")}}
	if !nft.IsNFT() {
		t.Error("non-zero instance IDs should be NFT")
	}

	empty := TokenBalance{}
	if empty.IsNFT() {
		t.Error("empty instance list should not be NFT")
	}
}

func TestAllowanceRemaining(t *testing.T) {
	a := TokenAllowance{Quantity: dec("1000"), QuantitySpent: dec("50")}
	if got := a.Remaining(); !got.Equal(dec("950")) {
		t.Errorf("Remaining() = %s, want 950", got)
	}

	overspent := TokenAllowance{Quantity: dec("10"), QuantitySpent: dec("15")}
	if got := overspent.Remaining(); !got.IsZero() {
		t.Errorf("overspent Remaining() = %s, want 0", got)
	}
}

func TestAllowanceCoversInstance(t *testing.T) {
	collectionLevel := TokenAllowance{Instance: decimal.Zero}
	if !collectionLevel.CoversInstance(dec("7")) {
		t.Error("collection-level allowance should cover any instance")
	}

	specific := TokenAllowance{Instance: dec("3")}
	if !specific.CoversInstance(dec("3")) {
		t.Error("instance allowance should cover its own instance")
	}
	if specific.CoversInstance(dec("4")) {
		t.Error("instance allowance should not cover other instances")
	}
}

func TestAllowanceTypeString(t *testing.T) {
	if AllowanceMint.String() != "Mint" {
		t.Errorf("Mint.String() = %q", AllowanceMint.String())
	}
	if AllowanceBurn.String() != "Burn" {
		t.Errorf("Burn.String() = %q", AllowanceBurn.String())
	}
}
