package domain

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TokenKey is the four-part composite identity of a token class on GalaChain.
type TokenKey struct {
	Collection    string `json:"collection"`
	Category      string `json:"category"`
	Type          string `json:"type"`
	AdditionalKey string `json:"additionalKey"`
}

// String returns the canonical pipe-joined form, e.g. "GALA|Unit|none|none".
func (k TokenKey) String() string {
	return fmt.Sprintf("%s|%s|%s|%s", k.Collection, k.Category, k.Type, k.AdditionalKey)
}

// Matches reports whether two keys identify the same token class.
func (k TokenKey) Matches(other TokenKey) bool {
	return k == other
}

// Hold is a sub-quantity of a balance reserved for locking or in-use purposes.
// Instance zero means the hold applies at the fungible/collection level.
type Hold struct {
	Quantity decimal.Decimal `json:"quantity"`
	Instance decimal.Decimal `json:"instanceId"`
	Name     string          `json:"name,omitempty"`
	Expires  int64           `json:"expires,omitempty"`
}

// TokenBalance is a raw chain balance snapshot for one owner and token class.
// Non-zero instance IDs indicate NFT instances; an empty list means fungible.
type TokenBalance struct {
	Key         TokenKey
	Owner       string
	Quantity    decimal.Decimal
	InstanceIDs []decimal.Decimal
	LockedHolds []Hold
	InUseHolds  []Hold
}

// IsNFT reports whether the balance carries any non-zero instance IDs.
func (b TokenBalance) IsNFT() bool {
	return lo.SomeBy(b.InstanceIDs, func(id decimal.Decimal) bool {
		return !id.IsZero()
	})
}

// LockedQuantity sums the quantities of all locked holds.
func (b TokenBalance) LockedQuantity() decimal.Decimal {
	return sumHolds(b.LockedHolds)
}

// InUseQuantity sums the quantities of all in-use holds.
func (b TokenBalance) InUseQuantity() decimal.Decimal {
	return sumHolds(b.InUseHolds)
}

// SpendableQuantity returns total minus locked minus in-use, clamped at zero.
// Holds are subsets of the total on chain, but a stale snapshot must never
// surface a negative spendable amount.
func (b TokenBalance) SpendableQuantity() decimal.Decimal {
	spendable := b.Quantity.Sub(b.LockedQuantity()).Sub(b.InUseQuantity())
	if spendable.IsNegative() {
		return decimal.Zero
	}
	return spendable
}

func sumHolds(holds []Hold) decimal.Decimal {
	return lo.Reduce(holds, func(acc decimal.Decimal, h Hold, _ int) decimal.Decimal {
		return acc.Add(h.Quantity)
	}, decimal.Zero)
}

// AllowanceType classifies capability grants on a token class.
type AllowanceType int

const (
	AllowanceUse      AllowanceType = 0
	AllowanceLock     AllowanceType = 1
	AllowanceSpend    AllowanceType = 2
	AllowanceTransfer AllowanceType = 3
	AllowanceBurn     AllowanceType = 4
	AllowanceMint     AllowanceType = 6
)

// String returns the allowance type name used in logs and API responses.
func (t AllowanceType) String() string {
	switch t {
	case AllowanceUse:
		return "Use"
	case AllowanceLock:
		return "Lock"
	case AllowanceSpend:
		return "Spend"
	case AllowanceTransfer:
		return "Transfer"
	case AllowanceBurn:
		return "Burn"
	case AllowanceMint:
		return "Mint"
	default:
		return fmt.Sprintf("AllowanceType(%d)", int(t))
	}
}

// TokenAllowance is a capability grant with a quantity cap, separate from
// ownership. Instance zero signifies a collection-level grant; a non-zero
// instance restricts the grant to that specific NFT.
type TokenAllowance struct {
	Key           TokenKey
	Type          AllowanceType
	GrantedBy     string
	GrantedTo     string
	Instance      decimal.Decimal
	Quantity      decimal.Decimal
	QuantitySpent decimal.Decimal
	Uses          decimal.Decimal
	UsesSpent     decimal.Decimal
	Expires       int64
}

// Remaining returns quantity minus quantitySpent, clamped at zero.
func (a TokenAllowance) Remaining() decimal.Decimal {
	remaining := a.Quantity.Sub(a.QuantitySpent)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsCollectionLevel reports whether the grant applies to the whole class
// rather than a single instance.
func (a TokenAllowance) IsCollectionLevel() bool {
	return a.Instance.IsZero()
}

// CoversInstance reports whether the grant applies to the given NFT instance,
// either via a collection-level grant or an exact instance match.
func (a TokenAllowance) CoversInstance(instance decimal.Decimal) bool {
	return a.IsCollectionLevel() || a.Instance.Equal(instance)
}
