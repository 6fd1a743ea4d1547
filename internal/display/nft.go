package display

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/galaport/wallet/internal/domain"
)

// NFT is the per-instance display record for a non-fungible token.
type NFT struct {
	Key      domain.TokenKey `json:"tokenClass"`
	Instance string          `json:"instance"`
	Name     string          `json:"name"`
	Image    string          `json:"image,omitempty"`

	IsLocked    bool `json:"isLocked"`
	IsInUse     bool `json:"isInUse"`
	CanTransfer bool `json:"canTransfer"`
	CanBurn     bool `json:"canBurn"`
}

// ToNFT derives the display record for one NFT instance of a balance.
// Lock and in-use flags come from hold membership; an instance under either
// hold cannot be transferred.
func ToNFT(balance domain.TokenBalance, instance decimal.Decimal, burnAllowances []domain.TokenAllowance, meta domain.TokenMetadata) NFT {
	isLocked := holdsContain(balance.LockedHolds, instance)
	isInUse := holdsContain(balance.InUseHolds, instance)

	canBurn := lo.SomeBy(burnAllowances, func(a domain.TokenAllowance) bool {
		return a.Type == domain.AllowanceBurn && a.Key.Matches(balance.Key) && a.CoversInstance(instance)
	})

	name := meta.Name
	if name == "" {
		name = balance.Key.Collection
	}

	return NFT{
		Key:         balance.Key,
		Instance:    instance.String(),
		Name:        name,
		Image:       meta.Image,
		IsLocked:    isLocked,
		IsInUse:     isInUse,
		CanTransfer: !isLocked && !isInUse,
		CanBurn:     canBurn,
	}
}

// ToNFTs expands a balance into one display record per non-zero instance ID.
func ToNFTs(balance domain.TokenBalance, burnAllowances []domain.TokenAllowance, meta domain.TokenMetadata) []NFT {
	return lo.FilterMap(balance.InstanceIDs, func(instance decimal.Decimal, _ int) (NFT, bool) {
		if instance.IsZero() {
			return NFT{}, false
		}
		return ToNFT(balance, instance, burnAllowances, meta), true
	})
}

func holdsContain(holds []domain.Hold, instance decimal.Decimal) bool {
	return lo.SomeBy(holds, func(h domain.Hold) bool {
		return h.Instance.Equal(instance)
	})
}
