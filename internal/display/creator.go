package display

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/galaport/wallet/internal/domain"
)

// CreatorClass is one token class (sub-type) within a creator's collection.
type CreatorClass struct {
	Key         domain.TokenKey `json:"tokenClass"`
	Name        string          `json:"name"`
	MaxSupply   string          `json:"maxSupply"`
	TotalMinted string          `json:"totalMinted"`
	CanMintMore bool            `json:"canMintMore"`
}

// CreatorCollection is the creator-side view of a collection: the remaining
// mint allowance plus per-class supply. IsExpanded is a UI toggle carried on
// the record so the view survives recomputation.
type CreatorCollection struct {
	Collection

	MintAllowanceRemaining decimal.Decimal `json:"-"`
	MintAllowanceRaw       string          `json:"mintAllowanceRaw"`
	MintAllowanceFormatted string          `json:"mintAllowance"`
	HasUnlimitedMint       bool            `json:"hasUnlimitedMint"`

	Classes    []CreatorClass `json:"classes"`
	IsExpanded bool           `json:"isExpanded"`
}

// ToCreatorCollection derives the creator view from a mint allowance and the
// wallet's balances. Owned count sums matching balances: an NFT balance
// contributes its non-zero instance count, a fungible one contributes 1 when
// positive.
func ToCreatorCollection(allowance domain.TokenAllowance, balances []domain.TokenBalance, meta domain.TokenMetadata) CreatorCollection {
	remaining := allowance.Remaining()
	unlimited := allowance.Quantity.GreaterThanOrEqual(domain.UnlimitedThreshold)

	formatted := domain.FormatAmount(remaining)
	if unlimited {
		formatted = domain.Unlimited
	}

	owned := lo.SumBy(balances, func(b domain.TokenBalance) int {
		if !b.Key.Matches(allowance.Key) {
			return 0
		}
		if b.IsNFT() {
			return lo.CountBy(b.InstanceIDs, func(id decimal.Decimal) bool {
				return !id.IsZero()
			})
		}
		if b.Quantity.IsPositive() {
			return 1
		}
		return 0
	})

	name := meta.Name
	if name == "" {
		name = allowance.Key.Collection
	}

	return CreatorCollection{
		Collection: Collection{
			Key:         allowance.Key,
			Name:        name,
			Image:       meta.Image,
			Description: meta.Description,
			OwnedCount:  owned,
		},
		MintAllowanceRemaining: remaining,
		MintAllowanceRaw:       remaining.String(),
		MintAllowanceFormatted: formatted,
		HasUnlimitedMint:       unlimited,
	}
}

// ToCreatorClass derives the per-class supply row. CanMintMore holds when the
// class has no supply cap or minted count is below it.
func ToCreatorClass(meta domain.TokenMetadata) CreatorClass {
	canMintMore := meta.MaxSupply.IsZero() || meta.TotalMinted.LessThan(meta.MaxSupply)

	name := meta.Name
	if name == "" {
		name = meta.Key.Type
	}

	return CreatorClass{
		Key:         meta.Key,
		Name:        name,
		MaxSupply:   domain.FormatAllowance(meta.MaxSupply),
		TotalMinted: domain.FormatAmount(meta.TotalMinted),
		CanMintMore: canMintMore,
	}
}
