// Package display derives UI-ready records from raw chain balances and
// allowances. Every function here is pure: capability flags and formatted
// strings are computed from the inputs alone and are never set independently.
package display

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/galaport/wallet/internal/domain"
)

// FungibleToken is the display record for a fungible balance.
type FungibleToken struct {
	Key    domain.TokenKey `json:"tokenClass"`
	Name   string          `json:"name"`
	Symbol string          `json:"symbol"`
	Image  string          `json:"image,omitempty"`

	Total     decimal.Decimal `json:"-"`
	Locked    decimal.Decimal `json:"-"`
	InUse     decimal.Decimal `json:"-"`
	Spendable decimal.Decimal `json:"-"`

	TotalFormatted     string `json:"total"`
	LockedFormatted    string `json:"locked"`
	InUseFormatted     string `json:"inUse"`
	SpendableFormatted string `json:"spendable"`

	CanMint     bool `json:"canMint"`
	CanBurn     bool `json:"canBurn"`
	CanTransfer bool `json:"canTransfer"`
}

// ToFungibleToken derives the display record for a fungible balance.
// CanMint depends only on a matching mint allowance; CanBurn holds when the
// wallet owns any amount or a matching burn allowance exists.
func ToFungibleToken(balance domain.TokenBalance, mintAllowances, burnAllowances []domain.TokenAllowance, meta domain.TokenMetadata) FungibleToken {
	total := balance.Quantity
	locked := balance.LockedQuantity()
	inUse := balance.InUseQuantity()
	spendable := balance.SpendableQuantity()

	name := meta.Name
	if name == "" {
		name = balance.Key.Collection
	}

	canMint := lo.SomeBy(mintAllowances, func(a domain.TokenAllowance) bool {
		return a.Type == domain.AllowanceMint && a.Key.Matches(balance.Key)
	})
	canBurn := total.IsPositive() || lo.SomeBy(burnAllowances, func(a domain.TokenAllowance) bool {
		return a.Type == domain.AllowanceBurn && a.Key.Matches(balance.Key)
	})

	return FungibleToken{
		Key:                balance.Key,
		Name:               name,
		Symbol:             meta.Symbol,
		Image:              meta.Image,
		Total:              total,
		Locked:             locked,
		InUse:              inUse,
		Spendable:          spendable,
		TotalFormatted:     domain.FormatAmount(total),
		LockedFormatted:    domain.FormatAmount(locked),
		InUseFormatted:     domain.FormatAmount(inUse),
		SpendableFormatted: domain.FormatAmount(spendable),
		CanMint:            canMint,
		CanBurn:            canBurn,
		CanTransfer:        spendable.IsPositive(),
	}
}
