package gateway

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/galaport/wallet/internal/domain"
)

// rawBalance accepts both balance wire shapes the platform has shipped: the
// current one ("quantity", "lockedHolds"/"inUseHolds") and the legacy one
// ("balance", "locks"/"uses"). Normalization into domain.TokenBalance happens
// once at the ingestion boundary; nothing downstream sees the union.
type rawBalance struct {
	Collection    string `json:"collection"`
	Category      string `json:"category"`
	Type          string `json:"type"`
	AdditionalKey string `json:"additionalKey"`
	Owner         string `json:"owner"`

	Quantity string `json:"quantity"`
	Balance  string `json:"balance"`

	InstanceIDs []string `json:"instanceIds"`

	LockedHolds []rawHold `json:"lockedHolds"`
	Locks       []rawHold `json:"locks"`
	InUseHolds  []rawHold `json:"inUseHolds"`
	Uses        []rawHold `json:"uses"`
}

type rawHold struct {
	Quantity   string `json:"quantity"`
	InstanceID string `json:"instanceId"`
	Name       string `json:"name"`
	Expires    int64  `json:"expires"`
}

type rawAllowance struct {
	Collection    string `json:"collection"`
	Category      string `json:"category"`
	Type          string `json:"type"`
	AdditionalKey string `json:"additionalKey"`
	AllowanceType int    `json:"allowanceType"`
	GrantedBy     string `json:"grantedBy"`
	GrantedTo     string `json:"grantedTo"`
	Instance      string `json:"instance"`
	Quantity      string `json:"quantity"`
	QuantitySpent string `json:"quantitySpent"`
	Uses          string `json:"uses"`
	UsesSpent     string `json:"usesSpent"`
	Expires       int64  `json:"expires"`
}

func (r rawBalance) key() domain.TokenKey {
	return domain.TokenKey{
		Collection:    r.Collection,
		Category:      r.Category,
		Type:          r.Type,
		AdditionalKey: r.AdditionalKey,
	}
}

// toDomain normalizes a raw balance, preferring the current field spellings
// and falling back to the legacy ones.
func (r rawBalance) toDomain() domain.TokenBalance {
	quantity := r.Quantity
	if quantity == "" {
		quantity = r.Balance
	}

	locked := r.LockedHolds
	if len(locked) == 0 {
		locked = r.Locks
	}
	inUse := r.InUseHolds
	if len(inUse) == 0 {
		inUse = r.Uses
	}

	return domain.TokenBalance{
		Key:         r.key(),
		Owner:       r.Owner,
		Quantity:    domain.SafeParse(quantity),
		InstanceIDs: lo.Map(r.InstanceIDs, func(id string, _ int) decimal.Decimal {
			return domain.SafeParse(id)
		}),
		LockedHolds: lo.Map(locked, func(h rawHold, _ int) domain.Hold { return h.toDomain() }),
		InUseHolds:  lo.Map(inUse, func(h rawHold, _ int) domain.Hold { return h.toDomain() }),
	}
}

func (h rawHold) toDomain() domain.Hold {
	return domain.Hold{
		Quantity: domain.SafeParse(h.Quantity),
		Instance: domain.SafeParse(h.InstanceID),
		Name:     h.Name,
		Expires:  h.Expires,
	}
}

func (r rawAllowance) toDomain() domain.TokenAllowance {
	return domain.TokenAllowance{
		Key: domain.TokenKey{
			Collection:    r.Collection,
			Category:      r.Category,
			Type:          r.Type,
			AdditionalKey: r.AdditionalKey,
		},
		Type:          domain.AllowanceType(r.AllowanceType),
		GrantedBy:     r.GrantedBy,
		GrantedTo:     r.GrantedTo,
		Instance:      domain.SafeParse(r.Instance),
		Quantity:      domain.SafeParse(r.Quantity),
		QuantitySpent: domain.SafeParse(r.QuantitySpent),
		Uses:          domain.SafeParse(r.Uses),
		UsesSpent:     domain.SafeParse(r.UsesSpent),
		Expires:       r.Expires,
	}
}
