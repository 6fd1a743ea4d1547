package gateway

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/galaport/wallet/internal/domain"
)

// AllowanceFilter narrows a FetchAllowances query. Zero values are omitted
// from the request body.
type AllowanceFilter struct {
	Collection    string                `json:"collection,omitempty"`
	Category      string                `json:"category,omitempty"`
	Type          string                `json:"type,omitempty"`
	AdditionalKey string                `json:"additionalKey,omitempty"`
	AllowanceType *domain.AllowanceType `json:"allowanceType,omitempty"`
}

type fetchBalancesRequest struct {
	Owner string `json:"owner"`
}

type fetchAllowancesRequest struct {
	GrantedTo string `json:"grantedTo"`
	AllowanceFilter
}

// FetchBalances retrieves all token balances for an owner, normalized to the
// internal balance shape.
func (c *Client) FetchBalances(ctx context.Context, owner string) ([]domain.TokenBalance, error) {
	var raw []rawBalance
	if err := c.call(ctx, "FetchBalances", fetchBalancesRequest{Owner: owner}, &raw); err != nil {
		return nil, fmt.Errorf("fetching balances for %s: %w", owner, err)
	}

	return lo.Map(raw, func(b rawBalance, _ int) domain.TokenBalance {
		return b.toDomain()
	}), nil
}

// FetchAllowances retrieves allowances granted to an address, optionally
// narrowed by a filter.
func (c *Client) FetchAllowances(ctx context.Context, grantedTo string, filter AllowanceFilter) ([]domain.TokenAllowance, error) {
	req := fetchAllowancesRequest{GrantedTo: grantedTo, AllowanceFilter: filter}

	var raw []rawAllowance
	if err := c.call(ctx, "FetchAllowances", req, &raw); err != nil {
		return nil, fmt.Errorf("fetching allowances for %s: %w", grantedTo, err)
	}

	return lo.Map(raw, func(a rawAllowance, _ int) domain.TokenAllowance {
		return a.toDomain()
	}), nil
}
