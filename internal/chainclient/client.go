// Package chainclient exposes the typed write operations of the dashboard:
// payload construction, unique-key stamping, signing via the injected client,
// and uniform error classification.
package chainclient

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/galaport/wallet/internal/chainerr"
	"github.com/galaport/wallet/internal/domain"
	"github.com/galaport/wallet/internal/gateway"
	"github.com/galaport/wallet/internal/signer"
)

// Client wraps a signing client with payload construction and error
// translation. All write calls return a *chainerr.ChainError on failure.
type Client struct {
	signer signer.Client

	mu     sync.Mutex
	status signer.Status
}

// New creates a chain client around a signing client.
func New(s signer.Client) *Client {
	return &Client{signer: s}
}

// Status reports where the most recent write call is in its lifecycle.
func (c *Client) Status() signer.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Client) setStatus(s signer.Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

// tokenInstanceKey identifies a class (and optionally an instance) in write
// payloads. Instance "0" addresses the fungible/collection-level entity.
type tokenInstanceKey struct {
	Collection    string `json:"collection"`
	Category      string `json:"category"`
	Type          string `json:"type"`
	AdditionalKey string `json:"additionalKey"`
	Instance      string `json:"instance"`
}

func instanceKey(key domain.TokenKey, instance decimal.Decimal) tokenInstanceKey {
	return tokenInstanceKey{
		Collection:    key.Collection,
		Category:      key.Category,
		Type:          key.Type,
		AdditionalKey: key.AdditionalKey,
		Instance:      instance.String(),
	}
}

type transferPayload struct {
	From      string           `json:"from"`
	To        string           `json:"to"`
	TokenInstance tokenInstanceKey `json:"tokenInstance"`
	Quantity  string           `json:"quantity"`
	UniqueKey string           `json:"uniqueKey"`
}

type mintPayload struct {
	TokenClass tokenInstanceKey `json:"tokenClass"`
	Owner      string           `json:"owner"`
	Quantity   string           `json:"quantity"`
	UniqueKey  string           `json:"uniqueKey"`
}

type burnPayload struct {
	Owner      string             `json:"owner"`
	TokenInstances []burnInstance `json:"tokenInstances"`
	UniqueKey  string             `json:"uniqueKey"`
}

type burnInstance struct {
	TokenInstanceKey tokenInstanceKey `json:"tokenInstanceKey"`
	Quantity         string           `json:"quantity"`
}

// CollectionSpec describes a token class to create.
type CollectionSpec struct {
	Key         domain.TokenKey `json:"tokenClass"`
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Decimals    int             `json:"decimals"`
	MaxSupply   string          `json:"maxSupply"`
	IsNonFungible bool          `json:"isNonFungible"`
}

type createCollectionPayload struct {
	CollectionSpec
	UniqueKey string `json:"uniqueKey"`
}

type grantAllowancePayload struct {
	TokenInstance tokenInstanceKey     `json:"tokenInstance"`
	GrantedTo     string               `json:"grantedTo"`
	AllowanceType domain.AllowanceType `json:"allowanceType"`
	Quantity      string               `json:"quantity"`
	Uses          string               `json:"uses"`
	Expires       int64                `json:"expires"`
	UniqueKey     string               `json:"uniqueKey"`
}

// Transfer moves a quantity (or a specific NFT instance) to another wallet.
func (c *Client) Transfer(ctx context.Context, from, to string, key domain.TokenKey, instance, quantity decimal.Decimal) (signer.Result, error) {
	c.setStatus(signer.StatusSubmitting)
	uniqueKey, err := gateway.NewUniqueKey()
	if err != nil {
		return signer.Result{}, chainerr.Classify(err)
	}
	return c.submit(ctx, "TransferToken", transferPayload{
		From:          from,
		To:            to,
		TokenInstance: instanceKey(key, instance),
		Quantity:      quantity.String(),
		UniqueKey:     uniqueKey,
	})
}

// Mint mints a quantity of a token class to an owner.
func (c *Client) Mint(ctx context.Context, owner string, key domain.TokenKey, quantity decimal.Decimal) (signer.Result, error) {
	c.setStatus(signer.StatusSubmitting)
	uniqueKey, err := gateway.NewUniqueKey()
	if err != nil {
		return signer.Result{}, chainerr.Classify(err)
	}
	return c.submit(ctx, "MintToken", mintPayload{
		TokenClass: instanceKey(key, decimal.Zero),
		Owner:      owner,
		Quantity:   quantity.String(),
		UniqueKey:  uniqueKey,
	})
}

// Burn destroys a quantity (or a specific NFT instance) owned by the wallet.
func (c *Client) Burn(ctx context.Context, owner string, key domain.TokenKey, instance, quantity decimal.Decimal) (signer.Result, error) {
	c.setStatus(signer.StatusSubmitting)
	uniqueKey, err := gateway.NewUniqueKey()
	if err != nil {
		return signer.Result{}, chainerr.Classify(err)
	}
	return c.submit(ctx, "BurnTokens", burnPayload{
		Owner: owner,
		TokenInstances: []burnInstance{{
			TokenInstanceKey: instanceKey(key, instance),
			Quantity:         quantity.String(),
		}},
		UniqueKey: uniqueKey,
	})
}

// CreateCollection creates a new token class.
func (c *Client) CreateCollection(ctx context.Context, spec CollectionSpec) (signer.Result, error) {
	c.setStatus(signer.StatusSubmitting)
	uniqueKey, err := gateway.NewUniqueKey()
	if err != nil {
		return signer.Result{}, chainerr.Classify(err)
	}
	return c.submit(ctx, "CreateTokenClass", createCollectionPayload{
		CollectionSpec: spec,
		UniqueKey:      uniqueKey,
	})
}

// GrantAllowance grants a capability on a token class to another wallet.
func (c *Client) GrantAllowance(ctx context.Context, key domain.TokenKey, grantedTo string, allowanceType domain.AllowanceType, quantity, uses decimal.Decimal, expires int64) (signer.Result, error) {
	c.setStatus(signer.StatusSubmitting)
	uniqueKey, err := gateway.NewUniqueKey()
	if err != nil {
		return signer.Result{}, chainerr.Classify(err)
	}
	return c.submit(ctx, "GrantAllowance", grantAllowancePayload{
		TokenInstance: instanceKey(key, decimal.Zero),
		GrantedTo:     grantedTo,
		AllowanceType: allowanceType,
		Quantity:      quantity.String(),
		Uses:          uses.String(),
		Expires:       expires,
		UniqueKey:     uniqueKey,
	})
}

// submit runs the signing call and classifies any failure. Errors are never
// swallowed; every failure is re-thrown as exactly one typed error.
func (c *Client) submit(ctx context.Context, method string, payload any) (signer.Result, error) {
	c.setStatus(signer.StatusSigning)

	result, err := c.signer.SignAndSubmit(ctx, method, payload)
	if err != nil {
		ce := chainerr.Classify(err)
		if ce.Code == chainerr.CodeUserRejected {
			c.setStatus(signer.StatusRejected)
		} else {
			c.setStatus(signer.StatusFailed)
		}
		slog.Warn("write call failed", "method", method, "code", ce.Code)
		return signer.Result{}, ce
	}

	c.setStatus(signer.StatusConfirmed)
	return result, nil
}
