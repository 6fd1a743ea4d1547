package domain

import "github.com/shopspring/decimal"

// TokenMetadata is the off-chain descriptive record for a token class,
// resolved from the project API and used to seed display records.
type TokenMetadata struct {
	Key         TokenKey        `json:"tokenClass"`
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Decimals    int             `json:"decimals"`
	MaxSupply   decimal.Decimal `json:"maxSupply"`
	TotalMinted decimal.Decimal `json:"totalMinted"`
}
