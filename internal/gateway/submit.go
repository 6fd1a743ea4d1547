package gateway

import (
	"context"
	"encoding/json"

	"github.com/galaport/wallet/internal/signer"
)

// Submitter adapts the gateway's write path to the signing client interface.
// Signing happens upstream; the gateway only receives the finished payload.
type Submitter struct {
	client *Client
}

// NewSubmitter creates a Submitter over an existing gateway client.
func NewSubmitter(client *Client) *Submitter {
	return &Submitter{client: client}
}

// SignAndSubmit posts the payload to the gateway method and extracts the
// transaction hash from the receipt when the method returns one.
func (s *Submitter) SignAndSubmit(ctx context.Context, method string, payload any) (signer.Result, error) {
	var data json.RawMessage
	if err := s.client.call(ctx, method, payload, &data); err != nil {
		return signer.Result{}, err
	}

	// Not every write method returns a receipt; a missing hash is fine.
	var receipt struct {
		Hash          string `json:"hash"`
		TransactionID string `json:"transactionId"`
	}
	_ = json.Unmarshal(data, &receipt)

	hash := receipt.Hash
	if hash == "" {
		hash = receipt.TransactionID
	}
	return signer.Result{Hash: hash, Data: data}, nil
}
