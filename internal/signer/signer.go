// Package signer abstracts the external wallet-signing client. The dashboard
// only builds payloads and interprets results; signing and submission belong
// to the injected implementation.
package signer

import "context"

// Result is what a signing client returns for a successful write call.
// Hash is the chain transaction hash when the backend reports one.
type Result struct {
	Hash string
	Data []byte
}

// Client signs and submits a write payload for the given chain method.
// Implementations wrap the platform wallet SDK; tests use fakes.
type Client interface {
	SignAndSubmit(ctx context.Context, method string, payload any) (Result, error)
}

// Status tracks a write call through its lifecycle. "Confirmed" means the
// signed call returned successfully, not that the ledger reached finality.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSigning
	StatusConfirmed
	StatusRejected
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusSubmitting:
		return "Submitting"
	case StatusSigning:
		return "Signing"
	case StatusConfirmed:
		return "Confirmed"
	case StatusRejected:
		return "Rejected"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}
