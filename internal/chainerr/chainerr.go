// Package chainerr defines the typed error taxonomy for GalaChain calls and
// the classification of raw library/transport failures into it.
package chainerr

import (
	"errors"
	"fmt"
)

// Category groups errors by their origin and the kind of remedy available.
type Category string

const (
	CategoryWallet     Category = "wallet"
	CategoryNetwork    Category = "network"
	CategoryChain      Category = "chain"
	CategoryValidation Category = "validation"
	CategoryUnknown    Category = "unknown"
)

// Machine error codes. Chain codes mirror the gateway's ErrorCode strings so
// envelope errors map through without translation.
const (
	CodeUserRejected      = "USER_REJECTED"
	CodeWalletLocked      = "WALLET_LOCKED"
	CodeNoProvider        = "NO_PROVIDER"
	CodePendingRequest    = "PENDING_REQUEST"
	CodeWrongNetwork      = "WRONG_NETWORK"
	CodeConnectionFailed  = "CONNECTION_FAILED"
	CodeTimeout           = "TIMEOUT"
	CodeServerError       = "SERVER_ERROR"
	CodeInsufficientFunds = "INSUFFICIENT_BALANCE"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeAllowanceExceeded = "ALLOWANCE_EXCEEDED"
	CodeTokenNotFound     = "TOKEN_NOT_FOUND"
	CodeInvalidSignature  = "INVALID_SIGNATURE"
	CodeMaxSupplyExceeded = "MAX_SUPPLY_EXCEEDED"
	CodeTokensLocked      = "TOKENS_LOCKED"
	CodeValidation        = "VALIDATION_FAILED"
	CodeUnknown           = "UNKNOWN_ERROR"
)

// ChainError is the single error type thrown by the chain client wrapper.
type ChainError struct {
	Code        string   `json:"code"`
	Category    Category `json:"category"`
	Message     string   `json:"message"`
	Action      string   `json:"action,omitempty"`
	Recoverable bool     `json:"recoverable"`
	Payload     any      `json:"payload,omitempty"`
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New creates a ChainError with the category and message for a known code.
func New(code, message string) *ChainError {
	meta, ok := codeMeta[code]
	if !ok {
		meta = codeInfo{Category: CategoryUnknown, Recoverable: true}
	}
	return &ChainError{
		Code:        code,
		Category:    meta.Category,
		Message:     message,
		Action:      meta.Action,
		Recoverable: meta.Recoverable,
	}
}

type codeInfo struct {
	Category    Category
	Action      string
	Recoverable bool
}

var codeMeta = map[string]codeInfo{
	CodeUserRejected:      {CategoryWallet, "Approve the transaction in your wallet to continue.", true},
	CodeWalletLocked:      {CategoryWallet, "Unlock your wallet and try again.", true},
	CodeNoProvider:        {CategoryWallet, "Install a compatible wallet such as MetaMask.", false},
	CodePendingRequest:    {CategoryWallet, "Open your wallet and resolve the pending request.", true},
	CodeWrongNetwork:      {CategoryWallet, "Switch your wallet to the GalaChain network.", true},
	CodeConnectionFailed:  {CategoryNetwork, "Check your connection and try again.", true},
	CodeTimeout:           {CategoryNetwork, "The request timed out. Try again.", true},
	CodeServerError:       {CategoryNetwork, "The service is having trouble. Try again later.", true},
	CodeInsufficientFunds: {CategoryChain, "Reduce the amount or top up your balance.", false},
	CodeUnauthorized:      {CategoryChain, "You are not authorized for this operation.", false},
	CodeAllowanceExceeded: {CategoryChain, "The amount exceeds your remaining allowance.", false},
	CodeTokenNotFound:     {CategoryChain, "The token could not be found on chain.", false},
	CodeInvalidSignature:  {CategoryChain, "Reconnect your wallet and sign again.", true},
	CodeMaxSupplyExceeded: {CategoryChain, "Minting would exceed the token's max supply.", false},
	CodeTokensLocked:      {CategoryChain, "These tokens are locked and cannot be moved.", false},
	CodeValidation:        {CategoryValidation, "Correct the highlighted fields and retry.", true},
	CodeUnknown:           {CategoryUnknown, "An unknown error occurred. Try again.", true},
}

// FromEnvelope builds a ChainError from a gateway response envelope. The
// ErrorCode maps directly when known; unknown codes keep the code verbatim
// under the chain category so callers can still match on it.
func FromEnvelope(errorCode, errorKey, message string) *ChainError {
	code := errorCode
	if code == "" {
		code = errorKey
	}
	if code == "" {
		code = CodeUnknown
	}
	if message == "" {
		message = humanizeCode(code)
	}

	if _, known := codeMeta[code]; known {
		return New(code, message)
	}
	return &ChainError{
		Code:        code,
		Category:    CategoryChain,
		Message:     message,
		Recoverable: false,
	}
}

// AsChainError unwraps err to a *ChainError if one is present.
func AsChainError(err error) (*ChainError, bool) {
	var ce *ChainError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

func humanizeCode(code string) string {
	switch code {
	case CodeInsufficientFunds:
		return "Insufficient balance for this operation."
	case CodeUnauthorized:
		return "You are not authorized to perform this operation."
	default:
		return "The chain rejected the operation (" + code + ")."
	}
}
