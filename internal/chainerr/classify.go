package chainerr

import (
	"context"
	"errors"
	"strings"
)

// PatternRule maps case-insensitive substrings of a raw exception message to
// an error code. Rules are evaluated in order; the first match wins.
type PatternRule struct {
	Patterns []string
	Code     string
}

// PatternRules is the fixed classification table for raw library/transport
// error text. The wording is dictated by upstream wallet/HTTP libraries and
// can drift across their releases; there is no version pin guarding it, so
// the table is exported to keep it independently testable.
var PatternRules = []PatternRule{
	{Patterns: []string{"user rejected", "user denied"}, Code: CodeUserRejected},
	{Patterns: []string{"locked"}, Code: CodeWalletLocked},
	{Patterns: []string{"no provider", "not installed"}, Code: CodeNoProvider},
	{Patterns: []string{"already pending"}, Code: CodePendingRequest},
	{Patterns: []string{"network", "fetch", "connection refused", "no such host"}, Code: CodeConnectionFailed},
	{Patterns: []string{"timeout", "timed out", "deadline exceeded"}, Code: CodeTimeout},
}

// Classify translates any failure from a chain call into a *ChainError.
// Already-typed errors pass through unchanged; everything else is matched
// against PatternRules, falling back to CodeUnknown.
func Classify(err error) *ChainError {
	if err == nil {
		return nil
	}

	if ce, ok := AsChainError(err); ok {
		return ce
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return New(CodeTimeout, "The request timed out.")
	}

	msg := strings.ToLower(err.Error())
	for _, rule := range PatternRules {
		for _, p := range rule.Patterns {
			if strings.Contains(msg, p) {
				return New(rule.Code, err.Error())
			}
		}
	}

	return New(CodeUnknown, "An unknown error occurred: "+err.Error())
}
