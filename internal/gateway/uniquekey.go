package gateway

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// NewUniqueKey returns 32 random bytes base64-encoded. Every write payload
// carries a fresh key so a duplicated submission cannot replay on chain.
func NewUniqueKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating unique key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
