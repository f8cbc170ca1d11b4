package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// MaxOrderCode is the upper bound for gateway order codes:
// floor(MAX_SAFE_INTEGER / 10). The reduced range avoids edge-case overflow
// in the payment gateway's id space.
const MaxOrderCode = (1<<53 - 1) / 10

// GenerateOrderCode returns a cryptographically random order code uniformly
// distributed in [1, MaxOrderCode].
func GenerateOrderCode() (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(MaxOrderCode))
	if err != nil {
		return 0, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return n.Int64() + 1, nil
}
