package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Deposit is a custody-rail credit. The reference is unique per deposit;
// replaying it returns the original Deposit without crediting again.
type Deposit struct {
	Reference  string
	User       common.Address
	Amount     *uint256.Int
	CreditedAt time.Time
}

// BuildDepositIdempotencyKey constructs the cache key for a custody reference.
func BuildDepositIdempotencyKey(reference string) string {
	return "deposit:" + reference
}
