package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// StateChange is the unit of work recorded by a journal transaction.
// Balances, inventory and prices are new absolute values, not deltas.
type StateChange struct {
	Orders    []*Order
	Cash      map[common.Address]*uint256.Int
	Inventory map[common.Address]*uint256.Int
	Prices    map[common.Address]*uint256.Int
	Deposits  []*Deposit
	Events    []Event
}

// NewStateChange returns an empty change with initialized maps.
func NewStateChange() *StateChange {
	return &StateChange{
		Cash:      make(map[common.Address]*uint256.Int),
		Inventory: make(map[common.Address]*uint256.Int),
		Prices:    make(map[common.Address]*uint256.Int),
	}
}

// IsEmpty reports whether the change touches nothing.
func (c *StateChange) IsEmpty() bool {
	return len(c.Orders) == 0 && len(c.Cash) == 0 && len(c.Inventory) == 0 &&
		len(c.Prices) == 0 && len(c.Deposits) == 0 && len(c.Events) == 0
}

// Snapshot is the full engine state as rebuilt from a journal on startup.
type Snapshot struct {
	Orders    []*Order
	Cash      map[common.Address]*uint256.Int
	Inventory map[common.Address]*uint256.Int
	Prices    map[common.Address]*uint256.Int
	Deposits  []*Deposit
}

// NewSnapshot returns an empty snapshot with initialized maps.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Cash:      make(map[common.Address]*uint256.Int),
		Inventory: make(map[common.Address]*uint256.Int),
		Prices:    make(map[common.Address]*uint256.Int),
	}
}
