package engine

import (
	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// GetOrder returns a copy of the order.
func (e *Engine) GetOrder(orderID uint64) (*domain.Order, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	o, ok := e.orders[orderID]
	if !ok {
		return nil, apperror.ErrNotFound("Order")
	}
	return o.Clone(), nil
}

// UserOrders returns the ids of every order the user ever submitted, oldest first.
func (e *Engine) UserOrders(user common.Address) []uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := e.byUser[user]
	out := make([]uint64, len(ids))
	copy(out, ids)
	return out
}

func (e *Engine) PendingCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pending.Len()
}

// PendingIDs returns the pending ids in no particular order.
func (e *Engine) PendingIDs() []uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pending.IDs()
}

func (e *Engine) CashBalance(user common.Address) *uint256.Int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.cashOf(user)
}

func (e *Engine) InventoryBalance(asset common.Address) *uint256.Int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.inventoryOf(asset)
}

func (e *Engine) Price(asset common.Address) *uint256.Int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.prices.get(asset)
}

// TotalEscrow is the sum of all users' escrow balances.
func (e *Engine) TotalEscrow() *uint256.Int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.totalEscrow()
}

func (e *Engine) IsAdmin(account common.Address) bool {
	return e.requireAdmin(account) == nil
}

// Admin returns the operator address.
func (e *Engine) Admin() common.Address {
	return e.admin
}
