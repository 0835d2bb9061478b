package engine

import (
	"blindbuy-escrow/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ledger holds per-user escrowed cash and per-asset custody inventory.
// Methods that compute a new balance never mutate; set* apply committed values.
type ledger struct {
	cash      map[common.Address]*uint256.Int
	inventory map[common.Address]*uint256.Int
	total     *uint256.Int
}

func newLedger() *ledger {
	return &ledger{
		cash:      make(map[common.Address]*uint256.Int),
		inventory: make(map[common.Address]*uint256.Int),
		total:     new(uint256.Int),
	}
}

func (l *ledger) cashOf(user common.Address) *uint256.Int {
	return balanceOf(l.cash, user)
}

func (l *ledger) inventoryOf(asset common.Address) *uint256.Int {
	return balanceOf(l.inventory, asset)
}

func (l *ledger) totalEscrow() *uint256.Int {
	return l.total.Clone()
}

// creditCash returns the user's balance after adding amount.
func (l *ledger) creditCash(user common.Address, amount *uint256.Int) (*uint256.Int, error) {
	if _, overflow := new(uint256.Int).AddOverflow(l.total, amount); overflow {
		return nil, apperror.ErrInvalidInput("deposit overflows total escrow")
	}
	return credit(l.cashOf(user), amount)
}

// debitCash returns the user's balance after subtracting amount.
func (l *ledger) debitCash(user common.Address, amount *uint256.Int) (*uint256.Int, error) {
	bal := l.cashOf(user)
	if bal.Lt(amount) {
		return nil, apperror.ErrInsufficientBalance()
	}
	return bal.Sub(bal, amount), nil
}

func (l *ledger) creditInventory(asset common.Address, amount *uint256.Int) (*uint256.Int, error) {
	return credit(l.inventoryOf(asset), amount)
}

func (l *ledger) debitInventory(asset common.Address, amount *uint256.Int) (*uint256.Int, error) {
	inv := l.inventoryOf(asset)
	if inv.Lt(amount) {
		return nil, apperror.ErrInsufficientInventory()
	}
	return inv.Sub(inv, amount), nil
}

func (l *ledger) setCash(user common.Address, v *uint256.Int) {
	old := l.cashOf(user)
	l.total.Sub(l.total, old)
	l.total.Add(l.total, v)
	store(l.cash, user, v)
}

func (l *ledger) setInventory(asset common.Address, v *uint256.Int) {
	store(l.inventory, asset, v)
}

func credit(bal, amount *uint256.Int) (*uint256.Int, error) {
	sum, overflow := new(uint256.Int).AddOverflow(bal, amount)
	if overflow {
		return nil, apperror.ErrInvalidInput("amount overflows balance")
	}
	return sum, nil
}

func balanceOf(m map[common.Address]*uint256.Int, k common.Address) *uint256.Int {
	if v, ok := m[k]; ok {
		return v.Clone()
	}
	return new(uint256.Int)
}

func store(m map[common.Address]*uint256.Int, k common.Address, v *uint256.Int) {
	if v == nil || v.IsZero() {
		delete(m, k)
		return
	}
	m[k] = v.Clone()
}
