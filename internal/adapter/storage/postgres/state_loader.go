package postgres

import (
	"context"
	"fmt"
	"time"

	"blindbuy-escrow/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// StateLoader implements ports.StateLoader by reading every journaled table.
type StateLoader struct {
	pool Pool
}

// NewStateLoader creates a new StateLoader.
func NewStateLoader(pool Pool) *StateLoader {
	return &StateLoader{pool: pool}
}

// Load reads orders, balances, inventory, prices and deposit references.
func (l *StateLoader) Load(ctx context.Context) (*domain.Snapshot, error) {
	snap := domain.NewSnapshot()

	rows, err := l.pool.Query(ctx, fmt.Sprintf("SELECT %s FROM orders ORDER BY id", orderColumns))
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		snap.Orders = append(snap.Orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	if err := l.loadAmounts(ctx, "SELECT account, balance::text FROM escrow_balances", snap.Cash); err != nil {
		return nil, fmt.Errorf("load escrow balances: %w", err)
	}
	if err := l.loadAmounts(ctx, "SELECT asset, amount::text FROM inventory", snap.Inventory); err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	if err := l.loadAmounts(ctx, "SELECT asset, price_wei::text FROM prices", snap.Prices); err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}
	if err := l.loadDeposits(ctx, snap); err != nil {
		return nil, fmt.Errorf("load deposits: %w", err)
	}
	return snap, nil
}

func (l *StateLoader) loadAmounts(ctx context.Context, query string, into map[common.Address]*uint256.Int) error {
	rows, err := l.pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var addr, amount string
		if err := rows.Scan(&addr, &amount); err != nil {
			return err
		}
		v, err := domain.ParseWei(amount)
		if err != nil {
			return err
		}
		into[common.HexToAddress(addr)] = v
	}
	return rows.Err()
}

func (l *StateLoader) loadDeposits(ctx context.Context, snap *domain.Snapshot) error {
	rows, err := l.pool.Query(ctx, "SELECT reference, account, amount::text, credited_at FROM deposits")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ref, account, amount string
			creditedAt           time.Time
		)
		if err := rows.Scan(&ref, &account, &amount, &creditedAt); err != nil {
			return err
		}
		v, err := domain.ParseWei(amount)
		if err != nil {
			return err
		}
		snap.Deposits = append(snap.Deposits, &domain.Deposit{
			Reference:  ref,
			User:       common.HexToAddress(account),
			Amount:     v,
			CreditedAt: creditedAt,
		})
	}
	return rows.Err()
}
