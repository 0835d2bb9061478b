// Package memory keeps the journal in process memory. It backs the
// development profile and the end-to-end tests; state survives an engine
// restart but not a process restart.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var ErrTxDone = errors.New("memory journal: transaction already finished")

// Store implements ports.Journal and ports.StateLoader.
type Store struct {
	mu       sync.RWMutex
	orders   map[uint64]*domain.Order
	cash     map[common.Address]*uint256.Int
	inv      map[common.Address]*uint256.Int
	prices   map[common.Address]*uint256.Int
	deposits map[string]*domain.Deposit
	events   []domain.Event
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		orders:   make(map[uint64]*domain.Order),
		cash:     make(map[common.Address]*uint256.Int),
		inv:      make(map[common.Address]*uint256.Int),
		prices:   make(map[common.Address]*uint256.Int),
		deposits: make(map[string]*domain.Deposit),
	}
}

func (s *Store) Begin(_ context.Context) (ports.JournalTx, error) {
	return &tx{store: s}, nil
}

// Load returns a deep copy of everything committed so far.
func (s *Store) Load(_ context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domain.NewSnapshot()
	for _, o := range s.orders {
		snap.Orders = append(snap.Orders, o.Clone())
	}
	sort.Slice(snap.Orders, func(i, j int) bool { return snap.Orders[i].ID < snap.Orders[j].ID })
	copyAmounts(snap.Cash, s.cash)
	copyAmounts(snap.Inventory, s.inv)
	copyAmounts(snap.Prices, s.prices)
	for _, d := range s.deposits {
		dep := *d
		snap.Deposits = append(snap.Deposits, &dep)
	}
	return snap, nil
}

// Events returns the journaled events in commit order.
func (s *Store) Events() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Store) apply(changes []*domain.StateChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range changes {
		for _, o := range ch.Orders {
			s.orders[o.ID] = o.Clone()
		}
		copyAmounts(s.cash, ch.Cash)
		copyAmounts(s.inv, ch.Inventory)
		copyAmounts(s.prices, ch.Prices)
		for _, d := range ch.Deposits {
			dep := *d
			s.deposits[d.Reference] = &dep
		}
		s.events = append(s.events, ch.Events...)
	}
}

func copyAmounts(dst, src map[common.Address]*uint256.Int) {
	for k, v := range src {
		if v == nil || v.IsZero() {
			delete(dst, k)
			continue
		}
		dst[k] = new(uint256.Int).Set(v)
	}
}

type tx struct {
	store   *Store
	changes []*domain.StateChange
	done    bool
}

func (t *tx) Record(_ context.Context, ch *domain.StateChange) error {
	if t.done {
		return ErrTxDone
	}
	t.changes = append(t.changes, ch)
	return nil
}

func (t *tx) Commit(_ context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	t.store.apply(t.changes)
	return nil
}

// Rollback discards recorded changes. It is a no-op after Commit.
func (t *tx) Rollback(_ context.Context) error {
	t.done = true
	t.changes = nil
	return nil
}
