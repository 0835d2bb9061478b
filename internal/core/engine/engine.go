// Package engine is the single-writer escrow and settlement core. Every
// mutation runs under the writer lock, is recorded through a journal
// transaction, and reaches in-memory state only after that transaction commits.
// Payouts and asset transfers run after the commit of their debit and are
// reversed by a second journaled change when custody rejects them.
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// Engine implements ports.EscrowEngine.
type Engine struct {
	mu sync.RWMutex

	admin     common.Address
	gateway   ports.ConcealmentGateway
	custody   ports.Custody
	journal   ports.Journal
	picker    ports.IndexPicker
	publisher ports.EventPublisher
	log       zerolog.Logger
	now       func() time.Time

	prices   *priceRegistry
	ledger   *ledger
	orders   map[uint64]*domain.Order
	byUser   map[common.Address][]uint64
	pending  *pendingIndex
	requests map[uint64]uint64 // reveal request id -> order id
	deposits map[string]*domain.Deposit
	nextID   uint64
}

var _ ports.EscrowEngine = (*Engine)(nil)

// New creates an empty engine. publisher may be nil.
func New(
	admin common.Address,
	gateway ports.ConcealmentGateway,
	custody ports.Custody,
	journal ports.Journal,
	picker ports.IndexPicker,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) *Engine {
	e := &Engine{
		admin:     admin,
		gateway:   gateway,
		custody:   custody,
		journal:   journal,
		picker:    picker,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
	e.reset()
	return e
}

func (e *Engine) reset() {
	e.prices = newPriceRegistry()
	e.ledger = newLedger()
	e.orders = make(map[uint64]*domain.Order)
	e.byUser = make(map[common.Address][]uint64)
	e.pending = newPendingIndex()
	e.requests = make(map[uint64]uint64)
	e.deposits = make(map[string]*domain.Deposit)
	e.nextID = 1
}

// Recover replaces the engine state with the journal's snapshot.
func (e *Engine) Recover(ctx context.Context, loader ports.StateLoader) error {
	snap, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	return e.Restore(snap)
}

// Restore rebuilds the pending index and request map from the snapshot's orders.
func (e *Engine) Restore(snap *domain.Snapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reset()

	orders := make([]*domain.Order, len(snap.Orders))
	copy(orders, snap.Orders)
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })

	for _, o := range orders {
		if o.ID == 0 {
			return fmt.Errorf("snapshot holds order with id 0")
		}
		if _, dup := e.orders[o.ID]; dup {
			return fmt.Errorf("snapshot holds order %d twice", o.ID)
		}
		if !o.Status.IsValid() {
			return fmt.Errorf("order %d has unknown status %q", o.ID, o.Status)
		}
		e.putOrder(o.Clone())
	}
	for user, v := range snap.Cash {
		e.ledger.setCash(user, v)
	}
	for asset, v := range snap.Inventory {
		e.ledger.setInventory(asset, v)
	}
	for asset, v := range snap.Prices {
		e.prices.set(asset, v)
	}
	for _, d := range snap.Deposits {
		dep := *d
		e.deposits[d.Reference] = &dep
	}

	e.log.Info().
		Int("orders", len(e.orders)).
		Int("pending", e.pending.Len()).
		Int("awaiting_reveal", len(e.requests)).
		Uint64("next_order_id", e.nextID).
		Msg("engine state restored")
	return nil
}

// effectError marks a failure of the external side effect run after a
// journal commit, as opposed to a journal failure.
type effectError struct {
	err error
}

func (e *effectError) Error() string { return e.err.Error() }
func (e *effectError) Unwrap() error { return e.err }

// commit records ch, applies it and publishes its events.
// Callers must hold the writer lock.
func (e *Engine) commit(ctx context.Context, ch *domain.StateChange) error {
	if err := e.record(ctx, ch); err != nil {
		return err
	}
	e.publish(ctx, ch.Events)
	return nil
}

// commitThenRun records ch before running effect, so value only leaves
// custody once the debit is durable. If effect fails, reversal is recorded in
// its place and the effect error is returned as an *effectError. Events of ch
// are published only when effect succeeds. Callers must hold the writer lock.
func (e *Engine) commitThenRun(ctx context.Context, ch *domain.StateChange, effect func(context.Context) error, reversal *domain.StateChange) error {
	if err := e.record(ctx, ch); err != nil {
		return err
	}

	if err := effect(ctx); err != nil {
		if rerr := e.record(context.WithoutCancel(ctx), reversal); rerr != nil {
			e.log.Error().Err(rerr).
				AnErr("effect_error", err).
				Msg("reversal not recorded after failed external effect; debit stands")
			return &effectError{err: err}
		}
		e.publish(ctx, reversal.Events)
		return &effectError{err: err}
	}

	e.publish(ctx, ch.Events)
	return nil
}

// record writes ch in one journal transaction and applies it to memory once
// the transaction commits.
func (e *Engine) record(ctx context.Context, ch *domain.StateChange) error {
	tx, err := e.journal.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin journal tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := tx.Record(ctx, ch); err != nil {
		return apperror.InternalError(fmt.Errorf("record state change: %w", err))
	}
	if err := tx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit journal tx: %w", err))
	}

	e.apply(ch)
	return nil
}

func (e *Engine) publish(ctx context.Context, events []domain.Event) {
	if e.publisher != nil && len(events) > 0 {
		e.publisher.Publish(ctx, events)
	}
}

func (e *Engine) apply(ch *domain.StateChange) {
	for _, o := range ch.Orders {
		e.putOrder(o.Clone())
	}
	for user, v := range ch.Cash {
		e.ledger.setCash(user, v)
	}
	for asset, v := range ch.Inventory {
		e.ledger.setInventory(asset, v)
	}
	for asset, v := range ch.Prices {
		e.prices.set(asset, v)
	}
	for _, d := range ch.Deposits {
		dep := *d
		e.deposits[d.Reference] = &dep
	}
}

// putOrder stores o and keeps the pending index, request map and per-user
// list consistent with its status.
func (e *Engine) putOrder(o *domain.Order) {
	prev, existed := e.orders[o.ID]
	e.orders[o.ID] = o

	if !existed {
		e.byUser[o.User] = append(e.byUser[o.User], o.ID)
		if o.ID >= e.nextID {
			e.nextID = o.ID + 1
		}
	}

	if o.Status == domain.OrderStatusPending {
		e.pending.Insert(o.ID)
	} else {
		e.pending.Remove(o.ID)
	}

	switch {
	case o.Status == domain.OrderStatusAwaitingReveal && o.RevealRequestID != 0:
		e.requests[o.RevealRequestID] = o.ID
	case prev != nil && prev.RevealRequestID != 0:
		delete(e.requests, prev.RevealRequestID)
	}
}

// transition returns a copy of o moved to status to.
func transition(o *domain.Order, to domain.OrderStatus) (*domain.Order, error) {
	if !o.Status.CanTransitionTo(to) {
		return nil, apperror.ErrOrderNotActive()
	}
	next := o.Clone()
	next.Status = to
	return next, nil
}

func (e *Engine) requireAdmin(caller common.Address) error {
	if caller == (common.Address{}) || caller != e.admin {
		return apperror.ErrNotOwner()
	}
	return nil
}

func (e *Engine) newEvent(t domain.EventType) domain.Event {
	return domain.NewEvent(t, e.now().UTC())
}
