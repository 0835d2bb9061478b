// Package pebblestore journals engine state in an embedded Pebble database.
// Each journal transaction is one atomic batch.
package pebblestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// keys: o/<20-digit id>, c/<address>, i/<address>, p/<address>,
// d/<reference>, e/<20-digit nanos>/<event id>
const (
	prefixOrder     = "o/"
	prefixCash      = "c/"
	prefixInventory = "i/"
	prefixPrice     = "p/"
	prefixDeposit   = "d/"
	prefixEvent     = "e/"
)

var ErrTxDone = errors.New("pebble journal: transaction already finished")

// Store implements ports.Journal and ports.StateLoader.
type Store struct {
	db *pebble.DB
}

// Open opens (or creates) a store at path.
func Open(path string) (*Store, error) {
	return open(path, &pebble.Options{})
}

// OpenInMemory opens a store on an in-memory filesystem.
func OpenInMemory() (*Store, error) {
	return open("", &pebble.Options{FS: vfs.NewMem()})
}

func open(path string, opts *pebble.Options) (*Store, error) {
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("open pebble at %q: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Name satisfies ports.HealthChecker.
func (s *Store) Name() string { return "pebble" }

// Ping reports whether the database still accepts reads.
func (s *Store) Ping(_ context.Context) error {
	_, closer, err := s.db.Get([]byte(prefixOrder))
	if err == nil {
		return closer.Close()
	}
	if errors.Is(err, pebble.ErrNotFound) {
		return nil
	}
	return err
}

func (s *Store) Begin(_ context.Context) (ports.JournalTx, error) {
	return &tx{batch: s.db.NewBatch()}, nil
}

type tx struct {
	batch *pebble.Batch
	done  bool
}

func (t *tx) Record(_ context.Context, ch *domain.StateChange) error {
	if t.done {
		return ErrTxDone
	}
	for _, o := range ch.Orders {
		val, err := json.Marshal(newOrderRecord(o))
		if err != nil {
			return fmt.Errorf("encode order %d: %w", o.ID, err)
		}
		if err := t.batch.Set(orderKey(o.ID), val, nil); err != nil {
			return fmt.Errorf("set order %d: %w", o.ID, err)
		}
	}
	if err := t.setAmounts(prefixCash, ch.Cash); err != nil {
		return fmt.Errorf("set escrow balance: %w", err)
	}
	if err := t.setAmounts(prefixInventory, ch.Inventory); err != nil {
		return fmt.Errorf("set inventory: %w", err)
	}
	if err := t.setAmounts(prefixPrice, ch.Prices); err != nil {
		return fmt.Errorf("set price: %w", err)
	}
	for _, d := range ch.Deposits {
		val, err := json.Marshal(depositRecord{
			Reference:  d.Reference,
			User:       d.User,
			Amount:     domain.WeiString(d.Amount),
			CreditedAt: d.CreditedAt,
		})
		if err != nil {
			return fmt.Errorf("encode deposit %s: %w", d.Reference, err)
		}
		if err := t.batch.Set([]byte(prefixDeposit+d.Reference), val, nil); err != nil {
			return fmt.Errorf("set deposit %s: %w", d.Reference, err)
		}
	}
	for _, ev := range ch.Events {
		val, err := json.Marshal(ev.Payload())
		if err != nil {
			return fmt.Errorf("encode event %s: %w", ev.Type, err)
		}
		if err := t.batch.Set(eventKey(ev), val, nil); err != nil {
			return fmt.Errorf("set event %s: %w", ev.Type, err)
		}
	}
	return nil
}

// setAmounts writes absolute values; zero removes the key.
func (t *tx) setAmounts(prefix string, values map[common.Address]*uint256.Int) error {
	for addr, v := range values {
		key := append([]byte(prefix), addr.Bytes()...)
		if v == nil || v.IsZero() {
			if err := t.batch.Delete(key, nil); err != nil {
				return err
			}
			continue
		}
		if err := t.batch.Set(key, v.Bytes(), nil); err != nil {
			return err
		}
	}
	return nil
}

func (t *tx) Commit(_ context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	defer t.batch.Close()
	if err := t.batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// Rollback closes the batch without committing. It is a no-op after Commit.
func (t *tx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	return t.batch.Close()
}

// Load rebuilds the snapshot by scanning every prefix.
func (s *Store) Load(_ context.Context) (*domain.Snapshot, error) {
	snap := domain.NewSnapshot()

	err := s.scan(prefixOrder, func(_, val []byte) error {
		var rec orderRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return err
		}
		o, err := rec.order()
		if err != nil {
			return err
		}
		snap.Orders = append(snap.Orders, o)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if err := s.scanAmounts(prefixCash, snap.Cash); err != nil {
		return nil, fmt.Errorf("load escrow balances: %w", err)
	}
	if err := s.scanAmounts(prefixInventory, snap.Inventory); err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	if err := s.scanAmounts(prefixPrice, snap.Prices); err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}
	err = s.scan(prefixDeposit, func(_, val []byte) error {
		var rec depositRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return err
		}
		amount, err := domain.ParseWei(rec.Amount)
		if err != nil {
			return err
		}
		snap.Deposits = append(snap.Deposits, &domain.Deposit{
			Reference:  rec.Reference,
			User:       rec.User,
			Amount:     amount,
			CreditedAt: rec.CreditedAt,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load deposits: %w", err)
	}
	return snap, nil
}

// Events returns journaled event payloads in the order they occurred.
func (s *Store) Events() ([]domain.EventPayload, error) {
	var out []domain.EventPayload
	err := s.scan(prefixEvent, func(_, val []byte) error {
		var p domain.EventPayload
		if err := json.Unmarshal(val, &p); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}

func (s *Store) scanAmounts(prefix string, into map[common.Address]*uint256.Int) error {
	return s.scan(prefix, func(key, val []byte) error {
		addr := common.BytesToAddress(key[len(prefix):])
		into[addr] = new(uint256.Int).SetBytes(val)
		return nil
	})
}

func (s *Store) scan(prefix string, fn func(key, val []byte) error) error {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: keyUpperBound([]byte(prefix)),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if err := fn(iter.Key(), iter.Value()); err != nil {
			return err
		}
	}
	return iter.Error()
}

func orderKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", prefixOrder, id))
}

func eventKey(ev domain.Event) []byte {
	return []byte(fmt.Sprintf("%s%020d/%s", prefixEvent, ev.OccurredAt.UnixNano(), ev.ID))
}

func keyUpperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

type orderRecord struct {
	ID              uint64             `json:"id"`
	User            common.Address     `json:"user"`
	ConcealedAsset  common.Hash        `json:"concealed_asset"`
	ConcealedAmount common.Hash        `json:"concealed_amount"`
	Status          domain.OrderStatus `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	RevealRequestID uint64             `json:"reveal_request_id,omitempty"`
	RevealedAsset   common.Address     `json:"revealed_asset"`
	RevealedAmount  uint32             `json:"revealed_amount,omitempty"`
	Cost            string             `json:"cost,omitempty"`
	FailureReason   string             `json:"failure_reason,omitempty"`
	SettledAt       *time.Time         `json:"settled_at,omitempty"`
}

func newOrderRecord(o *domain.Order) orderRecord {
	rec := orderRecord{
		ID:              o.ID,
		User:            o.User,
		ConcealedAsset:  o.ConcealedAsset,
		ConcealedAmount: o.ConcealedAmount,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
		RevealRequestID: o.RevealRequestID,
		RevealedAsset:   o.RevealedAsset,
		RevealedAmount:  o.RevealedAmount,
		FailureReason:   o.FailureReason,
		SettledAt:       o.SettledAt,
	}
	if o.Cost != nil {
		rec.Cost = o.Cost.Dec()
	}
	return rec
}

func (r orderRecord) order() (*domain.Order, error) {
	o := &domain.Order{
		ID:              r.ID,
		User:            r.User,
		ConcealedAsset:  r.ConcealedAsset,
		ConcealedAmount: r.ConcealedAmount,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
		RevealRequestID: r.RevealRequestID,
		RevealedAsset:   r.RevealedAsset,
		RevealedAmount:  r.RevealedAmount,
		FailureReason:   r.FailureReason,
		SettledAt:       r.SettledAt,
	}
	if r.Cost != "" {
		cost, err := domain.ParseWei(r.Cost)
		if err != nil {
			return nil, fmt.Errorf("order %d cost: %w", r.ID, err)
		}
		o.Cost = cost
	}
	return o, nil
}

type depositRecord struct {
	Reference  string         `json:"reference"`
	User       common.Address `json:"user"`
	Amount     string         `json:"amount"`
	CreditedAt time.Time      `json:"credited_at"`
}
