package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/jackc/pgx/v5"
)

// Journal implements ports.Journal on a pgx transaction per state change.
type Journal struct {
	pool Pool
}

// NewJournal creates a new Journal.
func NewJournal(pool Pool) *Journal {
	return &Journal{pool: pool}
}

// Begin starts a new database transaction.
func (j *Journal) Begin(ctx context.Context) (ports.JournalTx, error) {
	tx, err := j.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &journalTx{tx: tx}, nil
}

type journalTx struct {
	tx pgx.Tx
}

func (t *journalTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *journalTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// Record writes every part of the change inside the open transaction.
func (t *journalTx) Record(ctx context.Context, ch *domain.StateChange) error {
	for _, o := range ch.Orders {
		if err := t.upsertOrder(ctx, o); err != nil {
			return err
		}
	}
	if err := t.upsertAmounts(ctx, upsertBalanceSQL, ch.Cash); err != nil {
		return fmt.Errorf("upsert escrow balance: %w", err)
	}
	if err := t.upsertAmounts(ctx, upsertInventorySQL, ch.Inventory); err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	if err := t.upsertAmounts(ctx, upsertPriceSQL, ch.Prices); err != nil {
		return fmt.Errorf("upsert price: %w", err)
	}
	for _, d := range ch.Deposits {
		_, err := t.tx.Exec(ctx, insertDepositSQL, d.Reference, d.User.Hex(), d.Amount.Dec(), d.CreditedAt)
		if err != nil {
			return fmt.Errorf("insert deposit %s: %w", d.Reference, err)
		}
	}
	for _, ev := range ch.Events {
		if err := t.insertEvent(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

const upsertOrderSQL = `INSERT INTO orders (id, user_address, concealed_asset, concealed_amount, status, created_at,
		reveal_request_id, revealed_asset, revealed_amount, cost, failure_reason, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			reveal_request_id = EXCLUDED.reveal_request_id,
			revealed_asset = EXCLUDED.revealed_asset,
			revealed_amount = EXCLUDED.revealed_amount,
			cost = EXCLUDED.cost,
			failure_reason = EXCLUDED.failure_reason,
			settled_at = EXCLUDED.settled_at`

const (
	upsertBalanceSQL = `INSERT INTO escrow_balances (account, balance, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (account) DO UPDATE SET balance = EXCLUDED.balance, updated_at = now()`
	upsertInventorySQL = `INSERT INTO inventory (asset, amount, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (asset) DO UPDATE SET amount = EXCLUDED.amount, updated_at = now()`
	upsertPriceSQL = `INSERT INTO prices (asset, price_wei, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (asset) DO UPDATE SET price_wei = EXCLUDED.price_wei, updated_at = now()`
	insertDepositSQL = `INSERT INTO deposits (reference, account, amount, credited_at) VALUES ($1, $2, $3, $4)`
	insertEventSQL   = `INSERT INTO order_events (id, event_type, order_id, payload, occurred_at) VALUES ($1, $2, $3, $4, $5)`
)

func (t *journalTx) upsertOrder(ctx context.Context, o *domain.Order) error {
	_, err := t.tx.Exec(ctx, upsertOrderSQL, orderArgs(o)...)
	if err != nil {
		return fmt.Errorf("upsert order %d: %w", o.ID, err)
	}
	return nil
}

// upsertAmounts writes absolute values keyed by address. Zero is written, not deleted.
func (t *journalTx) upsertAmounts(ctx context.Context, query string, values map[common.Address]*uint256.Int) error {
	for addr, v := range values {
		if _, err := t.tx.Exec(ctx, query, addr.Hex(), domain.WeiString(v)); err != nil {
			return fmt.Errorf("%s: %w", addr.Hex(), err)
		}
	}
	return nil
}

func (t *journalTx) insertEvent(ctx context.Context, ev domain.Event) error {
	payload, err := json.Marshal(ev.Payload())
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	var orderID *int64
	if ev.OrderID != 0 {
		id := int64(ev.OrderID)
		orderID = &id
	}
	_, err = t.tx.Exec(ctx, insertEventSQL, ev.ID, string(ev.Type), orderID, string(payload), ev.OccurredAt)
	if err != nil {
		return fmt.Errorf("insert event %s: %w", ev.Type, err)
	}
	return nil
}

// orderArgs flattens an order into upsertOrderSQL parameters.
func orderArgs(o *domain.Order) []any {
	var revealedAsset, cost, reason *string
	if o.RevealedAsset != (common.Address{}) {
		s := o.RevealedAsset.Hex()
		revealedAsset = &s
	}
	if o.Cost != nil {
		s := o.Cost.Dec()
		cost = &s
	}
	if o.FailureReason != "" {
		reason = &o.FailureReason
	}
	return []any{
		int64(o.ID), o.User.Hex(), o.ConcealedAsset.Hex(), o.ConcealedAmount.Hex(),
		string(o.Status), o.CreatedAt, int64(o.RevealRequestID), revealedAsset,
		int64(o.RevealedAmount), cost, reason, o.SettledAt,
	}
}
