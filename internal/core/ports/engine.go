package ports

import (
	"context"

	"blindbuy-escrow/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ConcealedInput is an order's encrypted parameters plus the proof that
// they were produced for this caller and this engine instance.
type ConcealedInput struct {
	Asset  common.Hash
	Amount common.Hash
	Proof  []byte
}

// RevealResult is delivered by the gateway once a reveal request resolves.
type RevealResult struct {
	RequestID uint64
	Asset     common.Address
	Amount    uint32
	OK        bool
	Reason    string
}

// ConcealmentGateway validates concealed inputs and reveals them later.
// RequestReveal must never invoke the RevealHandler synchronously.
type ConcealmentGateway interface {
	VerifyInput(ctx context.Context, user common.Address, input ConcealedInput) error
	RequestReveal(ctx context.Context, asset common.Hash, amount common.Hash) (uint64, error)
}

// RevealHandler receives reveal results. Implemented by the engine.
type RevealHandler interface {
	OnRevealed(ctx context.Context, result RevealResult)
}

// Concealer produces concealed inputs. Only the local development gateway has one.
type Concealer interface {
	Conceal(ctx context.Context, user common.Address, asset common.Address, amount uint32) (ConcealedInput, error)
}

// IndexPicker chooses a position in [0, n) uniformly. seed is optional.
type IndexPicker interface {
	Pick(n int, seed *uint64) (int, error)
}

// Custody moves real value out of the escrow: cash payouts and asset transfers.
type Custody interface {
	PayCash(ctx context.Context, to common.Address, amount *uint256.Int) error
	TransferAsset(ctx context.Context, asset common.Address, to common.Address, amount *uint256.Int) error
}

// Journal persists engine state changes atomically.
type Journal interface {
	Begin(ctx context.Context) (JournalTx, error)
}

// JournalTx is one atomic unit of recorded state. Rollback after Commit is a no-op.
type JournalTx interface {
	Record(ctx context.Context, change *domain.StateChange) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// StateLoader rebuilds engine state from durable storage.
type StateLoader interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
}

// EventPublisher fans committed events out to subscribers, best effort.
type EventPublisher interface {
	Publish(ctx context.Context, events []domain.Event)
}

// EventSink is one delivery channel for events (bus, webhook, websocket).
type EventSink interface {
	Name() string
	Send(ctx context.Context, event domain.Event) error
}

// EscrowEngine is the single-writer escrow and settlement core.
type EscrowEngine interface {
	RevealHandler

	SetPrice(ctx context.Context, caller common.Address, asset common.Address, price *uint256.Int) error
	DepositCash(ctx context.Context, deposit domain.Deposit) (*domain.Deposit, bool, error)
	WithdrawCash(ctx context.Context, user common.Address, amount *uint256.Int) error
	DepositInventory(ctx context.Context, caller common.Address, asset common.Address, amount *uint256.Int) error
	WithdrawInventory(ctx context.Context, caller common.Address, asset common.Address, amount *uint256.Int) error
	SubmitOrder(ctx context.Context, caller common.Address, input ConcealedInput) (uint64, error)
	CancelOrder(ctx context.Context, caller common.Address, orderID uint64) error
	PickRandomAndRequestReveal(ctx context.Context, caller common.Address, seed *uint64) (*domain.PickResult, error)

	GetOrder(orderID uint64) (*domain.Order, error)
	UserOrders(user common.Address) []uint64
	PendingCount() int
	PendingIDs() []uint64
	CashBalance(user common.Address) *uint256.Int
	InventoryBalance(asset common.Address) *uint256.Int
	Price(asset common.Address) *uint256.Int
	TotalEscrow() *uint256.Int
	IsAdmin(account common.Address) bool
}
