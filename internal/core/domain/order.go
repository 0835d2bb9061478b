package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// OrderStatus represents the lifecycle state of a blind order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusAwaitingReveal OrderStatus = "AWAITING_REVEAL"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusFailed         OrderStatus = "FAILED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// Failure reasons recorded on settled orders and carried by order-failed events.
const (
	ReasonRevealFailed          = "reveal failed"
	ReasonPriceUnset            = "price not set"
	ReasonInsufficientInventory = "insufficient inventory"
	ReasonInsufficientBalance   = "insufficient balance"
	ReasonZeroQuantity          = "zero quantity"
	ReasonTransferFailed        = "asset transfer failed"
)

// IsValid reports whether s is one of the known statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAwaitingReveal, OrderStatusCompleted,
		OrderStatusFailed, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for Completed, Failed and Cancelled.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusFailed || s == OrderStatusCancelled
}

// CanTransitionTo enforces Pending -> AwaitingReveal -> {Completed|Failed}
// and Pending -> Cancelled.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusAwaitingReveal || next == OrderStatusCancelled
	case OrderStatusAwaitingReveal:
		return next == OrderStatusCompleted || next == OrderStatusFailed
	}
	return false
}

// Order is a blind purchase intent. The asset and quantity stay concealed
// behind gateway handles until settlement reveals them.
type Order struct {
	ID              uint64
	User            common.Address
	ConcealedAsset  common.Hash
	ConcealedAmount common.Hash
	Status          OrderStatus
	CreatedAt       time.Time
	RevealRequestID uint64

	// Settlement outcome, set once the order leaves AwaitingReveal.
	RevealedAsset  common.Address
	RevealedAmount uint32
	Cost           *uint256.Int
	FailureReason  string
	SettledAt      *time.Time
}

// IsTerminal returns true if the order is in a final state.
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// IsPending returns true if the order is eligible for pick or cancellation.
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// Clone returns a deep copy safe to hand out of the engine.
func (o *Order) Clone() *Order {
	c := *o
	if o.Cost != nil {
		c.Cost = o.Cost.Clone()
	}
	if o.SettledAt != nil {
		t := *o.SettledAt
		c.SettledAt = &t
	}
	return &c
}

// PickResult is returned by a successful pick.
type PickResult struct {
	OrderID   uint64 `json:"order_id"`
	RequestID uint64 `json:"request_id"`
}
