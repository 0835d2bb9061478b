package domain

import (
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
)

// EventType names an engine notification.
type EventType string

const (
	EventOrderSubmitted     EventType = "order.submitted"
	EventPriceUpdated       EventType = "price.updated"
	EventOrderPicked        EventType = "order.picked"
	EventOrderCompleted     EventType = "order.completed"
	EventOrderFailed        EventType = "order.failed"
	EventOrderRefunded      EventType = "order.refunded"
	EventCashDeposited      EventType = "cash.deposited"
	EventCashWithdrawn      EventType = "cash.withdrawn"
	EventInventoryDeposited EventType = "inventory.deposited"
	EventInventoryWithdrawn EventType = "inventory.withdrawn"
	EventOrderCancelled     EventType = "order.cancelled"

	// Journaled when custody rejects a withdrawal whose debit already committed.
	EventCashWithdrawalReversed      EventType = "cash.withdrawal_reversed"
	EventInventoryWithdrawalReversed EventType = "inventory.withdrawal_reversed"
)

// Event is an engine notification. Only the fields relevant to Type are set.
// Concealed order contents never appear in events.
type Event struct {
	ID         uuid.UUID
	Type       EventType
	OrderID    uint64
	RequestID  uint64
	User       common.Address
	Asset      common.Address
	Amount     *uint256.Int // price, cash amount or inventory amount
	Quantity   uint32
	Cost       *uint256.Int
	Refund     *uint256.Int
	Reason     string
	Reference  string
	OccurredAt time.Time
}

// NewEvent stamps a new event with an id and time.
func NewEvent(t EventType, at time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		OccurredAt: at,
	}
}

// Key partitions events on the bus: by order when there is one, else by account.
func (e Event) Key() string {
	switch {
	case e.OrderID != 0:
		return "order:" + strconv.FormatUint(e.OrderID, 10)
	case e.User != (common.Address{}):
		return "user:" + e.User.Hex()
	default:
		return "asset:" + e.Asset.Hex()
	}
}

// EventPayload is the wire form of an Event shared by every publisher.
type EventPayload struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	OrderID    uint64 `json:"order_id,omitempty"`
	RequestID  uint64 `json:"request_id,omitempty"`
	User       string `json:"user,omitempty"`
	Asset      string `json:"asset,omitempty"`
	Amount     string `json:"amount,omitempty"`
	Quantity   uint32 `json:"quantity,omitempty"`
	Cost       string `json:"cost,omitempty"`
	Refund     string `json:"refund,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Reference  string `json:"reference,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// Payload converts the event to its wire form.
func (e Event) Payload() EventPayload {
	p := EventPayload{
		ID:         e.ID.String(),
		Type:       string(e.Type),
		OrderID:    e.OrderID,
		RequestID:  e.RequestID,
		Quantity:   e.Quantity,
		Reason:     e.Reason,
		Reference:  e.Reference,
		OccurredAt: e.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
	if e.User != (common.Address{}) {
		p.User = e.User.Hex()
	}
	if e.Asset != (common.Address{}) {
		p.Asset = e.Asset.Hex()
	}
	if e.Amount != nil {
		p.Amount = e.Amount.Dec()
	}
	if e.Cost != nil {
		p.Cost = e.Cost.Dec()
	}
	if e.Refund != nil {
		p.Refund = e.Refund.Dec()
	}
	return p
}
