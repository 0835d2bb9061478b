package domain

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status OrderStatus
		want   bool
	}{
		{"pending", OrderStatusPending, false},
		{"awaiting reveal", OrderStatusAwaitingReveal, false},
		{"completed", OrderStatusCompleted, true},
		{"failed", OrderStatusFailed, true},
		{"cancelled", OrderStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{Status: tt.status}
			assert.Equal(t, tt.want, o.IsTerminal())
		})
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusAwaitingReveal, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusAwaitingReveal, OrderStatusCompleted, true},
		{OrderStatusAwaitingReveal, OrderStatusFailed, true},
		{OrderStatusAwaitingReveal, OrderStatusCancelled, false},
		{OrderStatusAwaitingReveal, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusFailed, false},
		{OrderStatusFailed, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusAwaitingReveal.IsValid())
	assert.False(t, OrderStatus("SETTLED").IsValid())
}

func TestOrder_CloneIsDeep(t *testing.T) {
	now := time.Now()
	o := &Order{ID: 1, Status: OrderStatusCompleted, Cost: uint256.NewInt(10), SettledAt: &now}

	c := o.Clone()
	c.Cost.SetUint64(99)
	*c.SettledAt = now.Add(time.Hour)

	assert.Equal(t, uint64(10), o.Cost.Uint64())
	assert.Equal(t, now, *o.SettledAt)
}

func TestParseEther(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "1000000000000000000"},
		{"0.0001", "100000000000000"},
		{"0.1", "100000000000000000"},
		{"0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ParseEther(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Dec())
		})
	}
}

func TestParseEther_Rejects(t *testing.T) {
	_, err := ParseEther("-1")
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = ParseEther("0.0000000000000000001")
	assert.ErrorIs(t, err, ErrFractionalAmount)

	_, err = ParseEther("not-a-number")
	assert.Error(t, err)
}

func TestFormatEther(t *testing.T) {
	assert.Equal(t, "0.9", FormatEther(uint256.NewInt(900_000_000_000_000_000)))
	assert.Equal(t, "0", FormatEther(nil))
}

func TestParseWei(t *testing.T) {
	v, err := ParseWei("100000000000000000")
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000_000_000_000_000), v.Uint64())

	_, err = ParseWei("0x10")
	assert.Error(t, err)
}

func TestEvent_PayloadOmitsUnsetFields(t *testing.T) {
	ev := NewEvent(EventOrderPicked, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	ev.OrderID = 7
	ev.RequestID = 42

	p := ev.Payload()
	assert.Equal(t, "order.picked", p.Type)
	assert.Equal(t, uint64(7), p.OrderID)
	assert.Equal(t, uint64(42), p.RequestID)
	assert.Empty(t, p.User)
	assert.Empty(t, p.Cost)
	assert.Equal(t, "2026-01-02T03:04:05Z", p.OccurredAt)
	assert.NotEmpty(t, p.ID)
}

func TestEvent_Key(t *testing.T) {
	user := common.HexToAddress("0x1111111111111111111111111111111111111111")

	assert.Equal(t, "order:3", Event{OrderID: 3, User: user}.Key())
	assert.Equal(t, "user:"+user.Hex(), Event{User: user}.Key())
}

func TestBuildDepositIdempotencyKey(t *testing.T) {
	assert.Equal(t, "deposit:tx-0xabc", BuildDepositIdempotencyKey("tx-0xabc"))
}

func TestStateChange_IsEmpty(t *testing.T) {
	ch := NewStateChange()
	assert.True(t, ch.IsEmpty())

	ch.Prices[common.Address{1}] = uint256.NewInt(1)
	assert.False(t, ch.IsEmpty())
}
