package engine

import (
	"context"
	"testing"

	"blindbuy-escrow/internal/core/domain"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_SetPrice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.eng.SetPrice(ctx, admin, token, ether(t, "0.0001")))
	assert.Equal(t, "100000000000000", f.eng.Price(token).Dec())

	evs := f.pub.ofType(domain.EventPriceUpdated)
	require.Len(t, evs, 1)
	assert.Equal(t, token, evs[0].Asset)
	assert.Equal(t, "100000000000000", evs[0].Amount.Dec())

	// Zero is a legal overwrite that disables purchases.
	require.NoError(t, f.eng.SetPrice(ctx, admin, token, new(uint256.Int)))
	assert.True(t, f.eng.Price(token).IsZero())
	assert.Len(t, f.pub.ofType(domain.EventPriceUpdated), 2)
}

func TestEngine_SetPrice_NotAdmin(t *testing.T) {
	f := newFixture()

	err := f.eng.SetPrice(context.Background(), alice, token, units(1))
	assertAppError(t, err, "ESC_001")
	assert.True(t, f.eng.Price(token).IsZero())
	assert.Equal(t, 0, f.journal.commits())
}

func TestEngine_DepositCash(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	dep, replayed, err := f.eng.DepositCash(ctx, domain.Deposit{User: alice, Amount: ether(t, "1"), Reference: "rail-1"})
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.Equal(t, "rail-1", dep.Reference)
	assert.False(t, dep.CreditedAt.IsZero())
	assert.Equal(t, ether(t, "1"), f.eng.CashBalance(alice))

	evs := f.pub.ofType(domain.EventCashDeposited)
	require.Len(t, evs, 1)
	assert.Equal(t, "rail-1", evs[0].Reference)
}

func TestEngine_DepositCash_ReplayedReference(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, _, err := f.eng.DepositCash(ctx, domain.Deposit{User: alice, Amount: ether(t, "1"), Reference: "rail-1"})
	require.NoError(t, err)

	again, replayed, err := f.eng.DepositCash(ctx, domain.Deposit{User: alice, Amount: ether(t, "1"), Reference: "rail-1"})
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, first.CreditedAt, again.CreditedAt)
	assert.Equal(t, ether(t, "1"), f.eng.CashBalance(alice), "replay must not credit twice")
	assert.Equal(t, 1, f.journal.commits())
}

func TestEngine_DepositCash_ConflictingReplayRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, _, err := f.eng.DepositCash(ctx, domain.Deposit{User: alice, Amount: ether(t, "1"), Reference: "rail-1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		dep  domain.Deposit
	}{
		{"other user", domain.Deposit{User: bob, Amount: ether(t, "1"), Reference: "rail-1"}},
		{"other amount", domain.Deposit{User: alice, Amount: ether(t, "2"), Reference: "rail-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, replayed, err := f.eng.DepositCash(ctx, tt.dep)
			assertAppError(t, err, "ESC_002")
			assert.Nil(t, got)
			assert.False(t, replayed)
		})
	}

	assert.Equal(t, ether(t, "1"), f.eng.CashBalance(alice))
	assert.True(t, f.eng.CashBalance(bob).IsZero())
	assert.Equal(t, 1, f.journal.commits())
}

func TestEngine_DepositCash_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, _, err := f.eng.DepositCash(ctx, domain.Deposit{User: alice, Amount: new(uint256.Int)})
	assertAppError(t, err, "ESC_002")

	_, _, err = f.eng.DepositCash(ctx, domain.Deposit{Amount: units(1)})
	assertAppError(t, err, "ESC_002")
}

func TestEngine_WithdrawCash(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.deposit(t, alice, ether(t, "1"))

	require.NoError(t, f.eng.WithdrawCash(ctx, alice, ether(t, "0.4")))

	assert.Equal(t, ether(t, "0.6"), f.eng.CashBalance(alice))
	require.Len(t, f.custody.payouts, 1)
	assert.Equal(t, alice, f.custody.payouts[0].to)
	assert.Equal(t, ether(t, "0.4"), f.custody.payouts[0].amount)
	assert.Len(t, f.pub.ofType(domain.EventCashWithdrawn), 1)
}

func TestEngine_WithdrawCash_InsufficientBalance(t *testing.T) {
	f := newFixture()
	f.deposit(t, alice, ether(t, "0.1"))

	err := f.eng.WithdrawCash(context.Background(), alice, ether(t, "0.2"))
	assertAppError(t, err, "ESC_004")
	assert.Equal(t, ether(t, "0.1"), f.eng.CashBalance(alice))
	assert.Empty(t, f.custody.payouts)
}

func TestEngine_WithdrawCash_PayoutFailureKeepsBalance(t *testing.T) {
	f := newFixture()
	f.deposit(t, alice, ether(t, "1"))
	f.custody.payErr = errBoom

	err := f.eng.WithdrawCash(context.Background(), alice, ether(t, "1"))
	assertAppError(t, err, "ESC_011")
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, ether(t, "1"), f.eng.CashBalance(alice))
	assert.Empty(t, f.pub.ofType(domain.EventCashWithdrawn))

	rev := f.pub.ofType(domain.EventCashWithdrawalReversed)
	require.Len(t, rev, 1)
	assert.Equal(t, ether(t, "1"), rev[0].Amount)

	// deposit, debit, reversal
	require.Equal(t, 3, f.journal.commits())
	assert.Equal(t, ether(t, "1"), f.journal.committed[2].Cash[alice])
}

func TestEngine_WithdrawCash_JournalCommitFailureNeverPays(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.deposit(t, alice, ether(t, "1"))
	f.journal.commitErr = errBoom

	err := f.eng.WithdrawCash(ctx, alice, ether(t, "1"))
	assertAppError(t, err, "SYS_001")
	assert.Empty(t, f.custody.payouts, "nothing leaves custody without a durable debit")
	assert.Equal(t, ether(t, "1"), f.eng.CashBalance(alice))

	f.journal.commitErr = nil
	require.NoError(t, f.eng.WithdrawCash(ctx, alice, ether(t, "1")))

	err = f.eng.WithdrawCash(ctx, alice, ether(t, "1"))
	assertAppError(t, err, "ESC_004")
	require.Len(t, f.custody.payouts, 1)
	assert.True(t, f.eng.CashBalance(alice).IsZero())
}

func TestEngine_Inventory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.eng.DepositInventory(ctx, admin, token, units(5000)))
	assert.Equal(t, uint64(5000), f.eng.InventoryBalance(token).Uint64())

	err := f.eng.WithdrawInventory(ctx, admin, token, units(5001))
	assertAppError(t, err, "ESC_005")

	require.NoError(t, f.eng.WithdrawInventory(ctx, admin, token, units(1000)))
	assert.Equal(t, uint64(4000), f.eng.InventoryBalance(token).Uint64())
	require.Len(t, f.custody.transfers, 1)
	assert.Equal(t, admin, f.custody.transfers[0].to)

	assert.Len(t, f.pub.ofType(domain.EventInventoryDeposited), 1)
	assert.Len(t, f.pub.ofType(domain.EventInventoryWithdrawn), 1)
}

func TestEngine_WithdrawInventory_TransferFailureRestoresHoldings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.eng.DepositInventory(ctx, admin, token, units(5000)))
	f.custody.transferErr = errBoom

	err := f.eng.WithdrawInventory(ctx, admin, token, units(1000))
	assertAppError(t, err, "ESC_011")
	assert.Equal(t, uint64(5000), f.eng.InventoryBalance(token).Uint64())
	assert.Empty(t, f.pub.ofType(domain.EventInventoryWithdrawn))
	assert.Len(t, f.pub.ofType(domain.EventInventoryWithdrawalReversed), 1)
}

func TestEngine_WithdrawInventory_JournalCommitFailureNeverTransfers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.eng.DepositInventory(ctx, admin, token, units(5000)))
	f.journal.commitErr = errBoom

	err := f.eng.WithdrawInventory(ctx, admin, token, units(1000))
	assertAppError(t, err, "SYS_001")
	assert.Empty(t, f.custody.transfers)
	assert.Equal(t, uint64(5000), f.eng.InventoryBalance(token).Uint64())
}

func TestEngine_Inventory_NotAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	assertAppError(t, f.eng.DepositInventory(ctx, alice, token, units(1)), "ESC_001")
	assertAppError(t, f.eng.WithdrawInventory(ctx, alice, token, units(1)), "ESC_001")
}

func TestEngine_TotalEscrow(t *testing.T) {
	f := newFixture()
	f.deposit(t, alice, ether(t, "1"))
	f.deposit(t, bob, ether(t, "0.5"))
	require.NoError(t, f.eng.WithdrawCash(context.Background(), bob, ether(t, "0.25")))

	assert.Equal(t, ether(t, "1.25"), f.eng.TotalEscrow())
}

func TestEngine_JournalFailureLeavesStateUntouched(t *testing.T) {
	tests := []struct {
		name  string
		setup func(j *fakeJournal)
	}{
		{"begin", func(j *fakeJournal) { j.beginErr = errBoom }},
		{"record", func(j *fakeJournal) { j.recordErr = errBoom }},
		{"commit", func(j *fakeJournal) { j.commitErr = errBoom }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f.journal)

			_, _, err := f.eng.DepositCash(context.Background(), domain.Deposit{User: alice, Amount: units(10), Reference: "r"})
			assertAppError(t, err, "SYS_001")
			assert.True(t, f.eng.CashBalance(alice).IsZero())
			assert.Empty(t, f.pub.events)

			// The reference was never recorded, so it can be retried.
			f.journal.beginErr, f.journal.recordErr, f.journal.commitErr = nil, nil, nil
			_, replayed, err := f.eng.DepositCash(context.Background(), domain.Deposit{User: alice, Amount: units(10), Reference: "r"})
			require.NoError(t, err)
			assert.False(t, replayed)
		})
	}
}
