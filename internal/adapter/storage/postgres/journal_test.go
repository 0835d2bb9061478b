package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"blindbuy-escrow/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testUser  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testAsset = common.HexToAddress("0x7E57000000000000000000000000000000007E57")
)

func strPtr(s string) *string { return &s }

func newTestOrder() *domain.Order {
	return &domain.Order{
		ID:              7,
		User:            testUser,
		ConcealedAsset:  common.HexToHash("0xaa"),
		ConcealedAmount: common.HexToHash("0xbb"),
		Status:          domain.OrderStatusPending,
		CreatedAt:       time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestJournal_RecordAndCommit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	journal := NewJournal(mock)
	o := newTestOrder()
	ev := domain.NewEvent(domain.EventOrderSubmitted, o.CreatedAt)
	ev.OrderID = o.ID

	ch := domain.NewStateChange()
	ch.Orders = append(ch.Orders, o)
	ch.Cash[testUser] = uint256.NewInt(900)
	ch.Events = append(ch.Events, ev)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(int64(7), testUser.Hex(), o.ConcealedAsset.Hex(), o.ConcealedAmount.Hex(),
			"PENDING", o.CreatedAt, int64(0), pgxmock.AnyArg(), int64(0), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO escrow_balances").
		WithArgs(testUser.Hex(), "900").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_events").
		WithArgs(ev.ID, "order.submitted", pgxmock.AnyArg(), pgxmock.AnyArg(), ev.OccurredAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tx, err := journal.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Record(context.Background(), ch))
	require.NoError(t, tx.Commit(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournal_RecordSettledOrderAndDeposit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	o := newTestOrder()
	o.Status = domain.OrderStatusCompleted
	o.RevealRequestID = 3
	o.RevealedAsset = testAsset
	o.RevealedAmount = 1000
	o.Cost = uint256.NewInt(100_000_000_000_000_000)
	settled := o.CreatedAt.Add(time.Minute)
	o.SettledAt = &settled

	dep := &domain.Deposit{Reference: "rail-1", User: testUser, Amount: uint256.NewInt(5), CreditedAt: o.CreatedAt}

	ch := domain.NewStateChange()
	ch.Orders = append(ch.Orders, o)
	ch.Inventory[testAsset] = uint256.NewInt(4000)
	ch.Deposits = append(ch.Deposits, dep)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(int64(7), testUser.Hex(), o.ConcealedAsset.Hex(), o.ConcealedAmount.Hex(),
			"COMPLETED", o.CreatedAt, int64(3), strPtr(testAsset.Hex()), int64(1000),
			strPtr("100000000000000000"), pgxmock.AnyArg(), &settled).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO inventory").
		WithArgs(testAsset.Hex(), "4000").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO deposits").
		WithArgs("rail-1", testUser.Hex(), "5", o.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectRollback()

	tx, err := NewJournal(mock).Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Record(context.Background(), ch))
	require.NoError(t, tx.Rollback(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournal_RecordError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ch := domain.NewStateChange()
	ch.Prices[testAsset] = uint256.NewInt(1)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO prices").
		WithArgs(testAsset.Hex(), "1").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	tx, err := NewJournal(mock).Begin(context.Background())
	require.NoError(t, err)
	err = tx.Record(context.Background(), ch)
	assert.ErrorContains(t, err, "upsert price")
	require.NoError(t, tx.Rollback(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournal_BeginError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	_, err = NewJournal(mock).Begin(context.Background())
	assert.ErrorContains(t, err, "begin tx")
}

func TestEnsureSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS orders").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, EnsureSchema(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}
