package engine

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin = common.HexToAddress("0xA0000000000000000000000000000000000000AD")
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
	token = common.HexToAddress("0x7E57000000000000000000000000000000007E57")
	other = common.HexToAddress("0x0DD0000000000000000000000000000000000DD0")
)

// ---- journal ----

type fakeJournal struct {
	mu        sync.Mutex
	committed []*domain.StateChange
	beginErr  error
	recordErr error
	commitErr error
}

func (j *fakeJournal) Begin(_ context.Context) (ports.JournalTx, error) {
	if j.beginErr != nil {
		return nil, j.beginErr
	}
	return &fakeJournalTx{j: j}, nil
}

func (j *fakeJournal) commits() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.committed)
}

type fakeJournalTx struct {
	j      *fakeJournal
	staged *domain.StateChange
	done   bool
}

func (tx *fakeJournalTx) Record(_ context.Context, ch *domain.StateChange) error {
	if tx.j.recordErr != nil {
		return tx.j.recordErr
	}
	tx.staged = ch
	return nil
}

func (tx *fakeJournalTx) Commit(_ context.Context) error {
	if tx.j.commitErr != nil {
		return tx.j.commitErr
	}
	tx.j.mu.Lock()
	tx.j.committed = append(tx.j.committed, tx.staged)
	tx.j.mu.Unlock()
	tx.done = true
	return nil
}

func (tx *fakeJournalTx) Rollback(_ context.Context) error { return nil }

// ---- gateway ----

type revealCall struct {
	id     uint64
	asset  common.Hash
	amount common.Hash
}

type fakeGateway struct {
	verifyErr error
	revealErr error
	nextID    uint64
	requests  []revealCall
}

func (g *fakeGateway) VerifyInput(_ context.Context, _ common.Address, _ ports.ConcealedInput) error {
	return g.verifyErr
}

func (g *fakeGateway) RequestReveal(_ context.Context, asset common.Hash, amount common.Hash) (uint64, error) {
	if g.revealErr != nil {
		return 0, g.revealErr
	}
	g.nextID++
	g.requests = append(g.requests, revealCall{id: g.nextID, asset: asset, amount: amount})
	return g.nextID, nil
}

func (g *fakeGateway) lastRequest(t testing.TB) uint64 {
	t.Helper()
	require.NotEmpty(t, g.requests, "no reveal requested")
	return g.requests[len(g.requests)-1].id
}

// ---- custody ----

type transfer struct {
	asset  common.Address
	to     common.Address
	amount *uint256.Int
}

type fakeCustody struct {
	payErr      error
	transferErr error
	payouts     []transfer
	transfers   []transfer
}

func (c *fakeCustody) PayCash(_ context.Context, to common.Address, amount *uint256.Int) error {
	if c.payErr != nil {
		return c.payErr
	}
	c.payouts = append(c.payouts, transfer{to: to, amount: amount.Clone()})
	return nil
}

func (c *fakeCustody) TransferAsset(_ context.Context, asset common.Address, to common.Address, amount *uint256.Int) error {
	if c.transferErr != nil {
		return c.transferErr
	}
	c.transfers = append(c.transfers, transfer{asset: asset, to: to, amount: amount.Clone()})
	return nil
}

// ---- picker ----

// sequencePicker returns the configured positions in order, modulo n.
type sequencePicker struct {
	positions []int
	calls     int
	seeds     []*uint64
	err       error
}

func (p *sequencePicker) Pick(n int, seed *uint64) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	p.seeds = append(p.seeds, seed)
	pos := 0
	if len(p.positions) > 0 {
		pos = p.positions[p.calls%len(p.positions)] % n
	}
	p.calls++
	return pos, nil
}

// ---- publisher ----

type recordingPublisher struct {
	events []domain.Event
}

func (p *recordingPublisher) Publish(_ context.Context, events []domain.Event) {
	p.events = append(p.events, events...)
}

func (p *recordingPublisher) ofType(t domain.EventType) []domain.Event {
	var out []domain.Event
	for _, ev := range p.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// ---- fixture ----

type engineFixture struct {
	eng     *Engine
	gw      *fakeGateway
	custody *fakeCustody
	journal *fakeJournal
	picker  *sequencePicker
	pub     *recordingPublisher
}

func newFixture() *engineFixture {
	f := &engineFixture{
		gw:      &fakeGateway{},
		custody: &fakeCustody{},
		journal: &fakeJournal{},
		picker:  &sequencePicker{},
		pub:     &recordingPublisher{},
	}
	f.eng = New(admin, f.gw, f.custody, f.journal, f.picker, f.pub, zerolog.Nop())
	return f
}

func ether(t testing.TB, s string) *uint256.Int {
	t.Helper()
	v, err := domain.ParseEther(s)
	require.NoError(t, err)
	return v
}

func units(n uint64) *uint256.Int {
	return uint256.NewInt(n)
}

func concealed(n int64) ports.ConcealedInput {
	return ports.ConcealedInput{
		Asset:  common.BigToHash(big.NewInt(2*n + 1)),
		Amount: common.BigToHash(big.NewInt(2*n + 2)),
		Proof:  []byte("proof"),
	}
}

func (f *engineFixture) deposit(t testing.TB, user common.Address, amount *uint256.Int) {
	t.Helper()
	_, _, err := f.eng.DepositCash(context.Background(), domain.Deposit{User: user, Amount: amount})
	require.NoError(t, err)
}

func (f *engineFixture) submit(t testing.TB, user common.Address) uint64 {
	t.Helper()
	id, err := f.eng.SubmitOrder(context.Background(), user, concealed(int64(f.eng.nextID)))
	require.NoError(t, err)
	return id
}

func (f *engineFixture) pick(t testing.TB) *domain.PickResult {
	t.Helper()
	res, err := f.eng.PickRandomAndRequestReveal(context.Background(), admin, nil)
	require.NoError(t, err)
	return res
}

func (f *engineFixture) order(t testing.TB, id uint64) *domain.Order {
	t.Helper()
	o, err := f.eng.GetOrder(id)
	require.NoError(t, err)
	return o
}

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}

var errBoom = errors.New("boom")
