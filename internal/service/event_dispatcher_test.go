package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type collectingSink struct {
	mu     sync.Mutex
	events []domain.Event
	got    chan struct{}
}

func (s *collectingSink) Name() string { return "collect" }

func (s *collectingSink) Send(_ context.Context, ev domain.Event) error {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
	s.got <- struct{}{}
	return nil
}

func TestEventDispatcher_FansOutToEverySink(t *testing.T) {
	ctrl := gomock.NewController(t)
	failing := mocks.NewMockEventSink(ctrl)
	failing.EXPECT().Name().Return("broken").AnyTimes()

	failed := make(chan struct{}, 2)
	failing.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, domain.Event) error {
		failed <- struct{}{}
		return errors.New("broker down")
	}).Times(2)

	ok := &collectingSink{got: make(chan struct{}, 2)}
	d := NewEventDispatcher(newTestLogger(), 8, failing, ok)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = d.Run(ctx)
		close(done)
	}()

	d.Publish(ctx, []domain.Event{
		domain.NewEvent(domain.EventOrderSubmitted, time.Now()),
		domain.NewEvent(domain.EventOrderPicked, time.Now()),
	})

	for i := 0; i < 2; i++ {
		select {
		case <-ok.got:
		case <-time.After(2 * time.Second):
			t.Fatal("event not delivered")
		}
		select {
		case <-failed:
		case <-time.After(2 * time.Second):
			t.Fatal("failing sink not called")
		}
	}

	cancel()
	<-done

	ok.mu.Lock()
	defer ok.mu.Unlock()
	require.Len(t, ok.events, 2)
	assert.Equal(t, domain.EventOrderSubmitted, ok.events[0].Type)
	assert.Equal(t, domain.EventOrderPicked, ok.events[1].Type)
}

func TestEventDispatcher_DropsWhenFull(t *testing.T) {
	sink := &collectingSink{got: make(chan struct{}, 10)}
	d := NewEventDispatcher(newTestLogger(), 1, sink)

	events := []domain.Event{
		domain.NewEvent(domain.EventCashDeposited, time.Now()),
		domain.NewEvent(domain.EventCashWithdrawn, time.Now()),
	}
	d.Publish(context.Background(), events)

	assert.Len(t, d.workers[0].queue, 1)
}
