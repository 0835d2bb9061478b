package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"blindbuy-escrow/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestSink_Send(t *testing.T) {
	w := &fakeWriter{}
	s := &Sink{writer: w}

	ev := domain.NewEvent(domain.EventOrderCompleted, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	ev.OrderID = 9
	ev.User = common.HexToAddress("0xA11CE00000000000000000000000000000000001")
	ev.Cost = uint256.NewInt(100)

	require.NoError(t, s.Send(context.Background(), ev))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "order:9", string(msg.Key))
	assert.Equal(t, ev.OccurredAt, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "order.completed", string(msg.Headers[0].Value))

	var payload domain.EventPayload
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, ev.ID.String(), payload.ID)
	assert.Equal(t, "100", payload.Cost)
}

func TestSink_SendError(t *testing.T) {
	s := &Sink{writer: &fakeWriter{err: errors.New("broker unavailable")}}

	err := s.Send(context.Background(), domain.NewEvent(domain.EventPriceUpdated, time.Now()))
	assert.ErrorContains(t, err, "broker unavailable")
	assert.ErrorContains(t, err, "price.updated")
}

func TestSink_Close(t *testing.T) {
	w := &fakeWriter{}
	s := &Sink{writer: w}
	assert.Equal(t, "kafka", s.Name())
	require.NoError(t, s.Close())
	assert.True(t, w.closed)
}

func TestNewSink(t *testing.T) {
	s := NewSink([]string{"localhost:9092"}, "escrow-events")
	kw, ok := s.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "escrow-events", kw.Topic)
	assert.Equal(t, kafka.RequireAll, kw.RequiredAcks)
}
