package service

import (
	"context"
	"sync"

	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"

	"github.com/rs/zerolog"
)

const defaultSinkBuffer = 1024

type sinkWorker struct {
	sink  ports.EventSink
	queue chan domain.Event
}

// EventDispatcher implements ports.EventPublisher. Each sink gets its own
// buffered queue and goroutine; a full queue drops the event for that sink.
type EventDispatcher struct {
	workers []sinkWorker
	log     zerolog.Logger
}

// NewEventDispatcher creates a dispatcher. buffer <= 0 uses 1024 per sink.
func NewEventDispatcher(log zerolog.Logger, buffer int, sinks ...ports.EventSink) *EventDispatcher {
	if buffer <= 0 {
		buffer = defaultSinkBuffer
	}
	d := &EventDispatcher{log: log}
	for _, s := range sinks {
		d.workers = append(d.workers, sinkWorker{sink: s, queue: make(chan domain.Event, buffer)})
	}
	return d
}

// Publish never blocks the caller.
func (d *EventDispatcher) Publish(_ context.Context, events []domain.Event) {
	for _, w := range d.workers {
		for _, ev := range events {
			select {
			case w.queue <- ev:
			default:
				d.log.Warn().
					Str("sink", w.sink.Name()).
					Str("event_type", string(ev.Type)).
					Uint64("order_id", ev.OrderID).
					Msg("event queue full, dropping event")
			}
		}
	}
}

// Run drains every sink queue until ctx is cancelled.
func (d *EventDispatcher) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, w := range d.workers {
		wg.Add(1)
		go func(w sinkWorker) {
			defer wg.Done()
			d.drain(ctx, w)
		}(w)
	}
	wg.Wait()
	return nil
}

func (d *EventDispatcher) drain(ctx context.Context, w sinkWorker) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-w.queue:
			if err := w.sink.Send(ctx, ev); err != nil && ctx.Err() == nil {
				d.log.Error().Err(err).
					Str("sink", w.sink.Name()).
					Str("event_type", string(ev.Type)).
					Str("event_id", ev.ID.String()).
					Msg("event delivery failed")
			}
		}
	}
}
