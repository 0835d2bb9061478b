package service

import (
	"context"
	"errors"
	"time"

	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// AutoSettler picks one pending order per tick on behalf of the operator.
type AutoSettler struct {
	engine   ports.EscrowEngine
	operator common.Address
	interval time.Duration
	log      zerolog.Logger
}

// NewAutoSettler creates a settler. interval must be positive.
func NewAutoSettler(engine ports.EscrowEngine, operator common.Address, interval time.Duration, log zerolog.Logger) *AutoSettler {
	return &AutoSettler{
		engine:   engine,
		operator: operator,
		interval: interval,
		log:      log,
	}
}

// Run ticks until ctx is cancelled.
func (s *AutoSettler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Msg("auto settler started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("auto settler stopped")
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *AutoSettler) tick(ctx context.Context) {
	if s.engine.PendingCount() == 0 {
		return
	}
	result, err := s.engine.PickRandomAndRequestReveal(ctx, s.operator, nil)
	switch {
	case err == nil:
		s.log.Info().
			Uint64("order_id", result.OrderID).
			Uint64("request_id", result.RequestID).
			Msg("order picked for settlement")
	case errors.Is(err, apperror.ErrNoActiveOrders()):
		// drained by a manual pick since PendingCount
	default:
		s.log.Error().Err(err).Msg("auto pick failed")
	}
}
