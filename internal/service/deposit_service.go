package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/pkg/apperror"

	"github.com/rs/zerolog"
)

const depositReceiptTTL = 24 * time.Hour

// depositService credits custody deposits exactly once per reference.
// Layer 1 is the Redis receipt cache; layer 2 is the engine's journaled
// reference set, which is authoritative.
type depositService struct {
	engine ports.EscrowEngine
	cache  ports.IdempotencyCache
	log    zerolog.Logger
}

// NewDepositService creates a deposit service. cache may be nil.
func NewDepositService(engine ports.EscrowEngine, cache ports.IdempotencyCache, log zerolog.Logger) ports.DepositService {
	return &depositService{engine: engine, cache: cache, log: log}
}

func (s *depositService) ProcessDeposit(ctx context.Context, deposit domain.Deposit) (*ports.DepositReceipt, error) {
	if deposit.Reference == "" {
		return nil, apperror.ErrInvalidInput("deposit reference is required")
	}
	key := domain.BuildDepositIdempotencyKey(deposit.Reference)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Str("reference", deposit.Reference).Msg("idempotency cache read failed, falling through")
		} else if cached != nil {
			var receipt ports.DepositReceipt
			if err := json.Unmarshal(cached, &receipt); err == nil {
				if receipt.User != deposit.User.Hex() || receipt.Amount != domain.WeiString(deposit.Amount) {
					return nil, apperror.ErrInvalidInput("deposit reference already credited with different user or amount")
				}
				receipt.Replayed = true
				return &receipt, nil
			}
			s.log.Warn().Str("reference", deposit.Reference).Msg("corrupt cached deposit receipt ignored")
		}
	}

	credited, replayed, err := s.engine.DepositCash(ctx, deposit)
	if err != nil {
		return nil, err
	}

	receipt := &ports.DepositReceipt{
		Reference:  credited.Reference,
		User:       credited.User.Hex(),
		Amount:     domain.WeiString(credited.Amount),
		CreditedAt: credited.CreditedAt,
		Replayed:   replayed,
	}

	if s.cache != nil {
		stored := *receipt
		stored.Replayed = false
		data, err := json.Marshal(stored)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("marshal receipt: %w", err))
		}
		if err := s.cache.Set(ctx, key, data, depositReceiptTTL); err != nil {
			s.log.Warn().Err(err).Str("reference", deposit.Reference).Msg("idempotency cache write failed")
		}
	}

	return receipt, nil
}
