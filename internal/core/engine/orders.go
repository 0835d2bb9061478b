package engine

import (
	"context"
	"errors"
	"fmt"

	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
)

// SubmitOrder records a blind order once the gateway accepts its proof.
// Nothing is charged or reserved until settlement.
func (e *Engine) SubmitOrder(ctx context.Context, caller common.Address, input ports.ConcealedInput) (uint64, error) {
	if caller == (common.Address{}) {
		return 0, apperror.ErrInvalidInput("caller address required")
	}
	if input.Asset == (common.Hash{}) || input.Amount == (common.Hash{}) {
		return 0, apperror.ErrInvalidInput("concealed asset and amount handles required")
	}
	if len(input.Proof) == 0 {
		return 0, apperror.ErrInvalidInput("input proof required")
	}

	// The proof binds the handles to the caller, so it is checked before any
	// state is touched.
	if err := e.gateway.VerifyInput(ctx, caller, input); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return 0, err
		}
		return 0, apperror.InternalError(fmt.Errorf("verify input: %w", err))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	order := &domain.Order{
		ID:              e.nextID,
		User:            caller,
		ConcealedAsset:  input.Asset,
		ConcealedAmount: input.Amount,
		Status:          domain.OrderStatusPending,
		CreatedAt:       e.now().UTC(),
	}

	ev := e.newEvent(domain.EventOrderSubmitted)
	ev.OrderID = order.ID
	ev.User = caller

	ch := domain.NewStateChange()
	ch.Orders = append(ch.Orders, order)
	ch.Events = append(ch.Events, ev)

	if err := e.commit(ctx, ch); err != nil {
		return 0, err
	}

	e.log.Info().
		Uint64("order_id", order.ID).
		Str("user", caller.Hex()).
		Msg("order submitted")
	return order.ID, nil
}

// CancelOrder withdraws a still-pending order. No cash moves.
func (e *Engine) CancelOrder(ctx context.Context, caller common.Address, orderID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, ok := e.orders[orderID]
	if !ok {
		return apperror.ErrNotFound("Order")
	}
	if order.User != caller {
		return apperror.ErrNotOwner()
	}

	next, err := transition(order, domain.OrderStatusCancelled)
	if err != nil {
		return err
	}

	ev := e.newEvent(domain.EventOrderCancelled)
	ev.OrderID = orderID
	ev.User = caller

	ch := domain.NewStateChange()
	ch.Orders = append(ch.Orders, next)
	ch.Events = append(ch.Events, ev)

	if err := e.commit(ctx, ch); err != nil {
		return err
	}

	e.log.Info().
		Uint64("order_id", orderID).
		Str("user", caller.Hex()).
		Msg("order cancelled")
	return nil
}
