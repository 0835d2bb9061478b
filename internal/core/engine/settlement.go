package engine

import (
	"context"
	"errors"
	"fmt"

	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// PickRandomAndRequestReveal moves one uniformly chosen pending order to
// AwaitingReveal and asks the gateway to reveal it. If the gateway refuses,
// nothing changes and the order stays pending.
func (e *Engine) PickRandomAndRequestReveal(ctx context.Context, caller common.Address, seed *uint64) (*domain.PickResult, error) {
	if err := e.requireAdmin(caller); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	n := e.pending.Len()
	if n == 0 {
		return nil, apperror.ErrNoActiveOrders()
	}

	pos, err := e.picker.Pick(n, seed)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("pick index: %w", err))
	}
	if pos < 0 || pos >= n {
		return nil, apperror.InternalError(fmt.Errorf("picker returned %d for %d pending orders", pos, n))
	}

	order := e.orders[e.pending.At(pos)]
	next, err := transition(order, domain.OrderStatusAwaitingReveal)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("pending index holds order %d in status %s", order.ID, order.Status))
	}

	requestID, err := e.gateway.RequestReveal(ctx, order.ConcealedAsset, order.ConcealedAmount)
	if err != nil {
		return nil, apperror.ErrRevealFailure(err)
	}
	if requestID == 0 {
		return nil, apperror.ErrRevealFailure(errors.New("gateway returned request id 0"))
	}
	if _, taken := e.requests[requestID]; taken {
		return nil, apperror.ErrRevealFailure(fmt.Errorf("gateway reused request id %d", requestID))
	}
	next.RevealRequestID = requestID

	ev := e.newEvent(domain.EventOrderPicked)
	ev.OrderID = order.ID
	ev.RequestID = requestID

	ch := domain.NewStateChange()
	ch.Orders = append(ch.Orders, next)
	ch.Events = append(ch.Events, ev)

	if err := e.commit(ctx, ch); err != nil {
		e.log.Warn().
			Uint64("order_id", order.ID).
			Uint64("request_id", requestID).
			Msg("reveal requested but pick was not recorded; callback will be ignored")
		return nil, err
	}

	e.log.Info().
		Uint64("order_id", order.ID).
		Uint64("request_id", requestID).
		Int("pending", e.pending.Len()).
		Msg("order picked for settlement")

	return &domain.PickResult{OrderID: order.ID, RequestID: requestID}, nil
}

// OnRevealed settles the order behind a reveal request. Every outcome is
// recorded on the order; nothing is returned to the gateway.
func (e *Engine) OnRevealed(ctx context.Context, result ports.RevealResult) {
	e.mu.Lock()
	defer e.mu.Unlock()

	orderID, ok := e.requests[result.RequestID]
	if !ok {
		e.log.Debug().Uint64("request_id", result.RequestID).Msg("ignoring reveal for unknown request")
		return
	}
	order := e.orders[orderID]
	if order.Status != domain.OrderStatusAwaitingReveal {
		e.log.Debug().
			Uint64("request_id", result.RequestID).
			Uint64("order_id", orderID).
			Str("status", string(order.Status)).
			Msg("ignoring reveal for settled order")
		return
	}

	if !result.OK {
		reason := domain.ReasonRevealFailed
		if result.Reason != "" {
			reason += ": " + result.Reason
		}
		e.fail(ctx, order, nil, reason)
		return
	}

	revealed := order.Clone()
	revealed.RevealedAsset = result.Asset
	revealed.RevealedAmount = result.Amount

	if result.Amount == 0 {
		e.fail(ctx, revealed, nil, domain.ReasonZeroQuantity)
		return
	}

	price := e.prices.get(result.Asset)
	if price.IsZero() {
		e.fail(ctx, revealed, nil, domain.ReasonPriceUnset)
		return
	}

	quantity := uint256.NewInt(uint64(result.Amount))
	priorHoldings := e.ledger.inventoryOf(result.Asset)
	holdings, err := e.ledger.debitInventory(result.Asset, quantity)
	if err != nil {
		e.fail(ctx, revealed, nil, domain.ReasonInsufficientInventory)
		return
	}

	cost, overflow := new(uint256.Int).MulOverflow(price, quantity)
	if overflow {
		e.fail(ctx, revealed, nil, domain.ReasonInsufficientBalance)
		return
	}
	priorCash := e.ledger.cashOf(order.User)
	balance, err := e.ledger.debitCash(order.User, cost)
	if err != nil {
		e.fail(ctx, revealed, cost, domain.ReasonInsufficientBalance)
		return
	}

	completed, _ := transition(revealed, domain.OrderStatusCompleted)
	now := e.now().UTC()
	completed.Cost = cost.Clone()
	completed.SettledAt = &now

	ev := e.newEvent(domain.EventOrderCompleted)
	ev.OrderID = order.ID
	ev.User = order.User
	ev.Asset = result.Asset
	ev.Quantity = result.Amount
	ev.Cost = cost.Clone()
	ev.Refund = new(uint256.Int)

	ch := domain.NewStateChange()
	ch.Orders = append(ch.Orders, completed)
	ch.Cash[order.User] = balance
	ch.Inventory[result.Asset] = holdings
	ch.Events = append(ch.Events, ev)

	// A rejected transfer returns the cost to escrow and the quantity to
	// inventory, and fails the order in place of its completion.
	failed, fev := e.failedOrder(revealed, cost, domain.ReasonTransferFailed)
	refund := e.newEvent(domain.EventOrderRefunded)
	refund.OrderID = order.ID
	refund.User = order.User
	refund.Refund = cost.Clone()

	reversal := domain.NewStateChange()
	reversal.Orders = append(reversal.Orders, failed)
	reversal.Cash[order.User] = priorCash
	reversal.Inventory[result.Asset] = priorHoldings
	reversal.Events = append(reversal.Events, fev, refund)

	transfer := func(ctx context.Context) error {
		return e.custody.TransferAsset(ctx, result.Asset, order.User, quantity)
	}

	err = e.commitThenRun(ctx, ch, transfer, reversal)
	var effErr *effectError
	switch {
	case errors.As(err, &effErr):
		e.log.Warn().Err(effErr.err).
			Uint64("order_id", order.ID).
			Str("asset", result.Asset.Hex()).
			Str("refund_wei", cost.Dec()).
			Msg("asset transfer failed; settlement reversed")
	case err != nil:
		e.log.Error().Err(err).
			Uint64("order_id", order.ID).
			Uint64("request_id", result.RequestID).
			Msg("settlement not recorded; order remains awaiting reveal")
	default:
		e.log.Info().
			Uint64("order_id", order.ID).
			Str("user", order.User.Hex()).
			Str("asset", result.Asset.Hex()).
			Uint32("quantity", result.Amount).
			Str("cost_wei", cost.Dec()).
			Msg("order completed")
	}
}

// failedOrder returns order resolved to Failed and its order-failed event.
// order must be AwaitingReveal.
func (e *Engine) failedOrder(order *domain.Order, cost *uint256.Int, reason string) (*domain.Order, domain.Event) {
	failed := order.Clone()
	failed.Status = domain.OrderStatusFailed
	now := e.now().UTC()
	failed.FailureReason = reason
	failed.SettledAt = &now
	if cost != nil {
		failed.Cost = cost.Clone()
	}

	ev := e.newEvent(domain.EventOrderFailed)
	ev.OrderID = order.ID
	ev.User = order.User
	ev.Reason = reason
	return failed, ev
}

// fail resolves an AwaitingReveal order to Failed. Nothing was debited, so
// no refund is emitted.
func (e *Engine) fail(ctx context.Context, order *domain.Order, cost *uint256.Int, reason string) {
	if !order.Status.CanTransitionTo(domain.OrderStatusFailed) {
		e.log.Error().Uint64("order_id", order.ID).Str("status", string(order.Status)).Msg("cannot fail order")
		return
	}
	failed, ev := e.failedOrder(order, cost, reason)

	ch := domain.NewStateChange()
	ch.Orders = append(ch.Orders, failed)
	ch.Events = append(ch.Events, ev)

	if err := e.commit(ctx, ch); err != nil {
		e.log.Error().Err(err).
			Uint64("order_id", order.ID).
			Str("reason", reason).
			Msg("failure not recorded; order remains awaiting reveal")
		return
	}

	e.log.Info().
		Uint64("order_id", order.ID).
		Str("user", order.User.Hex()).
		Str("reason", reason).
		Msg("order failed")
}
