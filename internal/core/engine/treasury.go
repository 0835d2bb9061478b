package engine

import (
	"context"
	"errors"
	"fmt"

	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// SetPrice overwrites an asset's price. Zero is legal and disables purchases.
func (e *Engine) SetPrice(ctx context.Context, caller common.Address, asset common.Address, price *uint256.Int) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if asset == (common.Address{}) {
		return apperror.ErrInvalidInput("asset address required")
	}
	if price == nil {
		price = new(uint256.Int)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ev := e.newEvent(domain.EventPriceUpdated)
	ev.Asset = asset
	ev.Amount = price.Clone()

	ch := domain.NewStateChange()
	ch.Prices[asset] = price.Clone()
	ch.Events = append(ch.Events, ev)

	if err := e.commit(ctx, ch); err != nil {
		return err
	}

	e.log.Info().
		Str("asset", asset.Hex()).
		Str("price_wei", price.Dec()).
		Msg("price updated")
	return nil
}

// DepositCash credits a custody deposit to the user's escrow. A deposit whose
// reference was already credited returns the original record and true.
func (e *Engine) DepositCash(ctx context.Context, deposit domain.Deposit) (*domain.Deposit, bool, error) {
	if deposit.User == (common.Address{}) {
		return nil, false, apperror.ErrInvalidInput("user address required")
	}
	if deposit.Amount == nil || deposit.Amount.IsZero() {
		return nil, false, apperror.ErrInvalidInput("amount must be positive")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if deposit.Reference != "" {
		if prev, ok := e.deposits[deposit.Reference]; ok {
			if prev.User != deposit.User || !prev.Amount.Eq(deposit.Amount) {
				return nil, false, apperror.ErrInvalidInput("deposit reference already credited with different user or amount")
			}
			dup := *prev
			return &dup, true, nil
		}
	}

	balance, err := e.ledger.creditCash(deposit.User, deposit.Amount)
	if err != nil {
		return nil, false, err
	}

	rec := &domain.Deposit{
		Reference:  deposit.Reference,
		User:       deposit.User,
		Amount:     deposit.Amount.Clone(),
		CreditedAt: e.now().UTC(),
	}

	ev := e.newEvent(domain.EventCashDeposited)
	ev.User = deposit.User
	ev.Amount = deposit.Amount.Clone()
	ev.Reference = deposit.Reference

	ch := domain.NewStateChange()
	ch.Cash[deposit.User] = balance
	if rec.Reference != "" {
		ch.Deposits = append(ch.Deposits, rec)
	}
	ch.Events = append(ch.Events, ev)

	if err := e.commit(ctx, ch); err != nil {
		return nil, false, err
	}

	e.log.Info().
		Str("user", deposit.User.Hex()).
		Str("amount_wei", deposit.Amount.Dec()).
		Str("reference", deposit.Reference).
		Msg("cash deposited")

	out := *rec
	return &out, false, nil
}

// WithdrawCash debits the user's escrow and pays the amount out through custody.
func (e *Engine) WithdrawCash(ctx context.Context, user common.Address, amount *uint256.Int) error {
	if user == (common.Address{}) {
		return apperror.ErrInvalidInput("user address required")
	}
	if amount == nil || amount.IsZero() {
		return apperror.ErrInvalidInput("amount must be positive")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	prior := e.ledger.cashOf(user)
	balance, err := e.ledger.debitCash(user, amount)
	if err != nil {
		return err
	}

	ev := e.newEvent(domain.EventCashWithdrawn)
	ev.User = user
	ev.Amount = amount.Clone()

	ch := domain.NewStateChange()
	ch.Cash[user] = balance
	ch.Events = append(ch.Events, ev)

	rev := e.newEvent(domain.EventCashWithdrawalReversed)
	rev.User = user
	rev.Amount = amount.Clone()

	reversal := domain.NewStateChange()
	reversal.Cash[user] = prior
	reversal.Events = append(reversal.Events, rev)

	payout := func(ctx context.Context) error {
		if err := e.custody.PayCash(ctx, user, amount); err != nil {
			return apperror.ErrPayoutFailed(fmt.Errorf("pay %s: %w", user.Hex(), err))
		}
		return nil
	}
	if err := e.commitThenRun(ctx, ch, payout, reversal); err != nil {
		return unwrapEffect(err)
	}

	e.log.Info().
		Str("user", user.Hex()).
		Str("amount_wei", amount.Dec()).
		Msg("cash withdrawn")
	return nil
}

// DepositInventory credits custody holdings of an asset.
func (e *Engine) DepositInventory(ctx context.Context, caller common.Address, asset common.Address, amount *uint256.Int) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if asset == (common.Address{}) {
		return apperror.ErrInvalidInput("asset address required")
	}
	if amount == nil || amount.IsZero() {
		return apperror.ErrInvalidInput("amount must be positive")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	holdings, err := e.ledger.creditInventory(asset, amount)
	if err != nil {
		return err
	}

	ev := e.newEvent(domain.EventInventoryDeposited)
	ev.Asset = asset
	ev.Amount = amount.Clone()

	ch := domain.NewStateChange()
	ch.Inventory[asset] = holdings
	ch.Events = append(ch.Events, ev)

	if err := e.commit(ctx, ch); err != nil {
		return err
	}

	e.log.Info().
		Str("asset", asset.Hex()).
		Str("amount", amount.Dec()).
		Str("holdings", holdings.Dec()).
		Msg("inventory deposited")
	return nil
}

// WithdrawInventory debits custody holdings and transfers them to the admin.
func (e *Engine) WithdrawInventory(ctx context.Context, caller common.Address, asset common.Address, amount *uint256.Int) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if amount == nil || amount.IsZero() {
		return apperror.ErrInvalidInput("amount must be positive")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	prior := e.ledger.inventoryOf(asset)
	holdings, err := e.ledger.debitInventory(asset, amount)
	if err != nil {
		return err
	}

	ev := e.newEvent(domain.EventInventoryWithdrawn)
	ev.Asset = asset
	ev.Amount = amount.Clone()

	ch := domain.NewStateChange()
	ch.Inventory[asset] = holdings
	ch.Events = append(ch.Events, ev)

	rev := e.newEvent(domain.EventInventoryWithdrawalReversed)
	rev.Asset = asset
	rev.Amount = amount.Clone()

	reversal := domain.NewStateChange()
	reversal.Inventory[asset] = prior
	reversal.Events = append(reversal.Events, rev)

	transfer := func(ctx context.Context) error {
		if err := e.custody.TransferAsset(ctx, asset, caller, amount); err != nil {
			return apperror.ErrPayoutFailed(fmt.Errorf("transfer %s: %w", asset.Hex(), err))
		}
		return nil
	}
	if err := e.commitThenRun(ctx, ch, transfer, reversal); err != nil {
		return unwrapEffect(err)
	}

	e.log.Info().
		Str("asset", asset.Hex()).
		Str("amount", amount.Dec()).
		Str("holdings", holdings.Dec()).
		Msg("inventory withdrawn")
	return nil
}

// unwrapEffect returns the custody error carried by an *effectError.
func unwrapEffect(err error) error {
	var effErr *effectError
	if errors.As(err, &effErr) {
		return effErr.err
	}
	return err
}
