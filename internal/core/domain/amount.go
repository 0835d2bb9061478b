package domain

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// EtherDecimals is the number of wei per ether as a power of ten.
const EtherDecimals = 18

var (
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrFractionalAmount = errors.New("amount has more precision than the unit allows")
	ErrAmountOverflow   = errors.New("amount exceeds 256 bits")
)

// ParseWei parses a base-10 integer string into a 256-bit amount.
func ParseWei(s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("parse wei %q: %w", s, err)
	}
	return v, nil
}

// ParseEther converts a decimal ether string such as "0.0001" to wei.
func ParseEther(s string) (*uint256.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("parse ether %q: %w", s, err)
	}
	return decimalToWei(d)
}

// FormatEther renders a wei amount as a decimal ether string.
func FormatEther(wei *uint256.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.RequireFromString(wei.Dec()).Shift(-EtherDecimals).String()
}

// WeiString renders nil as "0".
func WeiString(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}

func decimalToWei(d decimal.Decimal) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, ErrNegativeAmount
	}
	wei := d.Shift(EtherDecimals)
	if !wei.IsInteger() {
		return nil, ErrFractionalAmount
	}
	v, err := uint256.FromDecimal(wei.BigInt().String())
	if err != nil {
		return nil, ErrAmountOverflow
	}
	return v, nil
}

// Zero returns a fresh zero amount.
func Zero() *uint256.Int {
	return new(uint256.Int)
}
