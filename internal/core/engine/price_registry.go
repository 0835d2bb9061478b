package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// priceRegistry maps an asset to its fixed price in wei per unit.
// An absent entry and a zero entry both mean "not purchasable".
type priceRegistry struct {
	prices map[common.Address]*uint256.Int
}

func newPriceRegistry() *priceRegistry {
	return &priceRegistry{prices: make(map[common.Address]*uint256.Int)}
}

func (r *priceRegistry) get(asset common.Address) *uint256.Int {
	if p, ok := r.prices[asset]; ok {
		return p.Clone()
	}
	return new(uint256.Int)
}

func (r *priceRegistry) set(asset common.Address, price *uint256.Int) {
	if price == nil || price.IsZero() {
		delete(r.prices, asset)
		return
	}
	r.prices[asset] = price.Clone()
}
