package engine

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
	"math/rand/v2"
	"sync"
)

// RandomPicker draws from crypto/rand. When the operator supplies a seed it
// draws from a PCG stream keyed by the seed and a draw counter instead, so
// repeating a seed does not repeat the pick.
type RandomPicker struct {
	mu    sync.Mutex
	draws uint64
}

func NewRandomPicker() *RandomPicker {
	return &RandomPicker{}
}

func (p *RandomPicker) Pick(n int, seed *uint64) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("cannot pick from %d items", n)
	}

	if seed != nil {
		p.mu.Lock()
		p.draws++
		stream := p.draws
		p.mu.Unlock()

		r := rand.New(rand.NewPCG(*seed, stream))
		return r.IntN(n), nil
	}

	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("read random: %w", err)
	}
	return int(v.Int64()), nil
}
