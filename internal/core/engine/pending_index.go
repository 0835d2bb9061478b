package engine

// pendingIndex is the set of Pending order ids. A dense slice gives uniform
// selection by position; the position map gives O(1) swap-remove.
type pendingIndex struct {
	ids []uint64
	pos map[uint64]int
}

func newPendingIndex() *pendingIndex {
	return &pendingIndex{pos: make(map[uint64]int)}
}

func (p *pendingIndex) Len() int {
	return len(p.ids)
}

func (p *pendingIndex) Contains(id uint64) bool {
	_, ok := p.pos[id]
	return ok
}

// Insert adds id. It returns false if id is already present.
func (p *pendingIndex) Insert(id uint64) bool {
	if _, ok := p.pos[id]; ok {
		return false
	}
	p.pos[id] = len(p.ids)
	p.ids = append(p.ids, id)
	return true
}

// Remove deletes id by moving the last element into its slot.
// It returns false if id is absent.
func (p *pendingIndex) Remove(id uint64) bool {
	i, ok := p.pos[id]
	if !ok {
		return false
	}
	last := len(p.ids) - 1
	if i != last {
		moved := p.ids[last]
		p.ids[i] = moved
		p.pos[moved] = i
	}
	p.ids = p.ids[:last]
	delete(p.pos, id)
	return true
}

// At returns the id stored at position i, 0 <= i < Len().
func (p *pendingIndex) At(i int) uint64 {
	return p.ids[i]
}

// IDs returns a copy of the ids in index order.
func (p *pendingIndex) IDs() []uint64 {
	out := make([]uint64, len(p.ids))
	copy(out, p.ids)
	return out
}
