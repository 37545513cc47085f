package message

import (
	"sync/atomic"

	"github.com/lixenwraith/vi-compositor/parameter"
)

// Pools bounds the number of live messages per weight class
// Acquire never blocks: an exhausted class refuses the allocation and the
// caller drops the send
type Pools struct {
	capacity [numWeights]int64
	free     [numWeights]atomic.Int64
}

// NewPools creates pools with the given per-class capacities
func NewPools(tiny, small, medium int) *Pools {
	p := &Pools{}
	for w, n := range [numWeights]int{tiny, small, medium} {
		if n < 0 {
			n = 0
		}
		p.capacity[w] = int64(n)
		p.free[w].Store(int64(n))
	}
	return p
}

// DefaultPools creates pools sized to the reference capacities
func DefaultPools() *Pools {
	return NewPools(parameter.TinyPoolSize, parameter.SmallPoolSize, parameter.MediumPoolSize)
}

// Acquire takes one slot from class w, returning false when exhausted
// Lock-free CAS; safe for concurrent producers
func (p *Pools) Acquire(w Weight) bool {
	if w >= numWeights {
		return false
	}
	for {
		cur := p.free[w].Load()
		if cur <= 0 {
			return false
		}
		if p.free[w].CompareAndSwap(cur, cur-1) {
			return true
		}
	}
}

// Release returns one slot to class w
// Releasing beyond capacity is ignored
func (p *Pools) Release(w Weight) {
	if w >= numWeights {
		return
	}
	for {
		cur := p.free[w].Load()
		if cur >= p.capacity[w] {
			return
		}
		if p.free[w].CompareAndSwap(cur, cur+1) {
			return
		}
	}
}

// Free returns the number of available slots in class w
func (p *Pools) Free(w Weight) int {
	if w >= numWeights {
		return 0
	}
	return int(p.free[w].Load())
}

// Capacity returns the configured size of class w
func (p *Pools) Capacity(w Weight) int {
	if w >= numWeights {
		return 0
	}
	return int(p.capacity[w])
}
