package status

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Registry holds the runtime counters of the compositor
// Actors and the scheduler cache counter pointers at registration; hot paths
// write directly to the atomics and never take the lock
type Registry struct {
	mu       sync.RWMutex
	counters map[string]*atomic.Int64
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{counters: make(map[string]*atomic.Int64)}
}

// Counter returns the counter registered under key, creating it if absent
func (r *Registry) Counter(key string) *atomic.Int64 {
	r.mu.RLock()
	v, ok := r.counters[key]
	r.mu.RUnlock()
	if ok {
		return v
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Registered by another writer between the locks
	if v, ok := r.counters[key]; ok {
		return v
	}
	v = new(atomic.Int64)
	r.counters[key] = v
	return v
}

// Lookup returns the counter under key without registering it
func (r *Registry) Lookup(key string) (*atomic.Int64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.counters[key]
	return v, ok
}

// Len returns the number of registered counters
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.counters)
}

// Range calls fn for every counter in key order
func (r *Registry) Range(fn func(key string, v *atomic.Int64)) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.counters))
	for k := range r.counters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, r.counters[k])
	}
}

// Snapshot returns a copy of every counter value
func (r *Registry) Snapshot() map[string]int64 {
	out := make(map[string]int64, r.Len())
	r.Range(func(key string, v *atomic.Int64) {
		out[key] = v.Load()
	})
	return out
}

// StoreMax raises v to n if n is larger
func StoreMax(v *atomic.Int64, n int64) {
	for {
		cur := v.Load()
		if n <= cur || v.CompareAndSwap(cur, n) {
			return
		}
	}
}
