// Package keymutex provides named mutual exclusion. The scheduling engine
// serializes its check-then-commit sequence per resource (and per user/class
// pair) with one mutex per key.
package keymutex

import "sync"

// KeyMutex hands out one mutex per key. Entries are never evicted; the key
// space is bounded by the catalog and the active user population, so the
// map stays small for the lifetime of the process.
type KeyMutex struct {
	locks sync.Map // string -> *sync.Mutex
}

func New() *KeyMutex {
	return &KeyMutex{}
}

// Lock acquires the mutex for key and returns its unlock function.
func (m *KeyMutex) Lock(key string) func() {
	v, _ := m.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
