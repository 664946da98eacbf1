package store

import "sync"

// KeyedMutex serializes work per key. Entries are dropped once the last
// waiter releases, so the map stays bounded by the number of in-flight keys.
type KeyedMutex struct {
	edit    sync.Mutex
	waiters map[string]int
	mutexes map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		waiters: make(map[string]int),
		mutexes: make(map[string]*sync.Mutex),
	}
}

func (m *KeyedMutex) Lock(key string) {
	m.edit.Lock()
	mu := m.mutexes[key]
	if mu == nil {
		mu = &sync.Mutex{}
		m.mutexes[key] = mu
	}
	m.waiters[key]++
	m.edit.Unlock()

	mu.Lock()
}

func (m *KeyedMutex) Unlock(key string) {
	m.edit.Lock()
	defer m.edit.Unlock()

	mu := m.mutexes[key]
	if mu == nil {
		return
	}

	mu.Unlock()
	m.waiters[key]--
	if m.waiters[key] == 0 {
		delete(m.mutexes, key)
		delete(m.waiters, key)
	}
}
