package service

import (
	"fmt"
	"sync"
)

// keyedMutex serializes work per event+category so recomputes and score
// runs for different categories never block each other.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		locks: make(map[string]*sync.Mutex),
	}
}

func (k *keyedMutex) lock(eventID, categoryID uint) func() {
	key := fmt.Sprintf("%d/%d", eventID, categoryID)

	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
