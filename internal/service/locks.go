package service

import "sync"

// gameLocks serializes work on a single game while leaving other games free.
// An entry lives only while someone holds or waits for it.
type gameLocks struct {
	locks map[string]*gameLock
	mu    sync.Mutex
}

type gameLock struct {
	mu   sync.Mutex
	refs int
}

func newGameLocks() *gameLocks {
	return &gameLocks{locks: make(map[string]*gameLock)}
}

// lock blocks until gameID is free and returns the matching unlock.
func (l *gameLocks) lock(gameID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[gameID]
	if !ok {
		entry = &gameLock{}
		l.locks[gameID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, gameID)
		}
		l.mu.Unlock()
	}
}

func (l *gameLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
