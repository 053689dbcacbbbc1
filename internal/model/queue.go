package model

import (
	"sync"
	"time"
)

type QueuedPlayer struct {
	PlayerID string
	JoinedAt time.Time
}

// Queue holds players waiting for an opponent, oldest first.
type Queue struct {
	players []QueuedPlayer
	mu      sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{
		players: []QueuedPlayer{},
	}
}

func (q *Queue) AddPlayer(playerID string, now time.Time) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.PlayerID == playerID {
			return ErrAlreadyQueued
		}
	}
	q.players = append(q.players, QueuedPlayer{PlayerID: playerID, JoinedAt: now})
	return nil
}

// Remove drops playerID from the queue and reports whether it was queued.
func (q *Queue) Remove(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.players {
		if p.PlayerID == playerID {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return true
		}
	}
	return false
}

// GetNextPair pops the two players who have waited longest. ok is false when
// fewer than two are queued.
func (q *Queue) GetNextPair() (first, second QueuedPlayer, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < 2 {
		return QueuedPlayer{}, QueuedPlayer{}, false
	}
	first, second = q.players[0], q.players[1]
	q.players = q.players[2:]
	return first, second, true
}

// PushFront puts players back at the head of the queue, keeping their order.
func (q *Queue) PushFront(players ...QueuedPlayer) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.players = append(append([]QueuedPlayer{}, players...), q.players...)
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
