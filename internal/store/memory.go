package store

import (
	"context"
	"sort"
	"sync"

	"github.com/benbeisheim/szachy-backend/internal/model"
)

type MemoryStore struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]*model.Game),
	}
}

func (s *MemoryStore) Create(_ context.Context, g *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[g.ID]; exists {
		return ErrExists
	}
	s.games[g.ID] = g.Clone()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, exists := s.games[id]
	if !exists {
		return nil, ErrNotFound
	}
	return g.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, g *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[g.ID]; !exists {
		return ErrNotFound
	}
	s.games[g.ID] = g.Clone()
	return nil
}

func (s *MemoryStore) ListActive(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.games))
	for id, g := range s.games {
		if !g.Status.IsTerminal() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) Close() error { return nil }
