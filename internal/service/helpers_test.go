package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/benbeisheim/szachy-backend/internal/model"
	"github.com/benbeisheim/szachy-backend/internal/store"
	"github.com/benbeisheim/szachy-backend/internal/ws"
	"go.uber.org/zap"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Message
	closed   bool
	failing  bool
	deadline time.Time
}

func (c *fakeConn) SetWriteDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deadline = t
	return nil
}

func (c *fakeConn) writeDeadline() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deadline
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("broken pipe")
	}
	msg, ok := v.(ws.Message)
	if !ok {
		return fmt.Errorf("unexpected payload %T", v)
	}
	c.messages = append(c.messages, msg)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// lastState decodes the most recent gameState message.
func (c *fakeConn) lastState(t *testing.T) model.GameState {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Type != ws.MessageTypeGameState {
			continue
		}
		var state model.GameState
		if err := json.Unmarshal(c.messages[i].Payload, &state); err != nil {
			t.Fatalf("decode gameState: %v", err)
		}
		return state
	}
	t.Fatalf("no gameState message received")
	return model.GameState{}
}

// flakyStore fails every Save while saveErr is set.
type flakyStore struct {
	store.Store
	mu      sync.Mutex
	saveErr error
}

func (s *flakyStore) setSaveErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

func (s *flakyStore) Save(ctx context.Context, g *model.Game) error {
	s.mu.Lock()
	err := s.saveErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Store.Save(ctx, g)
}

func newTestManager(t *testing.T, st store.Store) *GameManager {
	t.Helper()
	if st == nil {
		st = store.NewMemoryStore()
	}
	gm := NewGameManager(st, zap.NewNop())
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	gm.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Second)
		return clock
	}
	next := 0
	gm.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("game-%d", next)
	}
	return gm
}

// startGame creates a game for alice (white) joined by bob (black).
func startGame(t *testing.T, gm *GameManager, opts CreateOptions) string {
	t.Helper()
	ctx := context.Background()
	game, err := gm.CreateGame(ctx, "alice", opts)
	if err != nil {
		t.Fatalf("CreateGame() error = %v", err)
	}
	if _, err := gm.JoinGame(ctx, game.ID, "bob"); err != nil {
		t.Fatalf("JoinGame() error = %v", err)
	}
	return game.ID
}

func move(t *testing.T, gm *GameManager, gameID, playerID, from, to string) model.GameState {
	t.Helper()
	state, err := gm.MakeMove(context.Background(), gameID, playerID, model.WSMove{From: from, To: to})
	if err != nil {
		t.Fatalf("MakeMove(%s%s) error = %v", from, to, err)
	}
	return state
}
