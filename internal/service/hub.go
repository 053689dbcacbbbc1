package service

import (
	"sync"
	"time"

	"github.com/benbeisheim/szachy-backend/internal/logging"
	"github.com/benbeisheim/szachy-backend/internal/ws"
	"go.uber.org/zap"
)

// writeWait bounds a single write so a stalled client cannot hold up the
// game it watches.
const writeWait = 10 * time.Second

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Client wraps a connection so that broadcasts and direct replies never write
// to it concurrently.
type Client struct {
	conn Conn
	mu   sync.Mutex
}

func (c *Client) Send(msg ws.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// Hub tracks the connections watching each game, players and spectators alike.
type Hub struct {
	games  map[string]map[string]*Client // gameID -> playerID -> client
	mu     sync.RWMutex
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		games:  make(map[string]map[string]*Client),
		logger: logging.OrNop(logger),
	}
}

// Register attaches conn to gameID for playerID. An older connection of the
// same player is closed and replaced.
func (h *Hub) Register(gameID, playerID string, conn Conn) *Client {
	client := &Client{conn: conn}

	h.mu.Lock()
	conns, ok := h.games[gameID]
	if !ok {
		conns = make(map[string]*Client)
		h.games[gameID] = conns
	}
	old := conns[playerID]
	conns[playerID] = client
	h.mu.Unlock()

	if old != nil {
		h.logger.Debug("replacing connection", zap.String("game_id", gameID), zap.String("player_id", playerID))
		old.conn.Close()
	}
	return client
}

// Unregister detaches client if it is still the current connection of playerID.
func (h *Hub) Unregister(gameID, playerID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.games[gameID]
	if conns == nil || conns[playerID] != client {
		return
	}
	delete(conns, playerID)
	if len(conns) == 0 {
		delete(h.games, gameID)
	}
}

func (h *Hub) Connected(gameID, playerID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.games[gameID][playerID]
	return ok
}

func (h *Hub) Count(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}

// Broadcast sends msg to every connection of gameID. Connections that fail
// to accept it are dropped.
func (h *Hub) Broadcast(gameID string, msg ws.Message) {
	h.mu.RLock()
	targets := make(map[string]*Client, len(h.games[gameID]))
	for playerID, client := range h.games[gameID] {
		targets[playerID] = client
	}
	h.mu.RUnlock()

	for playerID, client := range targets {
		if err := client.Send(msg); err != nil {
			h.logger.Warn("dropping connection after failed write",
				zap.String("game_id", gameID),
				zap.String("player_id", playerID),
				zap.Error(err),
			)
			h.Unregister(gameID, playerID, client)
			client.conn.Close()
		}
	}
}
