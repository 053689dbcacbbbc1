package model

import (
	"errors"
	"time"

	"github.com/benbeisheim/szachy-backend/internal/chess"
)

var (
	ErrGameFull      = errors.New("game is full")
	ErrSeatTaken     = errors.New("seat already taken")
	ErrAlreadyQueued = errors.New("player already in queue")
)

// Game is the persisted record of one session. The position lives in FEN; the
// engine types are never stored directly.
type Game struct {
	ID            string       `json:"id"`
	StartFEN      string       `json:"startFen"`
	FEN           string       `json:"fen"`
	Status        GameStatus   `json:"status"`
	WhitePlayerID string       `json:"whitePlayerId"`
	BlackPlayerID string       `json:"blackPlayerId"`
	Moves         []MoveRecord `json:"moves"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func NewGame(id, startFEN string, now time.Time) *Game {
	return &Game{
		ID:        id,
		StartFEN:  startFEN,
		FEN:       startFEN,
		Status:    StatusWaiting,
		Moves:     make([]MoveRecord, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Seat binds playerID to color. Seating the same player twice on the same
// color is a no-op.
func (g *Game) Seat(playerID string, color PlayerColor) error {
	seat := &g.WhitePlayerID
	if color == PlayerColorBlack {
		seat = &g.BlackPlayerID
	}
	if *seat != "" && *seat != playerID {
		return ErrSeatTaken
	}
	*seat = playerID
	return nil
}

// AddPlayer seats playerID on the first free color, white first. A player
// already in the game gets their existing color back.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	if color, ok := g.ColorOf(playerID); ok {
		return color, nil
	}
	if g.WhitePlayerID == "" {
		g.WhitePlayerID = playerID
		return PlayerColorWhite, nil
	}
	if g.BlackPlayerID == "" {
		g.BlackPlayerID = playerID
		return PlayerColorBlack, nil
	}
	return "", ErrGameFull
}

func (g *Game) ColorOf(playerID string) (PlayerColor, bool) {
	switch {
	case playerID == "":
		return "", false
	case g.WhitePlayerID == playerID:
		return PlayerColorWhite, true
	case g.BlackPlayerID == playerID:
		return PlayerColorBlack, true
	}
	return "", false
}

func (g *Game) IsParticipant(playerID string) bool {
	_, ok := g.ColorOf(playerID)
	return ok
}

func (g *Game) IsFull() bool {
	return g.WhitePlayerID != "" && g.BlackPlayerID != ""
}

func (g *Game) PlayerID(color PlayerColor) string {
	if color == PlayerColorWhite {
		return g.WhitePlayerID
	}
	return g.BlackPlayerID
}

// Position decodes the stored FEN.
func (g *Game) Position() (chess.Position, error) {
	return chess.Decode(g.FEN)
}

// Clone returns a deep copy so that callers can modify the record without
// touching shared state.
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	c := *g
	c.Moves = make([]MoveRecord, len(g.Moves))
	copy(c.Moves, g.Moves)
	return &c
}

func (g *Game) LastMove() *MoveRecord {
	if len(g.Moves) == 0 {
		return nil
	}
	last := g.Moves[len(g.Moves)-1]
	return &last
}
