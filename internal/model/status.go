package model

import "github.com/benbeisheim/szachy-backend/internal/chess"

type GameStatus string

const (
	StatusWaiting   GameStatus = "waiting"
	StatusOngoing   GameStatus = "ongoing"
	StatusCheckmate GameStatus = "checkmate"
	StatusStalemate GameStatus = "stalemate"
	StatusDraw      GameStatus = "draw"
	StatusAborted   GameStatus = "aborted"
)

// IsTerminal reports whether no further moves may be played.
func (s GameStatus) IsTerminal() bool {
	switch s {
	case StatusCheckmate, StatusStalemate, StatusDraw, StatusAborted:
		return true
	}
	return false
}

// StatusFromEngine maps a position classification onto a session status.
// A check is still an ongoing game.
func StatusFromEngine(s chess.Status) GameStatus {
	switch s {
	case chess.Checkmate:
		return StatusCheckmate
	case chess.Stalemate:
		return StatusStalemate
	case chess.Draw:
		return StatusDraw
	}
	return StatusOngoing
}
