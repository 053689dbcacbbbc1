package model

import "github.com/benbeisheim/szachy-backend/internal/chess"

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

// ParsePlayerColor accepts "white", "black" or "" (meaning white).
func ParsePlayerColor(text string) (PlayerColor, bool) {
	switch PlayerColor(text) {
	case "", PlayerColorWhite:
		return PlayerColorWhite, true
	case PlayerColorBlack:
		return PlayerColorBlack, true
	}
	return "", false
}

func ColorOfSide(side chess.Side) PlayerColor {
	if side == chess.White {
		return PlayerColorWhite
	}
	return PlayerColorBlack
}

func (c PlayerColor) Opponent() PlayerColor {
	if c == PlayerColorWhite {
		return PlayerColorBlack
	}
	return PlayerColorWhite
}

type ClientPlayer struct {
	ID        string      `json:"id"`
	Color     PlayerColor `json:"color"`
	Connected bool        `json:"connected"`
}

type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  PlayerColor `json:"color"`
}
