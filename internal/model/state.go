package model

import "github.com/benbeisheim/szachy-backend/internal/chess"

// GameState is what clients receive over REST and websockets.
type GameState struct {
	ID              string         `json:"id"`
	FEN             string         `json:"fen"`
	Board           [][]*PieceView `json:"board"`
	ToMove          PlayerColor    `json:"toMove"`
	IsCheck         bool           `json:"isCheck"`
	Status          GameStatus     `json:"status"`
	DrawReason      string         `json:"drawReason,omitempty"`
	EnPassantTarget *string        `json:"enPassantTarget"`
	Players         struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	MoveHistory []MoveRecord `json:"moveHistory"`
	LastMove    *MoveRecord  `json:"lastMove"`
}

// State builds the client view of g. It fails only if the stored FEN is
// corrupt.
func (g *Game) State() (GameState, error) {
	pos, err := g.Position()
	if err != nil {
		return GameState{}, err
	}

	state := GameState{
		ID:          g.ID,
		FEN:         g.FEN,
		Board:       BoardView(pos),
		ToMove:      ColorOfSide(pos.SideToMove),
		IsCheck:     chess.InCheck(pos),
		Status:      g.Status,
		MoveHistory: append([]MoveRecord(nil), g.Moves...),
		LastMove:    g.LastMove(),
	}
	if state.MoveHistory == nil {
		state.MoveHistory = []MoveRecord{}
	}
	if g.Status == StatusDraw {
		state.DrawReason = chess.DrawReasonOf(pos).String()
	}
	if pos.EnPassant != nil {
		target := pos.EnPassant.String()
		state.EnPassantTarget = &target
	}
	state.Players.White = ClientPlayer{ID: g.WhitePlayerID, Color: PlayerColorWhite}
	state.Players.Black = ClientPlayer{ID: g.BlackPlayerID, Color: PlayerColorBlack}
	return state, nil
}
