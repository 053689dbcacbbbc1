package model

import "github.com/benbeisheim/szachy-backend/internal/chess"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func PieceTypeOf(kind chess.PieceKind) PieceType {
	return PieceType(kind.String())
}

func (p PieceType) notation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

type PieceView struct {
	Type   PieceType   `json:"type"`
	Color  PlayerColor `json:"color"`
	Square string      `json:"square"`
}

// BoardView lays the position out the way the client draws it: row 0 is the
// eighth rank, column 0 the a-file, nil for an empty square.
func BoardView(p chess.Position) [][]*PieceView {
	board := make([][]*PieceView, 8)
	for rank := 0; rank < 8; rank++ {
		board[rank] = make([]*PieceView, 8)
		for file := 0; file < 8; file++ {
			sq := chess.Square{File: file, Rank: rank}
			piece := p.At(sq)
			if piece.IsEmpty() {
				continue
			}
			board[rank][file] = &PieceView{
				Type:   PieceTypeOf(piece.Kind),
				Color:  ColorOfSide(piece.Side),
				Square: sq.String(),
			}
		}
	}
	return board
}
