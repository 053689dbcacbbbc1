package model

import (
	"strings"
	"time"

	"github.com/benbeisheim/szachy-backend/internal/chess"
)

// WSMove is the move request sent by clients, in algebraic squares.
type WSMove struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// ToMove parses the request. An unknown promotion letter is left for the
// engine, which promotes to a queen.
func (m WSMove) ToMove() (chess.Move, error) {
	from, err := chess.ParseSquare(strings.TrimSpace(m.From))
	if err != nil {
		return chess.Move{}, err
	}
	to, err := chess.ParseSquare(strings.TrimSpace(m.To))
	if err != nil {
		return chess.Move{}, err
	}
	return chess.Move{From: from, To: to, Promotion: chess.ParsePromotion(m.Promotion)}, nil
}

// MoveRecord is one entry of a game's move log.
type MoveRecord struct {
	MoveNumber int         `json:"moveNumber"`
	Color      PlayerColor `json:"color"`
	PlayerID   string      `json:"playerId"`
	From       string      `json:"from"`
	To         string      `json:"to"`
	Promotion  string      `json:"promotion,omitempty"`
	Notation   string      `json:"notation"`
	FEN        string      `json:"fen"`
	Timestamp  time.Time   `json:"timestamp"`
}

// NewMoveRecord describes m played from before, reaching after.
func NewMoveRecord(playerID string, before chess.Position, m chess.Move, after chess.Position, status chess.Status, at time.Time) MoveRecord {
	rec := MoveRecord{
		MoveNumber: before.FullmoveNumber,
		Color:      ColorOfSide(before.SideToMove),
		PlayerID:   playerID,
		From:       m.From.String(),
		To:         m.To.String(),
		Notation:   Notation(before, m, after, status),
		FEN:        after.String(),
		Timestamp:  at,
	}
	if moved := before.At(m.From); moved.Kind == chess.Pawn && after.At(m.To).Kind != chess.Pawn {
		rec.Promotion = after.At(m.To).Kind.String()
	}
	return rec
}

// Notation renders m in short algebraic form. m must be legal in before.
func Notation(before chess.Position, m chess.Move, after chess.Position, status chess.Status) string {
	piece := before.At(m.From)
	var b strings.Builder

	switch {
	case piece.Kind == chess.King && m.To.File-m.From.File == 2:
		b.WriteString("O-O")
	case piece.Kind == chess.King && m.From.File-m.To.File == 2:
		b.WriteString("O-O-O")
	default:
		from, to := m.From.String(), m.To.String()
		capture := !before.At(m.To).IsEmpty()
		if piece.Kind == chess.Pawn {
			if m.From.File != m.To.File {
				capture = true
				b.WriteString(from[:1])
			}
		} else {
			b.WriteString(PieceTypeOf(piece.Kind).notation())
			b.WriteString(disambiguation(before, m))
		}
		if capture {
			b.WriteByte('x')
		}
		b.WriteString(to)
		if promoted := after.At(m.To); piece.Kind == chess.Pawn && promoted.Kind != chess.Pawn {
			b.WriteByte('=')
			b.WriteString(PieceTypeOf(promoted.Kind).notation())
		}
	}

	// A drawn position can still be a check, so Status alone is not enough.
	if status == chess.Checkmate {
		b.WriteByte('#')
	} else if chess.InCheck(after) {
		b.WriteByte('+')
	}
	return b.String()
}

// disambiguation returns the file, rank or full square of m.From when another
// piece of the same kind could also reach m.To.
func disambiguation(p chess.Position, m chess.Move) string {
	piece := p.At(m.From)
	var sameFile, sameRank, other bool
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := chess.Square{File: file, Rank: rank}
			if sq == m.From || p.At(sq) != piece {
				continue
			}
			for _, to := range chess.LegalMoves(p, sq) {
				if to != m.To {
					continue
				}
				other = true
				sameFile = sameFile || file == m.From.File
				sameRank = sameRank || rank == m.From.Rank
			}
		}
	}
	from := m.From.String()
	switch {
	case !other:
		return ""
	case !sameFile:
		return from[:1]
	case !sameRank:
		return from[1:]
	}
	return from
}
