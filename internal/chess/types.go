package chess

type Side int

const (
	White Side = iota
	Black
)

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

type PieceKind int

const (
	NoPiece PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return ""
}

// Piece is a board occupant. The zero value is an empty square.
type Piece struct {
	Kind PieceKind
	Side Side
}

func (p Piece) IsEmpty() bool {
	return p.Kind == NoPiece
}

// Square addresses the board array: Rank 0 is the eighth rank, File 0 is the a-file.
type Square struct {
	File int
	Rank int
}

func (s Square) Valid() bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

func (s Square) offset(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

func (c CastlingRights) kingside(side Side) bool {
	if side == White {
		return c.WhiteKingside
	}
	return c.BlackKingside
}

func (c CastlingRights) queenside(side Side) bool {
	if side == White {
		return c.WhiteQueenside
	}
	return c.BlackQueenside
}

// Position is the complete game state between two half-moves. It is a value
// type: assigning it copies the board, and EnPassant is never mutated in place.
type Position struct {
	Board          [8][8]Piece
	SideToMove     Side
	Castling       CastlingRights
	EnPassant      *Square
	HalfmoveClock  int
	FullmoveNumber int
}

func (p *Position) At(sq Square) Piece {
	return p.Board[sq.Rank][sq.File]
}

func (p *Position) set(sq Square, piece Piece) {
	p.Board[sq.Rank][sq.File] = piece
}

// KingSquare returns the square of side's king, or false if it is not on the board.
func (p *Position) KingSquare(side Side) (Square, bool) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := p.Board[rank][file]
			if piece.Kind == King && piece.Side == side {
				return Square{File: file, Rank: rank}, true
			}
		}
	}
	return Square{}, false
}

// Move is a move request. Promotion is only read when a pawn reaches its last rank.
type Move struct {
	From      Square
	To        Square
	Promotion PieceKind
}

type Status int

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
	Draw
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Draw:
		return "draw"
	}
	return "unknown"
}
