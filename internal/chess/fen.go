package chess

import (
	"strconv"
	"strings"
)

const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const (
	fieldPlacement = "placement"
	fieldSide      = "side to move"
	fieldCastling  = "castling"
	fieldEnPassant = "en passant"
	fieldHalfmove  = "halfmove clock"
	fieldFullmove  = "fullmove number"
)

var pieceLetters = map[byte]Piece{
	'P': {Pawn, White}, 'N': {Knight, White}, 'B': {Bishop, White},
	'R': {Rook, White}, 'Q': {Queen, White}, 'K': {King, White},
	'p': {Pawn, Black}, 'n': {Knight, Black}, 'b': {Bishop, Black},
	'r': {Rook, Black}, 'q': {Queen, Black}, 'k': {King, Black},
}

func (p Piece) letter() byte {
	var c byte
	switch p.Kind {
	case Pawn:
		c = 'p'
	case Knight:
		c = 'n'
	case Bishop:
		c = 'b'
	case Rook:
		c = 'r'
	case Queen:
		c = 'q'
	case King:
		c = 'k'
	default:
		return 0
	}
	if p.Side == White {
		c -= 'a' - 'A'
	}
	return c
}

// StartingPosition returns the standard initial array.
func StartingPosition() Position {
	p, err := Decode(InitialFEN)
	if err != nil {
		panic(err)
	}
	return p
}

// Decode parses the six-field position text. Only canonical texts are accepted,
// so Encode(Decode(s)) == s for every s that decodes without error.
func Decode(text string) (Position, error) {
	var p Position
	fields := strings.Split(text, " ")
	if len(fields) != 6 {
		return p, malformed("", "expected 6 space-separated fields, got %d", len(fields))
	}

	if err := decodePlacement(&p, fields[0]); err != nil {
		return Position{}, err
	}

	switch fields[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return Position{}, malformed(fieldSide, "must be w or b, got %q", fields[1])
	}

	castling, err := decodeCastling(fields[2])
	if err != nil {
		return Position{}, err
	}
	p.Castling = castling

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return Position{}, malformed(fieldEnPassant, "invalid square %q", fields[3])
		}
		if fields[3][1] != '3' && fields[3][1] != '6' {
			return Position{}, malformed(fieldEnPassant, "target %q is not on rank 3 or 6", fields[3])
		}
		p.EnPassant = &sq
	}

	if p.HalfmoveClock, err = decodeCounter(fieldHalfmove, fields[4], 0); err != nil {
		return Position{}, err
	}
	if p.FullmoveNumber, err = decodeCounter(fieldFullmove, fields[5], 1); err != nil {
		return Position{}, err
	}
	return p, nil
}

func decodePlacement(p *Position, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return malformed(fieldPlacement, "expected 8 ranks, got %d", len(ranks))
	}
	for rank, row := range ranks {
		file := 0
		prevDigit := false
		for i := 0; i < len(row); i++ {
			c := row[i]
			if c >= '1' && c <= '8' {
				if prevDigit {
					return malformed(fieldPlacement, "rank %d has adjacent empty-run digits", 8-rank)
				}
				file += int(c - '0')
				prevDigit = true
				continue
			}
			piece, ok := pieceLetters[c]
			if !ok {
				return malformed(fieldPlacement, "invalid character %q in rank %d", c, 8-rank)
			}
			if file >= 8 {
				return malformed(fieldPlacement, "rank %d overflows", 8-rank)
			}
			p.Board[rank][file] = piece
			file++
			prevDigit = false
		}
		if file > 8 {
			return malformed(fieldPlacement, "rank %d overflows", 8-rank)
		}
		if file < 8 {
			return malformed(fieldPlacement, "rank %d is incomplete", 8-rank)
		}
	}
	return nil
}

const castlingOrder = "KQkq"

func decodeCastling(field string) (CastlingRights, error) {
	var c CastlingRights
	if field == "-" {
		return c, nil
	}
	if len(field) == 0 || len(field) > 4 {
		return c, malformed(fieldCastling, "invalid rights %q", field)
	}
	last := -1
	for i := 0; i < len(field); i++ {
		idx := strings.IndexByte(castlingOrder, field[i])
		if idx < 0 {
			return c, malformed(fieldCastling, "invalid character %q", field[i])
		}
		if idx <= last {
			return c, malformed(fieldCastling, "rights %q are not in KQkq order", field)
		}
		last = idx
		switch field[i] {
		case 'K':
			c.WhiteKingside = true
		case 'Q':
			c.WhiteQueenside = true
		case 'k':
			c.BlackKingside = true
		case 'q':
			c.BlackQueenside = true
		}
	}
	return c, nil
}

func decodeCounter(field, text string, min int) (int, error) {
	if text == "" {
		return 0, malformed(field, "missing value")
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return 0, malformed(field, "%q is not a decimal integer", text)
		}
	}
	if len(text) > 1 && text[0] == '0' {
		return 0, malformed(field, "%q has leading zeros", text)
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, malformed(field, "%q: %v", text, err)
	}
	if n < min {
		return 0, malformed(field, "%d is below %d", n, min)
	}
	return n, nil
}

// Encode serializes p into the six-field position text.
func Encode(p Position) string {
	var sb strings.Builder
	for rank := 0; rank < 8; rank++ {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.Board[rank][file]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece.letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank < 7 {
			sb.WriteByte('/')
		}
	}

	if p.SideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	sb.WriteString(p.Castling.String())

	sb.WriteByte(' ')
	if p.EnPassant != nil {
		sb.WriteString(p.EnPassant.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullmoveNumber))
	return sb.String()
}

func (p Position) String() string {
	return Encode(p)
}

func (c CastlingRights) String() string {
	s := ""
	if c.WhiteKingside {
		s += "K"
	}
	if c.WhiteQueenside {
		s += "Q"
	}
	if c.BlackKingside {
		s += "k"
	}
	if c.BlackQueenside {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// Validate checks the invariants that decoding alone does not: one king per side.
func (p Position) Validate() error {
	var kings [2]int
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if piece := p.Board[rank][file]; piece.Kind == King {
				kings[piece.Side]++
			}
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return malformed(fieldPlacement, "expected one king per side, got %d white and %d black", kings[White], kings[Black])
	}
	if ep := p.EnPassant; ep != nil {
		mover := p.SideToMove.Opponent()
		if ep.Rank != enPassantRank(p.SideToMove) {
			return malformed(fieldEnPassant, "target %s does not fit %s to move", ep, p.SideToMove)
		}
		if p.At(Square{File: ep.File, Rank: ep.Rank - forward(p.SideToMove)}) != (Piece{Kind: Pawn, Side: mover}) {
			return malformed(fieldEnPassant, "no %s pawn behind target %s", mover, ep)
		}
	}
	return nil
}
