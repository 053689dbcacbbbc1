package chess

import "fmt"

// ParseSquare converts algebraic notation ("a1".."h8") to a board square.
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return Square{}, &InvalidSquareError{Text: text}
	}
	file, rank := text[0], text[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Square{}, &InvalidSquareError{Text: text}
	}
	return Square{File: int(file - 'a'), Rank: 7 - int(rank-'1')}, nil
}

func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
	}
	return fmt.Sprintf("%c%d", 'a'+s.File, 8-s.Rank)
}

func SquareToCoords(text string) (file, rank int, err error) {
	sq, err := ParseSquare(text)
	if err != nil {
		return 0, 0, err
	}
	return sq.File, sq.Rank, nil
}

func CoordsToSquare(file, rank int) (string, error) {
	sq := Square{File: file, Rank: rank}
	if !sq.Valid() {
		return "", &InvalidSquareError{Text: sq.String()}
	}
	return sq.String(), nil
}

var promotionLetters = map[byte]PieceKind{
	'n': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
}

// ParseMove reads coordinate notation such as "e2e4" or "e7e8q".
// An unknown promotion letter is kept as NoPiece and later defaults to a queen.
func ParseMove(text string) (Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return Move{}, &InvalidSquareError{Text: text}
	}
	from, err := ParseSquare(text[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return Move{}, err
	}
	m := Move{From: from, To: to}
	if len(text) == 5 {
		m.Promotion = ParsePromotion(text[4:])
	}
	return m, nil
}

// ParsePromotion maps "q", "r", "b", "n" (either case) or a piece name to a kind.
// Anything else yields NoPiece.
func ParsePromotion(text string) PieceKind {
	switch text {
	case "queen":
		return Queen
	case "rook":
		return Rook
	case "bishop":
		return Bishop
	case "knight":
		return Knight
	}
	if len(text) != 1 {
		return NoPiece
	}
	c := text[0]
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	return promotionLetters[c]
}

func (m Move) String() string {
	s := m.From.String() + m.To.String()
	switch m.Promotion {
	case Knight:
		s += "n"
	case Bishop:
		s += "b"
	case Rook:
		s += "r"
	case Queen:
		s += "q"
	}
	return s
}
