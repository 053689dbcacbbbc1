package chess

// LegalMoves filters the pseudo-legal destinations of the piece on from down to
// those that do not leave its own king attacked. An empty square, or a piece of
// the side not to move, yields nil.
func LegalMoves(p Position, from Square) []Square {
	return legalMoves(&p, from)
}

func legalMoves(p *Position, from Square) []Square {
	if !from.Valid() {
		return nil
	}
	piece := p.At(from)
	if piece.IsEmpty() || piece.Side != p.SideToMove {
		return nil
	}

	var legal []Square
	for _, to := range pseudoLegalMoves(p, from) {
		next := applyUnchecked(p, Move{From: from, To: to})
		king, ok := next.KingSquare(piece.Side)
		if ok && !isAttacked(&next, king, piece.Side.Opponent()) {
			legal = append(legal, to)
		}
	}
	return legal
}

func IsLegalMove(p Position, from, to Square) (bool, error) {
	if !from.Valid() {
		return false, &InvalidSquareError{Text: from.String()}
	}
	if !to.Valid() {
		return false, &InvalidSquareError{Text: to.String()}
	}
	for _, sq := range legalMoves(&p, from) {
		if sq == to {
			return true, nil
		}
	}
	return false, nil
}

// ApplyMove plays m and returns the resulting position; p itself is left
// untouched. A move that IsLegalMove rejects fails with *IllegalMoveError.
func ApplyMove(p Position, m Move) (Position, error) {
	ok, err := IsLegalMove(p, m.From, m.To)
	if err != nil {
		return Position{}, err
	}
	if !ok {
		return Position{}, &IllegalMoveError{From: m.From, To: m.To}
	}
	return applyUnchecked(&p, m), nil
}

// applyUnchecked performs the board update without any legality check.
func applyUnchecked(p *Position, m Move) Position {
	next := *p
	piece := next.At(m.From)
	captured := next.At(m.To)
	side := piece.Side

	next.EnPassant = nil
	if !captured.IsEmpty() || piece.Kind == Pawn {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}

	next.set(m.To, piece)
	next.set(m.From, Piece{})

	switch piece.Kind {
	case Pawn:
		if captured.IsEmpty() && m.From.File != m.To.File && capturesEnPassant(p, m.From, m.To, side) {
			// the captured pawn stands beside the mover, on the target's file
			next.set(Square{File: m.To.File, Rank: m.From.Rank}, Piece{})
		}
		if d := m.To.Rank - m.From.Rank; d == 2 || d == -2 {
			next.EnPassant = &Square{File: m.From.File, Rank: m.From.Rank + d/2}
		}
		if m.To.Rank == homeRank(side.Opponent()) {
			next.set(m.To, Piece{Kind: promotionKind(m.Promotion), Side: side})
		}
	case King:
		rank := homeRank(side)
		if m.From == (Square{File: 4, Rank: rank}) && m.To.Rank == rank {
			switch m.To.File {
			case 6:
				next.set(Square{File: 5, Rank: rank}, next.Board[rank][7])
				next.set(Square{File: 7, Rank: rank}, Piece{})
			case 2:
				next.set(Square{File: 3, Rank: rank}, next.Board[rank][0])
				next.set(Square{File: 0, Rank: rank}, Piece{})
			}
		}
		if side == White {
			next.Castling.WhiteKingside = false
			next.Castling.WhiteQueenside = false
		} else {
			next.Castling.BlackKingside = false
			next.Castling.BlackQueenside = false
		}
	}

	next.Castling.clearCorner(m.From)
	next.Castling.clearCorner(m.To)

	next.SideToMove = side.Opponent()
	if side == Black {
		next.FullmoveNumber++
	}
	return next
}

// promotionKind falls back to a queen for a missing or unusable promotion piece.
func promotionKind(k PieceKind) PieceKind {
	switch k {
	case Knight, Bishop, Rook, Queen:
		return k
	}
	return Queen
}

// clearCorner drops the right tied to a rook home square once anything moves
// from or onto it.
func (c *CastlingRights) clearCorner(sq Square) {
	switch sq {
	case Square{File: 7, Rank: 7}:
		c.WhiteKingside = false
	case Square{File: 0, Rank: 7}:
		c.WhiteQueenside = false
	case Square{File: 7, Rank: 0}:
		c.BlackKingside = false
	case Square{File: 0, Rank: 0}:
		c.BlackQueenside = false
	}
}
