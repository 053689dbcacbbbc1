package chess

type direction struct {
	df, dr int
}

var (
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = append(append([]direction{}, rookDirs...), bishopDirs...)
	knightDirs = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingDirs   = queenDirs
)

// forward is the rank step of a pawn of the given side; White moves toward rank index 0.
func forward(side Side) int {
	if side == White {
		return -1
	}
	return 1
}

func pawnStartRank(side Side) int {
	if side == White {
		return 6
	}
	return 1
}

// enPassantRank is the rank index on which side captures en passant (the sixth
// rank for White, the third for Black).
func enPassantRank(side Side) int {
	if side == White {
		return 2
	}
	return 5
}

func homeRank(side Side) int {
	if side == White {
		return 7
	}
	return 0
}

// PseudoLegalMoves lists the destinations of the piece on from, ignoring
// whether the move leaves its own king attacked. An empty square yields nil.
func PseudoLegalMoves(p Position, from Square) []Square {
	return pseudoLegalMoves(&p, from)
}

func pseudoLegalMoves(p *Position, from Square) []Square {
	if !from.Valid() {
		return nil
	}
	piece := p.At(from)
	switch piece.Kind {
	case Pawn:
		return pawnMoves(p, from, piece.Side)
	case Knight:
		return stepMoves(p, from, piece.Side, knightDirs)
	case Bishop:
		return slideMoves(p, from, piece.Side, bishopDirs)
	case Rook:
		return slideMoves(p, from, piece.Side, rookDirs)
	case Queen:
		return slideMoves(p, from, piece.Side, queenDirs)
	case King:
		return append(stepMoves(p, from, piece.Side, kingDirs), castlingMoves(p, from, piece.Side)...)
	}
	return nil
}

func pawnMoves(p *Position, from Square, side Side) []Square {
	var moves []Square
	dir := forward(side)

	one := from.offset(0, dir)
	if one.Valid() && p.At(one).IsEmpty() {
		moves = append(moves, one)
		two := from.offset(0, 2*dir)
		if from.Rank == pawnStartRank(side) && p.At(two).IsEmpty() {
			moves = append(moves, two)
		}
	}

	for _, df := range []int{-1, 1} {
		target := from.offset(df, dir)
		if !target.Valid() {
			continue
		}
		occupant := p.At(target)
		if !occupant.IsEmpty() && occupant.Side != side {
			moves = append(moves, target)
		} else if occupant.IsEmpty() && capturesEnPassant(p, from, target, side) {
			moves = append(moves, target)
		}
	}
	return moves
}

// capturesEnPassant reports whether a pawn of side on from may take en passant
// on target: target is the current en passant square and an enemy pawn stands
// beside from on target's file.
func capturesEnPassant(p *Position, from, target Square, side Side) bool {
	if p.EnPassant == nil || *p.EnPassant != target || target.Rank != enPassantRank(side) {
		return false
	}
	return p.At(Square{File: target.File, Rank: from.Rank}) == Piece{Kind: Pawn, Side: side.Opponent()}
}

func stepMoves(p *Position, from Square, side Side, dirs []direction) []Square {
	var moves []Square
	for _, d := range dirs {
		target := from.offset(d.df, d.dr)
		if !target.Valid() {
			continue
		}
		occupant := p.At(target)
		if occupant.IsEmpty() || occupant.Side != side {
			moves = append(moves, target)
		}
	}
	return moves
}

func slideMoves(p *Position, from Square, side Side, dirs []direction) []Square {
	var moves []Square
	for _, d := range dirs {
		target := from.offset(d.df, d.dr)
		for target.Valid() {
			occupant := p.At(target)
			if occupant.IsEmpty() {
				moves = append(moves, target)
			} else {
				if occupant.Side != side {
					moves = append(moves, target)
				}
				break
			}
			target = target.offset(d.df, d.dr)
		}
	}
	return moves
}

// castlingMoves checks rights, an empty path, the rook on its corner and that
// the king's start, transit and destination squares are not attacked on the
// current board.
func castlingMoves(p *Position, from Square, side Side) []Square {
	rank := homeRank(side)
	if from != (Square{File: 4, Rank: rank}) {
		return nil
	}
	opponent := side.Opponent()
	rook := Piece{Kind: Rook, Side: side}
	var moves []Square

	if p.Castling.kingside(side) &&
		p.Board[rank][5].IsEmpty() && p.Board[rank][6].IsEmpty() &&
		p.Board[rank][7] == rook &&
		!isAttacked(p, Square{4, rank}, opponent) &&
		!isAttacked(p, Square{5, rank}, opponent) &&
		!isAttacked(p, Square{6, rank}, opponent) {
		moves = append(moves, Square{File: 6, Rank: rank})
	}

	if p.Castling.queenside(side) &&
		p.Board[rank][3].IsEmpty() && p.Board[rank][2].IsEmpty() && p.Board[rank][1].IsEmpty() &&
		p.Board[rank][0] == rook &&
		!isAttacked(p, Square{4, rank}, opponent) &&
		!isAttacked(p, Square{3, rank}, opponent) &&
		!isAttacked(p, Square{2, rank}, opponent) {
		moves = append(moves, Square{File: 2, Rank: rank})
	}
	return moves
}
