package chess

// IsAttacked reports whether any piece of bySide attacks sq. The occupant of sq
// is not considered, so a square held by bySide's own piece still counts as
// attacked (defended). Pawns attack with their capture pattern only.
func IsAttacked(p Position, sq Square, bySide Side) bool {
	return isAttacked(&p, sq, bySide)
}

func isAttacked(p *Position, sq Square, bySide Side) bool {
	if !sq.Valid() {
		return false
	}

	if rayAttacked(p, sq, bySide, rookDirs, Rook) || rayAttacked(p, sq, bySide, bishopDirs, Bishop) {
		return true
	}
	if stepAttacked(p, sq, bySide, knightDirs, Knight) || stepAttacked(p, sq, bySide, kingDirs, King) {
		return true
	}

	// a pawn of bySide sits one step behind sq, from its own point of view
	pawnRank := sq.Rank - forward(bySide)
	for _, df := range []int{-1, 1} {
		from := Square{File: sq.File + df, Rank: pawnRank}
		if from.Valid() && p.At(from) == (Piece{Kind: Pawn, Side: bySide}) {
			return true
		}
	}
	return false
}

// rayAttacked walks each ray outward from sq and stops at the first occupant.
func rayAttacked(p *Position, sq Square, bySide Side, dirs []direction, slider PieceKind) bool {
	for _, d := range dirs {
		target := sq.offset(d.df, d.dr)
		for target.Valid() {
			occupant := p.At(target)
			if !occupant.IsEmpty() {
				if occupant.Side == bySide && (occupant.Kind == slider || occupant.Kind == Queen) {
					return true
				}
				break
			}
			target = target.offset(d.df, d.dr)
		}
	}
	return false
}

func stepAttacked(p *Position, sq Square, bySide Side, dirs []direction, kind PieceKind) bool {
	for _, d := range dirs {
		target := sq.offset(d.df, d.dr)
		if target.Valid() && p.At(target) == (Piece{Kind: kind, Side: bySide}) {
			return true
		}
	}
	return false
}
