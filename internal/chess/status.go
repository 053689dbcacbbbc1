package chess

type DrawReason int

const (
	NoDraw DrawReason = iota
	FiftyMoveRule
	InsufficientMaterial
)

func (r DrawReason) String() string {
	switch r {
	case FiftyMoveRule:
		return "fifty-move rule"
	case InsufficientMaterial:
		return "insufficient material"
	}
	return "none"
}

// InCheck reports whether the side to move has its king attacked. A position
// without that king is never in check.
func InCheck(p Position) bool {
	return inCheck(&p)
}

func inCheck(p *Position) bool {
	king, ok := p.KingSquare(p.SideToMove)
	if !ok {
		return false
	}
	return isAttacked(p, king, p.SideToMove.Opponent())
}

func HasAnyLegalMove(p Position) bool {
	return hasAnyLegalMove(&p)
}

func hasAnyLegalMove(p *Position) bool {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := p.Board[rank][file]
			if piece.IsEmpty() || piece.Side != p.SideToMove {
				continue
			}
			if len(legalMoves(p, Square{File: file, Rank: rank})) > 0 {
				return true
			}
		}
	}
	return false
}

// Classify returns the state of p from the point of view of the side to move.
// Checkmate and stalemate take precedence over the draw rules, which take
// precedence over a plain check.
func Classify(p Position) Status {
	check := inCheck(&p)
	if !hasAnyLegalMove(&p) {
		if check {
			return Checkmate
		}
		return Stalemate
	}
	if DrawReasonOf(p) != NoDraw {
		return Draw
	}
	if check {
		return Check
	}
	return Ongoing
}

// DrawReasonOf reports which automatic draw rule, if any, applies to p.
// Threefold repetition is not detected: the engine does not see history.
func DrawReasonOf(p Position) DrawReason {
	if p.HalfmoveClock >= 100 {
		return FiftyMoveRule
	}
	if insufficientMaterial(&p) {
		return InsufficientMaterial
	}
	return NoDraw
}

// insufficientMaterial holds for bare kings, a single minor piece, or exactly
// two bishops on the board. The bishop case does not look at square colours.
func insufficientMaterial(p *Position) bool {
	var others []PieceKind
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := p.Board[rank][file]
			if piece.IsEmpty() || piece.Kind == King {
				continue
			}
			others = append(others, piece.Kind)
			if len(others) > 2 {
				return false
			}
		}
	}
	switch len(others) {
	case 0:
		return true
	case 1:
		return others[0] == Knight || others[0] == Bishop
	case 2:
		return others[0] == Bishop && others[1] == Bishop
	}
	return false
}
