package chess

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLegalMovesFromInitialPosition(t *testing.T) {
	p := StartingPosition()
	assertSquares(t, LegalMoves(p, sq(t, "e2")), "e3", "e4")
	assertSquares(t, LegalMoves(p, sq(t, "b1")), "a3", "c3")
	assertSquares(t, LegalMoves(p, sq(t, "e1")))
}

func TestLegalMovesAfterKingPawnOpening(t *testing.T) {
	p := play(t, StartingPosition(), "e2e4")

	assertSquares(t, LegalMoves(p, sq(t, "e7")), "e6", "e5")
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	if got := Encode(p); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestLegalMovesRejectsWrongSideAndEmpty(t *testing.T) {
	p := StartingPosition()
	assertSquares(t, LegalMoves(p, sq(t, "e7")))
	assertSquares(t, LegalMoves(p, sq(t, "e4")))
	assertSquares(t, LegalMoves(p, Square{File: 9, Rank: 0}))
}

func TestPinnedPieceCannotLeaveTheLine(t *testing.T) {
	// knight on e2 pinned by the rook on e8
	p := mustDecode(t, "4r1k1/8/8/8/8/8/4N3/4K3 w - - 0 1")
	assertSquares(t, LegalMoves(p, sq(t, "e2")))

	// a pinned rook may slide along the pin line
	p = mustDecode(t, "4r1k1/8/8/8/8/8/4R3/4K3 w - - 0 1")
	assertSquares(t, LegalMoves(p, sq(t, "e2")), "e3", "e4", "e5", "e6", "e7", "e8")
}

func TestKingCannotCaptureDefendedPiece(t *testing.T) {
	p := mustDecode(t, "4k3/8/8/8/8/8/3q4/3rK3 w - - 0 1")
	assertSquares(t, LegalMoves(p, sq(t, "e1")))
	if got := Classify(p); got != Checkmate {
		t.Errorf("Classify() = %v, want checkmate", got)
	}
}

func TestCheckMustBeAnswered(t *testing.T) {
	p := mustDecode(t, "4k3/8/8/8/8/8/PP6/1K2r3 w - - 0 1")
	assertSquares(t, LegalMoves(p, sq(t, "a2")))
	assertSquares(t, LegalMoves(p, sq(t, "b2")))
	assertSquares(t, LegalMoves(p, sq(t, "b1")), "c2")
	if got := Classify(p); got != Check {
		t.Errorf("Classify() = %v, want check", got)
	}
}

func TestIsLegalMove(t *testing.T) {
	p := StartingPosition()
	tests := []struct {
		from, to string
		want     bool
	}{
		{"e2", "e4", true},
		{"e2", "e5", false},
		{"g1", "f3", true},
		{"e7", "e5", false},
		{"e4", "e5", false},
	}
	for _, tt := range tests {
		got, err := IsLegalMove(p, sq(t, tt.from), sq(t, tt.to))
		if err != nil {
			t.Fatalf("IsLegalMove(%s, %s) error = %v", tt.from, tt.to, err)
		}
		if got != tt.want {
			t.Errorf("IsLegalMove(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}

	if _, err := IsLegalMove(p, Square{File: 4, Rank: 8}, sq(t, "e4")); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("IsLegalMove(off-board) error = %v, want ErrInvalidSquare", err)
	}
	if _, err := IsLegalMove(p, sq(t, "e2"), Square{File: -1, Rank: 4}); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("IsLegalMove(off-board target) error = %v, want ErrInvalidSquare", err)
	}
}

func TestApplyMoveIllegal(t *testing.T) {
	p := StartingPosition()
	_, err := ApplyMove(p, Move{From: sq(t, "e2"), To: sq(t, "e5")})
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) {
		t.Fatalf("ApplyMove() error = %v, want *IllegalMoveError", err)
	}
	if illegal.From.String() != "e2" || illegal.To.String() != "e5" {
		t.Errorf("IllegalMoveError = %v", illegal)
	}
	if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("errors.Is(err, ErrIllegalMove) = false")
	}
	if _, err := ApplyMove(p, Move{From: sq(t, "e7"), To: sq(t, "e5")}); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("moving the side not to move: error = %v, want ErrIllegalMove", err)
	}
}

func TestApplyMoveLeavesInputUntouched(t *testing.T) {
	p := play(t, StartingPosition(), "e2e4", "d7d5")
	before := Encode(p)
	ep := *p.EnPassant

	_ = play(t, p, "e4d5")

	if got := Encode(p); got != before {
		t.Errorf("input position changed: %q, want %q", got, before)
	}
	if *p.EnPassant != ep {
		t.Errorf("input en passant changed to %v", p.EnPassant)
	}
}

func TestApplyMoveCounters(t *testing.T) {
	p := StartingPosition()
	p = play(t, p, "g1f3")
	if p.HalfmoveClock != 1 || p.FullmoveNumber != 1 || p.SideToMove != Black {
		t.Fatalf("after g1f3: %s", p)
	}
	p = play(t, p, "g8f6")
	if p.HalfmoveClock != 2 || p.FullmoveNumber != 2 || p.SideToMove != White {
		t.Fatalf("after g8f6: %s", p)
	}
	p = play(t, p, "e2e4")
	if p.HalfmoveClock != 0 {
		t.Fatalf("pawn move did not reset the clock: %s", p)
	}
	p = play(t, p, "f6e4")
	if p.HalfmoveClock != 0 || p.FullmoveNumber != 3 {
		t.Fatalf("capture did not reset the clock: %s", p)
	}
	if p.EnPassant != nil {
		t.Errorf("en passant target survived a non-pawn move: %v", p.EnPassant)
	}
}

func TestEnPassantCapture(t *testing.T) {
	p := play(t, StartingPosition(), "e2e4", "a7a6", "e4e5", "d7d5")
	if p.EnPassant == nil || p.EnPassant.String() != "d6" {
		t.Fatalf("EnPassant = %v, want d6", p.EnPassant)
	}
	assertSquares(t, LegalMoves(p, sq(t, "e5")), "e6", "d6")

	p = play(t, p, "e5d6")
	want := "rnbqkbnr/1pp1pppp/p2P4/8/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3"
	if got := Encode(p); got != want {
		t.Errorf("after en passant = %q, want %q", got, want)
	}
}

func TestEnPassantExpires(t *testing.T) {
	p := play(t, StartingPosition(), "e2e4", "a7a6", "e4e5", "d7d5", "g1f3", "a6a5")
	assertSquares(t, LegalMoves(p, sq(t, "e5")), "e6")
}

func TestEnPassantDiscoveredCheckIsIllegal(t *testing.T) {
	// capturing en passant would open the fifth rank to the rook on h5
	p := mustDecode(t, "8/8/8/K2pP2r/8/8/8/4k3 w - d6 0 1")
	assertSquares(t, LegalMoves(p, sq(t, "e5")), "e6")
}

func TestEnPassantNeedsEnemyPawn(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"king beside the pawn", "8/8/8/3kP3/8/8/8/4K3 w - d6 0 1"},
		{"own pawn beside", "4k3/8/8/3PP3/8/8/8/4K3 w - d6 0 1"},
		{"empty square beside", "4k3/8/8/4P3/8/8/8/4K3 w - d6 0 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustDecode(t, tt.fen)
			assertSquares(t, LegalMoves(p, sq(t, "e5")), "e6")

			_, err := ApplyMove(p, Move{From: sq(t, "e5"), To: sq(t, "d6")})
			if !errors.Is(err, ErrIllegalMove) {
				t.Errorf("ApplyMove(e5d6) error = %v, want %v", err, ErrIllegalMove)
			}
		})
	}
}

func TestEnPassantKeepsKings(t *testing.T) {
	p := mustDecode(t, "8/8/8/3kP3/8/8/8/4K3 w - d6 0 1")
	next := applyUnchecked(&p, Move{From: sq(t, "e5"), To: sq(t, "d6")})
	if got := next.At(sq(t, "d5")); got != (Piece{King, Black}) {
		t.Errorf("piece on d5 = %+v, want black king", got)
	}
}

func TestPromotion(t *testing.T) {
	base := mustDecode(t, "8/4P2k/8/8/8/8/8/4K3 w - - 0 1")
	tests := []struct {
		promotion PieceKind
		want      Piece
	}{
		{Queen, Piece{Queen, White}},
		{Rook, Piece{Rook, White}},
		{Bishop, Piece{Bishop, White}},
		{Knight, Piece{Knight, White}},
		{NoPiece, Piece{Queen, White}},
		{King, Piece{Queen, White}},
		{Pawn, Piece{Queen, White}},
	}
	for _, tt := range tests {
		t.Run(tt.promotion.String(), func(t *testing.T) {
			next, err := ApplyMove(base, Move{From: sq(t, "e7"), To: sq(t, "e8"), Promotion: tt.promotion})
			if err != nil {
				t.Fatalf("ApplyMove() error = %v", err)
			}
			if got := next.At(sq(t, "e8")); got != tt.want {
				t.Errorf("promoted piece = %+v, want %+v", got, tt.want)
			}
			if !next.At(sq(t, "e7")).IsEmpty() {
				t.Errorf("origin square not cleared")
			}
		})
	}
}

func TestBlackPromotionWithCapture(t *testing.T) {
	p := mustDecode(t, "4k3/8/8/8/8/8/6p1/4K2R b K - 3 30")
	next := play(t, p, "g2h1n")
	want := "4k3/8/8/8/8/8/8/4K2n w - - 0 31"
	if got := Encode(next); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestCastlingKingside(t *testing.T) {
	p := mustDecode(t, "4k3/8/8/8/8/8/8/4K2R w KQ - 0 1")
	dests := squareNames(LegalMoves(p, sq(t, "e1")))
	found := false
	for _, d := range dests {
		if d == "g1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("LegalMoves(e1) = %v, want g1 included", dests)
	}

	next := play(t, p, "e1g1")
	if got := next.At(sq(t, "f1")); got != (Piece{Rook, White}) {
		t.Errorf("f1 = %+v, want white rook", got)
	}
	if !next.At(sq(t, "h1")).IsEmpty() {
		t.Errorf("h1 still occupied")
	}
	if got := next.Castling.String(); got != "-" {
		t.Errorf("castling = %q, want -", got)
	}
	if got := Encode(next); got != "4k3/8/8/8/8/8/8/5RK1 b - - 1 1" {
		t.Errorf("Encode() = %q", got)
	}
}

func TestCastlingQueensideBlack(t *testing.T) {
	p := mustDecode(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 4 10")
	next := play(t, p, "e8c8")
	want := "2kr3r/8/8/8/8/8/8/R3K2R w KQ - 5 11"
	if got := Encode(next); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestCastlingRightsUpdates(t *testing.T) {
	start := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	tests := []struct {
		name  string
		fen   string
		moves []string
		want  string
	}{
		{"king move clears both", start, []string{"e1e2"}, "kq"},
		{"h1 rook move clears K", start, []string{"h1h5"}, "Qkq"},
		{"a1 rook move clears Q", start, []string{"a1a5"}, "Kkq"},
		{"capturing h8 rook clears k and K", start, []string{"h1h8"}, "Qq"},
		{"capturing a1 rook from a8", start, []string{"e1d1", "a8a1"}, "k"},
		{"black king move", start, []string{"a1b1", "e8d8"}, "K"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := play(t, mustDecode(t, tt.fen), tt.moves...)
			if got := p.Castling.String(); got != tt.want {
				t.Errorf("castling = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCastlingThroughCheckIsIllegal(t *testing.T) {
	p := mustDecode(t, "4kr2/8/8/8/8/8/8/4K2R w K - 0 1")
	assertSquares(t, LegalMoves(p, sq(t, "e1")), "d1", "d2", "e2")
}

func TestFoolsMate(t *testing.T) {
	p := play(t, StartingPosition(), "f2f3", "e7e5", "g2g4", "d8h4")
	if p.SideToMove != White {
		t.Fatalf("SideToMove = %v, want white", p.SideToMove)
	}
	if got := Classify(p); got != Checkmate {
		t.Errorf("Classify() = %v, want checkmate", got)
	}
	if !InCheck(p) {
		t.Errorf("InCheck() = false, want true")
	}
	if HasAnyLegalMove(p) {
		t.Errorf("HasAnyLegalMove() = true, want false")
	}
}

func TestNoSelfCheckInvariant(t *testing.T) {
	fens := []string{
		InitialFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}
	for _, fen := range fens {
		walk(t, mustDecode(t, fen), 2, func(parent Position, m Move, child Position) {
			king, ok := child.KingSquare(parent.SideToMove)
			if !ok {
				t.Fatalf("%s after %s: mover lost its king", Encode(parent), m)
			}
			if IsAttacked(child, king, child.SideToMove) {
				t.Errorf("%s after %s: mover's king left attacked", Encode(parent), m)
			}
		})
	}
}

func TestApplyMoveEquivalentToUnchecked(t *testing.T) {
	p := play(t, StartingPosition(), "e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6")
	next, err := ApplyMove(p, Move{From: sq(t, "e1"), To: sq(t, "g1")})
	if err != nil {
		t.Fatalf("ApplyMove() error = %v", err)
	}
	if diff := cmp.Diff(applyUnchecked(&p, Move{From: sq(t, "e1"), To: sq(t, "g1")}), next); diff != "" {
		t.Errorf("ApplyMove mismatch (-want +got):\n%s", diff)
	}
}

// walk visits every legal move to the given depth. Promotions are expanded to
// all four pieces.
func walk(t *testing.T, p Position, depth int, visit func(parent Position, m Move, child Position)) {
	t.Helper()
	if depth == 0 {
		return
	}
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			from := Square{File: file, Rank: rank}
			for _, to := range LegalMoves(p, from) {
				for _, m := range expandPromotions(p, from, to) {
					child, err := ApplyMove(p, m)
					if err != nil {
						t.Fatalf("ApplyMove(%s, %s) error = %v", Encode(p), m, err)
					}
					visit(p, m, child)
					walk(t, child, depth-1, visit)
				}
			}
		}
	}
}

func expandPromotions(p Position, from, to Square) []Move {
	piece := p.At(from)
	if piece.Kind == Pawn && to.Rank == homeRank(piece.Side.Opponent()) {
		return []Move{
			{From: from, To: to, Promotion: Queen},
			{From: from, To: to, Promotion: Rook},
			{From: from, To: to, Promotion: Bishop},
			{From: from, To: to, Promotion: Knight},
		}
	}
	return []Move{{From: from, To: to}}
}
