package chess

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func mustDecode(t *testing.T, fen string) Position {
	t.Helper()
	p, err := Decode(fen)
	if err != nil {
		t.Fatalf("Decode(%q) error = %v", fen, err)
	}
	return p
}

func sq(t *testing.T, text string) Square {
	t.Helper()
	s, err := ParseSquare(text)
	if err != nil {
		t.Fatalf("ParseSquare(%q) error = %v", text, err)
	}
	return s
}

func squareNames(squares []Square) []string {
	names := make([]string, 0, len(squares))
	for _, s := range squares {
		names = append(names, s.String())
	}
	return names
}

var sortStrings = cmpopts.SortSlices(func(a, b string) bool { return a < b })

// assertSquares compares destination sets regardless of generation order.
func assertSquares(t *testing.T, got []Square, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if diff := cmp.Diff(want, squareNames(got), sortStrings, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("destinations mismatch (-want +got):\n%s", diff)
	}
}

// play applies a sequence of coordinate moves and fails on the first rejection.
func play(t *testing.T, p Position, moves ...string) Position {
	t.Helper()
	for _, text := range moves {
		m, err := ParseMove(text)
		if err != nil {
			t.Fatalf("ParseMove(%q) error = %v", text, err)
		}
		next, err := ApplyMove(p, m)
		if err != nil {
			t.Fatalf("ApplyMove(%s, %s) error = %v", p, text, err)
		}
		p = next
	}
	return p
}
