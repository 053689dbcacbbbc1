package chess

import (
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/google/go-cmp/cmp"
)

// perft counts leaf nodes with every promotion choice counted separately.
func perft(p Position, depth int) int {
	if depth == 0 {
		return 1
	}
	nodes := 0
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			from := Square{File: file, Rank: rank}
			for _, to := range LegalMoves(p, from) {
				for _, m := range expandPromotions(p, from, to) {
					nodes += perft(applyUnchecked(&p, m), depth-1)
				}
			}
		}
	}
	return nodes
}

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		want  int
	}{
		{"initial depth 1", InitialFEN, 1, 20},
		{"initial depth 2", InitialFEN, 2, 400},
		{"initial depth 3", InitialFEN, 3, 8902},
		{"kiwipete depth 1", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 1, 48},
		{"kiwipete depth 2", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2, 2039},
		{"endgame depth 1", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 1, 14},
		{"endgame depth 2", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 2, 191},
		{"endgame depth 3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, 2812},
		{"promotions depth 1", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 1, 6},
		{"promotions depth 2", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 2, 264},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if testing.Short() && tt.want > 5000 {
				t.Skip("skipping deep perft in short mode")
			}
			if got := perft(mustDecode(t, tt.fen), tt.depth); got != tt.want {
				t.Errorf("perft(%d) = %d, want %d", tt.depth, got, tt.want)
			}
		})
	}
}

// oracleMoves lists legal moves of fen as "from->to" pairs according to dragontoothmg.
func oracleMoves(fen string) []string {
	board := dragontoothmg.ParseFen(fen)
	seen := map[string]bool{}
	moves := board.GenerateLegalMoves()
	for i := range moves {
		m := &moves[i]
		key := indexName(m.From()) + indexName(m.To())
		seen[key] = true
	}
	return sortedKeys(seen)
}

// indexName converts a little-endian rank-file index (a1 = 0) to algebraic form.
func indexName(idx uint8) string {
	return Square{File: int(idx % 8), Rank: 7 - int(idx/8)}.String()
}

func engineMoves(p Position) []string {
	seen := map[string]bool{}
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			from := Square{File: file, Rank: rank}
			for _, to := range LegalMoves(p, from) {
				seen[from.String()+to.String()] = true
			}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestLegalMovesAgainstOracle(t *testing.T) {
	if testing.Short() {
		t.Skip("oracle comparison is slow")
	}
	roots := []string{
		InitialFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range roots {
		root := mustDecode(t, fen)
		check := func(p Position) {
			text := Encode(p)
			if diff := cmp.Diff(oracleMoves(text), engineMoves(p)); diff != "" {
				t.Fatalf("legal moves of %s differ from oracle (-oracle +engine):\n%s", text, diff)
			}
		}
		check(root)
		walk(t, root, 2, func(_ Position, _ Move, child Position) {
			check(child)
		})
	}
}
