package engine

import (
	"testing"

	"github.com/sosmart/sosmart/internal/board"
	"github.com/sosmart/sosmart/internal/testutil"
)

func TestEvaluateStartIsBalanced(t *testing.T) {
	if got := Evaluate(board.NewPosition()); got != 0 {
		t.Errorf("Evaluate(start) = %d, want 0", got)
	}
}

func TestEvaluateIsColorSymmetric(t *testing.T) {
	// The same structure with colors swapped and the board flipped.
	white := board.MustParseFEN("4k3/8/8/8/3N4/8/PP6/4K3 w - - 0 1")
	black := board.MustParseFEN("4k3/pp6/8/3n4/8/8/8/4K3 b - - 0 1")
	if w, b := Evaluate(white), Evaluate(black); w != -b {
		t.Errorf("Evaluate mirrored: %d vs %d", w, b)
	}
}

func TestEvaluateTerminal(t *testing.T) {
	mated := board.MustParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if got := Evaluate(mated); got != Checkmate {
		t.Errorf("Evaluate(black mated) = %d, want %d", got, Checkmate)
	}

	stalemate := board.MustParseFEN("k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	if got := Evaluate(stalemate); got != Stalemate {
		t.Errorf("Evaluate(stalemate) = %d, want 0", got)
	}
}

func TestEvaluatePrefersAdvancedPawns(t *testing.T) {
	home := board.MustParseFEN("4k3/8/8/8/8/8/P7/4K3 w - - 0 1")
	advanced := board.MustParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	if Evaluate(advanced) <= Evaluate(home) {
		t.Errorf("advanced pawn %d should beat home pawn %d", Evaluate(advanced), Evaluate(home))
	}
}

func TestEvaluateAfterPlay(t *testing.T) {
	pos := board.NewPosition()
	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, err := board.ParseMove(s, pos)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, pos.Play(m))
	}
	if got := Evaluate(pos); got != -Checkmate {
		t.Errorf("Evaluate after fool's mate = %d, want %d", got, -Checkmate)
	}
}

func TestPawnBonusBelowPieceValue(t *testing.T) {
	seventh := board.MustParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	rimKnight := board.MustParseFEN("4k3/8/8/8/8/8/8/N3K3 w - - 0 1")
	if p, n := Evaluate(seventh), Evaluate(rimKnight); p >= n {
		t.Errorf("pawn on the 7th (%d) should score below a knight on the rim (%d)", p, n)
	}
	for row := range pawnTable {
		for col, bonus := range pawnTable[row] {
			if bonus > PawnValue {
				t.Errorf("pawnTable[%d][%d] = %d exceeds a pawn", row, col, bonus)
			}
		}
	}
}

func TestMaterial(t *testing.T) {
	pos := board.MustParseFEN("rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if got := Material(pos); got != QueenValue {
		t.Errorf("Material = %d, want %d", got, QueenValue)
	}
}
