package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Back rank mate: black king on h8 boxed in by its own pawns.
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	moves := pos.LegalMoves()
	if len(moves) != 0 {
		t.Errorf("Black has %d legal moves, want 0: %v", len(moves), moves)
	}
	if !pos.InCheck() {
		t.Error("Expected black to be in check")
	}
	if !pos.Checkmate() {
		t.Error("Expected checkmate but got false")
	}
	if pos.Stalemate() {
		t.Error("Checkmate and stalemate must be exclusive")
	}
}

func TestNotCheckmate(t *testing.T) {
	// Black king on h8, rook on g8 but king can take it
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	moves := pos.LegalMoves()
	if pos.Checkmate() {
		t.Error("Expected NOT checkmate but got true")
	}
	if _, ok := FindMove(moves, NewMove(H8, G8, pos)); !ok {
		t.Errorf("Kxg8 missing from %v", moves)
	}
}

func TestFoolsMate(t *testing.T) {
	pos := NewPosition()
	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, err := ParseMove(s, pos)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		if err := pos.Play(m); err != nil {
			t.Fatalf("Play(%s): %v", s, err)
		}
	}

	if moves := pos.LegalMoves(); len(moves) != 0 {
		t.Errorf("White has %d legal moves after fool's mate", len(moves))
	}
	if !pos.Checkmate() {
		t.Error("Expected checkmate after fool's mate")
	}

	// Undo clears the terminal flags.
	if err := pos.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if pos.Checkmate() || pos.Stalemate() {
		t.Error("Terminal flags survived UndoMove")
	}
}

func TestStalemate(t *testing.T) {
	// Black king on a8, white queen on b6: no moves, not in check.
	pos := MustParseFEN("k7/8/1Q6/8/8/8/8/7K b - - 0 1")

	if moves := pos.LegalMoves(); len(moves) != 0 {
		t.Errorf("Black has %d legal moves, want 0: %v", len(moves), moves)
	}
	if !pos.Stalemate() {
		t.Error("Expected stalemate")
	}
	if pos.Checkmate() {
		t.Error("Checkmate and stalemate must be exclusive")
	}
	if o, over := pos.Outcome(); !over || !o.IsDraw() {
		t.Error("Stalemate should be a draw")
	}
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"bare kings", "8/8/8/4k3/8/8/8/4K3 w - - 0 1", true},
		{"king and knight", "8/8/8/4k3/8/8/8/3NK3 w - - 0 1", true},
		{"king and bishop vs king", "8/8/8/2b1k3/8/8/8/4K3 w - - 0 1", true},
		{"two minors", "8/8/8/4k3/8/8/8/2BNK3 w - - 0 1", false},
		{"pawn", "8/8/8/4k3/8/8/4P3/4K3 w - - 0 1", false},
		{"rook", "8/8/8/4k3/8/8/8/R3K3 w - - 0 1", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			if got := pos.IsInsufficientMaterial(); got != tc.want {
				t.Errorf("IsInsufficientMaterial() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMoveClearsCheckState(t *testing.T) {
	// Black king on e8 in check from the rook on e1; the bishop can block.
	pos := MustParseFEN("4k3/3b4/8/8/8/8/8/K3R3 b - - 0 1")

	moves := pos.LegalMoves()
	if !pos.InCheck() || len(pos.checks) != 1 {
		t.Fatalf("InCheck() = %v with %d checks, want a single check", pos.InCheck(), len(pos.checks))
	}

	pos.MakeMove(moves[0])
	if pos.InCheck() || pos.checks != nil || pos.pins != nil || pos.Checkmate() || pos.Stalemate() {
		t.Errorf("check state of the previous position survived MakeMove")
	}

	if err := pos.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if pos.InCheck() || pos.checks != nil || pos.pins != nil {
		t.Errorf("check state survived UndoMove")
	}

	pos.LegalMoves()
	if !pos.InCheck() {
		t.Error("LegalMoves should find the check again")
	}
}
