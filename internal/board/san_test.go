package board

import (
	"testing"

	"github.com/sosmart/sosmart/internal/testutil"
)

func TestToSAN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want string
	}{
		{"pawn push", StartFEN, "e2e4", "e4"},
		{"knight", StartFEN, "g1f3", "Nf3"},
		{"castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"long castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", "O-O-O"},
		{"file disambiguation", "4k3/8/8/8/8/8/4K3/R6R w - - 0 1", "a1d1", "Rad1"},
		{"pawn capture", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4d5", "exd5"},
		{"promotion", "8/P6k/8/8/8/8/8/K7 w - - 0 1", "a7a8q", "a8=Q"},
		{"mate", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8", "Ra8#"},
		{"check", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1a8", "Ra8+"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			m, err := ParseMove(tc.move, pos)
			testutil.AssertNoError(t, err)
			legal, ok := FindMove(pos.LegalMoves(), m)
			if !ok {
				t.Fatalf("%s is not legal", tc.move)
			}
			testutil.AssertEqual(t, legal.ToSAN(pos), tc.want)
		})
	}
}

func TestParseSAN(t *testing.T) {
	pos := MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, err := ParseSAN("O-O", pos)
	testutil.AssertNoError(t, err)
	if !m.IsCastling() || m.To() != G1 {
		t.Errorf("ParseSAN(O-O) = %v", m)
	}

	m, err = ParseSAN("Rxa8+", pos)
	testutil.AssertNoError(t, err)
	if m.String() != "a1a8" {
		t.Errorf("ParseSAN(Rxa8+) = %v", m)
	}

	if _, err := ParseSAN("Nf3", pos); err == nil {
		t.Error("ParseSAN(Nf3) should fail without a knight")
	}
}

func TestMovesToSAN(t *testing.T) {
	pos := NewPosition()
	var moves []Move
	cur := pos.Copy()
	for _, s := range []string{"e2e4", "e7e5", "g1f3", "b8c6"} {
		m, err := ParseMove(s, cur)
		testutil.AssertNoError(t, err)
		legal, _ := FindMove(cur.LegalMoves(), m)
		moves = append(moves, legal)
		cur.MakeMove(legal)
	}
	testutil.AssertEqual(t, MovesToSAN(pos, moves), []string{"e4", "e5", "Nf3", "Nc6"})
}
