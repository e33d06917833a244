package board

import (
	"testing"

	"github.com/sosmart/sosmart/internal/testutil"
)

func castles(moves []Move) []string {
	var s []string
	for _, m := range moves {
		if m.IsCastling() {
			s = append(s, m.String())
		}
	}
	return s
}

func TestCastlingGeneration(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
	}{
		{"both sides open", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"e1g1", "e1c1"}},
		{"bishop attacks f1", "r3k2r/8/b7/8/8/8/8/R3K2R w KQkq - 0 1", []string{"e1c1"}},
		{"knight on b1 blocks queenside", "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", []string{"e1g1"}},
		{"rook attacks landing square", "r3k2r/8/8/8/8/8/6r1/R3K2R w KQkq - 0 1", []string{"e1c1"}},
		{"b1 attacked does not matter", "r3k2r/8/8/8/8/8/1r6/R3K2R w KQkq - 0 1", []string{"e1g1", "e1c1"}},
		{"in check", "r3k2r/8/8/4q3/8/8/8/R3K2R w KQkq - 0 1", nil},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1", nil},
		{"black kingside only", "r3k2r/8/8/8/8/8/8/R3K2R b k - 0 1", []string{"e8g8"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			testutil.AssertEqual(t, castles(pos.LegalMoves()), tc.want)
		})
	}
}

func TestCastlingVerifiesRookIdentity(t *testing.T) {
	pos := MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	// Occupied corners with the rights still set must not castle.
	pos.setPiece(H1, WhiteKnight)
	pos.setPiece(A1, WhiteBishop)
	testutil.AssertEqual(t, castles(pos.LegalMoves()), []string(nil))
}

func TestCastlingMovesRook(t *testing.T) {
	pos := MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	before := pos.Snapshot()

	testutil.AssertNoError(t, pos.Play(NewMove(E1, G1, pos)))
	if pos.PieceAt(G1) != WhiteKing || pos.PieceAt(F1) != WhiteRook || !pos.IsEmpty(H1) {
		t.Errorf("kingside castle left wrong board:\n%s", pos)
	}
	if pos.KingSquare[White] != G1 {
		t.Errorf("KingSquare = %v, want g1", pos.KingSquare[White])
	}
	if pos.CastlingRights != BlackKingSideCastle|BlackQueenSideCastle {
		t.Errorf("CastlingRights = %v, want kq", pos.CastlingRights)
	}

	testutil.AssertNoError(t, pos.Play(NewMove(E8, C8, pos)))
	if pos.PieceAt(C8) != BlackKing || pos.PieceAt(D8) != BlackRook || !pos.IsEmpty(A8) {
		t.Errorf("queenside castle left wrong board:\n%s", pos)
	}

	testutil.AssertNoError(t, pos.UndoMove())
	testutil.AssertNoError(t, pos.UndoMove())
	testutil.AssertEqual(t, pos.Snapshot(), before)
}

func TestCastlingRightsUpdates(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
		want  CastlingRights
	}{
		{"king move clears both", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"e1e2"},
			BlackKingSideCastle | BlackQueenSideCastle},
		{"rook move clears one", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"h1h5"},
			WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle},
		{"rook capture on corner clears both colors", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"a1a8"},
			WhiteKingSideCastle | BlackKingSideCastle},
		{"rook returning home does not restore", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			[]string{"h1h2", "a8b8", "h2h1"}, WhiteQueenSideCastle | BlackKingSideCastle},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			for _, s := range tc.moves {
				m, err := ParseMove(s, pos)
				testutil.AssertNoError(t, err)
				testutil.AssertNoError(t, pos.Play(m), s)
			}
			if pos.CastlingRights != tc.want {
				t.Errorf("CastlingRights = %v, want %v", pos.CastlingRights, tc.want)
			}

			// One rights snapshot per move: undoing everything restores the start.
			for range tc.moves {
				testutil.AssertNoError(t, pos.UndoMove())
			}
			if pos.CastlingRights != AllCastling {
				t.Errorf("CastlingRights after undo = %v, want KQkq", pos.CastlingRights)
			}
		})
	}
}
