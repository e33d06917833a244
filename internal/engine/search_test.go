package engine

import (
	"testing"

	"github.com/sosmart/sosmart/internal/board"
	"github.com/sosmart/sosmart/internal/testutil"
)

func isMate(t *testing.T, fen string, m board.Move) bool {
	t.Helper()
	pos := board.MustParseFEN(fen)
	testutil.AssertNoError(t, pos.Play(m))
	pos.LegalMoves()
	return pos.Checkmate()
}

func TestFindsMateInOne(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"white back rank", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"},
		{"black back rank", "r5k1/8/8/8/8/8/5PPP/6K1 b - - 0 1"},
		{"queen and king", "k7/8/1K6/8/8/8/8/6Q1 w - - 0 1"},
		{"scholar's mate", "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5Q2/PPPP1PPP/RNB1K1NR w KQkq - 2 3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for depth := 1; depth <= 3; depth++ {
				pos := board.MustParseFEN(tc.fen)
				s := NewSearcher(int64(depth))
				move, score, err := s.FindBestMove(pos, pos.LegalMoves(), depth)
				testutil.AssertNoError(t, err)
				if !isMate(t, tc.fen, move) {
					t.Errorf("depth %d: %v does not mate", depth, move)
				}
				if score != Checkmate {
					t.Errorf("depth %d: score %d, want Checkmate", depth, score)
				}
			}

			pos := board.MustParseFEN(tc.fen)
			move, err := FindBestMove(pos, pos.LegalMoves())
			testutil.AssertNoError(t, err)
			if !isMate(t, tc.fen, move) {
				t.Errorf("FindBestMove = %v, not mate", move)
			}

			pos.MakeMove(move)
			pos.LegalMoves()
			if got, want := Evaluate(pos), Checkmate*rootSign(board.MustParseFEN(tc.fen)); got != want {
				t.Errorf("Evaluate after mate = %d, want %d", got, want)
			}
		})
	}
}

// TestAlphaBetaMatchesNegamax checks that pruning changes speed, not the
// chosen move or its score.
func TestAlphaBetaMatchesNegamax(t *testing.T) {
	tests := []struct {
		fen   string
		depth int
	}{
		{board.StartFEN, 3},
		{"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5Q2/PPPP1PPP/RNB1K1NR w KQkq - 2 3", 3},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2},
		{"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", 3},
	}

	for _, tc := range tests {
		t.Run(tc.fen, func(t *testing.T) {
			pos := board.MustParseFEN(tc.fen)
			moves := pos.LegalMoves()

			pruned := NewSearcher(1)
			pruned.Shuffle = false
			full := NewSearcher(1)
			full.Shuffle = false

			abMove, abScore, err := pruned.FindBestMove(pos, moves, tc.depth)
			testutil.AssertNoError(t, err)
			nmMove, nmScore, err := full.Negamax(pos, moves, tc.depth)
			testutil.AssertNoError(t, err)

			if !abMove.Equal(nmMove) || abScore != nmScore {
				t.Errorf("alpha-beta %v (%d), negamax %v (%d)", abMove, abScore, nmMove, nmScore)
			}
			if pruned.Nodes() > full.Nodes() {
				t.Errorf("alpha-beta searched %d nodes, more than negamax's %d", pruned.Nodes(), full.Nodes())
			}
		})
	}
}

func TestSearchRestoresPosition(t *testing.T) {
	pos := board.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := pos.Snapshot()
	fen := pos.ToFEN()

	_, _, err := NewSearcher(3).FindBestMove(pos, pos.LegalMoves(), 2)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, pos.Snapshot(), before)
	testutil.AssertEqual(t, pos.ToFEN(), fen)
}

func TestRootAlwaysRecordsAMove(t *testing.T) {
	// Every white move allows mate: the search must still pick one.
	pos := board.MustParseFEN("1q6/8/8/8/8/8/P4k2/7K w - - 0 1")
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		t.Fatal("test position has no moves")
	}

	move, score, err := NewSearcher(1).FindBestMove(pos, moves, 2)
	testutil.AssertNoError(t, err)
	if move.IsNull() {
		t.Fatal("no move recorded")
	}
	if score != -Checkmate+1 {
		t.Errorf("score %d, want %d", score, -Checkmate+1)
	}
}

func TestShuffleIsSeeded(t *testing.T) {
	pos := board.NewPosition()
	moves := pos.LegalMoves()

	a := NewSearcher(42).rootMoves(moves)
	b := NewSearcher(42).rootMoves(moves)
	testutil.AssertEqual(t, moveIDs(a), moveIDs(b))

	// The caller's slice is left alone.
	testutil.AssertEqual(t, moveIDs(moves), moveIDs(pos.LegalMoves()))
}

func moveIDs(moves []board.Move) []int {
	ids := make([]int, len(moves))
	for i, m := range moves {
		ids[i] = m.ID()
	}
	return ids
}

func TestInteriorNodesKeepGenerationOrder(t *testing.T) {
	pos := board.MustParseFEN("4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	moves := pos.LegalMoves()
	want := moveIDs(moves)

	s := NewSearcher(1)
	s.alphaBeta(pos, moves, 2, 1, -Infinity, Infinity, 1)
	testutil.AssertEqual(t, moveIDs(moves), want)
}

func TestMoveToFront(t *testing.T) {
	pos := board.NewPosition()
	moves := pos.LegalMoves()
	last := moves[len(moves)-1]
	rest := moveIDs(moves[:len(moves)-1])

	moveToFront(moves, last)
	if !moves[0].Equal(last) {
		t.Errorf("moves[0] = %v, want %v", moves[0], last)
	}
	testutil.AssertEqual(t, moveIDs(moves[1:]), rest)
}
