package engine

import (
	"math/rand"
	"sync/atomic"

	"github.com/sosmart/sosmart/internal/board"
	"github.com/sosmart/sosmart/internal/errors"
)

// Search constants
const (
	Checkmate    = 1_000_000
	Stalemate    = 0
	Infinity     = Checkmate + 1
	DefaultDepth = 4
	MaxPly       = 64
)

// matedScore scores the side to move being mated ply plies below the root. A
// mate delivered by the root move scores exactly -Checkmate; each further ply
// gives back one point so nearer mates rank higher.
func matedScore(ply int) int {
	if ply <= 1 {
		return -Checkmate
	}
	return -Checkmate + ply - 1
}

// IsMateScore reports whether score denotes a forced mate for either side.
func IsMateScore(score int) bool {
	return score >= Checkmate-MaxPly || score <= -Checkmate+MaxPly
}

// Searcher performs the negamax search. It owns its random source and stop
// flag; all other state lives on the recursion stack.
type Searcher struct {
	rng      *rand.Rand
	nodes    uint64
	stopFlag atomic.Bool

	// Shuffle randomizes root move order before each search.
	Shuffle bool
}

// NewSearcher creates a searcher whose root shuffles are driven by seed.
func NewSearcher(seed int64) *Searcher {
	return &Searcher{
		rng:     rand.New(rand.NewSource(seed)),
		Shuffle: true,
	}
}

// Stop signals the search to stop. Stopped searches unwind normally, undoing
// every move they made, and their results must be discarded.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Reset resets the searcher for a new search.
func (s *Searcher) Reset() {
	s.stopFlag.Store(false)
	s.nodes = 0
}

// IsStopped returns true if the search has been stopped.
func (s *Searcher) IsStopped() bool {
	return s.stopFlag.Load()
}

// Nodes returns the number of nodes searched.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// rootSign is +1 when white is to move and -1 otherwise.
func rootSign(pos *board.Position) int {
	if pos.SideToMove == board.White {
		return 1
	}
	return -1
}

// rootMoves copies the caller's moves, shuffling the copy if enabled.
func (s *Searcher) rootMoves(moves []board.Move) []board.Move {
	root := append([]board.Move(nil), moves...)
	if s.Shuffle {
		s.rng.Shuffle(len(root), func(i, j int) {
			root[i], root[j] = root[j], root[i]
		})
	}
	return root
}

// FindBestMove runs an alpha-beta search depth plies deep over moves, the
// legal moves of pos, and returns the best move with its score for the side
// to move. Ties go to the first move found in the (shuffled) root order.
func (s *Searcher) FindBestMove(pos *board.Position, moves []board.Move, depth int) (board.Move, int, error) {
	if len(moves) == 0 {
		return board.NoMove, 0, errors.Wrap(errors.ErrNoMoves, "find best move")
	}
	return s.searchRoot(pos, s.rootMoves(moves), depth)
}

// searchRoot searches moves in the order given.
func (s *Searcher) searchRoot(pos *board.Position, moves []board.Move, depth int) (board.Move, int, error) {
	if len(moves) == 0 {
		return board.NoMove, 0, errors.Wrap(errors.ErrNoMoves, "search root")
	}
	if depth < 1 {
		depth = 1
	}
	score, move := s.alphaBeta(pos, moves, depth, 0, -Infinity, Infinity, rootSign(pos))
	return move, score, nil
}

// alphaBeta is negamax with alpha-beta pruning over moves, the legal moves
// of pos. It returns the best score for the side to move and the move that
// reached it. Moves are searched in the order given: the shuffled root order,
// then generation order below it.
func (s *Searcher) alphaBeta(pos *board.Position, moves []board.Move, depth, ply, alpha, beta, sign int) (int, board.Move) {
	s.nodes++

	if len(moves) == 0 {
		if pos.InCheck() {
			return matedScore(ply), board.NoMove
		}
		return Stalemate, board.NoMove
	}
	if depth == 0 {
		return sign * evaluate(pos), board.NoMove
	}

	best := -Infinity
	bestMove := board.NoMove
	for _, m := range moves {
		score := s.alphaBetaChild(pos, m, depth, ply, alpha, beta, sign)
		if s.stopFlag.Load() {
			return best, bestMove
		}
		if score > best {
			best, bestMove = score, m
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best, bestMove
}

// alphaBetaChild plays m, searches the reply tree and takes m back on every
// exit path.
func (s *Searcher) alphaBetaChild(pos *board.Position, m board.Move, depth, ply, alpha, beta, sign int) int {
	pos.MakeMove(m)
	defer pos.UndoMove()

	score, _ := s.alphaBeta(pos, pos.LegalMoves(), depth-1, ply+1, -beta, -alpha, -sign)
	return -score
}

// Negamax runs a full-width negamax search without pruning. It visits every
// node alphaBeta could and selects the same move given the same root order.
func (s *Searcher) Negamax(pos *board.Position, moves []board.Move, depth int) (board.Move, int, error) {
	if len(moves) == 0 {
		return board.NoMove, 0, errors.Wrap(errors.ErrNoMoves, "negamax")
	}
	if depth < 1 {
		depth = 1
	}
	score, move := s.negamax(pos, s.rootMoves(moves), depth, 0, rootSign(pos))
	return move, score, nil
}

func (s *Searcher) negamax(pos *board.Position, moves []board.Move, depth, ply, sign int) (int, board.Move) {
	s.nodes++

	if len(moves) == 0 {
		if pos.InCheck() {
			return matedScore(ply), board.NoMove
		}
		return Stalemate, board.NoMove
	}
	if depth == 0 {
		return sign * evaluate(pos), board.NoMove
	}

	best := -Infinity
	bestMove := board.NoMove
	for _, m := range moves {
		score := s.negamaxChild(pos, m, depth, ply, sign)
		if s.stopFlag.Load() {
			return best, bestMove
		}
		if score > best {
			best, bestMove = score, m
		}
	}
	return best, bestMove
}

func (s *Searcher) negamaxChild(pos *board.Position, m board.Move, depth, ply, sign int) int {
	pos.MakeMove(m)
	defer pos.UndoMove()

	score, _ := s.negamax(pos, pos.LegalMoves(), depth-1, ply+1, -sign)
	return -score
}

// RandomMove picks a uniformly random move.
func (s *Searcher) RandomMove(moves []board.Move) (board.Move, error) {
	if len(moves) == 0 {
		return board.NoMove, errors.Wrap(errors.ErrNoMoves, "random move")
	}
	return moves[s.rng.Intn(len(moves))], nil
}
