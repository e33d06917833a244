package engine

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/sosmart/sosmart/internal/board"
	"github.com/sosmart/sosmart/internal/errors"
)

// SearchInfo contains information about the current search.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	Move  board.Move
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth    int           // Maximum depth (0 = DefaultDepth)
	MoveTime time.Duration // Time for this move (0 = no limit)
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 2 ply, 500ms
	Medium                   // 4 ply, 3s
	Hard                     // 5 ply, 10s
)

// DifficultySettings maps difficulty to search limits.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 2, MoveTime: 500 * time.Millisecond},
	Medium: {Depth: DefaultDepth, MoveTime: 3 * time.Second},
	Hard:   {Depth: 5, MoveTime: 10 * time.Second},
}

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a difficulty name as produced by String.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(s) {
	case "easy":
		return Easy, true
	case "medium":
		return Medium, true
	case "hard":
		return Hard, true
	}
	return Medium, false
}

// FindBestMove searches DefaultDepth plies over moves, the legal moves of pos,
// with a freshly seeded searcher.
func FindBestMove(pos *board.Position, moves []board.Move) (board.Move, error) {
	move, _, err := NewSearcher(time.Now().UnixNano()).FindBestMove(pos, moves, DefaultDepth)
	return move, err
}

// FindRandomMove picks a uniformly random move. It is the fallback when a
// search cannot produce one.
func FindRandomMove(moves []board.Move) (board.Move, error) {
	if len(moves) == 0 {
		return board.NoMove, errors.Wrap(errors.ErrNoMoves, "random move")
	}
	return moves[rand.Intn(len(moves))], nil
}

// Engine is the chess AI engine.
type Engine struct {
	searcher   *Searcher
	difficulty Difficulty

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a new chess engine whose random choices derive from seed.
func NewEngine(seed int64) *Engine {
	return &Engine{
		searcher:   NewSearcher(seed),
		difficulty: Medium,
	}
}

// SetDifficulty sets the engine difficulty.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Difficulty returns the engine difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// Search finds the best move for the given position.
func (e *Engine) Search(pos *board.Position) (board.Move, error) {
	limits := DifficultySettings[e.difficulty]
	return e.SearchWithLimits(pos, limits)
}

// SearchWithLimits finds the best move with specific search limits. It deepens
// one ply at a time and keeps the result of the last completed iteration; an
// iteration cut off by the move time is discarded.
func (e *Engine) SearchWithLimits(pos *board.Position, limits SearchLimits) (board.Move, error) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return board.NoMove, errors.Wrap(errors.ErrNoMoves, "search")
	}

	e.searcher.Reset()
	startTime := time.Now()

	if limits.MoveTime > 0 {
		timer := time.AfterFunc(limits.MoveTime, e.searcher.Stop)
		defer timer.Stop()
	}

	maxDepth := DefaultDepth
	if limits.Depth > 0 {
		maxDepth = limits.Depth
	}

	root := e.searcher.rootMoves(moves)
	bestMove := board.NoMove

	// Iterative deepening
	for depth := 1; depth <= maxDepth; depth++ {
		if !bestMove.IsNull() {
			moveToFront(root, bestMove)
		}

		move, score, err := e.searcher.searchRoot(pos, root, depth)
		if err != nil {
			return board.NoMove, err
		}

		// Check if search was stopped
		if e.searcher.IsStopped() {
			break
		}

		bestMove = move

		// Report info
		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth: depth,
				Score: score,
				Nodes: e.searcher.Nodes(),
				Time:  time.Since(startTime),
				Move:  move,
			})
		}

		// Early termination: found mate
		if IsMateScore(score) {
			break
		}

		// Check time after iteration
		if limits.MoveTime > 0 {
			elapsed := time.Since(startTime)
			remaining := limits.MoveTime - elapsed

			// If we've used more than half the time, don't start another iteration
			if remaining < elapsed {
				break
			}
		}
	}

	if bestMove.IsNull() {
		return e.searcher.RandomMove(moves)
	}
	return bestMove, nil
}

// Stop stops the current search.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// RandomMove picks a random legal move in pos.
func (e *Engine) RandomMove(pos *board.Position) (board.Move, error) {
	return e.searcher.RandomMove(pos.LegalMoves())
}

// Perft performs a perft test (for debugging move generation).
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	return board.Perft(pos, depth)
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos)
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if score >= Checkmate-MaxPly {
		plies := Checkmate - score + 1
		return "Mate in " + strconv.Itoa((plies+1)/2)
	}
	if score <= -Checkmate+MaxPly {
		plies := Checkmate + score + 1
		return "Mated in " + strconv.Itoa(plies/2)
	}
	if score > 0 {
		return "+" + strconv.Itoa(score)
	}
	return strconv.Itoa(score)
}
