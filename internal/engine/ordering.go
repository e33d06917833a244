package engine

import (
	"github.com/sosmart/sosmart/internal/board"
)

// moveToFront moves m to the head of moves, keeping the others in order.
// Iterative deepening uses it to search the previous best move first; below
// the root moves are searched in generation order.
func moveToFront(moves []board.Move, m board.Move) {
	for i := range moves {
		if moves[i].Equal(m) {
			first := moves[i]
			copy(moves[1:i+1], moves[:i])
			moves[0] = first
			return
		}
	}
}
