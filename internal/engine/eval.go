// Package engine implements the chess AI: a static evaluator, a negamax
// alpha-beta searcher and an Engine that wraps it with difficulty presets,
// iterative deepening and a move-time box.
package engine

import (
	"github.com/sosmart/sosmart/internal/board"
)

// Evaluation constants
const (
	PawnValue   = 1
	KnightValue = 3
	BishopValue = 3
	RookValue   = 5
	QueenValue  = 9
	KingValue   = 0
)

// Piece values array for quick lookup
var pieceValues = [7]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue, 0}

// Piece-square tables from white's point of view, indexed [row][col] with
// row 0 on the 8th rank. Black reads them mirrored.
var (
	kingTable = [8][8]int{
		{3, 3, 3, 1, 1, 3, 3, 3},
		{3, 2, 1, 0, 0, 1, 2, 3},
		{1, 1, 0, 0, 0, 0, 1, 1},
		{1, 0, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 1},
		{1, 1, 0, 0, 0, 0, 1, 1},
		{3, 2, 1, 0, 0, 1, 2, 3},
		{3, 3, 3, 1, 1, 3, 3, 3},
	}

	queenTable = [8][8]int{
		{1, 2, 3, 3, 3, 3, 2, 1},
		{2, 3, 3, 4, 4, 3, 2, 2},
		{3, 3, 4, 4, 4, 4, 3, 3},
		{3, 3, 4, 5, 5, 4, 3, 3},
		{3, 3, 4, 5, 5, 4, 3, 3},
		{3, 3, 4, 4, 4, 4, 3, 3},
		{2, 3, 3, 4, 4, 3, 2, 2},
		{1, 2, 3, 3, 3, 3, 2, 1},
	}

	rookTable = [8][8]int{
		{1, 1, 1, 1, 1, 1, 1, 1},
		{2, 2, 2, 2, 2, 2, 2, 2},
		{2, 2, 3, 3, 3, 3, 2, 2},
		{2, 2, 3, 4, 4, 3, 2, 2},
		{2, 2, 3, 4, 4, 3, 2, 2},
		{2, 2, 3, 3, 3, 3, 2, 2},
		{2, 2, 2, 2, 2, 2, 2, 2},
		{1, 1, 1, 1, 1, 1, 1, 1},
	}

	bishopTable = [8][8]int{
		{2, 1, 2, 2, 2, 2, 1, 2},
		{1, 3, 2, 3, 3, 2, 3, 1},
		{1, 2, 4, 3, 3, 4, 2, 1},
		{1, 2, 3, 5, 5, 3, 2, 1},
		{1, 2, 3, 5, 5, 3, 2, 1},
		{1, 2, 4, 3, 3, 4, 2, 1},
		{1, 3, 2, 3, 3, 2, 3, 1},
		{2, 1, 2, 2, 2, 2, 1, 2},
	}

	knightTable = [8][8]int{
		{1, 1, 1, 1, 1, 1, 1, 1},
		{1, 2, 2, 2, 2, 2, 2, 1},
		{1, 2, 3, 3, 3, 3, 2, 1},
		{1, 2, 3, 4, 4, 3, 2, 1},
		{1, 2, 3, 4, 4, 3, 2, 1},
		{1, 2, 3, 3, 3, 3, 2, 1},
		{1, 2, 2, 2, 2, 2, 2, 1},
		{1, 1, 1, 1, 1, 1, 1, 1},
	}

	// Pawns gain a point close to promotion; the centre files a little sooner.
	// The bonus stays below any piece's value.
	pawnTable = [8][8]int{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{1, 1, 1, 1, 1, 1, 1, 1},
		{0, 0, 1, 1, 1, 1, 0, 0},
		{0, 0, 0, 1, 1, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}
)

var pieceTables = [6]*[8][8]int{
	board.Pawn:   &pawnTable,
	board.Knight: &knightTable,
	board.Bishop: &bishopTable,
	board.Rook:   &rookTable,
	board.Queen:  &queenTable,
	board.King:   &kingTable,
}

// Evaluate returns the static evaluation of the position from white's point
// of view. Checkmate scores Checkmate against the side to move and stalemate
// scores zero.
func Evaluate(pos *board.Position) int {
	pos.LegalMoves()
	return evaluate(pos)
}

// evaluate is Evaluate for a position whose LegalMoves have just been
// generated, as at every search node.
func evaluate(pos *board.Position) int {
	if pos.Checkmate() {
		if pos.SideToMove == board.White {
			return -Checkmate
		}
		return Checkmate
	}
	if pos.Stalemate() {
		return Stalemate
	}

	score := 0
	for sq := board.A1; sq < board.NoSquare; sq++ {
		piece := pos.PieceAt(sq)
		if piece == board.NoPiece {
			continue
		}
		pt := piece.Type()
		row, col := sq.Row(), sq.File()
		if piece.Color() == board.White {
			score += pieceValues[pt] + pieceTables[pt][row][col]
		} else {
			score -= pieceValues[pt] + pieceTables[pt][7-row][col]
		}
	}
	return score
}

// Material returns the material balance from white's point of view.
func Material(pos *board.Position) int {
	score := 0
	for sq := board.A1; sq < board.NoSquare; sq++ {
		piece := pos.PieceAt(sq)
		switch piece.Color() {
		case board.White:
			score += pieceValues[piece.Type()]
		case board.Black:
			score -= pieceValues[piece.Type()]
		}
	}
	return score
}
