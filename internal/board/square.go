// Package board implements the chess position model, the check/pin analyzer
// and the legal move generator on an 8x8 mailbox.
package board

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/sosmart/sosmart/internal/errors"
)

// Square represents a square on the chess board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// Row returns the screen row of the square, with row 0 at the 8th rank.
func (sq Square) Row() int {
	return 7 - sq.Rank()
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// NewSquare creates a square from file and rank (0-indexed).
// The caller guarantees both are in [0,7]; see SquareFromRowCol for checked construction.
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// SquareFromRowCol converts screen coordinates (row 0 = 8th rank, col 0 = a-file)
// into a square.
func SquareFromRowCol(row, col int) (Square, error) {
	if !onBoard(col, 7-row) {
		return NoSquare, errors.Wrapf(errors.ErrInvalidCoordinate, "row %d col %d", row, col)
	}
	return NewSquare(col, 7-row), nil
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, errors.Wrapf(errors.ErrInvalidCoordinate, "square %q", s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if !onBoard(file, rank) {
		return NoSquare, errors.Wrapf(errors.ErrInvalidCoordinate, "square %q", s)
	}

	return NewSquare(file, rank), nil
}

// Offset returns the square df files and dr ranks away, and false when that
// step leaves the board.
func (sq Square) Offset(df, dr int) (Square, bool) {
	file, rank := sq.File()+df, sq.Rank()+dr
	if !onBoard(file, rank) {
		return NoSquare, false
	}
	return NewSquare(file, rank), true
}

// Step returns the square one step along d, and false at the board edge.
func (sq Square) Step(d Direction) (Square, bool) {
	return sq.Offset(d.File, d.Rank)
}

func onBoard(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

// Direction is a unit step on the board. The zero Direction marks a knight
// check, which has no ray.
type Direction struct {
	File int
	Rank int
}

// Neg returns the opposite direction.
func (d Direction) Neg() Direction {
	return Direction{-d.File, -d.Rank}
}

// IsDiagonal reports whether d moves along a diagonal.
func (d Direction) IsDiagonal() bool {
	return d.File != 0 && d.Rank != 0
}

// Parallel reports whether d runs along the same line as o, in either sense.
func (d Direction) Parallel(o Direction) bool {
	return d == o || d == o.Neg()
}

var (
	orthogonalDirs = [4]Direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	diagonalDirs   = [4]Direction{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	kingDirs       = [8]Direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	knightOffsets  = [8]Direction{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
)

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
