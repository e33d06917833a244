// Package errors provides the sentinel errors shared by the board, engine and
// console packages. Callers check them with errors.Is after wrapping.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCoordinate indicates a square outside the 8x8 board.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrNoHistory indicates an undo on a position with no applied moves.
	ErrNoHistory = errors.New("no move to undo")

	// ErrIllegalMove indicates a move that is not in the current legal set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoMoves indicates a search started with an empty move list.
	ErrNoMoves = errors.New("no moves to search")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidPosition indicates a position that breaks a board invariant,
	// such as a missing king.
	ErrInvalidPosition = errors.New("invalid position")
)

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
