package board

import (
	"github.com/sosmart/sosmart/internal/errors"
)

// Move flags
const (
	FlagEnPassant uint8 = 1 << iota
	FlagCastling
	FlagPromotion
)

// Move is an immutable transition between two squares. It records the moved
// and captured pieces by value at construction time, so it can be freely
// copied and never refers back to the position that produced it.
//
// Two moves with the same geometry are the same move: compare with Equal,
// not ==, which also compares pieces and flags.
type Move struct {
	from     Square
	to       Square
	piece    Piece
	captured Piece
	flags    uint8
}

// NoMove represents an invalid or null move.
var NoMove = Move{from: NoSquare, to: NoSquare, piece: NoPiece, captured: NoPiece}

// NewMove creates the move from one square to another as it would be played
// in p. The moved and captured pieces are read from the board and the
// promotion flag is set when a pawn reaches its last rank. En passant and
// castling flags are only ever set by the move generator; match a NewMove
// against LegalMoves with FindMove to recover them.
func NewMove(from, to Square, p *Position) Move {
	piece := p.PieceAt(from)
	m := Move{
		from:     from,
		to:       to,
		piece:    piece,
		captured: p.PieceAt(to),
	}
	if piece.Type() == Pawn && to.Rank() == lastRank(piece.Color()) {
		m.flags |= FlagPromotion
	}
	return m
}

// MoveFromCoords builds a move from two (row, col) screen coordinates, where
// row 0 is the 8th rank. This is how a click-driven front end names a move.
func MoveFromCoords(fromRow, fromCol, toRow, toCol int, p *Position) (Move, error) {
	from, err := SquareFromRowCol(fromRow, fromCol)
	if err != nil {
		return NoMove, err
	}
	to, err := SquareFromRowCol(toRow, toCol)
	if err != nil {
		return NoMove, err
	}
	return NewMove(from, to, p), nil
}

// newEnPassant creates an en passant capture. The captured pawn is not on the
// destination square, so it is recorded from the mover's color.
func newEnPassant(from, to Square, p *Position) Move {
	piece := p.PieceAt(from)
	return Move{
		from:     from,
		to:       to,
		piece:    piece,
		captured: NewPiece(Pawn, piece.Color().Other()),
		flags:    FlagEnPassant,
	}
}

// newCastling creates a castling move (the king's movement).
func newCastling(from, to Square, p *Position) Move {
	return Move{
		from:     from,
		to:       to,
		piece:    p.PieceAt(from),
		captured: NoPiece,
		flags:    FlagCastling,
	}
}

// From returns the origin square.
func (m Move) From() Square {
	return m.from
}

// To returns the destination square.
func (m Move) To() Square {
	return m.to
}

// Piece returns the moved piece.
func (m Move) Piece() Piece {
	return m.piece
}

// Captured returns the captured piece, or NoPiece.
func (m Move) Captured() Piece {
	return m.captured
}

// IsPromotion returns true if this is a promotion move. Promotions always
// produce a queen.
func (m Move) IsPromotion() bool {
	return m.flags&FlagPromotion != 0
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.flags&FlagCastling != 0
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.flags&FlagEnPassant != 0
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m.captured != NoPiece
}

// IsNull reports whether m is NoMove or otherwise degenerate.
func (m Move) IsNull() bool {
	return m.from == m.to
}

// ID returns the numeric identity of the move built from its screen
// coordinates: fromRow*1000 + fromCol*100 + toRow*10 + toCol.
func (m Move) ID() int {
	return m.from.Row()*1000 + m.from.File()*100 + m.to.Row()*10 + m.to.File()
}

// Equal reports whether both moves have the same origin and destination.
func (m Move) Equal(o Move) bool {
	return m.ID() == o.ID()
}

// String returns the coordinate format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.from.String() + m.to.String()
	if m.IsPromotion() {
		s += "q"
	}
	return s
}

// Notation returns the move-log form "e2->e4".
func (m Move) Notation() string {
	return m.from.String() + "->" + m.to.String()
}

// ParseMove parses a coordinate move string ("e2e4", optionally suffixed with
// "q") against the position. The result carries geometry only; use FindMove
// or Position.Play to resolve it against the legal set.
func ParseMove(s string, p *Position) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, errors.Wrapf(errors.ErrIllegalMove, "move %q", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	if len(s) == 5 && s[4] != 'q' && s[4] != 'Q' {
		return NoMove, errors.Wrapf(errors.ErrIllegalMove, "promotion piece %c", s[4])
	}

	return NewMove(from, to, p), nil
}

// FindMove returns the move in moves with the same geometry as m.
func FindMove(moves []Move, m Move) (Move, bool) {
	for _, legal := range moves {
		if legal.Equal(m) {
			return legal, true
		}
	}
	return NoMove, false
}

func lastRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}
