package board

// kingHome returns the starting square of the color's king.
func kingHome(c Color) Square {
	if c == White {
		return E1
	}
	return E8
}

// rookHome returns the corner the color's rook castles from.
func rookHome(c Color, kingSide bool) Square {
	rank := 0
	if c == Black {
		rank = 7
	}
	if kingSide {
		return NewSquare(7, rank)
	}
	return NewSquare(0, rank)
}

// castlingRookSquares returns the rook's origin and destination for the
// castle whose king moves from -> to.
func castlingRookSquares(from, to Square) (rookFrom, rookTo Square) {
	rank := from.Rank()
	if to.File() > from.File() {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}

// castlingMoves appends the castles available to the king on from. The caller
// guarantees the side to move is not in check.
func (p *Position) castlingMoves(moves []Move, from Square) []Move {
	us := p.SideToMove
	if from != kingHome(us) || p.PieceAt(from) != NewPiece(King, us) {
		return moves
	}
	rank := from.Rank()
	rook := NewPiece(Rook, us)

	// Kingside: f and g empty, king crosses f and lands on g.
	if p.CastlingRights.CanCastle(us, true) && p.PieceAt(rookHome(us, true)) == rook {
		f, g := NewSquare(5, rank), NewSquare(6, rank)
		if p.IsEmpty(f) && p.IsEmpty(g) && !p.SquareAttacked(f) && !p.SquareAttacked(g) {
			moves = append(moves, newCastling(from, g, p))
		}
	}

	// Queenside: b, c and d empty, king crosses d and lands on c.
	if p.CastlingRights.CanCastle(us, false) && p.PieceAt(rookHome(us, false)) == rook {
		b, c, d := NewSquare(1, rank), NewSquare(2, rank), NewSquare(3, rank)
		if p.IsEmpty(b) && p.IsEmpty(c) && p.IsEmpty(d) && !p.SquareAttacked(d) && !p.SquareAttacked(c) {
			moves = append(moves, newCastling(from, c, p))
		}
	}

	return moves
}

// updateCastlingRights clears the rights a move gives up: any king move, a
// rook leaving its corner, or a capture on an enemy rook's corner.
func (p *Position) updateCastlingRights(m Move) {
	piece := m.Piece()
	us := piece.Color()

	switch piece.Type() {
	case King:
		p.CastlingRights &^= castlingRight(us, true) | castlingRight(us, false)
	case Rook:
		for _, kingSide := range [2]bool{true, false} {
			if m.From() == rookHome(us, kingSide) {
				p.CastlingRights &^= castlingRight(us, kingSide)
			}
		}
	}

	if m.Captured().Type() == Rook {
		them := m.Captured().Color()
		for _, kingSide := range [2]bool{true, false} {
			if m.To() == rookHome(them, kingSide) {
				p.CastlingRights &^= castlingRight(them, kingSide)
			}
		}
	}
}
