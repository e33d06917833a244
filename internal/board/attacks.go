package board

// Pin records a friendly piece that stands alone between its king and an
// enemy slider. Dir points from the king outward along the pin ray.
type Pin struct {
	Square Square
	Dir    Direction
}

// Check records an enemy piece giving check. Dir points from the king outward
// to the checker; the zero Direction marks a knight check, which cannot be
// blocked.
type Check struct {
	Square Square
	Dir    Direction
}

// IsKnight reports whether the check comes from a knight.
func (c Check) IsKnight() bool {
	return c.Dir == Direction{}
}

// PinsAndChecks analyzes the king of the side to move.
func (p *Position) PinsAndChecks() (inCheck bool, pins []Pin, checks []Check) {
	return p.pinsAndChecksAt(p.KingSquare[p.SideToMove])
}

// SquareAttacked reports whether the king of the side to move would be in
// check standing on sq.
func (p *Position) SquareAttacked(sq Square) bool {
	inCheck, _, _ := p.pinsAndChecksAt(sq)
	return inCheck
}

// pinsAndChecksAt runs the pin/check analysis as if the side to move's king
// stood on ksq. The king's real square is transparent to the rays, so a king
// stepping away from a slider along its line still sees it.
func (p *Position) pinsAndChecksAt(ksq Square) (inCheck bool, pins []Pin, checks []Check) {
	us := p.SideToMove

	for _, d := range kingDirs {
		possiblePin := NoSquare
		sq := ksq
		for dist := 1; ; dist++ {
			next, ok := sq.Step(d)
			if !ok {
				break
			}
			sq = next

			piece := p.PieceAt(sq)
			if piece == NoPiece {
				continue
			}

			if piece.Color() == us {
				if piece.Type() == King {
					continue
				}
				if possiblePin == NoSquare {
					possiblePin = sq
					continue
				}
				// Two friendly pieces: nothing behind them matters.
				break
			}

			if attacksAlong(piece, d, dist) {
				if possiblePin == NoSquare {
					inCheck = true
					checks = append(checks, Check{Square: sq, Dir: d})
				} else {
					pins = append(pins, Pin{Square: possiblePin, Dir: d})
				}
			}
			break
		}
	}

	knight := NewPiece(Knight, us.Other())
	for _, o := range knightOffsets {
		sq, ok := ksq.Step(o)
		if !ok {
			continue
		}
		if p.PieceAt(sq) == knight {
			inCheck = true
			checks = append(checks, Check{Square: sq, Dir: Direction{}})
		}
	}

	return inCheck, pins, checks
}

// attacksAlong reports whether an enemy piece found dist steps from the king
// along d attacks back down that ray.
func attacksAlong(piece Piece, d Direction, dist int) bool {
	switch piece.Type() {
	case Rook:
		return !d.IsDiagonal()
	case Bishop:
		return d.IsDiagonal()
	case Queen:
		return true
	case Pawn:
		// A pawn attacks diagonally forward, so seen from the king it sits
		// one step against its own direction of travel.
		return dist == 1 && d.IsDiagonal() && d.Rank == -piece.Color().Forward()
	case King:
		return dist == 1
	}
	return false
}

// pinFor returns the pin ray of the piece on sq, if it is pinned.
func pinFor(pins []Pin, sq Square) (Direction, bool) {
	for _, pin := range pins {
		if pin.Square == sq {
			return pin.Dir, true
		}
	}
	return Direction{}, false
}
