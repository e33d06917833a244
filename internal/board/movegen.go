package board

import (
	"github.com/sosmart/sosmart/internal/errors"
)

// LegalMoves generates all legal moves for the side to move and refreshes the
// check, pin and terminal state of the position.
func (p *Position) LegalMoves() []Move {
	inCheck, pins, checks := p.PinsAndChecks()
	p.inCheck, p.pins, p.checks = inCheck, pins, checks

	var moves []Move
	switch {
	case len(checks) > 1:
		// Double check: only the king can move.
		moves = p.kingMoves(make([]Move, 0, 8), p.KingSquare[p.SideToMove], true)
	case len(checks) == 1:
		moves = p.filterCheckEvasions(p.generateMoves(inCheck, pins), checks[0])
	default:
		moves = p.generateMoves(inCheck, pins)
	}

	p.checkmate = len(moves) == 0 && inCheck
	p.stalemate = len(moves) == 0 && !inCheck
	return moves
}

// PseudoLegalMoves generates moves that respect pins but ignore checks.
func (p *Position) PseudoLegalMoves() []Move {
	inCheck, pins, _ := p.PinsAndChecks()
	return p.generateMoves(inCheck, pins)
}

// generateMoves walks the board and generates moves for every piece of the side
// to move, with pinned pieces restricted to their pin ray.
func (p *Position) generateMoves(inCheck bool, pins []Pin) []Move {
	us := p.SideToMove
	moves := make([]Move, 0, 64)

	for sq := A1; sq < NoSquare; sq++ {
		piece := p.PieceAt(sq)
		if piece == NoPiece || piece.Color() != us {
			continue
		}

		pin, pinned := pinFor(pins, sq)
		switch piece.Type() {
		case Pawn:
			moves = p.pawnMoves(moves, sq, pin, pinned)
		case Knight:
			if !pinned {
				moves = p.knightMoves(moves, sq)
			}
		case Bishop:
			moves = p.slidingMoves(moves, sq, diagonalDirs[:], pin, pinned)
		case Rook:
			moves = p.slidingMoves(moves, sq, orthogonalDirs[:], pin, pinned)
		case Queen:
			moves = p.slidingMoves(moves, sq, kingDirs[:], pin, pinned)
		case King:
			moves = p.kingMoves(moves, sq, inCheck)
		}
	}

	return moves
}

// filterCheckEvasions keeps the moves that answer a single check: king moves,
// capturing the checker, or interposing on a slider's ray. En passant captures
// have already been verified against the whole position.
func (p *Position) filterCheckEvasions(moves []Move, check Check) []Move {
	ksq := p.KingSquare[p.SideToMove]

	var targets []Square
	if check.IsKnight() {
		targets = []Square{check.Square}
	} else {
		for sq, ok := ksq.Step(check.Dir); ok; sq, ok = sq.Step(check.Dir) {
			targets = append(targets, sq)
			if sq == check.Square {
				break
			}
		}
	}

	legal := moves[:0]
	for _, m := range moves {
		if m.Piece().Type() == King || m.IsEnPassant() || containsSquare(targets, m.To()) {
			legal = append(legal, m)
		}
	}
	return legal
}

func containsSquare(squares []Square, sq Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}

// pawnMoves generates pushes, captures, en passant and promotions.
func (p *Position) pawnMoves(moves []Move, from Square, pin Direction, pinned bool) []Move {
	us := p.SideToMove
	them := us.Other()
	fwd := us.Forward()
	startRank := 1
	if us == Black {
		startRank = 6
	}

	push := Direction{0, fwd}
	if !pinned || pin.Parallel(push) {
		if one, ok := from.Step(push); ok && p.IsEmpty(one) {
			moves = append(moves, NewMove(from, one, p))
			if from.Rank() == startRank {
				if two, ok := one.Step(push); ok && p.IsEmpty(two) {
					moves = append(moves, NewMove(from, two, p))
				}
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		capture := Direction{df, fwd}
		if pinned && !pin.Parallel(capture) {
			continue
		}
		to, ok := from.Step(capture)
		if !ok {
			continue
		}
		if target := p.PieceAt(to); target != NoPiece {
			if target.Color() == them {
				moves = append(moves, NewMove(from, to, p))
			}
		} else if to == p.EnPassant && p.enPassantSafe(from, to) {
			moves = append(moves, newEnPassant(from, to, p))
		}
	}

	return moves
}

// enPassantSafe plays the en passant capture on the board, asks the analyzer
// whether our king is attacked, and takes it back. Two pawns leave the same
// rank at once, which a pin ray cannot see, and the captured pawn may be the
// one giving check.
func (p *Position) enPassantSafe(from, to Square) bool {
	capSq := NewSquare(to.File(), from.Rank())
	pawn, captured := p.PieceAt(from), p.PieceAt(capSq)
	if captured != NewPiece(Pawn, p.SideToMove.Other()) {
		return false
	}

	p.setPiece(from, NoPiece)
	p.setPiece(capSq, NoPiece)
	p.setPiece(to, pawn)
	inCheck, _, _ := p.PinsAndChecks()
	p.setPiece(to, NoPiece)
	p.setPiece(capSq, captured)
	p.setPiece(from, pawn)

	return !inCheck
}

func (p *Position) knightMoves(moves []Move, from Square) []Move {
	us := p.SideToMove
	for _, o := range knightOffsets {
		to, ok := from.Step(o)
		if !ok {
			continue
		}
		if target := p.PieceAt(to); target == NoPiece || target.Color() != us {
			moves = append(moves, NewMove(from, to, p))
		}
	}
	return moves
}

// slidingMoves walks each ray until the first occupied square, which is
// included when it holds an enemy piece.
func (p *Position) slidingMoves(moves []Move, from Square, dirs []Direction, pin Direction, pinned bool) []Move {
	us := p.SideToMove
	for _, d := range dirs {
		if pinned && !pin.Parallel(d) {
			continue
		}
		for to, ok := from.Step(d); ok; to, ok = to.Step(d) {
			target := p.PieceAt(to)
			if target == NoPiece {
				moves = append(moves, NewMove(from, to, p))
				continue
			}
			if target.Color() != us {
				moves = append(moves, NewMove(from, to, p))
			}
			break
		}
	}
	return moves
}

// kingMoves generates king steps onto squares the king would not be attacked
// on, followed by castling when not in check.
func (p *Position) kingMoves(moves []Move, from Square, inCheck bool) []Move {
	us := p.SideToMove
	for _, d := range kingDirs {
		to, ok := from.Step(d)
		if !ok {
			continue
		}
		if target := p.PieceAt(to); target != NoPiece && target.Color() == us {
			continue
		}
		if p.SquareAttacked(to) {
			continue
		}
		moves = append(moves, NewMove(from, to, p))
	}
	if !inCheck {
		moves = p.castlingMoves(moves, from)
	}
	return moves
}

// MakeMove applies a move to the position. It does not validate the move:
// callers pass moves from LegalMoves, or use Play.
func (p *Position) MakeMove(m Move) {
	p.history = append(p.history, undoInfo{
		move:           m,
		castlingRights: p.CastlingRights,
		enPassant:      p.EnPassant,
		halfMoveClock:  p.HalfMoveClock,
		hash:           p.Hash(),
	})

	us := p.SideToMove
	from, to := m.From(), m.To()
	piece := m.Piece()

	p.setPiece(from, NoPiece)
	if m.IsPromotion() {
		p.setPiece(to, NewPiece(Queen, us))
	} else {
		p.setPiece(to, piece)
	}

	if m.IsEnPassant() {
		p.setPiece(NewSquare(to.File(), from.Rank()), NoPiece)
	}

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(from, to)
		p.setPiece(rookTo, p.PieceAt(rookFrom))
		p.setPiece(rookFrom, NoPiece)
	}

	p.updateCastlingRights(m)

	// Set en passant square for double pawn push
	p.EnPassant = NoSquare
	if piece.Type() == Pawn && abs(to.Rank()-from.Rank()) == 2 {
		p.EnPassant = NewSquare(from.File(), (from.Rank()+to.Rank())/2)
	}

	// Update half-move clock
	if piece.Type() == Pawn || m.IsCapture() {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	// Update full-move number
	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = us.Other()
	p.clearDerived()
}

// UndoMove reverts the most recently applied move.
func (p *Position) UndoMove() error {
	if len(p.history) == 0 {
		return errors.Wrap(errors.ErrNoHistory, "undo")
	}
	p.unmakeMove()
	return nil
}

// unmakeMove pops the history and restores the position bit for bit. The
// history must not be empty.
func (p *Position) unmakeMove() {
	undo := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]

	m := undo.move
	us := p.SideToMove.Other()
	from, to := m.From(), m.To()

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(from, to)
		p.setPiece(rookFrom, p.PieceAt(rookTo))
		p.setPiece(rookTo, NoPiece)
	}

	if m.IsEnPassant() {
		p.setPiece(to, NoPiece)
		p.setPiece(NewSquare(to.File(), from.Rank()), m.Captured())
	} else {
		p.setPiece(to, m.Captured())
	}
	p.setPiece(from, m.Piece())

	p.CastlingRights = undo.castlingRights
	p.EnPassant = undo.enPassant
	p.HalfMoveClock = undo.halfMoveClock
	if us == Black {
		p.FullMoveNumber--
	}
	p.SideToMove = us
	p.clearDerived()
}

// Play applies m after resolving it against the legal moves of the position.
// Moves built with NewMove or MoveFromCoords pick up their en passant and
// castling flags here.
func (p *Position) Play(m Move) error {
	legal, ok := FindMove(p.LegalMoves(), m)
	if !ok {
		return errors.Wrapf(errors.ErrIllegalMove, "%s", m)
	}
	p.MakeMove(legal)
	return nil
}
