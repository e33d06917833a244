package board

import (
	"strconv"
	"strings"

	"github.com/sosmart/sosmart/internal/errors"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a Position with an empty history.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, errors.Wrapf(errors.ErrInvalidFEN, "need at least 4 fields, got %d", len(parts))
	}

	pos := &Position{}
	pos.Clear()

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, errors.Wrapf(errors.ErrInvalidFEN, "side to move %q", parts[1])
	}

	// Parse castling rights (field 2)
	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidFEN, "en passant square %q", parts[3])
		}
		pos.EnPassant = sq
	}

	// Parse half-move clock (field 4, optional)
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return nil, errors.Wrapf(errors.ErrInvalidFEN, "half-move clock %q", parts[4])
		}
		pos.HalfMoveClock = hmc
	}

	// Parse full-move number (field 5, optional)
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return nil, errors.Wrapf(errors.ErrInvalidFEN, "full-move number %q", parts[5])
		}
		pos.FullMoveNumber = fmn
	}

	if err := pos.findKings(); err != nil {
		return nil, err
	}
	if pos.opponentInCheck() {
		return nil, errors.Wrapf(errors.ErrInvalidPosition, "%s king is in check with %s to move",
			pos.SideToMove.Other(), pos.SideToMove)
	}
	pos.dropStaleCastlingRights()

	return pos, nil
}

// opponentInCheck reports whether the side that is not to move is in check,
// which would let its king be captured.
func (p *Position) opponentInCheck() bool {
	p.SideToMove = p.SideToMove.Other()
	inCheck, _, _ := p.PinsAndChecks()
	p.SideToMove = p.SideToMove.Other()
	return inCheck
}

// MustParseFEN is like ParseFEN but panics on error. Intended for tests and
// fixed positions.
func MustParseFEN(fen string) *Position {
	pos, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return pos
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return errors.Wrapf(errors.ErrInvalidFEN, "need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return errors.Wrapf(errors.ErrInvalidFEN, "too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return errors.Wrapf(errors.ErrInvalidFEN, "piece character %q", c)
			}
			pos.setPiece(NewSquare(file, rank), piece)
			file++
		}

		if file != 8 {
			return errors.Wrapf(errors.ErrInvalidFEN, "rank %d has %d squares", rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		pos.CastlingRights = NoCastling
		return nil
	}

	for _, c := range castling {
		switch c {
		case 'K':
			pos.CastlingRights |= WhiteKingSideCastle
		case 'Q':
			pos.CastlingRights |= WhiteQueenSideCastle
		case 'k':
			pos.CastlingRights |= BlackKingSideCastle
		case 'q':
			pos.CastlingRights |= BlackQueenSideCastle
		default:
			return errors.Wrapf(errors.ErrInvalidFEN, "castling character %q", c)
		}
	}

	return nil
}

// dropStaleCastlingRights clears rights whose king or rook is not on its
// home square, so a loose FEN cannot grant an impossible castle.
func (p *Position) dropStaleCastlingRights() {
	for _, c := range [2]Color{White, Black} {
		for _, kingSide := range [2]bool{true, false} {
			if !p.CastlingRights.CanCastle(c, kingSide) {
				continue
			}
			if p.PieceAt(kingHome(c)) != NewPiece(King, c) || p.PieceAt(rookHome(c, kingSide)) != NewPiece(Rook, c) {
				p.CastlingRights &^= castlingRight(c, kingSide)
			}
		}
	}
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	// Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.board[rank][file]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	// Castling rights
	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights.String())

	// En passant
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}
