package board

import (
	"strings"

	"github.com/sosmart/sosmart/internal/errors"
)

// ToSAN converts a move to Standard Algebraic Notation.
func (m Move) ToSAN(pos *Position) string {
	if m.IsNull() {
		return "-"
	}

	from := m.From()
	to := m.To()
	piece := m.Piece()

	if piece == NoPiece {
		return m.String()
	}

	var sb strings.Builder

	// Castling
	if m.IsCastling() {
		if to.File() > from.File() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		pt := piece.Type()

		// Piece letter and disambiguation (not for pawns)
		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(disambiguation(pos, m))
		}

		if m.IsCapture() {
			if pt == Pawn {
				// Pawn captures include the file of origin
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(to.String())

		if m.IsPromotion() {
			sb.WriteString("=Q")
		}
	}

	// Check/checkmate marker
	newPos := pos.Copy()
	newPos.MakeMove(m)
	replies := newPos.LegalMoves()
	if newPos.InCheck() {
		if len(replies) == 0 {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('+')
		}
	}

	return sb.String()
}

// disambiguation returns the file, rank or square needed to tell m apart from
// other moves of the same piece type to the same square.
func disambiguation(pos *Position, m Move) string {
	from := m.From()
	var candidates []Square

	for _, other := range pos.LegalMoves() {
		if other.To() != m.To() || other.From() == from || other.Piece() != m.Piece() {
			continue
		}
		candidates = append(candidates, other.From())
	}

	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + from.File()))
	}
	if !sameRank {
		return string(rune('1' + from.Rank()))
	}
	return from.String()
}

// ParseSAN parses a SAN string and returns the matching legal move.
func ParseSAN(s string, pos *Position) (Move, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#")
	moves := pos.LegalMoves()

	// Handle castling
	if s == "O-O" || s == "0-0" || s == "O-O-O" || s == "0-0-0" {
		kingSide := len(s) == 3
		for _, m := range moves {
			if m.IsCastling() && (m.To().File() > m.From().File()) == kingSide {
				return m, nil
			}
		}
		return NoMove, errors.Wrapf(errors.ErrIllegalMove, "%q", s)
	}

	// Promotion: only a queen is accepted.
	if idx := strings.Index(s, "="); idx >= 0 {
		if idx+1 >= len(s) || s[idx+1] != 'Q' {
			return NoMove, errors.Wrapf(errors.ErrIllegalMove, "promotion in %q", s)
		}
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	body := strings.ReplaceAll(s, "x", "")

	// Determine piece type
	pt := Pawn
	if len(body) > 0 && body[0] >= 'A' && body[0] <= 'Z' {
		switch body[0] {
		case 'N':
			pt = Knight
		case 'B':
			pt = Bishop
		case 'R':
			pt = Rook
		case 'Q':
			pt = Queen
		case 'K':
			pt = King
		default:
			return NoMove, errors.Wrapf(errors.ErrIllegalMove, "piece letter in %q", s)
		}
		body = body[1:]
	}

	if len(body) < 2 {
		return NoMove, errors.Wrapf(errors.ErrIllegalMove, "%q", s)
	}
	dest, err := ParseSquare(body[len(body)-2:])
	if err != nil {
		return NoMove, err
	}
	body = body[:len(body)-2]

	// Parse disambiguation (file, rank, or both)
	disambigFile, disambigRank := -1, -1
	for _, c := range body {
		switch {
		case c >= 'a' && c <= 'h':
			disambigFile = int(c - 'a')
		case c >= '1' && c <= '8':
			disambigRank = int(c - '1')
		}
	}

	for _, m := range moves {
		if m.To() != dest || m.Piece().Type() != pt {
			continue
		}
		from := m.From()
		if disambigFile >= 0 && from.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && from.Rank() != disambigRank {
			continue
		}
		if isCapture && !m.IsCapture() {
			continue
		}
		return m, nil
	}

	return NoMove, errors.Wrapf(errors.ErrIllegalMove, "%q", s)
}

// MovesToSAN converts a sequence of moves played from pos to SAN notation.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()

	for i, m := range moves {
		result[i] = m.ToSAN(p)
		p.MakeMove(m)
	}

	return result
}
