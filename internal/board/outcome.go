package board

// Game endings reported by Outcome.
const (
	EndCheckmate    = "checkmate"
	EndStalemate    = "stalemate"
	EndRepetition   = "repetition"
	EndInsufficient = "insufficient"
	EndFiftyMove    = "fifty-move"
)

// Outcome describes a finished game. Winner is NoColor for draws.
type Outcome struct {
	Ending string
	Winner Color
}

// IsDraw reports whether the game ended without a winner.
func (o Outcome) IsDraw() bool {
	return o.Winner == NoColor
}

// String returns "1-0", "0-1" or "1/2-1/2" followed by the ending.
func (o Outcome) String() string {
	switch o.Winner {
	case White:
		return "1-0 (" + o.Ending + ")"
	case Black:
		return "0-1 (" + o.Ending + ")"
	default:
		return "1/2-1/2 (" + o.Ending + ")"
	}
}

// Outcome reports whether the game is over in p and how it ended. It
// regenerates the legal moves, so the terminal flags are current afterwards.
func (p *Position) Outcome() (Outcome, bool) {
	p.LegalMoves()
	switch {
	case p.checkmate:
		return Outcome{Ending: EndCheckmate, Winner: p.SideToMove.Other()}, true
	case p.stalemate:
		return Outcome{Ending: EndStalemate, Winner: NoColor}, true
	case p.IsThreefoldRepetition():
		return Outcome{Ending: EndRepetition, Winner: NoColor}, true
	case p.IsInsufficientMaterial():
		return Outcome{Ending: EndInsufficient, Winner: NoColor}, true
	case p.HalfMoveClock >= 100:
		return Outcome{Ending: EndFiftyMove, Winner: NoColor}, true
	}
	return Outcome{Winner: NoColor}, false
}
