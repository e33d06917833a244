package board

import (
	"fmt"
	"strings"

	"github.com/sosmart/sosmart/internal/errors"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castlingRight(c, kingSide) != 0
}

func castlingRight(c Color, kingSide bool) CastlingRights {
	if c == White {
		if kingSide {
			return WhiteKingSideCastle
		}
		return WhiteQueenSideCastle
	}
	if kingSide {
		return BlackKingSideCastle
	}
	return BlackQueenSideCastle
}

// undoInfo is one entry of the position's history: the applied move plus the
// state it overwrote. Castling rights are snapshotted exactly once per move.
type undoInfo struct {
	move           Move
	castlingRights CastlingRights
	enPassant      Square
	halfMoveClock  int
	hash           uint64 // Hash of the position the move was played from
}

// Position represents a complete chess position and its move history.
type Position struct {
	// board[rank][file]
	board [8][8]Piece

	// Game state
	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int    // Moves since last pawn move or capture (for 50-move rule)
	FullMoveNumber int    // Full move counter, starts at 1

	// King positions, always equal to the kings' cells on the board.
	KingSquare [2]Square

	history   []undoInfo
	boardHash uint64 // Zobrist keys of the pieces on the board

	// Derived by LegalMoves; cleared whenever a move is made or undone.
	inCheck   bool
	pins      []Pin
	checks    []Check
	checkmate bool
	stalemate bool
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// Copy creates a deep copy of the position, history included.
func (p *Position) Copy() *Position {
	newPos := *p
	newPos.history = append([]undoInfo(nil), p.history...)
	newPos.pins = append([]Pin(nil), p.pins...)
	newPos.checks = append([]Check(nil), p.checks...)
	return &newPos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.board[sq.Rank()][sq.File()]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.PieceAt(sq) == NoPiece
}

// setPiece places a piece (or NoPiece) on a square and keeps the king cache
// and board hash in step.
func (p *Position) setPiece(sq Square, piece Piece) {
	p.boardHash ^= pieceKey(p.PieceAt(sq), sq) ^ pieceKey(piece, sq)
	p.board[sq.Rank()][sq.File()] = piece
	if piece.Type() == King {
		p.KingSquare[piece.Color()] = sq
	}
}

// findKings locates and caches the king positions.
func (p *Position) findKings() error {
	found := [2]int{}
	for sq := A1; sq < NoSquare; sq++ {
		piece := p.PieceAt(sq)
		if piece.Type() == King {
			p.KingSquare[piece.Color()] = sq
			found[piece.Color()]++
		}
	}
	if found[White] != 1 || found[Black] != 1 {
		return errors.Wrapf(errors.ErrInvalidPosition, "want one king per side, got %d white and %d black",
			found[White], found[Black])
	}
	return nil
}

// Ply returns the number of moves applied since the position was set up.
func (p *Position) Ply() int {
	return len(p.history)
}

// History returns the applied moves, oldest first.
func (p *Position) History() []Move {
	moves := make([]Move, len(p.history))
	for i, u := range p.history {
		moves[i] = u.move
	}
	return moves
}

// LastMove returns the most recently applied move, or NoMove.
func (p *Position) LastMove() Move {
	if len(p.history) == 0 {
		return NoMove
	}
	return p.history[len(p.history)-1].move
}

// InCheck returns true if the side to move is in check. Like Checkmate and
// Stalemate it is only known after LegalMoves and reads false until then.
func (p *Position) InCheck() bool {
	return p.inCheck
}

// clearDerived forgets the check and pin analysis of the previous position.
func (p *Position) clearDerived() {
	p.inCheck = false
	p.pins = nil
	p.checks = nil
	p.checkmate = false
	p.stalemate = false
}

// Checkmate reports whether the last LegalMoves call found no moves while in check.
func (p *Position) Checkmate() bool {
	return p.checkmate
}

// Stalemate reports whether the last LegalMoves call found no moves while not in check.
func (p *Position) Stalemate() bool {
	return p.stalemate
}

// Snapshot is the comparable persistent state of a position: everything an
// undo must restore.
type Snapshot struct {
	Board          [8][8]Piece
	SideToMove     Color
	KingSquare     [2]Square
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	FullMoveNumber int
	Ply            int
}

// Snapshot captures the persistent state of the position.
func (p *Position) Snapshot() Snapshot {
	return Snapshot{
		Board:          p.board,
		SideToMove:     p.SideToMove,
		KingSquare:     p.KingSquare,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		FullMoveNumber: p.FullMoveNumber,
		Ply:            len(p.history),
	}
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.board[rank][file]
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.CastlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber)
	return sb.String()
}

// Clear resets the position to an empty board.
func (p *Position) Clear() {
	*p = Position{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	for rank := range p.board {
		for file := range p.board[rank] {
			p.board[rank][file] = NoPiece
		}
	}
	p.KingSquare[White] = NoSquare
	p.KingSquare[Black] = NoSquare
}

// IsInsufficientMaterial returns true if neither side can checkmate.
func (p *Position) IsInsufficientMaterial() bool {
	minors := [2]int{}
	for sq := A1; sq < NoSquare; sq++ {
		piece := p.PieceAt(sq)
		switch piece.Type() {
		case Pawn, Rook, Queen:
			return false
		case Knight, Bishop:
			minors[piece.Color()]++
		}
	}

	// K vs K, K+minor vs K
	if minors[White]+minors[Black] == 0 {
		return true
	}
	if minors[White] <= 1 && minors[Black] == 0 {
		return true
	}
	if minors[Black] <= 1 && minors[White] == 0 {
		return true
	}
	return false
}
