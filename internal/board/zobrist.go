package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [12][64]uint64 // [Piece][Square]
	zobristEnPassant  [8]uint64      // One per file
	zobristCastling   [16]uint64     // All 16 castling combinations
	zobristSideToMove uint64         // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234) // Fixed seed

	for piece := WhitePawn; piece < NoPiece; piece++ {
		for sq := A1; sq <= H8; sq++ {
			zobristPiece[piece][sq] = rng.next()
		}
	}

	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}

	for i := 0; i < 16; i++ {
		zobristCastling[i] = rng.next()
	}

	zobristSideToMove = rng.next()
}

func pieceKey(piece Piece, sq Square) uint64 {
	if piece == NoPiece {
		return 0
	}
	return zobristPiece[piece][sq]
}

// stateKey hashes the non-board state: side to move, castling and en passant.
func (p *Position) stateKey() uint64 {
	var key uint64
	if p.SideToMove == Black {
		key ^= zobristSideToMove
	}
	key ^= zobristCastling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		key ^= zobristEnPassant[p.EnPassant.File()]
	}
	return key
}

// Hash returns the Zobrist hash of the position. Board keys are kept
// incrementally by setPiece; the state keys are folded in on demand.
func (p *Position) Hash() uint64 {
	return p.boardHash ^ p.stateKey()
}

// ComputeHash computes the Zobrist hash for the position from scratch.
func (p *Position) ComputeHash() uint64 {
	var hash uint64
	for sq := A1; sq < NoSquare; sq++ {
		hash ^= pieceKey(p.PieceAt(sq), sq)
	}
	return hash ^ p.stateKey()
}

// RepetitionCount returns how many times the current position has occurred,
// counting only the stretch since the last capture or pawn move.
func (p *Position) RepetitionCount() int {
	hash := p.Hash()
	count := 1
	for i := len(p.history) - 1; i >= 0 && i >= len(p.history)-p.HalfMoveClock; i-- {
		if p.history[i].hash == hash {
			count++
		}
	}
	return count
}

// IsThreefoldRepetition reports whether the current position has occurred
// three times.
func (p *Position) IsThreefoldRepetition() bool {
	return p.RepetitionCount() >= 3
}
