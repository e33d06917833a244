// Package console implements a line-oriented command loop for playing and
// analysing games against the engine.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sosmart/sosmart/internal/board"
	"github.com/sosmart/sosmart/internal/engine"
	"github.com/sosmart/sosmart/internal/errors"
	"github.com/sosmart/sosmart/internal/storage"
)

// Recorder stores finished games and reads back their statistics.
type Recorder interface {
	RecordGame(result storage.GameResult) error
	LoadStats() (*storage.GameStats, error)
}

// Console is a text front end over one game.
type Console struct {
	engine   *engine.Engine
	position *board.Position
	out      io.Writer

	// Side played by the engine, NoColor when both sides are human.
	engineColor board.Color
	// Depth override for engine moves (0 = difficulty preset).
	depth int

	recorder  Recorder
	recorded  bool
	startTime time.Time
}

// New creates a console driving eng, writing replies to out.
func New(eng *engine.Engine, out io.Writer) *Console {
	c := &Console{
		engine:      eng,
		position:    board.NewPosition(),
		out:         out,
		engineColor: board.NoColor,
		startTime:   time.Now(),
	}
	eng.OnInfo = c.sendInfo
	return c
}

// SetEngineColor makes the engine reply automatically for color. Pass
// board.NoColor for a game between two humans.
func (c *Console) SetEngineColor(color board.Color) {
	c.engineColor = color
}

// SetDepth overrides the search depth of engine moves.
func (c *Console) SetDepth(depth int) {
	c.depth = depth
}

// SetRecorder records finished games into r.
func (c *Console) SetRecorder(r Recorder) {
	c.recorder = r
}

// SetPosition replaces the current game with the position described by fen.
func (c *Console) SetPosition(fen string) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	c.reset(pos)
	return nil
}

// Position returns the current position.
func (c *Console) Position() *board.Position {
	return c.position
}

func (c *Console) reset(pos *board.Position) {
	c.position = pos
	c.recorded = false
	c.startTime = time.Now()
}

// Run reads commands from in until "quit" or end of input. If the engine
// plays the side to move it moves first.
func (c *Console) Run(in io.Reader) error {
	c.engineReply()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "new":
			c.reset(board.NewPosition())
			c.engineReply()
		case "fen":
			c.handleFEN(args)
		case "d":
			fmt.Fprint(c.out, c.position.String())
			fmt.Fprintf(c.out, "FEN: %s\n", c.position.ToFEN())
		case "moves":
			c.handleMoves()
		case "move":
			c.handleMove(args)
		case "undo":
			c.handleUndo()
		case "go":
			c.handleGo(args)
		case "random":
			c.handleRandom()
		case "perft":
			c.handlePerft(args)
		case "divide":
			c.handleDivide(args)
		case "eval":
			fmt.Fprintf(c.out, "eval %d (material %d)\n",
				c.engine.Evaluate(c.position), engine.Material(c.position))
		case "stats":
			c.handleStats()
		case "quit":
			return nil
		default:
			// A bare move is accepted as "move <move>".
			if !c.tryMove(cmd) {
				fmt.Fprintf(c.out, "Unknown command: %s\n", cmd)
			}
		}
	}
	return scanner.Err()
}

// handleFEN prints the current FEN, or sets up a new position from args.
func (c *Console) handleFEN(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, c.position.ToFEN())
		return
	}
	if err := c.SetPosition(strings.Join(args, " ")); err != nil {
		fmt.Fprintf(c.out, "Invalid FEN: %v\n", err)
		return
	}
	c.engineReply()
}

func (c *Console) handleMoves() {
	moves := c.position.LegalMoves()
	fmt.Fprintf(c.out, "%d moves: %s\n", len(moves),
		strings.Join(board.MovesToSAN(c.position, moves), " "))
}

func (c *Console) handleMove(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: move <e2e4|Nf3>")
		return
	}
	if !c.tryMove(args[0]) {
		fmt.Fprintf(c.out, "Illegal move: %s\n", args[0])
	}
}

// tryMove plays s, given in coordinate or SAN form, and lets the engine
// answer. It reports false if s is not a legal move.
func (c *Console) tryMove(s string) bool {
	m, err := c.parseMove(s)
	if err != nil {
		return false
	}
	c.play(m)
	c.engineReply()
	return true
}

// parseMove resolves s against the legal moves of the current position.
func (c *Console) parseMove(s string) (board.Move, error) {
	moves := c.position.LegalMoves()
	if m, err := board.ParseMove(s, c.position); err == nil {
		if legal, ok := board.FindMove(moves, m); ok {
			return legal, nil
		}
	}
	return board.ParseSAN(s, c.position)
}

// play applies a legal move and reports the game result if it ended the game.
func (c *Console) play(m board.Move) {
	san := m.ToSAN(c.position)
	if err := c.position.Play(m); err != nil {
		fmt.Fprintf(c.out, "Illegal move: %s\n", m)
		return
	}
	fmt.Fprintf(c.out, "%s %s %s\n", m.Piece().Tag(), m.Notation(), san)
	c.checkGameOver()
}

// engineReply lets the engine move while it is its turn and the game is on.
func (c *Console) engineReply() {
	if c.engineColor == board.NoColor || c.position.SideToMove != c.engineColor {
		return
	}
	if _, over := c.position.Outcome(); over {
		return
	}
	c.engineMove(c.limits())
}

func (c *Console) limits() engine.SearchLimits {
	limits := engine.DifficultySettings[c.engine.Difficulty()]
	if c.depth > 0 {
		limits.Depth = c.depth
	}
	return limits
}

func (c *Console) engineMove(limits engine.SearchLimits) {
	m, err := c.engine.SearchWithLimits(c.position, limits)
	if err != nil {
		fmt.Fprintf(c.out, "No move: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "bestmove %s\n", m)
	c.play(m)
}

// handleUndo takes back one ply, or a full move when the engine plays one
// side so that the human is to move again.
func (c *Console) handleUndo() {
	plies := 1
	if c.engineColor != board.NoColor && c.position.Ply() >= 2 {
		plies = 2
	}
	for i := 0; i < plies; i++ {
		if err := c.position.UndoMove(); err != nil {
			if errors.Is(err, errors.ErrNoHistory) {
				fmt.Fprintln(c.out, "Nothing to undo")
				return
			}
			fmt.Fprintf(c.out, "Undo failed: %v\n", err)
			return
		}
	}
	c.recorded = false
	fmt.Fprintf(c.out, "Undone %d ply\n", plies)
}

// handleGo makes the engine play a move for the side to move.
// Formats:
//   - go
//   - go depth 3
//   - go movetime 500
func (c *Console) handleGo(args []string) {
	limits := c.limits()
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				limits.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				limits.MoveTime = time.Duration(ms) * time.Millisecond
				i++
			}
		}
	}
	c.engineMove(limits)
}

func (c *Console) handleRandom() {
	m, err := c.engine.RandomMove(c.position)
	if err != nil {
		fmt.Fprintf(c.out, "No move: %v\n", err)
		return
	}
	c.play(m)
}

func parseDepth(args []string, def int) int {
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d >= 0 {
			return d
		}
	}
	return def
}

// handlePerft runs a perft test.
func (c *Console) handlePerft(args []string) {
	depth := parseDepth(args, 3)

	start := time.Now()
	nodes := c.engine.Perft(c.position, depth)
	elapsed := time.Since(start)

	fmt.Fprintf(c.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(c.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(c.out, "NPS: %.0f\n", nps)
	}
}

func (c *Console) handleDivide(args []string) {
	depth := parseDepth(args, 2)
	if depth < 1 {
		depth = 1
	}

	var total uint64
	for _, e := range board.Divide(c.position, depth) {
		fmt.Fprintf(c.out, "%s: %d\n", e.Move, e.Nodes)
		total += e.Nodes
	}
	fmt.Fprintf(c.out, "Nodes: %d\n", total)
}

func (c *Console) handleStats() {
	if c.recorder == nil {
		fmt.Fprintln(c.out, "No statistics store")
		return
	}
	stats, err := c.recorder.LoadStats()
	if err != nil {
		fmt.Fprintf(c.out, "Failed to load statistics: %v\n", err)
		return
	}
	fmt.Fprint(c.out, stats.Summary())
}

// sendInfo prints one line per completed search iteration.
func (c *Console) sendInfo(info engine.SearchInfo) {
	fmt.Fprintf(c.out, "info depth %d score %s nodes %d time %d move %s\n",
		info.Depth, engine.ScoreToString(info.Score), info.Nodes,
		info.Time.Milliseconds(), info.Move)
}

// checkGameOver announces a finished game and records it once.
func (c *Console) checkGameOver() {
	outcome, over := c.position.Outcome()
	if !over {
		return
	}
	fmt.Fprintf(c.out, "Game over: %s\n", outcome)

	if c.recorder == nil || c.recorded {
		return
	}
	c.recorded = true
	if err := c.recorder.RecordGame(c.result(outcome)); err != nil {
		fmt.Fprintf(c.out, "Failed to record game: %v\n", err)
	}
}

// result converts an outcome into a stats entry from the human's side. In
// a game between two humans a win is a white win.
func (c *Console) result(o board.Outcome) storage.GameResult {
	r := storage.GameResult{
		Draw:     o.IsDraw(),
		Mode:     storage.ModeHumanVsHuman,
		Ending:   o.Ending,
		Plies:    c.position.Ply(),
		Duration: time.Since(c.startTime),
		Won:      o.Winner == board.White,
	}
	if c.engineColor != board.NoColor {
		r.Mode = storage.ModeHumanVsComputer
		r.Difficulty = c.engine.Difficulty().String()
		r.Won = o.Winner == c.engineColor.Other()
	}
	return r
}
