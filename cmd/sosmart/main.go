package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sosmart/sosmart/internal/board"
	"github.com/sosmart/sosmart/internal/console"
	"github.com/sosmart/sosmart/internal/engine"
	"github.com/sosmart/sosmart/internal/storage"
)

const endPlyLimit = "ply-limit"

var (
	fenFlag    = flag.String("fen", "", "start from this FEN instead of the initial position")
	depth      = flag.Int("depth", 0, "search depth (0 = difficulty preset)")
	difficulty = flag.String("difficulty", "", "engine difficulty: easy, medium or hard")
	perft      = flag.Int("perft", 0, "run perft to this depth and exit")
	selfPlay   = flag.Bool("selfplay", false, "let the engine play both sides")
	maxPlies   = flag.Int("plies", 200, "self-play ply limit")
	seed       = flag.Int64("seed", 0, "random seed (0 = from the clock)")
	engineSide = flag.String("engine", "", "side played by the engine in the console: white, black or none")
	noStore    = flag.Bool("nostore", false, "keep preferences and statistics in memory only")
	showStats  = flag.Bool("stats", false, "print game statistics and exit")
)

func main() {
	flag.Parse()

	store, err := openStorage(*noStore)
	if err != nil {
		log.Fatal("could not open storage: ", err)
	}
	defer store.Close()

	prefs, err := loadPreferences(store)
	if err != nil {
		log.Fatal("could not load preferences: ", err)
	}

	if *showStats {
		stats, err := store.LoadStats()
		if err != nil {
			log.Fatal("could not load statistics: ", err)
		}
		os.Stdout.WriteString(stats.Summary())
		return
	}

	pos := board.NewPosition()
	if *fenFlag != "" {
		pos, err = board.ParseFEN(*fenFlag)
		if err != nil {
			log.Fatal(err)
		}
	}

	if *perft > 0 {
		runPerft(pos, *perft)
		return
	}

	eng := newEngine(prefs)

	if *selfPlay {
		if err := runSelfPlay(eng, store, pos, prefs); err != nil {
			log.Fatal(err)
		}
	} else if err := runConsole(eng, store, pos, prefs); err != nil {
		log.Fatal(err)
	}

	if err := store.SavePreferences(prefs); err != nil {
		log.Printf("Warning: preferences not saved: %v", err)
	}
}

func openStorage(inMemory bool) (*storage.Storage, error) {
	if inMemory {
		return storage.NewMemoryStorage()
	}
	return storage.NewStorage()
}

// loadPreferences reads the stored preferences and applies the command line
// flags on top of them.
func loadPreferences(store *storage.Storage) (*storage.UserPreferences, error) {
	first, err := store.IsFirstLaunch()
	if err != nil {
		return nil, err
	}
	id, err := store.PlayerID()
	if err != nil {
		return nil, err
	}
	if first {
		log.Printf("Welcome, new player %s", id)
		if err := store.MarkFirstLaunchComplete(); err != nil {
			return nil, err
		}
	}

	prefs, err := store.LoadPreferences()
	if err != nil {
		return nil, err
	}
	prefs.PlayerID = id.String()

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "difficulty":
			if _, ok := engine.ParseDifficulty(*difficulty); ok {
				prefs.Difficulty = strings.ToLower(*difficulty)
			} else {
				log.Printf("Warning: unknown difficulty %q, keeping %s", *difficulty, prefs.Difficulty)
			}
		case "depth":
			prefs.Depth = *depth
		case "seed":
			prefs.Seed = *seed
		case "engine":
			switch strings.ToLower(*engineSide) {
			case "white":
				prefs.GameMode = storage.ModeHumanVsComputer
				prefs.PlayerColor = storage.ColorBlack
			case "black":
				prefs.GameMode = storage.ModeHumanVsComputer
				prefs.PlayerColor = storage.ColorWhite
			case "none":
				prefs.GameMode = storage.ModeHumanVsHuman
			default:
				log.Printf("Warning: unknown engine side %q", *engineSide)
			}
		}
	})
	return prefs, nil
}

func newEngine(prefs *storage.UserPreferences) *engine.Engine {
	s := prefs.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	eng := engine.NewEngine(s)
	d, _ := engine.ParseDifficulty(prefs.Difficulty)
	eng.SetDifficulty(d)
	return eng
}

func searchLimits(eng *engine.Engine, prefs *storage.UserPreferences) engine.SearchLimits {
	limits := engine.DifficultySettings[eng.Difficulty()]
	if prefs.Depth > 0 {
		limits.Depth = prefs.Depth
	}
	return limits
}

func runPerft(pos *board.Position, depth int) {
	start := time.Now()
	nodes := board.Perft(pos, depth)
	log.Printf("perft(%d) = %d in %v", depth, nodes, time.Since(start))
}

func runConsole(eng *engine.Engine, store *storage.Storage, pos *board.Position, prefs *storage.UserPreferences) error {
	c := console.New(eng, os.Stdout)
	if err := c.SetPosition(pos.ToFEN()); err != nil {
		return err
	}
	c.SetDepth(prefs.Depth)
	c.SetRecorder(store)

	if prefs.GameMode == storage.ModeHumanVsComputer {
		if prefs.PlayerColor == storage.ColorWhite {
			c.SetEngineColor(board.Black)
		} else {
			c.SetEngineColor(board.White)
		}
	}
	return c.Run(os.Stdin)
}

// runSelfPlay lets the engine play pos out until the game ends or the ply
// limit is reached, then records the result.
func runSelfPlay(eng *engine.Engine, store *storage.Storage, pos *board.Position, prefs *storage.UserPreferences) error {
	eng.OnInfo = func(info engine.SearchInfo) {
		log.Printf("  depth %d score %s nodes %d time %v",
			info.Depth, engine.ScoreToString(info.Score), info.Nodes, info.Time)
	}
	limits := searchLimits(eng, prefs)
	start := time.Now()

	outcome := board.Outcome{Ending: endPlyLimit, Winner: board.NoColor}
	for {
		if o, over := pos.Outcome(); over {
			outcome = o
			break
		}
		if pos.Ply() >= *maxPlies {
			break
		}

		m, err := eng.SearchWithLimits(pos, limits)
		if err != nil {
			return err
		}
		san := m.ToSAN(pos)
		if err := pos.Play(m); err != nil {
			return err
		}
		log.Printf("%d. %s %s", pos.Ply(), m.Notation(), san)
	}

	log.Printf("Result: %s after %d plies", outcome, pos.Ply())
	log.Printf("Final position: %s", pos.ToFEN())

	return store.RecordGame(storage.GameResult{
		Won:        outcome.Winner == board.White,
		Draw:       outcome.IsDraw(),
		Mode:       storage.ModeSelfPlay,
		Difficulty: eng.Difficulty().String(),
		Ending:     outcome.Ending,
		Plies:      pos.Ply(),
		Duration:   time.Since(start),
	})
}
