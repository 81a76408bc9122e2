package game

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/gridsweep/scores"
	"github.com/they4kman/gridsweep/util/collections"
)

// ScoreLog stores the time of every won game
type ScoreLog interface {
	Append(seconds int) error
	Scores() ([]int, error)
}

type GameConfig struct {
	Size, NumMines int

	// Seed for mine placement. Zero picks a time-based seed; any other value
	// reproduces the same sequence of boards.
	Seed int64

	// Fixed mine layout to play instead of randomly generated boards. Size
	// and NumMines are taken from the layout.
	Layout *BoardSnapshot

	// Where won games are recorded; an in-memory log if nil
	ScoreLog ScoreLog

	// Whether to start over immediately after a game is won or lost
	AutoReset bool
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Size:      DefaultSize,
		NumMines:  DefaultNumMines,
		Layout:    nil,
		ScoreLog:  nil,
		AutoReset: true,
	}
}

// Game drives a Board through the phases of play, and owns flags, the timer
// and the score history. It is not safe for concurrent use; all input must
// arrive from a single goroutine.
type Game struct {
	config GameConfig
	board  *Board
	layout []Coord

	flags collections.Set[Coord]
	phase Phase
	timer int

	scoreLog     ScoreLog
	history      []int
	historyKnown bool

	listeners []Listener
}

func NewGame(config GameConfig) (*Game, error) {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano() ^ rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	game := &Game{
		config: config,
		flags:  make(collections.Set[Coord]),
		phase:  NotStarted,
	}

	if config.Layout == nil {
		board, err := NewBoard(config.Size, config.NumMines, rng)
		if err != nil {
			return nil, err
		}
		game.board = board
	} else {
		size, mines, err := config.Layout.Mines()
		if err != nil {
			return nil, err
		}
		game.board = newBoard(size, len(mines), rng)
		game.layout = mines
	}

	game.scoreLog = config.ScoreLog
	if game.scoreLog == nil {
		game.scoreLog = scores.NewMemoryLog()
	}
	game.loadHistory()

	return game, nil
}

func (game *Game) loadHistory() {
	history, err := game.scoreLog.Scores()
	if err != nil {
		log.WithError(err).Warn("could not read score log; high score unknown")
		game.history, game.historyKnown = nil, false
		return
	}
	game.history, game.historyKnown = history, true
}

func (game *Game) Board() *Board {
	return game.board
}

func (game *Game) Phase() Phase {
	return game.phase
}

func (game *Game) Timer() int {
	return game.timer
}

func (game *Game) NumMines() int {
	return game.board.numMines
}

func (game *Game) IsFlagged(c Coord) bool {
	return game.flags.Contains(c)
}

func (game *Game) FlagsRemaining() int {
	return game.board.numMines - game.flags.Len()
}

func (game *Game) canPlay() bool {
	return game.phase == NotStarted || game.phase == InProgress
}

// HighScore returns the fastest recorded win, or NoHighScore
func (game *Game) HighScore() int {
	if !game.historyKnown {
		return NoHighScore
	}
	if best, ok := scores.HighScore(game.history); ok {
		return best
	}
	return NoHighScore
}

func (game *Game) Apply(action CellAction) error {
	switch action.Action {
	case Click:
		return game.Reveal(action.Coord)
	case RightClick:
		return game.Flag(action.Coord)
	default:
		return nil
	}
}

// Reveal uncovers a cell. The first reveal of a game generates the board
// around it.
func (game *Game) Reveal(c Coord) error {
	if err := game.board.checkBounds(c); err != nil {
		return err
	}
	if !game.canPlay() {
		return nil
	}
	if game.flags.Contains(c) || game.board.IsRevealed(c) {
		return nil
	}

	if game.phase == NotStarted {
		if err := game.startGame(c); err != nil {
			return err
		}
	}

	result, err := game.board.Reveal(c, game.flags)
	if err != nil {
		return err
	}
	if result.Outcome == Unchanged {
		return nil
	}
	game.emit(Event{Kind: EventCellsRevealed, Cells: result.Revealed})

	switch {
	case result.Outcome == HitMine:
		game.lose(c)
	case game.board.NumRevealed()+game.board.numMines == game.board.NumCells():
		game.win()
	}
	return nil
}

func (game *Game) startGame(safe Coord) error {
	var err error
	if game.layout != nil {
		err = game.board.Place(game.layout)
	} else {
		err = game.board.Generate(safe)
	}
	if err != nil {
		return err
	}

	if game.flags.Len() > 0 {
		game.flags.Clear()
		game.emit(Event{Kind: EventFlagCountChanged, FlagsRemaining: game.FlagsRemaining()})
	}

	game.phase = InProgress
	game.timer = 0

	log.WithFields(logrus.Fields{
		"size":  game.board.size,
		"mines": game.board.numMines,
		"first": safe,
	}).Info("game started")
	return nil
}

func (game *Game) win() {
	game.phase = Won

	highScore := game.recordScore(game.timer)
	log.WithFields(logrus.Fields{
		"time":      game.timer,
		"highScore": highScore,
	}).Info("game won")

	game.emit(Event{
		Kind:      EventWon,
		Time:      game.timer,
		HighScore: highScore,
		Snapshot:  game.board.Snapshot(),
	})
	game.endGame()
}

func (game *Game) lose(mine Coord) {
	game.phase = Lost

	log.WithFields(logrus.Fields{
		"time": game.timer,
		"mine": mine,
	}).Info("game lost")

	game.emit(Event{
		Kind:     EventLost,
		Time:     game.timer,
		Snapshot: game.board.Snapshot(),
	})
	game.endGame()
}

func (game *Game) endGame() {
	if game.config.AutoReset {
		game.Reset()
	}
}

// recordScore appends a win time to the score log, returning the resulting
// high score
func (game *Game) recordScore(seconds int) int {
	if err := game.scoreLog.Append(seconds); err != nil {
		log.WithError(err).Warn("could not record score; high score unknown")
		game.historyKnown = false
		return NoHighScore
	}
	game.history = append(game.history, seconds)
	return game.HighScore()
}

// Flag toggles the flag on a hidden cell. Adding flags beyond the number of
// mines is silently refused.
func (game *Game) Flag(c Coord) error {
	if err := game.board.checkBounds(c); err != nil {
		return err
	}
	if !game.canPlay() || game.board.IsRevealed(c) {
		return nil
	}

	if game.flags.Contains(c) || game.flags.Len() < game.board.numMines {
		game.flags.Toggle(c)
	}

	game.emit(Event{Kind: EventFlagCountChanged, FlagsRemaining: game.FlagsRemaining()})
	return nil
}

// Reset abandons the current game. The score log is kept.
func (game *Game) Reset() {
	game.flags.Clear()
	game.board.Reset()
	game.phase = NotStarted
	game.timer = 0

	game.emit(Event{Kind: EventReset, FlagsRemaining: game.FlagsRemaining()})
}

// Tick advances the timer by one second while a game is in progress. It is
// meant to be called by an external scheduler.
func (game *Game) Tick() {
	if game.phase != InProgress {
		return
	}
	game.timer++
	game.emit(Event{Kind: EventTimerTick, Time: game.timer})
}
