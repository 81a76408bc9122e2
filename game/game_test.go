package game

import (
	"errors"
	"testing"

	"github.com/they4kman/gridsweep/scores"
)

type recorder struct {
	events []Event
}

func (r *recorder) listen(event Event) {
	r.events = append(r.events, event)
}

func (r *recorder) kinds() []EventKind {
	kinds := make([]EventKind, len(r.events))
	for i, event := range r.events {
		kinds[i] = event.Kind
	}
	return kinds
}

func (r *recorder) last(kind EventKind) (Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i], true
		}
	}
	return Event{}, false
}

type failingLog struct {
	readErr, appendErr error
}

func (l *failingLog) Append(int) error {
	return l.appendErr
}

func (l *failingLog) Scores() ([]int, error) {
	return nil, l.readErr
}

func layoutGame(t *testing.T, board string, autoReset bool, scoreLog ScoreLog) (*Game, *recorder) {
	t.Helper()
	config := NewGameConfig()
	config.Layout = &BoardSnapshot{SerializedBoard: board}
	config.AutoReset = autoReset
	config.ScoreLog = scoreLog

	game, err := NewGame(config)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	rec := &recorder{}
	game.Subscribe(rec.listen)
	return game, rec
}

func randomGame(t *testing.T, size, numMines int, seed int64) *Game {
	t.Helper()
	config := NewGameConfig()
	config.Size, config.NumMines, config.Seed = size, numMines, seed
	config.AutoReset = false

	game, err := NewGame(config)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return game
}

func mustReveal(t *testing.T, game *Game, cells ...Coord) {
	t.Helper()
	for _, c := range cells {
		if err := game.Reveal(c); err != nil {
			t.Fatalf("Reveal(%v): %v", c, err)
		}
	}
}

const (
	// Mine in the bottom-right corner: the first reveal anywhere else in the
	// zero region opens the whole board
	cornerMine = "...\n...\n..*"
	// Mine in the middle: every other cell is a 1
	centerMine = "...\n.*.\n..."
)

var centerRing = []Coord{{1, 0}, {2, 0}, {0, 1}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}

func TestWinOnFirstReveal(t *testing.T) {
	scoreLog := scores.NewMemoryLog()
	game, rec := layoutGame(t, cornerMine, false, scoreLog)

	mustReveal(t, game, Coord{0, 0})

	if game.Phase() != Won {
		t.Fatalf("Phase = %v, want won", game.Phase())
	}
	logged, _ := scoreLog.Scores()
	if len(logged) != 1 || logged[0] != 0 {
		t.Errorf("score log = %v, want [0]", logged)
	}
	if revealed, _ := rec.last(EventCellsRevealed); len(revealed.Cells) != 8 {
		t.Errorf("revealed %d cells, want 8", len(revealed.Cells))
	}
}

func TestWinRecordsTimeAndHighScore(t *testing.T) {
	scoreLog := scores.NewMemoryLog(120, 95, 200)
	game, rec := layoutGame(t, centerMine, false, scoreLog)

	mustReveal(t, game, Coord{0, 0})
	if game.Phase() != InProgress {
		t.Fatalf("Phase = %v, want in progress", game.Phase())
	}
	for i := 0; i < 42; i++ {
		game.Tick()
	}
	mustReveal(t, game, centerRing...)

	if game.Phase() != Won {
		t.Fatalf("Phase = %v, want won", game.Phase())
	}
	won, ok := rec.last(EventWon)
	if !ok {
		t.Fatal("no won event")
	}
	if won.Time != 42 || won.HighScore != 42 {
		t.Errorf("won event time %d, high score %d; want 42, 42", won.Time, won.HighScore)
	}
	if won.Snapshot == nil || won.Snapshot.SerializedBoard != centerMine {
		t.Errorf("won snapshot = %+v, want the played layout", won.Snapshot)
	}

	logged, _ := scoreLog.Scores()
	if len(logged) != 4 || logged[3] != 42 {
		t.Errorf("score log = %v, want 42 appended", logged)
	}

	// The timer stops once the game is over
	game.Tick()
	if game.Timer() != 42 {
		t.Errorf("Timer after win = %d, want 42", game.Timer())
	}
}

func TestSlowWinKeepsHighScore(t *testing.T) {
	game, rec := layoutGame(t, centerMine, false, scores.NewMemoryLog(5))

	mustReveal(t, game, Coord{0, 0})
	for i := 0; i < 9; i++ {
		game.Tick()
	}
	mustReveal(t, game, centerRing...)

	won, _ := rec.last(EventWon)
	if won.Time != 9 || won.HighScore != 5 {
		t.Errorf("won event time %d, high score %d; want 9, 5", won.Time, won.HighScore)
	}
}

func TestLossDoesNotRecordScore(t *testing.T) {
	scoreLog := scores.NewMemoryLog()
	game, rec := layoutGame(t, centerMine, false, scoreLog)

	mustReveal(t, game, Coord{0, 0}, Coord{1, 1})

	if game.Phase() != Lost {
		t.Fatalf("Phase = %v, want lost", game.Phase())
	}
	if _, ok := rec.last(EventLost); !ok {
		t.Error("no lost event")
	}
	if logged, _ := scoreLog.Scores(); len(logged) != 0 {
		t.Errorf("score log = %v, want empty", logged)
	}

	// No further play until reset
	mustReveal(t, game, Coord{2, 2})
	if game.Board().IsRevealed(Coord{2, 2}) {
		t.Error("reveal after loss changed the board")
	}
	if err := game.Flag(Coord{2, 2}); err != nil || game.IsFlagged(Coord{2, 2}) {
		t.Error("flag after loss changed the game")
	}
}

func TestAutoResetAfterLoss(t *testing.T) {
	game, rec := layoutGame(t, centerMine, true, nil)

	mustReveal(t, game, Coord{0, 0}, Coord{1, 1})

	if game.Phase() != NotStarted {
		t.Fatalf("Phase = %v, want not started after auto reset", game.Phase())
	}
	kinds := rec.kinds()
	if len(kinds) < 2 || kinds[len(kinds)-2] != EventLost || kinds[len(kinds)-1] != EventReset {
		t.Errorf("events = %v, want lost followed by reset", kinds)
	}
	if game.Board().NumRevealed() != 0 {
		t.Errorf("NumRevealed = %d after reset, want 0", game.Board().NumRevealed())
	}
}

func TestAutoResetAfterWin(t *testing.T) {
	game, rec := layoutGame(t, cornerMine, true, nil)

	mustReveal(t, game, Coord{0, 0})

	if game.Phase() != NotStarted {
		t.Fatalf("Phase = %v, want not started", game.Phase())
	}
	if _, ok := rec.last(EventWon); !ok {
		t.Error("no won event")
	}
	if game.HighScore() != 0 {
		t.Errorf("HighScore = %d, want 0", game.HighScore())
	}
}

func TestFlagCap(t *testing.T) {
	game := randomGame(t, 5, 3, 1)
	rec := &recorder{}
	game.Subscribe(rec.listen)

	for x := 0; x < 5; x++ {
		if err := game.Flag(Coord{x, 0}); err != nil {
			t.Fatalf("Flag: %v", err)
		}
	}

	if game.FlagsRemaining() != 0 {
		t.Errorf("FlagsRemaining = %d, want 0", game.FlagsRemaining())
	}
	if game.IsFlagged(Coord{3, 0}) || game.IsFlagged(Coord{4, 0}) {
		t.Error("flags beyond the mine count were accepted")
	}
	if len(rec.events) != 5 {
		t.Errorf("got %d events, want a flag count event per attempt", len(rec.events))
	}
	if last, _ := rec.last(EventFlagCountChanged); last.FlagsRemaining != 0 {
		t.Errorf("last FlagsRemaining = %d, want 0", last.FlagsRemaining)
	}

	// Removing one frees a slot
	game.Flag(Coord{0, 0})
	game.Flag(Coord{4, 0})
	if !game.IsFlagged(Coord{4, 0}) || game.IsFlagged(Coord{0, 0}) {
		t.Error("toggling flags did not free a slot")
	}
}

func TestFlagAndRevealInteraction(t *testing.T) {
	game, _ := layoutGame(t, centerMine, false, nil)
	mustReveal(t, game, Coord{0, 0})

	// Flagging a revealed cell is a no-op
	game.Flag(Coord{0, 0})
	if game.IsFlagged(Coord{0, 0}) {
		t.Error("revealed cell was flagged")
	}

	// Revealing a flagged cell is a no-op
	game.Flag(Coord{2, 2})
	mustReveal(t, game, Coord{2, 2})
	if game.Board().IsRevealed(Coord{2, 2}) {
		t.Error("flagged cell was revealed")
	}

	view := game.View()
	if view.At(Coord{0, 0}) != Number1 || view.At(Coord{2, 2}) != Flag || view.At(Coord{1, 1}) != Unrevealed {
		t.Errorf("view cells = %v", view.Cells)
	}
	if view.FlagsRemaining != 0 || view.Phase != InProgress {
		t.Errorf("view = %+v", view)
	}
}

func TestFirstRevealClearsFlags(t *testing.T) {
	game, rec := layoutGame(t, centerMine, false, nil)

	game.Flag(Coord{2, 2})
	mustReveal(t, game, Coord{0, 0})

	if game.IsFlagged(Coord{2, 2}) {
		t.Error("flag survived board generation")
	}
	if event, _ := rec.last(EventFlagCountChanged); event.FlagsRemaining != 1 {
		t.Errorf("FlagsRemaining = %d, want 1", event.FlagsRemaining)
	}
}

func TestTick(t *testing.T) {
	game, rec := layoutGame(t, centerMine, false, nil)

	game.Tick()
	if game.Timer() != 0 || len(rec.events) != 0 {
		t.Fatal("Tick before the first reveal should do nothing")
	}

	mustReveal(t, game, Coord{0, 0})
	game.Tick()
	game.Tick()

	tick, _ := rec.last(EventTimerTick)
	if game.Timer() != 2 || tick.Time != 2 {
		t.Errorf("Timer = %d, last tick = %d; want 2", game.Timer(), tick.Time)
	}
}

func TestResetRegeneratesBoard(t *testing.T) {
	game := randomGame(t, 12, 40, 99)

	mustReveal(t, game, Coord{0, 0})
	firstMines := game.Board().MinePositions()
	game.Flag(Coord{11, 0})

	game.Reset()
	if game.Phase() != NotStarted || game.Timer() != 0 || game.FlagsRemaining() != 40 {
		t.Fatalf("after Reset: phase %v, timer %d, flags remaining %d", game.Phase(), game.Timer(), game.FlagsRemaining())
	}

	safe := Coord{11, 11}
	mustReveal(t, game, safe)
	board := game.Board()
	for c := range board.safeZone(safe) {
		if board.cellAt(c).IsMine() {
			t.Fatalf("mine at %v in the new safe zone", c)
		}
	}

	secondMines := board.MinePositions()
	same := len(firstMines) == len(secondMines)
	for i := 0; same && i < len(firstMines); i++ {
		same = firstMines[i] == secondMines[i]
	}
	if same {
		t.Error("regenerated board has the same mines")
	}
}

func TestResetKeepsScores(t *testing.T) {
	game, _ := layoutGame(t, cornerMine, false, scores.NewMemoryLog(30))
	mustReveal(t, game, Coord{0, 0})
	game.Reset()

	if game.HighScore() != 0 {
		t.Errorf("HighScore after reset = %d, want 0", game.HighScore())
	}
}

func TestHighScore(t *testing.T) {
	game, _ := layoutGame(t, cornerMine, false, scores.NewMemoryLog(120, 95, 200))
	if game.HighScore() != 95 {
		t.Errorf("HighScore = %d, want 95", game.HighScore())
	}

	empty, _ := layoutGame(t, cornerMine, false, nil)
	if empty.HighScore() != NoHighScore {
		t.Errorf("HighScore with no wins = %d, want NoHighScore", empty.HighScore())
	}
}

func TestUnwritableScoreLog(t *testing.T) {
	scoreLog := &failingLog{appendErr: errors.New("disk full")}
	game, rec := layoutGame(t, cornerMine, false, scoreLog)

	mustReveal(t, game, Coord{0, 0})

	if game.Phase() != Won {
		t.Fatalf("Phase = %v, want won", game.Phase())
	}
	won, ok := rec.last(EventWon)
	if !ok {
		t.Fatal("no won event")
	}
	if won.HighScore != NoHighScore {
		t.Errorf("HighScore = %d, want NoHighScore", won.HighScore)
	}
}

func TestUnreadableScoreLog(t *testing.T) {
	game, _ := layoutGame(t, cornerMine, false, &failingLog{readErr: errors.New("corrupt")})
	if game.HighScore() != NoHighScore {
		t.Errorf("HighScore = %d, want NoHighScore", game.HighScore())
	}
}

func TestInvalidCoordinates(t *testing.T) {
	game, rec := layoutGame(t, centerMine, false, nil)

	for _, c := range []Coord{{-1, 0}, {3, 0}, {0, 3}} {
		var coordErr *InvalidCoordinateError
		if err := game.Reveal(c); !errors.As(err, &coordErr) {
			t.Errorf("Reveal(%v) err = %v, want *InvalidCoordinateError", c, err)
		}
		if err := game.Flag(c); !errors.As(err, &coordErr) {
			t.Errorf("Flag(%v) err = %v, want *InvalidCoordinateError", c, err)
		}
	}

	if game.Phase() != NotStarted || len(rec.events) != 0 {
		t.Error("invalid input changed the game")
	}
}

func TestNewGameConfigurationError(t *testing.T) {
	config := NewGameConfig()
	config.Size, config.NumMines = 3, 1

	_, err := NewGame(config)
	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("err = %v, want *ConfigurationError", err)
	}
}

func TestApply(t *testing.T) {
	game, _ := layoutGame(t, centerMine, false, nil)

	if err := game.Apply(Coord{2, 2}.RightClick()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := game.Apply(Coord{0, 0}.Click()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if game.Phase() != InProgress || !game.Board().IsRevealed(Coord{0, 0}) {
		t.Error("click was not applied")
	}
}

func TestDefaultConfigBoardsDiffer(t *testing.T) {
	var layouts [2][]Coord
	for i := range layouts {
		game, err := NewGame(NewGameConfig())
		if err != nil {
			t.Fatalf("NewGame: %v", err)
		}
		mustReveal(t, game, Coord{0, 0})
		layouts[i] = game.Board().MinePositions()
	}

	same := len(layouts[0]) == len(layouts[1])
	for i := 0; same && i < len(layouts[0]); i++ {
		same = layouts[0][i] == layouts[1][i]
	}
	if same {
		t.Error("two games with the default config produced the same board")
	}
}

func TestSeedReproducesBoards(t *testing.T) {
	var layouts [2][]Coord
	for i := range layouts {
		game := randomGame(t, 10, 20, 1234)
		mustReveal(t, game, Coord{5, 5})
		layouts[i] = game.Board().MinePositions()
	}

	for i := range layouts[0] {
		if layouts[0][i] != layouts[1][i] {
			t.Fatalf("mine %d differs between games with the same seed: %v, %v", i, layouts[0][i], layouts[1][i])
		}
	}
}
