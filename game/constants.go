package game

// CellState is how a single cell is presented to the player. A revealed
// number n has state CellState(n).
type CellState int

// Phase is the coarse state of a game
type Phase int

const (
	Unrevealed CellState = iota - 1
	Empty
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
	Flag
	Mine
)

const (
	NotStarted Phase = iota
	InProgress
	Won
	Lost
)

func (phase Phase) String() string {
	switch phase {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

const (
	DefaultSize     = 20
	DefaultNumMines = 100

	// Cells in the safe zone around the first reveal, when not at a border
	maxSafeZone = 9

	// Generation retries before giving up on a (size, mines) combination
	maxGenerateAttempts = 100

	// NoHighScore is reported when no win was recorded, or the score log
	// could not be read
	NoHighScore = -1
)
