package game

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/gridsweep/util/collections"
)

var log = logrus.WithField("component", "game")

// Board is the grid engine: it owns cell values and the set of revealed
// cells, and knows nothing about flags, phases or timing.
type Board struct {
	size     int // in number of cells, per side
	numMines int
	cells    []Cell // row-major

	revealed  collections.Set[Coord]
	generated bool

	rand *rand.Rand
}

type RevealOutcome int

const (
	Unchanged RevealOutcome = iota
	Opened
	HitMine
)

func (outcome RevealOutcome) String() string {
	switch outcome {
	case Unchanged:
		return "unchanged"
	case Opened:
		return "opened"
	case HitMine:
		return "hit mine"
	default:
		return "unknown"
	}
}

type RevealResult struct {
	Outcome RevealOutcome
	// Newly revealed coordinates, in the order they were uncovered
	Revealed []Coord
}

func NewBoard(size, numMines int, rng *rand.Rand) (*Board, error) {
	if err := validateConfig(size, numMines); err != nil {
		return nil, err
	}
	return newBoard(size, numMines, rng), nil
}

func newBoard(size, numMines int, rng *rand.Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Board{
		size:     size,
		numMines: numMines,
		cells:    make([]Cell, size*size),
		revealed: make(collections.Set[Coord]),
		rand:     rng,
	}
}

func validateConfig(size, numMines int) error {
	switch {
	case size <= 0:
		return &ConfigurationError{size, numMines, "size must be positive"}
	case numMines <= 0:
		return &ConfigurationError{size, numMines, "mine count must be positive"}
	case numMines > size*size-maxSafeZone:
		return &ConfigurationError{size, numMines, fmt.Sprintf("at most %d mines fit", size*size-maxSafeZone)}
	}
	return nil
}

func (board *Board) Size() int {
	return board.size
}

func (board *Board) NumMines() int {
	return board.numMines
}

func (board *Board) NumCells() int {
	return board.size * board.size
}

func (board *Board) NumRevealed() int {
	return board.revealed.Len()
}

// Generated reports whether mines have been placed since the last reset
func (board *Board) Generated() bool {
	return board.generated
}

func (board *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < board.size && c.Y < board.size
}

func (board *Board) checkBounds(c Coord) error {
	if !board.InBounds(c) {
		return &InvalidCoordinateError{Coord: c, Size: board.size}
	}
	return nil
}

func (board *Board) CellAt(c Coord) (Cell, error) {
	if err := board.checkBounds(c); err != nil {
		return 0, err
	}
	return board.cells[c.Y*board.size+c.X], nil
}

func (board *Board) cellAt(c Coord) Cell {
	return board.cells[c.Y*board.size+c.X]
}

func (board *Board) IsRevealed(c Coord) bool {
	return board.revealed.Contains(c)
}

// Neighbors returns the in-bounds king-move neighbors of c
func (board *Board) Neighbors(c Coord) []Coord {
	neighbors := make([]Coord, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		neighbor := Coord{c.X + offset.X, c.Y + offset.Y}
		if board.InBounds(neighbor) {
			neighbors = append(neighbors, neighbor)
		}
	}
	return neighbors
}

// safeZone returns c and its in-bounds neighbors
func (board *Board) safeZone(c Coord) collections.Set[Coord] {
	zone := collections.NewSet(board.Neighbors(c)...)
	zone.Add(c)
	return zone
}

// Generate places mines uniformly at random outside the safe zone around
// safe, and computes the numbers of all other cells.
func (board *Board) Generate(safe Coord) error {
	if err := board.checkBounds(safe); err != nil {
		return err
	}

	zone := board.safeZone(safe)
	candidates := make([]Coord, 0, board.NumCells()-zone.Len())
	for y := 0; y < board.size; y++ {
		for x := 0; x < board.size; x++ {
			if c := (Coord{x, y}); !zone.Contains(c) {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) < board.numMines {
		return &ConfigurationError{board.size, board.numMines, fmt.Sprintf("only %d cells outside the safe zone", len(candidates))}
	}

	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		board.rand.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		board.fillMines(candidates[:board.numMines])

		if board.cellAt(safe) == 0 {
			log.WithFields(logrus.Fields{
				"safe":     safe,
				"attempts": attempt,
			}).Debug("generated board")
			return nil
		}
	}

	board.generated = false
	return &ConfigurationError{board.size, board.numMines, "could not open a zero region at the first reveal"}
}

// Place loads a fixed mine layout, as read from a snapshot
func (board *Board) Place(mines []Coord) error {
	distinct := collections.NewSet(mines...)
	if distinct.Len() != len(mines) || len(mines) != board.numMines {
		return &ConfigurationError{board.size, board.numMines, fmt.Sprintf("layout has %d distinct mines", distinct.Len())}
	}
	for _, mine := range mines {
		if err := board.checkBounds(mine); err != nil {
			return err
		}
	}

	board.fillMines(mines)
	return nil
}

func (board *Board) fillMines(mines []Coord) {
	for i := range board.cells {
		board.cells[i] = 0
	}
	board.revealed.Clear()

	for _, mine := range mines {
		board.cells[mine.Y*board.size+mine.X] = MineCell
	}

	for _, mine := range mines {
		for _, neighbor := range board.Neighbors(mine) {
			if idx := neighbor.Y*board.size + neighbor.X; !board.cells[idx].IsMine() {
				board.cells[idx]++
			}
		}
	}

	board.generated = true
}

// Reset forgets the layout and all revealed cells
func (board *Board) Reset() {
	for i := range board.cells {
		board.cells[i] = 0
	}
	board.revealed.Clear()
	board.generated = false
}

// Reveal uncovers c. Revealed or flagged cells are left alone. Revealing a
// zero cell floods through the connected zero region and its numbered border,
// skipping flagged cells.
func (board *Board) Reveal(c Coord, flagged collections.Set[Coord]) (RevealResult, error) {
	if err := board.checkBounds(c); err != nil {
		return RevealResult{Outcome: Unchanged}, err
	}
	if board.revealed.Contains(c) || flagged.Contains(c) {
		return RevealResult{Outcome: Unchanged}, nil
	}

	result := RevealResult{Outcome: Opened}
	flood(
		c,
		func(coord Coord) bool {
			if board.revealed.Contains(coord) || flagged.Contains(coord) {
				return false
			}

			board.revealed.Add(coord)
			result.Revealed = append(result.Revealed, coord)

			cell := board.cellAt(coord)
			if cell.IsMine() {
				result.Outcome = HitMine
				return false
			}
			return cell == 0
		},
		board.Neighbors,
	)

	if len(result.Revealed) > 1 {
		log.WithFields(logrus.Fields{
			"origin": c,
			"cells":  len(result.Revealed),
		}).Debug("flooded empty region")
	}

	return result, nil
}

// MinePositions returns every mine, in row-major order
func (board *Board) MinePositions() []Coord {
	mines := make([]Coord, 0, board.numMines)
	for i, cell := range board.cells {
		if cell.IsMine() {
			mines = append(mines, Coord{i % board.size, i / board.size})
		}
	}
	return mines
}
