package constraint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/they4kman/gridsweep/director/random"
	"github.com/they4kman/gridsweep/game"
	"github.com/they4kman/gridsweep/util/collections"
)

// Director plays moves that are certain from the revealed numbers, guesses
// the cell least likely to be a mine when stuck, and clicks randomly when
// nothing is known.
//
// Each revealed number yields an observation: numMines mines among its
// hidden, unflagged neighbors. An observation is certain when
//   - numMines == 0: every cell is safe
//   - numMines == len(cells): every cell is a mine
type Director struct {
	fallback *random.Director
}

func New(seed int64) *Director {
	return &Director{fallback: random.New(seed)}
}

type observation struct {
	origin   game.Coord
	numMines int
	cells    collections.Set[game.Coord]
}

func (obs observation) String() string {
	var cellsRepr strings.Builder
	for i, cell := range sortedCells(obs.cells) {
		if i > 0 {
			cellsRepr.WriteString(", ")
		}
		cellsRepr.WriteString(cell.String())
	}
	return fmt.Sprintf("Obs[%v, %d ε %s]", obs.origin, obs.numMines, cellsRepr.String())
}

func (obs observation) mineProbability() float64 {
	return float64(obs.numMines) / float64(obs.cells.Len())
}

type actor func(view game.View, observations []observation) (game.CellAction, bool)

func (director *Director) Act(g *game.Game) (game.CellAction, bool) {
	view := g.View()
	observations := observeAll(view)

	actors := []actor{
		actDeliberate,
		actSubsets,
		actLowestProbability,
	}
	for _, act := range actors {
		if action, ok := act(view, observations); ok {
			return action, true
		}
	}
	return director.fallback.Act(g)
}

// observeAll collects an observation from every revealed number with
// hidden neighbors, in row-major order
func observeAll(view game.View) []observation {
	var observations []observation
	for y := 0; y < view.Size; y++ {
		for x := 0; x < view.Size; x++ {
			if obs, ok := observe(view, game.Coord{X: x, Y: y}); ok {
				observations = append(observations, obs)
			}
		}
	}
	return observations
}

func observe(view game.View, origin game.Coord) (observation, bool) {
	state := view.At(origin)
	if state < game.Number1 || state > game.Number8 {
		return observation{}, false
	}

	obs := observation{
		origin:   origin,
		numMines: int(state),
		cells:    make(collections.Set[game.Coord]),
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			neighbor := game.Coord{X: origin.X + dx, Y: origin.Y + dy}
			if neighbor == origin || !view.InBounds(neighbor) {
				continue
			}
			switch view.At(neighbor) {
			case game.Flag:
				obs.numMines--
			case game.Unrevealed:
				obs.cells.Add(neighbor)
			}
		}
	}
	return obs, obs.cells.Len() > 0 && obs.numMines >= 0
}

// certainAction returns a move if the observation leaves no doubt
func certainAction(view game.View, obs observation) (game.CellAction, bool) {
	if obs.cells.Len() == 0 {
		return game.CellAction{}, false
	}
	switch {
	case obs.numMines == 0:
		return sortedCells(obs.cells)[0].Click(), true
	case obs.numMines == obs.cells.Len() && view.FlagsRemaining > 0:
		return sortedCells(obs.cells)[0].RightClick(), true
	}
	return game.CellAction{}, false
}

func actDeliberate(view game.View, observations []observation) (game.CellAction, bool) {
	for _, obs := range observations {
		if action, ok := certainAction(view, obs); ok {
			return action, true
		}
	}
	return game.CellAction{}, false
}

// actSubsets splits observations that contain another: if A's cells are a
// strict subset of B's, then B's remaining cells hold B.numMines-A.numMines
// mines
func actSubsets(view game.View, observations []observation) (game.CellAction, bool) {
	for i, subset := range observations {
		for j, superset := range observations {
			if i == j || subset.cells.Len() >= superset.cells.Len() {
				continue
			}
			if subset.cells.Difference(superset.cells).Len() > 0 {
				continue
			}

			split := observation{
				origin:   superset.origin,
				numMines: superset.numMines - subset.numMines,
				cells:    superset.cells.Difference(subset.cells),
			}
			if action, ok := certainAction(view, split); ok {
				return action, true
			}
		}
	}
	return game.CellAction{}, false
}

// actLowestProbability clicks the cell with the smallest mine probability
// of any observation it belongs to
func actLowestProbability(view game.View, observations []observation) (game.CellAction, bool) {
	cellProbabilities := make(map[game.Coord]float64)
	for _, obs := range observations {
		probability := obs.mineProbability()
		for cell := range obs.cells {
			if pastProbability, ok := cellProbabilities[cell]; !ok || probability < pastProbability {
				cellProbabilities[cell] = probability
			}
		}
	}

	var (
		best      game.Coord
		bestFound bool
		lowest    float64
	)
	for y := 0; y < view.Size; y++ {
		for x := 0; x < view.Size; x++ {
			cell := game.Coord{X: x, Y: y}
			probability, ok := cellProbabilities[cell]
			if ok && (!bestFound || probability < lowest) {
				best, lowest, bestFound = cell, probability, true
			}
		}
	}

	if !bestFound {
		return game.CellAction{}, false
	}
	return best.Click(), true
}

// sortedCells orders cells row-major, so that moves are deterministic
func sortedCells(cells collections.Set[game.Coord]) []game.Coord {
	sorted := make([]game.Coord, 0, cells.Len())
	for cell := range cells {
		sorted = append(sorted, cell)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})
	return sorted
}
