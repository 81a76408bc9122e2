package random

import (
	"math/rand"

	"github.com/they4kman/gridsweep/game"
)

// Director clicks a random hidden, unflagged cell
type Director struct {
	rand *rand.Rand
}

func New(seed int64) *Director {
	return &Director{rand: rand.New(rand.NewSource(seed))}
}

func (director *Director) Act(g *game.Game) (game.CellAction, bool) {
	view := g.View()

	var unrevealedCells []game.Coord
	for y, row := range view.Cells {
		for x, state := range row {
			if state == game.Unrevealed {
				unrevealedCells = append(unrevealedCells, game.Coord{X: x, Y: y})
			}
		}
	}

	if len(unrevealedCells) == 0 {
		return game.CellAction{}, false
	}
	return unrevealedCells[director.rand.Intn(len(unrevealedCells))].Click(), true
}
