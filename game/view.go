package game

// View is a render snapshot of a game, detached from its state
type View struct {
	Size           int
	Phase          Phase
	Timer          int
	FlagsRemaining int
	HighScore      int

	// Indexed [y][x]
	Cells [][]CellState
}

func (view View) At(c Coord) CellState {
	return view.Cells[c.Y][c.X]
}

func (view View) InBounds(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < view.Size && c.Y < view.Size
}

func (game *Game) View() View {
	board := game.board
	view := View{
		Size:           board.size,
		Phase:          game.phase,
		Timer:          game.timer,
		FlagsRemaining: game.FlagsRemaining(),
		HighScore:      game.HighScore(),
		Cells:          make([][]CellState, board.size),
	}

	for y := 0; y < board.size; y++ {
		row := make([]CellState, board.size)
		for x := 0; x < board.size; x++ {
			row[x] = game.cellState(Coord{x, y})
		}
		view.Cells[y] = row
	}
	return view
}

func (game *Game) cellState(c Coord) CellState {
	switch {
	case game.board.IsRevealed(c):
		cell := game.board.cellAt(c)
		if cell.IsMine() {
			return Mine
		}
		return CellState(cell.Number())
	case game.flags.Contains(c):
		return Flag
	default:
		return Unrevealed
	}
}

func (state CellState) String() string {
	switch {
	case state == Unrevealed:
		return "#"
	case state == Empty:
		return "."
	case state >= Number1 && state <= Number8:
		return string(rune('0' + int(state)))
	case state == Flag:
		return "F"
	case state == Mine:
		return "*"
	default:
		return "?"
	}
}
