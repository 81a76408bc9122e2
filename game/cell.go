package game

import "fmt"

// Cell is the immutable value of a grid cell: MineCell, or the number of
// adjacent mines (0..8)
type Cell int8

const MineCell Cell = -1

func (cell Cell) IsMine() bool {
	return cell == MineCell
}

// Number returns the count of adjacent mines, or -1 for a mine
func (cell Cell) Number() int {
	return int(cell)
}

func (cell Cell) String() string {
	if cell.IsMine() {
		return "*"
	}
	return fmt.Sprint(int(cell))
}

type Coord struct {
	X, Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

var neighborOffsets = [8]Coord{
	{-1, -1},
	{0, -1},
	{1, -1},
	{1, 0},
	{1, 1},
	{0, 1},
	{-1, 1},
	{-1, 0},
}

// CellAction is a single player input against a cell
type CellAction struct {
	Coord  Coord
	Action Action
}

type Action int

const (
	Click Action = iota
	RightClick
)

func (action Action) String() string {
	switch action {
	case Click:
		return "click"
	case RightClick:
		return "right-click"
	default:
		return "unknown"
	}
}

func (c Coord) Click() CellAction {
	return CellAction{Coord: c, Action: Click}
}

func (c Coord) RightClick() CellAction {
	return CellAction{Coord: c, Action: RightClick}
}
