package game

import "fmt"

// ConfigurationError reports a board size or mine count that cannot produce
// a playable board
type ConfigurationError struct {
	Size, NumMines int
	Reason         string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration (size %d, mines %d): %s", e.Size, e.NumMines, e.Reason)
}

// InvalidCoordinateError reports input outside the board
type InvalidCoordinateError struct {
	Coord Coord
	Size  int
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("coordinate %v outside %dx%d board", e.Coord, e.Size, e.Size)
}
