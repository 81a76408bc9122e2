package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	snapshotMine = '*'
	snapshotSafe = '.'
)

// BoardSnapshot is the serializable mine layout of a board, one row per line
type BoardSnapshot struct {
	SerializedBoard string `yaml:"board"`
}

func (snapshot *BoardSnapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Mines parses the layout, returning the board size and the mine positions
func (snapshot *BoardSnapshot) Mines() (int, []Coord, error) {
	rows := strings.Split(strings.TrimSpace(snapshot.SerializedBoard), "\n")
	size := len(rows)
	if size == 0 || len(rows[0]) == 0 {
		return 0, nil, &ConfigurationError{Reason: "empty board snapshot"}
	}

	var mines []Coord
	for y, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != size {
			return 0, nil, &ConfigurationError{Size: size, Reason: fmt.Sprintf("snapshot row %d has %d cells, want %d", y, len(row), size)}
		}
		for x, c := range row {
			switch c {
			case snapshotMine:
				mines = append(mines, Coord{x, y})
			case snapshotSafe:
			default:
				return 0, nil, &ConfigurationError{Size: size, Reason: fmt.Sprintf("unknown snapshot cell %q at %v", c, Coord{x, y})}
			}
		}
	}

	if len(mines) == 0 || len(mines) >= size*size {
		return 0, nil, &ConfigurationError{Size: size, NumMines: len(mines), Reason: "snapshot needs at least one mine and one safe cell"}
	}
	return size, mines, nil
}

func (board *Board) Snapshot() *BoardSnapshot {
	var rows strings.Builder
	for y := 0; y < board.size; y++ {
		if y > 0 {
			rows.WriteByte('\n')
		}
		for x := 0; x < board.size; x++ {
			if board.cellAt(Coord{x, y}).IsMine() {
				rows.WriteByte(snapshotMine)
			} else {
				rows.WriteByte(snapshotSafe)
			}
		}
	}
	return &BoardSnapshot{SerializedBoard: rows.String()}
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
