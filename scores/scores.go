// Package scores persists win times as an append-only text log, one decimal
// number of seconds per line, in completion order.
package scores

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
)

const scoresFile = "gridsweep/scores.txt"

// ErrCorrupt is the cause of a PersistenceError for a line that is not a
// non-negative integer
var ErrCorrupt = errors.New("corrupt score log")

type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("score log %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Cause() error {
	return e.Err
}

// DefaultPath returns the score log location under the XDG data directory,
// creating parent directories as needed
func DefaultPath() (string, error) {
	path, err := xdg.DataFile(scoresFile)
	if err != nil {
		return "", errors.Wrap(err, "locating score log")
	}
	return path, nil
}

// FileLog is a score log stored in a text file
type FileLog struct {
	Path string
}

func NewFileLog(path string) *FileLog {
	return &FileLog{Path: path}
}

// Append writes one score line in a single write, and syncs it to disk
func (l *FileLog) Append(seconds int) error {
	file, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &PersistenceError{"append", l.Path, err}
	}
	defer file.Close()

	if _, err := file.WriteString(strconv.Itoa(seconds) + "\n"); err != nil {
		return &PersistenceError{"append", l.Path, err}
	}
	if err := file.Sync(); err != nil {
		return &PersistenceError{"append", l.Path, err}
	}
	return nil
}

// Scores reads every recorded score. A missing file is an empty log.
func (l *FileLog) Scores() ([]int, error) {
	file, err := os.Open(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &PersistenceError{"read", l.Path, err}
	}
	defer file.Close()

	var scores []int
	scanner := bufio.NewScanner(file)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		score, err := strconv.Atoi(line)
		if err != nil || score < 0 {
			return nil, &PersistenceError{"read", l.Path, errors.Wrapf(ErrCorrupt, "line %d: %q", lineNum, line)}
		}
		scores = append(scores, score)
	}
	if err := scanner.Err(); err != nil {
		return nil, &PersistenceError{"read", l.Path, err}
	}
	return scores, nil
}

// MemoryLog keeps scores for the lifetime of the process only
type MemoryLog struct {
	scores []int
}

func NewMemoryLog(scores ...int) *MemoryLog {
	return &MemoryLog{scores: append([]int(nil), scores...)}
}

func (l *MemoryLog) Append(seconds int) error {
	l.scores = append(l.scores, seconds)
	return nil
}

func (l *MemoryLog) Scores() ([]int, error) {
	return append([]int(nil), l.scores...), nil
}

// HighScore returns the fastest time, and false for an empty log
func HighScore(scores []int) (int, bool) {
	if len(scores) == 0 {
		return 0, false
	}
	best := scores[0]
	for _, score := range scores[1:] {
		if score < best {
			best = score
		}
	}
	return best, true
}
