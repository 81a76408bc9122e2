package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/gridsweep/game"
)

const (
	tickInterval     = time.Second
	directorInterval = 500 * time.Millisecond
)

const helpText = `Commands:
  r X Y    reveal the cell at column X, row Y
  f X Y    toggle a flag on the cell
  reset    start over
  quit     leave the game`

// play runs the event loop. Input lines, timer ticks and director moves are
// all handled on this goroutine, one at a time.
func play(cmd *cobra.Command, settings Settings) error {
	config, err := settings.gameConfig(openScoreLog(settings.ScoresFile))
	if err != nil {
		return err
	}
	g, err := game.NewGame(config)
	if err != nil {
		return err
	}
	director, err := newDirector(settings.Director, settings.Seed)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	g.Subscribe(func(event game.Event) {
		report(out, event)
		if event.Kind == game.EventWon || event.Kind == game.EventLost {
			saveReplay(settings.ReplaysDir, event, time.Now())
		}
	})

	lines := readLines(cmd.InOrStdin())

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	var directorTick <-chan time.Time
	if director != nil {
		directorTicker := time.NewTicker(directorInterval)
		defer directorTicker.Stop()
		directorTick = directorTicker.C
	}

	fmt.Fprintln(out, helpText)
	render(out, g.View())

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				// Keep watching the director play after input ends
				if director == nil {
					return nil
				}
				lines = nil
				continue
			}
			quit, err := handleCommand(g, line)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if quit {
				return nil
			}
			render(out, g.View())

		case <-ticker.C:
			g.Tick()

		case <-directorTick:
			acted, err := g.Direct(director)
			if err != nil {
				logrus.WithError(err).Warn("director move rejected")
			}
			if acted {
				render(out, g.View())
			}
		}
	}
}

func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

// handleCommand applies one line of input, returning whether to quit
func handleCommand(g *game.Game, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "q", "quit", "exit":
		return true, nil
	case "reset":
		g.Reset()
		return false, nil
	case "r", "reveal", "f", "flag":
		c, err := parseCoord(fields[1:])
		if err != nil {
			return false, err
		}
		if fields[0][0] == 'r' {
			return false, g.Reveal(c)
		}
		return false, g.Flag(c)
	default:
		return false, fmt.Errorf("unknown command %q\n%s", fields[0], helpText)
	}
}

func parseCoord(args []string) (game.Coord, error) {
	if len(args) != 2 {
		return game.Coord{}, fmt.Errorf("expected X and Y, got %d values", len(args))
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return game.Coord{}, fmt.Errorf("invalid X %q", args[0])
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return game.Coord{}, fmt.Errorf("invalid Y %q", args[1])
	}
	return game.Coord{X: x, Y: y}, nil
}
