package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/they4kman/gridsweep/game"
)

func formatHighScore(highScore int) string {
	if highScore == game.NoHighScore {
		return "-"
	}
	return fmt.Sprintf("%ds", highScore)
}

func render(w io.Writer, view game.View) {
	fmt.Fprintf(w, "Flags left: %d  Time: %d  High score: %s  [%v]\n",
		view.FlagsRemaining, view.Timer, formatHighScore(view.HighScore), view.Phase)

	var header strings.Builder
	header.WriteString("    ")
	for x := 0; x < view.Size; x++ {
		fmt.Fprintf(&header, "%3d", x)
	}
	fmt.Fprintln(w, header.String())

	for y, row := range view.Cells {
		var line strings.Builder
		fmt.Fprintf(&line, "%3d ", y)
		for _, state := range row {
			fmt.Fprintf(&line, "%3s", state)
		}
		fmt.Fprintln(w, line.String())
	}
}

func report(w io.Writer, event game.Event) {
	switch event.Kind {
	case game.EventWon:
		fmt.Fprintf(w, "You won in %ds! High score: %s\n", event.Time, formatHighScore(event.HighScore))
	case game.EventLost:
		fmt.Fprintln(w, "You clicked on a mine! Game over.")
	}
}
