package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/they4kman/gridsweep/scores"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "List recorded win times and the high score",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := resolveSettings(cmd)
		if err != nil {
			return err
		}

		logged, err := openScoreLog(settings.ScoresFile).Scores()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, score := range logged {
			fmt.Fprintf(out, "%3d. %ds\n", i+1, score)
		}
		if best, ok := scores.HighScore(logged); ok {
			fmt.Fprintf(out, "High score: %ds\n", best)
		} else {
			fmt.Fprintln(out, "No games won yet")
		}
		return nil
	},
}
