package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/gridsweep/director/constraint"
	"github.com/they4kman/gridsweep/director/random"
	"github.com/they4kman/gridsweep/game"
	"github.com/they4kman/gridsweep/scores"
)

var (
	configPath string
	flagValues = DefaultSettings()
)

var rootCmd = &cobra.Command{
	Use:   "gridsweep",
	Short: "Play Minesweeper in the terminal",
	Long: `gridsweep is a Minesweeper game played by typing commands, or
driven by the computer.

Run with no arguments to play manually
	gridsweep

Use the director flag to make the computer play for you
	gridsweep --director constraint
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		return play(cmd, settings)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func resolveSettings(cmd *cobra.Command) (Settings, error) {
	fileSettings, err := LoadSettings(configPath)
	if err != nil {
		return fileSettings, err
	}
	settings := fileSettings.merge(cmd.Flags(), flagValues)

	level, err := logrus.ParseLevel(settings.LogLevel)
	if err != nil {
		return settings, err
	}
	logrus.SetLevel(level)

	if settings.Seed == 0 {
		settings.Seed = time.Now().UnixNano()
	}
	logrus.WithField("seed", settings.Seed).Debug("resolved settings")

	return settings, nil
}

// openScoreLog falls back to an in-memory log when no score file can be used
func openScoreLog(path string) game.ScoreLog {
	if path == "" {
		defaultPath, err := scores.DefaultPath()
		if err != nil {
			logrus.WithError(err).Warn("scores will not be saved")
			return scores.NewMemoryLog()
		}
		path = defaultPath
	}
	return scores.NewFileLog(path)
}

var directors = map[string]func(seed int64) game.Director{
	"random": func(seed int64) game.Director {
		return random.New(seed)
	},
	"constraint": func(seed int64) game.Director {
		return constraint.New(seed)
	},
}

func newDirector(name string, seed int64) (game.Director, error) {
	if name == "" {
		return nil, nil
	}
	if newFn, isValid := directors[name]; isValid {
		return newFn(seed), nil
	}
	return nil, fmt.Errorf("invalid director %q", name)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/"+cfgFile+")")
	rootCmd.PersistentFlags().StringVar(&flagValues.ScoresFile, "scores", "", "Score log file (default $XDG_DATA_HOME/gridsweep/scores.txt)")
	rootCmd.PersistentFlags().BoolVarP(&flagValues.Verbose, "verbose", "v", false, "Log debug output")

	rootCmd.Flags().IntVarP(&flagValues.Size, "size", "n", game.DefaultSize, "Width and height of the board, in cells")
	rootCmd.Flags().IntVarP(&flagValues.Mines, "mines", "m", game.DefaultNumMines, "Number of mines to place on the board")
	rootCmd.Flags().Int64Var(&flagValues.Seed, "seed", 0, "Random seed (default: time-based)")
	rootCmd.Flags().StringVar(&flagValues.ReplaysDir, "replays", "", "Directory where snapshots of finished games are saved")
	rootCmd.Flags().StringVar(&flagValues.BoardFile, "board", "", "YAML board snapshot to play instead of random boards")
	rootCmd.Flags().StringVarP(&flagValues.Director, "director", "d", "", `Make the computer play.
random: click random hidden cells
constraint: play certain moves, guessing only when stuck`)

	rootCmd.AddCommand(scoresCmd)
}
