package cmd

import (
	"os"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/they4kman/gridsweep/game"
	"gopkg.in/yaml.v2"
)

var cfgFile = "gridsweep/config.yaml"

// Settings are the options read from the config file and the command line.
// Flags set explicitly take precedence over the file.
type Settings struct {
	Size       int    `yaml:"size"`
	Mines      int    `yaml:"mines"`
	Seed       int64  `yaml:"seed"`
	ScoresFile string `yaml:"scores_file"`
	ReplaysDir string `yaml:"replays_dir"`
	BoardFile  string `yaml:"board_file"`
	LogLevel   string `yaml:"log_level"`
	Director   string `yaml:"director"`
	Verbose    bool   `yaml:"verbose"`
}

func DefaultSettings() Settings {
	return Settings{
		Size:     game.DefaultSize,
		Mines:    game.DefaultNumMines,
		LogLevel: logrus.WarnLevel.String(),
	}
}

// LoadSettings reads the config file at path, or searches the XDG config
// directories when path is empty. A missing default file yields defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	if path == "" {
		found, err := xdg.SearchConfigFile(cfgFile)
		if err != nil {
			return settings, nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, errors.Wrap(err, "reading config")
	}
	if err := yaml.UnmarshalStrict(data, &settings); err != nil {
		return settings, errors.Wrapf(err, "parsing config %s", path)
	}
	return settings, nil
}

// merge overrides file settings with every flag the user set
func (settings Settings) merge(flags *pflag.FlagSet, fromFlags Settings) Settings {
	if flags.Changed("size") {
		settings.Size = fromFlags.Size
	}
	if flags.Changed("mines") {
		settings.Mines = fromFlags.Mines
	}
	if flags.Changed("seed") {
		settings.Seed = fromFlags.Seed
	}
	if flags.Changed("scores") {
		settings.ScoresFile = fromFlags.ScoresFile
	}
	if flags.Changed("replays") {
		settings.ReplaysDir = fromFlags.ReplaysDir
	}
	if flags.Changed("board") {
		settings.BoardFile = fromFlags.BoardFile
	}
	if flags.Changed("director") {
		settings.Director = fromFlags.Director
	}
	if flags.Changed("verbose") {
		settings.Verbose = fromFlags.Verbose
	}
	if settings.Verbose {
		settings.LogLevel = logrus.DebugLevel.String()
	}
	return settings
}

func (settings Settings) gameConfig(scoreLog game.ScoreLog) (game.GameConfig, error) {
	config := game.NewGameConfig()
	config.Size = settings.Size
	config.NumMines = settings.Mines
	config.Seed = settings.Seed
	config.ScoreLog = scoreLog

	if settings.BoardFile != "" {
		data, err := os.ReadFile(settings.BoardFile)
		if err != nil {
			return config, errors.Wrap(err, "reading board")
		}
		snapshot, err := game.LoadSnapshot(string(data))
		if err != nil {
			return config, errors.Wrapf(err, "parsing board %s", settings.BoardFile)
		}
		config.Layout = snapshot
	}

	return config, nil
}
