package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/gridsweep/game"
)

// saveReplay writes the snapshot of a finished game into dir
func saveReplay(dir string, event game.Event, t time.Time) {
	if dir == "" || event.Snapshot == nil {
		return
	}
	log := logrus.WithField("dir", dir)

	stat, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0777); err != nil {
				log.WithError(err).Warn("could not create replays directory")
				return
			}
		} else {
			log.WithError(err).Warn("could not save replay")
			return
		}
	} else if !stat.Mode().IsDir() {
		log.Warn("not a directory; cannot save replays to it")
		return
	}

	path := filepath.Join(dir, replayFilename(event.Kind, t))

	serialized, err := event.Snapshot.Serialize()
	if err != nil {
		log.WithError(err).Warn("could not serialize replay")
		return
	}
	// Never overwrite an earlier replay
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		log.WithError(err).Warn("could not save replay")
		return
	}
	defer file.Close()

	if _, err := file.WriteString(serialized); err != nil {
		log.WithError(err).Warn("could not save replay")
		return
	}
	log.WithField("path", path).Debug("saved replay")
}

func replayFilename(kind game.EventKind, t time.Time) string {
	filenameBuilder := strings.Builder{}

	filenameBuilder.WriteString(t.Format("20060102_150405_"))

	var stateStr string
	switch kind {
	case game.EventWon:
		stateStr = "win"
	case game.EventLost:
		stateStr = "loss"
	default:
		stateStr = "other"
	}
	filenameBuilder.WriteString(stateStr)

	filenameBuilder.WriteString(".yaml")

	return filenameBuilder.String()
}
