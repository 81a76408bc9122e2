package game

type EventKind int

const (
	EventCellsRevealed EventKind = iota
	EventFlagCountChanged
	EventTimerTick
	EventWon
	EventLost
	EventReset
)

func (kind EventKind) String() string {
	switch kind {
	case EventCellsRevealed:
		return "cells revealed"
	case EventFlagCountChanged:
		return "flag count changed"
	case EventTimerTick:
		return "timer tick"
	case EventWon:
		return "won"
	case EventLost:
		return "lost"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is a fact emitted by a Game for the presentation layer. Only the
// fields relevant to Kind are set.
type Event struct {
	Kind EventKind

	// EventCellsRevealed
	Cells []Coord
	// EventFlagCountChanged
	FlagsRemaining int
	// EventTimerTick, EventWon, EventLost
	Time int
	// EventWon; NoHighScore if the score log is unavailable
	HighScore int
	// EventWon, EventLost
	Snapshot *BoardSnapshot
}

type Listener func(Event)

// Subscribe registers a listener. Listeners are called synchronously, in
// the order they subscribed, before the emitting operation returns.
func (game *Game) Subscribe(listener Listener) {
	game.listeners = append(game.listeners, listener)
}

func (game *Game) emit(event Event) {
	for _, listener := range game.listeners {
		listener(event)
	}
}
