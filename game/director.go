package game

// Director computes moves for a game, so that the computer can play
type Director interface {
	// Act returns the next action to perform, or false if the director has
	// no move to make
	Act(game *Game) (CellAction, bool)
}

// Direct asks the director for a single action and applies it. It returns
// false when the director had nothing to do.
func (game *Game) Direct(director Director) (bool, error) {
	if game.phase == Won || game.phase == Lost {
		return false, nil
	}

	action, ok := director.Act(game)
	if !ok {
		return false, nil
	}
	return true, game.Apply(action)
}
