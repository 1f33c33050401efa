package game

// Replay reconstructs a GameState by applying events in order to a fresh
// state under rules, exercising the same Apply path live play does. This
// is what a process restart uses to rehydrate a game from its persisted
// stable-event log (spec.md §6); the log itself is an external
// collaborator, but replaying it back to an identical GameState is a
// core guarantee (spec.md §8's round-trip law).
func Replay(rules ChargingRules, events []GameEvent) (GameState, error) {
	state := New(rules)
	for _, event := range events {
		// HandComplete/GameComplete are notifications synthesized
		// alongside the Play (or AcceptClaim) that triggered them --
		// the state they describe is already folded into the result of
		// that event's Apply call, and Apply has no case for them.
		switch event.(type) {
		case HandCompleteEvent, GameCompleteEvent:
			continue
		}
		if !event.Stable() {
			continue
		}
		next, _, err := state.Apply(event)
		if err != nil {
			return state, err
		}
		state = next
	}
	return state, nil
}
