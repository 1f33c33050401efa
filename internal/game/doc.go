// Package game implements the authoritative Hearts state machine: the
// GameState root aggregate, its phase sequencing (pass, charge, play,
// complete), legal-move derivation, event application, void inference,
// and claim negotiation.
//
// GameState is created by a Deal event and mutated only through Apply.
// It never blocks and never mutates hidden state except via Apply, so
// callers (the per-game actor in internal/tablehub) can hold it without
// additional locking as long as Apply calls are serialized.
//
// # Basic usage
//
//	state := game.New(game.Classic)
//	state, events, err := state.Apply(game.DealEvent{Hands: hands, Hand: 0})
//	state, events, err = state.Apply(game.PlayEvent{Seat: game.North, Card: twoOfClubs})
package game
