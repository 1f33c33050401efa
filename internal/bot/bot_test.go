package bot_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/pokerforbots/internal/cards"
	"github.com/lox/pokerforbots/internal/game"
)

// dealtState deals hand under rules from a fixed seed, landing in
// PhaseCharge when hand is a keeper-pass hand (hand%4 == 3) so tests that
// only care about charging or play don't need to drive a pass round.
func dealtState(t *testing.T, rules game.ChargingRules, hand int) game.GameState {
	t.Helper()
	var seed [32]byte
	copy(seed[:], "bot-package-test-seed-fixture!!!")
	hands := cards.Deal(seed, hand)
	state := game.New(rules)
	state, _, err := state.Apply(game.DealEvent{
		Hands: hands,
		Pass:  game.DirectionForHand(hand),
		Hand:  hand,
	})
	require.NoError(t, err)
	return state
}

// chargeAllPass runs every seat through an empty charge so the hand
// advances straight from Charge into Play.
func chargeAllPass(t *testing.T, state game.GameState) game.GameState {
	t.Helper()
	for seat := game.Seat(0); seat < game.NumSeats; seat++ {
		var err error
		state, _, err = state.Apply(game.ChargeEvent{Seat: seat})
		require.NoError(t, err)
	}
	require.Equal(t, game.PhasePlay, state.Phase)
	return state
}

// playState returns a state in PhasePlay, everyone having charged
// nothing, ready for ChoosePlay tests.
func playState(t *testing.T, rules game.ChargingRules) game.GameState {
	t.Helper()
	return chargeAllPass(t, dealtState(t, rules, 3))
}
