package game

import (
	"testing"

	"github.com/lox/pokerforbots/internal/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dealtState(t *testing.T, rules ChargingRules, hand int) GameState {
	t.Helper()
	var seed [32]byte
	copy(seed[:], "turbo-hearts-test-seed-fixture!!")
	hands := cards.Deal(seed, hand)
	state := New(rules)
	state, _, err := state.Apply(DealEvent{
		Hands: hands,
		Pass:  DirectionForHand(hand),
		Hand:  hand,
	})
	require.NoError(t, err)
	return state
}

func TestDealSetsPassPhaseUnlessKeeper(t *testing.T) {
	state := dealtState(t, Classic, 0)
	assert.Equal(t, PhasePassLeft, state.Phase)

	state = dealtState(t, Classic, 3)
	assert.Equal(t, PhaseCharge, state.Phase)
}

func TestSendPassRotatesAndTransitionsToCharge(t *testing.T) {
	state := dealtState(t, Classic, 0)
	require.True(t, state.Phase.IsPassPhase())

	var events []GameEvent
	for seat := Seat(0); seat < NumSeats; seat++ {
		toSend := state.PrePassHand[seat].PickN(3)
		var err error
		state, events, err = state.Apply(SendPassEvent{Seat: seat, Cards: toSend})
		require.NoError(t, err)
		if seat != West {
			assert.Nil(t, events)
		}
	}
	assert.Equal(t, PhaseCharge, state.Phase)
	assert.Len(t, events, NumSeats)
	for _, e := range events {
		_, ok := e.(ReceivePassEvent)
		assert.True(t, ok)
	}

	for seat := Seat(0); seat < NumSeats; seat++ {
		assert.Equal(t, 13, state.PostPassHand[seat].Count())
	}
}

func TestOpeningLeadMustBeTwoOfClubs(t *testing.T) {
	state := dealtState(t, Classic, 3) // PassKeeper, straight to Charge
	for seat := Seat(0); seat < NumSeats; seat++ {
		var err error
		state, _, err = state.Apply(ChargeEvent{Seat: seat})
		require.NoError(t, err)
	}
	require.Equal(t, PhasePlay, state.Phase)
	require.NotNil(t, state.NextActor)

	leader := *state.NextActor
	assert.True(t, state.PostPassHand[leader].Contains(cards.TwoClubs))
	assert.Equal(t, cards.Of(cards.TwoClubs), state.LegalPlays(leader))

	other := leader.Next()
	assert.Equal(t, cards.None, state.LegalPlays(other))
}

func TestIllegalPlayRejected(t *testing.T) {
	state := dealtState(t, Classic, 3)
	for seat := Seat(0); seat < NumSeats; seat++ {
		var err error
		state, _, err = state.Apply(ChargeEvent{Seat: seat})
		require.NoError(t, err)
	}
	leader := *state.NextActor
	bogus, ok := state.PostPassHand[leader].Minus(cards.Of(cards.TwoClubs)).Min()
	require.True(t, ok)

	_, _, applyErr := state.Apply(PlayEvent{Seat: leader, Card: bogus})
	assert.ErrorIs(t, applyErr, ErrIllegalPlay)
}

func TestHeartsCannotBeLedUntilBroken(t *testing.T) {
	north := Seat(North)
	state := GameState{
		Rules: Classic,
		Phase: PhasePlay,
		PostPassHand: [4]cards.Cards{
			north: cards.Of(cards.AceHearts, cards.New(cards.Three, cards.Clubs)),
		},
		CurrentTrick: NewTrick(north),
		TricksPlayed: 1,
		NextActor:    &north,
	}

	legal := state.LegalPlays(north)
	assert.Equal(t, cards.Of(cards.New(cards.Three, cards.Clubs)), legal)
}

func TestHeartsMayBeLedWhenHandHasNothingElse(t *testing.T) {
	north := Seat(North)
	state := GameState{
		Rules: Classic,
		Phase: PhasePlay,
		PostPassHand: [4]cards.Cards{
			north: cards.Of(cards.AceHearts, cards.New(cards.Two, cards.Hearts)),
		},
		CurrentTrick: NewTrick(north),
		TricksPlayed: 1,
		NextActor:    &north,
	}

	legal := state.LegalPlays(north)
	assert.Equal(t, cards.Of(cards.AceHearts, cards.New(cards.Two, cards.Hearts)), legal)
}

func TestMustFollowLedSuit(t *testing.T) {
	north := Seat(North)
	east := Seat(East)
	trick := NewTrick(north).Push(north, cards.New(cards.Five, cards.Diamonds))
	state := GameState{
		Rules: Classic,
		Phase: PhasePlay,
		PostPassHand: [4]cards.Cards{
			east: cards.Of(cards.New(cards.Two, cards.Diamonds), cards.New(cards.King, cards.Clubs)),
		},
		CurrentTrick: trick,
		NextActor:    &east,
	}

	legal := state.LegalPlays(east)
	assert.Equal(t, cards.Of(cards.New(cards.Two, cards.Diamonds)), legal)
}

func TestVoidInLedSuitExcludesPointsOnFirstTrick(t *testing.T) {
	east := Seat(East)
	trick := NewTrick(North).Push(North, cards.New(cards.Five, cards.Diamonds))
	state := GameState{
		Rules: Classic,
		Phase: PhasePlay,
		PostPassHand: [4]cards.Cards{
			east: cards.Of(cards.AceHearts, cards.New(cards.King, cards.Clubs)),
		},
		CurrentTrick: trick,
		TricksPlayed: 0,
		NextActor:    &east,
	}

	legal := state.LegalPlays(east)
	assert.Equal(t, cards.Of(cards.New(cards.King, cards.Clubs)), legal)
}

func TestVoidInLedSuitMayDiscardJackDiamondUnderBridgeOnFirstTrick(t *testing.T) {
	east := Seat(East)
	trick := NewTrick(North).Push(North, cards.New(cards.Five, cards.Clubs))
	state := GameState{
		Rules: Bridge,
		Phase: PhasePlay,
		PostPassHand: [4]cards.Cards{
			east: cards.Of(cards.JackDiamond, cards.New(cards.Three, cards.Spades)),
		},
		CurrentTrick: trick,
		TricksPlayed: 0,
		NextActor:    &east,
	}

	legal := state.LegalPlays(east)
	assert.Equal(t, cards.Of(cards.JackDiamond, cards.New(cards.Three, cards.Spades)), legal,
		"Bridge's jack of diamonds scores points but isn't QS or a Heart, so a club-void seat may still discard it")
}
