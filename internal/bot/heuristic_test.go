package bot_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/pokerforbots/internal/bot"
	"github.com/lox/pokerforbots/internal/cards"
	"github.com/lox/pokerforbots/internal/game"
)

func TestHeuristicStrategyChoosePlayIsAlwaysLegal(t *testing.T) {
	state := playState(t, game.Classic)
	s := bot.HeuristicStrategy{}

	seat := *state.NextActor
	card := s.ChoosePlay(context.Background(), state, seat)
	assert.True(t, state.LegalPlays(seat).Contains(card))
}

func TestHeuristicStrategyDucksAPointTrickWhenItCanFollow(t *testing.T) {
	leader := game.North
	east, south, west := game.East, game.South, game.West
	trick := game.NewTrick(leader).
		Push(leader, cards.QueenSpades).
		Push(east, cards.New(cards.Three, cards.Spades)).
		Push(south, cards.New(cards.Five, cards.Spades))
	state := game.GameState{
		Rules: game.Classic,
		Phase: game.PhasePlay,
		PostPassHand: [4]cards.Cards{
			west: cards.Of(cards.New(cards.Two, cards.Spades), cards.New(cards.King, cards.Spades)),
		},
		TricksPlayed: 1,
		CurrentTrick: trick,
		Won:          game.NewWonState(),
		Claims:       game.NewClaimState(),
		NextActor:    &west,
	}
	s := bot.HeuristicStrategy{}
	played := s.ChoosePlay(context.Background(), state, west)
	// Taking the trick with the king would hand the queen's 13 points to
	// itself; ducking under with the two leaves them on North instead.
	assert.Equal(t, cards.New(cards.Two, cards.Spades), played)
}

func TestHeuristicStrategyDoesNotChargeUnreleasedCards(t *testing.T) {
	state := dealtState(t, game.Classic, 3)
	s := bot.HeuristicStrategy{}

	for seat := game.Seat(0); seat < game.NumSeats; seat++ {
		charged := s.ChooseCharge(context.Background(), state, seat)
		assert.True(t, charged.Empty(), "no suit has been released before the first trick")
	}
}
