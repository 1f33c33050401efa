package bot_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/pokerforbots/internal/bot"
	"github.com/lox/pokerforbots/internal/cards"
	"github.com/lox/pokerforbots/internal/game"
)

func TestDuckStrategyNeverCharges(t *testing.T) {
	state := dealtState(t, game.Classic, 3)
	s := bot.DuckStrategy{}
	assert.True(t, s.ChooseCharge(context.Background(), state, game.North).Empty())
}

func TestDuckStrategyLeadsSafestCardWhenPossible(t *testing.T) {
	leader := game.North
	state := game.GameState{
		Rules:        game.Classic,
		Phase:        game.PhasePlay,
		PostPassHand: [4]cards.Cards{leader: cards.Of(cards.New(cards.Two, cards.Clubs), cards.AceHearts)},
		TricksPlayed: 1,
		CurrentTrick: game.NewTrick(leader),
		Won:          game.NewWonState(),
		Claims:       game.NewClaimState(),
		NextActor:    &leader,
	}
	s := bot.DuckStrategy{}
	played := s.ChoosePlay(context.Background(), state, leader)
	assert.Equal(t, cards.New(cards.Two, cards.Clubs), played)
}

func TestDuckStrategyDucksUnderCurrentWinner(t *testing.T) {
	leader := game.North
	trick := game.NewTrick(leader).Push(leader, cards.New(cards.King, cards.Clubs))
	next := leader.Next()
	state := game.GameState{
		Rules: game.Classic,
		Phase: game.PhasePlay,
		PostPassHand: [4]cards.Cards{
			next: cards.Of(cards.New(cards.Two, cards.Clubs), cards.New(cards.Ace, cards.Clubs)),
		},
		CurrentTrick: trick,
		Won:          game.NewWonState(),
		Claims:       game.NewClaimState(),
		NextActor:    &next,
	}
	s := bot.DuckStrategy{}
	played := s.ChoosePlay(context.Background(), state, next)
	assert.Equal(t, cards.New(cards.Two, cards.Clubs), played)
}

func TestDuckStrategyShouldClaimRespectsPhase(t *testing.T) {
	state := dealtState(t, game.Classic, 3)
	s := bot.DuckStrategy{}
	assert.False(t, s.ShouldClaim(context.Background(), state, game.North))
}
