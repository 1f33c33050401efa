package bot

import (
	"context"
	"math/rand"

	"github.com/lox/pokerforbots/internal/cards"
	"github.com/lox/pokerforbots/internal/game"
)

// RandomStrategy picks uniformly among its legal options at every
// decision point. Useful as a baseline opponent and for fuzzing the
// state machine.
type RandomStrategy struct {
	Rng *rand.Rand
}

// NewRandomStrategy returns a RandomStrategy seeded from rng.
func NewRandomStrategy(rng *rand.Rand) *RandomStrategy {
	return &RandomStrategy{Rng: rng}
}

func (s *RandomStrategy) ChoosePass(_ context.Context, state game.GameState, seat game.Seat) cards.Cards {
	return pickRandomN(s.Rng, state.PrePassHand[seat], 3)
}

func (s *RandomStrategy) ChooseCharge(_ context.Context, state game.GameState, seat game.Seat) cards.Cards {
	candidates := chargeCandidates(state, seat).Slice()
	var out cards.Cards
	for _, c := range candidates {
		if s.Rng.Intn(2) == 0 {
			out = out.Add(c)
		}
	}
	return out
}

func (s *RandomStrategy) ChoosePlay(_ context.Context, state game.GameState, seat game.Seat) cards.Card {
	legal := state.LegalPlays(seat).Slice()
	return legal[s.Rng.Intn(len(legal))]
}

func (s *RandomStrategy) ShouldClaim(_ context.Context, state game.GameState, seat game.Seat) bool {
	return defaultShouldClaim(state, seat)
}

func (s *RandomStrategy) ShouldAcceptClaim(_ context.Context, state game.GameState, _ game.Seat, claimer game.Seat) bool {
	return defaultShouldAcceptClaim(state, claimer)
}
