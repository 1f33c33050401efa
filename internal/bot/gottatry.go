package bot

import (
	"context"

	"github.com/lox/pokerforbots/internal/cards"
	"github.com/lox/pokerforbots/internal/game"
)

// GottaTryStrategy goes for the moon: it charges everything it is
// offered, keeps its high cards, and tries to win every trick rather
// than duck out of them. It never plays defensively, so against a table
// that isn't also going for the moon it either sweeps every point card
// or hands them all to whichever seat breaks its run first.
type GottaTryStrategy struct{}

func (GottaTryStrategy) ChoosePass(_ context.Context, state game.GameState, seat game.Seat) cards.Cards {
	return leastDangerousN(state.PrePassHand[seat], state.Rules, 3)
}

// ChooseCharge charges every card it can: under a moon-shot plan the
// extra stakes only matter if it fails to run the table, and it isn't
// planning on that.
func (GottaTryStrategy) ChooseCharge(_ context.Context, state game.GameState, seat game.Seat) cards.Cards {
	return chargeCandidates(state, seat)
}

func (GottaTryStrategy) ChoosePlay(_ context.Context, state game.GameState, seat game.Seat) cards.Card {
	legal := state.LegalPlays(seat)

	if state.CurrentTrick.Empty() {
		return highestOf(legal)
	}

	led := state.CurrentTrick.LedSuit()
	following := legal.OfSuit(led)
	if following.Empty() {
		// Can't follow suit and can't contest the trick: shed the
		// weakest card rather than give up a control card for nothing.
		return lowestValueCard(legal, state.Rules)
	}

	best, _ := state.CurrentTrick.CardsPlayed().HighestOfSuit(led)
	winning := following.Minus(following.Below(best + 1))
	if !winning.Empty() {
		return highestOf(winning)
	}
	// Can't win this one: keep the highest card of the suit in reserve
	// for a trick it can actually take.
	return lowestOf(following)
}

func (GottaTryStrategy) ShouldClaim(_ context.Context, state game.GameState, seat game.Seat) bool {
	return defaultShouldClaim(state, seat)
}

func (GottaTryStrategy) ShouldAcceptClaim(_ context.Context, state game.GameState, _ game.Seat, claimer game.Seat) bool {
	return defaultShouldAcceptClaim(state, claimer)
}

// lowestValueCard returns the legal card worth the fewest points,
// breaking ties toward the lowest rank.
func lowestValueCard(legal cards.Cards, rules game.ChargingRules) cards.Card {
	best, bestValue := cards.Card(0), 1<<31
	first := true
	legal.Iter(func(c cards.Card) {
		v := pointValue(c, rules)
		if first || v < bestValue || (v == bestValue && c < best) {
			best, bestValue, first = c, v, false
		}
	})
	return best
}

// leastDangerousN returns the n lowest-value cards in hand.
func leastDangerousN(hand cards.Cards, rules game.ChargingRules, n int) cards.Cards {
	type scored struct {
		c cards.Card
		v int
	}
	all := hand.Slice()
	scoredAll := make([]scored, len(all))
	for i, c := range all {
		scoredAll[i] = scored{c, pointValue(c, rules)}
	}
	var out cards.Cards
	for k := 0; k < n && k < len(scoredAll); k++ {
		minIdx := k
		for i := k + 1; i < len(scoredAll); i++ {
			if scoredAll[i].v < scoredAll[minIdx].v ||
				(scoredAll[i].v == scoredAll[minIdx].v && scoredAll[i].c < scoredAll[minIdx].c) {
				minIdx = i
			}
		}
		scoredAll[k], scoredAll[minIdx] = scoredAll[minIdx], scoredAll[k]
		out = out.Add(scoredAll[k].c)
	}
	return out
}
