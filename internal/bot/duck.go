package bot

import (
	"context"

	"github.com/lox/pokerforbots/internal/cards"
	"github.com/lox/pokerforbots/internal/game"
)

// DuckStrategy plays to avoid taking points: it never charges, passes
// away its most dangerous cards, and at every play either ducks under
// the current trick's winner or, if it can't follow suit, dumps its
// most dangerous card.
type DuckStrategy struct{}

func (DuckStrategy) ChoosePass(_ context.Context, state game.GameState, seat game.Seat) cards.Cards {
	return mostDangerousN(state.PrePassHand[seat], state.Rules, 3)
}

// ChooseCharge never charges: charging only ever raises the stakes of
// cards this strategy is trying to shed safely.
func (DuckStrategy) ChooseCharge(context.Context, game.GameState, game.Seat) cards.Cards {
	return cards.None
}

func (DuckStrategy) ChoosePlay(_ context.Context, state game.GameState, seat game.Seat) cards.Card {
	legal := state.LegalPlays(seat)

	if state.CurrentTrick.Empty() {
		return safestLead(legal, state.Rules)
	}

	led := state.CurrentTrick.LedSuit()
	following := legal.OfSuit(led)
	if following.Empty() {
		// Void in the led suit: dump the most dangerous card we hold.
		return highestValueCard(legal, state.Rules)
	}

	best, _ := state.CurrentTrick.CardsPlayed().HighestOfSuit(led)
	losing := following.Below(best + 1).Remove(best)
	if !losing.Empty() {
		return highestOf(losing)
	}
	// Every legal follow would win the trick; take it with the highest
	// card of the suit rather than leave a bigger one exposed later.
	return highestOf(following)
}

func (DuckStrategy) ShouldClaim(_ context.Context, state game.GameState, seat game.Seat) bool {
	return defaultShouldClaim(state, seat)
}

func (DuckStrategy) ShouldAcceptClaim(_ context.Context, state game.GameState, _ game.Seat, claimer game.Seat) bool {
	return defaultShouldAcceptClaim(state, claimer)
}

// safestLead picks the lowest-ranked non-point card among the legal
// leads, falling back to the lowest point card only when every legal
// lead scores.
func safestLead(legal cards.Cards, rules game.ChargingRules) cards.Card {
	safe := legal.Minus(pointCards(rules))
	if !safe.Empty() {
		return lowestOf(safe)
	}
	return lowestOf(legal)
}

// highestValueCard returns the legal card worth the most points,
// breaking ties toward the highest rank.
func highestValueCard(legal cards.Cards, rules game.ChargingRules) cards.Card {
	best, bestValue := cards.Card(0), -1<<31
	first := true
	legal.Iter(func(c cards.Card) {
		v := pointValue(c, rules)
		if first || v > bestValue || (v == bestValue && c > best) {
			best, bestValue, first = c, v, false
		}
	})
	return best
}

// mostDangerousN returns the n highest-value cards in hand, by the same
// ranking highestValueCard uses card-by-card.
func mostDangerousN(hand cards.Cards, rules game.ChargingRules, n int) cards.Cards {
	type scored struct {
		c cards.Card
		v int
	}
	all := hand.Slice()
	scoredAll := make([]scored, len(all))
	for i, c := range all {
		scoredAll[i] = scored{c, pointValue(c, rules)}
	}
	// Simple selection sort for the top n -- hands are at most 13 cards.
	var out cards.Cards
	for k := 0; k < n && k < len(scoredAll); k++ {
		maxIdx := k
		for i := k + 1; i < len(scoredAll); i++ {
			if scoredAll[i].v > scoredAll[maxIdx].v ||
				(scoredAll[i].v == scoredAll[maxIdx].v && scoredAll[i].c > scoredAll[maxIdx].c) {
				maxIdx = i
			}
		}
		scoredAll[k], scoredAll[maxIdx] = scoredAll[maxIdx], scoredAll[k]
		out = out.Add(scoredAll[k].c)
	}
	return out
}

// pointCards returns every card that scores points under rules, for a
// bot weighing which lead is safe to avoid scoring -- a broader set
// than the first-trick discard rule in internal/game/legalplays.go,
// which only forbids Hearts and the Queen of Spades.
func pointCards(rules game.ChargingRules) cards.Cards {
	pts := cards.All.OfSuit(cards.Hearts).Add(cards.QueenSpades).Add(cards.TenClubs)
	if rules.HasJackDiamondScoring() {
		pts = pts.Add(cards.JackDiamond)
	}
	return pts
}
