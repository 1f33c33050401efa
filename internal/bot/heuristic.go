package bot

import (
	"context"

	"github.com/lox/pokerforbots/internal/cards"
	"github.com/lox/pokerforbots/internal/game"
)

// HeuristicStrategy scores each legal play by applying it (one-ply
// lookahead through game.GameState.Apply, which is cheap since GameState
// is a plain value) and weighing the result on four signals: the points
// the play would cost this trick, how many opponents are already known
// void in the suit it leads, whether it prematurely releases one of
// seat's own charged cards, and how much high-card control it gives up.
// The lowest-scoring legal play wins.
type HeuristicStrategy struct{}

const (
	weightPoints  = 1000
	weightVoid    = 15
	weightRelease = 40
	weightControl = 1
)

func (HeuristicStrategy) ChoosePass(_ context.Context, state game.GameState, seat game.Seat) cards.Cards {
	return mostDangerousN(state.PrePassHand[seat], state.Rules, 3)
}

// ChooseCharge charges a card only when it's already been released
// (its suit has been led), since charging an unreleased card invites
// being forced to lead it into an empty trick later for full value.
func (HeuristicStrategy) ChooseCharge(_ context.Context, state game.GameState, seat game.Seat) cards.Cards {
	candidates := chargeCandidates(state, seat)
	return candidates.Intersect(releasedSuits(state))
}

func (HeuristicStrategy) ChoosePlay(_ context.Context, state game.GameState, seat game.Seat) cards.Card {
	legal := state.LegalPlays(seat)

	best, bestScore := cards.Card(0), 0
	first := true
	legal.Iter(func(c cards.Card) {
		score := scoreCandidate(state, seat, c)
		if first || score < bestScore {
			best, bestScore, first = c, score, false
		}
	})
	return best
}

func (HeuristicStrategy) ShouldClaim(_ context.Context, state game.GameState, seat game.Seat) bool {
	return defaultShouldClaim(state, seat)
}

func (HeuristicStrategy) ShouldAcceptClaim(_ context.Context, state game.GameState, _ game.Seat, claimer game.Seat) bool {
	return defaultShouldAcceptClaim(state, claimer)
}

// scoreCandidate estimates how costly playing c is for seat, lower is
// better.
func scoreCandidate(state game.GameState, seat game.Seat, c cards.Card) int {
	result, _, err := state.Apply(game.PlayEvent{Seat: seat, Card: c})
	if err != nil {
		return 1 << 30
	}

	score := (result.HandScores[seat] - state.HandScores[seat]) * weightPoints
	score += int(c.Rank()) * weightControl

	if state.CurrentTrick.Empty() {
		suit := c.Suit()
		for other := game.Seat(0); other < game.NumSeats; other++ {
			if other == seat {
				continue
			}
			if state.Void.IsVoid(other, suit) {
				score -= weightVoid
			}
		}
		if state.Charges.Charged[seat].OfSuit(suit).Intersect(releasedSuits(state)).Empty() &&
			!state.Charges.Charged[seat].OfSuit(suit).Empty() {
			score += weightRelease
		}
	}
	return score
}

// releasedSuits returns every card of each suit that has already been
// led this hand; a charged card in that set may legally be led.
func releasedSuits(state game.GameState) cards.Cards {
	var out cards.Cards
	for suit := cards.Clubs; suit < cards.NumSuits; suit++ {
		if state.LedSuits.Contains(suit) {
			out = out.Union(cards.All.OfSuit(suit))
		}
	}
	return out
}
