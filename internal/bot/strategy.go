// Package bot implements the computer strategies that can stand in for
// a seat: Random, Duck, GottaTry, Heuristic and Simulate, mirroring the
// bot variants enumerated by the source this game is ported from.
//
// Strategies operate on the authoritative game.GameState rather than a
// redacted client view -- these are server-side seat fillers, seated
// directly onto a table, so they may read every seat's hand directly.
package bot

import (
	"context"
	"math/rand"

	"github.com/lox/pokerforbots/internal/cards"
	"github.com/lox/pokerforbots/internal/game"
)

// Kind names one of the five strategy variants spec.md §4.6 enumerates,
// for config and wire use (e.g. selecting a bot's style from a CLI flag
// or lobby setting) without exposing the Strategy interface itself as a
// dispatch target.
type Kind string

const (
	KindRandom    Kind = "random"
	KindDuck      Kind = "duck"
	KindGottaTry  Kind = "gotta_try"
	KindHeuristic Kind = "heuristic"
	KindSimulate  Kind = "simulate"
)

// New constructs the Strategy named by kind, seeded from rng where the
// strategy needs randomness.
func New(kind Kind, rng *rand.Rand) Strategy {
	switch kind {
	case KindRandom:
		return NewRandomStrategy(rng)
	case KindDuck:
		return DuckStrategy{}
	case KindGottaTry:
		return GottaTryStrategy{}
	case KindHeuristic:
		return HeuristicStrategy{}
	case KindSimulate:
		return NewSimulateStrategy(rng)
	default:
		return HeuristicStrategy{}
	}
}

// Strategy decides one seat's moves at each decision point. Callers
// (internal/tablehub) drive a Strategy through the same event sequence
// a human player's client would: a pass, then zero or more charges, then
// one play per turn, with an opportunity to claim or accept a claim
// whenever the hand is in a position to do so.
type Strategy interface {
	// ChoosePass returns the three cards seat sends this hand.
	ChoosePass(ctx context.Context, state game.GameState, seat game.Seat) cards.Cards
	// ChooseCharge returns the cards seat charges this round (possibly
	// none). Called once per charging round seat is still eligible to
	// act in.
	ChooseCharge(ctx context.Context, state game.GameState, seat game.Seat) cards.Cards
	// ChoosePlay returns the card seat plays. state.LegalPlays(seat)
	// is always non-empty when this is called.
	ChoosePlay(ctx context.Context, state game.GameState, seat game.Seat) cards.Card
	// ShouldClaim reports whether seat should declare a claim right now.
	ShouldClaim(ctx context.Context, state game.GameState, seat game.Seat) bool
	// ShouldAcceptClaim reports whether seat should accept claimer's
	// pending claim.
	ShouldAcceptClaim(ctx context.Context, state game.GameState, seat, claimer game.Seat) bool
}

// hand returns seat's cards still in play: dealt (post-pass), minus
// whatever has already been played this hand.
func hand(state game.GameState, seat game.Seat) cards.Cards {
	return state.PostPassHand[seat].Minus(state.Played)
}

// chargeCandidates returns the cards seat may still charge this round:
// rules-chargeable cards seat holds that it hasn't already charged.
func chargeCandidates(state game.GameState, seat game.Seat) cards.Cards {
	return state.Rules.Chargeable().Intersect(state.PostPassHand[seat]).Minus(state.Charges.Charged[seat])
}

// canClaimNow reports whether seat, given its current in-play hand,
// could claim the rest of the tricks outright.
func canClaimNow(state game.GameState, seat game.Seat) bool {
	if state.Phase != game.PhasePlay {
		return false
	}
	return game.CanClaim(seat, hand(state, seat), state)
}

// defaultShouldClaim claims whenever doing so is sound: claiming never
// changes the outcome of a hand that's already decided, only how many
// more plays it takes to get there.
func defaultShouldClaim(state game.GameState, seat game.Seat) bool {
	return canClaimNow(state, seat)
}

// defaultShouldAcceptClaim verifies the claim directly against the
// authoritative state rather than trusting the claimer, since these
// strategies have that information available.
func defaultShouldAcceptClaim(state game.GameState, claimer game.Seat) bool {
	return canClaimNow(state, claimer)
}

// pickRandomN deterministically-by-rng picks n cards at random from cs,
// or all of cs if it holds fewer than n.
func pickRandomN(rng *rand.Rand, cs cards.Cards, n int) cards.Cards {
	pool := cs.Slice()
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n > len(pool) {
		n = len(pool)
	}
	var out cards.Cards
	for _, c := range pool[:n] {
		out = out.Add(c)
	}
	return out
}

// lowestOf returns the lowest-ranked card in cs. For an empty cs it
// returns the zero Card (the Two of Clubs); callers only invoke this
// after confirming cs is non-empty.
func lowestOf(cs cards.Cards) cards.Card {
	c, _ := cs.Min()
	return c
}

// highestOf returns the highest-ranked card in cs.
func highestOf(cs cards.Cards) cards.Card {
	c, _ := cs.Max()
	return c
}

// pointValue returns a card's contribution to a trick's score under
// rules, ignoring the ten-of-clubs doubling (which is trick-scoped, not
// per-card).
func pointValue(c cards.Card, rules game.ChargingRules) int {
	switch {
	case c.Suit() == cards.Hearts:
		return 1
	case c == cards.QueenSpades:
		return 13
	case c == cards.JackDiamond && rules.HasJackDiamondScoring():
		return -10
	default:
		return 0
	}
}
