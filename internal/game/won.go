package game

import "github.com/lox/pokerforbots/internal/cards"

// WonState tracks, per seat, the cards won in completed tricks of the
// current hand.
type WonState struct {
	Won [4]cards.Cards
}

// NewWonState returns an empty won state.
func NewWonState() WonState {
	return WonState{}
}

// Award adds the cards of a completed trick to winner's won pile.
func (w WonState) Award(winner Seat, trick cards.Cards) WonState {
	w.Won[winner] = w.Won[winner].Union(trick)
	return w
}

// CardCount reports how many cards seat has captured this hand. It says
// nothing about how many tricks they came from; GameState tracks the
// trick count separately (TricksPlayed).
func (w WonState) CardCount(seat Seat) int {
	return w.Won[seat].Count()
}

// Score computes seat's point total from the cards it has captured: one
// point per Heart, thirteen for the Queen of Spades, minus ten for the
// Jack of Diamonds under Bridge scoring. It does not apply Classic-style
// "ten doubles the trick" scoring, since doubling is scoped to whichever
// single trick the Ten of Clubs was won in -- GameState accumulates that
// trick-by-trick via Trick.Points as each trick completes and is the
// authoritative score; this method is a convenience for heuristics that
// only need the non-doubled point total for a set of won cards.
func (w WonState) Score(seat Seat, rules ChargingRules) int {
	hand := w.Won[seat]
	points := hand.OfSuit(cards.Hearts).Count()
	if hand.Contains(cards.QueenSpades) {
		points += 13
	}
	if rules.HasJackDiamondScoring() && hand.Contains(cards.JackDiamond) {
		points -= 10
	}
	return points
}

// ShotTheMoon reports whether seat won every point card in the hand (all
// thirteen Hearts plus the Queen of Spades).
func (w WonState) ShotTheMoon(seat Seat) bool {
	moon := cards.All.OfSuit(cards.Hearts).Add(cards.QueenSpades)
	return moon.IsSubsetOf(w.Won[seat])
}
