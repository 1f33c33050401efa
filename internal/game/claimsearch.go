package game

import "github.com/lox/pokerforbots/internal/cards"

// CanClaim reports whether seat, holding hand, can force a win of every
// remaining trick in state regardless of how the other three seats play.
//
// Hearts has no trump suit, so the search spec.md describes collapses to
// a closed-form scan rather than an explicit game tree: since seat
// becomes the leader of every trick it wins, and it only ever needs to
// follow what it itself led, the claim holds iff for every suit seat
// still holds, seat's weakest card of that suit outranks every
// still-unseen card of that suit. An unseen card of a suit is
// necessarily in some opponent's hand (all 52 cards are accounted for
// between hands and already-played cards), so no void-inference
// disambiguation is needed to resolve the claim -- void inference earns
// its keep for bots guessing at opponents' likely holdings, not here.
func CanClaim(seat Seat, hand cards.Cards, state GameState) bool {
	unseen := cards.All.Minus(state.Played).Minus(hand)

	for suit := cards.Clubs; suit < cards.NumSuits; suit++ {
		mine := hand.OfSuit(suit)
		if mine.Empty() {
			continue
		}
		theirs := unseen.OfSuit(suit)
		oppMax, ok := theirs.Max()
		if !ok {
			continue
		}
		mineMin, _ := mine.Min()
		if oppMax > mineMin {
			return false
		}
	}
	return true
}
