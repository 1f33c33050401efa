package game

import "github.com/lox/pokerforbots/internal/cards"

// VoidTracker infers which seats are known to hold no cards of a suit,
// from observed discards. It is a 16-bit field indexed by
// 4*seat+suit, one bit per (seat, suit) pair.
//
// There were two variants of this check in the source this is ported
// from: one reads the trick's led suit unconditionally, the other
// guards with a trick-emptiness check first. The unguarded form reads an
// undefined suit on an empty trick; VoidTracker always guards, per
// spec.md §9.
type VoidTracker struct {
	bits uint16
}

// NewVoidTracker returns an empty tracker.
func NewVoidTracker() VoidTracker {
	return VoidTracker{}
}

// IsVoid reports whether seat is known to hold no cards of suit.
func (v VoidTracker) IsVoid(seat Seat, suit cards.Suit) bool {
	return v.bits&(1<<(4*uint(seat)+uint(suit))) != 0
}

// Observe updates the tracker from a play: if the trick was non-empty
// before this card was added (i.e. seat was following, not leading) and
// the card doesn't match the led suit, seat is now known void in the
// led suit. trickBeforePlay must be the trick state as it was
// immediately before card was pushed.
func (v VoidTracker) Observe(seat Seat, card cards.Card, trickBeforePlay Trick) VoidTracker {
	if trickBeforePlay.Empty() {
		return v
	}
	led := trickBeforePlay.LedSuit()
	if card.Suit() != led {
		v.bits |= 1 << (4*uint(seat) + uint(led))
	}
	return v
}

// Reset clears all inferred voids, called at the start of each hand.
func (v VoidTracker) Reset() VoidTracker {
	return VoidTracker{}
}
