package cards

import (
	"math/bits"
	"strings"
)

// Cards is a set of distinct cards stored as a 64-bit word. Only the low
// 52 bits may ever be set.
type Cards uint64

// None is the empty set.
const None Cards = 0

// All is the full 52-card deck.
const All Cards = (1 << 52) - 1

// Of builds a Cards set from individual cards.
func Of(cs ...Card) Cards {
	var out Cards
	for _, c := range cs {
		out = out.Add(c)
	}
	return out
}

// Add returns the set with c added.
func (cs Cards) Add(c Card) Cards {
	return cs | Cards(c.Bit())
}

// Remove returns the set with c removed.
func (cs Cards) Remove(c Card) Cards {
	return cs &^ Cards(c.Bit())
}

// Contains reports whether c is in the set.
func (cs Cards) Contains(c Card) bool {
	return cs&Cards(c.Bit()) != 0
}

// Union returns cs | other.
func (cs Cards) Union(other Cards) Cards { return cs | other }

// Intersect returns cs & other.
func (cs Cards) Intersect(other Cards) Cards { return cs & other }

// Minus returns the cards in cs that are not in other.
func (cs Cards) Minus(other Cards) Cards { return cs &^ other }

// IsSubsetOf reports whether every card in cs is also in other.
func (cs Cards) IsSubsetOf(other Cards) bool { return cs&^other == 0 }

// Count returns the number of cards in the set.
func (cs Cards) Count() int { return bits.OnesCount64(uint64(cs)) }

// Empty reports whether the set has no cards.
func (cs Cards) Empty() bool { return cs == 0 }

// Below returns the cards in cs that are strictly below c's bit position
// (i.e. of lower rank within the same interleaving, mostly useful for
// iteration bounds rather than game semantics).
func (cs Cards) Below(c Card) Cards {
	return cs & Cards(c.Bit()-1)
}

// Min returns the lowest-bit-position card in the set, and false if empty.
func (cs Cards) Min() (Card, bool) {
	if cs == 0 {
		return 0, false
	}
	return Card(bits.TrailingZeros64(uint64(cs))), true
}

// Max returns the highest-bit-position card in the set, and false if empty.
func (cs Cards) Max() (Card, bool) {
	if cs == 0 {
		return 0, false
	}
	return Card(63 - bits.LeadingZeros64(uint64(cs))), true
}

// OfSuit returns the subset of cs belonging to suit.
func (cs Cards) OfSuit(suit Suit) Cards {
	var out Cards
	for r := Rank(0); r < NumRanks; r++ {
		c := New(r, suit)
		if cs.Contains(c) {
			out = out.Add(c)
		}
	}
	return out
}

// HighestOfSuit returns the highest-ranked card of suit in cs, if any.
func (cs Cards) HighestOfSuit(suit Suit) (Card, bool) {
	var best Card
	found := false
	for r := Rank(NumRanks - 1); ; r-- {
		c := New(r, suit)
		if cs.Contains(c) {
			return c, true
		}
		if r == 0 {
			break
		}
	}
	return best, found
}

// Iter calls fn for every card in cs in ascending bit order (rank-major:
// all clubs/diamonds/hearts/spades of rank 2, then rank 3, ...).
func (cs Cards) Iter(fn func(Card)) {
	x := uint64(cs)
	for x != 0 {
		bit := bits.TrailingZeros64(x)
		fn(Card(bit))
		x &= x - 1
	}
}

// Slice returns the cards in ascending bit order.
func (cs Cards) Slice() []Card {
	out := make([]Card, 0, cs.Count())
	cs.Iter(func(c Card) { out = append(out, c) })
	return out
}

// PickN deterministically returns the first n cards in ascending order,
// or all of cs if it has fewer than n cards. Used by search/pruning code
// that needs a stable representative subset rather than a full iteration.
func (cs Cards) PickN(n int) Cards {
	var out Cards
	count := 0
	cs.Iter(func(c Card) {
		if count < n {
			out = out.Add(c)
			count++
		}
	})
	return out
}

func (cs Cards) String() string {
	var b strings.Builder
	first := true
	cs.Iter(func(c Card) {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(c.String())
	})
	return b.String()
}
