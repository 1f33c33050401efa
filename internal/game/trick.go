package game

import "github.com/lox/pokerforbots/internal/cards"

// Trick is the running trick for the current round of play: up to four
// (seat, card) pairs plus the leader.
type Trick struct {
	Leader Seat
	Seats  [4]Seat
	Played [4]cards.Card
	Len    int
}

// NewTrick starts an empty trick led by leader.
func NewTrick(leader Seat) Trick {
	return Trick{Leader: leader}
}

// Empty reports whether no card has been played to the trick yet.
func (t Trick) Empty() bool { return t.Len == 0 }

// Complete reports whether all four seats have played.
func (t Trick) Complete() bool { return t.Len == NumSeats }

// LedSuit returns the suit of the first card played, valid only when the
// trick is non-empty. Callers must guard with Empty() first -- the
// earlier form of the void tracker in the source this was ported from
// skipped that guard and read an undefined suit on an empty trick.
func (t Trick) LedSuit() cards.Suit {
	return t.Played[0].Suit()
}

// Push records seat playing card as the next play in the trick. The
// caller (GameState.apply) is responsible for validating that the play
// is legal before calling Push.
func (t Trick) Push(seat Seat, card cards.Card) Trick {
	t.Seats[t.Len] = seat
	t.Played[t.Len] = card
	t.Len++
	return t
}

// CardsPlayed returns every card currently in the trick as a set.
func (t Trick) CardsPlayed() cards.Cards {
	var cs cards.Cards
	for i := 0; i < t.Len; i++ {
		cs = cs.Add(t.Played[i])
	}
	return cs
}

// Winner returns the seat that played the highest card of the led suit.
// Only meaningful once Complete() is true, but works for any non-empty
// trick.
func (t Trick) Winner() Seat {
	led := t.LedSuit()
	winner := t.Seats[0]
	best := t.Played[0].Rank()
	for i := 1; i < t.Len; i++ {
		c := t.Played[i]
		if c.Suit() == led && c.Rank() > best {
			best = c.Rank()
			winner = t.Seats[i]
		}
	}
	return winner
}

// Points sums the point value of every card in the trick under rules:
// each Heart scores 1, the Queen of Spades scores 13, the Jack of
// Diamonds scores -10 under Bridge-variant scoring, and the Ten of Clubs
// doubles the trick's point total under every rules variant.
func (t Trick) Points(rules ChargingRules) int {
	points := 0
	hasTenClubs := false
	for i := 0; i < t.Len; i++ {
		c := t.Played[i]
		switch {
		case c.Suit() == cards.Hearts:
			points++
		case c == cards.QueenSpades:
			points += 13
		case c == cards.JackDiamond && rules.HasJackDiamondScoring():
			points -= 10
		case c == cards.TenClubs:
			hasTenClubs = true
		}
	}
	if hasTenClubs {
		points *= 2
	}
	return points
}
