package game

import "github.com/lox/pokerforbots/internal/cards"

// LegalPlays returns the cards seat may legally play right now. It
// returns the empty set whenever it isn't seat's turn to play a card at
// all, so callers can use Count()==0 as a cheap "not your turn" check
// before bothering with Apply.
func (g GameState) LegalPlays(seat Seat) cards.Cards {
	if g.Phase != PhasePlay || g.NextActor == nil || *g.NextActor != seat {
		return cards.None
	}

	hand := g.PostPassHand[seat].Minus(g.Played)

	if g.CurrentTrick.Empty() {
		return g.legalLeads(seat, hand)
	}
	return g.legalFollows(seat, hand)
}

func (g GameState) heartsBroken() bool {
	return g.LedSuits.Contains(cards.Hearts) || !g.Played.OfSuit(cards.Hearts).Empty()
}

func (g GameState) legalLeads(seat Seat, hand cards.Cards) cards.Cards {
	if g.TricksPlayed == 0 && g.CurrentTrick.Empty() && g.Played.Empty() {
		return cards.Of(cards.TwoClubs)
	}

	leads := hand
	if !g.heartsBroken() && !hand.Minus(hand.OfSuit(cards.Hearts)).Empty() {
		leads = leads.Minus(leads.OfSuit(cards.Hearts))
	}

	charged := g.Charges.Charged[seat]
	released := charged.Intersect(releasedChargedCards(charged, g.LedSuits))
	blocked := charged.Minus(released)
	if !leads.Minus(blocked).Empty() {
		leads = leads.Minus(blocked)
	}
	return leads
}

// releasedChargedCards returns the subset of charged that may be led,
// i.e. whose suit has already been led this hand.
func releasedChargedCards(charged cards.Cards, ledSuits cards.SuitSet) cards.Cards {
	var out cards.Cards
	charged.Iter(func(c cards.Card) {
		if ledSuits.Contains(c.Suit()) {
			out = out.Add(c)
		}
	})
	return out
}

func (g GameState) legalFollows(seat Seat, hand cards.Cards) cards.Cards {
	led := g.CurrentTrick.LedSuit()
	followers := hand.OfSuit(led)
	if !followers.Empty() {
		return followers
	}

	if g.TricksPlayed == 0 {
		nonBlood := hand.Minus(firstTrickBloodCards())
		if !nonBlood.Empty() {
			return nonBlood
		}
	}
	return hand
}

// firstTrickBloodCards returns the cards a seat void in the led suit may
// not discard on the first trick unless it holds nothing else: every
// Heart, plus the Queen of Spades. This is narrower than the full set of
// point-scoring cards -- the Ten of Clubs and, under Bridge rules, the
// Jack of Diamonds affect a trick's score but are legal first-trick
// discards for a seat that holds them alongside a plain card.
func firstTrickBloodCards() cards.Cards {
	return cards.All.OfSuit(cards.Hearts).Add(cards.QueenSpades)
}
