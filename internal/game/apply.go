package game

import "github.com/lox/pokerforbots/internal/cards"

// HandsPerGame is the number of hands (one full pass-rotation cycle)
// played before GameComplete is synthesized.
const HandsPerGame = 4

// TricksPerHand is the number of tricks in one hand of Hearts.
const TricksPerHand = 13

func (g GameState) applyPlay(e PlayEvent) (GameState, []GameEvent, error) {
	if g.Phase != PhasePlay || g.NextActor == nil || *g.NextActor != e.Seat {
		return g, nil, ErrNotYourTurn
	}
	legal := g.LegalPlays(e.Seat)
	if !legal.Contains(e.Card) {
		return g, nil, ErrIllegalPlay
	}

	before := g.CurrentTrick
	g.Void = g.Void.Observe(e.Seat, e.Card, before)

	if before.Empty() {
		g.LedSuits = g.LedSuits.Add(e.Card.Suit())
	}

	g.PostPassHand[e.Seat] = g.PostPassHand[e.Seat].Remove(e.Card)
	g.Played = g.Played.Add(e.Card)
	g.CurrentTrick = before.Push(e.Seat, e.Card)

	if !g.CurrentTrick.Complete() {
		return g, nil, nil
	}

	winner := g.CurrentTrick.Winner()
	trickPoints := g.CurrentTrick.Points(g.Rules)
	g.Won = g.Won.Award(winner, g.CurrentTrick.CardsPlayed())
	g.HandScores[winner] += trickPoints
	g.TricksPlayed++
	g.CurrentTrick = NewTrick(winner)
	g.NextActor = &winner

	if g.TricksPlayed < TricksPerHand {
		return g, nil, nil
	}
	return g.completeHand()
}

// completeHand finalizes the current hand's scoring (applying
// shoot-the-moon redistribution), synthesizes HandComplete, and also
// synthesizes GameComplete once the last of HandsPerGame hands is done.
// It never synthesizes the next hand's Deal; the caller applies that.
func (g GameState) completeHand() (GameState, []GameEvent, error) {
	scores := g.finalizeMoonShooting()
	for seat, s := range scores {
		g.GameScores[seat] += s
	}
	g.Phase = PhaseComplete
	g.NextActor = nil

	events := []GameEvent{HandCompleteEvent{Scores: scores}}
	if g.HandNumber+1 >= HandsPerGame {
		events = append(events, GameCompleteEvent{FinalScores: g.GameScores})
	}
	return g, events, nil
}

// finalizeMoonShooting returns the hand's final per-seat scores,
// redistributing a shot moon (26 points to the other three seats
// instead of the shooter) before returning.
func (g GameState) finalizeMoonShooting() [4]int {
	scores := g.HandScores
	for seat := Seat(0); seat < NumSeats; seat++ {
		if g.Won.ShotTheMoon(seat) {
			var moon [4]int
			for other := Seat(0); other < NumSeats; other++ {
				if other == seat {
					continue
				}
				moon[other] = 26
			}
			return moon
		}
	}
	return scores
}

// pointsOfCards scores an arbitrary set of cards under rules, as if they
// were all won in one trick (doubled once if the Ten of Clubs is among
// them). Used only for awarding a successful claim's remaining cards in
// bulk, where the exact trick boundaries no longer matter to the result.
func pointsOfCards(cs cards.Cards, rules ChargingRules) int {
	points := cs.OfSuit(cards.Hearts).Count()
	if cs.Contains(cards.QueenSpades) {
		points += 13
	}
	if rules.HasJackDiamondScoring() && cs.Contains(cards.JackDiamond) {
		points -= 10
	}
	if cs.Contains(cards.TenClubs) {
		points *= 2
	}
	return points
}

func (g GameState) applyClaim(e ClaimEvent) (GameState, []GameEvent, error) {
	if g.Phase != PhasePlay {
		return g, nil, ErrWrongPhase
	}
	if g.Claims.IsClaiming(e.Seat) {
		return g, nil, ErrAlreadyClaimed
	}
	if !CanClaim(e.Seat, g.PostPassHand[e.Seat].Minus(g.Played), g) {
		return g, nil, ErrIllegalPlay
	}
	g.Claims = g.Claims.Claim(e.Seat)
	return g, nil, nil
}

func (g GameState) applyAcceptClaim(e AcceptClaimEvent) (GameState, []GameEvent, error) {
	if !g.Claims.IsClaiming(e.Claimer) {
		return g, nil, ErrNotClaiming
	}
	claims, succeeded := g.Claims.Accept(e.Claimer, e.Acceptor)
	g.Claims = claims
	if !succeeded {
		return g, nil, nil
	}
	g = g.awardClaimedTricks(e.Claimer)
	return g.completeHand()
}

func (g GameState) applyRejectClaim(e RejectClaimEvent) (GameState, []GameEvent, error) {
	if !g.Claims.IsClaiming(e.Claimer) {
		return g, nil, ErrNotClaiming
	}
	g.Claims = g.Claims.Reject(e.Claimer)
	return g, nil, nil
}

// awardClaimedTricks gives the claimer every remaining card in every
// seat's hand (the claim asserts claimer wins all of them) and marks the
// hand as played out, so a claimed hand reaches completeHand in the same
// state as one played to its last trick.
func (g GameState) awardClaimedTricks(claimer Seat) GameState {
	var remaining cards.Cards
	for _, h := range g.PostPassHand {
		remaining = remaining.Union(h)
	}
	g.Won = g.Won.Award(claimer, remaining)
	g.HandScores[claimer] += pointsOfCards(remaining, g.Rules)
	for seat := range g.PostPassHand {
		g.PostPassHand[seat] = cards.None
	}
	g.TricksPlayed = TricksPerHand
	return g
}
