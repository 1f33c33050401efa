package game

import "github.com/lox/pokerforbots/internal/cards"

// Phase is the current stage of a hand.
type Phase uint8

const (
	PhasePassLeft Phase = iota
	PhasePassRight
	PhasePassAcross
	PhasePassKeeper
	PhaseCharge
	PhasePlay
	PhaseComplete
)

func passPhaseFor(dir PassDirection) Phase {
	switch dir {
	case PassLeft:
		return PhasePassLeft
	case PassRight:
		return PhasePassRight
	case PassAcross:
		return PhasePassAcross
	default:
		return PhasePassKeeper
	}
}

// IsPassPhase reports whether p is one of the four pass-direction phases.
func (p Phase) IsPassPhase() bool {
	return p == PhasePassLeft || p == PhasePassRight || p == PhasePassAcross || p == PhasePassKeeper
}

func (p Phase) String() string {
	switch p {
	case PhasePassLeft:
		return "pass_left"
	case PhasePassRight:
		return "pass_right"
	case PhasePassAcross:
		return "pass_across"
	case PhasePassKeeper:
		return "pass_keeper"
	case PhaseCharge:
		return "charge"
	case PhasePlay:
		return "play"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// GameState is the authoritative, event-sourced root aggregate for one
// Hearts game (a fixed sequence of HandsPerGame hands). It is
// immutable from the caller's point of view: Apply returns a new value
// rather than mutating in place, so the per-game actor in
// internal/tablehub can snapshot it cheaply for redacted views.
type GameState struct {
	Rules ChargingRules
	Phase Phase

	HandNumber int
	Seed       cards.Seed

	PrePassHand  [4]cards.Cards
	PostPassHand [4]cards.Cards
	sentPass     [4]cards.Cards
	sentDone     [4]bool

	Charges ChargeState

	NextActor   *Seat
	Played      cards.Cards
	LedSuits    cards.SuitSet
	CurrentTrick Trick
	TricksPlayed int

	Won    WonState
	Claims ClaimState
	Void   VoidTracker

	PassDirection PassDirection

	// HandScores accumulates this hand's running point totals,
	// trick-by-trick, since "ten doubles the trick" is scoped to
	// whichever single trick captured the Ten of Clubs (see won.go).
	HandScores [4]int
	// GameScores accumulates completed-hand scores across the game.
	GameScores [4]int

	Corrupt bool
}

// New returns a fresh GameState before any hand has been dealt.
func New(rules ChargingRules) GameState {
	return GameState{Rules: rules, Phase: PhaseComplete}
}

// Apply validates event against the current state and, if legal,
// returns the resulting state plus any events synthesized as a direct
// consequence (HandComplete, GameComplete, ReceivePass). On a validation
// error the original state is returned unchanged, per spec.md §7: the
// game's invariants are never left in an inconsistent in-between state.
func (g GameState) Apply(event GameEvent) (GameState, []GameEvent, error) {
	if g.Corrupt {
		return g, nil, ErrGameCorrupt
	}
	switch e := event.(type) {
	case DealEvent:
		return g.applyDeal(e)
	case SendPassEvent:
		return g.applySendPass(e)
	case ReceivePassEvent:
		return g.applyReceivePass(e)
	case ChargeEvent:
		return g.applyCharge(e)
	case PlayEvent:
		return g.applyPlay(e)
	case ClaimEvent:
		return g.applyClaim(e)
	case AcceptClaimEvent:
		return g.applyAcceptClaim(e)
	case RejectClaimEvent:
		return g.applyRejectClaim(e)
	default:
		return g, nil, ErrUnknownEvent
	}
}

func (g GameState) applyDeal(e DealEvent) (GameState, []GameEvent, error) {
	if g.Phase != PhaseComplete {
		return g, nil, ErrWrongPhase
	}
	next := GameState{
		Rules:         g.Rules,
		HandNumber:    e.Hand,
		Seed:          e.Seed,
		PrePassHand:   e.Hands,
		PostPassHand:  e.Hands,
		Charges:       NewChargeState(g.Rules),
		Won:           NewWonState(),
		Claims:        NewClaimState(),
		Void:          NewVoidTracker(),
		PassDirection: e.Pass,
		GameScores:    g.GameScores,
	}
	if e.Pass == PassKeeper {
		next.Phase = PhaseCharge
	} else {
		next.Phase = passPhaseFor(e.Pass)
	}
	return next, nil, nil
}

func (g GameState) applySendPass(e SendPassEvent) (GameState, []GameEvent, error) {
	if !g.Phase.IsPassPhase() {
		return g, nil, ErrWrongPhase
	}
	if g.sentDone[e.Seat] {
		return g, nil, ErrAlreadyPassed
	}
	if e.Cards.Count() != 3 || !e.Cards.IsSubsetOf(g.PrePassHand[e.Seat]) {
		return g, nil, ErrIllegalPass
	}
	g.sentPass[e.Seat] = e.Cards
	g.sentDone[e.Seat] = true

	if !allTrue(g.sentDone) {
		return g, nil, nil
	}

	var synth []GameEvent
	for seat := Seat(0); seat < NumSeats; seat++ {
		from := g.PassDirection.sender(seat)
		received := g.sentPass[from]
		synth = append(synth, ReceivePassEvent{Seat: seat, Cards: received})
	}
	next := g
	for _, ev := range synth {
		var err error
		next, _, err = next.applyReceivePass(ev.(ReceivePassEvent))
		if err != nil {
			return g, nil, err
		}
	}
	next.Phase = PhaseCharge
	return next, synth, nil
}

// sender returns the seat that passes to seat under direction d (the
// inverse of Target).
func (d PassDirection) sender(seat Seat) Seat {
	switch d {
	case PassLeft:
		return seat.Next().Next().Next()
	case PassRight:
		return seat.Next()
	case PassAcross:
		return seat.Next().Next()
	default:
		return seat
	}
}

func (g GameState) applyReceivePass(e ReceivePassEvent) (GameState, []GameEvent, error) {
	g.PostPassHand[e.Seat] = g.PostPassHand[e.Seat].Minus(g.sentPass[e.Seat]).Union(e.Cards)
	return g, nil, nil
}

func (g GameState) applyCharge(e ChargeEvent) (GameState, []GameEvent, error) {
	if g.Phase != PhaseCharge {
		return g, nil, ErrWrongPhase
	}
	if g.Charges.Done[e.Seat] && !g.Rules.AllowsChaining() {
		return g, nil, ErrAlreadyCharged
	}
	if !e.Cards.IsSubsetOf(g.Rules.Chargeable()) || !e.Cards.IsSubsetOf(g.PostPassHand[e.Seat]) {
		return g, nil, ErrIllegalCharge
	}
	if !e.Cards.Intersect(g.Charges.All().Minus(g.Charges.Charged[e.Seat])).Empty() {
		// someone else already charged one of these cards
		if !g.Rules.AllowsChaining() {
			return g, nil, ErrIllegalCharge
		}
	}
	g.Charges = g.Charges.Charge(e.Seat, e.Cards, g.Rules)

	if !g.Charges.AllDone() {
		return g, nil, nil
	}
	g.Phase = PhasePlay
	leader := holderOf(g.PostPassHand, cards.TwoClubs)
	g.NextActor = &leader
	g.CurrentTrick = NewTrick(leader)
	return g, nil, nil
}

func holderOf(hands [4]cards.Cards, c cards.Card) Seat {
	for seat, h := range hands {
		if h.Contains(c) {
			return Seat(seat)
		}
	}
	return North
}

func allTrue(xs [4]bool) bool {
	for _, x := range xs {
		if !x {
			return false
		}
	}
	return true
}
