package game

import "github.com/lox/pokerforbots/internal/cards"

// ChargeState tracks which cards have been charged this hand and which
// seats have passed on the opportunity to charge further.
type ChargeState struct {
	Charged   [4]cards.Cards
	Done      [4]bool
	Revealed  bool // false under Blind rules until all seats have declined
}

// NewChargeState returns an empty charge state. Under Blind rules
// Revealed starts false; every other variant reveals charges as they
// happen.
func NewChargeState(rules ChargingRules) ChargeState {
	return ChargeState{Revealed: !rules.IsBlind()}
}

// All returns every card charged by any seat.
func (cs ChargeState) All() cards.Cards {
	var out cards.Cards
	for _, c := range cs.Charged {
		out = out.Union(c)
	}
	return out
}

// AllDone reports whether every seat has declined to charge further.
func (cs ChargeState) AllDone() bool {
	for _, d := range cs.Done {
		if !d {
			return false
		}
	}
	return true
}

// Charge records seat charging cards, under rules. It returns the
// updated state. If rules.AllowsChaining and cards overlap an
// already-charged card, every other seat's Done flag is reset so the round of
// charging continues (Chain/Free variants).
func (cs ChargeState) Charge(seat Seat, toCharge cards.Cards, rules ChargingRules) ChargeState {
	reopening := rules.AllowsChaining() && !toCharge.Intersect(cs.All()).Empty()
	cs.Charged[seat] = cs.Charged[seat].Union(toCharge)
	cs.Done[seat] = true
	if reopening {
		for i := range cs.Done {
			if Seat(i) != seat {
				cs.Done[i] = false
			}
		}
	}
	if rules.IsBlind() && cs.AllDone() {
		cs.Revealed = true
	}
	return cs
}

// Pass records seat declining to charge further this round.
func (cs ChargeState) Pass(seat Seat, rules ChargingRules) ChargeState {
	cs.Done[seat] = true
	if rules.IsBlind() && cs.AllDone() {
		cs.Revealed = true
	}
	return cs
}
