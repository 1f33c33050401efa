package broadcast

import (
	"github.com/lox/pokerforbots/internal/cards"
	"github.com/lox/pokerforbots/internal/game"
)

// Redact returns the view of event visible to seat (nil for a
// spectator), per spec.md §4.5: a recipient's own Deal reveals only
// their own hand, everyone else's hands are blanked; pass contents are
// visible only to the sender and receiver; a chosen seed is always
// visible, a random seed is hidden until revealed at hand end.
func Redact(event game.GameEvent, seat *game.Seat) game.GameEvent {
	switch e := event.(type) {
	case game.DealEvent:
		return redactDeal(e, seat)
	case game.SendPassEvent:
		if seat == nil || *seat != e.Seat {
			e.Cards = 0
		}
		return e
	case game.ReceivePassEvent:
		if seat == nil || *seat != e.Seat {
			e.Cards = 0
		}
		return e
	default:
		return event
	}
}

func redactDeal(e game.DealEvent, seat *game.Seat) game.GameEvent {
	for s := range e.Hands {
		if seat == nil || game.Seat(s) != *seat {
			e.Hands[s] = 0
		}
	}
	if e.Seed.Kind == cards.SeedRandom {
		e.Seed = e.Seed.Redact()
	}
	return e
}
