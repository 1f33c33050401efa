// Package protocol implements the wire format spec.md §6 describes: the
// event stream is newline-delimited JSON envelopes with a "type"
// discriminator and an "event_id" (0 for ephemeral events), and cards
// and seats are encoded as the short strings the card algebra and seat
// packages already print ("5c", "n").
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/lox/pokerforbots/internal/broadcast"
	"github.com/lox/pokerforbots/internal/cards"
	"github.com/lox/pokerforbots/internal/game"
)

// Envelope is the single flattened JSON shape every event is carried in;
// client commands have their own shape (see DecodeCommand). Only the
// fields relevant to Type are populated; empty fields are dropped by
// their omitempty tags, except the fixed-size hands array, which is
// always written.
type Envelope struct {
	Type    game.EventType `json:"type"`
	EventID uint64         `json:"event_id"`

	GameID string `json:"game_id,omitempty"`

	Hands [4]string `json:"hands,omitempty"`
	Pass  string    `json:"pass,omitempty"`
	Hand  int       `json:"hand,omitempty"`
	Seed  *seedWire `json:"seed,omitempty"`

	Seat  string `json:"seat,omitempty"`
	Cards string `json:"cards,omitempty"`
	Card  string `json:"card,omitempty"`

	Scores      *[4]int `json:"scores,omitempty"`
	FinalScores *[4]int `json:"final_scores,omitempty"`

	Claimer  string `json:"claimer,omitempty"`
	Acceptor string `json:"acceptor,omitempty"`
	Rejector string `json:"rejector,omitempty"`

	Message string `json:"message,omitempty"`
}

type seedWire struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

func encodeSeed(s cards.Seed) *seedWire {
	return &seedWire{Type: string(s.Kind), Value: s.Value}
}

func decodeSeed(w *seedWire) cards.Seed {
	if w == nil {
		return cards.Seed{}
	}
	return cards.Seed{Kind: cards.SeedKind(w.Type), Value: w.Value}
}

func encodeCards(cs cards.Cards) string {
	return cs.String()
}

func decodeCards(s string) (cards.Cards, error) {
	var out cards.Cards
	if s == "" {
		return out, nil
	}
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ' ' {
			if i > start {
				c, err := cards.Parse(s[start:i])
				if err != nil {
					return 0, err
				}
				out = out.Add(c)
			}
			start = i + 1
		}
	}
	return out, nil
}

// EncodeEvent renders a stable-id envelope (id from broadcast.Envelope)
// wrapping event into the wire Envelope.
func EncodeEvent(env broadcast.Envelope) (Envelope, error) {
	w := Envelope{Type: env.Event.EventType(), EventID: env.ID}
	switch e := env.Event.(type) {
	case game.DealEvent:
		for i, h := range e.Hands {
			w.Hands[i] = encodeCards(h)
		}
		w.Pass = passWire(e.Pass)
		w.Hand = e.Hand
		w.Seed = encodeSeed(e.Seed)
	case game.SendPassEvent:
		w.Seat = e.Seat.String()
		w.Cards = encodeCards(e.Cards)
	case game.ReceivePassEvent:
		w.Seat = e.Seat.String()
		w.Cards = encodeCards(e.Cards)
	case game.ChargeEvent:
		w.Seat = e.Seat.String()
		w.Cards = encodeCards(e.Cards)
	case game.PlayEvent:
		w.Seat = e.Seat.String()
		w.Card = e.Card.String()
	case game.HandCompleteEvent:
		scores := e.Scores
		w.Scores = &scores
	case game.GameCompleteEvent:
		scores := e.FinalScores
		w.FinalScores = &scores
	case game.ClaimEvent:
		w.Seat = e.Seat.String()
	case game.AcceptClaimEvent:
		w.Claimer = e.Claimer.String()
		w.Acceptor = e.Acceptor.String()
	case game.RejectClaimEvent:
		w.Claimer = e.Claimer.String()
		w.Rejector = e.Rejector.String()
	case game.ChatEvent:
		w.Seat = e.Seat.String()
		w.Message = e.Message
	case game.TypingEvent:
		w.Seat = e.Seat.String()
	case game.SitEvent:
		w.Seat = e.Seat.String()
	case game.LeaveEvent:
		w.Seat = e.Seat.String()
	case game.SeedRevealEvent:
		w.Hand = e.Hand
		w.Seed = encodeSeed(e.Seed)
	default:
		return Envelope{}, fmt.Errorf("protocol: unknown event type %T", e)
	}
	return w, nil
}

func passWire(d game.PassDirection) string {
	switch d {
	case game.PassLeft:
		return "left"
	case game.PassRight:
		return "right"
	case game.PassAcross:
		return "across"
	default:
		return "keeper"
	}
}

func parsePassWire(s string) (game.PassDirection, error) {
	switch s {
	case "left":
		return game.PassLeft, nil
	case "right":
		return game.PassRight, nil
	case "across":
		return game.PassAcross, nil
	case "keeper":
		return game.PassKeeper, nil
	default:
		return 0, fmt.Errorf("protocol: unknown pass direction %q", s)
	}
}

// DecodeEvent reconstructs the game.GameEvent an Envelope carries. It is
// the inverse of EncodeEvent: encode then decode reproduces an
// event equal to the original, per spec.md §8's round-trip law.
func DecodeEvent(w Envelope) (game.GameEvent, error) {
	switch w.Type {
	case game.EventDeal:
		var hands [4]cards.Cards
		for i, h := range w.Hands {
			cs, err := decodeCards(h)
			if err != nil {
				return nil, err
			}
			hands[i] = cs
		}
		pass, err := parsePassWire(w.Pass)
		if err != nil {
			return nil, err
		}
		return game.DealEvent{Hands: hands, Pass: pass, Hand: w.Hand, Seed: decodeSeed(w.Seed)}, nil
	case game.EventSendPass:
		seat, err := game.ParseSeat(w.Seat)
		if err != nil {
			return nil, err
		}
		cs, err := decodeCards(w.Cards)
		if err != nil {
			return nil, err
		}
		return game.SendPassEvent{Seat: seat, Cards: cs}, nil
	case game.EventReceivePass:
		seat, err := game.ParseSeat(w.Seat)
		if err != nil {
			return nil, err
		}
		cs, err := decodeCards(w.Cards)
		if err != nil {
			return nil, err
		}
		return game.ReceivePassEvent{Seat: seat, Cards: cs}, nil
	case game.EventCharge:
		seat, err := game.ParseSeat(w.Seat)
		if err != nil {
			return nil, err
		}
		cs, err := decodeCards(w.Cards)
		if err != nil {
			return nil, err
		}
		return game.ChargeEvent{Seat: seat, Cards: cs}, nil
	case game.EventPlay:
		seat, err := game.ParseSeat(w.Seat)
		if err != nil {
			return nil, err
		}
		c, err := cards.Parse(w.Card)
		if err != nil {
			return nil, err
		}
		return game.PlayEvent{Seat: seat, Card: c}, nil
	case game.EventHandComplete:
		var scores [4]int
		if w.Scores != nil {
			scores = *w.Scores
		}
		return game.HandCompleteEvent{Scores: scores}, nil
	case game.EventGameComplete:
		var scores [4]int
		if w.FinalScores != nil {
			scores = *w.FinalScores
		}
		return game.GameCompleteEvent{FinalScores: scores}, nil
	case game.EventClaim:
		seat, err := game.ParseSeat(w.Seat)
		if err != nil {
			return nil, err
		}
		return game.ClaimEvent{Seat: seat}, nil
	case game.EventAcceptClaim:
		claimer, err := game.ParseSeat(w.Claimer)
		if err != nil {
			return nil, err
		}
		acceptor, err := game.ParseSeat(w.Acceptor)
		if err != nil {
			return nil, err
		}
		return game.AcceptClaimEvent{Claimer: claimer, Acceptor: acceptor}, nil
	case game.EventRejectClaim:
		claimer, err := game.ParseSeat(w.Claimer)
		if err != nil {
			return nil, err
		}
		rejector, err := game.ParseSeat(w.Rejector)
		if err != nil {
			return nil, err
		}
		return game.RejectClaimEvent{Claimer: claimer, Rejector: rejector}, nil
	case game.EventChat:
		seat, err := game.ParseSeat(w.Seat)
		if err != nil {
			return nil, err
		}
		return game.ChatEvent{Seat: seat, Message: w.Message}, nil
	case game.EventTyping:
		seat, err := game.ParseSeat(w.Seat)
		if err != nil {
			return nil, err
		}
		return game.TypingEvent{Seat: seat}, nil
	case game.EventSit:
		seat, err := game.ParseSeat(w.Seat)
		if err != nil {
			return nil, err
		}
		return game.SitEvent{Seat: seat}, nil
	case game.EventLeave:
		seat, err := game.ParseSeat(w.Seat)
		if err != nil {
			return nil, err
		}
		return game.LeaveEvent{Seat: seat}, nil
	case game.EventSeedReveal:
		return game.SeedRevealEvent{Hand: w.Hand, Seed: decodeSeed(w.Seed)}, nil
	default:
		return nil, fmt.Errorf("protocol: unknown wire type %q", w.Type)
	}
}

// MarshalEvent renders env as a single line of newline-delimited JSON,
// per spec.md §6.
func MarshalEvent(env broadcast.Envelope) ([]byte, error) {
	w, err := EncodeEvent(env)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalEvent parses one line of the event stream back into a
// GameEvent plus its stable id.
func UnmarshalEvent(data []byte) (broadcast.Envelope, error) {
	var w Envelope
	if err := json.Unmarshal(data, &w); err != nil {
		return broadcast.Envelope{}, err
	}
	ev, err := DecodeEvent(w)
	if err != nil {
		return broadcast.Envelope{}, err
	}
	return broadcast.Envelope{ID: w.EventID, Event: ev}, nil
}
