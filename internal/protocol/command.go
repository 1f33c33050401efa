package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/lox/pokerforbots/internal/cards"
	"github.com/lox/pokerforbots/internal/game"
)

// CommandType discriminates the client-to-server commands spec.md §6
// enumerates.
type CommandType string

const (
	CommandPass        CommandType = "pass"
	CommandCharge      CommandType = "charge"
	CommandPlay        CommandType = "play"
	CommandClaim       CommandType = "claim"
	CommandAcceptClaim CommandType = "accept_claim"
	CommandRejectClaim CommandType = "reject_claim"
	CommandChat        CommandType = "chat"
)

// Command is one decoded client command, always scoped to a game and
// (once the transport layer attaches it) a submitting seat. AcceptClaim
// and RejectClaim name the claimer they're responding to; the acceptor
// or rejector is always the submitting connection's own seat, not part
// of the wire payload, since a client can only accept or reject on its
// own behalf.
type Command struct {
	Type    CommandType
	GameID  string
	Cards   cards.Cards
	Card    cards.Card
	Claimer game.Seat
	Message string
}

type commandWire struct {
	Type    CommandType `json:"type"`
	GameID  string      `json:"game_id"`
	Cards   string      `json:"cards,omitempty"`
	Card    string      `json:"card,omitempty"`
	Claimer string      `json:"claimer,omitempty"`
	Message string      `json:"message,omitempty"`
}

// DecodeCommand parses one line of client input into a Command.
func DecodeCommand(data []byte) (Command, error) {
	var w commandWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Command{}, err
	}
	cmd := Command{Type: w.Type, GameID: w.GameID, Message: w.Message}
	switch w.Type {
	case CommandPass, CommandCharge:
		cs, err := decodeCards(w.Cards)
		if err != nil {
			return Command{}, err
		}
		cmd.Cards = cs
	case CommandPlay:
		c, err := cards.Parse(w.Card)
		if err != nil {
			return Command{}, err
		}
		cmd.Card = c
	case CommandAcceptClaim, CommandRejectClaim:
		claimer, err := game.ParseSeat(w.Claimer)
		if err != nil {
			return Command{}, err
		}
		cmd.Claimer = claimer
	case CommandClaim, CommandChat:
		// no extra fields beyond game_id (and, for chat, message)
	default:
		return Command{}, fmt.Errorf("protocol: unknown command type %q", w.Type)
	}
	return cmd, nil
}

// ToEvent converts cmd, submitted by seat, into the game.GameEvent that
// should be applied. AcceptClaim/RejectClaim use seat as the
// acceptor/rejector.
func (cmd Command) ToEvent(seat game.Seat) (game.GameEvent, error) {
	switch cmd.Type {
	case CommandPass:
		return game.SendPassEvent{Seat: seat, Cards: cmd.Cards}, nil
	case CommandCharge:
		return game.ChargeEvent{Seat: seat, Cards: cmd.Cards}, nil
	case CommandPlay:
		return game.PlayEvent{Seat: seat, Card: cmd.Card}, nil
	case CommandClaim:
		return game.ClaimEvent{Seat: seat}, nil
	case CommandAcceptClaim:
		return game.AcceptClaimEvent{Claimer: cmd.Claimer, Acceptor: seat}, nil
	case CommandRejectClaim:
		return game.RejectClaimEvent{Claimer: cmd.Claimer, Rejector: seat}, nil
	case CommandChat:
		return game.ChatEvent{Seat: seat, Message: cmd.Message}, nil
	default:
		return nil, fmt.Errorf("protocol: unknown command type %q", cmd.Type)
	}
}
