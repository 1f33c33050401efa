// Package tablehub implements the per-game actor described in spec.md
// §5: a single goroutine owns one game's authoritative GameState and is
// the only thing that ever calls GameState.Apply for it, serializing
// human commands and bot decisions into one ordered stream. Multiple
// Tables run concurrently, one per active game; each publishes its
// applied events to its own broadcast.Hub.
package tablehub

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerforbots/internal/bot"
	"github.com/lox/pokerforbots/internal/broadcast"
	"github.com/lox/pokerforbots/internal/cards"
	"github.com/lox/pokerforbots/internal/game"
)

// ErrTableStopped is returned by Submit once the table's actor loop has
// exited (its context was cancelled) and can no longer process commands.
var ErrTableStopped = errors.New("tablehub: table stopped")

// SeedSource produces the seed for a new hand. The default, RandomSeedSource,
// mints a fresh random seed per hand; tests use a fixed cards.NewChosen
// seed instead for reproducibility.
type SeedSource func(hand int) cards.Seed

// RandomSeedSource returns a SeedSource that deals every hand from a
// fresh random seed, redacted to observers until the hand ends.
func RandomSeedSource() SeedSource {
	return func(int) cards.Seed { return cards.NewRandom() }
}

// ChosenSeedSource returns a SeedSource that deals every hand from value,
// XORed with the hand number inside cards.Deal -- useful for
// deterministic tests and fixture replay.
func ChosenSeedSource(value string) SeedSource {
	return func(int) cards.Seed { return cards.NewChosen(value) }
}

// inboxMsg is one command waiting to be applied by the actor goroutine.
type inboxMsg struct {
	event game.GameEvent
	reply chan error
}

// Table is one game's actor: its GameState, its event broadcaster, and
// the bot strategies (if any) filling its seats.
type Table struct {
	ID     string
	logger *log.Logger
	hub    *broadcast.Hub
	rules  game.ChargingRules
	seeds  SeedSource

	inbox chan inboxMsg

	mu       sync.Mutex
	state    game.GameState
	bots     [4]bot.Strategy
	sentPass [4]bool
	charged  [4]bool
	started  bool
}

// New returns a Table for a fresh game, not yet started. Call Start once
// seats are filled (human or bot) and Run in its own goroutine to begin
// processing commands.
func New(id string, rules game.ChargingRules, logger *log.Logger, seeds SeedSource) *Table {
	if seeds == nil {
		seeds = RandomSeedSource()
	}
	return &Table{
		ID:     id,
		logger: logger.With("game", id),
		hub:    broadcast.New(logger.With("game", id)),
		rules:  rules,
		seeds:  seeds,
		state:  game.New(rules),
		inbox:  make(chan inboxMsg, 64),
	}
}

// SitBot assigns strategy to seat. Must be called before Start; seat
// assignment doesn't change mid-game.
func (t *Table) SitBot(seat game.Seat, strategy bot.Strategy) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bots[seat] = strategy
}

// Subscribe registers a new subscriber for seat (nil for a spectator).
// See broadcast.Hub.Subscribe for the catch-up contract.
func (t *Table) Subscribe(seat *game.Seat, lastEventID uint64) *broadcast.Subscriber {
	return t.hub.Subscribe(seat, lastEventID)
}

// SubscribeRecorder registers a privileged subscriber that sees every
// event unredacted, for trusted server-side consumers that must be able
// to reconstruct the authoritative GameState later -- internal/eventlog's
// Recorder. Never use this for an external connection; see
// broadcast.Hub.SubscribeUnredacted.
func (t *Table) SubscribeRecorder() *broadcast.Subscriber {
	return t.hub.SubscribeUnredacted()
}

// Unsubscribe removes sub.
func (t *Table) Unsubscribe(sub *broadcast.Subscriber) {
	t.hub.Unsubscribe(sub)
}

// State returns a snapshot of the current GameState. Safe to call
// concurrently with Run -- GameState is an immutable value type, so the
// snapshot never changes underneath the caller.
func (t *Table) State() game.GameState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Submit enqueues event for the actor goroutine to validate and apply,
// blocking until it has been processed (or rejected) or ctx is done.
// Returns the same typed errors game.Apply does (NotYourTurn,
// IllegalPlay, WrongPhase, ...) unchanged, per spec.md §7: a validation
// error leaves the table's state untouched.
func (t *Table) Submit(ctx context.Context, event game.GameEvent) error {
	reply := make(chan error, 1)
	select {
	case t.inbox <- inboxMsg{event: event, reply: reply}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start deals the first hand: it enqueues the game's first DealEvent for
// the actor loop, which applies it and then lets any bot-held seats act.
// It may be called before or after Run starts; calls after the first do
// nothing.
func (t *Table) Start() {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return
	}
	t.started = true
	t.mu.Unlock()
	seed := t.seeds(0)
	t.inbox <- inboxMsg{event: game.DealEvent{Hands: cards.Deal(seed.Bytes(), 0), Pass: game.DirectionForHand(0), Hand: 0, Seed: seed}}
}

// Run is the actor loop: it owns GameState exclusively for as long as it
// runs, applying one command at a time from the inbox and driving any
// bot-held seats to react before accepting the next command. It returns
// when ctx is cancelled.
func (t *Table) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			t.logger.Info("table stopped")
			return
		case msg := <-t.inbox:
			err := t.apply(msg.event)
			if msg.reply != nil {
				msg.reply <- err
			}
			if err == nil {
				t.driveBots(ctx)
			}
		}
	}
}

// apply runs event through GameState.Apply, publishes it (and anything
// synthesized alongside it) to the hub on success, and reacts to
// hand/game completion by dealing the next hand or leaving the table in
// its terminal Complete phase.
func (t *Table) apply(event game.GameEvent) error {
	t.mu.Lock()
	next, synthesized, err := t.state.Apply(event)
	if err != nil {
		t.mu.Unlock()
		return err
	}
	t.state = next
	if _, ok := event.(game.DealEvent); ok {
		t.sentPass = [4]bool{}
		t.charged = [4]bool{}
	}
	t.mu.Unlock()

	t.hub.Publish(event)
	gameOver := false
	for _, e := range synthesized {
		t.hub.Publish(e)
		if _, ok := e.(game.GameCompleteEvent); ok {
			gameOver = true
		}
	}

	if !gameOver {
		for _, e := range synthesized {
			if _, ok := e.(game.HandCompleteEvent); ok {
				t.dealNextHand()
			}
		}
	}
	return nil
}

func (t *Table) dealNextHand() {
	t.mu.Lock()
	hand := t.state.HandNumber + 1
	t.mu.Unlock()
	t.dealHand(hand)
}

func (t *Table) dealHand(hand int) {
	seed := t.seeds(hand)
	hands := cards.Deal(seed.Bytes(), hand)
	dir := game.DirectionForHand(hand)
	if err := t.apply(game.DealEvent{Hands: hands, Pass: dir, Hand: hand, Seed: seed}); err != nil {
		t.logger.Error("invariant violated dealing next hand", "err", err)
	}
}

// driveBots repeatedly lets a bot-held seat act -- sending a pass,
// charging, claiming, responding to a claim, or playing a card -- until
// no bot has anything left to do given the current state. Each bot
// action re-enters apply synchronously, so the single-writer invariant
// holds even though these aren't commands from the inbox.
func (t *Table) driveBots(ctx context.Context) {
	for t.driveBotsOnce(ctx) {
	}
}

func (t *Table) driveBotsOnce(ctx context.Context) bool {
	t.mu.Lock()
	state := t.state
	bots := t.bots
	sentPass := t.sentPass
	charged := t.charged
	t.mu.Unlock()

	switch {
	case state.Phase.IsPassPhase():
		for seat := game.Seat(0); seat < game.NumSeats; seat++ {
			if bots[seat] == nil || sentPass[seat] {
				continue
			}
			toSend := bots[seat].ChoosePass(ctx, state, seat)
			if err := t.apply(game.SendPassEvent{Seat: seat, Cards: toSend}); err == nil {
				t.mu.Lock()
				t.sentPass[seat] = true
				t.mu.Unlock()
			}
			return true
		}
	case state.Phase == game.PhaseCharge:
		for seat := game.Seat(0); seat < game.NumSeats; seat++ {
			if bots[seat] == nil || charged[seat] {
				continue
			}
			toCharge := bots[seat].ChooseCharge(ctx, state, seat)
			t.apply(game.ChargeEvent{Seat: seat, Cards: toCharge})
			t.mu.Lock()
			t.charged[seat] = true
			t.mu.Unlock()
			return true
		}
	case state.Phase == game.PhasePlay:
		if acted := t.driveClaims(ctx, state, bots); acted {
			return true
		}
		if state.NextActor != nil && bots[*state.NextActor] != nil {
			seat := *state.NextActor
			card := bots[seat].ChoosePlay(ctx, state, seat)
			t.apply(game.PlayEvent{Seat: seat, Card: card})
			return true
		}
	}
	return false
}

// driveClaims lets any bot seat declare a claim it can prove, and any
// bot seat with a pending claim to respond to accept or reject it.
func (t *Table) driveClaims(ctx context.Context, state game.GameState, bots [4]bot.Strategy) bool {
	for seat := game.Seat(0); seat < game.NumSeats; seat++ {
		if bots[seat] == nil || state.Claims.IsClaiming(seat) {
			continue
		}
		if bots[seat].ShouldClaim(ctx, state, seat) {
			if err := t.apply(game.ClaimEvent{Seat: seat}); err == nil {
				return true
			}
		}
	}
	for claimer := game.Seat(0); claimer < game.NumSeats; claimer++ {
		if !state.Claims.IsClaiming(claimer) {
			continue
		}
		for seat := game.Seat(0); seat < game.NumSeats; seat++ {
			if seat == claimer || bots[seat] == nil || state.Claims.HasAccepted(claimer, seat) {
				continue
			}
			if bots[seat].ShouldAcceptClaim(ctx, state, seat, claimer) {
				t.apply(game.AcceptClaimEvent{Claimer: claimer, Acceptor: seat})
			} else {
				t.apply(game.RejectClaimEvent{Claimer: claimer, Rejector: seat})
			}
			return true
		}
	}
	return false
}
