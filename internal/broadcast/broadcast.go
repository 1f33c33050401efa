// Package broadcast fans out a single game's event stream to many
// subscribers, each seeing a redacted view appropriate to its seat, and
// assigns stable events the monotonically increasing ids subscribers use
// to resume after a disconnect.
package broadcast

import (
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerforbots/internal/cards"
	"github.com/lox/pokerforbots/internal/game"
)

// Envelope pairs a (possibly redacted) event with its stable id. Ephemeral
// events always carry id 0.
type Envelope struct {
	ID    uint64
	Event game.GameEvent
}

// Subscriber is a single recipient of a game's event stream: a seated
// player, or a spectator with seat == nil. Send is always non-blocking;
// a subscriber that can't keep up is dropped rather than allowed to
// backpressure the game's single writer.
type Subscriber struct {
	Seat *game.Seat
	ch   chan Envelope

	privileged bool
}

// Chan returns the channel new envelopes arrive on.
func (s *Subscriber) Chan() <-chan Envelope { return s.ch }

// Hub is the per-game broadcaster: one authoritative ordered log of
// stable events plus a fan-out of subscriber mailboxes, with the
// subscriber set guarded by mu. Exactly one goroutine (the table actor in internal/tablehub)
// calls Publish; Subscribe/Unsubscribe may be called concurrently with it
// and with each other.
type Hub struct {
	logger *log.Logger

	nextID uint64 // atomic

	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
	lastDeal    *game.DealEvent // unredacted, for the end-of-hand seed reveal
}

// New returns an empty hub logging through logger (a child of the
// table actor's own logger, matching the teacher's per-connection
// logger.WithPrefix convention).
func New(logger *log.Logger) *Hub {
	return &Hub{
		logger:      logger.WithPrefix("broadcast"),
		subscribers: make(map[*Subscriber]struct{}),
	}
}

// Subscribe registers a new mailbox for seat (nil for a spectator).
// lastEventID is accepted for interface symmetry with the teacher's
// resumable-subscriber contract, but per spec.md §4.5 catch-up of missed
// stable events is the caller's job, replaying from a persisted log
// before calling Subscribe -- Subscribe itself only guarantees future
// publishes flow from here on.
func (h *Hub) Subscribe(seat *game.Seat, lastEventID uint64) *Subscriber {
	sub := &Subscriber{Seat: seat, ch: make(chan Envelope, 256)}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// SubscribeUnredacted registers a privileged subscriber that receives
// every event exactly as GameState.Apply produced it, with no per-seat
// redaction applied. It exists for trusted, server-side consumers that
// must reconstruct the authoritative GameState later -- internal/eventlog's
// Recorder, so a persisted log can be replayed with game.Replay -- never
// for an external spectator or client connection, which must always go
// through Subscribe and see the redacted view spec.md §4.5 requires.
func (h *Hub) SubscribeUnredacted() *Subscriber {
	sub := &Subscriber{ch: make(chan Envelope, 256), privileged: true}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe removes sub and closes its mailbox. Safe to call more than
// once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	_, ok := h.subscribers[sub]
	delete(h.subscribers, sub)
	h.mu.Unlock()
	if ok {
		close(sub.ch)
	}
}

// Publish delivers event to every current subscriber, redacted per
// recipient. Stable events are assigned the next id from a single atomic
// counter; ephemeral events are delivered with id 0 and are never
// assigned one, matching the never-replayed contract in spec.md §4.5.
func (h *Hub) Publish(event game.GameEvent) Envelope {
	var id uint64
	if event.Stable() {
		id = atomic.AddUint64(&h.nextID, 1)
	}
	env := Envelope{ID: id, Event: event}

	if deal, ok := event.(game.DealEvent); ok {
		h.mu.Lock()
		h.lastDeal = &deal
		h.mu.Unlock()
	}

	h.deliver(id, event)

	if _, ok := event.(game.HandCompleteEvent); ok {
		h.mu.RLock()
		deal := h.lastDeal
		h.mu.RUnlock()
		if deal != nil && deal.Seed.Kind == cards.SeedRandom {
			h.deliver(0, game.SeedRevealEvent{Hand: deal.Hand, Seed: deal.Seed})
		}
	}
	return env
}

func (h *Hub) deliver(id uint64, event game.GameEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers {
		out := Envelope{ID: id, Event: event}
		if !sub.privileged {
			out.Event = Redact(event, sub.Seat)
		}
		select {
		case sub.ch <- out:
		default:
			h.logger.Warn("subscriber mailbox full, dropping", "seat", sub.Seat)
			go h.Unsubscribe(sub)
		}
	}
}
