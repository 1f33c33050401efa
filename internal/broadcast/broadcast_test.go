package broadcast

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerforbots/internal/cards"
	"github.com/lox/pokerforbots/internal/game"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestPublishAssignsMonotonicIDsToStableEvents(t *testing.T) {
	h := New(testLogger())
	sub := h.Subscribe(nil, 0)
	defer h.Unsubscribe(sub)

	e1 := h.Publish(game.PlayEvent{Seat: game.North, Card: cards.TwoClubs})
	e2 := h.Publish(game.PlayEvent{Seat: game.East, Card: cards.New(cards.Three, cards.Clubs)})

	assert.Equal(t, uint64(1), e1.ID)
	assert.Equal(t, uint64(2), e2.ID)
}

func TestEphemeralEventsAlwaysCarryIDZero(t *testing.T) {
	h := New(testLogger())
	h.Publish(game.PlayEvent{Seat: game.North, Card: cards.TwoClubs})
	env := h.Publish(game.ChatEvent{Seat: game.North, Message: "hi"})
	assert.Equal(t, uint64(0), env.ID)
}

func TestSubscriberReceivesRedactedDeal(t *testing.T) {
	h := New(testLogger())
	north := game.North
	sub := h.Subscribe(&north, 0)
	defer h.Unsubscribe(sub)

	hands := [4]cards.Cards{
		cards.Of(cards.TwoClubs),
		cards.Of(cards.New(cards.Three, cards.Clubs)),
		cards.Of(cards.New(cards.Four, cards.Clubs)),
		cards.Of(cards.New(cards.Five, cards.Clubs)),
	}
	h.Publish(game.DealEvent{Hands: hands, Seed: cards.NewChosen("test")})

	env := <-sub.Chan()
	deal, ok := env.Event.(game.DealEvent)
	require.True(t, ok)
	assert.Equal(t, hands[game.North], deal.Hands[game.North])
	assert.True(t, deal.Hands[game.East].Empty())
	assert.True(t, deal.Hands[game.South].Empty())
	assert.True(t, deal.Hands[game.West].Empty())
}

func TestSpectatorSeesNoHands(t *testing.T) {
	h := New(testLogger())
	sub := h.Subscribe(nil, 0)
	defer h.Unsubscribe(sub)

	hands := [4]cards.Cards{
		cards.Of(cards.TwoClubs),
		cards.Of(cards.New(cards.Three, cards.Clubs)),
		cards.Of(cards.New(cards.Four, cards.Clubs)),
		cards.Of(cards.New(cards.Five, cards.Clubs)),
	}
	h.Publish(game.DealEvent{Hands: hands, Seed: cards.NewChosen("test")})

	env := <-sub.Chan()
	deal, ok := env.Event.(game.DealEvent)
	require.True(t, ok)
	for seat, h := range deal.Hands {
		assert.True(t, h.Empty(), "seat %d should be blank for a spectator", seat)
	}
}

func TestRandomSeedRedactedUntilHandComplete(t *testing.T) {
	h := New(testLogger())
	sub := h.Subscribe(nil, 0)
	defer h.Unsubscribe(sub)

	seed := cards.NewRandom()
	h.Publish(game.DealEvent{Hand: 0, Seed: seed})
	dealEnv := <-sub.Chan()
	deal := dealEnv.Event.(game.DealEvent)
	assert.Equal(t, cards.SeedRedacted, deal.Seed.Kind)

	h.Publish(game.HandCompleteEvent{})

	handCompleteEnv := <-sub.Chan()
	_, ok := handCompleteEnv.Event.(game.HandCompleteEvent)
	require.True(t, ok)

	revealEnv := <-sub.Chan()
	reveal, ok := revealEnv.Event.(game.SeedRevealEvent)
	require.True(t, ok)
	assert.Equal(t, seed, reveal.Seed)
	assert.Equal(t, uint64(0), revealEnv.ID)
}

func TestChosenSeedNeverRedacted(t *testing.T) {
	h := New(testLogger())
	sub := h.Subscribe(nil, 0)
	defer h.Unsubscribe(sub)

	h.Publish(game.DealEvent{Seed: cards.NewChosen("fixture")})
	env := <-sub.Chan()
	deal := env.Event.(game.DealEvent)
	assert.Equal(t, cards.SeedChosen, deal.Seed.Kind)

	h.Publish(game.HandCompleteEvent{})
	<-sub.Chan()
	select {
	case env := <-sub.Chan():
		t.Fatalf("unexpected extra event for a chosen seed: %#v", env)
	default:
	}
}

func TestSendPassVisibleOnlyToSender(t *testing.T) {
	h := New(testLogger())
	north := game.North
	east := game.East
	subSender := h.Subscribe(&north, 0)
	subOther := h.Subscribe(&east, 0)
	defer h.Unsubscribe(subSender)
	defer h.Unsubscribe(subOther)

	h.Publish(game.SendPassEvent{Seat: game.North, Cards: cards.Of(cards.TwoClubs, cards.New(cards.Three, cards.Clubs), cards.New(cards.Four, cards.Clubs))})

	senderEnv := <-subSender.Chan()
	sent := senderEnv.Event.(game.SendPassEvent)
	assert.False(t, sent.Cards.Empty())

	otherEnv := <-subOther.Chan()
	blanked := otherEnv.Event.(game.SendPassEvent)
	assert.True(t, blanked.Cards.Empty())
}

func TestFullMailboxDropsSubscriberRatherThanBlock(t *testing.T) {
	h := New(testLogger())
	sub := h.Subscribe(nil, 0)

	for i := 0; i < 300; i++ {
		h.Publish(game.ChatEvent{Seat: game.North, Message: "flood"})
	}

	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		_, stillSubscribed := h.subscribers[sub]
		return !stillSubscribed
	}, time.Second, time.Millisecond, "subscriber with a full mailbox should have been dropped")
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := New(testLogger())
	sub := h.Subscribe(nil, 0)
	h.Unsubscribe(sub)

	_, open := <-sub.Chan()
	assert.False(t, open)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	h := New(testLogger())
	sub := h.Subscribe(nil, 0)
	h.Unsubscribe(sub)
	assert.NotPanics(t, func() { h.Unsubscribe(sub) })
}

func TestSubscribeUnredactedSeesEveryHandAndPass(t *testing.T) {
	h := New(testLogger())
	sub := h.SubscribeUnredacted()
	defer h.Unsubscribe(sub)

	hands := [4]cards.Cards{
		cards.Of(cards.TwoClubs),
		cards.Of(cards.New(cards.Three, cards.Clubs)),
		cards.Of(cards.New(cards.Four, cards.Clubs)),
		cards.Of(cards.New(cards.Five, cards.Clubs)),
	}
	h.Publish(game.DealEvent{Hands: hands, Seed: cards.NewChosen("test")})

	dealEnv := <-sub.Chan()
	deal := dealEnv.Event.(game.DealEvent)
	for seat, hand := range hands {
		assert.Equal(t, hand, deal.Hands[seat], "privileged subscriber must see every seat's hand")
	}

	passed := cards.Of(cards.TwoClubs, cards.New(cards.Three, cards.Clubs), cards.New(cards.Four, cards.Clubs))
	h.Publish(game.SendPassEvent{Seat: game.North, Cards: passed})
	passEnv := <-sub.Chan()
	sent := passEnv.Event.(game.SendPassEvent)
	assert.Equal(t, passed, sent.Cards)
}
