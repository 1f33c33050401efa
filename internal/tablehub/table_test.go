package tablehub_test

import (
	"context"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerforbots/internal/bot"
	"github.com/lox/pokerforbots/internal/game"
	"github.com/lox/pokerforbots/internal/tablehub"
)

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// TestFourBotsPlayAGameToCompletion drives a full game (HandsPerGame
// hands) with four RandomStrategy bots seated and asserts the table
// reaches PhaseComplete on the last hand with a consistent score total,
// exercising the actor loop, apply, and bot-driving together end to end.
func TestFourBotsPlayAGameToCompletion(t *testing.T) {
	table := tablehub.New("g1", game.Classic, discardLogger(), tablehub.ChosenSeedSource("test"))
	rng := rand.New(rand.NewSource(1))
	for seat := game.Seat(0); seat < game.NumSeats; seat++ {
		table.SitBot(seat, bot.NewRandomStrategy(rand.New(rand.NewSource(rng.Int63()))))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go table.Run(ctx)
	table.Start()

	require.Eventually(t, func() bool {
		state := table.State()
		return state.Phase == game.PhaseComplete && state.HandNumber == game.HandsPerGame-1
	}, 5*time.Second, time.Millisecond)

	state := table.State()
	total := 0
	for _, s := range state.GameScores {
		total += s
	}
	assert.Equal(t, 26*game.HandsPerGame, total)
}

// TestSubmitRejectsIllegalPlay exercises spec.md §7's policy: a
// validation error is reported to the submitter and the table's state
// is left unchanged.
func TestSubmitRejectsIllegalPlay(t *testing.T) {
	table := tablehub.New("g2", game.Classic, discardLogger(), tablehub.ChosenSeedSource("test"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go table.Run(ctx)
	table.Start()

	require.Eventually(t, func() bool {
		return table.State().Phase.IsPassPhase()
	}, time.Second, time.Millisecond)

	before := table.State()
	err := table.Submit(ctx, game.PlayEvent{Seat: game.North, Card: 0})
	require.Error(t, err)
	assert.Equal(t, before, table.State())
}

// TestSubmitAppliesLegalPass exercises a human-submitted command
// alongside bot-held seats: North is human, the rest are GottaTry bots.
func TestSubmitAppliesLegalPass(t *testing.T) {
	table := tablehub.New("g3", game.Classic, discardLogger(), tablehub.ChosenSeedSource("test"))
	table.SitBot(game.East, bot.GottaTryStrategy{})
	table.SitBot(game.South, bot.GottaTryStrategy{})
	table.SitBot(game.West, bot.GottaTryStrategy{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go table.Run(ctx)
	table.Start()

	require.Eventually(t, func() bool {
		return table.State().Phase.IsPassPhase()
	}, time.Second, time.Millisecond)

	hand := table.State().PrePassHand[game.North]
	toPass := hand.PickN(3)
	err := table.Submit(ctx, game.SendPassEvent{Seat: game.North, Cards: toPass})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return table.State().Phase == game.PhaseCharge || table.State().Phase == game.PhasePlay
	}, 2*time.Second, time.Millisecond)
}
