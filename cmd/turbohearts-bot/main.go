package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"
	"github.com/rs/zerolog"

	"github.com/lox/pokerforbots/internal/bot"
	"github.com/lox/pokerforbots/internal/game"
	"github.com/lox/pokerforbots/internal/tablehub"
)

// CLI seats four internal bot.Strategy values against each other and
// reports aggregate scores -- the bot-vs-bot benchmark harness this
// game's bots are built for, since game.GameState carries every seat's
// hand and strategies decide from the authoritative state directly
// (see internal/bot's package doc). A networked external bot would need
// its own client-side state tracker rebuilt from the redacted event
// stream; nothing here plays that role.
type CLI struct {
	Games   int      `kong:"default='1000',help='Number of games to simulate'"`
	Rules   string   `kong:"default='classic',help='Charging rules: classic, blind, bridge, chain, free'"`
	Seats   []string `kong:"default='heuristic,heuristic,heuristic,heuristic',help='Strategy for north,east,south,west: random, duck, gotta_try, heuristic, simulate'"`
	Seed    int64    `kong:"help='RNG seed (0 = time-based)'"`
	Verbose bool     `kong:"help='Enable debug logging'"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("turbohearts-bot"),
		kong.Description("Simulate bot-vs-bot Hearts games and report score statistics"),
		kong.UsageOnError(),
	)

	level := zerolog.InfoLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	if len(cli.Seats) != 4 {
		kctx.FatalIfErrorf(fmt.Errorf("need exactly 4 seat strategies, got %d", len(cli.Seats)))
	}

	rules, err := parseRules(cli.Rules)
	if err != nil {
		kctx.FatalIfErrorf(err)
	}

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	logger.Info().
		Int("games", cli.Games).
		Str("rules", rules.String()).
		Strs("seats", cli.Seats).
		Int64("seed", seed).
		Msg("starting simulation")

	totals := [4]int64{}
	coreLogger := charmlog.NewWithOptions(io.Discard, charmlog.Options{})
	start := time.Now()

	for i := 0; i < cli.Games; i++ {
		scores := playOneGame(rules, cli.Seats, rng, coreLogger)
		for seat, s := range scores {
			totals[seat] += int64(s)
		}
		if cli.Verbose && (i+1)%100 == 0 {
			logger.Debug().Int("completed", i+1).Msg("progress")
		}
	}

	elapsed := time.Since(start)
	logger.Info().Dur("elapsed", elapsed).Msg("simulation complete")
	for seat := game.Seat(0); seat < game.NumSeats; seat++ {
		mean := float64(totals[seat]) / math.Max(1, float64(cli.Games))
		logger.Info().
			Str("seat", seat.String()).
			Str("strategy", cli.Seats[seat]).
			Float64("mean_score", mean).
			Msg("result")
	}
}

// playOneGame runs a single four-hand game to completion in-process and
// returns its final per-seat scores. It subscribes to the table's hub as
// a spectator purely to learn when the game has finished, rather than
// polling State() in a loop.
func playOneGame(rules game.ChargingRules, seatKinds []string, rng *rand.Rand, coreLogger *charmlog.Logger) [4]int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	table := tablehub.New(fmt.Sprintf("sim-%d", rng.Int63()), rules, coreLogger, tablehub.RandomSeedSource())
	for seat := game.Seat(0); seat < game.NumSeats; seat++ {
		table.SitBot(seat, bot.New(bot.Kind(seatKinds[seat]), rand.New(rand.NewSource(rng.Int63()))))
	}

	sub := table.Subscribe(nil, 0)
	defer table.Unsubscribe(sub)

	go table.Run(ctx)
	table.Start()

	for env := range sub.Chan() {
		if complete, ok := env.Event.(game.GameCompleteEvent); ok {
			return complete.FinalScores
		}
	}
	return table.State().GameScores
}

func parseRules(s string) (game.ChargingRules, error) {
	switch strings.ToLower(s) {
	case "classic":
		return game.Classic, nil
	case "blind":
		return game.Blind, nil
	case "bridge":
		return game.Bridge, nil
	case "chain":
		return game.Chain, nil
	case "free":
		return game.Free, nil
	default:
		return game.Classic, fmt.Errorf("unknown charging rules %q", s)
	}
}
