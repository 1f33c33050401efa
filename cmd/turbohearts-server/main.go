package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lox/pokerforbots/internal/bot"
	"github.com/lox/pokerforbots/internal/eventlog"
	"github.com/lox/pokerforbots/internal/game"
	"github.com/lox/pokerforbots/internal/gameid"
	"github.com/lox/pokerforbots/internal/tablehub"
	"github.com/lox/pokerforbots/internal/transport"
)

type CLI struct {
	Addr     string   `kong:"default=':8080',help='Server address'"`
	Debug    bool     `kong:"help='Enable debug logging'"`
	GameID   string   `kong:"help='Game id exposed at /ws (auto-generated if unset)'"`
	Rules    string   `kong:"default='classic',help='Charging rules: classic, blind, bridge, chain, free'"`
	Bots     []string `kong:"default='heuristic,heuristic,heuristic',help='Bot strategy filling east, south and west: random, duck, gotta_try, heuristic, simulate'"`
	Seed     string   `kong:"help='Fixed seed value dealt every hand (reproducible games); random per hand if unset'"`
	BotSeed  int64    `kong:"help='RNG seed for bot decisions (0 = time-based)'"`
	RecordTo string   `kong:"help='Append the stable event log to this file as newline-delimited JSON'"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("turbohearts-server"),
		kong.Description("Event-sourced four-seat Hearts server"),
		kong.UsageOnError(),
	)

	zlevel := zerolog.InfoLevel
	if cli.Debug {
		zlevel = zerolog.DebugLevel
	}
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zlevel).With().Timestamp().Logger()

	rules, err := parseRules(cli.Rules)
	if err != nil {
		kctx.FatalIfErrorf(err)
	}

	if cli.GameID == "" {
		cli.GameID = gameid.Generate()
	}

	coreLevel := log.InfoLevel
	if cli.Debug {
		coreLevel = log.DebugLevel
	}
	coreLogger := log.NewWithOptions(os.Stderr, log.Options{Level: coreLevel, Prefix: "table"})

	var seeds tablehub.SeedSource
	if cli.Seed != "" {
		seeds = tablehub.ChosenSeedSource(cli.Seed)
	} else {
		seeds = tablehub.RandomSeedSource()
	}

	botSeed := cli.BotSeed
	if botSeed == 0 {
		botSeed = time.Now().UnixNano()
	}
	botRNG := rand.New(rand.NewSource(botSeed))

	registry := tablehub.NewRegistry(coreLogger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	table := registry.Create(ctx, cli.GameID, rules, seeds)
	botSeats := []game.Seat{game.East, game.South, game.West}
	for i, kindStr := range cli.Bots {
		if i >= len(botSeats) {
			break
		}
		table.SitBot(botSeats[i], bot.New(bot.Kind(kindStr), botRNG))
	}
	table.Start()

	if cli.RecordTo != "" {
		rec := eventlog.New(cli.RecordTo)
		sub := table.SubscribeRecorder()
		go rec.Watch(sub, func(err error) {
			zlog.Error().Err(err).Str("path", cli.RecordTo).Msg("failed to persist event log")
		})
	}

	humanSeat := &seatGate{seat: game.North}
	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			zlog.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		seat := humanSeat.claim()
		if seat != nil {
			zlog.Info().Str("seat", seat.String()).Msg("client seated")
		} else {
			zlog.Info().Msg("client connected as spectator")
		}
		transport.New(ws, table, seat, coreLogger).Serve(r.Context(), 0)
	})

	srv := &http.Server{Addr: cli.Addr, Handler: mux}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		zlog.Info().Str("addr", cli.Addr).Str("game_id", cli.GameID).Str("rules", rules.String()).Msg("server starting")
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			kctx.FatalIfErrorf(err)
		}
	case sig := <-sigChan:
		zlog.Info().Str("signal", sig.String()).Msg("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zlog.Error().Err(err).Msg("graceful shutdown failed")
		}
		registry.Remove(cli.GameID)
	}
}

// seatGate hands out seat exactly once, to the first caller; every
// later caller becomes a spectator. Upgrade handlers run concurrently
// per connection, so claim is mutex-guarded.
type seatGate struct {
	seat game.Seat

	mu      sync.Mutex
	claimed bool
}

func (g *seatGate) claim() *game.Seat {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.claimed {
		return nil
	}
	g.claimed = true
	seat := g.seat
	return &seat
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
		return 0, fmt.Errorf("unknown charging rules %q", s)
	}
}
