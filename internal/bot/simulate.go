package bot

import (
	"context"
	"math/rand"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerforbots/internal/cards"
	"github.com/lox/pokerforbots/internal/game"
)

// SimulateStrategy is the Monte Carlo bot described in spec.md §4.6: for
// each legal play it samples hidden deals consistent with the visible
// state and void inference, rolls out the rest of the hand with a fast
// policy, and picks the move with the lowest expected point cost for its
// own seat (Hearts scores are penalties, so lower is better; a shot moon
// simply falls out of GameState's own moon-shoot redistribution at the
// end of each simulated hand).
//
// Two modes select how many playouts run per candidate:
//   - Deadline > 0 drives a wall-clock-bounded worker pool (live play).
//     Sample counts vary with scheduling, so results are not exactly
//     reproducible across runs.
//   - Deadline == 0 and Samples > 0 runs exactly Samples playouts per
//     candidate on a single goroutine, consuming Rng in a fixed order.
//     This is the deterministic mode spec.md §8's reproducibility
//     scenario exercises.
type SimulateStrategy struct {
	Rng      *rand.Rand
	Rollout  Strategy      // fast policy used to finish sampled hands; HeuristicStrategy if nil
	Deadline time.Duration // wall-clock budget for ChoosePlay; 0 disables
	Samples  int           // playouts per candidate in deterministic mode
	Workers  int           // worker pool size in deadline mode; GOMAXPROCS(0) if 0
}

// NewSimulateStrategy returns a SimulateStrategy configured for live play:
// a 4 second deadline and one worker per CPU, matching spec.md §4.6's
// example deadline.
func NewSimulateStrategy(rng *rand.Rand) *SimulateStrategy {
	return &SimulateStrategy{Rng: rng, Deadline: 4 * time.Second}
}

func (s *SimulateStrategy) rolloutPolicy() Strategy {
	if s.Rollout != nil {
		return s.Rollout
	}
	return HeuristicStrategy{}
}

func (s *SimulateStrategy) workerCount() int {
	if s.Workers > 0 {
		return s.Workers
	}
	if n := runtime.GOMAXPROCS(0); n > 0 {
		return n
	}
	return 1
}

// ChoosePass delegates to the same danger-ranked heuristic pass the
// Heuristic strategy uses -- simulating the pass phase would require
// playing out an entire hand per candidate triple, 286 combinations
// deep, for a decision four cards away from paying off.
func (s *SimulateStrategy) ChoosePass(ctx context.Context, state game.GameState, seat game.Seat) cards.Cards {
	return HeuristicStrategy{}.ChoosePass(ctx, state, seat)
}

// ChooseCharge delegates to HeuristicStrategy for the same reason as
// ChoosePass.
func (s *SimulateStrategy) ChooseCharge(ctx context.Context, state game.GameState, seat game.Seat) cards.Cards {
	return HeuristicStrategy{}.ChooseCharge(ctx, state, seat)
}

// ChoosePlay is the centerpiece: it samples opponent hands consistent
// with the known void inferences and remaining hand sizes, rolls out
// each candidate play to the end of the hand with the rollout policy,
// and returns the legal play with the lowest mean point cost.
func (s *SimulateStrategy) ChoosePlay(ctx context.Context, state game.GameState, seat game.Seat) cards.Card {
	legal := state.LegalPlays(seat).Slice()
	if len(legal) == 0 {
		return 0
	}
	if len(legal) == 1 {
		return legal[0]
	}

	sums := make([]int64, len(legal))
	counts := make([]int64, len(legal))

	if s.Deadline <= 0 && s.Samples > 0 {
		s.runDeterministic(state, seat, legal, sums, counts)
	} else {
		s.runDeadlineBound(ctx, state, seat, legal, sums, counts)
	}

	best, bestMean := legal[0], meanOf(sums[0], counts[0])
	for i := 1; i < len(legal); i++ {
		mean := meanOf(sums[i], counts[i])
		if mean < bestMean {
			best, bestMean = legal[i], mean
		}
	}
	return best
}

func meanOf(sum, count int64) float64 {
	if count == 0 {
		return 1 << 30
	}
	return float64(sum) / float64(count)
}

// runDeterministic plays out Samples rollouts per candidate in order, on
// the caller's goroutine, consuming s.Rng deterministically.
func (s *SimulateStrategy) runDeterministic(state game.GameState, seat game.Seat, legal []cards.Card, sums, counts []int64) {
	for i, c := range legal {
		for n := 0; n < s.Samples; n++ {
			sums[i] += int64(s.playout(s.Rng, state, seat, c))
			counts[i]++
		}
	}
}

// runDeadlineBound spreads playouts across a worker pool until ctx (or
// s.Deadline, whichever is sooner) expires, cycling through every
// candidate on each worker so slower candidates aren't starved.
func (s *SimulateStrategy) runDeadlineBound(ctx context.Context, state game.GameState, seat game.Seat, legal []cards.Card, sums, counts []int64) {
	if s.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Deadline)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(ctx)
	workers := s.workerCount()
	for w := 0; w < workers; w++ {
		seed := s.Rng.Int63() ^ int64(uint64(w)*0x9e3779b97f4a7c15)
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed))
			for {
				for i, c := range legal {
					select {
					case <-gctx.Done():
						return nil
					default:
					}
					score := s.playout(rng, state, seat, c)
					atomic.AddInt64(&sums[i], int64(score))
					atomic.AddInt64(&counts[i], 1)
				}
			}
		})
	}
	_ = g.Wait()
}

// playout samples a hidden deal consistent with state, plays candidate,
// then rolls out the rest of the hand with the rollout policy, returning
// seat's point cost for this hand (GameScores delta).
func (s *SimulateStrategy) playout(rng *rand.Rand, state game.GameState, seat game.Seat, candidate cards.Card) int {
	sampled := sampleOpponentHands(rng, state, seat)
	hypothetical := state
	for other := game.Seat(0); other < game.NumSeats; other++ {
		if other != seat {
			hypothetical.PostPassHand[other] = sampled[other]
		}
	}

	cur, _, err := hypothetical.Apply(game.PlayEvent{Seat: seat, Card: candidate})
	if err != nil {
		return 1 << 20
	}

	rollout := s.rolloutPolicy()
	for cur.Phase == game.PhasePlay && cur.NextActor != nil {
		actor := *cur.NextActor
		card := rollout.ChoosePlay(context.Background(), cur, actor)
		next, _, err := cur.Apply(game.PlayEvent{Seat: actor, Card: card})
		if err != nil {
			return 1 << 20
		}
		cur = next
	}
	return cur.GameScores[seat] - state.GameScores[seat]
}

func (s *SimulateStrategy) ShouldClaim(ctx context.Context, state game.GameState, seat game.Seat) bool {
	return defaultShouldClaim(state, seat)
}

func (s *SimulateStrategy) ShouldAcceptClaim(ctx context.Context, state game.GameState, _ game.Seat, claimer game.Seat) bool {
	return defaultShouldAcceptClaim(state, claimer)
}

// sampleOpponentHands redistributes every card not in seat's own
// remaining hand among the other three seats, respecting each seat's
// true remaining hand size and the void inferences recorded in
// state.Void: a seat observed void in a suit never receives a sampled
// card of that suit. When a suit's unseen cards outnumber the seats
// still eligible to hold them (every eligible seat already full), the
// constraint is relaxed rather than left unassigned -- an impossible
// deal is better than a short one for a rollout that only needs a
// plausible distribution, not the exact hidden hands.
func sampleOpponentHands(rng *rand.Rand, state game.GameState, seat game.Seat) [4]cards.Cards {
	var hands [4]cards.Cards
	hands[seat] = state.PostPassHand[seat].Minus(state.Played)

	var need [4]int
	for s := game.Seat(0); s < game.NumSeats; s++ {
		if s != seat {
			need[s] = state.PostPassHand[s].Minus(state.Played).Count()
		}
	}

	pool := cards.All.Minus(state.Played).Minus(hands[seat]).Slice()
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	for _, c := range pool {
		assignTo := pickEligibleSeat(state, seat, c, need)
		hands[assignTo] = hands[assignTo].Add(c)
		need[assignTo]--
	}
	return hands
}

// pickEligibleSeat returns the seat a sampled card c should go to: the
// first seat (in table order starting after seat) that still needs
// cards and isn't known void in c's suit, or, failing that, any seat
// that still needs cards.
func pickEligibleSeat(state game.GameState, seat game.Seat, c cards.Card, need [4]int) game.Seat {
	fallback := game.Seat(255)
	for i := 1; i < game.NumSeats; i++ {
		s := (seat + game.Seat(i)) % game.NumSeats
		if need[s] <= 0 {
			continue
		}
		if fallback == 255 {
			fallback = s
		}
		if !state.Void.IsVoid(s, c.Suit()) {
			return s
		}
	}
	return fallback
}
