package bot_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/pokerforbots/internal/bot"
)

func TestNewDispatchesOnKind(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	cases := []struct {
		kind bot.Kind
		want interface{}
	}{
		{bot.KindRandom, &bot.RandomStrategy{}},
		{bot.KindDuck, bot.DuckStrategy{}},
		{bot.KindGottaTry, bot.GottaTryStrategy{}},
		{bot.KindHeuristic, bot.HeuristicStrategy{}},
		{bot.KindSimulate, &bot.SimulateStrategy{}},
		{bot.Kind("unknown"), bot.HeuristicStrategy{}},
	}
	for _, tc := range cases {
		got := bot.New(tc.kind, rng)
		assert.IsType(t, tc.want, got)
	}
}
