package game

import (
	"testing"

	"github.com/lox/pokerforbots/internal/cards"
	"github.com/stretchr/testify/assert"
)

func TestVoidObservedOnlyWhenTrickNonEmptyAndSuitMismatched(t *testing.T) {
	v := NewVoidTracker()

	empty := NewTrick(North)
	v = v.Observe(North, cards.New(cards.Two, cards.Clubs), empty)
	assert.False(t, v.IsVoid(North, cards.Clubs), "leading a suit never marks the leader void in it")

	led := NewTrick(North).Push(North, cards.New(cards.Five, cards.Diamonds))
	v = v.Observe(East, cards.New(cards.Three, cards.Clubs), led)
	assert.True(t, v.IsVoid(East, cards.Diamonds))
	assert.False(t, v.IsVoid(East, cards.Clubs))
}

func TestVoidNotMarkedWhenFollowingSuit(t *testing.T) {
	v := NewVoidTracker()
	led := NewTrick(North).Push(North, cards.New(cards.Five, cards.Diamonds))
	v = v.Observe(East, cards.New(cards.Nine, cards.Diamonds), led)
	assert.False(t, v.IsVoid(East, cards.Diamonds))
}

func TestVoidResetClearsAllBits(t *testing.T) {
	v := NewVoidTracker()
	led := NewTrick(North).Push(North, cards.New(cards.Five, cards.Diamonds))
	v = v.Observe(East, cards.New(cards.Three, cards.Clubs), led)
	require := assert.New(t)
	require.True(v.IsVoid(East, cards.Diamonds))

	v = v.Reset()
	require.False(v.IsVoid(East, cards.Diamonds))
}
