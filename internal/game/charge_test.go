package game

import (
	"testing"

	"github.com/lox/pokerforbots/internal/cards"
	"github.com/stretchr/testify/assert"
)

func TestChargeMarksSeatDoneAndAccumulates(t *testing.T) {
	cs := NewChargeState(Classic)
	cs = cs.Charge(North, cards.Of(cards.AceHearts), Classic)

	assert.True(t, cs.Done[North])
	assert.True(t, cs.Charged[North].Contains(cards.AceHearts))
	assert.False(t, cs.AllDone())
}

func TestChainRulesReopenChargingOnOverlap(t *testing.T) {
	cs := NewChargeState(Chain)
	cs = cs.Charge(North, cards.Of(cards.QueenSpades), Chain)
	cs = cs.Pass(East, Chain)
	cs = cs.Pass(South, Chain)
	cs = cs.Pass(West, Chain)
	assert.True(t, cs.AllDone())

	cs = cs.Charge(East, cards.Of(cards.QueenSpades), Chain)
	assert.False(t, cs.Done[North])
	assert.False(t, cs.Done[South])
	assert.False(t, cs.Done[West])
	assert.True(t, cs.Done[East])
}

func TestClassicRulesDoNotReopenOnOverlap(t *testing.T) {
	cs := NewChargeState(Classic)
	cs = cs.Charge(North, cards.Of(cards.QueenSpades), Classic)
	cs = cs.Pass(East, Classic)
	cs = cs.Pass(South, Classic)
	cs = cs.Pass(West, Classic)
	assert.True(t, cs.AllDone())

	cs = cs.Charge(East, cards.Of(cards.QueenSpades), Classic)
	assert.True(t, cs.AllDone())
}

func TestBlindChargesStayHiddenUntilAllDeclined(t *testing.T) {
	cs := NewChargeState(Blind)
	assert.False(t, cs.Revealed)

	cs = cs.Charge(North, cards.Of(cards.AceHearts), Blind)
	assert.False(t, cs.Revealed)
	cs = cs.Pass(East, Blind)
	cs = cs.Pass(South, Blind)
	cs = cs.Pass(West, Blind)
	assert.True(t, cs.Revealed)
}
