package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArcPushFlowInvertsAtMinThresholdDuringPhaseOne(t *testing.T) {
	a := newArc(0, 1, 16.8, 1, 1)

	inverted := a.pushFlow(false)

	require.True(t, inverted)
	assert.Equal(t, -16.8, a.cost)
	assert.Equal(t, 0, a.currentFlow)
	assert.Equal(t, 1, a.start)
	assert.Equal(t, 0, a.end)
}

func TestArcPushFlowWaitsForMaxThresholdDuringPhaseTwo(t *testing.T) {
	a := newArc(2, 1, 0, 1, 3)

	require.False(t, a.pushFlow(true))
	require.False(t, a.pushFlow(true))
	require.True(t, a.pushFlow(true))

	assert.Equal(t, 1, a.start)
	assert.Equal(t, 2, a.end)
}

func TestArcUpdateForPhaseTransitionSkipsSaturatedArcs(t *testing.T) {
	a := newArc(5, 1, 0, 2, 2)

	inverted := a.updateForPhaseTransition()

	assert.False(t, inverted)
	assert.Equal(t, 5, a.start)
	assert.Equal(t, 1, a.end)
}

func TestArcUpdateForPhaseTransitionOpensRemainingCapacity(t *testing.T) {
	a := newArc(5, 1, 0, 1, 3)

	inverted := a.updateForPhaseTransition()

	require.True(t, inverted)
	assert.Equal(t, 1, a.start)
	assert.Equal(t, 5, a.end)
	assert.Equal(t, 1, a.currentFlow)
	assert.Equal(t, 3, a.maxFlow)
}
