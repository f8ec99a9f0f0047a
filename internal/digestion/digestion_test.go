package digestion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAssignsMonotonicIDs(t *testing.T) {
	var nextID uint32
	var digestions []Digestion
	for i := 0; i < 3; i++ {
		d, ok := Add(4, &nextID)
		require.True(t, ok)
		digestions = append(digestions, d)
	}

	assert.Equal(t, uint32(3), nextID)
	require.Len(t, digestions, 3)
	assert.Equal(t, uint32(0), digestions[0].ID)
	assert.Equal(t, uint32(1), digestions[1].ID)
	assert.Equal(t, uint32(2), digestions[2].ID)
}

func TestAddIDWrapsAfterUint32Max(t *testing.T) {
	nextID := uint32(math.MaxUint32)
	first, ok := Add(4, &nextID)
	require.True(t, ok)
	second, ok := Add(4, &nextID)
	require.True(t, ok)

	assert.Equal(t, uint32(math.MaxUint32), first.ID)
	assert.Equal(t, uint32(0), second.ID)
	assert.Equal(t, uint32(1), nextID)
}

func TestAdvanceKeepsRemainingIDsWhenHeadItemCompletes(t *testing.T) {
	digestions := []Digestion{
		{ID: 7, Remaining: 1, Total: 1, GrowthAmount: 1.0},
		{ID: 9, Remaining: 4, Total: 4, GrowthAmount: 0.5},
	}
	var tailExtension float64
	nodesAdded := 0

	digestions = Advance(digestions, &tailExtension, 1, func() { nodesAdded++ })

	assert.Equal(t, 1, nodesAdded)
	require.Len(t, digestions, 1)
	assert.Equal(t, uint32(9), digestions[0].ID)
	assert.Equal(t, int64(3), digestions[0].Remaining)
	assert.InDelta(t, 0.0, tailExtension, 1e-6)
}

func TestFractionalGrowthAccumulatesWithoutNewNode(t *testing.T) {
	digestions := []Digestion{{ID: 1, Remaining: 1, Total: 1, GrowthAmount: 0.4}}
	var tailExtension float64
	nodesAdded := 0

	digestions = Advance(digestions, &tailExtension, 1, func() { nodesAdded++ })

	assert.Equal(t, 0, nodesAdded)
	assert.Empty(t, digestions)
	assert.InDelta(t, 0.4, tailExtension, 1e-6)
}

func TestFractionalGrowthCrossingOneAddsExactlyOneNode(t *testing.T) {
	digestions := []Digestion{{ID: 1, Remaining: 1, Total: 1, GrowthAmount: 0.35}}
	tailExtension := 0.8
	nodesAdded := 0

	digestions = Advance(digestions, &tailExtension, 1, func() { nodesAdded++ })

	assert.Equal(t, 1, nodesAdded)
	assert.Empty(t, digestions)
	assert.Greater(t, tailExtension, 0.14)
	assert.Less(t, tailExtension, 0.16)
}

func TestBurstGrowthAddsOnlyOneNodePerStep(t *testing.T) {
	digestions := []Digestion{{ID: 1, Remaining: 1, Total: 1, GrowthAmount: 2.4}}
	var tailExtension float64
	nodesAdded := 0

	digestions = Advance(digestions, &tailExtension, 1, func() { nodesAdded++ })

	assert.Equal(t, 1, nodesAdded)
	assert.Empty(t, digestions)
	assert.Greater(t, tailExtension, 1.39)
	assert.Less(t, tailExtension, 1.41)
}

func TestTailExtensionCarryoverConsumesOneNodePerSubstep(t *testing.T) {
	var digestions []Digestion
	tailExtension := 2.2
	nodesAdded := 0

	digestions = Advance(digestions, &tailExtension, 2, func() { nodesAdded++ })

	assert.Equal(t, 2, nodesAdded)
	assert.Empty(t, digestions)
	assert.Greater(t, tailExtension, 0.19)
	assert.Less(t, tailExtension, 0.21)
}

func TestDigestionProgressReachesTailAtOneAndCleanupAtTwo(t *testing.T) {
	atTail := Digestion{ID: 5, Remaining: 4, Total: 10, SettleSteps: 4, GrowthAmount: 0.2, Applied: true}
	finished := Digestion{ID: 6, Remaining: 0, Total: 10, SettleSteps: 4, GrowthAmount: 0.2, Applied: true}

	assert.InDelta(t, 1.0, Progress(atTail), 1e-6)
	assert.InDelta(t, 2.0, Progress(finished), 1e-6)
}
