// Package digestion tracks the growth a snake owes itself after eating: a
// pellet doesn't make the tail grow instantly, it starts a bulge that
// travels down the body and lands as one or more new tail nodes once it
// reaches the end.
package digestion

import (
	"math"

	"sphereslither.io/internal/config"
	"sphereslither.io/internal/mathx"
)

// Digestion is one in-flight growth event working its way down a snake.
type Digestion struct {
	ID           uint32
	Remaining    int64
	Total        int64
	SettleSteps  int64
	GrowthAmount float64
	Applied      bool
	Strength     float32
}

// AddWithStrength starts a new digestion event sized to snakeLen (longer
// snakes take longer for a bulge to travel the body), assigns it the next
// id from nextDigestionID (wrapping on overflow, advancing it in place),
// and returns the event plus whether one was actually created — a
// non-positive growthAmount creates nothing.
func AddWithStrength(snakeLen int, nextDigestionID *uint32, strength float32, growthAmount float64) (Digestion, bool) {
	clampedGrowth := growthAmount
	if clampedGrowth < 0 {
		clampedGrowth = 0
	}
	if clampedGrowth <= 0 {
		return Digestion{}, false
	}

	bodyLen := snakeLen - 1
	if bodyLen < 0 {
		bodyLen = 0
	}
	travel := math.Round(float64(bodyLen*config.NodeQueueSize) / config.DigestionTravelSpeedMult)
	if travel < 1 {
		travel = 1
	}
	travelSteps := int64(travel)
	settleSteps := int64(config.DigestionTailSettleSteps)
	if settleSteps < 0 {
		settleSteps = 0
	}

	id := *nextDigestionID
	*nextDigestionID = id + 1

	return Digestion{
		ID:           id,
		Remaining:    travelSteps + settleSteps,
		Total:        travelSteps + settleSteps,
		SettleSteps:  settleSteps,
		GrowthAmount: clampedGrowth,
		Strength:     float32(mathx.Clamp(float64(strength), 0.05, 1.0)),
	}, true
}

// Add starts a full-strength, single-unit digestion event.
func Add(snakeLen int, nextDigestionID *uint32) (Digestion, bool) {
	return AddWithStrength(snakeLen, nextDigestionID, 1.0, 1.0)
}

// Advance steps every in-flight digestion forward by one simulation tick,
// `steps` times (a boosting snake moves multiple steps per tick). Each
// time tailExtension crosses a whole unit, addNode is invoked once so the
// caller can append a tail node using the snake's current axis — this
// package has no notion of a snake body, only the growth accounting.
// Completed digestions are dropped from the returned slice.
func Advance(digestions []Digestion, tailExtension *float64, steps int, addNode func()) []Digestion {
	stepCount := steps
	if stepCount < 1 {
		stepCount = 1
	}

	for s := 0; s < stepCount; s++ {
		i := 0
		for i < len(digestions) {
			digestions[i].Remaining--

			if !digestions[i].Applied && digestions[i].Remaining <= digestions[i].SettleSteps {
				growth := digestions[i].GrowthAmount
				if growth < 0 {
					growth = 0
				}
				*tailExtension += growth
				digestions[i].Applied = true
			}

			if digestions[i].Remaining <= 0 {
				digestions = append(digestions[:i], digestions[i+1:]...)
				continue
			}
			i++
		}

		if *tailExtension >= 1.0 {
			addNode()
			*tailExtension -= 1.0
		}
		if *tailExtension < 0 {
			*tailExtension = 0
		}
	}

	return digestions
}

// Progress returns a value in [0, 2]: [0, 1) while the bulge travels down
// the body, 1 once it reaches the tail and starts settling, and 2 once
// the digestion is fully applied and due for removal. Used purely for
// the client's visual easing, encoded over the wire as a fraction.
func Progress(d Digestion) float64 {
	settleSteps := d.SettleSteps
	if settleSteps < 0 {
		settleSteps = 0
	}
	travelTotal := d.Total - settleSteps
	if travelTotal < 1 {
		travelTotal = 1
	}
	travelRemaining := d.Remaining - settleSteps
	if travelRemaining < 0 {
		travelRemaining = 0
	}
	travelProgress := mathx.Clamp(1.0-float64(travelRemaining)/float64(travelTotal), 0, 1)

	var settleProgress float64
	switch {
	case settleSteps > 0 && d.Remaining <= settleSteps:
		settleProgress = mathx.Clamp(1.0-float64(d.Remaining)/float64(settleSteps), 0, 1)
	case settleSteps <= 0 && d.Remaining <= 0:
		settleProgress = 1.0
	}

	return mathx.Clamp(travelProgress+settleProgress, 0, 2)
}
