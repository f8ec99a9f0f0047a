package replication

import (
	"math"
	"sort"

	"sphereslither.io/internal/config"
	"sphereslither.io/internal/mathx"
)

// SnakeWindow selects how much of a remote snake's body to serialize for
// one viewing session: the local player's own snake always gets full
// detail; a snake with no node visible to the viewer (dot(node,
// viewCenter) >= cos(viewRadius+margin)) gets a stub (just enough for a
// minimap dot); otherwise the longest contiguous run of visible nodes is
// found and padded by ViewNodePadding on each side. If that padded window
// is still shorter than ViewMinWindowPoints, the snake is sent as a stub
// rather than a window not worth the bytes.
func SnakeWindow(viewCenter mathx.Point, viewRadius float64, snake []mathx.Point, isLocal bool) (byte, []mathx.Point) {
	if isLocal {
		return SnakeDetailFull, snake
	}
	if len(snake) == 0 {
		return SnakeDetailStub, nil
	}

	viewCos := math.Cos(viewRadius + config.ViewRadiusMargin)

	bestStart, bestLen := 0, 0
	runStart, runLen := 0, 0
	for i, p := range snake {
		visible := viewCenter.Dot(p) >= viewCos
		if visible {
			if runLen == 0 {
				runStart = i
			}
			runLen++
			if runLen > bestLen {
				bestLen = runLen
				bestStart = runStart
			}
		} else {
			runLen = 0
		}
	}

	if bestLen == 0 {
		return SnakeDetailStub, nil
	}

	lo := bestStart - config.ViewNodePadding
	if lo < 0 {
		lo = 0
	}
	hi := bestStart + bestLen + config.ViewNodePadding
	if hi > len(snake) {
		hi = len(snake)
	}
	if hi-lo < config.ViewMinWindowPoints {
		return SnakeDetailStub, nil
	}
	if lo == 0 && hi == len(snake) {
		return SnakeDetailFull, snake
	}
	return SnakeDetailWindow, snake[lo:hi]
}

// VisiblePelletIDs selects, from candidates (id -> position), the subset
// within viewRadius+margin of viewCenter, capped at maxCount and biased
// toward the lowest ids so the selection stays stable frame to frame
// (avoids every pellet flickering in and out as new ones spawn with
// higher ids).
func VisiblePelletIDs(viewCenter mathx.Point, viewRadius, margin float64, maxCount int, candidates map[uint32]mathx.Point) []uint32 {
	inRange := make([]uint32, 0, len(candidates))
	for id, pos := range candidates {
		if mathx.AngularDistance(viewCenter, pos) <= viewRadius+margin {
			inRange = append(inRange, id)
		}
	}
	sort.Slice(inRange, func(i, j int) bool { return inRange[i] < inRange[j] })
	if len(inRange) > maxCount {
		inRange = inRange[:maxCount]
	}
	return inRange
}

// PelletViewBudget derives the pellet count and margin a session should
// use, scaled by the player's current camera (zoom) distance: zoomed out
// players see more pellets across a wider margin so distant scenery
// doesn't vanish.
func PelletViewBudget(cameraDistance float64) (count int, margin float64) {
	t := mathx.Clamp(
		(cameraDistance-config.SmallPelletZoomMinCameraDist)/
			(config.SmallPelletZoomMaxCameraDist-config.SmallPelletZoomMinCameraDist),
		0, 1,
	)
	count = config.SmallPelletVisibleMin + int(t*float64(config.SmallPelletVisibleMax-config.SmallPelletVisibleMin))
	margin = config.SmallPelletViewMarginMin + t*(config.SmallPelletViewMarginMax-config.SmallPelletViewMarginMin)
	return count, margin
}
