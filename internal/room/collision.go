package room

import "sphereslither.io/internal/mathx"

// PlayerCollisionSnapshot is the minimal per-player view
// DetectSnakeHeadBodyCollisions needs: only positions and radii, not full
// Player state.
type PlayerCollisionSnapshot struct {
	ID                   string
	Alive                bool
	Snake                []mathx.Point
	ContactAngularRadius float64
	BodyAngularRadius    float64
}

// DetectSnakeHeadBodyCollisions checks every alive player's head against
// every OTHER alive player's body (including that other player's head, so
// a head-on crash kills both) and against its own body starting at index 2
// (indices 0 and 1 are the head and its immediate neck, which always
// coincide angularly with the head), returning a map of killed player id
// to the death reason.
func DetectSnakeHeadBodyCollisions(snapshots []PlayerCollisionSnapshot) map[string]string {
	deaths := make(map[string]string)
	for _, attacker := range snapshots {
		if !attacker.Alive || len(attacker.Snake) == 0 {
			continue
		}
		head := attacker.Snake[0]
		threshold := attacker.ContactAngularRadius

		if len(attacker.Snake) > 2 {
			selfThreshold := threshold + attacker.ContactAngularRadius
			for _, bodyPos := range attacker.Snake[2:] {
				if mathx.AngularDistance(head, bodyPos) < selfThreshold {
					deaths[attacker.ID] = "snake_collision"
					break
				}
			}
		}
		if _, dead := deaths[attacker.ID]; dead {
			continue
		}

		for _, other := range snapshots {
			if other.ID == attacker.ID || !other.Alive {
				continue
			}
			otherThreshold := threshold + other.BodyAngularRadius
			hit := false
			for _, bodyPos := range other.Snake {
				if mathx.AngularDistance(head, bodyPos) < otherThreshold {
					hit = true
					break
				}
			}
			if hit {
				deaths[attacker.ID] = "snake_collision"
				break
			}
		}
	}
	return deaths
}
