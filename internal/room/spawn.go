package room

import (
	"sphereslither.io/internal/config"
	"sphereslither.io/internal/environment"
	"sphereslither.io/internal/mathx"
)

// IsSnakeTooClose reports whether candidate lands within
// config.SpawnPlayerMinDistance of any node of any other player's snake.
// excludedPlayerID, when non-nil, skips that player's own body — used on
// respawn so a player's about-to-be-replaced corpse doesn't block its own
// new spawn point.
func IsSnakeTooClose(candidate mathx.Point, players map[string]*Player, excludedPlayerID *string) bool {
	for id, p := range players {
		if excludedPlayerID != nil && id == *excludedPlayerID {
			continue
		}
		if !p.Alive || len(p.Snake) == 0 {
			continue
		}
		for _, node := range p.Snake {
			if mathx.AngularDistance(candidate, node.Pos) < config.SpawnPlayerMinDistance {
				return true
			}
		}
	}
	return false
}

// FindSpawnPoint samples candidate spawn points until one clears both
// environment obstructions and other players' snakes, or gives up after
// config.MaxSpawnAttempts and returns the last candidate sampled anyway
// (a crowded room still needs to spawn someone).
func FindSpawnPoint(env environment.Environment, players map[string]*Player, excludedPlayerID *string, rng *mathx.SeededRNG) mathx.Point {
	var candidate mathx.Point
	for attempt := 0; attempt < config.MaxSpawnAttempts; attempt++ {
		candidate = rng.UnitPoint()
		if environment.IsObstructed(candidate, env, config.SpawnPlayerMinDistance) {
			continue
		}
		if IsSnakeTooClose(candidate, players, excludedPlayerID) {
			continue
		}
		return candidate
	}
	return candidate
}
