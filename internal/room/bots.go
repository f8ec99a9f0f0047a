package room

import (
	"sphereslither.io/internal/config"
	"sphereslither.io/internal/mathx"
)

// botNames is the pool bots draw display names from, grounded on the
// reference bot manager's name-pool idea (simplified here to a plain
// random pick; duplicate bot names are harmless since bots are identified
// by NetID, not name).
var botNames = []string{
	"Orbiter", "Comet", "Nebula", "Quasar", "Pulsar",
	"Meteor", "Asteroid", "Solstice", "Eclipse", "Aurora",
	"Vortex", "Zenith", "Horizon", "Equinox", "Corona",
}

func (s *State) seedBots() {
	for i := 0; i < config.BotCount; i++ {
		s.spawnBot()
	}
}

func (s *State) spawnBot() {
	name := botNames[int(s.RNG.Next()*float64(len(botNames)))%len(botNames)]
	colorIdx := uint8(int(s.RNG.Next()*float64(len(config.ColorPool))) % len(config.ColorPool))
	color := config.ColorPool[colorIdx]

	spawn := FindSpawnPoint(s.Environment, s.Players, nil, s.RNG)
	dir := mathx.FallbackTangent(spawn)
	netID := s.NextPlayerNetID
	s.NextPlayerNetID++

	p := NewPlayer(name, color, true, spawn, dir, netID)
	s.Players[p.ID] = p
}

// maintainBotCount replaces bots that died this tick (handleDeaths already
// removed them from s.Players) so the room always carries config.BotCount
// of them, the way the reference BotManager.MaintainBotCount backfills its
// pool every tick.
func (s *State) maintainBotCount() {
	count := 0
	for _, p := range s.Players {
		if p.IsBot {
			count++
		}
	}
	for ; count < config.BotCount; count++ {
		s.spawnBot()
	}
}
