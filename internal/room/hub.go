// Hub wires a room's simulation State to its connected transport.Sessions:
// it implements transport.Handler for inbound join/respawn messages and
// builds the per-session, view-scoped outbound frames every tick, the way
// the teacher's engine.Server ties its world state to each client's
// network.Conn.
package room

import (
	"sync"

	"sphereslither.io/internal/config"
	"sphereslither.io/internal/mathx"
	"sphereslither.io/internal/names"
	"sphereslither.io/internal/replication"
	"sphereslither.io/internal/transport"
)

// Hub owns the session registry for one room and bridges it to State.
type Hub struct {
	State *State

	mu       sync.RWMutex
	sessions map[string]*transport.Session // playerID -> session
	byID     map[string]*transport.Session // sessionID -> session
}

// NewHub creates a Hub over an already-constructed room State.
func NewHub(state *State) *Hub {
	return &Hub{
		State:    state,
		sessions: make(map[string]*transport.Session),
		byID:     make(map[string]*transport.Session),
	}
}

// HandleJoin admits a session into the room: it always creates a new
// Player (a player id carried by the JOIN is not used, so a returning
// client is not reattached to its old player), registers the session, and replies with the INIT frame plus a
// PLAYER_META broadcast so everyone else learns this player's name/color.
func (h *Hub) HandleJoin(s *transport.Session, msg replication.ClientMessage) {
	name := "Player"
	if msg.Name != nil {
		name = names.SanitizePlayerName(*msg.Name)
	}
	colorIndex := uint8(len(h.State.Players) % len(config.ColorPool))
	color := config.ColorPool[colorIndex]

	p := h.State.Join(name, color, false)
	p.Connected = true

	h.mu.Lock()
	s.PlayerID = p.ID
	h.sessions[p.ID] = s
	h.byID[s.ID] = s
	h.mu.Unlock()

	s.SendHi(replication.EncodeInit(p.NetID, len(h.State.Players), h.State.Seed, nil))
	h.broadcastPlayerMeta(p.NetID, p.Name, colorIndex)
}

// HandleRespawn marks a dead player eligible to respawn on the next tick
// rather than waiting out the cooldown, the same early-respawn shortcut the
// reference client's "play again" button triggers.
func (h *Hub) HandleRespawn(s *transport.Session, _ replication.ClientMessage) {
	h.State.mu.Lock()
	defer h.State.mu.Unlock()
	p, ok := h.State.Players[s.PlayerID]
	if !ok || p.Alive {
		return
	}
	now := h.State.NowMS
	p.RespawnAt = &now
}

func (h *Hub) broadcastPlayerMeta(netID uint32, name string, colorIndex uint8) {
	frame := replication.EncodePlayerMeta(netID, name, colorIndex)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.sessions {
		s.SendHi(frame)
	}
}

// Drop removes a session's registration and the underlying player entirely,
// called once a session's read pump returns (the client disconnected).
func (h *Hub) Drop(s *transport.Session) {
	h.mu.Lock()
	delete(h.sessions, s.PlayerID)
	delete(h.byID, s.ID)
	h.mu.Unlock()
	if s.PlayerID != "" {
		h.State.Leave(s.PlayerID)
	}
}

// PumpInputs applies every connected session's latest Inbound snapshot into
// its player's steering state, called once per tick right before
// State.Tick so a session's own goroutine never needs the room's lock.
func (h *Hub) PumpInputs(nowMS int64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for playerID, s := range h.sessions {
		in := s.Inbound.Snapshot()
		if !in.HasAxis {
			continue
		}
		h.State.SetInput(playerID, in.Axis, in.Boost, nowMS)
	}
}

// Broadcast builds and sends one STATE_DELTA frame per connected session,
// each windowed to that session's own view. Call once per tick after
// State.Tick.
func (h *Hub) Broadcast() {
	h.mu.RLock()
	sessions := make(map[string]*transport.Session, len(h.sessions))
	for id, s := range h.sessions {
		sessions[id] = s
	}
	h.mu.RUnlock()

	h.State.mu.Lock()
	defer h.State.mu.Unlock()

	pelletPositions := make(map[uint32]mathx.Point, len(h.State.Pellets))
	for id, pl := range h.State.Pellets {
		pelletPositions[id] = pl.Normal
	}

	for playerID, s := range sessions {
		self, ok := h.State.Players[playerID]
		if !ok {
			continue
		}
		in := s.Inbound.Snapshot()
		viewCenter := self.Head()
		if in.HasViewCenter {
			viewCenter = in.ViewCenter
		}
		viewRadius := mathx.Clamp(in.ViewRadius, config.ViewRadiusMin, config.ViewRadiusMax)
		if viewRadius == 0 {
			viewRadius = config.ViewRadiusMax
		}

		players := make([]replication.PlayerFrame, 0, len(h.State.Players))
		for id, p := range h.State.Players {
			positions := snakePositions(p)
			detail, windowed := replication.SnakeWindow(viewCenter, viewRadius, positions, id == playerID)
			players = append(players, replication.PlayerFrame{
				NetID: p.NetID, Name: p.Name, Score: p.Score,
				Oxygen: p.Oxygen, GirthScale: GirthScale(p.Length()),
				TailExtension: p.TailExtension, Alive: p.Alive,
				Detail: detail, Snake: windowed, Digestions: p.Digestions,
			})
		}

		budgetCount, margin := replication.PelletViewBudget(in.CameraDistance)
		visibleIDs := replication.VisiblePelletIDs(viewCenter, viewRadius, margin, budgetCount, pelletPositions)
		pellets := make([]replication.PelletFrame, 0, len(visibleIDs))
		for _, id := range visibleIDs {
			pl := h.State.Pellets[id]
			pellets = append(pellets, replication.PelletFrame{
				ID: pl.ID, Normal: pl.Normal, ColorIndex: pl.ColorIndex, Size: pl.CurrentSize,
			})
		}

		s.SetState(replication.EncodeStateDelta(h.State.NextStateSeq, players, pellets))
	}
}

func snakePositions(p *Player) []mathx.Point {
	positions := make([]mathx.Point, len(p.Snake))
	for i, n := range p.Snake {
		positions[i] = n.Pos
	}
	return positions
}
