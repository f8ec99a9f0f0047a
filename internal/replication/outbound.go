package replication

import (
	"sphereslither.io/internal/digestion"
	"sphereslither.io/internal/mathx"
)

// PlayerFrame is the session-agnostic data replication needs about one
// player to serialize it into a frame; internal/room builds these from
// its own Player type so this package stays ignorant of room internals.
type PlayerFrame struct {
	NetID         uint32
	Name          string
	ColorIndex    uint8
	Score         int64
	Oxygen        float64
	GirthScale    float64
	TailExtension float64
	Alive         bool
	Detail        byte // SnakeDetailFull/Window/Stub
	Snake         []mathx.Point
	Digestions    []digestion.Digestion
}

// PelletFrame is the wire-relevant subset of a pellet.
type PelletFrame struct {
	ID         uint32
	Normal     mathx.Point
	ColorIndex uint8
	Size       float64
}

// EncodeInit builds the one-time INIT frame sent right after a session's
// JOIN is accepted: protocol/world identity plus the full player roster
// visible to this session (already view-filtered by the caller) and the
// room's true total player count, which per spec deliberately includes
// stub (out-of-view) players even though they aren't individually
// serialized below.
func EncodeInit(selfNetID uint32, totalPlayers int, seed uint32, players []PlayerFrame) []byte {
	e := NewEncoder(64 + len(players)*48)
	e.WriteHeader(TypeInit, 0)
	e.WriteU32(selfNetID)
	e.WriteU32(seed)
	e.WriteU16(uint16(totalPlayers))
	e.WriteU16(uint16(len(players)))
	for _, p := range players {
		writePlayerFrame(e, p)
	}
	return e.Bytes()
}

// EncodeStateDelta builds one per-tick STATE frame for a session: every
// player this session can currently see (already windowed/stubbed by the
// caller via SnakeWindow) plus the pellets currently in its view budget.
func EncodeStateDelta(stateSeq uint64, players []PlayerFrame, pellets []PelletFrame) []byte {
	e := NewEncoder(64 + len(players)*48 + len(pellets)*16)
	e.WriteHeader(TypeState, 0)
	e.WriteU32(uint32(stateSeq))
	e.WriteU32(uint32(stateSeq >> 32))
	e.WriteU16(uint16(len(players)))
	for _, p := range players {
		writePlayerFrame(e, p)
	}
	e.WriteU16(uint16(len(pellets)))
	for _, pl := range pellets {
		e.WriteU32(pl.ID)
		e.WriteF32(float32(pl.Normal.X))
		e.WriteF32(float32(pl.Normal.Y))
		e.WriteF32(float32(pl.Normal.Z))
		e.WriteU8(pl.ColorIndex)
		e.WriteF32(float32(pl.Size))
	}
	return e.Bytes()
}

// EncodePlayerMeta builds the high-priority PLAYER_META frame carrying a
// joining or renaming player's display name and color, sent once rather
// than every tick.
func EncodePlayerMeta(netID uint32, name string, colorIndex uint8) []byte {
	e := NewEncoder(16 + len(name))
	e.WriteHeader(TypePlayerMeta, 0)
	e.WriteU32(netID)
	e.WriteU8(colorIndex)
	e.WriteString(name)
	return e.Bytes()
}

func writePlayerFrame(e *Encoder, p PlayerFrame) {
	e.WriteU32(p.NetID)
	alive := uint8(0)
	if p.Alive {
		alive = 1
	}
	e.WriteU8(alive)
	e.WriteI64(p.Score)
	e.WriteF32(float32(p.Oxygen))
	e.WriteF32(float32(p.GirthScale))
	e.WriteF32(float32(p.TailExtension))
	e.WriteU8(p.Detail)

	switch p.Detail {
	case SnakeDetailStub:
		if len(p.Snake) > 0 {
			writePointF32(e, p.Snake[0])
		} else {
			writePointF32(e, mathx.Point{})
		}
	case SnakeDetailFull, SnakeDetailWindow:
		e.WriteU16(uint16(len(p.Snake)))
		for _, pos := range p.Snake {
			writePointF32(e, pos)
		}
	}

	digestionCount := len(p.Digestions)
	if digestionCount > 255 {
		digestionCount = 255
	}
	e.WriteU8(uint8(digestionCount))
	for i := len(p.Digestions) - digestionCount; i < len(p.Digestions); i++ {
		d := p.Digestions[i]
		e.WriteU32(d.ID)
		e.WriteF32(float32(digestion.Progress(d)))
	}
}

func writePointF32(e *Encoder, p mathx.Point) {
	e.WriteF32(float32(p.X))
	e.WriteF32(float32(p.Y))
	e.WriteF32(float32(p.Z))
}
