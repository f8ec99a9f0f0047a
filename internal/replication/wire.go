// Package replication implements the binary WebSocket wire protocol:
// small fixed-header client messages (join/input/respawn) and larger,
// view-scoped server frames (init/state-delta/player-meta) built from the
// same hand-rolled Encoder/Reader primitives the protocol's reference
// implementation uses, rather than a general-purpose serialization
// library — matching both that reference and the teacher's own
// `serializeState` framing idiom.
package replication

import (
	"encoding/binary"
	"math"

	"github.com/google/uuid"

	"sphereslither.io/internal/mathx"
)

// Version is the wire protocol version every client message must match
// and every server frame advertises.
const Version uint8 = 5

// Inbound (client -> room) message type tags.
const (
	TypeJoin    byte = 0x01
	TypeInput   byte = 0x02
	TypeRespawn byte = 0x03
)

// Outbound (room -> client) frame type tags.
const (
	TypeInit       byte = 0x10
	TypeState      byte = 0x11
	TypePlayerMeta byte = 0x12
)

// Join message flags.
const (
	FlagJoinPlayerID uint16 = 1 << 0
	FlagJoinName     uint16 = 1 << 1
)

// Input message flags.
const (
	FlagInputAxis           uint16 = 1 << 0
	FlagInputBoost          uint16 = 1 << 1
	FlagInputViewCenter     uint16 = 1 << 2
	FlagInputViewRadius     uint16 = 1 << 3
	FlagInputCameraDistance uint16 = 1 << 4
)

// Snake detail levels used in state-delta frames, matching how much of a
// remote snake's body is worth sending a given session this tick.
const (
	SnakeDetailFull   byte = 0
	SnakeDetailWindow byte = 1
	SnakeDetailStub   byte = 2
)

// ClientMessage is a decoded inbound message.
type ClientMessage struct {
	Type           byte
	PlayerID       *uuid.UUID
	Name           *string
	Axis           *mathx.Point
	Boost          bool
	ViewCenter     *mathx.Point
	ViewRadius     *float32
	CameraDistance *float32
}

// DecodeClientMessage parses one inbound WebSocket binary frame. It
// returns false if the version tag doesn't match, the message type is
// unrecognized, or the buffer is short.
func DecodeClientMessage(data []byte) (ClientMessage, bool) {
	r := NewReader(data)
	version, ok := r.ReadU8()
	if !ok || version != Version {
		return ClientMessage{}, false
	}
	messageType, ok := r.ReadU8()
	if !ok {
		return ClientMessage{}, false
	}
	flags, ok := r.ReadU16()
	if !ok {
		return ClientMessage{}, false
	}

	msg := ClientMessage{Type: messageType}
	switch messageType {
	case TypeJoin:
		if flags&FlagJoinPlayerID != 0 {
			id, ok := r.ReadUUID()
			if !ok {
				return ClientMessage{}, false
			}
			msg.PlayerID = &id
		}
		if flags&FlagJoinName != 0 {
			name, ok := r.ReadString()
			if !ok {
				return ClientMessage{}, false
			}
			msg.Name = &name
		}
		return msg, true

	case TypeRespawn:
		return msg, true

	case TypeInput:
		if flags&FlagInputAxis != 0 {
			p, ok := r.ReadPointF32()
			if !ok {
				return ClientMessage{}, false
			}
			msg.Axis = &p
		}
		msg.Boost = flags&FlagInputBoost != 0
		if flags&FlagInputViewCenter != 0 {
			p, ok := r.ReadPointF32()
			if !ok {
				return ClientMessage{}, false
			}
			msg.ViewCenter = &p
		}
		if flags&FlagInputViewRadius != 0 {
			v, ok := r.ReadF32()
			if !ok {
				return ClientMessage{}, false
			}
			msg.ViewRadius = &v
		}
		if flags&FlagInputCameraDistance != 0 {
			v, ok := r.ReadF32()
			if !ok {
				return ClientMessage{}, false
			}
			msg.CameraDistance = &v
		}
		return msg, true

	default:
		return ClientMessage{}, false
	}
}

// Encoder builds an outbound wire frame byte by byte, little-endian
// throughout, matching the reference Encoder this package is ported
// from.
type Encoder struct {
	buf []byte
}

// NewEncoder creates an Encoder pre-sized to capacity bytes.
func NewEncoder(capacity int) *Encoder {
	return &Encoder{buf: make([]byte, 0, capacity)}
}

// Bytes returns the encoded frame.
func (e *Encoder) Bytes() []byte { return e.buf }

// WriteHeader writes the version byte, message type, and flags.
func (e *Encoder) WriteHeader(messageType byte, flags uint16) {
	e.WriteU8(Version)
	e.WriteU8(messageType)
	e.WriteU16(flags)
}

func (e *Encoder) WriteU8(v uint8) { e.buf = append(e.buf, v) }

func (e *Encoder) WriteU16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	e.buf = append(e.buf, tmp[:]...)
}

func (e *Encoder) WriteU32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	e.buf = append(e.buf, tmp[:]...)
}

func (e *Encoder) WriteI32(v int32) { e.WriteU32(uint32(v)) }

func (e *Encoder) WriteI64(v int64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	e.buf = append(e.buf, tmp[:]...)
}

func (e *Encoder) WriteF32(v float32) {
	e.WriteU32(math.Float32bits(v))
}

func (e *Encoder) WriteUUID(v uuid.UUID) {
	e.buf = append(e.buf, v[:]...)
}

// WriteString writes a length-prefixed (single byte, so at most 255
// bytes) UTF-8 string, truncating on a rune boundary if it's longer.
func (e *Encoder) WriteString(s string) {
	b := []byte(s)
	end := len(b)
	if end > 255 {
		end = 255
	}
	for end > 0 && !isUTF8Boundary(b, end) {
		end--
	}
	e.WriteU8(uint8(end))
	e.buf = append(e.buf, b[:end]...)
}

func isUTF8Boundary(b []byte, i int) bool {
	if i >= len(b) {
		return true
	}
	return b[i]&0xC0 != 0x80
}

// Reader parses a wire buffer sequentially.
type Reader struct {
	data   []byte
	offset int
}

// NewReader wraps data for sequential reads.
func NewReader(data []byte) *Reader { return &Reader{data: data} }

func (r *Reader) ReadU8() (uint8, bool) {
	if r.offset >= len(r.data) {
		return 0, false
	}
	v := r.data[r.offset]
	r.offset++
	return v, true
}

func (r *Reader) ReadU16() (uint16, bool) {
	b, ok := r.readBytes(2)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint16(b), true
}

func (r *Reader) ReadF32() (float32, bool) {
	b, ok := r.readBytes(4)
	if !ok {
		return 0, false
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), true
}

func (r *Reader) ReadPointF32() (mathx.Point, bool) {
	x, ok := r.ReadF32()
	if !ok {
		return mathx.Point{}, false
	}
	y, ok := r.ReadF32()
	if !ok {
		return mathx.Point{}, false
	}
	z, ok := r.ReadF32()
	if !ok {
		return mathx.Point{}, false
	}
	return mathx.Point{X: float64(x), Y: float64(y), Z: float64(z)}, true
}

func (r *Reader) ReadUUID() (uuid.UUID, bool) {
	b, ok := r.readBytes(16)
	if !ok {
		return uuid.UUID{}, false
	}
	var id uuid.UUID
	copy(id[:], b)
	return id, true
}

func (r *Reader) ReadString() (string, bool) {
	length, ok := r.ReadU8()
	if !ok {
		return "", false
	}
	b, ok := r.readBytes(int(length))
	if !ok {
		return "", false
	}
	return string(b), true
}

func (r *Reader) readBytes(n int) ([]byte, bool) {
	if r.offset+n > len(r.data) {
		return nil, false
	}
	b := r.data[r.offset : r.offset+n]
	r.offset += n
	return b, true
}
