// Package transport wires room sessions to WebSocket connections: the
// upgrade handshake, the read/write pumps, and the hi/lo-lane outbound
// queueing a session's writer drains every wake. Grounded on the
// teacher's engine/network.go readPump/writePump/ping-pong shape,
// generalized with a priority lane split the teacher's single sendCh
// doesn't have.
package transport

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"sphereslither.io/internal/mathx"
	"sphereslither.io/internal/replication"
)

const (
	readLimitBytes  = 1024
	readDeadline    = 60 * time.Second
	writeDeadline   = 5 * time.Second
	pingInterval    = 30 * time.Second
	outboundLaneCap = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 8192,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// LatestFrame is a single-slot mailbox: storing a new frame silently
// replaces whatever hadn't been sent yet. Used for the per-tick state
// frame, where only the newest snapshot is ever worth sending.
type LatestFrame struct {
	mu   sync.Mutex
	data []byte
}

// Store replaces the pending frame.
func (f *LatestFrame) Store(data []byte) {
	f.mu.Lock()
	f.data = data
	f.mu.Unlock()
}

// Take returns and clears the pending frame, if any.
func (f *LatestFrame) Take() ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data == nil {
		return nil, false
	}
	data := f.data
	f.data = nil
	return data, true
}

// Inbound holds the latest parsed steering/view input from a session,
// mutex-protected since it's written from readPump and read from the
// room's tick goroutine.
type Inbound struct {
	mu             sync.Mutex
	Axis           mathx.Point
	HasAxis        bool
	Boost          bool
	ViewCenter     mathx.Point
	HasViewCenter  bool
	ViewRadius     float64
	CameraDistance float64
}

// Snapshot returns a copy of the current input state.
func (in *Inbound) Snapshot() Inbound {
	in.mu.Lock()
	defer in.mu.Unlock()
	return Inbound{
		Axis: in.Axis, HasAxis: in.HasAxis, Boost: in.Boost,
		ViewCenter: in.ViewCenter, HasViewCenter: in.HasViewCenter,
		ViewRadius: in.ViewRadius, CameraDistance: in.CameraDistance,
	}
}

func (in *Inbound) apply(msg replication.ClientMessage) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if msg.Axis != nil {
		in.Axis = *msg.Axis
		in.HasAxis = true
	}
	in.Boost = msg.Boost
	if msg.ViewCenter != nil {
		in.ViewCenter = *msg.ViewCenter
		in.HasViewCenter = true
	}
	if msg.ViewRadius != nil {
		in.ViewRadius = float64(*msg.ViewRadius)
	}
	if msg.CameraDistance != nil {
		in.CameraDistance = float64(*msg.CameraDistance)
	}
}

// Session is one connected client's WebSocket plumbing: a read pump, a
// write pump, and the hi/lo/state outbound queues between them.
type Session struct {
	ID       string
	PlayerID string

	conn *websocket.Conn

	Inbound *Inbound

	outboundHi  chan []byte
	outboundLo  chan []byte
	latestState LatestFrame
	wake        chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
}

// Handler processes decoded client messages for one session. Join and
// Respawn mutate room state directly (they need the room's write lock);
// Input is merged into the session's own Inbound snapshot for the tick
// loop to read lock-free on its own schedule.
type Handler interface {
	HandleJoin(s *Session, msg replication.ClientMessage)
	HandleRespawn(s *Session, msg replication.ClientMessage)
}

// NewSession wraps an upgraded WebSocket connection.
func NewSession(id string, conn *websocket.Conn) *Session {
	return &Session{
		ID:         id,
		conn:       conn,
		Inbound:    &Inbound{},
		outboundHi: make(chan []byte, outboundLaneCap),
		outboundLo: make(chan []byte, outboundLaneCap),
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
}

// Upgrade performs the HTTP -> WebSocket handshake and starts a session's
// read and write pumps, blocking (in the read pump) until the client
// disconnects. It returns the Session so the caller can unregister it from
// room state once this call returns.
func Upgrade(id string, w http.ResponseWriter, r *http.Request, handler Handler) *Session {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[transport] upgrade error: %v", err)
		return nil
	}

	s := NewSession(id, conn)
	go s.writePump()
	s.readPump(handler)

	s.Close()
	conn.Close()
	return s
}

// SendHi enqueues a high-priority (reliable, ordered, one-shot) frame —
// player-meta announcements, init frames — dropping the oldest queued
// frame rather than blocking if the lane is saturated.
func (s *Session) SendHi(data []byte) {
	s.enqueue(s.outboundHi, data)
}

// SendLo enqueues a low-priority frame.
func (s *Session) SendLo(data []byte) {
	s.enqueue(s.outboundLo, data)
}

func (s *Session) enqueue(lane chan []byte, data []byte) {
	select {
	case lane <- data:
	default:
		select {
		case <-lane:
		default:
		}
		select {
		case lane <- data:
		default:
		}
	}
	s.notify()
}

// SetState replaces the pending per-tick state frame.
func (s *Session) SetState(data []byte) {
	s.latestState.Store(data)
	s.notify()
}

// TakeState returns and clears the pending state frame, for tests and any
// caller that wants to inspect what would be sent without a real pump
// draining it.
func (s *Session) TakeState() ([]byte, bool) {
	return s.latestState.Take()
}

func (s *Session) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Close signals both pumps to stop. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Session) readPump(handler Handler) {
	s.conn.SetReadLimit(readLimitBytes)
	s.conn.SetReadDeadline(time.Now().Add(readDeadline))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(readDeadline))
		if msgType != websocket.BinaryMessage {
			continue
		}

		msg, ok := replication.DecodeClientMessage(data)
		if !ok {
			continue
		}
		switch msg.Type {
		case replication.TypeJoin:
			handler.HandleJoin(s, msg)
		case replication.TypeRespawn:
			handler.HandleRespawn(s, msg)
		case replication.TypeInput:
			s.Inbound.apply(msg)
		}
	}
}

func (s *Session) writePump() {
	pingTicker := time.NewTicker(pingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-pingTicker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.wake:
			if !s.drainAndSend() {
				return
			}
		}
	}
}

// drainAndSend sends every queued hi-lane frame, then at most one state
// frame, then at most one lo-lane frame — one wake cycle never sends more
// than one state snapshot, so a slow client falls behind on state but
// never backlogs stale ones.
func (s *Session) drainAndSend() bool {
	for {
		select {
		case msg := <-s.outboundHi:
			if !s.write(msg) {
				return false
			}
		default:
			goto afterHi
		}
	}
afterHi:
	if data, ok := s.latestState.Take(); ok {
		if !s.write(data) {
			return false
		}
	}
	select {
	case msg := <-s.outboundLo:
		return s.write(msg)
	default:
		return true
	}
}

func (s *Session) write(data []byte) bool {
	s.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return s.conn.WriteMessage(websocket.BinaryMessage, data) == nil
}
