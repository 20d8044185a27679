package server

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"arena/internal/game"
	"arena/internal/net"
)

const tickInterval = 16 * time.Millisecond

// Hub owns the world and every live session. All world access is
// serialized under mu; the tick loop, connects, disconnects, and inbound
// messages all take it.
type Hub struct {
	mu       sync.Mutex
	world    *World
	sessions map[string]*Session
}

func NewHub() *Hub {
	return &Hub{
		world:    NewWorld(),
		sessions: make(map[string]*Session),
	}
}

// Run ticks the simulation and broadcasts a full snapshot after every
// step. It never returns.
func (h *Hub) Run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	last := time.Now()
	for now := range ticker.C {
		delta := now.Sub(last).Seconds()
		last = now

		h.mu.Lock()
		h.world.Step(delta)
		snap := h.world.Snapshot()
		frame, err := net.Encode(net.KindGameState, snap)
		if err != nil {
			h.mu.Unlock()
			log.Printf("encode snapshot: %v", err)
			continue
		}
		for _, s := range h.sessions {
			s.Queue(frame)
		}
		h.mu.Unlock()
	}
}

// Connect registers a session, spawns its player, and returns the id that
// keys both.
func (h *Hub) Connect(s *Session) string {
	id := uuid.NewString()
	h.mu.Lock()
	h.sessions[id] = s
	h.world.AddPlayer(id)
	h.mu.Unlock()
	log.Printf("player %s connected", id)
	return id
}

// Disconnect drops the session and its player.
func (h *Hub) Disconnect(id string) {
	h.mu.Lock()
	delete(h.sessions, id)
	h.world.RemovePlayer(id)
	h.mu.Unlock()
	log.Printf("player %s disconnected", id)
}

// HandleFrame processes one inbound frame from the session keyed by id.
// Malformed frames and unknown kinds are dropped.
func (h *Hub) HandleFrame(id string, frame []byte) {
	kind, raw, err := net.Decode(frame)
	if err != nil {
		log.Printf("player %s: dropping frame: %v", id, err)
		return
	}
	switch kind {
	case net.KindMove:
		impulse, err := net.DecodePayload[net.MovePayload](raw)
		if err != nil {
			log.Printf("player %s: bad move payload: %v", id, err)
			return
		}
		h.mu.Lock()
		h.world.Move(id, impulse[0], impulse[1])
		h.mu.Unlock()
	case net.KindFire:
		click, err := net.DecodePayload[net.FirePayload](raw)
		if err != nil {
			log.Printf("player %s: bad fire payload: %v", id, err)
			return
		}
		h.mu.Lock()
		h.world.Fire(id, game.Vector2{X: click[0], Y: click[1]})
		h.mu.Unlock()
	}
}
