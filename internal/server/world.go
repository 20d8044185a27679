package server

import (
	"time"

	"github.com/google/uuid"

	"arena/internal/game"
)

// GameState is the game_state payload broadcast every tick.
type GameState struct {
	TS       int64             `json:"ts"`
	Entities map[string]Entity `json:"entities"`
}

// World holds the simulated entity set. It is not goroutine-safe; the Hub
// serializes access under its own lock.
type World struct {
	entities map[string]Entity
}

func NewWorld() *World {
	return &World{entities: make(map[string]Entity)}
}

// AddPlayer spawns an avatar for id at a random position.
func (w *World) AddPlayer(id string) {
	w.entities[id] = NewPlayer(id)
}

// RemovePlayer drops id's avatar. Bullets the player fired keep flying.
func (w *World) RemovePlayer(id string) {
	delete(w.entities, id)
}

// Move adds a velocity impulse to id's avatar, if it is a player.
func (w *World) Move(id string, dx, dy float64) {
	p, ok := w.entities[id].(*Player)
	if !ok {
		return
	}
	p.Velocity.X += dx
	p.Velocity.Y += dy
}

// Fire spawns a bullet at id's avatar, aimed at click.
func (w *World) Fire(id string, click game.Vector2) {
	p, ok := w.entities[id].(*Player)
	if !ok {
		return
	}
	angle := click.Sub(p.Position).Angle()
	bulletID := uuid.NewString()
	w.entities[bulletID] = &Bullet{
		ID:       bulletID,
		Owner:    id,
		Position: p.Position,
		Velocity: game.FromAngle(angle).Mul(bulletSpeed),
	}
}

// Step advances every entity by delta seconds and culls bullets that have
// left the world far behind.
func (w *World) Step(delta float64) {
	for id, e := range w.entities {
		e.Update(delta)
		if _, isBullet := e.(*Bullet); !isBullet {
			continue
		}
		pos := e.Pos()
		if pos.X < -bulletCullMargin || pos.X > worldWidth+bulletCullMargin ||
			pos.Y < -bulletCullMargin || pos.Y > worldHeight+bulletCullMargin {
			delete(w.entities, id)
		}
	}
}

// Snapshot builds the broadcast payload for the current entity set.
func (w *World) Snapshot() GameState {
	out := GameState{
		TS:       time.Now().UnixMilli(),
		Entities: make(map[string]Entity, len(w.entities)),
	}
	for id, e := range w.entities {
		out.Entities[id] = e
	}
	return out
}
