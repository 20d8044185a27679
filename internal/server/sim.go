package server

import (
	"encoding/json"
	"math/rand"

	"arena/internal/game"
)

const (
	worldWidth  = 800.0
	worldHeight = 600.0

	// Velocity keeps this much magnitude, inverted, on a wall hit.
	bounceDamping = -0.8

	bulletSpeed = 300.0

	// Bullets this far outside the world are culled.
	bulletCullMargin = 200.0
)

// Entity is one simulated object. Implementations marshal themselves with
// a "kind" tag so clients can dispatch on it.
type Entity interface {
	Update(delta float64)
	Pos() game.Vector2
}

// Player is a connected player's avatar.
type Player struct {
	ID       string       `json:"id"`
	Health   float64      `json:"health"`
	Position game.Vector2 `json:"position"`
	Velocity game.Vector2 `json:"velocity"`
}

func NewPlayer(id string) *Player {
	return &Player{
		ID:     id,
		Health: 100,
		Position: game.Vector2{
			X: rand.Float64() * worldWidth,
			Y: rand.Float64() * worldHeight,
		},
	}
}

func (p *Player) Pos() game.Vector2 { return p.Position }

// Update integrates velocity and bounces off the world edges, losing a
// fifth of the speed per hit.
func (p *Player) Update(delta float64) {
	p.Position.X += p.Velocity.X * delta
	p.Position.Y += p.Velocity.Y * delta

	if p.Position.X < 0 {
		p.Position.X = 0
		p.Velocity.X *= bounceDamping
	} else if p.Position.X > worldWidth {
		p.Position.X = worldWidth
		p.Velocity.X *= bounceDamping
	}

	if p.Position.Y < 0 {
		p.Position.Y = 0
		p.Velocity.Y *= bounceDamping
	} else if p.Position.Y > worldHeight {
		p.Position.Y = worldHeight
		p.Velocity.Y *= bounceDamping
	}
}

func (p *Player) MarshalJSON() ([]byte, error) {
	type alias Player
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{Kind: game.KindPlayer, alias: (*alias)(p)})
}

// Bullet is a fired projectile. It flies straight until culled.
type Bullet struct {
	ID       string       `json:"id"`
	Owner    string       `json:"owner"`
	Position game.Vector2 `json:"position"`
	Velocity game.Vector2 `json:"velocity"`
}

func (b *Bullet) Pos() game.Vector2 { return b.Position }

func (b *Bullet) Update(delta float64) {
	b.Position.X += b.Velocity.X * delta
	b.Position.Y += b.Velocity.Y * delta
}

func (b *Bullet) MarshalJSON() ([]byte, error) {
	type alias Bullet
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{Kind: game.KindBullet, alias: (*alias)(b)})
}
