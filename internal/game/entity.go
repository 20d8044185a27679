package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Entity kinds the client knows how to instantiate. Records with any other
// kind tag are ignored, so the server may ship new kinds ahead of us.
const (
	KindPlayer = "Player"
	KindBullet = "Bullet"
)

// approachRate is the per-tick exponential approach coefficient. It is
// applied once per update tick regardless of delta, so convergence speed
// follows the frame rate. That is how the game has always felt; do not
// time-normalize it without retuning.
const approachRate = 0.7

// Entity is the capability set every locally instantiated entity exposes.
type Entity interface {
	// Start runs once, after the entity has been registered.
	Start()
	// Destroy runs once, just before the entity is dropped.
	Destroy()
	// Update advances local state by delta seconds.
	Update(delta float64)
	// Draw renders the entity at its current (not target) position.
	Draw(screen *ebiten.Image)
	// UpdateData applies the changed fields of a reconciliation. Fields
	// not present are left alone.
	UpdateData(fields EntityState)

	attach(w *World)
}

// interpolated is the shared position-smoothing core. The authoritative
// position only ever lands in target; current chases it a fixed fraction
// per tick, so a snapshot jump turns into a glide instead of a teleport.
type interpolated struct {
	world   *World
	current Vector2
	target  Vector2
}

func (e *interpolated) attach(w *World) { e.world = w }

func (e *interpolated) Start()   {}
func (e *interpolated) Destroy() {}

func (e *interpolated) Update(delta float64) {
	e.current.X += (e.target.X - e.current.X) * approachRate
	e.current.Y += (e.target.Y - e.current.Y) * approachRate
}

// UpdateData moves the target. A field-level diff may carry x without y or
// the other way round; each axis applies independently. current is never
// touched here.
func (e *interpolated) UpdateData(fields EntityState) {
	obj, ok := fields["position"].(map[string]any)
	if !ok {
		return
	}
	if x, ok := obj["x"].(float64); ok {
		e.target.X = x
	}
	if y, ok := obj["y"].(float64); ok {
		e.target.Y = y
	}
}

// snap places the entity at pos immediately, target and current both. Used
// once at creation so new entities don't glide in from the origin.
func (e *interpolated) snap(pos Vector2) {
	e.current = pos
	e.target = pos
}
