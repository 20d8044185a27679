package game

import (
	"github.com/brunoga/deep/v2"
	"github.com/hajimehoshi/ebiten/v2"
)

// World owns every locally instantiated entity. Entities are keyed by the
// server's stable identity string; the order slice fixes update and draw
// order to registration order, later registrations drawing on top.
//
// World is not goroutine-safe. Reconcile and Update both run on the game
// loop's goroutine and may interleave in any order, zero or more
// reconciliations between two ticks.
type World struct {
	entities map[string]Entity
	order    []string
	prev     Snapshot
}

func NewWorld() *World {
	return &World{
		entities: make(map[string]Entity),
		prev:     Snapshot{Entities: map[string]EntityState{}},
	}
}

// Add registers e under id and runs its Start hook. Adding an identity
// that is already registered is a no-op; the original entity stays.
func (w *World) Add(id string, e Entity) {
	if _, ok := w.entities[id]; ok {
		return
	}
	w.entities[id] = e
	w.order = append(w.order, id)
	e.attach(w)
	e.Start()
}

// Remove runs the entity's Destroy hook and drops it from the registry and
// the draw order. Removing an unknown identity is a no-op. The relative
// order of the remaining entities is preserved.
func (w *World) Remove(id string) {
	e, ok := w.entities[id]
	if !ok {
		return
	}
	e.Destroy()
	delete(w.entities, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// SpawnFromState instantiates the right local variant for a snapshot
// record and registers it. Unrecognized kinds are ignored so the server
// may introduce entity kinds this build does not render yet.
func (w *World) SpawnFromState(id string, state EntityState) {
	switch state.Kind() {
	case KindPlayer:
		w.Add(id, NewPlayer(state))
	case KindBullet:
		w.Add(id, NewBullet(state))
	}
}

// ApplyUpdate forwards changed fields to the entity. An update for an
// identity that is not registered is dropped; it raced with a creation we
// never processed, which the next snapshot will sort out.
func (w *World) ApplyUpdate(id string, fields EntityState) {
	if e, ok := w.entities[id]; ok {
		e.UpdateData(fields)
	}
}

// Reconcile diffs snap against the previous snapshot and applies the
// resulting creations, data updates, and removals. snap then becomes the
// baseline for the next call. The registry is consistent again before
// Reconcile returns.
func (w *World) Reconcile(snap Snapshot) {
	d := Diff(w.prev.Entities, snap.Entities)
	for id, state := range d.Added {
		w.SpawnFromState(id, state)
	}
	for id, fields := range d.Updated {
		w.ApplyUpdate(id, fields)
	}
	for id := range d.Removed {
		w.Remove(id)
	}
	w.prev = deep.MustCopy(snap)
}

// Update steps every entity in registration order.
func (w *World) Update(delta float64) {
	for _, id := range w.order {
		w.entities[id].Update(delta)
	}
}

// Draw renders every entity in registration order.
func (w *World) Draw(screen *ebiten.Image) {
	for _, id := range w.order {
		w.entities[id].Draw(screen)
	}
}

// Count returns the number of registered entities.
func (w *World) Count() int { return len(w.entities) }

// LastTS returns the timestamp of the last reconciled snapshot, 0 before
// the first one.
func (w *World) LastTS() int64 { return w.prev.TS }
