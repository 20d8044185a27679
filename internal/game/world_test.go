package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// stubEntity records lifecycle hook invocations.
type stubEntity struct {
	world     *World
	started   int
	destroyed int
	updates   []float64
	data      []EntityState
}

func (s *stubEntity) attach(w *World)      { s.world = w }
func (s *stubEntity) Start()               { s.started++ }
func (s *stubEntity) Destroy()             { s.destroyed++ }
func (s *stubEntity) Update(delta float64) { s.updates = append(s.updates, delta) }

func (s *stubEntity) Draw(*ebiten.Image) {}

func (s *stubEntity) UpdateData(f EntityState) { s.data = append(s.data, f) }

func TestAddIsIdempotent(t *testing.T) {
	w := NewWorld()
	e1 := &stubEntity{}
	e2 := &stubEntity{}

	w.Add("id", e1)
	w.Add("id", e2)

	if w.Count() != 1 {
		t.Fatalf("count = %d, want 1", w.Count())
	}
	if w.entities["id"] != e1 {
		t.Fatal("duplicate add replaced the original entity")
	}
	if e1.started != 1 {
		t.Fatalf("e1 started %d times, want 1", e1.started)
	}
	if e2.started != 0 {
		t.Fatal("rejected entity's Start hook ran")
	}
}

func TestAddStampsWorldAndStarts(t *testing.T) {
	w := NewWorld()
	e := &stubEntity{}

	w.Add("id", e)

	if e.world != w {
		t.Fatal("entity not attached to its world")
	}
	if e.started != 1 {
		t.Fatalf("started = %d, want 1", e.started)
	}
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	w := NewWorld()
	e := &stubEntity{}
	w.Add("a", e)

	w.Remove("missing")

	if w.Count() != 1 {
		t.Fatalf("count = %d, want 1", w.Count())
	}
	if e.destroyed != 0 {
		t.Fatal("Destroy ran for an unrelated removal")
	}
}

func TestRemoveInvokesDestroyAndKeepsOrder(t *testing.T) {
	w := NewWorld()
	a, b, c := &stubEntity{}, &stubEntity{}, &stubEntity{}
	w.Add("a", a)
	w.Add("b", b)
	w.Add("c", c)

	w.Remove("b")

	if b.destroyed != 1 {
		t.Fatalf("destroyed = %d, want 1", b.destroyed)
	}
	if len(w.order) != 2 || w.order[0] != "a" || w.order[1] != "c" {
		t.Fatalf("order = %v, want [a c]", w.order)
	}
}

func TestUpdateRunsInRegistrationOrder(t *testing.T) {
	w := NewWorld()
	var got []string
	for _, id := range []string{"z", "a", "m"} {
		id := id
		w.Add(id, &orderedStub{onUpdate: func() { got = append(got, id) }})
	}

	w.Update(0.016)

	if len(got) != 3 || got[0] != "z" || got[1] != "a" || got[2] != "m" {
		t.Fatalf("update order = %v, want [z a m]", got)
	}
}

type orderedStub struct {
	stubEntity
	onUpdate func()
}

func (o *orderedStub) Update(float64) { o.onUpdate() }

func TestSpawnFromStateDispatchesOnKind(t *testing.T) {
	w := NewWorld()

	w.SpawnFromState("p", state(KindPlayer, 1, 2))
	w.SpawnFromState("b", state(KindBullet, 3, 4))

	if _, ok := w.entities["p"].(*Player); !ok {
		t.Fatalf("p is %T, want *Player", w.entities["p"])
	}
	if _, ok := w.entities["b"].(*Bullet); !ok {
		t.Fatalf("b is %T, want *Bullet", w.entities["b"])
	}
}

func TestSpawnFromStateIgnoresUnknownKind(t *testing.T) {
	w := NewWorld()

	w.SpawnFromState("x", EntityState{"kind": "Turret"})
	w.SpawnFromState("y", EntityState{})

	if w.Count() != 0 {
		t.Fatalf("count = %d, want 0", w.Count())
	}
}

func TestApplyUpdateUnknownIsDropped(t *testing.T) {
	w := NewWorld()

	// Must not panic or create anything; a stale update raced a
	// creation we never saw.
	w.ApplyUpdate("ghost", EntityState{"position": map[string]any{"x": 1.0}})

	if w.Count() != 0 {
		t.Fatalf("count = %d, want 0", w.Count())
	}
}

func TestReconcileLifecycle(t *testing.T) {
	w := NewWorld()

	// First snapshot: one player appears at the origin.
	w.Reconcile(Snapshot{TS: 1000, Entities: map[string]EntityState{
		"p1": state(KindPlayer, 0, 0),
	}})

	if w.Count() != 1 {
		t.Fatalf("count after first snapshot = %d, want 1", w.Count())
	}
	p, ok := w.entities["p1"].(*Player)
	if !ok {
		t.Fatalf("p1 is %T, want *Player", w.entities["p1"])
	}
	if p.current != (Vector2{}) || p.target != (Vector2{}) {
		t.Fatalf("spawn position current=%v target=%v, want origin", p.current, p.target)
	}

	// Second snapshot: the player moved. Same entity, new target, no
	// teleport.
	w.Reconcile(Snapshot{TS: 1100, Entities: map[string]EntityState{
		"p1": state(KindPlayer, 10, 0),
	}})

	if w.entities["p1"] != Entity(p) {
		t.Fatal("update recreated the entity")
	}
	if p.target != (Vector2{X: 10, Y: 0}) {
		t.Fatalf("target = %v, want (10, 0)", p.target)
	}
	if p.current != (Vector2{}) {
		t.Fatalf("current jumped to %v", p.current)
	}

	w.Update(1.0 / 60.0)
	if p.current.X != 7 {
		t.Fatalf("after one tick current.x = %v, want 7", p.current.X)
	}

	// Third snapshot omits the player entirely.
	w.Reconcile(Snapshot{TS: 1200, Entities: map[string]EntityState{}})

	if w.Count() != 0 {
		t.Fatalf("count after removal = %d, want 0", w.Count())
	}
	if len(w.order) != 0 {
		t.Fatalf("order = %v, want empty", w.order)
	}
}

func TestReconcileTwiceBetweenTicks(t *testing.T) {
	w := NewWorld()

	w.Reconcile(Snapshot{TS: 1, Entities: map[string]EntityState{
		"p1": state(KindPlayer, 0, 0),
	}})
	w.Reconcile(Snapshot{TS: 2, Entities: map[string]EntityState{
		"p1": state(KindPlayer, 4, 4),
		"b1": state(KindBullet, 8, 8),
	}})

	if w.Count() != 2 {
		t.Fatalf("count = %d, want 2", w.Count())
	}
	p := w.entities["p1"].(*Player)
	if p.target != (Vector2{X: 4, Y: 4}) {
		t.Fatalf("target = %v, want (4, 4)", p.target)
	}
}

func TestReconcileUnknownKindProducesNothing(t *testing.T) {
	w := NewWorld()

	w.Reconcile(Snapshot{TS: 1, Entities: map[string]EntityState{
		"t1": {"kind": "Turret", "position": map[string]any{"x": 1.0, "y": 1.0}},
	}})

	if w.Count() != 0 {
		t.Fatalf("count = %d, want 0", w.Count())
	}

	// And its later disappearance is equally uneventful.
	w.Reconcile(Snapshot{TS: 2, Entities: map[string]EntityState{}})
	if w.Count() != 0 {
		t.Fatalf("count = %d, want 0", w.Count())
	}
}
