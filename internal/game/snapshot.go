package game

import (
	"encoding/json"
	"fmt"
)

// EntityState is one server-authoritative entity record, kept as a decoded
// JSON object so the differ can compare it structurally without knowing
// every kind's schema. Kind-specific fields ride along untouched.
type EntityState map[string]any

// Kind returns the record's kind tag, or "" when absent.
func (s EntityState) Kind() string {
	kind, _ := s["kind"].(string)
	return kind
}

// Position extracts the record's position field. ok is false when the
// field is missing or not an {x, y} object.
func (s EntityState) Position() (Vector2, bool) {
	obj, ok := s["position"].(map[string]any)
	if !ok {
		return Vector2{}, false
	}
	x, xok := obj["x"].(float64)
	y, yok := obj["y"].(float64)
	if !xok || !yok {
		return Vector2{}, false
	}
	return Vector2{X: x, Y: y}, true
}

// Snapshot is one complete timestamped picture of the remote simulation.
// Immutable once decoded; each snapshot becomes the baseline the next one
// is diffed against.
type Snapshot struct {
	TS       int64                  `json:"ts"`
	Entities map[string]EntityState `json:"entities"`
}

// DecodeSnapshot parses a game_state payload.
func DecodeSnapshot(raw json.RawMessage) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Entities == nil {
		snap.Entities = map[string]EntityState{}
	}
	return snap, nil
}
