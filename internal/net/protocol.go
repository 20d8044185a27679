package net

// Message kinds spoken on the wire. Every frame is an Envelope whose Data
// field carries the kind's payload encoded as its own JSON text.

const (
	// Server → Client
	KindGameState = "game_state"

	// Client → Server
	KindMove = "move"
	KindFire = "fire"
)

// Envelope wraps one message on the wire. Data is the payload's JSON,
// serialized independently of the envelope so its structure stays opaque
// to the framing layer.
type Envelope struct {
	Kind string `json:"kind"`
	Data string `json:"data"`
}

// MovePayload is the velocity impulse for a move message: [dx, dy].
type MovePayload [2]float64

// FirePayload is the click position for a fire message: [x, y], relative
// to the render surface.
type FirePayload [2]float64
