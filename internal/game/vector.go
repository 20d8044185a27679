package game

import "math"

// Vector2 is a plain value type. Copy it, don't share it.
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func FromAngle(angle float64) Vector2 {
	return Vector2{X: math.Cos(angle), Y: math.Sin(angle)}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2) Mul(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}
