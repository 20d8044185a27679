package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const bulletRadius = 3.0

var bulletColor = color.RGBA{0xff, 0xbe, 0x0b, 0xff}

// Bullet mirrors a remote projectile.
type Bullet struct {
	interpolated
}

func NewBullet(state EntityState) *Bullet {
	b := &Bullet{}
	if pos, ok := state.Position(); ok {
		b.snap(pos)
	}
	return b
}

func (b *Bullet) Draw(screen *ebiten.Image) {
	vector.DrawFilledCircle(screen, float32(b.current.X), float32(b.current.Y), bulletRadius, bulletColor, true)
}
