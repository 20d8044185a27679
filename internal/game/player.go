package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	playerRadius    = 12.0
	playerMaxHealth = 100.0
)

var (
	playerColor = color.RGBA{0x3a, 0x86, 0xff, 0xff}
	healthColor = color.RGBA{0x2e, 0xc4, 0x6b, 0xff}
	healthBack  = color.RGBA{0x40, 0x40, 0x40, 0xff}
)

// Player mirrors a remote player entity.
type Player struct {
	interpolated
	health float64
}

// NewPlayer builds a player from its first snapshot record.
func NewPlayer(state EntityState) *Player {
	p := &Player{health: playerMaxHealth}
	if pos, ok := state.Position(); ok {
		p.snap(pos)
	}
	if h, ok := state["health"].(float64); ok {
		p.health = h
	}
	return p
}

func (p *Player) UpdateData(fields EntityState) {
	p.interpolated.UpdateData(fields)
	if h, ok := fields["health"].(float64); ok {
		p.health = h
	}
}

func (p *Player) Draw(screen *ebiten.Image) {
	x := float32(p.current.X)
	y := float32(p.current.Y)
	vector.DrawFilledCircle(screen, x, y, playerRadius, playerColor, true)

	// Health bar above the body.
	frac := float32(p.health / playerMaxHealth)
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	const barW, barH = 2 * playerRadius, 3
	bx := x - barW/2
	by := y - playerRadius - 8
	vector.DrawFilledRect(screen, bx, by, barW, barH, healthBack, false)
	vector.DrawFilledRect(screen, bx, by, barW*frac, barH, healthColor, false)
}
