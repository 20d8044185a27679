package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"arena/internal/client"
	"arena/internal/events"
	"arena/internal/game"
	"arena/internal/net"
)

const (
	ScreenWidth  = 800
	ScreenHeight = 600

	// Velocity impulse sent per frame while a movement key is held.
	moveImpulse = 5.0
)

var backgroundColor = color.RGBA{0x1a, 0x1a, 0x22, 0xff}

type Game struct {
	provider *client.Provider
	world    *game.World
}

func NewGame(provider *client.Provider, world *game.World) *Game {
	return &Game{provider: provider, world: world}
}

func (g *Game) Update() error {
	// Deliver whatever snapshots arrived since the last frame. This is
	// the only place bus handlers run, so reconciliation always
	// interleaves with ticks instead of racing them.
	g.provider.Pump()

	g.handleInput()

	g.world.Update(1.0 / float64(ebiten.TPS()))

	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) handleInput() {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		dy -= moveImpulse
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		dy += moveImpulse
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		dx -= moveImpulse
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		dx += moveImpulse
	}
	if dx != 0 || dy != 0 {
		if err := g.provider.Send(net.KindMove, net.MovePayload{dx, dy}); err != nil {
			log.Printf("move: %v", err)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if err := g.provider.Send(net.KindFire, net.FirePayload{float64(mx), float64(my)}); err != nil {
			log.Printf("fire: %v", err)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.world.Draw(screen)
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"%s | entities: %d | ts: %d",
		g.provider.State(), g.world.Count(), g.world.LastTS(),
	))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func main() {
	addr := flag.String("addr", "ws://localhost:1111/", "server websocket URL")
	flag.Parse()

	bus := events.NewBus()
	world := game.NewWorld()
	bus.Subscribe(net.KindGameState, func(raw json.RawMessage) {
		snap, err := game.DecodeSnapshot(raw)
		if err != nil {
			log.Printf("dropping snapshot: %v", err)
			return
		}
		world.Reconcile(snap)
	})

	provider := client.NewProvider(bus)
	if err := provider.Connect(context.Background(), *addr); err != nil {
		log.Fatal(err)
	}
	defer provider.Close()

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Arena")

	if err := ebiten.RunGame(NewGame(provider, world)); err != nil {
		log.Fatal(err)
	}
}
