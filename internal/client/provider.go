package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"arena/internal/events"
	"arena/internal/net"
)

var (
	// ErrConnect reports a failed dial. The provider never retries;
	// reconnect policy belongs to whoever owns the provider.
	ErrConnect = errors.New("connect failed")
	// ErrNotConnected reports a send attempted while the connection is
	// not open.
	ErrNotConnected = errors.New("not connected")
)

// State is the provider's connection lifecycle stage.
type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
	Closed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// Provider owns the one websocket connection to the server. Inbound frames
// are buffered by the read pump and handed to the Bus on whatever
// goroutine calls Pump, so subscribers always run interleaved with the
// frame loop rather than concurrently with it.
type Provider struct {
	bus     *events.Bus
	conn    *websocket.Conn
	state   atomic.Int32
	inbound chan []byte
}

func NewProvider(bus *events.Bus) *Provider {
	return &Provider{
		bus:     bus,
		inbound: make(chan []byte, 64),
	}
}

// Connect dials addr and starts the read pump. It returns ErrConnect
// (wrapped) if the dial fails, leaving the provider Disconnected so a
// supervisor may build a fresh one.
func (p *Provider) Connect(ctx context.Context, addr string) error {
	if !p.state.CompareAndSwap(int32(Disconnected), int32(Connecting)) {
		return fmt.Errorf("connect: provider is %s", p.State())
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, addr, nil)
	if err != nil {
		p.state.Store(int32(Disconnected))
		return fmt.Errorf("%w: %s: %v", ErrConnect, addr, err)
	}
	p.conn = conn
	p.state.Store(int32(Connected))
	go p.readPump()
	return nil
}

// Send encodes payload under kind and writes it out. Fire-and-forget:
// there is no delivery confirmation and no queueing while disconnected.
func (p *Provider) Send(kind string, payload any) error {
	if p.State() != Connected {
		return fmt.Errorf("%w: send %q while %s", ErrNotConnected, kind, p.State())
	}
	frame, err := net.Encode(kind, payload)
	if err != nil {
		return err
	}
	if err := p.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return fmt.Errorf("send %q: %w", kind, err)
	}
	return nil
}

// Pump drains every frame the read pump has buffered so far, decoding each
// and publishing it on the bus. Malformed frames are dropped. Call once per
// tick from the game loop.
func (p *Provider) Pump() {
	for {
		select {
		case frame := <-p.inbound:
			kind, payload, err := net.Decode(frame)
			if err != nil {
				log.Printf("dropping frame: %v", err)
				continue
			}
			p.bus.Publish(kind, payload)
		default:
			return
		}
	}
}

func (p *Provider) State() State { return State(p.state.Load()) }

// Close tears the connection down. The provider is single-use; a closed
// provider cannot reconnect.
func (p *Provider) Close() {
	if p.state.Swap(int32(Closed)) == int32(Connected) {
		p.conn.Close()
	}
}

func (p *Provider) readPump() {
	for {
		_, frame, err := p.conn.ReadMessage()
		if err != nil {
			if p.state.CompareAndSwap(int32(Connected), int32(Closed)) {
				log.Printf("read error: %v", err)
			}
			return
		}
		select {
		case p.inbound <- frame:
		default:
			// Drop if buffer full
		}
	}
}
