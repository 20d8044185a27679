package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	pingInterval = 5 * time.Second
	liveTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	sendBuffer   = 256
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev
	},
}

// Session is one connected client. Outbound frames go through the send
// channel so the hub's broadcast never blocks on a slow socket.
type Session struct {
	conn *websocket.Conn
	send chan []byte
}

// ServeWS upgrades the request and runs the session until the connection
// drops.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade: %v", err)
		return
	}

	s := &Session{
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	id := hub.Connect(s)

	go s.writePump()
	s.readPump(hub, id)
}

// Queue hands a frame to the write pump. Frames are dropped when the
// session's buffer is full.
func (s *Session) Queue(frame []byte) {
	select {
	case s.send <- frame:
	default:
		// Drop if buffer full
	}
}

func (s *Session) readPump(hub *Hub, id string) {
	defer func() {
		hub.Disconnect(id)
		close(s.send)
		s.conn.Close()
	}()

	s.conn.SetReadDeadline(time.Now().Add(liveTimeout))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(liveTimeout))
		return nil
	})

	for {
		_, frame, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("player %s: read: %v", id, err)
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(liveTimeout))
		hub.HandleFrame(id, frame)
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
