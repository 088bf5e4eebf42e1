package cart

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

const EventCartUpdated = "cart.updated"

// Event is pushed to every tab of a cart session.
type Event struct {
	Type string   `json:"type"`
	Cart Snapshot `json:"cart"`
}

// connection is one open tab
type connection struct {
	session string
	conn    *websocket.Conn
	send    chan []byte
}

// Hub fans cart snapshots out to all live connections of a session.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*connection]struct{}
	log      *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		sessions: make(map[string]map[*connection]struct{}),
		log:      log,
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.sessions[c.session]
	if !ok {
		conns = make(map[*connection]struct{})
		h.sessions[c.session] = conns
	}
	conns[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.sessions[c.session]
	if !ok {
		return
	}
	if _, ok := conns[c]; ok {
		delete(conns, c)
		close(c.send)
	}
	if len(conns) == 0 {
		delete(h.sessions, c.session)
	}
}

// Publish implements Publisher.
func (h *Hub) Publish(session string, snap Snapshot) {
	data, err := json.Marshal(Event{Type: EventCartUpdated, Cart: snap})
	if err != nil {
		h.log.Error("encode cart event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.sessions[session] {
		select {
		case c.send <- data:
		default:
			// slow tab, it will catch up on the next change
		}
	}
}

// Connections returns the number of open tabs for session.
func (h *Hub) Connections(session string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[session])
}

// ServeWS registers conn, sends initial and blocks until the client leaves.
func (h *Hub) ServeWS(conn *websocket.Conn, session string, initial Snapshot) {
	c := &connection{
		session: session,
		conn:    conn,
		send:    make(chan []byte, 16),
	}
	if data, err := json.Marshal(Event{Type: EventCartUpdated, Cart: initial}); err == nil {
		c.send <- data
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

// Close drops every connection.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for session, conns := range h.sessions {
		for c := range conns {
			close(c.send)
		}
		delete(h.sessions, session)
	}
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// clients only listen; reading keeps pong handling and close detection alive
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("cart socket closed", zap.String("session", c.session), zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
