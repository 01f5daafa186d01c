package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tile-arcade/internal/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Request is a message sent by a browser client.
type Request struct {
	Type      string `json:"type"` // move, drop, reset, state, name
	Direction string `json:"direction,omitempty"`
	Column    *int   `json:"column,omitempty"`
	Seed      int64  `json:"seed,omitempty"`
	Player    string `json:"player,omitempty"`
}

// Message is a message sent to browser clients.
type Message struct {
	Type    string        `json:"type"` // state or error
	Session string        `json:"session"`
	State   *session.View `json:"state,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Client is one WebSocket connection watching a session.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
	owner     bool // the session was created for this connection
}

type outbound struct {
	sessionID string
	client    *Client // nil broadcasts to the whole session
	data      []byte
}

// Hub routes client requests to the session manager and fans results out
// to every client watching the same session. A session created for a
// connection is deleted once its last client leaves.
type Hub struct {
	sessions *session.Manager
	logger   *log.Logger

	// Registered clients by session ID, owned by Run
	clients map[string]map[*Client]bool
	owned   map[string]bool

	register   chan *Client
	unregister chan *Client
	outbound   chan outbound
	done       chan struct{}
}

// NewHub creates a hub serving sessions from m.
func NewHub(m *session.Manager, logger *log.Logger) *Hub {
	return &Hub{
		sessions:   m,
		logger:     logger,
		clients:    make(map[string]map[*Client]bool),
		owned:      make(map[string]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan outbound, 64),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop and blocks until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for id, clients := range h.clients {
				for c := range clients {
					close(c.send)
				}
				delete(h.clients, id)
			}
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case out := <-h.outbound:
			h.deliver(out)
		}
	}
}

func (h *Hub) registerClient(c *Client) {
	if h.clients[c.sessionID] == nil {
		h.clients[c.sessionID] = make(map[*Client]bool)
	}
	h.clients[c.sessionID][c] = true
	if c.owner {
		h.owned[c.sessionID] = true
	}

	h.logger.Debug("client registered", "session", c.sessionID, "clients", len(h.clients[c.sessionID]))
}

func (h *Hub) unregisterClient(c *Client) {
	clients, ok := h.clients[c.sessionID]
	if !ok || !clients[c] {
		return
	}
	delete(clients, c)
	close(c.send)

	h.logger.Debug("client unregistered", "session", c.sessionID, "clients", len(clients))

	if len(clients) > 0 {
		return
	}
	delete(h.clients, c.sessionID)
	if h.owned[c.sessionID] {
		delete(h.owned, c.sessionID)
		if err := h.sessions.Delete(c.sessionID); err != nil && !errors.Is(err, session.ErrSessionNotFound) {
			h.logger.Warn("could not delete session", "session", c.sessionID, "error", err)
		}
	}
}

func (h *Hub) deliver(out outbound) {
	clients := h.clients[out.sessionID]
	if out.client != nil {
		if clients[out.client] {
			h.trySend(out.client, out.data)
		}
		return
	}
	for c := range clients {
		h.trySend(c, out.data)
	}
}

func (h *Hub) trySend(c *Client, data []byte) {
	select {
	case c.send <- data:
	default:
		// Slow client, drop it
		h.unregisterClient(c)
	}
}

// join registers c unless the hub has stopped.
func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) publish(out outbound) {
	select {
	case h.outbound <- out:
	case <-h.done:
	}
}

// handle applies one request to the client's session.
func (h *Hub) handle(c *Client, req Request) {
	var (
		view session.View
		err  error
	)
	switch req.Type {
	case "move":
		view, err = h.sessions.Move(c.sessionID, req.Direction)
	case "drop":
		if req.Column == nil {
			err = fmt.Errorf("%w: drop needs a column", session.ErrInvalidColumn)
			break
		}
		view, err = h.sessions.Drop(c.sessionID, *req.Column)
	case "reset":
		view, err = h.sessions.Reset(c.sessionID, req.Seed)
	case "name":
		if err = h.sessions.SetPlayer(c.sessionID, req.Player); err == nil {
			view, err = h.sessions.Get(c.sessionID)
		}
	case "state":
		// Only the asking client needs the answer
		view, err = h.sessions.Get(c.sessionID)
		if err == nil {
			h.publish(outbound{sessionID: c.sessionID, client: c, data: encode(stateMessage(view))})
			return
		}
	default:
		err = fmt.Errorf("unknown request type %q", req.Type)
	}

	if err != nil {
		h.publish(outbound{sessionID: c.sessionID, client: c, data: encode(Message{
			Type:    "error",
			Session: c.sessionID,
			Error:   err.Error(),
		})})
		return
	}
	h.publish(outbound{sessionID: c.sessionID, data: encode(stateMessage(view))})
}

func stateMessage(v session.View) Message {
	return Message{Type: "state", Session: v.ID, State: &v}
}

func encode(m Message) []byte {
	data, err := json.Marshal(m)
	if err != nil {
		// Message only holds plain values
		panic(err)
	}
	return data
}

// readPump pumps requests from the WebSocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket error", "session", c.sessionID, "error", err)
			}
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			c.hub.publish(outbound{sessionID: c.sessionID, client: c, data: encode(Message{
				Type:    "error",
				Session: c.sessionID,
				Error:   "malformed request: " + err.Error(),
			})})
			continue
		}
		c.hub.handle(c, req)
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
// Each message is written as its own frame.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
