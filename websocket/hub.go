package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"flipstackk-api/types"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Client represents a websocket connection bound to a user.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID int
}

// targeted is a payload addressed to a single user's clients.
type targeted struct {
	userID  int
	payload []byte
}

// Hub manages active clients. Events can be pushed to one user or
// broadcast to the whole team; delivery is best-effort and at-most-once.
// clientsByUser is owned exclusively by the run goroutine; all sends are
// funneled through channels so no caller goroutine ever touches the map.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	notify     chan targeted
	// Map of userID to set of clients (one user may hold several tabs)
	clientsByUser map[int]map[*Client]bool
}

// NewHub creates and starts a new Hub loop.
func NewHub() *Hub {
	h := &Hub{
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		broadcast:     make(chan []byte, 64),
		notify:        make(chan targeted, 64),
		clientsByUser: make(map[int]map[*Client]bool),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			set, ok := h.clientsByUser[c.userID]
			if !ok {
				set = make(map[*Client]bool)
				h.clientsByUser[c.userID] = set
			}
			set[c] = true
		case c := <-h.unregister:
			if set, ok := h.clientsByUser[c.userID]; ok {
				if _, exists := set[c]; exists {
					delete(set, c)
					close(c.send)
					if len(set) == 0 {
						delete(h.clientsByUser, c.userID)
					}
				}
			}
		case payload := <-h.broadcast:
			for userID, set := range h.clientsByUser {
				for c := range set {
					select {
					case c.send <- payload:
					default:
						// Backpressure: drop and disconnect slow clients
						close(c.send)
						delete(set, c)
					}
				}
				if len(set) == 0 {
					delete(h.clientsByUser, userID)
				}
			}
		case msg := <-h.notify:
			set, ok := h.clientsByUser[msg.userID]
			if !ok {
				continue
			}
			for c := range set {
				select {
				case c.send <- msg.payload:
				default:
					// Backpressure: drop and disconnect slow clients
					close(c.send)
					delete(set, c)
				}
			}
			if len(set) == 0 {
				delete(h.clientsByUser, msg.userID)
			}
		}
	}
}

// Broadcast queues a payload for every connected client.
func (h *Hub) Broadcast(payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		slog.Warn("websocket broadcast queue full, dropping event")
	}
}

// NotifyUser queues a payload for all connected clients of a given user.
// Delivery happens on the hub goroutine, never on the caller's.
func (h *Hub) NotifyUser(userID int, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.notify <- targeted{userID: userID, payload: payload}:
	default:
		slog.Warn("websocket notify queue full, dropping event", "userId", userID)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades the HTTP connection and registers the client.
// The caller must have authenticated the request and set userId in the
// gin context; the client-side auth envelope is read for the wire
// contract but carries no extra trust.
func ServeWS(h *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("userId")
		if userID == 0 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", "err", err)
			return
		}
		client := &Client{hub: h, conn: conn, send: make(chan []byte, 256), userID: userID}
		h.register <- client

		// Reader goroutine
		go func() {
			defer func() {
				h.unregister <- client
				_ = conn.Close()
			}()
			conn.SetReadLimit(4096)
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			})
			for {
				_, data, err := conn.ReadMessage()
				if err != nil {
					break
				}
				readClientFrame(userID, data)
				_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			}
		}()

		// Writer loop (same goroutine)
		for msg := range client.send {
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				break
			}
		}
	}
}

// readClientFrame decodes an inbound client frame. Only the auth
// handshake is expected; anything else is ignored.
func readClientFrame(userID int, data []byte) {
	var env types.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		slog.Warn("ignoring malformed client frame", "userId", userID, "err", err)
		return
	}
	if env.Type != types.EventAuth {
		return
	}
	var auth types.AuthData
	if err := json.Unmarshal(env.Data, &auth); err != nil {
		return
	}
	if auth.UserID != userID {
		slog.Warn("auth envelope userId mismatch", "session", userID, "claimed", auth.UserID)
		return
	}
	slog.Debug("websocket client authenticated", "userId", userID)
}
