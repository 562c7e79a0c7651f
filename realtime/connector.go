// Package realtime implements the client side of the websocket
// notification channel: a connector owning one socket per session, a
// message router fanning envelopes out by type, a bridge translating
// envelopes into cache invalidations, and a bounded notification feed.
package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"flipstackk-api/types"

	"github.com/gorilla/websocket"
)

// DefaultReconnectDelay is the fixed delay before a dropped connection
// is retried. There is no backoff and no retry cap.
const DefaultReconnectDelay = 5 * time.Second

// State is the observable connection state.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Config controls a Connector. BaseURL is the HTTP origin of the API;
// the websocket scheme is derived from it (https becomes wss).
type Config struct {
	BaseURL        string
	Path           string        // defaults to /ws
	ReconnectDelay time.Duration // defaults to DefaultReconnectDelay
	Header         http.Header   // extra headers for the upgrade request
	Logger         *slog.Logger
}

// Connector owns at most one live socket per authenticated session.
// It establishes, authenticates, and tears down the socket, and retries
// dropped connections after a fixed delay until Disconnect is called.
type Connector struct {
	cfg    Config
	router *Router
	logger *slog.Logger

	mu     sync.Mutex
	state  State
	conn   *websocket.Conn
	userID int
	retry  *time.Timer
	gen    uint64 // bumped on every Connect/Disconnect to fence stale callbacks

	writeMu sync.Mutex
}

// NewConnector creates a Connector that feeds inbound frames to router.
func NewConnector(cfg Config, router *Router) *Connector {
	if cfg.Path == "" {
		cfg.Path = "/ws"
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = DefaultReconnectDelay
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Connector{cfg: cfg, router: router, logger: logger}
}

// State returns the current connection state.
func (c *Connector) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect opens a socket for the given user. It is idempotent: if a
// socket is already connecting or connected, the call is a no-op.
func (c *Connector) Connect(userID int) {
	c.mu.Lock()
	if c.state != StateDisconnected {
		c.mu.Unlock()
		return
	}
	if c.retry != nil {
		c.retry.Stop()
		c.retry = nil
	}
	c.state = StateConnecting
	c.userID = userID
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	go c.dial(gen, userID)
}

// Disconnect closes the socket and cancels any pending reconnect.
// No further automatic reconnection occurs until Connect is called again.
func (c *Connector) Disconnect() {
	c.mu.Lock()
	c.gen++
	c.userID = 0
	if c.retry != nil {
		c.retry.Stop()
		c.retry = nil
	}
	conn := c.conn
	c.conn = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if conn != nil {
		deadline := time.Now().Add(time.Second)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		_ = conn.Close()
	}
}

// Send serializes {type, data} as one text frame and writes it if the
// socket is connected. It returns false, without error, when it is not:
// callers must not assume delivery.
func (c *Connector) Send(eventType types.EventType, data any) bool {
	c.mu.Lock()
	conn := c.conn
	connected := c.state == StateConnected
	c.mu.Unlock()
	if !connected || conn == nil {
		c.logger.Warn("websocket send skipped: not connected", "type", string(eventType))
		return false
	}

	payload, err := json.Marshal(data)
	if err != nil {
		c.logger.Warn("websocket send skipped: bad payload", "type", string(eventType), "err", err)
		return false
	}
	buf, err := json.Marshal(types.Envelope{Type: eventType, Data: payload})
	if err != nil {
		c.logger.Warn("websocket send skipped: bad envelope", "type", string(eventType), "err", err)
		return false
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, buf); err != nil {
		c.logger.Warn("websocket write failed", "type", string(eventType), "err", err)
		return false
	}
	return true
}

func (c *Connector) dial(gen uint64, userID int) {
	conn, resp, err := websocket.DefaultDialer.Dial(c.wsURL(), c.cfg.Header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	c.mu.Lock()
	if c.gen != gen {
		// Disconnect (or a newer Connect) raced the dial; discard this socket.
		c.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		return
	}
	if err != nil {
		c.logger.Warn("websocket dial failed", "url", c.wsURL(), "err", err)
		c.dropLocked()
		c.mu.Unlock()
		return
	}
	c.conn = conn
	c.state = StateConnected
	c.mu.Unlock()

	c.logger.Info("websocket connected", "url", c.wsURL())

	// The auth envelope is the first frame after open; the server is
	// trusted to validate the session via the same credentials as the
	// REST API.
	c.Send(types.EventAuth, types.AuthData{UserID: userID})

	c.readLoop(gen, conn)
}

// readLoop is the router's only producer: frames are dispatched from this
// single goroutine, so subscribers see them in receipt order with no
// concurrent delivery.
func (c *Connector) readLoop(gen uint64, conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			if c.gen == gen {
				c.logger.Info("websocket closed", "err", err)
				c.dropLocked()
			}
			c.mu.Unlock()
			_ = conn.Close()
			return
		}
		c.router.HandleFrame(data)
	}
}

// dropLocked transitions to disconnected and, while a user is still
// known, schedules a reconnect after the fixed delay. Callers hold c.mu.
func (c *Connector) dropLocked() {
	c.conn = nil
	c.state = StateDisconnected
	if c.userID == 0 {
		return
	}
	uid := c.userID
	c.retry = time.AfterFunc(c.cfg.ReconnectDelay, func() {
		c.Connect(uid)
	})
}

func (c *Connector) wsURL() string {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return c.cfg.BaseURL + c.cfg.Path
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	u.Path = c.cfg.Path
	return u.String()
}
