// Package gateway streams trade events to websocket clients
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/rs/zerolog/log"
)

// ErrBroadcastFull is returned by NotifyTrade when the hub cannot keep up
var ErrBroadcastFull = errors.New("broadcast channel full")

// Hub fans trade events out to connected websocket clients. A client that
// connects with ?owner_id= only receives trades involving that owner.
type Hub struct {
	connections map[*Connection]bool
	mu          sync.RWMutex

	upgrader websocket.Upgrader
	config   ConnectionConfig

	broadcastCh chan models.TradeEvent
}

// Connection represents a WebSocket connection to a client
type Connection struct {
	ID      string
	OwnerID models.OwnerID
	Conn    *websocket.Conn
	Send    chan []byte
	hub     *Hub

	ConnectedAt time.Time
}

// ConnectionConfig holds configuration for WebSocket connections
type ConnectionConfig struct {
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	PingInterval    time.Duration `yaml:"ping_interval"`
	MaxMessageSize  int64         `yaml:"max_message_size"`
	ReadBufferSize  int           `yaml:"read_buffer_size"`
	WriteBufferSize int           `yaml:"write_buffer_size"`
	BufferedEvents  int           `yaml:"buffered_events"`
}

// Message is the frame written to clients
type Message struct {
	Type  string            `json:"type"`
	Event models.TradeEvent `json:"event"`
}

// DefaultConnectionConfig returns default WebSocket configuration
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		BufferedEvents:  1000,
	}
}

func (c ConnectionConfig) withDefaults() ConnectionConfig {
	d := DefaultConnectionConfig()
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.PingInterval <= 0 {
		c.PingInterval = d.PingInterval
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.BufferedEvents <= 0 {
		c.BufferedEvents = d.BufferedEvents
	}
	return c
}

// NewHub creates a hub; call Start to begin delivering events
func NewHub(config ConnectionConfig) *Hub {
	config = config.withDefaults()
	return &Hub{
		connections: make(map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		config:      config,
		broadcastCh: make(chan models.TradeEvent, config.BufferedEvents),
	}
}

// Start processes broadcasts until ctx is done
func (h *Hub) Start(ctx context.Context) {
	log.Info().Msg("trade hub started")

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			log.Info().Msg("trade hub shutting down")
			return
		case event := <-h.broadcastCh:
			h.handleBroadcast(event)
		}
	}
}

// NotifyTrade queues the event for every interested connection
func (h *Hub) NotifyTrade(_ context.Context, event models.TradeEvent) error {
	select {
	case h.broadcastCh <- event:
		return nil
	default:
		log.Warn().Str("trade_id", event.Trade.ID.String()).Msg("broadcast channel full, dropping trade event")
		return ErrBroadcastFull
	}
}

// ServeHTTP upgrades the request to a websocket subscription
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		return
	}

	connection := &Connection{
		ID:          uuid.New().String(),
		OwnerID:     models.OwnerID(strings.TrimSpace(r.URL.Query().Get("owner_id"))),
		Conn:        conn,
		Send:        make(chan []byte, 256),
		hub:         h,
		ConnectedAt: time.Now(),
	}
	h.register(connection)

	go connection.writePump()
	go connection.readPump()

	log.Info().
		Str("connection_id", connection.ID).
		Str("owner_id", connection.OwnerID.String()).
		Msg("WebSocket connection established")
}

// Count returns the number of open connections
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) register(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[conn] = true

	log.Debug().
		Str("connection_id", conn.ID).
		Int("total_connections", len(h.connections)).
		Msg("connection registered")
}

func (h *Hub) unregister(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.connections[conn]; ok {
		delete(h.connections, conn)
		close(conn.Send)

		log.Info().
			Str("connection_id", conn.ID).
			Str("owner_id", conn.OwnerID.String()).
			Msg("connection unregistered")
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	conns := make([]*Connection, 0, len(h.connections))
	for conn := range h.connections {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		h.unregister(conn)
	}
}

func (h *Hub) handleBroadcast(event models.TradeEvent) {
	data, err := json.Marshal(Message{
		Type:  "trade." + strings.ToLower(string(event.Outcome)),
		Event: event,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event for broadcast")
		return
	}

	// sends happen under the read lock so unregister cannot close a Send
	// channel mid-broadcast
	var slow []*Connection
	delivered := 0
	h.mu.RLock()
	for conn := range h.connections {
		if conn.OwnerID != "" && !event.Trade.Involves(conn.OwnerID) {
			continue
		}
		select {
		case conn.Send <- data:
			delivered++
		default:
			slow = append(slow, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range slow {
		log.Warn().
			Str("connection_id", conn.ID).
			Msg("connection send buffer full, closing connection")
		h.unregister(conn)
		conn.Conn.Close()
	}

	log.Debug().
		Str("outcome", string(event.Outcome)).
		Int("connections", delivered).
		Msg("trade event broadcasted")
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(c.hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.hub.unregister(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().Err(err).Str("connection_id", c.ID).Msg("failed to write message to WebSocket")
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().Err(err).Str("connection_id", c.ID).Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump only keeps the read deadline alive; clients never send commands
func (c *Connection) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.hub.config.MaxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("connection_id", c.ID).Msg("unexpected WebSocket close error")
			}
			return
		}
		_ = c.Conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	}
}
