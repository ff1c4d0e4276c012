// Package ws доставляет дельты клиентам по WebSocket и снимает задержку
// соединения по ping/pong.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	gocache "github.com/patrickmn/go-cache"

	"github.com/iudanet/deltasync/internal/metrics"
	"github.com/iudanet/deltasync/internal/models"
	"github.com/iudanet/deltasync/internal/validation"
	"github.com/iudanet/deltasync/pkg/api"
)

var (
	// ErrOutboxFull returned when a connected client does not keep up
	ErrOutboxFull = errors.New("client outbox is full")

	// ErrClosed returned after Close
	ErrClosed = errors.New("hub is closed")
)

// Результаты доставки для метрик
const (
	resultSent    = "sent"
	resultPending = "pending"
	resultDropped = "dropped"
)

// Значения по умолчанию
const (
	DefaultOutboxSize     = 256
	DefaultPendingSize    = 100
	DefaultPendingTTL     = 5 * time.Minute
	DefaultWriteTimeout   = 10 * time.Second
	DefaultMaxMessageSize = 64 * 1024
)

// Config параметры хаба.
type Config struct {
	OutboxSize     int           `yaml:"outbox_size"`
	PendingSize    int           `yaml:"pending_size"`
	PendingTTL     time.Duration `yaml:"pending_ttl"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	MaxMessageSize int64         `yaml:"max_message_size"`
}

// DefaultConfig returns the default hub settings
func DefaultConfig() Config {
	return Config{
		OutboxSize:     DefaultOutboxSize,
		PendingSize:    DefaultPendingSize,
		PendingTTL:     DefaultPendingTTL,
		WriteTimeout:   DefaultWriteTimeout,
		MaxMessageSize: DefaultMaxMessageSize,
	}
}

//go:generate moq -out telemetry_mock.go . Telemetry

// Telemetry принимает наблюдения о соединениях клиентов.
type Telemetry interface {
	RecordConnection(ctx context.Context, clientID string)
	RecordDisconnection(ctx context.Context, clientID string)
	RecordLatency(ctx context.Context, clientID string, latencyMs float64) (*models.ConnectionQualityMetrics, error)
	RecordBandwidthUsage(ctx context.Context, clientID string, bytesSent, bytesReceived int64) error
	PingInterval(ctx context.Context, clientID string) time.Duration
}

// Hub держит по одному соединению на клиента. Дельты для клиентов без
// соединения копятся в ограниченном буфере и уходят при подключении.
type Hub struct {
	telemetry Telemetry
	metrics   *metrics.Metrics
	logger    *slog.Logger
	pending   *gocache.Cache
	conns     map[string]*conn
	upgrader  websocket.Upgrader
	cfg       Config
	mu        sync.Mutex
	closed    bool
}

// conn одно WebSocket-соединение клиента
type conn struct {
	ws       *websocket.Conn
	outbox   chan []byte
	ctx      context.Context
	cancel   context.CancelFunc
	clientID string
}

// NewHub creates a hub
func NewHub(telemetry Telemetry, m *metrics.Metrics, logger *slog.Logger, cfg Config) *Hub {
	def := DefaultConfig()
	if cfg.OutboxSize <= 0 {
		cfg.OutboxSize = def.OutboxSize
	}
	if cfg.PendingSize <= 0 {
		cfg.PendingSize = def.PendingSize
	}
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = def.PendingTTL
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = def.MaxMessageSize
	}

	return &Hub{
		telemetry: telemetry,
		metrics:   m,
		logger:    logger,
		cfg:       cfg,
		conns:     make(map[string]*conn),
		pending:   gocache.New(cfg.PendingTTL, cfg.PendingTTL),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// доступ ограничивает IdentityMiddleware, а не Origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Enqueue queues the delta for the client. Without a connection the delta
// waits in the pending buffer, oldest dropped first.
func (h *Hub) Enqueue(_ context.Context, clientID string, delta models.StateDelta) error {
	data, err := json.Marshal(api.WSMessage{
		Type:      api.WSDelta,
		Delta:     &delta,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal delta: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}

	if c, ok := h.conns[clientID]; ok {
		select {
		case c.outbox <- data:
			return nil
		default:
			h.metrics.IncWSMessage(resultDropped)
			return fmt.Errorf("%w: %s", ErrOutboxFull, clientID)
		}
	}

	h.pushPending(clientID, data)
	h.metrics.IncWSMessage(resultPending)
	return nil
}

// pushPending вызывается под h.mu
func (h *Hub) pushPending(clientID string, data []byte) {
	var queue [][]byte
	if v, ok := h.pending.Get(clientID); ok {
		queue = v.([][]byte)
	}
	queue = append(queue, data)
	if over := len(queue) - h.cfg.PendingSize; over > 0 {
		queue = append([][]byte(nil), queue[over:]...)
		h.metrics.IncWSMessage(resultDropped)
	}
	h.pending.SetDefault(clientID, queue)
}

// Connected reports whether the client has an open connection
func (h *Hub) Connected(clientID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.conns[clientID]
	return ok
}

// Pending returns the number of deltas waiting for the client
func (h *Hub) Pending(clientID string) int {
	v, ok := h.pending.Get(clientID)
	if !ok {
		return 0
	}
	return len(v.([][]byte))
}

// Count returns the number of open connections
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// ServeHTTP upgrades the request for the client given by ?client_id=
// and serves the connection until it closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if err := validation.ValidateClientID(clientID); err != nil {
		http.Error(w, "invalid client_id", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		h.logger.Warn("WebSocket upgrade failed", "client_id", clientID, "error", err)
		return
	}

	// соединение живет дольше запроса: r.Context() не используется
	ctx, cancel := context.WithCancel(context.Background())
	c := &conn{
		ws:       ws,
		clientID: clientID,
		outbox:   make(chan []byte, h.cfg.OutboxSize),
		ctx:      ctx,
		cancel:   cancel,
	}

	// hello уходит первым, за ним накопленные дельты
	hello, _ := json.Marshal(api.WSMessage{Type: api.WSHello, ClientID: clientID, Timestamp: time.Now().UnixMilli()})
	c.outbox <- hello

	h.register(c)
	defer h.unregister(c)

	h.telemetry.RecordConnection(ctx, clientID)
	h.logger.Info("Client connected", "client_id", clientID, "remote_addr", r.RemoteAddr)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		h.writeLoop(c)
	}()
	go func() {
		defer wg.Done()
		h.pingLoop(c)
	}()

	h.readLoop(c)
	cancel()
	wg.Wait()
	_ = ws.Close()
}

func (h *Hub) register(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// новое подключение вытесняет старое
	if old, ok := h.conns[c.clientID]; ok {
		old.cancel()
	}
	h.conns[c.clientID] = c

	if v, ok := h.pending.Get(c.clientID); ok {
		for _, data := range v.([][]byte) {
			select {
			case c.outbox <- data:
			default:
				h.metrics.IncWSMessage(resultDropped)
			}
		}
		h.pending.Delete(c.clientID)
	}
	h.metrics.SetWSConnections(len(h.conns))
}

func (h *Hub) unregister(c *conn) {
	h.mu.Lock()
	replaced := h.conns[c.clientID] != c
	if !replaced {
		delete(h.conns, c.clientID)
	}
	h.metrics.SetWSConnections(len(h.conns))
	h.mu.Unlock()

	if replaced {
		return
	}
	h.telemetry.RecordDisconnection(context.Background(), c.clientID)
	h.logger.Info("Client disconnected", "client_id", c.clientID)
}

// readLoop читает сообщения клиента: содержимое не используется, но чтение
// нужно для обработки pong и обнаружения закрытия
func (h *Hub) readLoop(c *conn) {
	defer c.cancel()

	c.ws.SetReadLimit(h.cfg.MaxMessageSize)
	c.ws.SetPongHandler(func(payload string) error {
		sent, err := strconv.ParseInt(payload, 10, 64)
		if err != nil {
			return nil
		}
		rtt := time.Since(time.Unix(0, sent))
		if _, err := h.telemetry.RecordLatency(c.ctx, c.clientID, float64(rtt.Microseconds())/1000); err != nil {
			h.logger.Warn("Failed to record latency", "client_id", c.clientID, "error", err)
		}
		return nil
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read failed", "client_id", c.clientID, "error", err)
			}
			return
		}
		if err := h.telemetry.RecordBandwidthUsage(c.ctx, c.clientID, 0, int64(len(data))); err != nil {
			h.logger.Warn("Failed to record bandwidth usage", "client_id", c.clientID, "error", err)
		}
	}
}

func (h *Hub) writeLoop(c *conn) {
	defer c.cancel()

	for {
		select {
		case <-c.ctx.Done():
			deadline := time.Now().Add(time.Second)
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), deadline)
			// разблокирует ReadMessage, если клиент не ответил на close
			_ = c.ws.Close()
			return
		case data := <-c.outbox:
			_ = c.ws.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Warn("WebSocket write failed", "client_id", c.clientID, "error", err)
				return
			}
			h.metrics.IncWSMessage(resultSent)
			if err := h.telemetry.RecordBandwidthUsage(c.ctx, c.clientID, int64(len(data)), 0); err != nil {
				h.logger.Warn("Failed to record bandwidth usage", "client_id", c.clientID, "error", err)
			}
		}
	}
}

// pingLoop шлет ping с интервалом, подобранным по качеству соединения.
// В payload время отправки, ответный pong дает RTT.
func (h *Hub) pingLoop(c *conn) {
	for {
		interval := h.telemetry.PingInterval(c.ctx, c.clientID)
		timer := time.NewTimer(interval)

		select {
		case <-c.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		payload := []byte(strconv.FormatInt(time.Now().UnixNano(), 10))
		deadline := time.Now().Add(h.cfg.WriteTimeout)
		if err := c.ws.WriteControl(websocket.PingMessage, payload, deadline); err != nil {
			h.logger.Warn("WebSocket ping failed", "client_id", c.clientID, "error", err)
			c.cancel()
			return
		}
	}
}

// Close disconnects every client and rejects further deltas
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	conns := make([]*conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.cancel()
	}
	h.logger.Info("WebSocket hub closed", "connections", len(conns))
}
