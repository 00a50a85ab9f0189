package localmart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"localmart_go/internal/domain"
	"localmart_go/internal/infra"

	"github.com/gorilla/websocket"
)

const (
	maxRetries   = 10
	pingInterval = 30 * time.Second
	readTimeout  = 60 * time.Second
)

// subscribeRequest Structure
type subscribeRequest struct {
	Op    string `json:"op"`
	Topic string `json:"topic"`
	Token string `json:"token,omitempty"`
}

// statusUpdateMessage is a pushed proxy-request state change.
type statusUpdateMessage struct {
	Topic string          `json:"topic"`
	Data  proxyRequestDTO `json:"data"`
}

// StatusWorker maintains the WebSocket subscription to proxy-request status
// updates. Each pushed state lands on the updates channel; the backend's
// view is always authoritative.
type StatusWorker struct {
	wsURL     string
	token     string
	updates   chan<- domain.ProxyRequest
	conn       *websocket.Conn
	mu         sync.RWMutex
	writeMu    sync.Mutex
	connected  bool
	cancel     context.CancelFunc
	connCancel context.CancelFunc
	wg         sync.WaitGroup
}

// NewStatusWorker factory
func NewStatusWorker(wsURL, token string, updates chan<- domain.ProxyRequest) *StatusWorker {
	return &StatusWorker{
		wsURL:   wsURL,
		token:   token,
		updates: updates,
	}
}

func (w *StatusWorker) Connect(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.connectionLoop(ctx)
	return nil
}

// IsConnected reports whether the socket is currently up.
func (w *StatusWorker) IsConnected() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.connected
}

func (w *StatusWorker) connectionLoop(ctx context.Context) {
	defer w.wg.Done()
	retryCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.connect(ctx); err != nil {
			slog.Warn("Status feed connection failed", slog.Any("error", err), slog.Int("retry", retryCount))
			retryCount++
			if retryCount > maxRetries {
				retryCount = 0 // Infinite retry loop for monitoring
			}
			delay := infra.CalculateBackoff(retryCount)
			time.Sleep(delay)
		} else {
			retryCount = 0
			w.readLoop(ctx)
		}
	}
}

func (w *StatusWorker) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, w.wsURL, nil)
	if err != nil {
		return err
	}

	// The ping loop is bound to this connection, not the worker: it must
	// die with the socket so reconnects do not stack ping goroutines.
	connCtx, connCancel := context.WithCancel(ctx)

	w.mu.Lock()
	w.conn = conn
	w.connCancel = connCancel
	w.connected = true
	w.mu.Unlock()
	infra.GlobalMetrics.IncrementConnections()

	if err := w.subscribe(); err != nil {
		w.closeConnection()
		return err
	}

	go w.pingLoop(connCtx)
	slog.Info("Status feed connected")
	return nil
}

func (w *StatusWorker) subscribe() error {
	req := subscribeRequest{Op: "subscribe", Topic: "proxy-requests", Token: w.token}
	b, err := json.Marshal(req)
	if err != nil {
		slog.Error("Failed to marshal subscribe request", slog.Any("error", err))
		return err
	}
	return w.threadSafeWrite(websocket.TextMessage, b)
}

func (w *StatusWorker) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.threadSafeWrite(websocket.TextMessage, []byte("ping"))
		}
	}
}

func (w *StatusWorker) threadSafeWrite(msgType int, data []byte) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.conn == nil {
		return fmt.Errorf("no conn")
	}
	return w.conn.WriteMessage(msgType, data)
}

func (w *StatusWorker) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		w.mu.RLock()
		if w.conn == nil {
			w.mu.RUnlock()
			return
		}
		w.conn.SetReadDeadline(time.Now().Add(readTimeout))
		w.mu.RUnlock()

		_, msg, err := w.conn.ReadMessage()
		if err != nil {
			w.closeConnection()
			return
		}
		if string(msg) == "pong" {
			continue
		}
		w.handleMessage(msg)
	}
}

func (w *StatusWorker) handleMessage(msg []byte) {
	var update statusUpdateMessage
	if err := json.Unmarshal(msg, &update); err != nil {
		return
	}
	if update.Topic != "proxy-requests" || update.Data.ID == "" {
		return
	}

	req := update.Data.toDomain()

	select {
	case w.updates <- req:
	default:
		// Drop on a full channel: the next push or re-fetch supersedes it.
	}
}

func (w *StatusWorker) closeConnection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.connCancel != nil {
		w.connCancel()
		w.connCancel = nil
	}
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
	if w.connected {
		infra.GlobalMetrics.DecrementConnections()
	}
	w.connected = false
}

func (w *StatusWorker) Disconnect() {
	if w.cancel != nil {
		w.cancel()
	}
	w.closeConnection()
	w.wg.Wait()
}
