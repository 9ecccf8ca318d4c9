package web

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/vitos/crypto_market_cache/internal/domain"
	"go.uber.org/zap"
)

// TickerStream pushes each successful ticker refresh to websocket
// subscribers. Clients only receive; anything they send is drained and
// dropped.
type TickerStream struct {
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	closed  bool
}

func NewTickerStream(logger *zap.Logger) *TickerStream {
	return &TickerStream{
		upgrader: websocket.Upgrader{
			// Same open policy as the CORS middleware on the JSON routes.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[*websocket.Conn]bool),
	}
}

func (ts *TickerStream) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := ts.upgrader.Upgrade(w, r, nil)
	if err != nil {
		ts.logger.Warn("WS upgrade failed", zap.Error(err))
		return
	}

	ts.mu.Lock()
	if ts.closed {
		ts.mu.Unlock()
		conn.Close()
		return
	}
	ts.clients[conn] = true
	ts.mu.Unlock()

	ts.logger.Debug("WS subscriber connected", zap.String("remote", conn.RemoteAddr().String()))

	go ts.readLoop(conn)
}

// readLoop exists to detect the peer closing; inbound frames are discarded.
func (ts *TickerStream) readLoop(conn *websocket.Conn) {
	defer ts.drop(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (ts *TickerStream) drop(conn *websocket.Conn) {
	ts.mu.Lock()
	delete(ts.clients, conn)
	ts.mu.Unlock()
	conn.Close()
}

// Broadcast sends the ticker batch to every subscriber. A failed write
// drops that subscriber; the rest still get the batch.
func (ts *TickerStream) Broadcast(tickers []domain.TickerSnapshot) {
	ts.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(ts.clients))
	for conn := range ts.clients {
		conns = append(conns, conn)
	}
	ts.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(tickers); err != nil {
			ts.logger.Debug("WS write failed, dropping subscriber", zap.Error(err))
			ts.drop(conn)
		}
	}
}

// Close disconnects all subscribers and rejects new ones.
func (ts *TickerStream) Close() {
	ts.mu.Lock()
	ts.closed = true
	conns := make([]*websocket.Conn, 0, len(ts.clients))
	for conn := range ts.clients {
		conns = append(conns, conn)
	}
	ts.clients = make(map[*websocket.Conn]bool)
	ts.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
}
