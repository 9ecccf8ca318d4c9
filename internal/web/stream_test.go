package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/crypto_market_cache/internal/domain"
	"go.uber.org/zap"
)

func dialStream(t *testing.T, ts *TickerStream) (*websocket.Conn, func()) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(ts.handleSubscribe))
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

// waitForSubscribers polls until the stream has n registered clients;
// registration happens just after the handshake the dialer saw.
func waitForSubscribers(t *testing.T, ts *TickerStream, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ts.mu.Lock()
		count := len(ts.clients)
		ts.mu.Unlock()
		if count >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d subscribers", n)
}

func TestTickerStream_BroadcastReachesSubscriber(t *testing.T) {
	ts := NewTickerStream(zap.NewNop())
	conn, cleanup := dialStream(t, ts)
	defer cleanup()

	waitForSubscribers(t, ts, 1)

	batch := []domain.TickerSnapshot{{MarketID: "BTCINR", LastPrice: "100"}}
	ts.Broadcast(batch)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got []domain.TickerSnapshot
	require.NoError(t, conn.ReadJSON(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "BTCINR", got[0].MarketID)
	assert.Equal(t, "100", got[0].LastPrice)
}

func TestTickerStream_DroppedSubscriberDoesNotBreakBroadcast(t *testing.T) {
	ts := NewTickerStream(zap.NewNop())

	connA, cleanupA := dialStream(t, ts)
	defer cleanupA()
	connB, cleanupB := dialStream(t, ts)
	_ = connB
	waitForSubscribers(t, ts, 2)
	cleanupB() // disconnect B before broadcasting

	// Give the read loop a moment to reap the closed connection.
	time.Sleep(20 * time.Millisecond)

	ts.Broadcast([]domain.TickerSnapshot{{MarketID: "ETHINR", LastPrice: "10"}})

	connA.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got []domain.TickerSnapshot
	require.NoError(t, connA.ReadJSON(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "ETHINR", got[0].MarketID)
}

func TestTickerStream_CloseRejectsNewSubscribers(t *testing.T) {
	ts := NewTickerStream(zap.NewNop())
	conn, cleanup := dialStream(t, ts)
	defer cleanup()
	waitForSubscribers(t, ts, 1)

	ts.Close()

	// The existing connection is closed from the server side.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
