package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/deltasync/internal/models"
	"github.com/iudanet/deltasync/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTelemetry(ping time.Duration) *TelemetryMock {
	return &TelemetryMock{
		RecordConnectionFunc:    func(context.Context, string) {},
		RecordDisconnectionFunc: func(context.Context, string) {},
		RecordLatencyFunc: func(context.Context, string, float64) (*models.ConnectionQualityMetrics, error) {
			return &models.ConnectionQualityMetrics{}, nil
		},
		RecordBandwidthUsageFunc: func(context.Context, string, int64, int64) error { return nil },
		PingIntervalFunc:         func(context.Context, string) time.Duration { return ping },
	}
}

func startHub(t *testing.T, tel Telemetry, cfg Config) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(tel, nil, testLogger(), cfg)
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, clientID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?client_id=" + clientID
	c, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func readMessage(t *testing.T, c *websocket.Conn) api.WSMessage {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := c.ReadMessage()
	require.NoError(t, err)

	var msg api.WSMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func marketDelta(price float64) models.StateDelta {
	return models.StateDelta{
		EntityType: models.EntityMarket,
		EntityID:   "m1",
		Changes: []models.StateChange{
			{Field: "price", NewValue: price, ChangeType: models.ChangeUpdate},
		},
	}
}

func TestHub_PendingDeliveredOnConnect(t *testing.T) {
	tel := newTelemetry(time.Hour)
	hub, srv := startHub(t, tel, DefaultConfig())

	require.NoError(t, hub.Enqueue(context.Background(), "c1", marketDelta(1.1)))
	require.NoError(t, hub.Enqueue(context.Background(), "c1", marketDelta(1.2)))
	assert.Equal(t, 2, hub.Pending("c1"))

	c := dial(t, srv, "c1")

	hello := readMessage(t, c)
	assert.Equal(t, api.WSHello, hello.Type)
	assert.Equal(t, "c1", hello.ClientID)

	for _, want := range []float64{1.1, 1.2} {
		msg := readMessage(t, c)
		require.Equal(t, api.WSDelta, msg.Type)
		require.NotNil(t, msg.Delta)
		assert.Equal(t, want, msg.Delta.Changes[0].NewValue)
	}

	assert.Zero(t, hub.Pending("c1"))
	require.Len(t, tel.RecordConnectionCalls(), 1)
	assert.Equal(t, "c1", tel.RecordConnectionCalls()[0].ClientID)
}

func TestHub_LiveDelivery(t *testing.T) {
	tel := newTelemetry(time.Hour)
	hub, srv := startHub(t, tel, DefaultConfig())

	c := dial(t, srv, "c1")
	assert.Equal(t, api.WSHello, readMessage(t, c).Type)
	require.Eventually(t, func() bool { return hub.Connected("c1") }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Enqueue(context.Background(), "c1", marketDelta(2.5)))

	msg := readMessage(t, c)
	require.Equal(t, api.WSDelta, msg.Type)
	assert.Equal(t, "m1", msg.Delta.EntityID)
	assert.Equal(t, 1, hub.Count())

	// отправленные байты учитываются в трафике клиента
	require.Eventually(t, func() bool {
		for _, call := range tel.RecordBandwidthUsageCalls() {
			if call.BytesSent > 0 {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

func TestHub_PongRecordsLatency(t *testing.T) {
	tel := newTelemetry(20 * time.Millisecond)
	_, srv := startHub(t, tel, DefaultConfig())

	c := dial(t, srv, "c1")
	// обработчик ping по умолчанию отвечает pong, пока клиент читает
	go func() {
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	require.Eventually(t, func() bool { return len(tel.RecordLatencyCalls()) > 0 }, 2*time.Second, 10*time.Millisecond)

	call := tel.RecordLatencyCalls()[0]
	assert.Equal(t, "c1", call.ClientID)
	assert.GreaterOrEqual(t, call.LatencyMs, 0.0)
	assert.Less(t, call.LatencyMs, 1000.0)
}

func TestHub_DisconnectRecorded(t *testing.T) {
	tel := newTelemetry(time.Hour)
	hub, srv := startHub(t, tel, DefaultConfig())

	c := dial(t, srv, "c1")
	readMessage(t, c)
	require.Eventually(t, func() bool { return hub.Connected("c1") }, time.Second, 5*time.Millisecond)

	_ = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = c.Close()

	require.Eventually(t, func() bool { return len(tel.RecordDisconnectionCalls()) == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.False(t, hub.Connected("c1"))

	// после отключения дельты снова копятся
	require.NoError(t, hub.Enqueue(context.Background(), "c1", marketDelta(3)))
	assert.Equal(t, 1, hub.Pending("c1"))
}

func TestHub_ReconnectReplacesConnection(t *testing.T) {
	tel := newTelemetry(time.Hour)
	hub, srv := startHub(t, tel, DefaultConfig())

	first := dial(t, srv, "c1")
	readMessage(t, first)
	second := dial(t, srv, "c1")
	readMessage(t, second)

	require.NoError(t, first.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := first.ReadMessage()
	assert.Error(t, err, "replaced connection is closed")

	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, hub.Enqueue(context.Background(), "c1", marketDelta(4)))
	assert.Equal(t, api.WSDelta, readMessage(t, second).Type)
	assert.Empty(t, tel.RecordDisconnectionCalls(), "replacement is not a disconnection")
}

func TestHub_PendingCap(t *testing.T) {
	hub, _ := startHub(t, newTelemetry(time.Hour), Config{PendingSize: 2})

	for i := 0; i < 3; i++ {
		require.NoError(t, hub.Enqueue(context.Background(), "c1", marketDelta(float64(i))))
	}
	assert.Equal(t, 2, hub.Pending("c1"))
}

func TestHub_InvalidClientID(t *testing.T) {
	_, srv := startHub(t, newTelemetry(time.Hour), DefaultConfig())

	resp, err := http.Get(srv.URL + "/?client_id=bad:id")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHub_Close(t *testing.T) {
	hub, srv := startHub(t, newTelemetry(time.Hour), DefaultConfig())

	c := dial(t, srv, "c1")
	readMessage(t, c)

	hub.Close()

	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := c.ReadMessage()
	assert.Error(t, err)

	assert.ErrorIs(t, hub.Enqueue(context.Background(), "c1", marketDelta(1)), ErrClosed)
}
