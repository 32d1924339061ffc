package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bei612/meraki-workflows/internal/core/domain"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Registration happens just after the upgrade handshake; wait for it so
	// an immediate broadcast cannot slip past the client.
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.clients) == 1
	}, time.Second, 5*time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) (string, runEvent) {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg WSMessage
	require.NoError(t, conn.ReadJSON(&msg))

	payload, err := json.Marshal(msg.Payload)
	require.NoError(t, err)
	var event runEvent
	require.NoError(t, json.Unmarshal(payload, &event))
	return msg.Type, event
}

func TestHubBroadcastsRunLifecycle(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub)

	hub.RunStarted("run-1", domain.ReportDeviceStatus)

	msgType, event := readEvent(t, conn)
	assert.Equal(t, "run.started", msgType)
	assert.Equal(t, "run-1", event.RunID)
	assert.Equal(t, string(domain.ReportDeviceStatus), event.ReportType)

	hub.RunFinished(domain.ReportRun{
		ID:       "run-1",
		Type:     domain.ReportDeviceStatus,
		Success:  true,
		Duration: 1500 * time.Millisecond,
	})

	msgType, event = readEvent(t, conn)
	assert.Equal(t, "run.finished", msgType)
	assert.True(t, event.Success)
	assert.Equal(t, int64(1500), event.DurationMS)
}

func TestHubBroadcastWithoutClients(t *testing.T) {
	hub := NewHub()

	// Must not block or panic with nobody listening.
	hub.RunStarted("run-1", domain.ReportDeviceStatus)
	hub.RunFinished(domain.ReportRun{ID: "run-1"})
}
