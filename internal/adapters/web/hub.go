package web

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bei612/meraki-workflows/internal/core/domain"
	"github.com/bei612/meraki-workflows/internal/core/ports"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		// Allow same-origin (no Origin header)
		if origin == "" {
			return true
		}

		allowedOrigins := []string{
			"http://localhost:8080",
			"http://127.0.0.1:8080",
			"http://[::1]:8080",
		}
		for _, allowed := range allowedOrigins {
			if origin == allowed {
				return true
			}
		}

		log.Printf("WebSocket: Rejected origin: %s", origin)
		return false
	},
}

// WSMessage is the envelope of every frame pushed to clients.
type WSMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// runEvent is the lifecycle payload broadcast for report runs. The archived
// JSON payload is deliberately excluded; clients fetch it via the runs API.
type runEvent struct {
	RunID        string `json:"run_id"`
	ReportType   string `json:"report_type"`
	Success      bool   `json:"success,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	DurationMS   int64  `json:"duration_ms,omitempty"`
}

// Hub fans report-run lifecycle events out to connected WebSocket clients.
// It implements ports.RunNotifier without ever blocking the reporting path.
type Hub struct {
	clients map[*websocket.Conn]struct{}
	mu      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

// HandleWebSocket upgrades the connection and registers the client.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	log.Printf("WebSocket connected: %s", conn.RemoteAddr())

	// Drain reads until the peer goes away, then clean up.
	go func() {
		defer conn.Close()
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			log.Printf("WebSocket disconnected: %s", conn.RemoteAddr())
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// RunStarted broadcasts the start of a report run.
func (h *Hub) RunStarted(runID string, reportType domain.ReportType) {
	h.broadcastMessage(WSMessage{
		Type:    "run.started",
		Payload: runEvent{RunID: runID, ReportType: string(reportType)},
	})
}

// RunFinished broadcasts the outcome of a report run.
func (h *Hub) RunFinished(run domain.ReportRun) {
	h.broadcastMessage(WSMessage{
		Type: "run.finished",
		Payload: runEvent{
			RunID:        run.ID,
			ReportType:   string(run.Type),
			Success:      run.Success,
			ErrorMessage: run.ErrorMessage,
			DurationMS:   run.Duration.Milliseconds(),
		},
	})
}

func (h *Hub) broadcastMessage(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Ensure interface compliance
var _ ports.RunNotifier = (*Hub)(nil)
