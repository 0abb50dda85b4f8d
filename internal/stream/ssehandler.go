package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const keepaliveInterval = 30 * time.Second

// SSEHandler exposes the order event stream to kitchen and front-desk
// displays over Server-Sent Events. Clients only listen; the connection
// carries no handshake payload beyond the initial comment.
type SSEHandler struct {
	broadcaster *Broadcaster
	logger      apt.Logger
}

func NewSSEHandler(broadcaster *Broadcaster, logger apt.Logger) *SSEHandler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	return &SSEHandler{
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (h *SSEHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/events", h.Stream)
}

func (h *SSEHandler) Stream(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	subscriberID := uuid.New().String()
	h.logger.Info("new SSE connection", "subscriber_id", subscriberID)

	eventChan := h.broadcaster.Subscribe(subscriberID)
	defer h.broadcaster.Unsubscribe(subscriberID)

	fmt.Fprintf(w, ": connected\n\n")
	fmt.Fprintf(w, "retry: 2000\n\n")

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("SSE client disconnected", "subscriber_id", subscriberID)
			return

		case <-ticker.C:
			fmt.Fprintf(w, ": keepalive\n\n")
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}

		case evt, ok := <-eventChan:
			if !ok {
				h.logger.Info("event channel closed", "subscriber_id", subscriberID)
				return
			}

			payload, err := json.Marshal(evt.Order)
			if err != nil {
				h.logger.Error("cannot marshal order payload", "error", err)
				continue
			}

			sendSSEEvent(w, evt.EventType, string(payload))
		}
	}
}

// sendSSEEvent writes a single SSE event, prefixing every payload line with
// the data field marker.
func sendSSEEvent(w http.ResponseWriter, eventType string, data string) {
	data = strings.TrimSpace(data)

	fmt.Fprintf(w, "event: %s\n", eventType)

	lines := strings.Split(data, "\n")
	for _, line := range lines {
		fmt.Fprintf(w, "data: %s\n", line)
	}

	fmt.Fprintf(w, "\n")

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
