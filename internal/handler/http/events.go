package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/madar-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/sse"
)

// EventsHandler streams store change events to dashboards.
type EventsHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventsHandlerImpl struct {
	hub        *sse.Hub
	jwtService jwt.Service
	keepalive  time.Duration
}

func NewEventsHandler(hub *sse.Hub, jwtService jwt.Service) EventsHandler {
	return &eventsHandlerImpl{
		hub:        hub,
		jwtService: jwtService,
		keepalive:  30 * time.Second,
	}
}

// Stream handles the SSE connection. The token comes from the query string
// because EventSource cannot send headers.
func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	employeeID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(employeeID)
	defer cleanup()

	slog.Debug("Event stream opened", "employee_id", employeeID, "subscribers", h.hub.TotalSubscribers())

	if err := writeEvent(w, sse.Event{
		Event: "connected",
		Data:  map[string]string{"status": "connected", "employee_id": employeeID},
	}); err != nil {
		slog.Warn("Failed to greet event stream", "employee_id", employeeID, "error", err)
		return
	}
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(w, event); err != nil {
				slog.Debug("Dropping unencodable event", "event", event.Event, "error", err)
				continue
			}
			flusher.Flush()

		case <-keepalive.C:
			_ = writeEvent(w, sse.Event{Event: "ping", Data: map[string]int64{"timestamp": time.Now().Unix()}})
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// writeEvent frames one event with a JSON-encoded data line.
func writeEvent(w io.Writer, event sse.Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
	return err
}
