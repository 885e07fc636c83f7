package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/telhawk-systems/event-relay/internal/forward"
	"github.com/telhawk-systems/event-relay/internal/logging"
	"github.com/telhawk-systems/event-relay/internal/relay"
)

// CollectorHandler exposes the inbound side of the sidecar: the host POSTs
// its events here and the handler runs them through the subscription filter.
type CollectorHandler struct {
	forwarder *forward.Forwarder
	relay     *relay.Relay
	logger    *logging.Logger
}

func NewCollectorHandler(f *forward.Forwarder, r *relay.Relay, logger *logging.Logger) *CollectorHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &CollectorHandler{forwarder: f, relay: r, logger: logger}
}

// CollectorResponse reports what happened to a batch of posted events.
type CollectorResponse struct {
	Accepted int `json:"accepted"`
	Filtered int `json:"filtered"`
}

// HandleEvent accepts one JSON event or a newline-delimited batch. Each event
// is forwarded as the exact bytes received, so the host's key order is
// preserved all the way to the backend.
func (h *CollectorHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.sendError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.sendError(w, "could not read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if len(body) == 0 {
		h.sendError(w, "no event data", http.StatusBadRequest)
		return
	}

	var events [][]byte
	if json.Valid(body) {
		events = append(events, body)
	} else {
		// Try as newline-delimited JSON (NDJSON)
		for _, line := range strings.Split(string(body), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !json.Valid([]byte(line)) {
				h.sendError(w, "invalid event JSON", http.StatusBadRequest)
				return
			}
			events = append(events, []byte(line))
		}
	}

	var resp CollectorResponse
	for _, ev := range events {
		if h.forwarder.Forward("http", ev) {
			resp.Accepted++
		} else {
			resp.Filtered++
		}
	}

	h.logger.DebugContext(r.Context(), "collector batch handled",
		"accepted", resp.Accepted, "filtered", resp.Filtered)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Health is a liveness probe.
func (h *CollectorHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	})
}

// Ready reports whether the delivery pipeline is accepting events, along with
// the published subscription mask and the current backlog.
func (h *CollectorHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	code := http.StatusOK
	if !h.relay.Running() {
		status = "not_ready"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":      status,
		"events":      h.forwarder.Mask().String(),
		"queue_depth": h.relay.QueueDepth(),
	})
}

func (h *CollectorHandler) sendError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}
