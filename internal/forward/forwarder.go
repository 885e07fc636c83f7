// Package forward is the upstream collaborator in front of the delivery
// pipeline: it classifies incoming host events and applies the subscription
// mask before anything reaches Submit.
package forward

import (
	"encoding/json"
	"sync"

	"github.com/telhawk-systems/event-relay/internal/logging"
	"github.com/telhawk-systems/event-relay/internal/metrics"
	"github.com/telhawk-systems/event-relay/pkg/event"
)

// Submitter is the producer-facing side of the delivery pipeline.
type Submitter interface {
	Submit(payload json.RawMessage)
}

// Forwarder filters host events by category. Every inbound source (HTTP
// collector, NATS) funnels through the same instance, so the published mask
// is the single source of truth for what gets forwarded.
type Forwarder struct {
	mask   event.Mask
	relay  Submitter
	logger *logging.Logger
	warned sync.Map // type token -> struct{}, so unknown types warn once
}

func New(mask event.Mask, relay Submitter, logger *logging.Logger) *Forwarder {
	if logger == nil {
		logger = logging.Default()
	}
	return &Forwarder{mask: mask, relay: relay, logger: logger}
}

// Forward classifies one payload and submits it when its category is
// subscribed. It reports whether the event was handed to the pipeline.
func (f *Forwarder) Forward(source string, payload json.RawMessage) bool {
	metrics.EventsReceived.WithLabelValues(source).Inc()

	cat, token := event.Category(payload)
	if token == "" {
		token = "unknown"
	}
	if cat == event.None {
		metrics.EventsFiltered.WithLabelValues(token).Inc()
		if _, seen := f.warned.LoadOrStore(token, struct{}{}); !seen {
			f.logger.Warn("unknown event type", logging.Category(token), logging.Source(source))
		}
		return false
	}
	if !f.mask.Has(cat) {
		metrics.EventsFiltered.WithLabelValues(token).Inc()
		f.logger.Debug("event not subscribed", logging.Category(token), logging.Source(source))
		return false
	}

	f.relay.Submit(payload)
	return true
}

// Mask returns the resolved subscription mask.
func (f *Forwarder) Mask() event.Mask {
	return f.mask
}
