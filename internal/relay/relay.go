// Package relay implements the asynchronous delivery pipeline: the hand-off
// queue decoupling host threads from delivery, the single worker that posts
// events to the backend, and the init/destroy lifecycle around both.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/telhawk-systems/event-relay/internal/config"
	"github.com/telhawk-systems/event-relay/internal/logging"
	"github.com/telhawk-systems/event-relay/internal/metrics"
	"github.com/telhawk-systems/event-relay/internal/transport"
	"github.com/telhawk-systems/event-relay/pkg/event"
)

// Lifecycle states. Written only by Init and Destroy; read by every producer
// on every submission.
const (
	stateUninit int32 = iota
	stateRunning
	stateStopping
)

var (
	// ErrDisabled means the handler is switched off in configuration; the
	// host should proceed without it.
	ErrDisabled = errors.New("event relay disabled in configuration")

	// ErrAlreadyRunning means Init was called twice without a Destroy.
	ErrAlreadyRunning = errors.New("event relay already initialized")

	// ErrInvalidBackend means the configured backend URL is missing or not HTTP.
	ErrInvalidBackend = errors.New("invalid backend")
)

// Relay owns the delivery pipeline. Producers interact with it only through
// Submit; the host's control thread calls Init once and Destroy once.
type Relay struct {
	cfg    config.GeneralConfig
	tuning config.DeliveryConfig
	logger *logging.Logger

	state  atomic.Int32
	queue  atomic.Pointer[queue]
	client *transport.Client
	done   chan struct{}
}

// New builds a relay around an already-resolved configuration. Nothing runs
// until Init.
func New(general config.GeneralConfig, delivery config.DeliveryConfig, logger *logging.Logger) *Relay {
	if logger == nil {
		logger = logging.Default()
	}
	return &Relay{cfg: general, tuning: delivery, logger: logger}
}

// Init validates the configuration, creates the queue and transport, and
// spawns the delivery worker. It fails fast on a disabled handler or a
// missing/non-HTTP backend, leaving nothing allocated and nothing running.
func (r *Relay) Init() error {
	if r.state.Load() != stateUninit {
		return ErrAlreadyRunning
	}
	if !r.cfg.Enabled {
		return ErrDisabled
	}
	client, err := transport.New(r.cfg.Backend, r.tuning.Timeout)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackend, err)
	}

	q := newQueue(r.tuning.QueueSize)
	r.client = client
	r.queue.Store(q)
	r.done = make(chan struct{})
	r.state.Store(stateRunning)
	go r.worker(q, client)

	r.logger.Info("event relay initialized", logging.Backend(r.cfg.Backend))
	return nil
}

// Submit hands one structured event to the delivery queue and returns
// immediately: no network, no disk, O(1). It runs on latency-sensitive host
// threads. Events submitted while the relay is stopping or uninitialized are
// discarded by design; that is not an error the producer needs to see.
func (r *Relay) Submit(payload json.RawMessage) {
	q := r.queue.Load()
	if q == nil || r.state.Load() != stateRunning {
		metrics.EventsDiscarded.Inc()
		r.logger.Debug("event discarded, relay not running")
		return
	}
	env := event.NewEnvelope(payload)
	if !q.push(env) {
		// Bounded queue full: shed the new event rather than block.
		metrics.EventsDiscarded.Inc()
		r.logger.Warn("delivery queue full, event shed", logging.EventID(env.ID))
		return
	}
	metrics.EventsSubmitted.Inc()
	metrics.QueueDepth.Set(float64(q.depth()))
}

// Destroy stops the pipeline. It is idempotent and a no-op when the relay
// never started. The stop sentinel guarantees the worker's blocking pop
// wakes even on an empty queue; Destroy returns only after the worker has
// drained everything queued before the sentinel and exited.
func (r *Relay) Destroy() {
	if !r.state.CompareAndSwap(stateRunning, stateStopping) {
		return
	}
	r.queue.Load().pushStop()
	<-r.done

	r.queue.Store(nil)
	r.client = nil
	r.done = nil
	r.state.Store(stateUninit)
	r.logger.Info("event relay destroyed")
}

// Running reports whether the pipeline is accepting submissions.
func (r *Relay) Running() bool {
	return r.state.Load() == stateRunning
}

// QueueDepth reports the current backlog, 0 when not running.
func (r *Relay) QueueDepth() int {
	q := r.queue.Load()
	if q == nil {
		return 0
	}
	return q.depth()
}

// worker is the sole queue consumer: it pops envelopes, serializes them and
// posts them to the backend, one synchronous request at a time. A failed
// delivery is logged and the event dropped; only the stop sentinel ends the
// loop, so everything enqueued before shutdown still gets attempted.
func (r *Relay) worker(q *queue, client *transport.Client) {
	defer close(r.done)
	r.logger.Debug("delivery worker started")

	for {
		it := q.pop()
		if it.stop {
			break
		}
		env := it.env
		metrics.QueueDepth.Set(float64(q.depth()))

		// Just for diagnostics: how long did this event sit with us?
		lag := time.Now().UnixMicro() - env.Timestamp
		r.logger.Debug("handling event", logging.EventID(env.ID), logging.LatencyUS(lag))
		metrics.DeliveryLag.Observe(env.Age().Seconds())

		body, err := env.Serialize()
		if err != nil {
			metrics.EventsFailed.Inc()
			r.logger.Error("could not serialize event",
				logging.EventID(env.ID), logging.Error(err))
			continue
		}

		start := time.Now()
		err = client.Post(context.Background(), body)
		metrics.DeliveryDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.EventsFailed.Inc()
			r.logger.Error("couldn't relay event to the backend",
				logging.EventID(env.ID), logging.Error(err))
			continue
		}
		metrics.EventsDelivered.Inc()
		r.logger.Debug("event sent", logging.EventID(env.ID))
	}

	r.logger.Debug("leaving delivery worker")
}
