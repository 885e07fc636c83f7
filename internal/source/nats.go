// Package source provides optional inbound paths besides the HTTP collector.
package source

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/telhawk-systems/event-relay/internal/config"
	"github.com/telhawk-systems/event-relay/internal/forward"
	"github.com/telhawk-systems/event-relay/internal/logging"
)

// NATS subscribes to host events published on a NATS subject and feeds them
// through the same subscription filter as the HTTP collector.
type NATS struct {
	conn   *nats.Conn
	sub    *nats.Subscription
	cfg    config.NATSConfig
	fwd    *forward.Forwarder
	logger *logging.Logger
}

// NewNATS connects to the broker. The subscription starts with Start so a
// half-constructed source never consumes messages.
func NewNATS(cfg config.NATSConfig, fwd *forward.Forwarder, logger *logging.Logger) (*NATS, error) {
	if logger == nil {
		logger = logging.Default()
	}

	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.Timeout(5 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", logging.Error(err))
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATS{conn: conn, cfg: cfg, fwd: fwd, logger: logger}, nil
}

// Start subscribes to the configured subject.
func (s *NATS) Start() error {
	sub, err := s.conn.Subscribe(s.cfg.Subject, func(msg *nats.Msg) {
		s.fwd.Forward("nats", msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %q: %w", s.cfg.Subject, err)
	}
	s.sub = sub
	s.logger.Info("nats source subscribed", slog.String("subject", s.cfg.Subject))
	return nil
}

// Close drains the subscription so in-flight messages still reach the filter,
// then closes the connection.
func (s *NATS) Close() {
	if s.sub != nil {
		_ = s.sub.Drain()
	}
	s.conn.Close()
}
