package logging

import "log/slog"

// Common field names for consistent logging across the relay.
const (
	FieldService   = "service"
	FieldEventID   = "event_id"
	FieldCategory  = "category"
	FieldBackend   = "backend"
	FieldSource    = "source"
	FieldQueueLen  = "queue_len"
	FieldLatencyUS = "latency_us"
	FieldError     = "error"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// EventID returns a slog attribute for an envelope ID.
func EventID(id string) slog.Attr {
	return slog.String(FieldEventID, id)
}

// Category returns a slog attribute for an event category token.
func Category(name string) slog.Attr {
	return slog.String(FieldCategory, name)
}

// Backend returns a slog attribute for the delivery backend URL.
func Backend(url string) slog.Attr {
	return slog.String(FieldBackend, url)
}

// Source returns a slog attribute for the inbound source (http, nats).
func Source(name string) slog.Attr {
	return slog.String(FieldSource, name)
}

// QueueLen returns a slog attribute for the delivery queue length.
func QueueLen(n int) slog.Attr {
	return slog.Int(FieldQueueLen, n)
}

// LatencyUS returns a slog attribute for delivery lag in microseconds.
func LatencyUS(us int64) slog.Attr {
	return slog.Int64(FieldLatencyUS, us)
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}
