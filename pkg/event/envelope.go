// Package event defines the unit of work handed to the delivery pipeline and
// the category subscription mask used to filter host events before submission.
package event

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope is one structured host event plus its capture timestamp, as queued
// for delivery. The payload is kept as the raw bytes the host produced, so the
// key order of the original event survives serialization untouched. Once
// enqueued an Envelope is never mutated.
type Envelope struct {
	ID        string
	Payload   json.RawMessage
	Timestamp int64     // microseconds, taken from the payload's timestamp field when present
	Received  time.Time // arrival instant; carries the monotonic clock reading
}

// NewEnvelope wraps a payload for delivery. The bytes are copied so the caller
// keeps no shared reference and may reuse its buffer immediately.
func NewEnvelope(payload json.RawMessage) *Envelope {
	now := time.Now()
	e := &Envelope{
		ID:        uuid.New().String(),
		Payload:   append(json.RawMessage(nil), payload...),
		Timestamp: now.UnixMicro(),
		Received:  now,
	}
	var hdr struct {
		Timestamp int64 `json:"timestamp"`
	}
	if err := json.Unmarshal(payload, &hdr); err == nil && hdr.Timestamp > 0 {
		e.Timestamp = hdr.Timestamp
	}
	return e
}

// Serialize renders the payload as indented, human-readable JSON. Indenting
// the raw bytes keeps the host's key order, so a parse of the output yields a
// tree equivalent to the original event.
func (e *Envelope) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, e.Payload, "", "   "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Age reports how long the envelope has been in flight since arrival.
func (e *Envelope) Age() time.Duration {
	return time.Since(e.Received)
}
