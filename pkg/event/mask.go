package event

import (
	"encoding/json"
	"strings"
)

// Mask is a bitset of host event categories this handler subscribes to.
// Filtering happens upstream of the delivery pipeline: events whose category
// is not in the mask are never submitted.
type Mask uint32

const (
	Sessions Mask = 1 << iota
	Handles
	JSEP
	WebRTC
	Media
	Plugins
	Transports
)

const (
	None Mask = 0
	All  Mask = Sessions | Handles | JSEP | WebRTC | Media | Plugins | Transports
)

// categories maps subscription tokens to mask bits, in canonical order.
var categories = []struct {
	name string
	bit  Mask
}{
	{"sessions", Sessions},
	{"handles", Handles},
	{"jsep", JSEP},
	{"webrtc", WebRTC},
	{"media", Media},
	{"plugins", Plugins},
	{"transports", Transports},
}

// ParseMask resolves a subscription value: "none", "all", or a comma-separated
// list of category tokens. Unrecognized tokens are returned for the caller to
// log; they never make parsing fail.
func ParseMask(s string) (Mask, []string) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "all":
		return All, nil
	}

	var mask Mask
	var unknown []string
	for _, tok := range strings.Split(s, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		bit, ok := lookup(tok)
		if !ok {
			unknown = append(unknown, tok)
			continue
		}
		mask |= bit
	}
	return mask, unknown
}

func lookup(name string) (Mask, bool) {
	for _, c := range categories {
		if c.name == name {
			return c.bit, true
		}
	}
	return None, false
}

// Has reports whether any of the given bits are set.
func (m Mask) Has(bits Mask) bool {
	return m&bits != 0
}

// String renders the mask in the same form the configuration accepts.
func (m Mask) String() string {
	if m == None {
		return "none"
	}
	if m&All == All {
		return "all"
	}
	var names []string
	for _, c := range categories {
		if m.Has(c.bit) {
			names = append(names, c.name)
		}
	}
	return strings.Join(names, ",")
}

// Category classifies a payload by its type field, returning the matching mask
// bit and the raw type token. Unknown or missing types classify as None, which
// an upstream filter treats as unsubscribed.
func Category(payload json.RawMessage) (Mask, string) {
	var hdr struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload, &hdr); err != nil {
		return None, ""
	}
	bit, ok := lookup(strings.ToLower(hdr.Type))
	if !ok {
		return None, hdr.Type
	}
	return bit, hdr.Type
}
