package event

import (
	"encoding/json"
	"testing"
)

func TestParseMask(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		wantMask    Mask
		wantUnknown []string
	}{
		{
			name:     "none",
			value:    "none",
			wantMask: None,
		},
		{
			name:     "all",
			value:    "all",
			wantMask: All,
		},
		{
			name:     "empty subscribes to nothing",
			value:    "",
			wantMask: None,
		},
		{
			name:     "single category",
			value:    "sessions",
			wantMask: Sessions,
		},
		{
			name:     "comma-separated subset",
			value:    "sessions,handles,media",
			wantMask: Sessions | Handles | Media,
		},
		{
			name:     "whitespace and case are tolerated",
			value:    " Sessions , WEBRTC ",
			wantMask: Sessions | WebRTC,
		},
		{
			name:        "unknown tokens are reported, not fatal",
			value:       "sessions,bogus,jsep",
			wantMask:    Sessions | JSEP,
			wantUnknown: []string{"bogus"},
		},
		{
			name:     "all seven tokens equal All",
			value:    "sessions,handles,jsep,webrtc,media,plugins,transports",
			wantMask: All,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask, unknown := ParseMask(tt.value)
			if mask != tt.wantMask {
				t.Errorf("ParseMask(%q) mask = %v, want %v", tt.value, mask, tt.wantMask)
			}
			if len(unknown) != len(tt.wantUnknown) {
				t.Fatalf("ParseMask(%q) unknown = %v, want %v", tt.value, unknown, tt.wantUnknown)
			}
			for i := range unknown {
				if unknown[i] != tt.wantUnknown[i] {
					t.Errorf("unknown[%d] = %q, want %q", i, unknown[i], tt.wantUnknown[i])
				}
			}
		})
	}
}

func TestMask_String(t *testing.T) {
	tests := []struct {
		mask Mask
		want string
	}{
		{None, "none"},
		{All, "all"},
		{Sessions, "sessions"},
		{Sessions | Media | Transports, "sessions,media,transports"},
	}

	for _, tt := range tests {
		if got := tt.mask.String(); got != tt.want {
			t.Errorf("Mask(%d).String() = %q, want %q", tt.mask, got, tt.want)
		}
	}
}

func TestMask_StringRoundTrip(t *testing.T) {
	masks := []Mask{None, All, Handles, JSEP | WebRTC, Sessions | Plugins}
	for _, m := range masks {
		parsed, unknown := ParseMask(m.String())
		if parsed != m {
			t.Errorf("ParseMask(%q) = %v, want %v", m.String(), parsed, m)
		}
		if len(unknown) != 0 {
			t.Errorf("ParseMask(%q) unknown = %v, want none", m.String(), unknown)
		}
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantBit   Mask
		wantToken string
	}{
		{"session event", `{"type":"sessions","timestamp":1}`, Sessions, "sessions"},
		{"webrtc event", `{"type":"webrtc"}`, WebRTC, "webrtc"},
		{"case insensitive", `{"type":"Media"}`, Media, "Media"},
		{"unknown type", `{"type":"mystery"}`, None, "mystery"},
		{"missing type", `{"timestamp":1}`, None, ""},
		{"not an object", `[1,2,3]`, None, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bit, token := Category(json.RawMessage(tt.payload))
			if bit != tt.wantBit {
				t.Errorf("Category(%s) bit = %v, want %v", tt.payload, bit, tt.wantBit)
			}
			if token != tt.wantToken {
				t.Errorf("Category(%s) token = %q, want %q", tt.payload, token, tt.wantToken)
			}
		})
	}
}
