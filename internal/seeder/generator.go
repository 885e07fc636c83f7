// Package seeder generates synthetic host events for smoke-testing a relay
// deployment end to end.
package seeder

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// Generator produces events shaped like the host's lifecycle/telemetry
// notifications, one known category per event.
type Generator struct {
	categories []string
}

// AllCategories are the category tokens the relay knows how to subscribe to.
var AllCategories = []string{
	"sessions", "handles", "jsep", "webrtc", "media", "plugins", "transports",
}

// New builds a generator over the given category tokens, or all of them when
// none are given.
func New(categories []string) *Generator {
	if len(categories) == 0 {
		categories = AllCategories
	}
	return &Generator{categories: categories}
}

// Next returns one synthetic event. The timestamp field is microseconds, the
// same contract real host events carry.
func (g *Generator) Next() map[string]interface{} {
	category := g.categories[rand.Intn(len(g.categories))]
	ev := map[string]interface{}{
		"emitter":    gofakeit.AppName(),
		"type":       category,
		"timestamp":  time.Now().UnixMicro(),
		"session_id": gofakeit.Number(1000000, 9999999),
	}
	ev["event"] = g.detail(category)
	return ev
}

func (g *Generator) detail(category string) map[string]interface{} {
	switch category {
	case "sessions":
		return map[string]interface{}{
			"name":      gofakeit.RandomString([]string{"created", "destroyed", "timeout"}),
			"transport": gofakeit.RandomString([]string{"http", "websockets"}),
		}
	case "handles":
		return map[string]interface{}{
			"name":   gofakeit.RandomString([]string{"attached", "detached"}),
			"plugin": fmt.Sprintf("plugin.%s", gofakeit.Word()),
		}
	case "jsep":
		return map[string]interface{}{
			"owner": gofakeit.RandomString([]string{"local", "remote"}),
			"jsep": map[string]interface{}{
				"type": gofakeit.RandomString([]string{"offer", "answer"}),
				"sdp":  fmt.Sprintf("v=0 o=- %d", gofakeit.Number(1, 1<<30)),
			},
		}
	case "webrtc":
		return map[string]interface{}{
			"ice":       gofakeit.RandomString([]string{"gathering", "connecting", "connected", "failed"}),
			"candidate": gofakeit.IPv4Address(),
		}
	case "media":
		return map[string]interface{}{
			"media":     gofakeit.RandomString([]string{"audio", "video"}),
			"receiving": gofakeit.Bool(),
		}
	case "plugins":
		return map[string]interface{}{
			"plugin": fmt.Sprintf("plugin.%s", gofakeit.Word()),
			"data": map[string]interface{}{
				"status": gofakeit.RandomString([]string{"joined", "left", "published"}),
				"user":   gofakeit.Username(),
			},
		}
	case "transports":
		return map[string]interface{}{
			"transport": gofakeit.RandomString([]string{"http", "websockets"}),
			"id":        gofakeit.UUID(),
			"ip":        gofakeit.IPv4Address(),
		}
	default:
		return map[string]interface{}{
			"name": gofakeit.Word(),
		}
	}
}
