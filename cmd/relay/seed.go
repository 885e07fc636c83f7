package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"

	"github.com/telhawk-systems/event-relay/internal/seeder"
)

var (
	seedTarget   string
	seedCount    int
	seedInterval time.Duration
	seedTypes    string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Post synthetic host events to a running collector",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedTarget, "target", "http://localhost:8099", "collector base URL")
	seedCmd.Flags().IntVar(&seedCount, "count", 100, "number of events to send")
	seedCmd.Flags().DurationVar(&seedInterval, "interval", 100*time.Millisecond, "interval between events")
	seedCmd.Flags().StringVar(&seedTypes, "types", "all", "comma-separated categories to generate, or all")
}

func runSeed(cmd *cobra.Command, args []string) error {
	gofakeit.Seed(time.Now().UnixNano())

	var categories []string
	if seedTypes != "" && seedTypes != "all" {
		for _, tok := range strings.Split(seedTypes, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				categories = append(categories, tok)
			}
		}
	}
	gen := seeder.New(categories)

	client := &http.Client{Timeout: 10 * time.Second}
	url := strings.TrimRight(seedTarget, "/") + "/collector/event"

	sent := 0
	failed := 0
	for i := 0; i < seedCount; i++ {
		body, err := json.Marshal(gen.Next())
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}
		resp, err := client.Post(url, "application/json", bytes.NewReader(body))
		if err != nil {
			failed++
			fmt.Printf("failed to send event: %v\n", err)
		} else {
			resp.Body.Close()
			sent++
		}
		if seedInterval > 0 && i < seedCount-1 {
			time.Sleep(seedInterval)
		}
	}

	fmt.Printf("seeding complete: %d sent, %d failed\n", sent, failed)
	return nil
}
