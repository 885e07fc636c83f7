package main

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "event-relay",
	Short: "Out-of-band event forwarding sidecar",
	Long: `event-relay is an out-of-band sidecar that receives structured
lifecycle/telemetry events from a host application and forwards them to an
external HTTP backend, one POST per event, without ever slowing the host down.`,
	Version: "0.1.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml, /etc/event-relay/config.yaml)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}
