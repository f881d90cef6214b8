package commands

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pmarks/mctp/pkg/metrics"
)

var (
	exporterConnectors string
	exporterChannels   string
	exporterInterval   int
	exporterPort       int
	exporterNodeName   string
)

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Periodically sweep the backplane and export drive health as prometheus metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadConfig()
		if err != nil {
			return err
		}

		connectorsSpec := exporterConnectors
		if connectorsSpec == "" {
			connectorsSpec = v.GetString(keyConnectors)
		}
		connectors, err := parseConnectors(connectorsSpec)
		if err != nil {
			return err
		}

		channelsSpec := exporterChannels
		if channelsSpec == "" {
			channelsSpec = v.GetString(keyChannels)
		}

		interval := exporterInterval
		if !cmd.Flags().Changed("interval") {
			interval = v.GetInt(keyInterval)
		}
		port := exporterPort
		if !cmd.Flags().Changed("port") {
			port = v.GetInt(keyPrometheusPort)
		}
		nodeName := exporterNodeName
		if nodeName == "" {
			nodeName = v.GetString(keyNodeName)
		}
		if nodeName == "" {
			nodeName, _ = os.Hostname()
		}

		provider, err := resolveProvider()
		if err != nil {
			return err
		}

		cfg := metrics.Config{
			Connectors:     connectors,
			Channels:       parseChannels(channelsSpec),
			TargetAddress:  uint8(v.GetInt(keyTargetAddress)),
			Interval:       interval,
			PrometheusPort: port,
			NodeName:       nodeName,
		}

		log.Info().
			Int("interval_seconds", cfg.Interval).
			Int("prometheus_port", cfg.PrometheusPort).
			Str("node_name", cfg.NodeName).
			Msg("configuration_loaded")

		metrics.StartMonitoring(cfg, provider)
		return nil
	},
}

func init() {
	exporterCmd.Flags().StringVar(&exporterConnectors, "connectors", "", "Comma-separated connector indices (default: 0-5)")
	exporterCmd.Flags().StringVar(&exporterChannels, "channels", "", "Comma-separated channels (default: a,b)")
	exporterCmd.Flags().IntVar(&exporterInterval, "interval", 60, "Sweep interval in seconds")
	exporterCmd.Flags().IntVar(&exporterPort, "port", 9285, "Prometheus metrics port")
	exporterCmd.Flags().StringVar(&exporterNodeName, "node-name", "", "Node name label (default: hostname)")
}
