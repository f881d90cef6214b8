// Package metrics periodically sweeps the backplane for NVMe drives and
// exports their health over prometheus.
package metrics

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pmarks/mctp/pkg/discovery"
)

// Config configures the drive health exporter.
type Config struct {
	// Connectors, Channels and TargetAddress configure the discovery sweep;
	// zero values take the sweep defaults.
	Connectors    []int
	Channels      []string
	TargetAddress uint8

	// Interval is the sweep interval in seconds.
	Interval int

	// PrometheusPort is the port the metrics endpoint listens on.
	PrometheusPort int

	// NodeName labels exported series with the host they came from.
	NodeName string
}

// StartMonitoring sweeps the backplane on a fixed interval and republishes
// drive health on the exported gauges. Blocks forever; run it from a
// dedicated goroutine or a command entry point.
func StartMonitoring(cfg Config, provider discovery.BusProvider) {
	if cfg.Interval <= 0 {
		cfg.Interval = 60
	}

	StartPrometheusServer(cfg.PrometheusPort)

	sweepConfig := discovery.SweepConfig{
		Connectors:    cfg.Connectors,
		Channels:      cfg.Channels,
		TargetAddress: cfg.TargetAddress,
	}

	runSweep(sweepConfig, cfg, provider)

	ticker := time.NewTicker(time.Duration(cfg.Interval) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		runSweep(sweepConfig, cfg, provider)
	}
}

func runSweep(sweepConfig discovery.SweepConfig, cfg Config, provider discovery.BusProvider) {
	result := discovery.DiscoverNVMeDrives(provider, sweepConfig)

	log.Info().
		Int("drives", len(result.Drives)).
		Int("errors", len(result.Errors)).
		Msg("discovery sweep finished")

	for _, scanErr := range result.Errors {
		log.Warn().
			Int("connector", scanErr.Connector).
			Str("channel", scanErr.Channel).
			Msg(scanErr.Message)
	}

	PublishToPrometheus(result, cfg)
}
