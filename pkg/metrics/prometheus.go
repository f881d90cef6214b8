package metrics

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pmarks/mctp/pkg/discovery"
)

var (
	temperatureGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nvme_drive_temperature_celsius",
			Help: "Composite temperature of the drive in Celsius",
		},
		[]string{"connector", "channel", "nqn", "node"},
	)

	availableSpareGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nvme_drive_available_spare_percent",
			Help: "Remaining spare capacity percentage",
		},
		[]string{"connector", "channel", "nqn", "node"},
	)

	spareThresholdGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nvme_drive_spare_threshold_percent",
			Help: "Available spare threshold percentage",
		},
		[]string{"connector", "channel", "nqn", "node"},
	)

	percentageUsedGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nvme_drive_percentage_used",
			Help: "Vendor estimate of drive life used, in percent",
		},
		[]string{"connector", "channel", "nqn", "node"},
	)

	lifeRemainingGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nvme_drive_life_remaining_percent",
			Help: "Estimated remaining drive life, in percent",
		},
		[]string{"connector", "channel", "nqn", "node"},
	)

	powerOnHoursGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nvme_drive_power_on_hours",
			Help: "Number of hours the drive has been powered on",
		},
		[]string{"connector", "channel", "nqn", "node"},
	)

	criticalWarningGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nvme_drive_critical_warning",
			Help: "Critical warning bits reported by the drive",
		},
		[]string{"connector", "channel", "nqn", "node", "warning"},
	)

	drivesFoundGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nvme_drives_found",
			Help: "Number of drives found by the last discovery sweep",
		},
	)

	scanErrorsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nvme_scan_errors",
			Help: "Number of scan errors in the last discovery sweep",
		},
	)
)

func init() {
	prometheus.MustRegister(temperatureGauge)
	prometheus.MustRegister(availableSpareGauge)
	prometheus.MustRegister(spareThresholdGauge)
	prometheus.MustRegister(percentageUsedGauge)
	prometheus.MustRegister(lifeRemainingGauge)
	prometheus.MustRegister(powerOnHoursGauge)
	prometheus.MustRegister(criticalWarningGauge)
	prometheus.MustRegister(drivesFoundGauge)
	prometheus.MustRegister(scanErrorsGauge)
}

// PublishToPrometheus republishes a sweep result on the exported gauges.
func PublishToPrometheus(result discovery.DiscoveryResult, cfg Config) {
	drivesFoundGauge.Set(float64(len(result.Drives)))
	scanErrorsGauge.Set(float64(len(result.Errors)))

	for _, drive := range result.Drives {
		labels := prometheus.Labels{
			"connector": fmt.Sprintf("%d", drive.Connector),
			"channel":   drive.Channel,
			"nqn":       drive.Subsystem.NQN,
			"node":      cfg.NodeName,
		}

		temperatureGauge.With(labels).Set(float64(drive.Health.CompositeTemperature))
		availableSpareGauge.With(labels).Set(float64(drive.Health.AvailableSpare))
		spareThresholdGauge.With(labels).Set(float64(drive.Health.SpareThreshold))
		percentageUsedGauge.With(labels).Set(float64(drive.Health.PercentageUsed))
		lifeRemainingGauge.With(labels).Set(float64(drive.Health.LifeRemaining()))
		powerOnHoursGauge.With(labels).Set(float64(drive.Health.PowerOnHours))

		warnings := map[string]bool{
			"spare_below_threshold":  drive.Health.SpareBelowThreshold(),
			"temperature_exceeded":   drive.Health.TemperatureExceeded(),
			"reliability_degraded":   drive.Health.ReliabilityDegraded(),
			"read_only_mode":         drive.Health.ReadOnlyMode(),
			"volatile_backup_failed": drive.Health.VolatileBackupFailed(),
		}
		for warning, set := range warnings {
			value := 0.0
			if set {
				value = 1.0
			}
			warningLabels := prometheus.Labels{
				"connector": labels["connector"],
				"channel":   drive.Channel,
				"nqn":       drive.Subsystem.NQN,
				"node":      cfg.NodeName,
				"warning":   warning,
			}
			criticalWarningGauge.With(warningLabels).Set(value)
		}
	}
}

// StartPrometheusServer serves the metrics endpoint on port.
func StartPrometheusServer(port int) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		log.Info().Msgf("starting prometheus metrics server on :%d", port)
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
		if err != nil {
			log.Fatal().Err(err).Msg("error starting prometheus metrics server")
		}
	}()
}
