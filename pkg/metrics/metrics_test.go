package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/pmarks/mctp/pkg/discovery"
	"github.com/pmarks/mctp/pkg/nvmemi"
)

func TestPublishToPrometheus(t *testing.T) {
	result := discovery.DiscoveryResult{
		Drives: []nvmemi.DriveInfo{
			{
				Connector: 2,
				Channel:   "b",
				Address:   discovery.DefaultTargetAddress,
				EID:       0x1D,
				Subsystem: nvmemi.SubsystemInfo{NQN: "nqn.2019-09.com.example:pub"},
				Health: nvmemi.HealthStatus{
					CompositeTemperature: 41,
					CriticalWarning:      nvmemi.WarningSpareBelowThreshold,
					AvailableSpare:       7,
					SpareThreshold:       10,
					PercentageUsed:       93,
					PowerOnHours:         20400,
				},
				Reachable: true,
			},
		},
		Errors: []discovery.ScanError{
			{Connector: 5, Channel: "a", Message: "binding bus: mux fault"},
		},
	}

	PublishToPrometheus(result, Config{NodeName: "node0"})

	labels := prometheus.Labels{
		"connector": "2",
		"channel":   "b",
		"nqn":       "nqn.2019-09.com.example:pub",
		"node":      "node0",
	}

	assert.Equal(t, float64(1), testutil.ToFloat64(drivesFoundGauge))
	assert.Equal(t, float64(1), testutil.ToFloat64(scanErrorsGauge))
	assert.Equal(t, float64(41), testutil.ToFloat64(temperatureGauge.With(labels)))
	assert.Equal(t, float64(7), testutil.ToFloat64(availableSpareGauge.With(labels)))
	assert.Equal(t, float64(10), testutil.ToFloat64(spareThresholdGauge.With(labels)))
	assert.Equal(t, float64(93), testutil.ToFloat64(percentageUsedGauge.With(labels)))
	assert.Equal(t, float64(7), testutil.ToFloat64(lifeRemainingGauge.With(labels)))
	assert.Equal(t, float64(20400), testutil.ToFloat64(powerOnHoursGauge.With(labels)))

	warningLabels := func(warning string) prometheus.Labels {
		l := prometheus.Labels{"warning": warning}
		for k, v := range labels {
			l[k] = v
		}
		return l
	}
	assert.Equal(t, float64(1), testutil.ToFloat64(criticalWarningGauge.With(warningLabels("spare_below_threshold"))))
	assert.Equal(t, float64(0), testutil.ToFloat64(criticalWarningGauge.With(warningLabels("temperature_exceeded"))))
	assert.Equal(t, float64(0), testutil.ToFloat64(criticalWarningGauge.With(warningLabels("read_only_mode"))))
}

func TestPublishToPrometheusEmptySweep(t *testing.T) {
	PublishToPrometheus(discovery.DiscoveryResult{}, Config{NodeName: "node0"})

	assert.Equal(t, float64(0), testutil.ToFloat64(drivesFoundGauge))
	assert.Equal(t, float64(0), testutil.ToFloat64(scanErrorsGauge))
}

// Sweeping an end-to-end simulated backplane and publishing the result must
// land the simulated drive's health on the gauges.
func TestPublishFromSimulatedSweep(t *testing.T) {
	drive := discovery.NewSimulatedDrive(0x2A)
	provider := discovery.NewMockProvider()
	provider.AddBus(4, "a", drive.Bus())

	result := discovery.DiscoverNVMeDrives(provider, discovery.SweepConfig{
		Connectors: []int{4},
		Channels:   []string{"a"},
	})
	PublishToPrometheus(result, Config{NodeName: "node1"})

	labels := prometheus.Labels{
		"connector": "4",
		"channel":   "a",
		"nqn":       drive.Subsystem.NQN,
		"node":      "node1",
	}
	assert.Equal(t, float64(1), testutil.ToFloat64(drivesFoundGauge))
	assert.Equal(t, float64(drive.Health.CompositeTemperature), testutil.ToFloat64(temperatureGauge.With(labels)))
	assert.Equal(t, float64(drive.Health.AvailableSpare), testutil.ToFloat64(availableSpareGauge.With(labels)))
}
