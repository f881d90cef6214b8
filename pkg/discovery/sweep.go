package discovery

import (
	"fmt"

	"github.com/pion/logging"

	"github.com/pmarks/mctp/pkg/nvmemi"
	"github.com/pmarks/mctp/pkg/transport"
)

// Sweep defaults: the backplane exposes six drive connectors with two I2C
// channels each, and NVMe-MI devices answer at slave address 0x6A.
const (
	// DefaultTargetAddress is the NVMe-MI default I2C slave address.
	DefaultTargetAddress uint8 = 0x6A

	// DefaultConnectorCount is the number of connectors swept by default.
	DefaultConnectorCount = 6
)

// DefaultChannels returns the channels swept per connector by default.
func DefaultChannels() []string {
	return []string{"a", "b"}
}

// BusProvider binds a Bus to one physical connector+channel pair. Supplied
// by the embedding program; the sweep never interprets connector or channel
// values, it only threads them through for result labeling.
type BusProvider interface {
	Bind(connector int, channel string) (transport.Bus, error)
}

// ScanError records a failed probe of one connector/channel pair.
type ScanError struct {
	Connector int    `json:"connector"`
	Channel   string `json:"channel"`
	Message   string `json:"message"`
}

// String returns the scan error with its connector/channel label.
func (e ScanError) String() string {
	return fmt.Sprintf("connector %d channel %s: %s", e.Connector, e.Channel, e.Message)
}

// DiscoveryResult aggregates a sweep's findings: at most one drive per
// responding connector/channel pair, plus one entry per failed probe.
type DiscoveryResult struct {
	Drives []nvmemi.DriveInfo `json:"drives"`
	Errors []ScanError        `json:"errors"`
}

// SweepConfig configures a drive discovery sweep.
type SweepConfig struct {
	// Connectors lists the connector indices to sweep
	// (default: 0 through DefaultConnectorCount-1).
	Connectors []int

	// Channels lists the channels swept on each connector
	// (default: "a", "b").
	Channels []string

	// TargetAddress is the slave address probed on each pair
	// (default: DefaultTargetAddress).
	TargetAddress uint8

	// Transport configures the transports built for each pair.
	Transport transport.Config

	// LoggerFactory is the factory for creating loggers.
	// If nil, a default factory is used.
	LoggerFactory logging.LoggerFactory
}

// withDefaults returns the config with zero fields replaced by defaults.
func (c SweepConfig) withDefaults() SweepConfig {
	if len(c.Connectors) == 0 {
		c.Connectors = make([]int, DefaultConnectorCount)
		for i := range c.Connectors {
			c.Connectors[i] = i
		}
	}
	if len(c.Channels) == 0 {
		c.Channels = DefaultChannels()
	}
	if c.TargetAddress == 0 {
		c.TargetAddress = DefaultTargetAddress
	}
	if c.LoggerFactory == nil {
		c.LoggerFactory = logging.NewDefaultLoggerFactory()
	}
	if c.Transport.LoggerFactory == nil {
		c.Transport.LoggerFactory = c.LoggerFactory
	}
	return c
}

// DiscoverNVMeDrives sweeps every configured (connector, channel) pair for
// NVMe drives: bind a bus, probe for an MCTP endpoint, filter on NVMe-MI
// support, then collect the drive's identity and health.
//
// A fault on one pair is recorded as a ScanError and never aborts the sweep;
// pairs with no endpoint, or an endpoint without NVMe-MI, are skipped
// silently. Callers should treat a nil endpoint and a populated error list
// as routine outcomes of scanning ports with nothing attached.
func DiscoverNVMeDrives(provider BusProvider, config SweepConfig) DiscoveryResult {
	config = config.withDefaults()
	log := config.LoggerFactory.NewLogger("mctp-sweep")

	var result DiscoveryResult
	for _, connector := range config.Connectors {
		for _, channel := range config.Channels {
			bus, err := provider.Bind(connector, channel)
			if err != nil {
				log.Warnf("bind failed for connector %d channel %s: %v",
					connector, channel, err)
				result.Errors = append(result.Errors, ScanError{
					Connector: connector,
					Channel:   channel,
					Message:   fmt.Sprintf("binding bus: %v", err),
				})
				continue
			}

			t := transport.NewI2C(bus, config.Transport)

			ep := DiscoverEndpoint(t, config.TargetAddress)
			if ep == nil {
				log.Debugf("no endpoint at 0x%02X on connector %d channel %s",
					config.TargetAddress, connector, channel)
				continue
			}
			if !ep.SupportsNVMeMI() {
				log.Debugf("endpoint EID %d on connector %d channel %s does not advertise NVMe-MI",
					ep.EID, connector, channel)
				continue
			}

			client := nvmemi.NewClient(t, nvmemi.Config{
				DefaultEID:    ep.EID,
				LoggerFactory: config.LoggerFactory,
			})
			drive := client.GetDriveInfo(connector, channel, config.TargetAddress, ep.EID)
			result.Drives = append(result.Drives, drive)

			log.Infof("found drive EID %d on connector %d channel %s",
				ep.EID, connector, channel)
		}
	}

	return result
}
