package nvmemi

import (
	"fmt"

	"github.com/pion/logging"

	"github.com/pmarks/mctp/pkg/message"
	"github.com/pmarks/mctp/pkg/transport"
)

// Config configures an NVMe-MI client.
type Config struct {
	// DefaultEID is the endpoint ID used when a call site passes EID 0.
	// Typically the EID returned by endpoint discovery.
	DefaultEID uint8

	// LoggerFactory is the factory for creating loggers.
	// If nil, a default factory is used.
	LoggerFactory logging.LoggerFactory
}

// Client issues NVMe-MI commands to drives over an MCTP transport.
type Client struct {
	transport transport.Transport
	config    Config
	log       logging.LeveledLogger
}

// NewClient creates a client bound to t.
func NewClient(t transport.Transport, config Config) *Client {
	if config.LoggerFactory == nil {
		config.LoggerFactory = logging.NewDefaultLoggerFactory()
	}
	return &Client{
		transport: t,
		config:    config,
		log:       config.LoggerFactory.NewLogger("nvme-mi"),
	}
}

// eid resolves an explicit EID, falling back to the configured default.
func (c *Client) eid(eid uint8) uint8 {
	if eid == 0 {
		return c.config.DefaultEID
	}
	return eid
}

// exchange sends an NVMe-MI request and returns the response payload.
func (c *Client) exchange(destAddr, eid uint8, request []byte) ([]byte, error) {
	resp, err := c.transport.Exchange(destAddr, c.eid(eid), message.TypeNVMeMI, request)
	if err != nil {
		return nil, err
	}
	return resp.Payload, nil
}

// Identify reads the NVM Subsystem Information structure from the drive at
// destAddr.
func (c *Client) Identify(destAddr, eid uint8) (SubsystemInfo, error) {
	payload, err := c.exchange(destAddr, eid, ReadSubsystemInfoRequest())
	if err != nil {
		return SubsystemInfo{}, fmt.Errorf("read subsystem info: %w", err)
	}
	return ParseSubsystemInfo(payload)
}

// HealthPoll polls the subsystem health of the drive at destAddr.
func (c *Client) HealthPoll(destAddr, eid uint8) (HealthStatus, error) {
	payload, err := c.exchange(destAddr, eid, SubsystemHealthPollRequest())
	if err != nil {
		return HealthStatus{}, fmt.Errorf("subsystem health poll: %w", err)
	}
	return ParseSubsystemHealth(payload)
}

// ControllerHealthPoll polls the health of a single controller of the drive
// at destAddr.
func (c *Client) ControllerHealthPoll(destAddr, eid uint8, controllerID uint16) (HealthStatus, error) {
	payload, err := c.exchange(destAddr, eid, ControllerHealthPollRequest(controllerID))
	if err != nil {
		return HealthStatus{}, fmt.Errorf("controller health poll: %w", err)
	}
	return ParseControllerHealth(payload)
}

// GetDriveInfo assembles a DriveInfo for the drive at destAddr by running
// the identity and health probes. The probes fail independently: a drive
// that answers only one of the two still appears in inventory with the other
// half zero-valued, and Reachable stays true either way.
func (c *Client) GetDriveInfo(connector int, channel string, destAddr, eid uint8) DriveInfo {
	info := DriveInfo{
		Connector: connector,
		Channel:   channel,
		Address:   destAddr,
		EID:       c.eid(eid),
		Reachable: true,
	}

	subsystem, err := c.Identify(destAddr, eid)
	if err != nil {
		c.log.Warnf("identify failed for 0x%02X (connector %d, channel %s): %v",
			destAddr, connector, channel, err)
	} else {
		info.Subsystem = subsystem
	}

	health, err := c.HealthPoll(destAddr, eid)
	if err != nil {
		c.log.Warnf("health poll failed for 0x%02X (connector %d, channel %s): %v",
			destAddr, connector, channel, err)
	} else {
		info.Health = health
	}

	return info
}
