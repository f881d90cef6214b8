// Package transport moves single-packet MCTP messages over a byte-level Bus
// capability. Two variants exist: I2C (DSP0237 SMBus framing with PEC) and
// I3C (raw MCTP packets over private transfers).
//
// A transport owns its message tag sequence and nothing else. It performs no
// retries, no timeouts and no fragmentation; every operation blocks until the
// underlying bus I/O completes or fails.
package transport

import (
	"time"

	"github.com/pion/logging"

	"github.com/pmarks/mctp/pkg/message"
)

// Default addressing (NVMe-MI over MCTP, DSP0235 Appendix A).
const (
	// DefaultOwnEID is the endpoint ID this side reports as the packet
	// source when none is configured.
	DefaultOwnEID uint8 = 0x08

	// DefaultOwnAddress is the 7-bit slave address of the local controller.
	DefaultOwnAddress uint8 = 0x21

	// DefaultResponseTimeout is the advisory response timeout hint carried
	// in the config. This package does not act on it; it is available to
	// Bus implementations that need a deadline.
	DefaultResponseTimeout = 100 * time.Millisecond
)

// Transport sends MCTP request packets and receives their responses over one
// Bus binding.
type Transport interface {
	// SendRequest allocates the next message tag, builds a request packet
	// with the tag owner bit set and writes it to the slave at destAddr.
	// Returns the allocated tag for response correlation.
	SendRequest(destAddr, destEID uint8, msgType message.Type, payload []byte) (uint8, error)

	// ReceiveResponse reads one response packet from the slave at destAddr.
	// If expectedTag is non-negative, a response carrying a different
	// message tag fails with ErrTagMismatch.
	ReceiveResponse(destAddr uint8, expectedTag int) (message.Packet, error)

	// Exchange sends a request and blocks until its response is read back.
	// The response is correlated against the request's tag.
	Exchange(destAddr, destEID uint8, msgType message.Type, payload []byte) (message.Packet, error)
}

// Config configures a transport instance.
type Config struct {
	// OwnEID is the local endpoint ID placed in the source EID field of
	// outgoing packets (default: DefaultOwnEID).
	OwnEID uint8

	// OwnAddress is the local 7-bit slave address, used as the source
	// address in SMBus frames (default: DefaultOwnAddress).
	OwnAddress uint8

	// ResponseTimeout is an advisory hint for Bus implementations
	// (default: DefaultResponseTimeout). This package does not enforce it.
	ResponseTimeout time.Duration

	// MaxRetries is an advisory retry budget for callers that choose to
	// retry failed exchanges. This package never retries.
	MaxRetries int

	// LoggerFactory is the factory for creating loggers.
	// If nil, a default factory is used.
	LoggerFactory logging.LoggerFactory
}

// withDefaults returns the config with zero fields replaced by defaults.
func (c Config) withDefaults() Config {
	if c.OwnEID == 0 {
		c.OwnEID = DefaultOwnEID
	}
	if c.OwnAddress == 0 {
		c.OwnAddress = DefaultOwnAddress
	}
	if c.ResponseTimeout == 0 {
		c.ResponseTimeout = DefaultResponseTimeout
	}
	if c.LoggerFactory == nil {
		c.LoggerFactory = logging.NewDefaultLoggerFactory()
	}
	return c
}

// New creates a transport for the given bus kind.
func New(kind BusKind, bus Bus, config Config) (Transport, error) {
	if bus == nil {
		return nil, ErrNoBus
	}

	switch kind {
	case BusKindI2C:
		return NewI2C(bus, config), nil
	case BusKindI3C:
		return NewI3C(bus, config), nil
	default:
		return nil, ErrUnknownBusKind
	}
}
