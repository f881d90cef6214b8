// Package discovery probes slave addresses for MCTP endpoints and sweeps a
// connector/channel matrix for NVMe drives reachable over NVMe-MI.
//
// Probing an address with nothing behind it is the expected common case
// during a sweep, so endpoint discovery never returns an error: an absent,
// non-responding or misbehaving device is reported as a nil Endpoint.
package discovery

import (
	"github.com/pmarks/mctp/pkg/message"
)

// EndpointType is the endpoint role reported in the Get Endpoint ID response
// (DSP0236 Section 12.4, endpoint type field).
type EndpointType int

const (
	// EndpointSimple is an ordinary endpoint.
	EndpointSimple EndpointType = iota

	// EndpointBusOwner is an endpoint acting as the bus owner.
	EndpointBusOwner
)

// String returns the endpoint type name.
func (t EndpointType) String() string {
	if t == EndpointBusOwner {
		return "bus_owner"
	}
	return "simple"
}

// MarshalText implements encoding.TextMarshaler so endpoint types render as
// their names in JSON output.
func (t EndpointType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Endpoint describes a discovered remote MCTP endpoint. An Endpoint is built
// once per successful probe and never mutated afterwards.
type Endpoint struct {
	// EID is the endpoint's assigned endpoint ID.
	EID uint8 `json:"eid"`

	// Address is the 7-bit slave address the endpoint was found at.
	Address uint8 `json:"address"`

	// Type is the endpoint role from the Get Endpoint ID response.
	Type EndpointType `json:"type"`

	// MediumInfo is the medium-specific information byte of the response.
	MediumInfo uint8 `json:"medium_info"`

	// MessageTypes lists the message types the endpoint is known to support.
	// Control is always present after a successful discovery; the rest is
	// filled in by a best-effort Get Message Type Support query.
	MessageTypes []message.Type `json:"message_types"`
}

// Supports reports whether the endpoint is known to support msgType.
func (e *Endpoint) Supports(msgType message.Type) bool {
	for _, t := range e.MessageTypes {
		if t == msgType {
			return true
		}
	}
	return false
}

// SupportsNVMeMI reports whether the endpoint advertises NVMe-MI support.
func (e *Endpoint) SupportsNVMeMI() bool {
	return e.Supports(message.TypeNVMeMI)
}
