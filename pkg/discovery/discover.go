package discovery

import (
	"github.com/pmarks/mctp/pkg/message"
	"github.com/pmarks/mctp/pkg/transport"
)

// DiscoverEndpoint probes the slave at slaveAddr for an MCTP endpoint by
// exchanging a Get Endpoint ID control request with the null destination EID.
//
// Returns nil when no endpoint is found. Every lower-layer failure (bus I/O
// error, malformed frame, short or non-success response) maps to nil: absence
// is a first-class outcome here, not an error.
func DiscoverEndpoint(t transport.Transport, slaveAddr uint8) *Endpoint {
	resp, err := t.Exchange(slaveAddr, message.NullEID, message.TypeControl,
		buildControlRequest(CommandGetEndpointID))
	if err != nil {
		return nil
	}

	p := resp.Payload
	if len(p) < getEndpointIDResponseSize {
		return nil
	}
	if p[0] != CompletionSuccess {
		return nil
	}

	epType := EndpointSimple
	if (p[2]>>endpointTypeShift)&endpointTypeMask == endpointTypeBusOwner {
		epType = EndpointBusOwner
	}

	ep := &Endpoint{
		EID:          p[1],
		Address:      slaveAddr,
		Type:         epType,
		MediumInfo:   p[3],
		MessageTypes: []message.Type{message.TypeControl},
	}

	// Best effort: a device that answers Get Endpoint ID but not the message
	// type query still counts as discovered, with only Control recorded.
	if types := queryMessageTypes(t, slaveAddr, ep.EID); types != nil {
		ep.MessageTypes = types
	}

	return ep
}

// queryMessageTypes issues a Get Message Type Support request and parses the
// supported type list. Returns nil on any failure.
func queryMessageTypes(t transport.Transport, slaveAddr, eid uint8) []message.Type {
	resp, err := t.Exchange(slaveAddr, eid, message.TypeControl,
		buildControlRequest(CommandGetMessageTypeSupport))
	if err != nil {
		return nil
	}

	// Response: completion code, type count, then one byte per type.
	p := resp.Payload
	if len(p) < 2 || p[0] != CompletionSuccess {
		return nil
	}
	count := int(p[1])
	if len(p) < 2+count {
		return nil
	}

	types := make([]message.Type, 0, count+1)
	types = append(types, message.TypeControl)
	for _, raw := range p[2 : 2+count] {
		mt := message.Type(raw)
		if mt != message.TypeControl {
			types = append(types, mt)
		}
	}
	return types
}
