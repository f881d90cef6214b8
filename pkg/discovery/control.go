package discovery

// MCTP control protocol constants (DSP0236 Section 12).
const (
	// controlRqBit marks a control message as a request.
	controlRqBit uint8 = 0x80

	// CommandGetEndpointID queries an endpoint for its EID and role.
	CommandGetEndpointID uint8 = 0x02

	// CommandGetMessageTypeSupport queries the message types an endpoint
	// implements.
	CommandGetMessageTypeSupport uint8 = 0x05

	// CompletionSuccess is the control completion code for success.
	CompletionSuccess uint8 = 0x00
)

// Get Endpoint ID response layout: completion code, EID, endpoint type byte,
// medium-specific info.
const (
	getEndpointIDResponseSize = 4

	// endpointTypeShift and endpointTypeMask extract the 2-bit endpoint type
	// from bits 5:4 of the type byte.
	endpointTypeShift = 4
	endpointTypeMask  = 0x03

	// endpointTypeBusOwner is the type field value for a bus owner.
	endpointTypeBusOwner = 0x01
)

// buildControlRequest encodes a control request carrying only a command code.
func buildControlRequest(command uint8) []byte {
	return []byte{controlRqBit | command}
}
