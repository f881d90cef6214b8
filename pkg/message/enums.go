package message

import "fmt"

// Type is the 7-bit MCTP message type code carried in the byte following the
// transport header (DSP0236 Table 3). Values outside the ones named here are
// carried opaquely; an unknown type is not a decode error.
type Type uint8

const (
	// TypeControl is the MCTP control message type.
	TypeControl Type = 0x00

	// TypeNVMeMI is the NVMe Management Interface message type.
	TypeNVMeMI Type = 0x04
)

// String returns a human-readable name for the message type.
func (t Type) String() string {
	switch t {
	case TypeControl:
		return "Control"
	case TypeNVMeMI:
		return "NVMe-MI"
	default:
		return fmt.Sprintf("Type(0x%02X)", uint8(t))
	}
}
