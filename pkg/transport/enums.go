package transport

// BusKind identifies the physical binding an MCTP transport runs over.
type BusKind int

const (
	// BusKindI2C carries MCTP packets in the DSP0237 SMBus block framing.
	BusKindI2C BusKind = iota

	// BusKindI3C carries raw MCTP packets over I3C private transfers, with
	// no SMBus envelope.
	BusKindI3C
)

// String returns a human-readable name for the bus kind.
func (k BusKind) String() string {
	switch k {
	case BusKindI2C:
		return "i2c"
	case BusKindI3C:
		return "i3c"
	default:
		return "unknown"
	}
}

// IsValid returns true for the bus kinds this package implements.
func (k BusKind) IsValid() bool {
	return k == BusKindI2C || k == BusKindI3C
}
