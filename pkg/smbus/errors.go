package smbus

import "errors"

// SMBus framing errors.
var (
	// ErrFrameTooShort is returned when a frame is smaller than the minimum
	// MCTP-over-SMBus frame size.
	ErrFrameTooShort = errors.New("smbus: frame too short")

	// ErrPECMismatch is returned when the trailing PEC byte does not match
	// the checksum recomputed over the frame.
	ErrPECMismatch = errors.New("smbus: PEC mismatch")

	// ErrUnexpectedCommandCode is returned when the frame does not carry the
	// MCTP command code (0x0F).
	ErrUnexpectedCommandCode = errors.New("smbus: unexpected command code")

	// ErrByteCountMismatch is returned when the byte count field disagrees
	// with the actual length of the framed MCTP packet.
	ErrByteCountMismatch = errors.New("smbus: byte count mismatch")
)
