// Package smbus implements the MCTP-over-SMBus/I2C framing of DSP0237,
// including the SMBus PEC checksum.
package smbus

import (
	"github.com/pmarks/mctp/pkg/message"
)

// Frame format constants (DSP0237 Section 6.1).
const (
	// CommandCodeMCTP is the fixed SMBus command code for MCTP packets.
	CommandCodeMCTP uint8 = 0x0F

	// MinFrameSize is the smallest frame this codec accepts:
	// command code (1) + byte count (1) + source address (1) + MCTP bytes + PEC (1).
	MinFrameSize = 8

	// MaxFrameSize is the largest frame this codec produces: a maximum-size
	// MCTP packet plus the SMBus envelope.
	MaxFrameSize = message.MaxPacketSize + 4
)

// writeAddress returns the 8-bit wire form of a 7-bit slave address with the
// R/W bit clear (write).
func writeAddress(addr uint8) uint8 {
	return addr << 1
}

// readAddress returns the 8-bit wire form of a 7-bit slave address with the
// R/W bit set (read).
func readAddress(addr uint8) uint8 {
	return addr<<1 | 1
}

// BuildFrame wraps an encoded MCTP packet in the DSP0237 SMBus block-write
// framing addressed to destAddr, with srcAddr as the sending master.
//
// The PEC covers the destination address in write form (which the target sees
// on the wire but is not part of the returned buffer) followed by the frame
// body.
func BuildFrame(destAddr, srcAddr uint8, packet []byte) []byte {
	// Byte count covers the source address byte plus the MCTP packet.
	byteCount := uint8(len(packet) + 1)

	frame := make([]byte, 0, len(packet)+4)
	frame = append(frame, CommandCodeMCTP, byteCount, readAddress(srcAddr))
	frame = append(frame, packet...)

	pecInput := make([]byte, 0, len(frame)+1)
	pecInput = append(pecInput, writeAddress(destAddr))
	pecInput = append(pecInput, frame...)

	return append(frame, PEC(pecInput))
}

// ParseFrame validates the SMBus envelope of raw and decodes the MCTP packet
// it carries. destAddr is the 7-bit slave address the frame was sent to; it
// participates in the PEC but is not present in raw.
//
// The PEC is verified before any field of the envelope is interpreted, so a
// corrupted frame reports ErrPECMismatch regardless of which byte was hit.
func ParseFrame(raw []byte, destAddr uint8) (message.Packet, error) {
	if len(raw) < MinFrameSize {
		return message.Packet{}, ErrFrameTooShort
	}

	pecInput := make([]byte, 0, len(raw))
	pecInput = append(pecInput, writeAddress(destAddr))
	pecInput = append(pecInput, raw[:len(raw)-1]...)
	if PEC(pecInput) != raw[len(raw)-1] {
		return message.Packet{}, ErrPECMismatch
	}

	if raw[0] != CommandCodeMCTP {
		return message.Packet{}, ErrUnexpectedCommandCode
	}

	byteCount := int(raw[1])
	mctp := raw[3 : len(raw)-1]
	if byteCount-1 != len(mctp) {
		return message.Packet{}, ErrByteCountMismatch
	}

	return message.DecodePacket(mctp)
}
