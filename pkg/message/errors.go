package message

import "errors"

// MCTP packet codec errors.
var (
	// ErrHeaderTooShort is returned when fewer than HeaderSize bytes are
	// supplied to the header decoder.
	ErrHeaderTooShort = errors.New("message: header too short")

	// ErrInvalidVersion is returned when the header version nibble is not 1.
	ErrInvalidVersion = errors.New("message: invalid header version (must be 1)")

	// ErrPacketTooShort is returned when a packet is too small to hold a
	// transport header and a message type byte.
	ErrPacketTooShort = errors.New("message: packet too short")

	// ErrPayloadTooLarge is returned when a payload exceeds MaxPayloadSize.
	ErrPayloadTooLarge = errors.New("message: payload exceeds maximum size")
)

// Packet format constants from DSP0236.
const (
	// HeaderVersion is the MCTP header version carried in every packet
	// (DSP0236 Section 8.1).
	HeaderVersion uint8 = 1

	// HeaderSize is the size of the MCTP transport header in bytes.
	HeaderSize = 4

	// MaxPayloadSize is the baseline MCTP transmission unit: the largest
	// payload this codec accepts in a single packet.
	MaxPayloadSize = 64

	// MaxPacketSize is the largest encoded packet this codec produces:
	// header (4) + message type byte (1) + payload (up to 64).
	MaxPacketSize = HeaderSize + 1 + MaxPayloadSize

	// NullEID is the null endpoint ID, used as the destination when probing
	// endpoints that have not been assigned an EID.
	NullEID uint8 = 0x00

	// BroadcastEID addresses all endpoints on the local bus.
	BroadcastEID uint8 = 0xFF
)

// Transport header byte 3 bit positions (DSP0236 Section 8.1).
const (
	// flagSOM is the Start-of-Message flag (bit 7).
	flagSOM uint8 = 0x80

	// flagEOM is the End-of-Message flag (bit 6).
	flagEOM uint8 = 0x40

	// pktSeqShift is the bit shift for the packet sequence number (bits 4-5).
	pktSeqShift = 4

	// pktSeqMask is the mask for the packet sequence number after shifting.
	pktSeqMask uint8 = 0x03

	// flagTagOwner is the Tag Owner flag (bit 3).
	flagTagOwner uint8 = 0x08

	// msgTagMask is the mask for the message tag (bits 0-2).
	msgTagMask uint8 = 0x07
)

// Message type byte bit positions (DSP0236 Section 8.2).
const (
	// flagIntegrityCheck is the IC bit (bit 7) of the message type byte.
	flagIntegrityCheck uint8 = 0x80

	// typeMask is the mask for the 7-bit message type code.
	typeMask uint8 = 0x7F

	// versionShift is the bit shift for the header version nibble in byte 0.
	versionShift = 4
)
