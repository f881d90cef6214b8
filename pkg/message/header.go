// Package message implements the MCTP single-packet message codec of DSP0236:
// the 4-byte transport header, the message type byte and the payload.
//
// This codec handles single-packet messages only. SOM and EOM are both set on
// every packet it builds; multi-packet reassembly is not supported.
package message

// Header represents the MCTP transport header (DSP0236 Section 8.1).
type Header struct {
	// DestEID is the destination endpoint ID.
	DestEID uint8

	// SourceEID is the source endpoint ID.
	SourceEID uint8

	// SOM indicates this packet starts a message.
	SOM bool

	// EOM indicates this packet ends a message.
	EOM bool

	// PktSeq is the 2-bit packet sequence number (0-3).
	PktSeq uint8

	// TagOwner indicates the sender originated the message tag. Set on
	// requests, clear on responses.
	TagOwner bool

	// MsgTag is the 3-bit message tag (0-7) correlating a response with its
	// request.
	MsgTag uint8
}

// Encode serializes the header to its 4-byte wire form.
func (h *Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	h.EncodeTo(buf)
	return buf
}

// EncodeTo serializes the header into buf, which must be at least HeaderSize
// bytes long. Returns the number of bytes written.
func (h *Header) EncodeTo(buf []byte) int {
	buf[0] = HeaderVersion << versionShift
	buf[1] = h.DestEID
	buf[2] = h.SourceEID
	buf[3] = h.flags()
	return HeaderSize
}

// flags constructs the header flag byte (byte 3).
func (h *Header) flags() uint8 {
	var flags uint8

	if h.SOM {
		flags |= flagSOM
	}
	if h.EOM {
		flags |= flagEOM
	}

	flags |= (h.PktSeq & pktSeqMask) << pktSeqShift

	if h.TagOwner {
		flags |= flagTagOwner
	}

	flags |= h.MsgTag & msgTagMask

	return flags
}

// Decode deserializes a transport header from data.
func (h *Header) Decode(data []byte) error {
	if len(data) < HeaderSize {
		return ErrHeaderTooShort
	}

	if data[0]>>versionShift != HeaderVersion {
		return ErrInvalidVersion
	}

	h.DestEID = data[1]
	h.SourceEID = data[2]

	flags := data[3]
	h.SOM = flags&flagSOM != 0
	h.EOM = flags&flagEOM != 0
	h.PktSeq = (flags >> pktSeqShift) & pktSeqMask
	h.TagOwner = flags&flagTagOwner != 0
	h.MsgTag = flags & msgTagMask

	return nil
}
