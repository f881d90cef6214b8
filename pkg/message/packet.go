package message

// Packet represents a complete single-packet MCTP message: transport header,
// message type byte and payload.
type Packet struct {
	Header Header

	// IntegrityCheck is the IC bit of the message type byte. When set, the
	// message body carries a message-type-specific integrity check. This
	// codec carries the bit through without interpreting it.
	IntegrityCheck bool

	// Type is the 7-bit message type code.
	Type Type

	// Payload is the message body, at most MaxPayloadSize bytes.
	Payload []byte
}

// PacketConfig holds the fields needed to build a request or response packet.
type PacketConfig struct {
	DestEID   uint8
	SourceEID uint8
	Type      Type
	Payload   []byte

	// SOM and EOM default to true via NewPacket; single-packet messages only.
	SOM bool
	EOM bool

	PktSeq         uint8
	TagOwner       bool
	MsgTag         uint8
	IntegrityCheck bool
}

// NewPacket builds a single-packet MCTP message. SOM and EOM are always set.
// Returns ErrPayloadTooLarge if the payload exceeds MaxPayloadSize.
func NewPacket(config PacketConfig) (Packet, error) {
	if len(config.Payload) > MaxPayloadSize {
		return Packet{}, ErrPayloadTooLarge
	}

	return Packet{
		Header: Header{
			DestEID:   config.DestEID,
			SourceEID: config.SourceEID,
			SOM:       true,
			EOM:       true,
			PktSeq:    config.PktSeq & pktSeqMask,
			TagOwner:  config.TagOwner,
			MsgTag:    config.MsgTag & msgTagMask,
		},
		IntegrityCheck: config.IntegrityCheck,
		Type:           config.Type,
		Payload:        config.Payload,
	}, nil
}

// Size returns the encoded size of the packet in bytes.
func (p *Packet) Size() int {
	return HeaderSize + 1 + len(p.Payload)
}

// Encode serializes the packet to its wire form:
// header, message type byte, payload.
func (p *Packet) Encode() []byte {
	buf := make([]byte, p.Size())
	offset := p.Header.EncodeTo(buf)

	typeByte := uint8(p.Type) & typeMask
	if p.IntegrityCheck {
		typeByte |= flagIntegrityCheck
	}
	buf[offset] = typeByte
	offset++

	copy(buf[offset:], p.Payload)
	return buf
}

// DecodePacket deserializes a single-packet MCTP message. At least
// HeaderSize+1 bytes are required (header plus message type byte); the
// payload may be empty.
func DecodePacket(data []byte) (Packet, error) {
	if len(data) < HeaderSize+1 {
		return Packet{}, ErrPacketTooShort
	}

	var p Packet
	if err := p.Header.Decode(data); err != nil {
		return Packet{}, err
	}

	typeByte := data[HeaderSize]
	p.IntegrityCheck = typeByte&flagIntegrityCheck != 0
	p.Type = Type(typeByte & typeMask)

	if len(data) > HeaderSize+1 {
		p.Payload = make([]byte, len(data)-HeaderSize-1)
		copy(p.Payload, data[HeaderSize+1:])
	}

	return p, nil
}
