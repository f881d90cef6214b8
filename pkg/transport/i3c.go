package transport

import (
	"fmt"

	"github.com/pion/logging"

	"github.com/pmarks/mctp/pkg/message"
)

// I3C carries raw MCTP packets over I3C private transfers. No SMBus envelope
// is used: packets go on the wire exactly as the message codec encodes them.
type I3C struct {
	bus    Bus
	config Config
	tags   tagAllocator
	log    logging.LeveledLogger
}

// NewI3C creates an I3C transport over bus.
func NewI3C(bus Bus, config Config) *I3C {
	config = config.withDefaults()
	return &I3C{
		bus:    bus,
		config: config,
		log:    config.LoggerFactory.NewLogger("mctp-i3c"),
	}
}

// SendRequest implements Transport.
func (t *I3C) SendRequest(destAddr, destEID uint8, msgType message.Type, payload []byte) (uint8, error) {
	tag := t.tags.Next()

	pkt, err := message.NewPacket(message.PacketConfig{
		DestEID:   destEID,
		SourceEID: t.config.OwnEID,
		Type:      msgType,
		Payload:   payload,
		TagOwner:  true,
		MsgTag:    tag,
	})
	if err != nil {
		return 0, fmt.Errorf("building request packet: %w", err)
	}

	t.log.Debugf("send addr=0x%02X eid=%d type=%s tag=%d len=%d",
		destAddr, destEID, msgType, tag, len(payload))

	if err := t.bus.Write(destAddr, pkt.Encode()); err != nil {
		return 0, fmt.Errorf("bus write to 0x%02X: %w", destAddr, err)
	}

	return tag, nil
}

// ReceiveResponse implements Transport.
func (t *I3C) ReceiveResponse(destAddr uint8, expectedTag int) (message.Packet, error) {
	// Register addressing does not apply to I3C private transfers.
	raw, err := t.bus.Read(destAddr, 0, message.MaxPacketSize)
	if err != nil {
		return message.Packet{}, fmt.Errorf("bus read from 0x%02X: %w", destAddr, err)
	}

	pkt, err := message.DecodePacket(raw)
	if err != nil {
		return message.Packet{}, err
	}

	if expectedTag >= 0 && int(pkt.Header.MsgTag) != expectedTag {
		t.log.Warnf("tag mismatch from 0x%02X: got %d, want %d",
			destAddr, pkt.Header.MsgTag, expectedTag)
		return message.Packet{}, ErrTagMismatch
	}

	return pkt, nil
}

// Exchange implements Transport.
func (t *I3C) Exchange(destAddr, destEID uint8, msgType message.Type, payload []byte) (message.Packet, error) {
	tag, err := t.SendRequest(destAddr, destEID, msgType, payload)
	if err != nil {
		return message.Packet{}, err
	}
	return t.ReceiveResponse(destAddr, int(tag))
}
