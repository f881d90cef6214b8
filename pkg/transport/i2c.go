package transport

import (
	"fmt"

	"github.com/pion/logging"

	"github.com/pmarks/mctp/pkg/message"
	"github.com/pmarks/mctp/pkg/smbus"
)

// I2C carries MCTP packets in the DSP0237 SMBus block framing. Requests are
// written as block writes to the target's MCTP command code; responses are
// read back as block reads of up to smbus.MaxFrameSize bytes.
type I2C struct {
	bus    Bus
	config Config
	tags   tagAllocator
	log    logging.LeveledLogger
}

// NewI2C creates an I2C transport over bus.
func NewI2C(bus Bus, config Config) *I2C {
	config = config.withDefaults()
	return &I2C{
		bus:    bus,
		config: config,
		log:    config.LoggerFactory.NewLogger("mctp-i2c"),
	}
}

// SendRequest implements Transport.
func (t *I2C) SendRequest(destAddr, destEID uint8, msgType message.Type, payload []byte) (uint8, error) {
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

	frame := smbus.BuildFrame(destAddr, t.config.OwnAddress, pkt.Encode())

	t.log.Debugf("send addr=0x%02X eid=%d type=%s tag=%d len=%d",
		destAddr, destEID, msgType, tag, len(payload))

	if err := t.bus.Write(destAddr, frame); err != nil {
		return 0, fmt.Errorf("bus write to 0x%02X: %w", destAddr, err)
	}

	return tag, nil
}

// ReceiveResponse implements Transport.
func (t *I2C) ReceiveResponse(destAddr uint8, expectedTag int) (message.Packet, error) {
	raw, err := t.bus.Read(destAddr, smbus.CommandCodeMCTP, smbus.MaxFrameSize)
	if err != nil {
		return message.Packet{}, fmt.Errorf("bus read from 0x%02X: %w", destAddr, err)
	}

	pkt, err := smbus.ParseFrame(raw, destAddr)
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
func (t *I2C) Exchange(destAddr, destEID uint8, msgType message.Type, payload []byte) (message.Packet, error) {
	tag, err := t.SendRequest(destAddr, destEID, msgType, payload)
	if err != nil {
		return message.Packet{}, err
	}
	return t.ReceiveResponse(destAddr, int(tag))
}
