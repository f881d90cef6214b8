package smbus

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pmarks/mctp/pkg/message"
)

const (
	testDestAddr uint8 = 0x6A
	testSrcAddr  uint8 = 0x21
)

func buildTestPacket(t *testing.T, payload []byte) message.Packet {
	t.Helper()
	pkt, err := message.NewPacket(message.PacketConfig{
		DestEID:   0x00,
		SourceEID: 0x08,
		Type:      message.TypeNVMeMI,
		Payload:   payload,
		TagOwner:  true,
		MsgTag:    5,
	})
	if err != nil {
		t.Fatalf("NewPacket() error: %v", err)
	}
	return pkt
}

func TestFrameRoundtrip(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{"Empty payload", nil},
		{"Short payload", []byte{0x01, 0x02, 0x03}},
		{"Max payload", bytes.Repeat([]byte{0xA5}, message.MaxPayloadSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkt := buildTestPacket(t, tt.payload)
			encoded := pkt.Encode()

			frame := BuildFrame(testDestAddr, testSrcAddr, encoded)

			if frame[0] != CommandCodeMCTP {
				t.Errorf("command code = 0x%02X, want 0x%02X", frame[0], CommandCodeMCTP)
			}
			if int(frame[1]) != len(encoded)+1 {
				t.Errorf("byte count = %d, want %d", frame[1], len(encoded)+1)
			}
			if frame[2] != testSrcAddr<<1|1 {
				t.Errorf("source address byte = 0x%02X, want 0x%02X", frame[2], testSrcAddr<<1|1)
			}

			parsed, err := ParseFrame(frame, testDestAddr)
			if err != nil {
				t.Fatalf("ParseFrame() error: %v", err)
			}
			if parsed.Header != pkt.Header {
				t.Errorf("header = %+v, want %+v", parsed.Header, pkt.Header)
			}
			if parsed.Type != pkt.Type {
				t.Errorf("type = %v, want %v", parsed.Type, pkt.Type)
			}
			if !bytes.Equal(parsed.Payload, pkt.Payload) {
				t.Errorf("payload = % X, want % X", parsed.Payload, pkt.Payload)
			}
		})
	}
}

// Flipping any single bit of the frame, the PEC byte included, must be
// reported as a PEC mismatch.
func TestFrameBitFlip(t *testing.T) {
	pkt := buildTestPacket(t, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	frame := BuildFrame(testDestAddr, testSrcAddr, pkt.Encode())

	for byteIdx := range frame {
		for bit := 0; bit < 8; bit++ {
			corrupted := append([]byte{}, frame...)
			corrupted[byteIdx] ^= 1 << bit

			_, err := ParseFrame(corrupted, testDestAddr)
			if !errors.Is(err, ErrPECMismatch) {
				t.Fatalf("flip byte %d bit %d: error = %v, want ErrPECMismatch", byteIdx, bit, err)
			}
		}
	}
}

func TestFrameWrongDestAddr(t *testing.T) {
	pkt := buildTestPacket(t, []byte{0x01})
	frame := BuildFrame(testDestAddr, testSrcAddr, pkt.Encode())

	// The destination address participates in the PEC, so parsing against a
	// different address is indistinguishable from corruption.
	if _, err := ParseFrame(frame, testDestAddr+1); !errors.Is(err, ErrPECMismatch) {
		t.Errorf("error = %v, want ErrPECMismatch", err)
	}
}

func TestFrameTooShort(t *testing.T) {
	_, err := ParseFrame([]byte{0x0F, 0x02, 0xD5, 0x00, 0x00, 0x00, 0x00}, testDestAddr)
	if !errors.Is(err, ErrFrameTooShort) {
		t.Errorf("error = %v, want ErrFrameTooShort", err)
	}
}

// A frame whose command code is wrong but whose PEC is consistent with its
// contents reports the command code, not the checksum.
func TestFrameUnexpectedCommandCode(t *testing.T) {
	pkt := buildTestPacket(t, []byte{0x01, 0x02})
	frame := BuildFrame(testDestAddr, testSrcAddr, pkt.Encode())

	frame[0] = 0x10
	reseal(frame, testDestAddr)

	if _, err := ParseFrame(frame, testDestAddr); !errors.Is(err, ErrUnexpectedCommandCode) {
		t.Errorf("error = %v, want ErrUnexpectedCommandCode", err)
	}
}

func TestFrameByteCountMismatch(t *testing.T) {
	pkt := buildTestPacket(t, []byte{0x01, 0x02})
	frame := BuildFrame(testDestAddr, testSrcAddr, pkt.Encode())

	frame[1]++
	reseal(frame, testDestAddr)

	if _, err := ParseFrame(frame, testDestAddr); !errors.Is(err, ErrByteCountMismatch) {
		t.Errorf("error = %v, want ErrByteCountMismatch", err)
	}
}

// reseal recomputes the trailing PEC after a deliberate field change.
func reseal(frame []byte, destAddr uint8) {
	pecInput := make([]byte, 0, len(frame))
	pecInput = append(pecInput, destAddr<<1)
	pecInput = append(pecInput, frame[:len(frame)-1]...)
	frame[len(frame)-1] = PEC(pecInput)
}
