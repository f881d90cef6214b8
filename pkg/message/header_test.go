package message

import (
	"errors"
	"testing"
)

// Exhaustive roundtrip over every combination of the flag byte fields.
func TestHeaderRoundtrip(t *testing.T) {
	for _, som := range []bool{false, true} {
		for _, eom := range []bool{false, true} {
			for pktSeq := uint8(0); pktSeq < 4; pktSeq++ {
				for _, tagOwner := range []bool{false, true} {
					for msgTag := uint8(0); msgTag < 8; msgTag++ {
						h := Header{
							DestEID:   0x1D,
							SourceEID: 0x08,
							SOM:       som,
							EOM:       eom,
							PktSeq:    pktSeq,
							TagOwner:  tagOwner,
							MsgTag:    msgTag,
						}

						var decoded Header
						if err := decoded.Decode(h.Encode()); err != nil {
							t.Fatalf("Decode() error: %v", err)
						}
						if decoded != h {
							t.Fatalf("roundtrip mismatch: got %+v, want %+v", decoded, h)
						}
					}
				}
			}
		}
	}
}

func TestHeaderEncoding(t *testing.T) {
	h := Header{
		DestEID:   0x42,
		SourceEID: 0x21,
		SOM:       true,
		EOM:       true,
		PktSeq:    2,
		TagOwner:  true,
		MsgTag:    5,
	}

	encoded := h.Encode()
	want := []byte{0x10, 0x42, 0x21, 0x80 | 0x40 | 2<<4 | 0x08 | 5}
	for i := range want {
		if encoded[i] != want[i] {
			t.Errorf("byte %d = 0x%02X, want 0x%02X", i, encoded[i], want[i])
		}
	}
}

func TestHeaderDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"Nil", nil, ErrHeaderTooShort},
		{"Three bytes", []byte{0x10, 0x00, 0x08}, ErrHeaderTooShort},
		{"Version zero", []byte{0x00, 0x00, 0x08, 0xC0}, ErrInvalidVersion},
		{"Version two", []byte{0x20, 0x00, 0x08, 0xC0}, ErrInvalidVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h Header
			if err := h.Decode(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}
