package smbus

// pecTable holds the CRC-8 lookup table for the SMBus PEC polynomial
// x^8 + x^2 + x + 1 (0x07), MSB-first.
var pecTable [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		crc := uint8(i)
		for bit := 0; bit < 8; bit++ {
			if crc&0x80 != 0 {
				crc = (crc << 1) ^ 0x07
			} else {
				crc <<= 1
			}
		}
		pecTable[i] = crc
	}
}

// PEC computes the SMBus Packet Error Code over data (SMBus 3.0 Section 6.4.1).
// Initial value 0, no final XOR.
func PEC(data []byte) uint8 {
	var crc uint8
	for _, b := range data {
		crc = pecTable[crc^b]
	}
	return crc
}
