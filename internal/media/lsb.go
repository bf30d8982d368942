package media

import "github.com/vaultsandbox/stego/internal/bitcodec"

// units is a cover buffer addressed one low-order bit at a time.
type units interface {
	Len() int
	Bit(i int) byte
	SetBit(i int, bit byte)
}

type byteUnits []byte

func (b byteUnits) Len() int { return len(b) }

func (b byteUnits) Bit(i int) byte { return b[i] & 1 }

func (b byteUnits) SetBit(i int, bit byte) { b[i] = b[i]&^1 | bit&1 }

func checkFits(frame bitcodec.Bits, capacity int) error {
	if len(frame) > capacity {
		return &CapacityError{Needed: len(frame), Available: capacity}
	}
	return nil
}

// writeFrame stores frame in units 0..len(frame)-1. Callers check capacity
// before the buffer is copied.
func writeFrame(u units, frame bitcodec.Bits) {
	for i, bit := range frame {
		u.SetBit(i, bit)
	}
}

// readFrame reads the length prefix and the payload it describes. The length
// is capped at the remaining units so corrupted covers cannot overrun.
func readFrame(u units) (bitcodec.Bits, error) {
	n := u.Len()
	if n < bitcodec.LengthBits {
		return nil, &CapacityError{Needed: bitcodec.LengthBits, Available: n}
	}

	prefix := make(bitcodec.Bits, bitcodec.LengthBits)
	for i := range prefix {
		prefix[i] = u.Bit(i)
	}

	length := int(bitcodec.BitsToUint32(prefix))
	if limit := n - bitcodec.LengthBits; length > limit {
		length = limit
	}

	payload := make(bitcodec.Bits, length)
	for i := range payload {
		payload[i] = u.Bit(bitcodec.LengthBits + i)
	}
	return payload, nil
}
