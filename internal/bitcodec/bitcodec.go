// Package bitcodec converts text and byte buffers to and from bit streams.
//
// A bit stream is a slice holding one bit per element (0 or 1), most
// significant bit of each byte first. This is the ordering in which bits are
// written into cover units.
package bitcodec

import (
	"errors"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when decoded bytes are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 in hidden data")

// LengthBits is the size of the frame length prefix in bits.
const LengthBits = 32

// Bits is an ordered bit stream. Each element is 0 or 1.
type Bits []byte

// TextToBits returns the UTF-8 bytes of text as bits, 8 per byte.
func TextToBits(text string) Bits {
	return BytesToBits([]byte(text))
}

// BitsToText groups bits into bytes and decodes them as UTF-8.
// A trailing partial byte is dropped.
func BitsToText(bits Bits) (string, error) {
	data := BitsToBytes(bits[:len(bits)/8*8])
	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}
	return string(data), nil
}

// BytesToBits expands a byte buffer into bits.
func BytesToBits(data []byte) Bits {
	bits := make(Bits, 0, len(data)*8)
	for _, b := range data {
		for shift := 7; shift >= 0; shift-- {
			bits = append(bits, (b>>uint(shift))&1)
		}
	}
	return bits
}

// BitsToBytes packs bits into bytes. A final partial byte is zero-padded.
func BitsToBytes(bits Bits) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit&1 == 1 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

// Uint32ToBits encodes v as a 32-bit big-endian bit stream.
func Uint32ToBits(v uint32) Bits {
	bits := make(Bits, LengthBits)
	for i := 0; i < LengthBits; i++ {
		bits[i] = byte(v>>uint(LengthBits-1-i)) & 1
	}
	return bits
}

// BitsToUint32 decodes the first 32 bits as a big-endian integer.
// Missing bits are treated as zero.
func BitsToUint32(bits Bits) uint32 {
	var v uint32
	for i := 0; i < LengthBits; i++ {
		v <<= 1
		if i < len(bits) {
			v |= uint32(bits[i] & 1)
		}
	}
	return v
}

// Concat joins bit streams in order.
func Concat(parts ...Bits) Bits {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make(Bits, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// String renders bits as a string of '0' and '1'.
func (b Bits) String() string {
	buf := make([]byte, len(b))
	for i, bit := range b {
		buf[i] = '0' + bit&1
	}
	return string(buf)
}
