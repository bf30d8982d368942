package bitcodec

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestTextToBits(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", ""},
		{"ascii", "hi", "0110100001101001"},
		{"two byte rune", "é", "1100001110101001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TextToBits(tt.text).String()
			if got != tt.want {
				t.Errorf("TextToBits(%q) = %s, want %s", tt.text, got, tt.want)
			}
			if len(got)%8 != 0 {
				t.Errorf("length %d is not a multiple of 8", len(got))
			}
		})
	}
}

func TestBitsToText_RoundTrip(t *testing.T) {
	tests := []string{"", "hi", "secret", "héllo wörld", "日本語", "emoji 🎉"}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			got, err := BitsToText(TextToBits(text))
			if err != nil {
				t.Fatalf("BitsToText() error = %v", err)
			}
			if got != text {
				t.Errorf("round trip = %q, want %q", got, text)
			}
		})
	}
}

func TestBitsToText_DropsPartialByte(t *testing.T) {
	bits := append(TextToBits("ok"), 1, 0, 1)
	got, err := BitsToText(bits)
	if err != nil {
		t.Fatalf("BitsToText() error = %v", err)
	}
	if got != "ok" {
		t.Errorf("BitsToText() = %q, want %q", got, "ok")
	}
}

func TestBitsToText_InvalidUTF8(t *testing.T) {
	_, err := BitsToText(BytesToBits([]byte{0xff, 0xfe}))
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestBytesToBits_BitsToBytes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"zeros", []byte{0x00, 0x00}},
		{"ones", []byte{0xff}},
		{"mixed", []byte{0x00, 0xff, 0x7f, 0x80, 0x5a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bits := BytesToBits(tt.data)
			if len(bits) != len(tt.data)*8 {
				t.Fatalf("len(bits) = %d, want %d", len(bits), len(tt.data)*8)
			}
			if got := BitsToBytes(bits); !bytes.Equal(got, tt.data) {
				t.Errorf("BitsToBytes() = %v, want %v", got, tt.data)
			}
		})
	}
}

func TestBitsToBytes_PadsFinalByte(t *testing.T) {
	got := BitsToBytes(Bits{1, 0, 1})
	if !bytes.Equal(got, []byte{0xa0}) {
		t.Errorf("BitsToBytes() = %x, want a0", got)
	}
}

func TestUint32Bits(t *testing.T) {
	tests := []struct {
		v    uint32
		want string
	}{
		{0, "00000000000000000000000000000000"},
		{16, "00000000000000000000000000010000"},
		{0x80000001, "10000000000000000000000000000001"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.v), func(t *testing.T) {
			bits := Uint32ToBits(tt.v)
			if bits.String() != tt.want {
				t.Errorf("Uint32ToBits(%d) = %s, want %s", tt.v, bits, tt.want)
			}
			if got := BitsToUint32(bits); got != tt.v {
				t.Errorf("BitsToUint32() = %d, want %d", got, tt.v)
			}
		})
	}
}

func TestBitsToUint32_Short(t *testing.T) {
	if got := BitsToUint32(Bits{1}); got != 0x80000000 {
		t.Errorf("BitsToUint32() = %#x, want 0x80000000", got)
	}
}

func TestConcat(t *testing.T) {
	got := Concat(Bits{1}, nil, Bits{0, 1})
	if got.String() != "101" {
		t.Errorf("Concat() = %s, want 101", got)
	}
}

func BenchmarkTextToBits(b *testing.B) {
	text := string(bytes.Repeat([]byte("a"), 1000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = TextToBits(text)
	}
}
