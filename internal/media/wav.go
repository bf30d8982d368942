package media

import (
	"encoding/binary"
	"io"
	"math"
)

const (
	wavHeaderSize    = 44
	wavBitsPerSample = 16
)

// toPCM16 and fromPCM16 are exact inverses on every int16 value.
func toPCM16(s float64) int16 {
	s = math.Max(-1, math.Min(1, s))
	if s < 0 {
		return int16(math.Round(s * 32768))
	}
	return int16(math.Round(s * 32767))
}

func fromPCM16(v int) float64 {
	if v < 0 {
		return float64(v) / 32768
	}
	return float64(v) / 32767
}

// writeWAV writes a canonical 44-byte RIFF/WAVE header followed by
// interleaved 16-bit little-endian PCM.
func writeWAV(w io.Writer, sampleRate int, channels [][]float64) error {
	numChans := len(channels)
	frames := 0
	if numChans > 0 {
		frames = len(channels[0])
	}
	blockAlign := numChans * wavBitsPerSample / 8
	dataSize := frames * blockAlign

	hdr := make([]byte, wavHeaderSize)
	copy(hdr[0:4], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(36+dataSize))
	copy(hdr[8:12], "WAVE")
	copy(hdr[12:16], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:20], 16)
	binary.LittleEndian.PutUint16(hdr[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(hdr[22:24], uint16(numChans))
	binary.LittleEndian.PutUint32(hdr[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(hdr[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(hdr[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(hdr[34:36], wavBitsPerSample)
	copy(hdr[36:40], "data")
	binary.LittleEndian.PutUint32(hdr[40:44], uint32(dataSize))

	body := make([]byte, dataSize)
	off := 0
	for i := 0; i < frames; i++ {
		for ch := 0; ch < numChans; ch++ {
			binary.LittleEndian.PutUint16(body[off:], uint16(toPCM16(channels[ch][i])))
			off += 2
		}
	}

	if _, err := w.Write(hdr); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}
