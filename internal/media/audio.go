package media

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-audio/wav"

	"github.com/vaultsandbox/stego/internal/bitcodec"
)

// AudioOutputType is the content type of every modified audio cover.
const AudioOutputType = "audio/wav"

// quantizer hides one bit per floating-point sample. A sample is snapped
// down to a multiple of step and offset is added for a 1 bit. Extraction
// subtracts the nearest grid point and compares the residue with offset/2.
// Embed and extract must share one quantizer value.
type quantizer struct {
	step   float64
	offset float64
}

// sampleQuantizer leaves a margin of offset/2 = 5e-5 around each decision,
// larger than the 16-bit PCM round trip error.
var sampleQuantizer = quantizer{step: 1e-3, offset: 1e-4}

func (q quantizer) embed(sample float64, bit byte) float64 {
	cells := math.Round(1 / q.step)
	n := math.Floor(sample / q.step)
	n = math.Max(-cells, math.Min(cells-1, n))
	return (n + float64(bit&1)*q.offset/q.step) * q.step
}

func (q quantizer) extract(sample float64) byte {
	x := sample / q.step
	half := q.offset / q.step / 2
	n := math.Round(x - half)
	if x-n > half {
		return 1
	}
	return 0
}

// sampleUnits exposes one channel of samples as units.
type sampleUnits struct {
	samples []float64
	q       quantizer
}

func (s sampleUnits) Len() int { return len(s.samples) }

func (s sampleUnits) Bit(i int) byte { return s.q.extract(s.samples[i]) }

func (s sampleUnits) SetBit(i int, bit byte) { s.samples[i] = s.q.embed(s.samples[i], bit) }

// pcm is a decoded audio cover with channels de-interleaved to [-1, 1].
type pcm struct {
	sampleRate int
	channels   [][]float64
}

func (p *pcm) frames() int {
	if len(p.channels) == 0 {
		return 0
	}
	return len(p.channels[0])
}

// decodePCM decodes a RIFF/WAVE PCM file.
func decodePCM(data []byte) (*pcm, error) {
	if !wav.NewDecoder(bytes.NewReader(data)).IsValidFile() {
		return nil, fmt.Errorf("%w: not a PCM WAVE file", ErrCoverDecode)
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCoverDecode, err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("%w: missing format", ErrCoverDecode)
	}

	numChans := buf.Format.NumChannels
	toFloat, err := sampleScaler(int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	frames := len(buf.Data) / numChans
	p := &pcm{sampleRate: buf.Format.SampleRate, channels: make([][]float64, numChans)}
	for ch := range p.channels {
		p.channels[ch] = make([]float64, frames)
	}
	for i := 0; i < frames*numChans; i++ {
		p.channels[i%numChans][i/numChans] = toFloat(buf.Data[i])
	}
	return p, nil
}

// sampleScaler maps integer PCM samples of a given depth to [-1, 1].
func sampleScaler(bitDepth int) (func(int) float64, error) {
	switch bitDepth {
	case 8:
		return func(v int) float64 { return float64(v-128) / 128 }, nil
	case 16:
		return fromPCM16, nil
	case 24, 32:
		scale := float64(int64(1) << (bitDepth - 1))
		return func(v int) float64 { return float64(v) / scale }, nil
	default:
		return nil, fmt.Errorf("%w: unsupported bit depth %d", ErrCoverDecode, bitDepth)
	}
}

// audioAdapter addresses the first channel's samples. The output is always
// re-rendered as 16-bit PCM with the source rate and channel count.
type audioAdapter struct {
	q quantizer
}

func (audioAdapter) Capacity(data []byte) (int, error) {
	p, err := decodePCM(data)
	if err != nil {
		return 0, err
	}
	return p.frames(), nil
}

func (a audioAdapter) Embed(data []byte, frame bitcodec.Bits, _ string) (*Output, error) {
	p, err := decodePCM(data)
	if err != nil {
		return nil, err
	}
	if err := checkFits(frame, p.frames()); err != nil {
		return nil, err
	}

	writeFrame(sampleUnits{samples: p.channels[0], q: a.q}, frame)

	var buf bytes.Buffer
	if err := writeWAV(&buf, p.sampleRate, p.channels); err != nil {
		return nil, fmt.Errorf("encode wav: %w", err)
	}
	return &Output{Data: buf.Bytes(), ContentType: AudioOutputType}, nil
}

func (a audioAdapter) Extract(data []byte) (bitcodec.Bits, error) {
	p, err := decodePCM(data)
	if err != nil {
		return nil, err
	}
	return readFrame(sampleUnits{samples: p.channels[0], q: a.q})
}
