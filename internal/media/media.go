// Package media implements least-significant-bit embedding for each kind of
// cover file.
//
// Every adapter exposes the cover as an ordered buffer of units and stores
// one frame bit in the low-order bit of each unit, starting at unit 0. A frame
// is a 32-bit big-endian bit count followed by that many payload bits.
package media

import (
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/vaultsandbox/stego/internal/bitcodec"
)

var (
	// ErrCapacity is returned when a frame does not fit the cover.
	ErrCapacity = errors.New("message is too long for this cover")

	// ErrUnsupportedType is returned when no adapter handles a content type.
	ErrUnsupportedType = errors.New("unsupported content type")

	// ErrCoverDecode is returned when a cover cannot be parsed.
	ErrCoverDecode = errors.New("cover could not be decoded")

	// ErrMessageTooLong is returned when a payload exceeds the 32-bit length field.
	ErrMessageTooLong = errors.New("message too long to encode")
)

// MaxPayloadBits is the largest payload a frame can describe.
const MaxPayloadBits = 1<<31 - 1

// CapacityError reports how many units a frame needed.
type CapacityError struct {
	Needed    int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: need %d units, cover has %d", ErrCapacity, e.Needed, e.Available)
}

// Unwrap returns ErrCapacity.
func (e *CapacityError) Unwrap() error {
	return ErrCapacity
}

// Kind selects the adapter for a cover.
type Kind int

const (
	// KindImage covers are decoded rasters; units are NRGBA channel bytes.
	KindImage Kind = iota + 1
	// KindVideo covers are raw container bytes. Frames are not decoded, so
	// any lossy re-encoding of the output destroys the payload.
	KindVideo
	// KindAudio covers are PCM WAVE files; units are first-channel samples.
	KindAudio
	// KindDocument covers are raw file bytes.
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindDocument:
		return "document"
	default:
		return "unknown"
	}
}

// DocumentTypes is the default allow-list for the raw byte adapter.
var DocumentTypes = []string{
	"text/plain",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// NormalizeType lowercases a content type and strips its parameters.
func NormalizeType(contentType string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return mediaType
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// KindFor maps a declared content type to a Kind. Media prefixes win over the
// document allow-list.
func KindFor(contentType string, documentTypes []string) (Kind, error) {
	ct := NormalizeType(contentType)
	switch {
	case strings.HasPrefix(ct, "image/"):
		return KindImage, nil
	case strings.HasPrefix(ct, "video/"):
		return KindVideo, nil
	case strings.HasPrefix(ct, "audio/"):
		return KindAudio, nil
	}
	for _, dt := range documentTypes {
		if ct == NormalizeType(dt) {
			return KindDocument, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
}

// Output is a modified cover.
type Output struct {
	Data        []byte
	ContentType string
}

// Adapter embeds frames into one kind of cover. Adapters never modify the
// input slice and hold no state between calls.
type Adapter interface {
	// Capacity returns the number of addressable units in the cover.
	Capacity(data []byte) (int, error)
	// Embed writes frame into the cover. It fails with a *CapacityError
	// before any mutation if the frame does not fit.
	Embed(data []byte, frame bitcodec.Bits, contentType string) (*Output, error)
	// Extract reads a frame back and returns its payload bits.
	Extract(data []byte) (bitcodec.Bits, error)
}

// For returns the adapter for kind.
func For(kind Kind) (Adapter, error) {
	switch kind {
	case KindImage:
		return imageAdapter{}, nil
	case KindVideo, KindDocument:
		return rawAdapter{}, nil
	case KindAudio:
		return audioAdapter{q: sampleQuantizer}, nil
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnsupportedType, int(kind))
	}
}

// Frame prefixes payload with its 32-bit bit count.
func Frame(payload bitcodec.Bits) (bitcodec.Bits, error) {
	if err := checkPayloadLength(len(payload)); err != nil {
		return nil, err
	}
	return bitcodec.Concat(bitcodec.Uint32ToBits(uint32(len(payload))), payload), nil
}

func checkPayloadLength(n int) error {
	if n > MaxPayloadBits {
		return fmt.Errorf("%w: %d bits exceeds %d", ErrMessageTooLong, n, MaxPayloadBits)
	}
	return nil
}
