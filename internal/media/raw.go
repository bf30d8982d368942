package media

import "github.com/vaultsandbox/stego/internal/bitcodec"

// rawAdapter addresses every byte of the file verbatim. It serves video
// containers and documents alike.
type rawAdapter struct{}

func (rawAdapter) Capacity(data []byte) (int, error) {
	return len(data), nil
}

func (rawAdapter) Embed(data []byte, frame bitcodec.Bits, contentType string) (*Output, error) {
	if err := checkFits(frame, len(data)); err != nil {
		return nil, err
	}

	out := make([]byte, len(data))
	copy(out, data)
	writeFrame(byteUnits(out), frame)

	return &Output{Data: out, ContentType: contentType}, nil
}

func (rawAdapter) Extract(data []byte) (bitcodec.Bits, error) {
	return readFrame(byteUnits(data))
}
