package media

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/vaultsandbox/stego/internal/bitcodec"
)

// ImageOutputType is the content type of every modified image cover.
const ImageOutputType = "image/png"

// imageAdapter addresses the channel bytes of a decoded NRGBA raster,
// alpha included, in row-major order.
type imageAdapter struct{}

// decodeRaster decodes data into a tightly packed NRGBA raster anchored at
// the origin. NRGBA sources are copied byte for byte so fully transparent
// pixels keep their color channels.
func decodeRaster(data []byte) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCoverDecode, err)
	}

	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if src, ok := img.(*image.NRGBA); ok {
		rowLen := 4 * b.Dx()
		for y := 0; y < b.Dy(); y++ {
			srcOff := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowLen], src.Pix[srcOff:srcOff+rowLen])
		}
		return dst, nil
	}

	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst, nil
}

func (imageAdapter) Capacity(data []byte) (int, error) {
	raster, err := decodeRaster(data)
	if err != nil {
		return 0, err
	}
	return len(raster.Pix), nil
}

func (imageAdapter) Embed(data []byte, frame bitcodec.Bits, _ string) (*Output, error) {
	raster, err := decodeRaster(data)
	if err != nil {
		return nil, err
	}
	if err := checkFits(frame, len(raster.Pix)); err != nil {
		return nil, err
	}

	writeFrame(byteUnits(raster.Pix), frame)

	var buf bytes.Buffer
	if err := png.Encode(&buf, raster); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return &Output{Data: buf.Bytes(), ContentType: ImageOutputType}, nil
}

func (imageAdapter) Extract(data []byte) (bitcodec.Bits, error) {
	raster, err := decodeRaster(data)
	if err != nil {
		return nil, err
	}
	return readFrame(byteUnits(raster.Pix))
}
