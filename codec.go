package stego

import (
	"context"
	"io"
	"time"

	"github.com/vaultsandbox/stego/internal/bitcodec"
	"github.com/vaultsandbox/stego/internal/crypto"
	"github.com/vaultsandbox/stego/internal/media"
)

// LengthBits is the size of the frame length prefix that precedes every
// payload in a cover.
const LengthBits = bitcodec.LengthBits

// Envelope sizes in payload bits, excluding the message ciphertext itself.
const (
	PassphraseOverheadBits = (crypto.SignatureSize + crypto.SaltSize + crypto.AESNonceSize + crypto.AESTagSize) * 8
	SealedOverheadBits     = (crypto.SignatureSize + crypto.MLKEMCiphertextSize + crypto.AESNonceSize + crypto.AESTagSize) * 8
)

// Codec hides messages in cover files and recovers them.
// A Codec is safe for concurrent use provided its random source is.
type Codec struct {
	envelope      *crypto.Envelope
	random        io.Reader
	documentTypes []string
}

// New creates a Codec. With no options it uses crypto/rand, PBKDF2 with
// DefaultIterations and the DefaultDocumentTypes allow-list.
func New(opts ...Option) *Codec {
	cfg := &codecConfig{
		documentTypes: append([]string(nil), media.DocumentTypes...),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Codec{
		envelope: &crypto.Envelope{
			Rand: cfg.random,
			KDF:  cfg.kdf,
		},
		random:        cfg.random,
		documentTypes: cfg.documentTypes,
	}
}

var defaultCodec = New()

// Encode hides message in cover using the default Codec.
func Encode(ctx context.Context, cover *Cover, message, key string) (*Blob, error) {
	return defaultCodec.Encode(ctx, cover, message, key)
}

// Decode recovers a message from cover using the default Codec.
func Decode(ctx context.Context, cover *Cover, key string) (string, error) {
	return defaultCodec.Decode(ctx, cover, key)
}

// Encode hides message in cover and returns the modified file.
//
// A non-empty key wraps the message in a passphrase envelope; an empty key
// hides it as plaintext. The cover's Data is never modified, and a message
// that does not fit returns a *CapacityError.
func (c *Codec) Encode(ctx context.Context, cover *Cover, message, key string) (*Blob, error) {
	if key == "" {
		return c.encode(ctx, cover, crypto.FormatLegacy, func() (bitcodec.Bits, error) {
			return bitcodec.TextToBits(message), nil
		})
	}
	return c.encode(ctx, cover, crypto.FormatPassphrase, func() (bitcodec.Bits, error) {
		return c.envelope.Encrypt(message, key)
	})
}

// Decode recovers a message hidden by Encode.
//
// Plaintext payloads decode whatever key is given. Passphrase payloads are
// always authenticated, so a wrong or empty key returns a *CryptoError and
// never garbled text.
func (c *Codec) Decode(ctx context.Context, cover *Cover, key string) (string, error) {
	return c.decode(ctx, cover, func(bits bitcodec.Bits) (string, error) {
		return c.envelope.Decrypt(bits, key)
	})
}

// Capacity returns how many payload bits cover can carry after the length
// prefix. Passphrase envelopes consume PassphraseOverheadBits of it.
func (c *Codec) Capacity(ctx context.Context, cover *Cover) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	_, adapter, err := c.adapterFor(cover)
	if err != nil {
		return 0, err
	}

	units, err := adapter.Capacity(cover.Data)
	if err != nil {
		return 0, wrapError(err, cover.ContentType)
	}
	if units < LengthBits {
		return 0, nil
	}
	return units - LengthBits, nil
}

func (c *Codec) adapterFor(cover *Cover) (media.Kind, media.Adapter, error) {
	if err := validateCover(cover); err != nil {
		return 0, nil, err
	}

	kind, err := media.KindFor(cover.ContentType, c.documentTypes)
	if err != nil {
		return 0, nil, wrapError(err, cover.ContentType)
	}

	adapter, err := media.For(kind)
	if err != nil {
		return 0, nil, wrapError(err, cover.ContentType)
	}
	return kind, adapter, nil
}

// encode selects the adapter, builds the payload, frames it and writes it
// into a copy of the cover.
func (c *Codec) encode(ctx context.Context, cover *Cover, format crypto.Format, build func() (bitcodec.Bits, error)) (blob *Blob, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateCover(cover); err != nil {
		return nil, err
	}

	start := time.Now()
	var kind media.Kind
	var payloadBits int
	emitEncodeStart(ctx, cover.ContentType, len(cover.Data))
	defer func() {
		emitEncodeComplete(ctx, cover.ContentType, kind.String(), format.String(), payloadBits, time.Since(start), err)
	}()

	kind, adapter, err := c.adapterFor(cover)
	if err != nil {
		return nil, err
	}

	payload, err := build()
	if err != nil {
		return nil, wrapError(err, cover.ContentType)
	}
	payloadBits = len(payload)

	frame, err := media.Frame(payload)
	if err != nil {
		return nil, wrapError(err, cover.ContentType)
	}

	// Key derivation can take a while; honor cancellation before the cover
	// is decoded and copied.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := adapter.Embed(cover.Data, frame, cover.ContentType)
	if err != nil {
		return nil, wrapError(err, cover.ContentType)
	}

	return &Blob{ContentType: out.ContentType, Data: out.Data}, nil
}

// decode extracts the framed payload and hands it to open.
func (c *Codec) decode(ctx context.Context, cover *Cover, open func(bitcodec.Bits) (string, error)) (message string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateCover(cover); err != nil {
		return "", err
	}

	start := time.Now()
	var kind media.Kind
	var payloadBits int
	format := crypto.FormatLegacy
	emitDecodeStart(ctx, cover.ContentType, len(cover.Data))
	defer func() {
		emitDecodeComplete(ctx, cover.ContentType, kind.String(), format.String(), payloadBits, time.Since(start), err)
	}()

	kind, adapter, err := c.adapterFor(cover)
	if err != nil {
		return "", err
	}

	bits, err := adapter.Extract(cover.Data)
	if err != nil {
		return "", wrapError(err, cover.ContentType)
	}
	payloadBits = len(bits)
	format = crypto.Detect(bits)

	message, err = open(bits)
	if err != nil {
		return "", wrapError(err, cover.ContentType)
	}
	return message, nil
}
