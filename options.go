package stego

import (
	"io"

	"github.com/vaultsandbox/stego/internal/crypto"
	"github.com/vaultsandbox/stego/internal/media"
)

// KeyDeriver turns a passphrase and salt into a 32-byte AES key.
// Encoder and decoder must use the same deriver; the envelope does not
// record which one produced it.
type KeyDeriver = crypto.KeyDeriver

// PBKDF2 is the default KeyDeriver. Zero Iterations means DefaultIterations.
type PBKDF2 = crypto.PBKDF2

const (
	// DefaultIterations is the PBKDF2 iteration count used by New.
	DefaultIterations = crypto.PBKDF2Iterations

	// MinIterations is the lowest PBKDF2 iteration count accepted.
	MinIterations = crypto.MinPBKDF2Iterations
)

// DefaultDocumentTypes is the allow-list of document content types.
var DefaultDocumentTypes = append([]string(nil), media.DocumentTypes...)

// codecConfig holds configuration for a Codec.
type codecConfig struct {
	random        io.Reader
	kdf           KeyDeriver
	documentTypes []string
}

// Option configures a Codec.
type Option func(*codecConfig)

// WithRandReader sets the source of salts, nonces and KEM seeds.
// The reader must be safe for concurrent use if the Codec is shared.
func WithRandReader(r io.Reader) Option {
	return func(c *codecConfig) {
		c.random = r
	}
}

// WithKeyDeriver sets the passphrase key derivation function.
func WithKeyDeriver(kdf KeyDeriver) Option {
	return func(c *codecConfig) {
		c.kdf = kdf
	}
}

// WithKDFIterations sets the PBKDF2 iteration count. Counts below
// MinIterations make every passphrase operation fail with a CryptoError.
func WithKDFIterations(n int) Option {
	return func(c *codecConfig) {
		c.kdf = PBKDF2{Iterations: n}
	}
}

// WithDocumentTypes adds content types to the document allow-list.
func WithDocumentTypes(types ...string) Option {
	return func(c *codecConfig) {
		for _, t := range types {
			c.documentTypes = append(c.documentTypes, media.NormalizeType(t))
		}
	}
}
