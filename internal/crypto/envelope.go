package crypto

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/vaultsandbox/stego/internal/bitcodec"
)

// Format identifies how a hidden payload is encoded.
type Format int

const (
	// FormatLegacy is UTF-8 plaintext with no framing.
	FormatLegacy Format = iota
	// FormatPassphrase is a PBKDF2 + AES-256-GCM envelope.
	FormatPassphrase
	// FormatSealed is an ML-KEM-768 + AES-256-GCM envelope.
	FormatSealed
)

func (f Format) String() string {
	switch f {
	case FormatPassphrase:
		return "passphrase"
	case FormatSealed:
		return "sealed"
	default:
		return "legacy"
	}
}

// Detect reports the payload format from its first 32 bits.
func Detect(bits bitcodec.Bits) Format {
	if len(bits) < SignatureSize*8 {
		return FormatLegacy
	}
	sig := bitcodec.BitsToBytes(bits[:SignatureSize*8])
	switch {
	case bytes.Equal(sig, PassphraseSignature[:]):
		return FormatPassphrase
	case bytes.Equal(sig, SealedSignature[:]):
		return FormatSealed
	default:
		return FormatLegacy
	}
}

// Envelope encrypts messages under a passphrase.
// The zero value uses crypto/rand and PBKDF2 with PBKDF2Iterations.
// Rand must be safe for concurrent use if the Envelope is shared.
type Envelope struct {
	Rand io.Reader
	KDF  KeyDeriver
}

func (e *Envelope) random() io.Reader {
	if e.Rand != nil {
		return e.Rand
	}
	return rand.Reader
}

func (e *Envelope) kdf() KeyDeriver {
	if e.KDF != nil {
		return e.KDF
	}
	return PBKDF2{}
}

// Encrypt seals message under key and returns the envelope as bits:
// signature || salt || nonce || ciphertext || tag.
func (e *Envelope) Encrypt(message, key string) (bitcodec.Bits, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(e.random(), salt); err != nil {
		return nil, fmt.Errorf("%w: salt: %w", ErrRandomSource, err)
	}

	nonce := make([]byte, AESNonceSize)
	if _, err := io.ReadFull(e.random(), nonce); err != nil {
		return nil, fmt.Errorf("%w: nonce: %w", ErrRandomSource, err)
	}

	aesKey, err := e.kdf().DeriveKey([]byte(key), salt)
	if err != nil {
		return nil, err
	}

	sealed, err := EncryptAES(aesKey, []byte(message), nonce)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, SignatureSize+SaltSize+len(sealed))
	out = append(out, PassphraseSignature[:]...)
	out = append(out, salt...)
	out = append(out, sealed...)
	return bitcodec.BytesToBits(out), nil
}

// Decrypt recovers the message hidden in bits.
//
// Payloads without a signature are legacy plaintext and are decoded directly,
// whatever key is supplied. Passphrase envelopes are always decrypted, even
// with an empty key; authentication failure returns ErrDecryptionFailed and
// never falls back to plaintext.
func (e *Envelope) Decrypt(bits bitcodec.Bits, key string) (string, error) {
	switch Detect(bits) {
	case FormatLegacy:
		return bitcodec.BitsToText(bits)
	case FormatSealed:
		return "", ErrSealedPayload
	}

	data := bitcodec.BitsToBytes(bits)[SignatureSize:]
	if len(bits)%8 != 0 || len(data) < SaltSize+AESNonceSize+AESTagSize {
		return "", fmt.Errorf("%w: malformed envelope", ErrDecryptionFailed)
	}

	aesKey, err := e.kdf().DeriveKey([]byte(key), data[:SaltSize])
	if err != nil {
		return "", err
	}

	plaintext, err := DecryptAES(aesKey, data[SaltSize:])
	if err != nil {
		return "", err
	}

	if !utf8.Valid(plaintext) {
		return "", bitcodec.ErrInvalidUTF8
	}
	return string(plaintext), nil
}
