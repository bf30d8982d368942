package stego

import (
	"context"
	"fmt"
	"strings"

	"github.com/vaultsandbox/stego/internal/bitcodec"
	"github.com/vaultsandbox/stego/internal/crypto"
)

// Keypair is an ML-KEM-768 keypair for sealed payloads.
type Keypair = crypto.Keypair

// GenerateKeypair creates a new ML-KEM-768 keypair from crypto/rand.
func GenerateKeypair() (*Keypair, error) {
	return defaultCodec.GenerateKeypair()
}

// GenerateKeypair creates a new ML-KEM-768 keypair from the Codec's random
// source.
func (c *Codec) GenerateKeypair() (*Keypair, error) {
	kp, err := crypto.GenerateKeypair(c.random)
	if err != nil {
		return nil, &CryptoError{Message: fmt.Sprintf("generate keypair: %v", err), Err: err}
	}
	return kp, nil
}

// KeypairFromSecretKey reconstructs a keypair from a raw secret key.
func KeypairFromSecretKey(secretKey []byte) (*Keypair, error) {
	kp, err := crypto.KeypairFromSecretKey(secretKey)
	if err != nil {
		return nil, invalidKeypair(err)
	}
	return kp, nil
}

// ParseKey decodes a base64 key in either the standard or URL-safe alphabet,
// padded or not. Surrounding whitespace is ignored.
func ParseKey(s string) ([]byte, error) {
	b, err := crypto.DecodeBase64(strings.TrimSpace(s))
	if err != nil {
		return nil, invalidKeypair(err)
	}
	return b, nil
}

// EncodeKey encodes a raw key as unpadded URL-safe base64.
func EncodeKey(key []byte) string {
	return crypto.ToBase64URL(key)
}

func invalidKeypair(err error) error {
	return &CryptoError{
		Message: fmt.Sprintf("%v: %v", ErrInvalidKeypair, err),
		Err:     fmt.Errorf("%w: %w", ErrInvalidKeypair, err),
	}
}

// EncodeSealed hides message in cover, encrypted to the holder of the
// secret key matching recipientPublicKey.
func (c *Codec) EncodeSealed(ctx context.Context, cover *Cover, message string, recipientPublicKey []byte) (*Blob, error) {
	return c.encode(ctx, cover, crypto.FormatSealed, func() (bitcodec.Bits, error) {
		return crypto.Seal(c.random, message, recipientPublicKey)
	})
}

// DecodeSealed recovers a message hidden by EncodeSealed.
//
// Plaintext payloads decode as with Decode. Passphrase payloads and payloads
// sealed to another key return a *CryptoError.
func (c *Codec) DecodeSealed(ctx context.Context, cover *Cover, keypair *Keypair) (string, error) {
	if !crypto.ValidateKeypair(keypair) {
		return "", invalidKeypair(fmt.Errorf("keypair failed validation"))
	}
	return c.decode(ctx, cover, func(bits bitcodec.Bits) (string, error) {
		return crypto.Open(bits, keypair)
	})
}
