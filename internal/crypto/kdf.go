package crypto

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

// KeyDeriver stretches a passphrase into an AES-256 key.
// Implementations must be safe for concurrent use.
type KeyDeriver interface {
	DeriveKey(passphrase, salt []byte) ([]byte, error)
}

// PBKDF2 derives keys with PBKDF2-HMAC-SHA-256.
// A zero Iterations uses PBKDF2Iterations.
type PBKDF2 struct {
	Iterations int
}

// DeriveKey implements KeyDeriver.
func (p PBKDF2) DeriveKey(passphrase, salt []byte) ([]byte, error) {
	iter := p.Iterations
	if iter == 0 {
		iter = PBKDF2Iterations
	}
	if iter < MinPBKDF2Iterations {
		return nil, fmt.Errorf("%w: got %d, want >= %d", ErrWeakKDF, iter, MinPBKDF2Iterations)
	}
	return pbkdf2.Key(passphrase, salt, iter, AESKeySize, sha256.New), nil
}

// deriveSealedKey performs HKDF-SHA-512 key derivation for sealed payloads.
//
// The key derivation uses:
//   - IKM (input key material): the KEM shared secret
//   - Salt: SHA-256 hash of the KEM ciphertext
//   - Info: context string || AAD length (4 bytes BE) || AAD
func deriveSealedKey(sharedSecret, aad, ctKem []byte) ([]byte, error) {
	saltHash := sha256.Sum256(ctKem)

	contextBytes := []byte(HKDFContext)
	info := make([]byte, 0, len(contextBytes)+4+len(aad))
	info = append(info, contextBytes...)
	info = binary.BigEndian.AppendUint32(info, uint32(len(aad)))
	info = append(info, aad...)

	reader := hkdf.New(sha512.New, sharedSecret, saltHash[:], info)
	key := make([]byte, AESKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return key, nil
}
