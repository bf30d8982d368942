package crypto

import (
	"bytes"
	"io"

	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
)

// Keypair represents an ML-KEM-768 keypair for sealed payloads.
type Keypair struct {
	// PublicKey is the raw ML-KEM-768 public key bytes.
	PublicKey []byte
	// SecretKey is the raw ML-KEM-768 secret key bytes.
	SecretKey []byte
	// PublicKeyB64 is the public key encoded as URL-safe base64.
	PublicKeyB64 string
}

// GenerateKeypair creates a new ML-KEM-768 keypair.
// A nil random source uses crypto/rand.
func GenerateKeypair(random io.Reader) (*Keypair, error) {
	pub, priv, err := mlkem768.GenerateKeyPair(random)
	if err != nil {
		return nil, err
	}

	// MarshalBinary never fails for valid keys from GenerateKeyPair
	pubBytes, _ := pub.MarshalBinary()
	privBytes, _ := priv.MarshalBinary()

	return &Keypair{
		PublicKey:    pubBytes,
		SecretKey:    privBytes,
		PublicKeyB64: ToBase64URL(pubBytes),
	}, nil
}

// KeypairFromSecretKey reconstructs a keypair from the secret key.
// The public key is embedded in the secret key at offset 1152.
func KeypairFromSecretKey(secretKey []byte) (*Keypair, error) {
	if len(secretKey) != MLKEMSecretKeySize {
		return nil, ErrInvalidSecretKeySize
	}

	publicKey := make([]byte, MLKEMPublicKeySize)
	copy(publicKey, secretKey[PublicKeyOffset:PublicKeyOffset+MLKEMPublicKeySize])

	return &Keypair{
		PublicKey:    publicKey,
		SecretKey:    secretKey,
		PublicKeyB64: ToBase64URL(publicKey),
	}, nil
}

// ValidateKeypair validates that a keypair has the correct structure and sizes.
func ValidateKeypair(keypair *Keypair) bool {
	if keypair == nil {
		return false
	}

	if len(keypair.PublicKey) != MLKEMPublicKeySize || len(keypair.SecretKey) != MLKEMSecretKeySize {
		return false
	}

	if keypair.PublicKeyB64 != "" {
		decoded, err := FromBase64URL(keypair.PublicKeyB64)
		if err != nil || !bytes.Equal(decoded, keypair.PublicKey) {
			return false
		}
	}

	return bytes.Equal(keypair.SecretKey[PublicKeyOffset:PublicKeyOffset+MLKEMPublicKeySize], keypair.PublicKey)
}

// Decapsulate decapsulates a shared secret from the encapsulated key.
func (k *Keypair) Decapsulate(encapsulatedKey []byte) ([]byte, error) {
	if len(encapsulatedKey) != MLKEMCiphertextSize {
		return nil, ErrInvalidCiphertextSize
	}
	if len(k.SecretKey) != MLKEMSecretKeySize {
		return nil, ErrInvalidSecretKeySize
	}

	var privKey mlkem768.PrivateKey
	if err := privKey.Unpack(k.SecretKey); err != nil {
		return nil, err
	}

	sharedSecret := make([]byte, MLKEMSharedKeySize)
	privKey.DecapsulateTo(sharedSecret, encapsulatedKey)

	return sharedSecret, nil
}
