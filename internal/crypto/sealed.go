package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/cloudflare/circl/kem/mlkem/mlkem768"

	"github.com/vaultsandbox/stego/internal/bitcodec"
)

// Seal encrypts message to an ML-KEM-768 public key and returns the payload
// as bits: signature || ct_kem || nonce || ciphertext || tag.
//
// The process:
//  1. ML-KEM-768 encapsulation against publicKey
//  2. HKDF-SHA-512 key derivation over the shared secret and KEM ciphertext
//  3. AES-256-GCM encryption with the signature as AAD
//
// A nil random source uses crypto/rand.
func Seal(random io.Reader, message string, publicKey []byte) (bitcodec.Bits, error) {
	if len(publicKey) != MLKEMPublicKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidPublicKeySize, len(publicKey), MLKEMPublicKeySize)
	}
	if random == nil {
		random = rand.Reader
	}

	var pubKey mlkem768.PublicKey
	if err := pubKey.Unpack(publicKey); err != nil {
		return nil, fmt.Errorf("unmarshal public key: %w", err)
	}

	seed := make([]byte, mlkem768.EncapsulationSeedSize)
	if _, err := io.ReadFull(random, seed); err != nil {
		return nil, fmt.Errorf("%w: encapsulation seed: %w", ErrRandomSource, err)
	}

	ctKem := make([]byte, MLKEMCiphertextSize)
	sharedSecret := make([]byte, MLKEMSharedKeySize)
	pubKey.EncapsulateTo(ctKem, sharedSecret, seed)

	aad := SealedSignature[:]
	aesKey, err := deriveSealedKey(sharedSecret, aad, ctKem)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	nonce := make([]byte, AESNonceSize)
	if _, err := io.ReadFull(random, nonce); err != nil {
		return nil, fmt.Errorf("%w: nonce: %w", ErrRandomSource, err)
	}

	ciphertext, err := encryptAESGCM(aesKey, nonce, aad, []byte(message))
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}

	out := make([]byte, 0, SignatureSize+MLKEMCiphertextSize+AESNonceSize+len(ciphertext))
	out = append(out, SealedSignature[:]...)
	out = append(out, ctKem...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	return bitcodec.BytesToBits(out), nil
}

// Open recovers a message sealed with Seal.
//
// Legacy plaintext payloads are decoded directly. Passphrase envelopes return
// ErrPassphrasePayload. A wrong keypair or tampered payload returns
// ErrDecryptionFailed.
func Open(bits bitcodec.Bits, keypair *Keypair) (string, error) {
	switch Detect(bits) {
	case FormatLegacy:
		return bitcodec.BitsToText(bits)
	case FormatPassphrase:
		return "", ErrPassphrasePayload
	}

	data := bitcodec.BitsToBytes(bits)[SignatureSize:]
	if len(bits)%8 != 0 || len(data) < MLKEMCiphertextSize+AESNonceSize+AESTagSize {
		return "", fmt.Errorf("%w: malformed sealed payload", ErrDecryptionFailed)
	}

	ctKem := data[:MLKEMCiphertextSize]
	nonce := data[MLKEMCiphertextSize : MLKEMCiphertextSize+AESNonceSize]
	ciphertext := data[MLKEMCiphertextSize+AESNonceSize:]

	sharedSecret, err := keypair.Decapsulate(ctKem)
	if err != nil {
		return "", fmt.Errorf("decapsulate: %w", err)
	}

	aad := SealedSignature[:]
	aesKey, err := deriveSealedKey(sharedSecret, aad, ctKem)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	plaintext, err := decryptAESGCM(aesKey, nonce, aad, ciphertext)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(plaintext) {
		return "", bitcodec.ErrInvalidUTF8
	}
	return string(plaintext), nil
}
