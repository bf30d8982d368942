package crypto

import "errors"

var (
	// ErrInvalidSecretKeySize is returned when the secret key size is invalid.
	ErrInvalidSecretKeySize = errors.New("invalid secret key size")

	// ErrInvalidPublicKeySize is returned when the public key size is invalid.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrInvalidCiphertextSize is returned when the ciphertext size is invalid.
	ErrInvalidCiphertextSize = errors.New("invalid ciphertext size")

	// ErrDecryptionFailed is returned when authenticated decryption fails.
	// A wrong key and tampered data are indistinguishable.
	ErrDecryptionFailed = errors.New("incorrect key or corrupted data")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrWeakKDF is returned when a key deriver is configured below
	// MinPBKDF2Iterations.
	ErrWeakKDF = errors.New("key derivation iterations below minimum")

	// ErrSealedPayload is returned when a passphrase is used on a payload
	// sealed to a recipient key.
	ErrSealedPayload = errors.New("payload is sealed to a recipient key")

	// ErrPassphrasePayload is returned when a recipient key is used on a
	// passphrase-protected payload.
	ErrPassphrasePayload = errors.New("payload is protected by a passphrase")

	// ErrRandomSource is returned when the random source fails.
	ErrRandomSource = errors.New("random source failed")
)
