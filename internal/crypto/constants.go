package crypto

const (
	// SignatureSize is the size of a payload format signature in bytes.
	SignatureSize = 4

	// SaltSize is the size of the PBKDF2 salt in bytes.
	SaltSize = 16

	// PBKDF2Iterations is the iteration count used for passphrase envelopes.
	// The count is not stored in the envelope, so encoder and decoder must agree.
	PBKDF2Iterations = 100000
	// MinPBKDF2Iterations is the lowest iteration count a KeyDeriver may use.
	MinPBKDF2Iterations = 10000

	// HKDFContext is the context string used in HKDF key derivation
	// for sealed payloads.
	HKDFContext = "vaultsandbox:stego:v1"

	// MLKEMPublicKeySize is the size of an ML-KEM-768 public key in bytes.
	MLKEMPublicKeySize = 1184
	// MLKEMSecretKeySize is the size of an ML-KEM-768 secret key in bytes.
	MLKEMSecretKeySize = 2400
	// MLKEMCiphertextSize is the size of an ML-KEM-768 ciphertext in bytes.
	MLKEMCiphertextSize = 1088
	// MLKEMSharedKeySize is the size of the shared secret from ML-KEM-768 in bytes.
	MLKEMSharedKeySize = 32

	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESNonceSize is the size of an AES-GCM nonce in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16

	// PublicKeyOffset is the byte offset where the public key is embedded
	// within an ML-KEM-768 secret key.
	PublicKeyOffset = 1152
)

// Payload format signatures. Anything that does not start with one of these
// is a legacy plaintext payload.
var (
	// PassphraseSignature marks a version 2 passphrase envelope:
	// signature || salt(16) || nonce(12) || ciphertext || tag(16).
	PassphraseSignature = [SignatureSize]byte{'S', 'T', 'G', '2'}

	// SealedSignature marks a payload sealed to an ML-KEM-768 public key:
	// signature || ct_kem(1088) || nonce(12) || ciphertext || tag(16).
	SealedSignature = [SignatureSize]byte{'S', 'T', 'G', 'K'}
)

// AlgsCiphersuite describes the algorithms used by each envelope format.
var AlgsCiphersuite = map[Format]string{
	FormatPassphrase: "PBKDF2-HMAC-SHA-256:AES-256-GCM",
	FormatSealed:     "ML-KEM-768:HKDF-SHA-512:AES-256-GCM",
}
