// Package crypto provides the cryptographic envelopes for hidden payloads.
//
// # Formats
//
// A payload is identified by its first four bytes:
//
//   - "STG2": passphrase envelope. A 256-bit key is derived from the
//     passphrase with PBKDF2-HMAC-SHA-256 over a random 16-byte salt, and the
//     message is sealed with AES-256-GCM under a random 96-bit nonce.
//     Layout: signature || salt || nonce || ciphertext || tag.
//
//   - "STGK": sealed envelope. The message is sealed to an ML-KEM-768 public
//     key (NIST FIPS 203); the AES-256-GCM key is derived from the KEM shared
//     secret with HKDF-SHA-512. Layout: signature || ct_kem || nonce ||
//     ciphertext || tag.
//
//   - anything else: legacy UTF-8 plaintext with no framing.
//
// Signature detection always happens before any cryptographic attempt. Once
// a signature matches, decryption is mandatory: an authentication failure is
// reported as [ErrDecryptionFailed] and never downgraded to plaintext.
//
// # Randomness and key derivation
//
// Salt, nonce and encapsulation seeds come from an injectable io.Reader
// (crypto/rand by default). The PBKDF2 iteration count is not stored in the
// envelope, so a custom [KeyDeriver] must be used on both sides.
package crypto
