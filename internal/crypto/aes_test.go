package crypto

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func randomBytes(t testing.TB, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestEncryptAES_DecryptAES_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty", []byte{}},
		{"text", []byte("hidden in plain sight")},
		{"binary", []byte{0x00, 0xff, 0x7f, 0x80}},
		{"large", make([]byte, 4096)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := randomBytes(t, AESKeySize)
			nonce := randomBytes(t, AESNonceSize)

			sealed, err := EncryptAES(key, tt.plaintext, nonce)
			if err != nil {
				t.Fatalf("EncryptAES() error = %v", err)
			}
			if want := AESNonceSize + len(tt.plaintext) + AESTagSize; len(sealed) != want {
				t.Errorf("len(sealed) = %d, want %d", len(sealed), want)
			}
			if !bytes.Equal(sealed[:AESNonceSize], nonce) {
				t.Error("sealed output does not start with nonce")
			}

			got, err := DecryptAES(key, sealed)
			if err != nil {
				t.Fatalf("DecryptAES() error = %v", err)
			}
			if !bytes.Equal(got, tt.plaintext) {
				t.Errorf("DecryptAES() = %x, want %x", got, tt.plaintext)
			}
		})
	}
}

func TestEncryptAES_InvalidSizes(t *testing.T) {
	tests := []struct {
		name    string
		key     []byte
		nonce   []byte
		wantErr error
	}{
		{"short key", make([]byte, 16), make([]byte, AESNonceSize), ErrInvalidKeySize},
		{"long key", make([]byte, 64), make([]byte, AESNonceSize), ErrInvalidKeySize},
		{"short nonce", make([]byte, AESKeySize), make([]byte, 8), ErrInvalidNonceSize},
		{"empty nonce", make([]byte, AESKeySize), nil, ErrInvalidNonceSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncryptAES(tt.key, []byte("x"), tt.nonce)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDecryptAES_Failures(t *testing.T) {
	key := randomBytes(t, AESKeySize)
	sealed, err := EncryptAES(key, []byte("sensitive data"), randomBytes(t, AESNonceSize))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("tampered", func(t *testing.T) {
		tampered := append([]byte(nil), sealed...)
		tampered[len(tampered)/2] ^= 0x01
		if _, err := DecryptAES(key, tampered); !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("expected ErrDecryptionFailed, got %v", err)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		if _, err := DecryptAES(randomBytes(t, AESKeySize), sealed); !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("expected ErrDecryptionFailed, got %v", err)
		}
	})

	t.Run("too short", func(t *testing.T) {
		if _, err := DecryptAES(key, sealed[:AESNonceSize+AESTagSize-1]); !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("expected ErrDecryptionFailed, got %v", err)
		}
	})

	t.Run("bad key size", func(t *testing.T) {
		if _, err := DecryptAES(key[:16], sealed); !errors.Is(err, ErrInvalidKeySize) {
			t.Errorf("expected ErrInvalidKeySize, got %v", err)
		}
	})
}

func TestAESGCM_AADBinding(t *testing.T) {
	key := randomBytes(t, AESKeySize)
	nonce := randomBytes(t, AESNonceSize)

	ct, err := encryptAESGCM(key, nonce, []byte("aad-1"), []byte("payload"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := decryptAESGCM(key, nonce, []byte("aad-1"), ct); err != nil {
		t.Fatalf("decryptAESGCM() with matching AAD error = %v", err)
	}
	if _, err := decryptAESGCM(key, nonce, []byte("aad-2"), ct); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed for mismatched AAD, got %v", err)
	}
}

func BenchmarkEncryptAES(b *testing.B) {
	key := randomBytes(b, AESKeySize)
	nonce := randomBytes(b, AESNonceSize)
	plaintext := randomBytes(b, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = EncryptAES(key, plaintext, nonce)
	}
}
