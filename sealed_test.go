package stego

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func generateKeypair(t *testing.T) *Keypair {
	t.Helper()
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}
	return kp
}

func TestGenerateKeypair(t *testing.T) {
	kp := generateKeypair(t)
	if len(kp.PublicKey) != 1184 {
		t.Errorf("len(PublicKey) = %d, want 1184", len(kp.PublicKey))
	}
	if len(kp.SecretKey) != 2400 {
		t.Errorf("len(SecretKey) = %d, want 2400", len(kp.SecretKey))
	}
	if kp.PublicKeyB64 != EncodeKey(kp.PublicKey) {
		t.Error("PublicKeyB64 does not match PublicKey")
	}
}

func TestKeypairFromSecretKey(t *testing.T) {
	kp := generateKeypair(t)

	restored, err := KeypairFromSecretKey(kp.SecretKey)
	if err != nil {
		t.Fatalf("KeypairFromSecretKey() error = %v", err)
	}
	if !bytes.Equal(restored.PublicKey, kp.PublicKey) {
		t.Error("restored public key differs")
	}

	_, err = KeypairFromSecretKey(kp.SecretKey[:100])
	if !errors.Is(err, ErrInvalidKeypair) {
		t.Errorf("KeypairFromSecretKey(short) error = %v, want ErrInvalidKeypair", err)
	}
	if !errors.Is(err, ErrCrypto) {
		t.Errorf("KeypairFromSecretKey(short) error = %v, want ErrCrypto", err)
	}
}

func TestParseKey(t *testing.T) {
	kp := generateKeypair(t)

	got, err := ParseKey("  " + EncodeKey(kp.PublicKey) + "\n")
	if err != nil {
		t.Fatalf("ParseKey() error = %v", err)
	}
	if !bytes.Equal(got, kp.PublicKey) {
		t.Error("ParseKey() did not round trip")
	}

	if _, err := ParseKey("not base64!!"); !errors.Is(err, ErrInvalidKeypair) {
		t.Errorf("ParseKey(invalid) error = %v, want ErrInvalidKeypair", err)
	}
}

func TestEncodeSealed_RoundTrip(t *testing.T) {
	c := newTestCodec()
	ctx := context.Background()
	kp := generateKeypair(t)

	blob, err := c.EncodeSealed(ctx, documentCover(12000), "for your eyes only", kp.PublicKey)
	if err != nil {
		t.Fatalf("EncodeSealed() error = %v", err)
	}

	msg, err := c.DecodeSealed(ctx, blobCover(blob), kp)
	if err != nil {
		t.Fatalf("DecodeSealed() error = %v", err)
	}
	if msg != "for your eyes only" {
		t.Errorf("DecodeSealed() = %q, want %q", msg, "for your eyes only")
	}
}

func TestDecodeSealed_WrongKeypair(t *testing.T) {
	c := newTestCodec()
	ctx := context.Background()

	blob, err := c.EncodeSealed(ctx, documentCover(12000), "hi", generateKeypair(t).PublicKey)
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.DecodeSealed(ctx, blobCover(blob), generateKeypair(t))
	if !errors.Is(err, ErrCrypto) {
		t.Errorf("DecodeSealed() error = %v, want ErrCrypto", err)
	}
}

func TestSealedAndPassphrase_DoNotMix(t *testing.T) {
	c := newTestCodec()
	ctx := context.Background()
	kp := generateKeypair(t)

	sealed, err := c.EncodeSealed(ctx, documentCover(12000), "sealed", kp.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Decode(ctx, blobCover(sealed), "pw"); !errors.Is(err, ErrCrypto) {
		t.Errorf("Decode(sealed) error = %v, want ErrCrypto", err)
	}

	protected, err := c.Encode(ctx, documentCover(1000), "protected", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.DecodeSealed(ctx, blobCover(protected), kp); !errors.Is(err, ErrCrypto) {
		t.Errorf("DecodeSealed(passphrase) error = %v, want ErrCrypto", err)
	}
}

func TestDecodeSealed_Plaintext(t *testing.T) {
	c := newTestCodec()
	ctx := context.Background()

	blob, err := c.Encode(ctx, documentCover(1000), "open note", "")
	if err != nil {
		t.Fatal(err)
	}

	msg, err := c.DecodeSealed(ctx, blobCover(blob), generateKeypair(t))
	if err != nil {
		t.Fatalf("DecodeSealed() error = %v", err)
	}
	if msg != "open note" {
		t.Errorf("DecodeSealed() = %q, want %q", msg, "open note")
	}
}

func TestEncodeSealed_InvalidPublicKey(t *testing.T) {
	_, err := newTestCodec().EncodeSealed(context.Background(), documentCover(12000), "hi", []byte("short"))
	if !errors.Is(err, ErrCrypto) {
		t.Errorf("EncodeSealed() error = %v, want ErrCrypto", err)
	}
}

func TestEncodeSealed_Capacity(t *testing.T) {
	kp := generateKeypair(t)
	units := LengthBits + SealedOverheadBits + 16

	c := newTestCodec()
	if _, err := c.EncodeSealed(context.Background(), documentCover(units), "hi", kp.PublicKey); err != nil {
		t.Fatalf("EncodeSealed() at capacity error = %v", err)
	}
	if _, err := c.EncodeSealed(context.Background(), documentCover(units-1), "hi", kp.PublicKey); !errors.Is(err, ErrCapacity) {
		t.Errorf("EncodeSealed() error = %v, want ErrCapacity", err)
	}
}

func TestDecodeSealed_InvalidKeypair(t *testing.T) {
	c := newTestCodec()
	tests := []struct {
		name string
		kp   *Keypair
	}{
		{"nil", nil},
		{"empty", &Keypair{}},
		{"mismatched public key", func() *Keypair {
			kp := *generateKeypair(t)
			kp.PublicKey = generateKeypair(t).PublicKey
			kp.PublicKeyB64 = ""
			return &kp
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.DecodeSealed(context.Background(), documentCover(100), tt.kp)
			if !errors.Is(err, ErrInvalidKeypair) {
				t.Errorf("DecodeSealed() error = %v, want ErrInvalidKeypair", err)
			}
		})
	}
}
