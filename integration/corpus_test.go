//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/vaultsandbox/stego"
)

var corpusDir string

func TestMain(m *testing.M) {
	// Load .env file if it exists (won't error if missing)
	if err := godotenv.Load("../.env"); err != nil {
		os.Stderr.WriteString("Note: .env file not found at project root\n")
	}

	corpusDir = os.Getenv("STEGO_CORPUS_DIR")
	if corpusDir == "" {
		os.Stderr.WriteString("Skipping integration tests: STEGO_CORPUS_DIR not set\n")
		os.Exit(0)
	}

	os.Stderr.WriteString("Running integration tests...\n")
	os.Stderr.WriteString("Corpus: " + corpusDir + "\n")

	os.Exit(m.Run())
}

func corpusFiles(t *testing.T) []string {
	t.Helper()

	entries, err := os.ReadDir(corpusDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, filepath.Join(corpusDir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Skip("corpus directory is empty")
	}
	return files
}

// TestCorpus_RoundTrip hides a message in every supported file of the corpus
// and reads it back from the written blob.
func TestCorpus_RoundTrip(t *testing.T) {
	codec := stego.New()
	keypair, err := stego.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}

	for _, path := range corpusFiles(t) {
		t.Run(filepath.Base(path), func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			cover, err := stego.LoadCover(path, "")
			if err != nil {
				t.Fatalf("LoadCover() error = %v", err)
			}

			capacity, err := codec.Capacity(ctx, cover)
			if errors.Is(err, stego.ErrUnsupportedType) || errors.Is(err, stego.ErrIO) {
				t.Skipf("not a usable cover (%s): %v", cover.ContentType, err)
			}
			if err != nil {
				t.Fatalf("Capacity() error = %v", err)
			}

			message := "integration round trip"
			if capacity < stego.PassphraseOverheadBits+len(message)*8 {
				t.Skipf("cover too small: %d bits", capacity)
			}

			blob, err := codec.Encode(ctx, cover, message, "integration-key")
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			out := filepath.Join(t.TempDir(), "out"+blob.Extension())
			if err := os.WriteFile(out, blob.Data, 0o600); err != nil {
				t.Fatal(err)
			}
			written, err := stego.LoadCover(out, blob.ContentType)
			if err != nil {
				t.Fatalf("LoadCover(blob) error = %v", err)
			}

			got, err := codec.Decode(ctx, written, "integration-key")
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got != message {
				t.Errorf("Decode() = %q, want %q", got, message)
			}

			if _, err := codec.Decode(ctx, written, "wrong-key"); !errors.Is(err, stego.ErrCrypto) {
				t.Errorf("Decode(wrong key) error = %v, want ErrCrypto", err)
			}

			if capacity < stego.SealedOverheadBits+len(message)*8 {
				return
			}
			sealed, err := codec.EncodeSealed(ctx, cover, message, keypair.PublicKey)
			if err != nil {
				t.Fatalf("EncodeSealed() error = %v", err)
			}
			got, err = codec.DecodeSealed(ctx, &stego.Cover{ContentType: sealed.ContentType, Data: sealed.Data}, keypair)
			if err != nil {
				t.Fatalf("DecodeSealed() error = %v", err)
			}
			if got != message {
				t.Errorf("DecodeSealed() = %q, want %q", got, message)
			}
		})
	}
}
