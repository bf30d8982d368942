package stego

import (
	"context"
	"errors"
	"fmt"

	"github.com/vaultsandbox/stego/internal/bitcodec"
	"github.com/vaultsandbox/stego/internal/crypto"
	"github.com/vaultsandbox/stego/internal/media"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrCapacity is returned when a message does not fit the cover.
	ErrCapacity = errors.New("message is too long for this cover")

	// ErrUnsupportedType is returned when a cover's content type has no adapter.
	ErrUnsupportedType = errors.New("unsupported content type")

	// ErrCrypto is returned when a payload cannot be authenticated or opened.
	ErrCrypto = errors.New("incorrect key or corrupted data")

	// ErrDecode is returned when hidden data is not valid text.
	ErrDecode = errors.New("hidden data is not valid text")

	// ErrEncode is returned when a payload cannot be framed.
	ErrEncode = errors.New("message too long to encode")

	// ErrIO is returned when a cover cannot be loaded.
	ErrIO = errors.New("cover could not be loaded")

	// ErrInvalidKeypair is returned when a keypair is malformed.
	ErrInvalidKeypair = errors.New("invalid keypair")
)

// StegoError is implemented by all errors returned from this package.
type StegoError interface {
	error
	StegoError() // marker method
}

// CapacityError reports a message that needs more carrier units than the
// cover provides. The cover is never modified when this is returned.
type CapacityError struct {
	Needed    int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("message is too long for this cover: need %d units, have %d", e.Needed, e.Available)
}

// StegoError implements the StegoError interface.
func (e *CapacityError) StegoError() {}

// Is implements errors.Is for sentinel error matching.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}

// UnsupportedTypeError reports a content type outside every adapter.
type UnsupportedTypeError struct {
	ContentType string
}

func (e *UnsupportedTypeError) Error() string {
	if e.ContentType == "" {
		return "unsupported content type: (empty)"
	}
	return fmt.Sprintf("unsupported content type: %s", e.ContentType)
}

// StegoError implements the StegoError interface.
func (e *UnsupportedTypeError) StegoError() {}

// Is implements errors.Is for sentinel error matching.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// CryptoError represents a failure to protect or open a payload.
// A wrong key and tampered data produce the same error.
type CryptoError struct {
	Message string
	Err     error
}

func (e *CryptoError) Error() string {
	if e.Message == "" {
		return ErrCrypto.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CryptoError) Unwrap() error {
	return e.Err
}

// StegoError implements the StegoError interface.
func (e *CryptoError) StegoError() {}

// Is implements errors.Is for sentinel error matching.
func (e *CryptoError) Is(target error) bool {
	return target == ErrCrypto
}

// DecodeError reports hidden data that is not valid UTF-8 text.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode failed: %v", e.Err)
	}
	return "decode failed"
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StegoError implements the StegoError interface.
func (e *DecodeError) StegoError() {}

// Is implements errors.Is for sentinel error matching.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// EncodeError reports a payload whose length cannot be framed.
type EncodeError struct {
	Message string
}

func (e *EncodeError) Error() string {
	return e.Message
}

// StegoError implements the StegoError interface.
func (e *EncodeError) StegoError() {}

// Is implements errors.Is for sentinel error matching.
func (e *EncodeError) Is(target error) bool {
	return target == ErrEncode
}

// IOError represents a cover that could not be read or parsed.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// StegoError implements the StegoError interface.
func (e *IOError) StegoError() {}

// Is implements errors.Is for sentinel error matching.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// wrapError converts internal errors to public error types.
func wrapError(err error, contentType string) error {
	if err == nil {
		return nil
	}

	// Already a public error.
	var se StegoError
	if errors.As(err, &se) {
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var capErr *media.CapacityError
	if errors.As(err, &capErr) {
		return &CapacityError{Needed: capErr.Needed, Available: capErr.Available}
	}

	switch {
	case errors.Is(err, media.ErrUnsupportedType):
		return &UnsupportedTypeError{ContentType: contentType}
	case errors.Is(err, media.ErrMessageTooLong):
		return &EncodeError{Message: "Message too long to encode"}
	case errors.Is(err, media.ErrCoverDecode):
		return &IOError{Op: "load cover", Err: err}
	case errors.Is(err, crypto.ErrDecryptionFailed):
		return &CryptoError{Message: "Incorrect key or corrupted data", Err: err}
	case errors.Is(err, crypto.ErrSealedPayload),
		errors.Is(err, crypto.ErrPassphrasePayload),
		errors.Is(err, crypto.ErrWeakKDF),
		errors.Is(err, crypto.ErrRandomSource),
		errors.Is(err, crypto.ErrInvalidPublicKeySize),
		errors.Is(err, crypto.ErrInvalidSecretKeySize),
		errors.Is(err, crypto.ErrInvalidCiphertextSize):
		return &CryptoError{Message: err.Error(), Err: err}
	case errors.Is(err, bitcodec.ErrInvalidUTF8):
		return &DecodeError{Err: err}
	}

	return err
}
