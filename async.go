package stego

import "context"

// EncodeResult is the outcome of an asynchronous encode.
type EncodeResult struct {
	Blob *Blob
	Err  error
}

// DecodeResult is the outcome of an asynchronous decode.
type DecodeResult struct {
	Message string
	Err     error
}

// EncodeAsync runs Encode in a new goroutine. The returned channel yields
// exactly one result and is then closed. The result is buffered, so callers
// may abandon the channel without leaking the goroutine.
func (c *Codec) EncodeAsync(ctx context.Context, cover *Cover, message, key string) <-chan EncodeResult {
	ch := make(chan EncodeResult, 1)
	go func() {
		defer close(ch)
		blob, err := c.Encode(ctx, cover, message, key)
		ch <- EncodeResult{Blob: blob, Err: err}
	}()
	return ch
}

// DecodeAsync runs Decode in a new goroutine. The returned channel yields
// exactly one result and is then closed.
func (c *Codec) DecodeAsync(ctx context.Context, cover *Cover, key string) <-chan DecodeResult {
	ch := make(chan DecodeResult, 1)
	go func() {
		defer close(ch)
		msg, err := c.Decode(ctx, cover, key)
		ch <- DecodeResult{Message: msg, Err: err}
	}()
	return ch
}
