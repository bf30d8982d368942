package stego

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for codec operations.
var (
	SignalEncodeStart    = capitan.NewSignal("stego.encode.start", "Encode operation beginning")
	SignalEncodeComplete = capitan.NewSignal("stego.encode.complete", "Encode operation finished")
	SignalDecodeStart    = capitan.NewSignal("stego.decode.start", "Decode operation beginning")
	SignalDecodeComplete = capitan.NewSignal("stego.decode.complete", "Decode operation finished")
)

// Keys for signal fields.
var (
	KeyContentType = capitan.NewStringKey("content_type")
	KeyKind        = capitan.NewStringKey("kind")
	KeyFormat      = capitan.NewStringKey("format")
	KeyCoverSize   = capitan.NewIntKey("cover_size")
	KeyPayloadBits = capitan.NewIntKey("payload_bits")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitEncodeStart emits an event when encode begins.
func emitEncodeStart(ctx context.Context, contentType string, coverSize int) {
	capitan.Emit(ctx, SignalEncodeStart,
		KeyContentType.Field(contentType),
		KeyCoverSize.Field(coverSize),
	)
}

// emitEncodeComplete emits an event when encode finishes.
func emitEncodeComplete(ctx context.Context, contentType, kind, format string, payloadBits int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyKind.Field(kind),
		KeyFormat.Field(format),
		KeyPayloadBits.Field(payloadBits),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}

// emitDecodeStart emits an event when decode begins.
func emitDecodeStart(ctx context.Context, contentType string, coverSize int) {
	capitan.Emit(ctx, SignalDecodeStart,
		KeyContentType.Field(contentType),
		KeyCoverSize.Field(coverSize),
	)
}

// emitDecodeComplete emits an event when decode finishes.
func emitDecodeComplete(ctx context.Context, contentType, kind, format string, payloadBits int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyKind.Field(kind),
		KeyFormat.Field(format),
		KeyPayloadBits.Field(payloadBits),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}
