// Package stego hides short text messages inside image, audio, video and
// document files by rewriting the least-significant bit of successive
// carrier units, and recovers them again.
//
// Messages can be stored as plaintext, under a passphrase (PBKDF2-HMAC-SHA-256
// and AES-256-GCM), or sealed to a recipient's ML-KEM-768 public key.
//
// Basic usage:
//
//	cover, err := stego.LoadCover("photo.png", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	blob, err := stego.Encode(ctx, cover, "meet at noon", "pw123")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// blob.Data is a PNG carrying the message.
//	msg, err := stego.Decode(ctx, &stego.Cover{ContentType: blob.ContentType, Data: blob.Data}, "pw123")
//
// Image covers are decoded to an RGBA raster and always written back as PNG.
// Audio covers must be PCM WAVE and are written back as 16-bit WAVE. Video
// and document covers are modified in place, byte for byte, so any lossy
// re-encoding of the output destroys the message.
package stego
