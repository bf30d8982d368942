package stego

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Cover is a host file that carries a hidden message.
type Cover struct {
	// Name is informational; it is used to guess ContentType when loading.
	Name string
	// ContentType selects the adapter, e.g. "image/png" or "audio/wav".
	ContentType string
	// Data is the raw file content. It is never modified.
	Data []byte
}

// Blob is a modified cover produced by Encode.
type Blob struct {
	// ContentType is image/png for images, audio/wav for audio and the
	// cover's own type for video and documents.
	ContentType string
	Data        []byte
}

// Extension returns the file extension conventionally used for the blob.
func (b *Blob) Extension() string {
	if ext, ok := typeExtensions[strings.ToLower(b.ContentType)]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(b.ContentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}

// extensionTypes covers the types mime.TypeByExtension does not know on a
// bare system.
var extensionTypes = map[string]string{
	".wav":  "audio/wav",
	".wave": "audio/wav",
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".txt":  "text/plain",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

var typeExtensions = map[string]string{
	"image/png":       ".png",
	"audio/wav":       ".wav",
	"video/mp4":       ".mp4",
	"text/plain":      ".txt",
	"application/pdf": ".pdf",
}

// DetectContentType guesses a content type from a file name, falling back
// to sniffing the first bytes of data.
func DetectContentType(name string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := extensionTypes[ext]; ok {
		return ct
	}
	if ext != "" {
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
	}
	return http.DetectContentType(data)
}

// LoadCover reads a cover from disk. An empty contentType is detected from
// the file name and content.
func LoadCover(path, contentType string) (*Cover, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read cover", Err: err}
	}
	if contentType == "" {
		contentType = DetectContentType(path, data)
	}
	return &Cover{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func validateCover(cover *Cover) error {
	if cover == nil {
		return &IOError{Op: "load cover", Err: fmt.Errorf("nil cover")}
	}
	return nil
}
