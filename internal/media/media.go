// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package media turns uploaded files into self-contained data URI payloads.
// Files are sniffed rather than trusted by extension, raster images are
// checked for a readable header, and batches are decoded concurrently while
// keeping the input order.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	_ "golang.org/x/image/webp" // register WebP decoder

	"db3dgallery/internal/models"
)

const (
	// maxImagePixels caps declared dimensions to reject decompression bombs.
	maxImagePixels = 100_000_000

	// sniffLen is how many bytes http.DetectContentType looks at.
	sniffLen = 512
)

var (
	// ErrDecode is returned when a file cannot be read or is not a valid
	// image/video for its slot.
	ErrDecode = errors.New("media decode failed")

	// ErrUnsupportedType is returned when the sniffed type is not accepted
	// for the media class.
	ErrUnsupportedType = errors.New("unsupported media type")

	// ErrEmpty is returned for zero-byte uploads.
	ErrEmpty = errors.New("empty file")
)

// decodableTypes are the raster formats whose header we can validate.
var decodableTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// Upload is a file selected by the admin.
type Upload struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// FromFileHeader adapts a multipart file header.
func FromFileHeader(fh *multipart.FileHeader) Upload {
	return Upload{
		Name: fh.Filename,
		Size: fh.Size,
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}
}

// FromBytes wraps in-memory content as an Upload.
func FromBytes(name string, data []byte) Upload {
	return Upload{
		Name: name,
		Size: int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// Encode reads the whole upload and returns it as a base64 data URI.
// The content type is sniffed and must be accepted by class.
func Encode(u Upload, class models.MediaClass) (string, error) {
	if u.Open == nil {
		return "", fmt.Errorf("%w: %s: no content", ErrDecode, u.Name)
	}
	rc, err := u.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %w", ErrDecode, u.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrDecode, u.Name, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s: %w", ErrDecode, u.Name, ErrEmpty)
	}

	contentType := DetectType(u.Name, data)
	if !class.Accepts(contentType) {
		return "", fmt.Errorf("%w: %q for %s (%s)", ErrUnsupportedType, contentType, class, u.Name)
	}

	if decodableTypes[contentType] {
		if err := checkImage(data); err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrDecode, u.Name, err)
		}
	}

	return DataURI(contentType, data), nil
}

// DataURI formats data the way a browser FileReader does.
func DataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DetectType sniffs the content type of data. SVG files are sniffed as XML
// or text, so the filename decides for those.
func DetectType(name string, data []byte) string {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	contentType := http.DetectContentType(head)
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}

	if strings.HasSuffix(strings.ToLower(name), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		return "image/svg+xml"
	}
	return contentType
}

// checkImage decodes the image header and rejects absurd dimensions.
func checkImage(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return fmt.Errorf("image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, maxImagePixels)
	}
	return nil
}
