package services

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// sniffLen is how much of a file http.DetectContentType looks at.
const sniffLen = 512

// StoredImage describes a file written by SaveImage.
type StoredImage struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size_bytes"`
	SHA256   string `json:"sha256"`
}

// SaveImage streams body into dir under a fresh name and returns the public
// /images URL for it. The type is taken from the leading bytes, not from
// whatever the client declared, and only common web image types are accepted.
func SaveImage(dir string, body io.Reader) (StoredImage, error) {
	buffered := bufio.NewReaderSize(body, sniffLen)
	head, err := buffered.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return StoredImage{}, WrapError(err, "read image")
	}
	if len(head) == 0 {
		return StoredImage{}, ErrBadRequest("File is empty")
	}
	ext, ok := imageExtensions[http.DetectContentType(head)]
	if !ok {
		return StoredImage{}, ErrBadRequest("Unsupported image type")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StoredImage{}, WrapError(err, "create images dir")
	}
	name := uuid.NewString() + ext
	target := filepath.Join(dir, name)

	file, err := os.Create(target)
	if err != nil {
		return StoredImage{}, WrapError(err, "create image")
	}
	hasher := sha256.New()
	size, err := io.Copy(io.MultiWriter(file, hasher), buffered)
	_ = file.Close()
	if err != nil {
		_ = os.Remove(target)
		return StoredImage{}, WrapError(err, "write image")
	}
	return StoredImage{
		Filename: name,
		URL:      "/images/" + name,
		Size:     size,
		SHA256:   hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}
