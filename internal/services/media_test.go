package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pngHeader  = "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"
	jpegHeader = "\xff\xd8\xff\xe0\x00\x10JFIF\x00"
)

func TestSaveImage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	content := jpegHeader + strings.Repeat("x", 2048)

	stored, err := SaveImage(dir, strings.NewReader(content))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored.Filename, ".jpg"))
	assert.Equal(t, "/images/"+stored.Filename, stored.URL)
	assert.EqualValues(t, len(content), stored.Size)
	assert.Len(t, stored.SHA256, 64)

	raw, err := os.ReadFile(filepath.Join(dir, stored.Filename))
	require.NoError(t, err)
	assert.Equal(t, content, string(raw))
}

func TestSaveImageDetectsType(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		content string
		ext     string
	}{
		{pngHeader, ".png"},
		{"GIF89a\x01\x00\x01\x00", ".gif"},
		{"RIFF\x00\x00\x00\x00WEBPVP8 ", ".webp"},
	}
	for _, tt := range tests {
		stored, err := SaveImage(dir, strings.NewReader(tt.content))
		require.NoError(t, err, tt.ext)
		assert.Equal(t, tt.ext, filepath.Ext(stored.Filename))
		assert.EqualValues(t, len(tt.content), stored.Size)
	}
}

func TestSaveImageRejects(t *testing.T) {
	dir := t.TempDir()

	_, err := SaveImage(dir, strings.NewReader("<html><script>alert(1)</script>"))
	assert.Equal(t, 400, StatusOf(err))
	assert.EqualError(t, err, "Unsupported image type")

	_, err = SaveImage(dir, strings.NewReader("plain text pretending to be a png"))
	assert.EqualError(t, err, "Unsupported image type")

	_, err = SaveImage(dir, strings.NewReader(""))
	assert.Equal(t, 400, StatusOf(err))
	assert.EqualError(t, err, "File is empty")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
