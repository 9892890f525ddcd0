package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHead  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	jpegHead = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}
	gifHead  = []byte("GIF89a\x00\x00")
)

func TestValidateImageBySniffAcceptsKnownFormats(t *testing.T) {
	tests := []struct {
		filename string
		head     []byte
		wantMime string
	}{
		{"cover.png", pngHead, "image/png"},
		{"cover.jpg", jpegHead, "image/jpeg"},
		{"cover.jpeg", jpegHead, "image/jpeg"},
		{"cover.gif", gifHead, "image/gif"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			mime, err := ValidateImageBySniff(tt.filename, tt.head)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMime, mime)
		})
	}
}

func TestValidateImageBySniffRejectsBadExtension(t *testing.T) {
	_, err := ValidateImageBySniff("cover.svg", pngHead)
	assert.Error(t, err)

	_, err = ValidateImageBySniff("cover.pdf", pngHead)
	assert.Error(t, err)
}

func TestValidateImageBySniffRejectsContentMismatch(t *testing.T) {
	// png extension, html payload
	_, err := ValidateImageBySniff("cover.png", []byte("<html><body>hi</body></html>"))
	assert.Error(t, err)

	// png extension, plain text payload
	_, err = ValidateImageBySniff("cover.png", []byte("just some text, nothing more"))
	assert.Error(t, err)
}
