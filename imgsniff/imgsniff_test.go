package imgsniff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

var jpegSignature = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}

func TestSniffRecognizesPNG(t *testing.T) {
	mime, err := Sniff(pngSignature)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
}

func TestSniffRecognizesJPEG(t *testing.T) {
	mime, err := Sniff(jpegSignature)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
}

func TestSniffRejectsUnrecognizedBytes(t *testing.T) {
	_, err := Sniff([]byte("not an image"))
	assert.Error(t, err)
}

func TestIsSupportedMatchesSniff(t *testing.T) {
	assert.True(t, IsSupported(pngSignature))
	assert.False(t, IsSupported([]byte("garbage")))
}
