package tileextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tileloom.dev/tileloom/canvas"
)

func TestExtractProducesRequestedSize(t *testing.T) {
	r := canvas.NewRaster(64, 64)
	r.FillRect(0, 0, 64, 64, "#ff0000", 1)

	ex := NewExtractor(16)
	img, err := ex.Extract(r, 0, 0, 64)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
}

func TestExtractSamplesFillColor(t *testing.T) {
	r := canvas.NewRaster(32, 32)
	r.FillRect(0, 0, 32, 32, "#00ff00", 1)

	ex := NewExtractor(8)
	img, err := ex.Extract(r, 0, 0, 32)
	require.NoError(t, err)

	c := img.RGBAAt(4, 4)
	assert.Equal(t, uint8(0), c.R)
	assert.Greater(t, c.G, uint8(0))
}

func TestExtractRejectsInvalidSizes(t *testing.T) {
	r := canvas.NewRaster(8, 8)
	ex := NewExtractor(0)
	_, err := ex.Extract(r, 0, 0, 8)
	assert.Error(t, err)

	ex2 := NewExtractor(8)
	_, err = ex2.Extract(r, 0, 0, 0)
	assert.Error(t, err)
}

func TestExtractRejectsNilContext(t *testing.T) {
	ex := NewExtractor(4)
	_, err := ex.Extract(nil, 0, 0, 4)
	assert.Error(t, err)
}
