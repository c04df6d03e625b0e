package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRasterFillRectProducesOpaquePixel(t *testing.T) {
	r := NewRaster(20, 20)
	r.FillRect(2, 2, 10, 10, "#ff0000", 1)
	_, _, _, a := r.GetImageData(5, 5)
	assert.Greater(t, a, uint8(0))

	_, _, _, a = r.GetImageData(0, 0)
	assert.Equal(t, uint8(0), a)
}

func TestRasterSaveRestoreIsolatesTransform(t *testing.T) {
	r := NewRaster(20, 20)
	r.Save()
	r.Translate(100, 100)
	r.Restore()
	r.FillRect(2, 2, 5, 5, "#00ff00", 1)
	_, g, _, a := r.GetImageData(4, 4)
	assert.Greater(t, a, uint8(0))
	assert.Greater(t, g, uint8(0))
}
