// Package tileextract implements the center-tile pixel grab used for the
// live "tile result" preview and for export encoders upstream. Grounded
// on canvas.Context.GetImageData/DevicePixelRatio as the only read path
// out of the drawing surface, and on github.com/anthonynsimon/bild for
// the downsample step that compensates for a higher-than-1x backing
// store without aliasing.
package tileextract

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/transform"

	"tileloom.dev/tileloom/canvas"
)

// Extractor copies the center tile's pixels out of a drawing context
// into a fixed-size raster.
type Extractor struct {
	// OutSize is the T in the T×T output raster.
	OutSize int
}

// NewExtractor returns an Extractor producing outSize×outSize tiles.
func NewExtractor(outSize int) *Extractor {
	return &Extractor{OutSize: outSize}
}

// Extract samples the tileSize×tileSize logical region of ctx starting
// at (originX, originY) and returns it as an OutSize×OutSize RGBA image.
// When the context's DevicePixelRatio is above 1, the region is
// oversampled at that ratio rounded up to a whole number and
// downsampled with a linear filter, so a
// retina backing store doesn't alias into the output tile.
func (ex *Extractor) Extract(ctx canvas.Context, originX, originY, tileSize float32) (*image.RGBA, error) {
	if ctx == nil {
		return nil, fmt.Errorf("tileextract: nil context")
	}
	if ex.OutSize <= 0 || tileSize <= 0 {
		return nil, fmt.Errorf("tileextract: invalid size (out=%d, tile=%v)", ex.OutSize, tileSize)
	}

	dpr := ctx.DevicePixelRatio()
	if dpr < 1 {
		dpr = 1
	}
	oversample := int(math.Ceil(float64(dpr)))
	sampleSize := ex.OutSize * oversample

	raw := image.NewRGBA(image.Rect(0, 0, sampleSize, sampleSize))
	step := tileSize / float32(sampleSize)
	for j := 0; j < sampleSize; j++ {
		y := originY + (float32(j)+0.5)*step
		for i := 0; i < sampleSize; i++ {
			x := originX + (float32(i)+0.5)*step
			r, g, b, a := ctx.GetImageData(x, y)
			raw.SetRGBA(i, j, color.RGBA{R: r, G: g, B: b, A: a})
		}
	}

	if oversample == 1 {
		return raw, nil
	}
	return transform.Resize(raw, ex.OutSize, ex.OutSize, transform.Linear), nil
}
