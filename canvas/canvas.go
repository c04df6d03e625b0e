// Package canvas defines the abstract 2D drawing-context contract the
// scene engine renders through, and a software rasterizer backend for
// running the engine headless (hit-testing scratch canvases, tile
// export, and tests). The interface shape follows gogpu-gg's Context
// API (MoveTo/LineTo/BezierTo/Fill/Stroke/Translate/Scale/Rotate/Save/
// Restore), trimmed to exactly what the scene engine calls.
package canvas

// Context is the drawing surface the scene engine paints through. The
// host supplies a concrete implementation (an on-screen canvas, or the
// Raster software backend below); the engine never assumes more than
// this contract.
type Context interface {
	Save()
	Restore()

	Translate(x, y float32)
	Scale(x, y float32)
	Rotate(angleRad float32)

	BeginPath()
	MoveTo(x, y float32)
	LineTo(x, y float32)
	BezierCurveTo(c1x, c1y, c2x, c2y, x, y float32)
	QuadraticCurveTo(cx, cy, x, y float32)
	Arc(cx, cy, r, startRad, endRad float32, counterClockwise bool)
	ClosePath()

	SetFillStyle(color string, alpha float32)
	SetStrokeStyle(color string, alpha float32, width float32)
	Fill()
	Stroke()

	FillRect(x, y, w, h float32, color string, alpha float32)

	// FillRoundedRect fills a rounded rectangle directly, the same
	// convenience shape FillRect already provides for plain rects.
	// Grounded on gogpu-gg's Context.DrawRoundedRectangle.
	FillRoundedRect(x, y, w, h, radius float32, color string, alpha float32)

	// SetShadow configures the blurred drop shadow applied to the next
	// FillRoundedRect call, mirroring a host canvas's shadowColor/
	// shadowBlur state. blur is a Gaussian blur radius in pixels; a
	// blur of 0 disables the shadow.
	SetShadow(color string, alpha float32, blur float32)

	DrawImage(data []byte, width, height int, x, y, w, h float32)

	// GetImageData samples one pixel and returns its RGBA components in
	// [0,255] at the point (x,y).
	GetImageData(x, y float32) (r, g, b, a uint8)

	// DevicePixelRatio reports the backing-store scale, for the tile
	// extractor's device-pixel-ratio compensation.
	DevicePixelRatio() float32

	// Size reports the context's pixel width and height.
	Size() (width, height int)
}
