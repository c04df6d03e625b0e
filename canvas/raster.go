package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"golang.org/x/image/vector"

	"tileloom.dev/tileloom/xmath"
)

var _ Context = (*Raster)(nil)

// Raster is a software Context backend over golang.org/x/image/vector's
// scanline rasterizer, used for headless rendering: the hit-tester's
// scratch canvases, tile extraction, and anywhere the host doesn't
// supply a native 2D surface.
type Raster struct {
	img   *image.RGBA
	state []rasterState
	cur   rasterState

	path    []xmath.Vector2
	subpath []xmath.Vector2
	started bool
}

type rasterState struct {
	m           xmath.Matrix2
	fillColor   color.RGBA
	strokeColor color.RGBA
	strokeWidth float32
	shadowColor color.RGBA
	shadowBlur  float32
}

// NewRaster returns a Raster backend of the given pixel size, with a
// transparent backing image.
func NewRaster(width, height int) *Raster {
	return &Raster{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		cur: rasterState{m: xmath.Identity2(), strokeWidth: 1, fillColor: color.RGBA{A: 255}},
	}
}

// Image returns the backing RGBA image.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Save()    { r.state = append(r.state, r.cur) }
func (r *Raster) Restore() {
	if len(r.state) == 0 {
		return
	}
	r.cur = r.state[len(r.state)-1]
	r.state = r.state[:len(r.state)-1]
}

func (r *Raster) Translate(x, y float32) { r.cur.m = r.cur.m.Translate(x, y) }
func (r *Raster) Scale(x, y float32)     { r.cur.m = r.cur.m.Scale(x, y) }
func (r *Raster) Rotate(a float32)       { r.cur.m = r.cur.m.Rotate(a) }

func (r *Raster) BeginPath() {
	r.path = nil
	r.subpath = nil
	r.started = false
}

func (r *Raster) flushSubpath() {
	if len(r.subpath) > 0 {
		r.path = append(r.path, r.subpath...)
		r.subpath = nil
	}
}

func (r *Raster) MoveTo(x, y float32) {
	r.flushSubpath()
	r.subpath = append(r.subpath, r.cur.m.MulPoint(xmath.Vec2(x, y)))
	r.started = true
}

func (r *Raster) LineTo(x, y float32) {
	if !r.started {
		r.MoveTo(x, y)
		return
	}
	r.subpath = append(r.subpath, r.cur.m.MulPoint(xmath.Vec2(x, y)))
}

func (r *Raster) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float32) {
	if len(r.subpath) == 0 {
		r.MoveTo(x, y)
		return
	}
	p0 := r.subpath[len(r.subpath)-1]
	p1 := r.cur.m.MulPoint(xmath.Vec2(c1x, c1y))
	p2 := r.cur.m.MulPoint(xmath.Vec2(c2x, c2y))
	p3 := r.cur.m.MulPoint(xmath.Vec2(x, y))
	const steps = 24
	for i := 1; i <= steps; i++ {
		t := float32(i) / steps
		r.subpath = append(r.subpath, cubicPoint(p0, p1, p2, p3, t))
	}
}

func (r *Raster) QuadraticCurveTo(cx, cy, x, y float32) {
	if len(r.subpath) == 0 {
		r.MoveTo(x, y)
		return
	}
	p0 := r.subpath[len(r.subpath)-1]
	p1 := r.cur.m.MulPoint(xmath.Vec2(cx, cy))
	p2 := r.cur.m.MulPoint(xmath.Vec2(x, y))
	c1 := p0.Add(p1.Sub(p0).MulScalar(2.0 / 3.0))
	c2 := p2.Add(p1.Sub(p2).MulScalar(2.0 / 3.0))
	r.BezierCurveTo(c1.X, c1.Y, c2.X, c2.Y, x, y)
}

func (r *Raster) Arc(cx, cy, radius, start, end float32, ccw bool) {
	const steps = 48
	span := end - start
	if ccw && span > 0 {
		span -= 2 * math.Pi
	} else if !ccw && span < 0 {
		span += 2 * math.Pi
	}
	for i := 0; i <= steps; i++ {
		t := start + span*float32(i)/steps
		x := cx + radius*float32(math.Cos(float64(t)))
		y := cy + radius*float32(math.Sin(float64(t)))
		r.LineTo(x, y)
	}
}

func (r *Raster) ClosePath() {
	if len(r.subpath) > 0 {
		r.subpath = append(r.subpath, r.subpath[0])
	}
}

func (r *Raster) SetFillStyle(hex string, alpha float32) {
	r.cur.fillColor = hexToRGBA(hex, alpha)
}

func (r *Raster) SetStrokeStyle(hex string, alpha float32, width float32) {
	r.cur.strokeColor = hexToRGBA(hex, alpha)
	r.cur.strokeWidth = width
}

func (r *Raster) Fill() {
	r.flushSubpath()
	if len(r.path) < 3 {
		return
	}
	z := vector.NewRasterizer(r.img.Bounds().Dx(), r.img.Bounds().Dy())
	z.MoveTo(r.path[0].X, r.path[0].Y)
	for _, p := range r.path[1:] {
		z.LineTo(p.X, p.Y)
	}
	z.ClosePath()
	src := image.NewUniform(r.cur.fillColor)
	z.Draw(r.img, r.img.Bounds(), src, image.Point{})
}

// Stroke approximates a stroked path by filling a thin ribbon along each
// segment with the configured width; acceptable for headless hit-testing
// and tile export, which only need "is this pixel opaque", not
// pixel-identical joins to a native renderer.
func (r *Raster) Stroke() {
	r.flushSubpath()
	if len(r.path) < 2 {
		return
	}
	halfW := r.cur.strokeWidth / 2
	if halfW <= 0 {
		halfW = 0.5
	}
	z := vector.NewRasterizer(r.img.Bounds().Dx(), r.img.Bounds().Dy())
	for i := 0; i < len(r.path)-1; i++ {
		a, b := r.path[i], r.path[i+1]
		dir := b.Sub(a)
		n := dir.Normal().Rot90CCW().MulScalar(halfW)
		quad := [4]xmath.Vector2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
		z.MoveTo(quad[0].X, quad[0].Y)
		for _, p := range quad[1:] {
			z.LineTo(p.X, p.Y)
		}
		z.ClosePath()
	}
	src := image.NewUniform(r.cur.strokeColor)
	z.Draw(r.img, r.img.Bounds(), src, image.Point{})
}

func (r *Raster) FillRect(x, y, w, h float32, hex string, alpha float32) {
	p0 := r.cur.m.MulPoint(xmath.Vec2(x, y))
	p1 := r.cur.m.MulPoint(xmath.Vec2(x+w, y))
	p2 := r.cur.m.MulPoint(xmath.Vec2(x+w, y+h))
	p3 := r.cur.m.MulPoint(xmath.Vec2(x, y+h))
	z := vector.NewRasterizer(r.img.Bounds().Dx(), r.img.Bounds().Dy())
	z.MoveTo(p0.X, p0.Y)
	z.LineTo(p1.X, p1.Y)
	z.LineTo(p2.X, p2.Y)
	z.LineTo(p3.X, p3.Y)
	z.ClosePath()
	z.Draw(r.img, r.img.Bounds(), image.NewUniform(hexToRGBA(hex, alpha)), image.Point{})
}

// SetShadow configures the drop shadow applied by the next
// FillRoundedRect call. A blur of 0 (or below) disables the shadow.
func (r *Raster) SetShadow(hex string, alpha float32, blurRadius float32) {
	r.cur.shadowColor = hexToRGBA(hex, alpha)
	r.cur.shadowBlur = blurRadius
}

// FillRoundedRect fills a rounded rectangle, painting a Gaussian-blurred
// shadow copy behind it first if a shadow is configured via SetShadow.
func (r *Raster) FillRoundedRect(x, y, w, h, radius float32, hex string, alpha float32) {
	pts := r.roundedRectPoints(x, y, w, h, radius)
	if r.cur.shadowBlur > 0 {
		r.paintShadow(pts)
	}
	z := vector.NewRasterizer(r.img.Bounds().Dx(), r.img.Bounds().Dy())
	z.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		z.LineTo(p.X, p.Y)
	}
	z.ClosePath()
	z.Draw(r.img, r.img.Bounds(), image.NewUniform(hexToRGBA(hex, alpha)), image.Point{})
}

// roundedRectPoints samples a rounded rectangle's outline into a closed
// polygon in device space, corner by corner, the same quarter-arc
// decomposition gogpu-gg's path.RoundedRectangle builds directly into a
// bezier path.
func (r *Raster) roundedRectPoints(x, y, w, h, radius float32) []xmath.Vector2 {
	if radius > w/2 {
		radius = w / 2
	}
	if radius > h/2 {
		radius = h / 2
	}
	if radius < 0 {
		radius = 0
	}
	const steps = 8
	halfPi := float32(math.Pi / 2)
	corner := func(cx, cy, from float32) []xmath.Vector2 {
		out := make([]xmath.Vector2, 0, steps+1)
		for i := 0; i <= steps; i++ {
			t := from + halfPi*float32(i)/steps
			px := cx + radius*float32(math.Cos(float64(t)))
			py := cy + radius*float32(math.Sin(float64(t)))
			out = append(out, r.cur.m.MulPoint(xmath.Vec2(px, py)))
		}
		return out
	}
	var pts []xmath.Vector2
	pts = append(pts, corner(x+w-radius, y+radius, -halfPi)...)
	pts = append(pts, corner(x+w-radius, y+h-radius, 0)...)
	pts = append(pts, corner(x+radius, y+h-radius, halfPi)...)
	pts = append(pts, corner(x+radius, y+radius, 2*halfPi)...)
	return pts
}

// paintShadow rasterizes the shape bounded by pts filled with the
// current shadow color into a scratch buffer, blurs it with
// bild/blur.Gaussian at the configured radius, and composites it onto
// the backing image beneath the shape that is about to be drawn.
func (r *Raster) paintShadow(pts []xmath.Vector2) {
	b := r.img.Bounds()
	shadow := image.NewRGBA(b)
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		z.LineTo(p.X, p.Y)
	}
	z.ClosePath()
	z.Draw(shadow, b, image.NewUniform(r.cur.shadowColor), image.Point{})
	blurred := blur.Gaussian(shadow, float64(r.cur.shadowBlur))
	draw.Draw(r.img, b, blurred, image.Point{}, draw.Over)
}

func (r *Raster) DrawImage(data []byte, width, height int, x, y, w, h float32) {
	src := &image.RGBA{Pix: data, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	p0 := r.cur.m.MulPoint(xmath.Vec2(x, y))
	dstRect := image.Rect(int(p0.X), int(p0.Y), int(p0.X+w), int(p0.Y+h))
	draw.Draw(r.img, dstRect, src, image.Point{}, draw.Over)
}

func (r *Raster) GetImageData(x, y float32) (uint8, uint8, uint8, uint8) {
	c := r.img.RGBAAt(int(x), int(y))
	return c.R, c.G, c.B, c.A
}

func (r *Raster) DevicePixelRatio() float32 { return 1 }

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func cubicPoint(p0, p1, p2, p3 xmath.Vector2, t float32) xmath.Vector2 {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return xmath.Vec2(
		a*p0.X+b*p1.X+c*p2.X+d*p3.X,
		a*p0.Y+b*p1.Y+c*p2.Y+d*p3.Y,
	)
}

func hexToRGBA(hex string, alpha float32) color.RGBA {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{A: uint8(alpha * 255)}
	}
	v := func(s string) uint8 {
		n := 0
		for _, c := range s {
			n *= 16
			switch {
			case c >= '0' && c <= '9':
				n += int(c - '0')
			case c >= 'a' && c <= 'f':
				n += int(c-'a') + 10
			case c >= 'A' && c <= 'F':
				n += int(c-'A') + 10
			}
		}
		return uint8(n)
	}
	r, g, b := v(hex[1:3]), v(hex[3:5]), v(hex[5:7])
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	a := uint8(alpha * 255)
	return color.RGBA{
		R: uint8(uint32(r) * uint32(a) / 255),
		G: uint8(uint32(g) * uint32(a) / 255),
		B: uint8(uint32(b) * uint32(a) / 255),
		A: a,
	}
}
