// Package brush implements the variable-width freehand stroke engine:
// pointer samples are turned into a speed-dependent width profile, then
// into a single filled outline fit with cubic Béziers. Grounded on
// pathdata for the emitted path shape and on xmath.Vector2 for all
// point/normal arithmetic; the polygon-outline and curve-fit steps are
// hand-rolled since no boolean-polygon or curve-fitting library appears
// anywhere in the example pack.
package brush

import (
	"math"

	"tileloom.dev/tileloom/pathdata"
	"tileloom.dev/tileloom/xmath"
)

// MinDT is the minimum millisecond gap between accepted samples.
const MinDT = 1

// MinDistance is the minimum pixel movement between accepted samples.
const MinDistance = 1

// FadeInMS is the duration over which stroke width ramps from zero to
// its target value at the start of a stroke.
const FadeInMS = 1000

// Smoothing is the exponential low-pass factor applied to width between
// consecutive samples (weight given to the previous smoothed width).
const Smoothing = 0.7

// sample is one retained point of a live stroke.
type sample struct {
	P xmath.Vector2
	T float64 // ms since epoch of the caller's choosing
	W float32
}

// Brush accumulates a pointer stream into a variable-width stroke.
// SizeFactor scales both the target width formula and the minimum dot
// size; it corresponds to the tool's configured brush size.
type Brush struct {
	SizeFactor float32

	samples []sample
	start   float64
	have    bool
}

// New returns an empty brush with the given size factor.
func New(sizeFactor float32) *Brush {
	return &Brush{SizeFactor: sizeFactor}
}

// Reset discards any accumulated samples.
func (b *Brush) Reset() { b.samples = nil; b.have = false }

// Len reports how many samples have been retained.
func (b *Brush) Len() int { return len(b.samples) }

// AddSample appends one pointer reading at time t (ms). Samples closer
// than MinDT or MinDistance to the previous retained sample are
// dropped. Reports whether the sample was retained.
func (b *Brush) AddSample(p xmath.Vector2, t float64) bool {
	if len(b.samples) == 0 {
		b.samples = append(b.samples, sample{P: p, T: t, W: b.targetWidth(0, t, t)})
		b.start = t
		b.have = true
		return true
	}
	prev := b.samples[len(b.samples)-1]
	dt := t - prev.T
	dist := p.Sub(prev.P).Length()
	if dt < MinDT || dist < MinDistance {
		return false
	}
	v := dist / dt * 1000
	w := b.targetWidth(v, t, b.start)
	smoothed := Smoothing*prev.W + (1-Smoothing)*w
	b.samples = append(b.samples, sample{P: p, T: t, W: smoothed})
	return true
}

func (b *Brush) targetWidth(v float64, t, start float64) float32 {
	vEff := v
	if vEff < 10 {
		vEff = 10
	}
	target := float32(float64(b.SizeFactor) * 100 / vEff)
	lo, hi := float32(1), 2*b.SizeFactor
	if target < lo {
		target = lo
	}
	if target > hi {
		target = hi
	}
	fade := float32(1)
	if elapsed := t - start; elapsed < FadeInMS {
		fade = float32(elapsed / FadeInMS)
	}
	return target * fade
}

// Result is a finished stroke: a filled outline path plus its bounds,
// ready to become an entity's geometry.
type Result struct {
	Path   pathdata.Path
	Bounds [4]float32 // minX, minY, maxX, maxY
}

// Finish produces the final filled outline for the accumulated stroke
// and resets the brush. Reports false if no samples were ever added.
func (b *Brush) Finish() (Result, bool) {
	defer b.Reset()
	if len(b.samples) == 0 {
		return Result{}, false
	}
	if len(b.samples) == 1 {
		return b.dot(b.samples[0]), true
	}

	pts := make([]xmath.Vector2, len(b.samples))
	for i, s := range b.samples {
		pts[i] = s.P
	}
	simplifiedIdx := douglasPeuckerIndices(pts, 3)
	pruned := make([]sample, len(simplifiedIdx))
	for i, idx := range simplifiedIdx {
		pruned[i] = b.samples[idx]
	}
	if len(pruned) < 2 {
		return b.dot(b.samples[0]), true
	}

	ring := strokeOutline(pruned)
	ring = simplifyClosedRing(ring, 0.5)

	path, ok := fitCubics(ring, 2)
	if !ok {
		path = polylinePath(ring)
	}
	return Result{Path: path, Bounds: bounds(ring)}, true
}

// dot emits a minimal filled mark for a single-sample stroke (a tap).
func (b *Brush) dot(s sample) Result {
	r := b.SizeFactor / 2
	if r < 0.5 {
		r = 0.5
	}
	cx, cy := s.P.X+0.1, s.P.Y+0.1
	path := circlePath(xmath.Vector2{X: cx, Y: cy}, r)
	return Result{Path: path, Bounds: [4]float32{cx - r, cy - r, cx + r, cy + r}}
}

func bounds(pts []xmath.Vector2) [4]float32 {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return [4]float32{minX, minY, maxX, maxY}
}

func circlePath(c xmath.Vector2, r float32) pathdata.Path {
	return pathdata.Path{
		{Cmd: 'M', Args: []float32{c.X - r, c.Y}},
		{Cmd: 'A', Args: []float32{r, r, 0, 1, 1, c.X + r, c.Y}},
		{Cmd: 'A', Args: []float32{r, r, 0, 1, 1, c.X - r, c.Y}},
		{Cmd: 'Z'},
	}
}

func polylinePath(pts []xmath.Vector2) pathdata.Path {
	path := make(pathdata.Path, 0, len(pts)+1)
	path = append(path, pathdata.Segment{Cmd: 'M', Args: []float32{pts[0].X, pts[0].Y}})
	for _, p := range pts[1:] {
		path = append(path, pathdata.Segment{Cmd: 'L', Args: []float32{p.X, p.Y}})
	}
	path = append(path, pathdata.Segment{Cmd: 'Z'})
	return path
}

// strokeOutline approximates the quad-plus-disc union the width
// profile implies with a single round-joined, round-capped ribbon:
// the forward side normals, a half-circle cap at the end, the backward
// side normals, and a half-circle cap back at the start. This tracks
// the same visual silhouette as a true polygon union for the gently
// curving strokes produced by a pointer device, at a fraction of the
// cost of general polygon boolean ops.
func strokeOutline(s []sample) []xmath.Vector2 {
	n := len(s)
	normals := make([]xmath.Vector2, n)
	for i := range s {
		var dir xmath.Vector2
		switch {
		case i == 0:
			dir = s[1].P.Sub(s[0].P)
		case i == n-1:
			dir = s[n-1].P.Sub(s[n-2].P)
		default:
			dir = s[i+1].P.Sub(s[i-1].P)
		}
		normals[i] = unitNormal(dir)
	}

	var ring []xmath.Vector2
	for i := 0; i < n; i++ {
		half := s[i].W / 2
		ring = append(ring, s[i].P.Add(normals[i].MulScalar(half)))
	}
	ring = append(ring, arcPoints(s[n-1].P, s[n-1].W/2, normals[n-1], normals[n-1].MulScalar(-1), 8)...)
	for i := n - 1; i >= 0; i-- {
		half := s[i].W / 2
		ring = append(ring, s[i].P.Sub(normals[i].MulScalar(half)))
	}
	ring = append(ring, arcPoints(s[0].P, s[0].W/2, normals[0].MulScalar(-1), normals[0], 8)...)
	return ring
}

// unitNormal returns the unit-length left-hand normal of dir (dir
// rotated +90 degrees), or the +Y axis if dir is zero-length.
func unitNormal(dir xmath.Vector2) xmath.Vector2 {
	if dir.Length() == 0 {
		return xmath.Vector2{X: 0, Y: 1}
	}
	return dir.PerpCCW()
}

// arcPoints samples a half-turn cap between two unit directions around
// center c at radius r, sweeping through decreasing angles; for the
// left-hand normals strokeOutline passes, that is the side facing away
// from the stroke body.
func arcPoints(c xmath.Vector2, r float32, from, to xmath.Vector2, steps int) []xmath.Vector2 {
	a0 := math.Atan2(float64(from.Y), float64(from.X))
	a1 := math.Atan2(float64(to.Y), float64(to.X))
	for a1 > a0 {
		a1 -= 2 * math.Pi
	}
	out := make([]xmath.Vector2, 0, steps)
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		a := a0 + t*(a1-a0)
		out = append(out, xmath.Vector2{
			X: c.X + r*float32(math.Cos(a)),
			Y: c.Y + r*float32(math.Sin(a)),
		})
	}
	return out
}
