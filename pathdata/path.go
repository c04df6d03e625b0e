// Package pathdata implements parsing, stringification, and affine
// transformation of SVG path data — the vocabulary every entity kind in
// the scene engine is eventually expressed in.
package pathdata

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"tileloom.dev/tileloom/xmath"
)

// Segment is one SVG path command and its numeric arguments. Commands with
// multiple coordinate pairs in the source text (e.g. "L 1 1 2 2") are
// normalized into one Segment per pair at parse time, so a Path is always
// a flat sequence of single-unit drawing operations.
type Segment struct {
	Cmd  byte
	Args []float32
}

// Path is an ordered sequence of path segments, the geometry
// representation for the "path" entity kind.
type Path []Segment

// argCount returns the number of numeric arguments the given (case-folded)
// command letter takes.
func argCount(cmd byte) (int, bool) {
	switch upper(cmd) {
	case 'M', 'L', 'T':
		return 2, true
	case 'H', 'V':
		return 1, true
	case 'C':
		return 6, true
	case 'S', 'Q':
		return 4, true
	case 'A':
		return 7, true
	case 'Z':
		return 0, true
	}
	return 0, false
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func isRelative(cmd byte) bool { return cmd >= 'a' && cmd <= 'z' }

// Parse parses an SVG path data string into a Path.
func Parse(s string) (Path, error) {
	p := newParser(s)
	var path Path
	var cur byte
	for {
		p.skipSeparators()
		if p.done() {
			break
		}
		c := p.peek()
		if isCommandLetter(c) {
			cur = c
			p.next()
		} else if cur == 0 {
			return nil, fmt.Errorf("pathdata: path must start with a command letter: %q", s)
		} else {
			// implicit repeat of the previous command; M/m repeats as L/l.
			if upper(cur) == 'M' {
				if isRelative(cur) {
					cur = 'l'
				} else {
					cur = 'L'
				}
			}
		}
		n, ok := argCount(cur)
		if !ok {
			return nil, fmt.Errorf("pathdata: unknown command %q in %q", cur, s)
		}
		var args []float32
		if n > 0 {
			args = make([]float32, 0, n)
		}
		for i := 0; i < n; i++ {
			p.skipSeparators()
			v, err := p.readNumber()
			if err != nil {
				return nil, fmt.Errorf("pathdata: %q: %w", s, err)
			}
			args = append(args, v)
		}
		// Arc flags (largeArc, sweep) are single digits and may be packed
		// with no separator before the following coordinate; readNumber
		// above already handles that uniformly since each is parsed as
		// its own token.
		path = append(path, Segment{Cmd: cur, Args: args})
	}
	return path, nil
}

// MustParse parses s and panics on error; used for literal path
// construction in tests and internal fallback geometry.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

type parser struct {
	s string
	i int
}

func newParser(s string) *parser { return &parser{s: s} }

func (p *parser) done() bool { return p.i >= len(p.s) }
func (p *parser) peek() byte {
	if p.done() {
		return 0
	}
	return p.s[p.i]
}
func (p *parser) next() byte {
	c := p.peek()
	p.i++
	return c
}

func (p *parser) skipSeparators() {
	for !p.done() {
		c := p.s[p.i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' {
			p.i++
			continue
		}
		break
	}
}

func isCommandLetter(c byte) bool {
	switch upper(c) {
	case 'M', 'L', 'H', 'V', 'C', 'S', 'Q', 'T', 'A', 'Z':
		return true
	}
	return false
}

// readNumber reads one SVG numeric token starting at the current position.
// It tolerates the packed form ("1.5.5" == "1.5 .5") by stopping a token
// as soon as a second '.' would appear.
func (p *parser) readNumber() (float32, error) {
	start := p.i
	seenDot := false
	seenDigit := false
	if !p.done() && (p.s[p.i] == '+' || p.s[p.i] == '-') {
		p.i++
	}
	for !p.done() {
		c := p.s[p.i]
		if c >= '0' && c <= '9' {
			seenDigit = true
			p.i++
			continue
		}
		if c == '.' {
			if seenDot {
				break
			}
			seenDot = true
			p.i++
			continue
		}
		break
	}
	if !p.done() && seenDigit && (p.s[p.i] == 'e' || p.s[p.i] == 'E') {
		save := p.i
		p.i++
		if !p.done() && (p.s[p.i] == '+' || p.s[p.i] == '-') {
			p.i++
		}
		expDigits := false
		for !p.done() && p.s[p.i] >= '0' && p.s[p.i] <= '9' {
			expDigits = true
			p.i++
		}
		if !expDigits {
			p.i = save
		}
	}
	if !seenDigit {
		return 0, fmt.Errorf("expected number at offset %d", start)
	}
	v, err := strconv.ParseFloat(p.s[start:p.i], 32)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}

// Clone returns a deep copy of p.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	for i, seg := range p {
		args := make([]float32, len(seg.Args))
		copy(args, seg.Args)
		out[i] = Segment{Cmd: seg.Cmd, Args: args}
	}
	return out
}

// String renders p as compact SVG path data at the given decimal
// precision: a leading zero before a fractional value is omitted
// ("-0.5" -> "-.5"), no separating space is written between a command
// letter and a following negative number, or between two numbers where
// the second starts with '.' and the first already contains a '.', and
// a command letter is elided when it repeats the previous segment's
// (the SVG shorthand for runs of the same command, including the
// implicit first lineto after a moveto); a repeated moveto or
// closepath always keeps its letter.
func (p Path) String(precision int) string {
	var b strings.Builder
	var prevCmd byte
	havePrev := false
	for _, seg := range p {
		if !havePrev || !elideCommand(prevCmd, seg.Cmd) {
			b.WriteByte(seg.Cmd)
		}
		for _, a := range seg.Args {
			tok := formatNumber(a, precision)
			if needsSeparator(&b, tok) {
				b.WriteByte(' ')
			}
			b.WriteString(tok)
		}
		prevCmd = seg.Cmd
		havePrev = true
	}
	return b.String()
}

// elideCommand reports whether cur's command letter can be dropped
// because it repeats prev: either literally (consecutive "L L"), or the
// implicit lineto SVG allows for extra coordinate pairs straight after a
// moveto ("M ... L" with matching case, since a moveto's subsequent
// pairs are linetos by definition). A repeated moveto or closepath is
// never elided: bare pairs after a moveto parse as linetos, and a
// closepath has no pairs to carry it.
func elideCommand(prev, cur byte) bool {
	if prev == cur {
		return upper(cur) != 'M' && upper(cur) != 'Z'
	}
	if prev == 'M' && cur == 'L' {
		return true
	}
	if prev == 'm' && cur == 'l' {
		return true
	}
	return false
}

// needsSeparator reports whether a space is required between whatever was
// last written to b and the upcoming token tok.
func needsSeparator(b *strings.Builder, tok string) bool {
	s := b.String()
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	if isCommandLetter(last) {
		return false
	}
	if tok[0] == '-' {
		return false
	}
	if tok[0] == '.' {
		// a dot-led token only ends the previous number by itself if
		// that number already has a '.' of its own
		i := len(s) - 1
		for i >= 0 && s[i] >= '0' && s[i] <= '9' {
			i--
		}
		return i < 0 || s[i] != '.'
	}
	return true
}

func formatNumber(v float32, precision int) string {
	s := strconv.FormatFloat(float64(v), 'f', precision, 32)
	// trim trailing fractional zeros and a dangling '.'
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" || s == "-" {
		s = "0"
	}
	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")
	if strings.HasPrefix(body, "0.") {
		body = body[1:]
	} else if body == "0" {
		// keep bare zero as-is
	}
	if neg {
		return "-" + body
	}
	return body
}

// Bounds returns the axis-aligned bounding box of the flattened path, in
// the path's own local coordinate space.
func (p Path) Bounds() (minX, minY, maxX, maxY float32) {
	pts := p.Flatten(0.5)
	if len(pts) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = pts[0].X, pts[0].Y
	maxX, maxY = pts[0].X, pts[0].Y
	for _, pt := range pts[1:] {
		minX = min(minX, pt.X)
		minY = min(minY, pt.Y)
		maxX = max(maxX, pt.X)
		maxY = max(maxY, pt.Y)
	}
	return
}

func min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
func max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Flatten walks the path, converting curves and arcs into line segments
// within tolerance (in path-local units), and returns every vertex visited
// in order, including duplicated closing points for Z. It is used for
// bounding-box computation, hit-testing fallbacks, and feeding the
// variable-width stroke engine's simplification stage.
func (p Path) Flatten(tolerance float32) []xmath.Vector2 {
	var pts []xmath.Vector2
	var cur, start xmath.Vector2
	for _, seg := range p {
		switch upper(seg.Cmd) {
		case 'M':
			cur = resolvePoint(seg, cur)
			start = cur
			pts = append(pts, cur)
		case 'L':
			cur = resolvePoint(seg, cur)
			pts = append(pts, cur)
		case 'H':
			x := seg.Args[0]
			if isRelative(seg.Cmd) {
				x += cur.X
			}
			cur = xmath.Vec2(x, cur.Y)
			pts = append(pts, cur)
		case 'V':
			y := seg.Args[0]
			if isRelative(seg.Cmd) {
				y += cur.Y
			}
			cur = xmath.Vec2(cur.X, y)
			pts = append(pts, cur)
		case 'C':
			p1 := xmath.Vec2(seg.Args[0], seg.Args[1])
			p2 := xmath.Vec2(seg.Args[2], seg.Args[3])
			end := xmath.Vec2(seg.Args[4], seg.Args[5])
			if isRelative(seg.Cmd) {
				p1, p2, end = cur.Add(p1), cur.Add(p2), cur.Add(end)
			}
			pts = append(pts, flattenCubic(cur, p1, p2, end, tolerance)...)
			cur = end
		case 'S', 'Q':
			// Treat S/Q uniformly as a quadratic-to-cubic-equivalent flatten
			// using the control and end point given; reflection of the
			// previous control point is a refinement this engine does not
			// need for bounding/flatten purposes (tolerance-bounded, visual
			// smoothness handled upstream by VarioBrush's own Bezier fit).
			var ctrl, end xmath.Vector2
			if len(seg.Args) == 4 {
				ctrl = xmath.Vec2(seg.Args[0], seg.Args[1])
				end = xmath.Vec2(seg.Args[2], seg.Args[3])
			}
			if isRelative(seg.Cmd) {
				ctrl, end = cur.Add(ctrl), cur.Add(end)
			}
			pts = append(pts, flattenQuad(cur, ctrl, end, tolerance)...)
			cur = end
		case 'T':
			end := resolvePoint(seg, cur)
			pts = append(pts, flattenQuad(cur, cur, end, tolerance)...)
			cur = end
		case 'A':
			end := xmath.Vec2(seg.Args[5], seg.Args[6])
			if isRelative(seg.Cmd) {
				end = cur.Add(end)
			}
			pts = append(pts, flattenArc(cur, seg.Args, end, tolerance)...)
			cur = end
		case 'Z':
			pts = append(pts, start)
			cur = start
		}
	}
	return pts
}

func resolvePoint(seg Segment, cur xmath.Vector2) xmath.Vector2 {
	p := xmath.Vec2(seg.Args[0], seg.Args[1])
	if isRelative(seg.Cmd) {
		return cur.Add(p)
	}
	return p
}

func flattenCubic(p0, p1, p2, p3 xmath.Vector2, tolerance float32) []xmath.Vector2 {
	n := cubicSteps(p0, p1, p2, p3, tolerance)
	out := make([]xmath.Vector2, 0, n)
	for i := 1; i <= n; i++ {
		t := float32(i) / float32(n)
		out = append(out, cubicAt(p0, p1, p2, p3, t))
	}
	return out
}

func cubicSteps(p0, p1, p2, p3 xmath.Vector2, tolerance float32) int {
	chord := p0.DistTo(p1) + p1.DistTo(p2) + p2.DistTo(p3)
	if tolerance <= 0 {
		tolerance = 0.5
	}
	n := int(chord / (tolerance * 4))
	if n < 4 {
		n = 4
	}
	if n > 256 {
		n = 256
	}
	return n
}

func cubicAt(p0, p1, p2, p3 xmath.Vector2, t float32) xmath.Vector2 {
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

func flattenQuad(p0, p1, p2 xmath.Vector2, tolerance float32) []xmath.Vector2 {
	// Promote to an equivalent cubic for a single shared flattening path.
	c1 := p0.Add(p1.Sub(p0).MulScalar(2.0 / 3.0))
	c2 := p2.Add(p1.Sub(p2).MulScalar(2.0 / 3.0))
	return flattenCubic(p0, c1, c2, p2, tolerance)
}

func flattenArc(from xmath.Vector2, args []float32, to xmath.Vector2, tolerance float32) []xmath.Vector2 {
	cx, cy, rx, ry, rot, theta1, dTheta := arcCenterParams(from, args, to)
	chord := max(rx, ry)
	if tolerance <= 0 {
		tolerance = 0.5
	}
	n := int(math.Abs(float64(dTheta)) * float64(chord) / float64(tolerance*2))
	if n < 8 {
		n = 8
	}
	if n > 256 {
		n = 256
	}
	out := make([]xmath.Vector2, 0, n)
	cosRot, sinRot := float32(math.Cos(float64(rot))), float32(math.Sin(float64(rot)))
	for i := 1; i <= n; i++ {
		theta := theta1 + dTheta*float32(i)/float32(n)
		ex := rx * float32(math.Cos(float64(theta)))
		ey := ry * float32(math.Sin(float64(theta)))
		x := cx + ex*cosRot - ey*sinRot
		y := cy + ex*sinRot + ey*cosRot
		out = append(out, xmath.Vec2(x, y))
	}
	return out
}

// arcCenterParams converts an SVG elliptical arc's endpoint parameterization
// (rx, ry, x-axis-rotation-deg, large-arc-flag, sweep-flag, and the already
// resolved end point) into the center parameterization: center, the
// (possibly corrected) radii, the rotation in radians, the start angle, and
// the signed angular span. This follows the standard endpoint-to-center
// construction (SVG implementation notes F.6.5/F.6.6).
func arcCenterParams(from xmath.Vector2, args []float32, to xmath.Vector2) (cx, cy, rx, ry, rot, theta1, dTheta float32) {
	rx, ry = math32abs(args[0]), math32abs(args[1])
	rot = xmath.DegToRad(args[2])
	largeArc := args[3] != 0
	sweep := args[4] != 0

	if rx == 0 || ry == 0 || from == to {
		// Degenerate to a straight line: caller still needs a usable center,
		// report zero radii so flattenArc's step count falls back cleanly.
		return to.X, to.Y, 0, 0, rot, 0, 0
	}

	cosPhi, sinPhi := float32(math.Cos(float64(rot))), float32(math.Sin(float64(rot)))
	dx2, dy2 := (from.X-to.X)/2, (from.Y-to.Y)/2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := float32(math.Sqrt(float64(lambda)))
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := float32(0)
	if den != 0 && num > 0 {
		co = float32(math.Sqrt(float64(num / den)))
	}
	if largeArc == sweep {
		co = -co
	}
	cxp := co * (rx * y1p / ry)
	cyp := co * (-ry * x1p / rx)

	cx = cosPhi*cxp - sinPhi*cyp + (from.X+to.X)/2
	cy = sinPhi*cxp + cosPhi*cyp + (from.Y+to.Y)/2

	theta1 = angleBetween(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	dTheta = angleBetween((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	twoPi := float32(2 * math.Pi)
	if !sweep && dTheta > 0 {
		dTheta -= twoPi
	} else if sweep && dTheta < 0 {
		dTheta += twoPi
	}
	return cx, cy, rx, ry, rot, theta1, dTheta
}

func angleBetween(ux, uy, vx, vy float32) float32 {
	dot := ux*vx + uy*vy
	lu := float32(math.Sqrt(float64(ux*ux + uy*uy)))
	lv := float32(math.Sqrt(float64(vx*vx + vy*vy)))
	denom := lu * lv
	if denom == 0 {
		return 0
	}
	cosA := dot / denom
	if cosA > 1 {
		cosA = 1
	} else if cosA < -1 {
		cosA = -1
	}
	a := float32(math.Acos(float64(cosA)))
	if ux*vy-uy*vx < 0 {
		a = -a
	}
	return a
}

func math32abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Transform bakes an affine matrix into the path's coordinates, producing
// a new Path that draws the same shape under the identity transform that
// the original Path drew under m. Absolute coordinate pairs receive the
// full matrix; relative coordinate pairs receive only the linear part,
// since their meaning is an offset, not a position. Horizontal/vertical
// line commands are rewritten as general lineto commands because a
// rotation or skew can tilt what was an axis-aligned move. Arc radii and
// x-axis-rotation are recomputed via Matrix2.Decompose of the arc's own
// ellipse shape composed with m; a reflection (negative determinant)
// flips the sweep flag so the arc still winds the same visual direction.
func (p Path) Transform(m xmath.Matrix2) Path {
	out := make(Path, 0, len(p))
	det := m.XX*m.YY - m.XY*m.YX
	for _, seg := range p {
		switch upper(seg.Cmd) {
		case 'M', 'L', 'T':
			out = append(out, transformPair(seg, m))
		case 'H', 'V':
			out = append(out, transformAxisAligned(seg, m))
		case 'C':
			out = append(out, transformMulti(seg, m, 3))
		case 'S', 'Q':
			out = append(out, transformMulti(seg, m, 2))
		case 'A':
			out = append(out, transformArc(seg, m, det))
		case 'Z':
			out = append(out, seg)
		}
	}
	return out
}

func transformPoint(cmd byte, x, y float32, m xmath.Matrix2) (float32, float32) {
	v := xmath.Vec2(x, y)
	if isRelative(cmd) {
		v = m.MulDir(v)
	} else {
		v = m.MulPoint(v)
	}
	return v.X, v.Y
}

func transformPair(seg Segment, m xmath.Matrix2) Segment {
	x, y := transformPoint(seg.Cmd, seg.Args[0], seg.Args[1], m)
	return Segment{Cmd: seg.Cmd, Args: []float32{x, y}}
}

// transformMulti applies transformPoint to every coordinate pair in a
// segment whose Args is a flat run of n pairs (C has 3, S/Q have 2).
func transformMulti(seg Segment, m xmath.Matrix2, pairs int) Segment {
	args := make([]float32, 0, pairs*2)
	for i := 0; i < pairs; i++ {
		x, y := transformPoint(seg.Cmd, seg.Args[i*2], seg.Args[i*2+1], m)
		args = append(args, x, y)
	}
	return Segment{Cmd: seg.Cmd, Args: args}
}

// transformAxisAligned rewrites H/V (h/v) as L (l): under an arbitrary
// affine matrix an axis-aligned move is no longer axis-aligned in general,
// so the command itself must change.
func transformAxisAligned(seg Segment, m xmath.Matrix2) Segment {
	var x, y float32
	if upper(seg.Cmd) == 'H' {
		x, y = seg.Args[0], 0
	} else {
		x, y = 0, seg.Args[0]
	}
	cmd := byte('L')
	if isRelative(seg.Cmd) {
		cmd = 'l'
	}
	tx, ty := transformPoint(cmd, x, y, m)
	return Segment{Cmd: cmd, Args: []float32{tx, ty}}
}

func transformArc(seg Segment, m xmath.Matrix2, det float32) Segment {
	rx, ry, rotDeg := seg.Args[0], seg.Args[1], seg.Args[2]
	largeArc, sweep := seg.Args[3], seg.Args[4]
	x, y := transformPoint(seg.Cmd, seg.Args[5], seg.Args[6], m)

	rot := xmath.DegToRad(rotDeg)
	ellipse := xmath.Identity2().Rotate(rot).Scale(rx, ry)
	combined := m.Mul(ellipse)
	_, _, phi, sx, sy, _ := combined.Decompose()

	if det < 0 {
		if sweep == 0 {
			sweep = 1
		} else {
			sweep = 0
		}
	}

	return Segment{
		Cmd:  seg.Cmd,
		Args: []float32{math32abs(sx), math32abs(sy), xmath.RadToDeg(phi), largeArc, sweep, x, y},
	}
}
