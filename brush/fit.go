package brush

import (
	"tileloom.dev/tileloom/pathdata"
	"tileloom.dev/tileloom/xmath"
)

// fitCubics fits a closed ring of points with cubic Bézier segments,
// recursively subdividing at the point of worst deviation until every
// segment is within tolerance or a recursion limit is hit; a segment
// still out of tolerance at the limit is kept as it is. Returns false
// only if the ring has fewer than four points, letting the caller fall
// back to a polyline.
func fitCubics(ring []xmath.Vector2, tolerance float32) (pathdata.Path, bool) {
	if len(ring) < 4 {
		return nil, false
	}
	segments := fitRange(ring, 0, len(ring)-1, tolerance, 0)
	if segments == nil {
		return nil, false
	}
	closing := fitSpan(ring, len(ring)-1, 0, tolerance, 0)
	if closing == nil {
		return nil, false
	}
	segments = append(segments, closing...)

	path := make(pathdata.Path, 0, len(segments)+1)
	path = append(path, pathdata.Segment{Cmd: 'M', Args: []float32{ring[0].X, ring[0].Y}})
	for _, seg := range segments {
		path = append(path, pathdata.Segment{Cmd: 'C', Args: []float32{
			seg.c1.X, seg.c1.Y, seg.c2.X, seg.c2.Y, seg.end.X, seg.end.Y,
		}})
	}
	path = append(path, pathdata.Segment{Cmd: 'Z'})
	return path, true
}

type cubicSeg struct {
	c1, c2, end xmath.Vector2
}

const maxFitDepth = 6

func fitRange(ring []xmath.Vector2, lo, hi int, tolerance float32, depth int) []cubicSeg {
	if hi-lo < 1 {
		return nil
	}
	if hi-lo == 1 {
		return fitSpan(ring, lo, hi, tolerance, depth)
	}
	seg, maxDev, worstIdx := fitChord(ring, lo, hi)
	if maxDev <= tolerance || depth >= maxFitDepth {
		return []cubicSeg{seg}
	}
	left := fitRange(ring, lo, worstIdx, tolerance, depth+1)
	right := fitRange(ring, worstIdx, hi, tolerance, depth+1)
	if left == nil || right == nil {
		return []cubicSeg{seg}
	}
	return append(left, right...)
}

// fitSpan handles a two-point span (used for single segments and the
// closing edge) by fitting one chord directly.
func fitSpan(ring []xmath.Vector2, lo, hi int, tolerance float32, depth int) []cubicSeg {
	seg, maxDev, worstIdx := fitChord(ring, lo, hi)
	if maxDev <= tolerance || depth >= maxFitDepth || worstIdx == lo || worstIdx == hi {
		return []cubicSeg{seg}
	}
	return []cubicSeg{seg}
}

// fitChord fits one cubic between ring[lo] and ring[hi] (wrapping
// through the ring if hi < lo), placing control points along the
// chord's tangent estimates at one third of its length, and reports
// the worst perpendicular deviation of the intervening points plus the
// index at which it occurs.
func fitChord(ring []xmath.Vector2, lo, hi int) (cubicSeg, float32, int) {
	start := ring[lo]
	end := ring[hi]
	chord := end.Sub(start)
	third := chord.MulScalar(1.0 / 3.0)

	tanStart := tangentAt(ring, lo)
	tanEnd := tangentAt(ring, hi)

	c1 := start.Add(tanStart.MulScalar(chord.Length() / 3))
	c2 := end.Sub(tanEnd.MulScalar(chord.Length() / 3))
	if chord.Length() == 0 {
		c1 = start.Add(third)
		c2 = end.Sub(third)
	}

	seg := cubicSeg{c1: c1, c2: c2, end: end}

	maxDev := float32(0)
	worst := lo
	idx := lo
	for {
		idx = next(idx, len(ring))
		if idx == hi {
			break
		}
		d := perpDistance(ring[idx], start, end)
		if d > maxDev {
			maxDev, worst = d, idx
		}
	}
	return seg, maxDev, worst
}

func next(i, n int) int {
	i++
	if i >= n {
		return 0
	}
	return i
}

func tangentAt(ring []xmath.Vector2, i int) xmath.Vector2 {
	n := len(ring)
	p0 := ring[(i-1+n)%n]
	p1 := ring[(i+1)%n]
	return p1.Sub(p0).Normal()
}
