package brush

import "tileloom.dev/tileloom/xmath"

// douglasPeuckerIndices returns the indices of pts to retain under the
// Douglas-Peucker open-polyline simplification at the given tolerance.
func douglasPeuckerIndices(pts []xmath.Vector2, tolerance float32) []int {
	if len(pts) < 3 {
		out := make([]int, len(pts))
		for i := range pts {
			out[i] = i
		}
		return out
	}
	keep := make([]bool, len(pts))
	keep[0] = true
	keep[len(pts)-1] = true
	dpRange(pts, 0, len(pts)-1, tolerance, keep)

	var out []int
	for i, k := range keep {
		if k {
			out = append(out, i)
		}
	}
	return out
}

func dpRange(pts []xmath.Vector2, lo, hi int, tol float32, keep []bool) {
	if hi <= lo+1 {
		return
	}
	maxDist := float32(-1)
	maxIdx := -1
	for i := lo + 1; i < hi; i++ {
		d := perpDistance(pts[i], pts[lo], pts[hi])
		if d > maxDist {
			maxDist, maxIdx = d, i
		}
	}
	if maxDist <= tol {
		return
	}
	keep[maxIdx] = true
	dpRange(pts, lo, maxIdx, tol, keep)
	dpRange(pts, maxIdx, hi, tol, keep)
}

func perpDistance(p, a, b xmath.Vector2) float32 {
	ab := b.Sub(a)
	l := ab.Length()
	if l == 0 {
		return p.Sub(a).Length()
	}
	// |ab x ap| / |ab|
	ap := p.Sub(a)
	cross := ab.X*ap.Y - ab.Y*ap.X
	if cross < 0 {
		cross = -cross
	}
	return cross / l
}

// simplifyClosedRing runs Douglas-Peucker over a closed ring by
// splitting it at its two most distant points and simplifying each
// half as an open polyline, then rejoining.
func simplifyClosedRing(ring []xmath.Vector2, tolerance float32) []xmath.Vector2 {
	if len(ring) < 4 {
		return ring
	}
	ia, ib := farthestPair(ring)
	if ia > ib {
		ia, ib = ib, ia
	}
	first := ring[ia : ib+1]
	var second []xmath.Vector2
	second = append(second, ring[ib:]...)
	second = append(second, ring[:ia+1]...)

	keep1 := douglasPeuckerIndices(first, tolerance)
	keep2 := douglasPeuckerIndices(second, tolerance)

	out := make([]xmath.Vector2, 0, len(keep1)+len(keep2))
	for _, i := range keep1 {
		out = append(out, first[i])
	}
	for _, i := range keep2[1 : len(keep2)-1] {
		out = append(out, second[i])
	}
	return out
}

func farthestPair(ring []xmath.Vector2) (int, int) {
	bestD := float32(-1)
	bi, bj := 0, len(ring)/2
	for i := 0; i < len(ring); i++ {
		for j := i + 1; j < len(ring); j++ {
			d := ring[i].Sub(ring[j]).Length()
			if d > bestD {
				bestD, bi, bj = d, i, j
			}
		}
	}
	return bi, bj
}
