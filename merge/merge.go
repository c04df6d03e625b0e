// Package merge implements PathMerger: combining several entities'
// geometry, with every transform baked into absolute coordinates, into
// one path. Grounded on pathdata.Path.Transform for the matrix-bake
// step and on scene.Entity.Bounds/Transform.Matrix for the per-entity
// local-to-tile matrix, reusing the same shape-to-path formulas the
// canvas package's drawing path would otherwise need.
package merge

import (
	"fmt"

	"tileloom.dev/tileloom/pathdata"
	"tileloom.dev/tileloom/scene"
	"tileloom.dev/tileloom/tileerr"
)

// Merge bakes every entity's transform into its path data and
// concatenates the results into a single path, inheriting appearance
// from entities[0]. It refuses (returns an error wrapping
// tileerr.InvariantViolation) if any entity's kind is not convertible
// to a path, or if fewer than two convertible paths remain.
func Merge(entities []scene.Entity) (pathdata.Path, scene.Appearance, error) {
	if len(entities) < 2 {
		return nil, scene.Appearance{}, fmt.Errorf("merge: need at least 2 entities: %w", tileerr.InvariantViolation)
	}

	var merged pathdata.Path
	for _, e := range entities {
		local, ok := toPath(e)
		if !ok {
			return nil, scene.Appearance{}, fmt.Errorf("merge: entity %q kind %q is not convertible to a path: %w", e.ID, e.Geometry.Kind, tileerr.InvariantViolation)
		}
		w, h := e.Bounds()
		baked := local.Transform(e.Transform.Matrix(w, h))
		baked = uppercaseLeadingMove(baked)
		merged = append(merged, baked...)
	}

	if len(merged) == 0 {
		return nil, scene.Appearance{}, fmt.Errorf("merge: no path data produced: %w", tileerr.InvariantViolation)
	}
	return merged, entities[0].Appearance, nil
}

// uppercaseLeadingMove ensures a fragment begins with an explicit
// absolute M, so concatenated fragments never inherit an ambiguous
// current point from whatever preceded them.
func uppercaseLeadingMove(p pathdata.Path) pathdata.Path {
	if len(p) == 0 || p[0].Cmd != 'm' {
		return p
	}
	out := p.Clone()
	out[0].Cmd = 'M'
	return out
}

// toPath converts one entity's local geometry to path data. Only path,
// rect, and circle kinds are convertible; image and svgGroup are not.
func toPath(e scene.Entity) (pathdata.Path, bool) {
	switch e.Geometry.Kind {
	case scene.KindPath:
		return e.Geometry.Path.Clone(), true
	case scene.KindRect:
		return rectPath(e.Geometry.Width, e.Geometry.Height), true
	case scene.KindCircle:
		return circlePath(e.Geometry.Radius), true
	default:
		return nil, false
	}
}

// rectPath emits a closed rectangle path anchored at the local origin,
// the unrounded-corner case of the M H A V A H A V A z formula (no
// corner-radius field exists on scene.Geometry's rect variant, so the
// arc segments that formula reserves for rounded corners collapse to
// nothing here).
func rectPath(w, h float32) pathdata.Path {
	return pathdata.Path{
		{Cmd: 'M', Args: []float32{0, 0}},
		{Cmd: 'H', Args: []float32{w}},
		{Cmd: 'V', Args: []float32{h}},
		{Cmd: 'H', Args: []float32{0}},
		{Cmd: 'Z'},
	}
}

// circlePath emits a closed circle path as two semicircle arcs,
// centered at (r, r) in local space so it shares the rect formula's
// top-left-anchored origin.
func circlePath(r float32) pathdata.Path {
	return pathdata.Path{
		{Cmd: 'M', Args: []float32{0, r}},
		{Cmd: 'A', Args: []float32{r, r, 0, 1, 1, 2 * r, r}},
		{Cmd: 'A', Args: []float32{r, r, 0, 1, 1, 0, r}},
		{Cmd: 'Z'},
	}
}
