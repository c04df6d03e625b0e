// Package scene implements the canonical object store: entities, layers,
// groups, and the transform math that positions an entity inside the
// tile. It is grounded on cogentcore's base/ordmap package for the
// insertion-ordered store, and on events/listeners.go's closure-list
// pattern for the change feed every mutating operation fires.
package scene

import (
	"tileloom.dev/tileloom/idgen"
	"tileloom.dev/tileloom/pathdata"
	"tileloom.dev/tileloom/xmath"
)

// Kind discriminates the variant of an Entity's Geometry.
type Kind string

const (
	KindPath     Kind = "path"
	KindRect     Kind = "rect"
	KindCircle   Kind = "circle"
	KindImage    Kind = "image"
	KindSVGGroup Kind = "svgGroup"
)

// Geometry is a tagged union over the kind-specific shape data an entity
// carries. Only the fields matching Kind are meaningful; this is Go's
// realization of a sum type over a closed set of variants, in place of
// dynamic dispatch on an object's runtime type.
type Geometry struct {
	Kind Kind

	// Path holds the path data for KindPath.
	Path pathdata.Path

	// Width, Height hold the rect size for KindRect.
	Width, Height float32

	// Radius holds the circle radius for KindCircle.
	Radius float32

	// ImageData, ImageWidth, ImageHeight hold the raster payload and its
	// natural pixel size for KindImage.
	ImageData               []byte
	ImageWidth, ImageHeight int

	// Children holds the already-flattened child entities for
	// KindSVGGroup, imported as a static tree with no further nesting.
	Children []Entity
}

// OriginX names the horizontal anchor a transform's scale and rotation
// are applied about.
type OriginX string

const (
	OriginLeft   OriginX = "left"
	OriginXMid   OriginX = "center"
	OriginRight  OriginX = "right"
)

// OriginY names the vertical anchor.
type OriginY string

const (
	OriginTop    OriginY = "top"
	OriginYMid   OriginY = "center"
	OriginBottom OriginY = "bottom"
)

// Transform is an entity's pose, matching the host drawing context's
// affine model: position, independent axis scale, rotation, flips, skew,
// and the anchor those operate about.
type Transform struct {
	Left, Top      float32
	ScaleX, ScaleY float32
	AngleDeg       float32
	FlipX, FlipY   bool
	SkewX, SkewY   float32
	OriginX        OriginX
	OriginY        OriginY
}

// IdentityTransform returns the default, no-op transform: unit scale, no
// rotation, no flip, no skew, anchored top-left.
func IdentityTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1, OriginX: OriginLeft, OriginY: OriginTop}
}

// originOffset returns how far the anchor point sits from the top-left
// corner of a box with the given size.
func originOffset(ox OriginX, oy OriginY, w, h float32) (float32, float32) {
	var dx, dy float32
	switch ox {
	case OriginXMid:
		dx = w / 2
	case OriginRight:
		dx = w
	}
	switch oy {
	case OriginYMid:
		dy = h / 2
	case OriginBottom:
		dy = h
	}
	return dx, dy
}

// Matrix builds the affine matrix that carries local geometry (drawn
// with its own origin at (0,0)) into tile space, given the entity's
// unscaled bounding size. Order matches the host drawing-context model:
// translate to the anchor position, rotate, skew, then scale (with flips
// folded into scale sign) about the anchor, finally shifting by the
// anchor's offset from the box's top-left corner.
func (t Transform) Matrix(w, h float32) xmath.Matrix2 {
	sx, sy := t.ScaleX, t.ScaleY
	if t.FlipX {
		sx = -sx
	}
	if t.FlipY {
		sy = -sy
	}
	dx, dy := originOffset(t.OriginX, t.OriginY, w, h)

	m := xmath.Translate2D(t.Left, t.Top)
	m = m.Translate(dx, dy)
	m = m.Rotate(xmath.DegToRad(t.AngleDeg))
	m = m.Shear(t.SkewX, t.SkewY)
	m = m.Scale(sx, sy)
	m = m.Translate(-dx, -dy)
	return m
}

// Color is a "#rrggbb" color string; Appearance uses a nil *Color to
// mean "none" rather than a sentinel color value.
type Color string

// Appearance is an entity's paint style.
type Appearance struct {
	Fill        *Color
	Stroke      *Color
	StrokeWidth float32
	Opacity     float32
}

// DefaultAppearance returns the default style: opaque, black fill, no
// stroke.
func DefaultAppearance() Appearance {
	black := Color("#000000")
	return Appearance{Fill: &black, Opacity: 1}
}

// Entity is the canonical, authoritative instance of one user-visible
// primitive.
type Entity struct {
	ID         idgen.ID
	Geometry   Geometry
	Transform  Transform
	Appearance Appearance
	LayerID    idgen.ID
	GroupID    idgen.ID // empty when ungrouped
	Visible    bool
	Locked     bool
}

// NewEntity returns an Entity ready for insertion into a store: visible,
// unlocked, identity transform, default appearance, with the given
// geometry and layer.
func NewEntity(id idgen.ID, geo Geometry, layerID idgen.ID) Entity {
	return Entity{
		ID:         id,
		Geometry:   geo,
		Transform:  IdentityTransform(),
		Appearance: DefaultAppearance(),
		LayerID:    layerID,
		Visible:    true,
	}
}

// Bounds returns the entity's unscaled local bounding size, used as the
// (w,h) passed to Transform.Matrix and as the proxy base size.
func (e Entity) Bounds() (w, h float32) {
	switch e.Geometry.Kind {
	case KindRect:
		return e.Geometry.Width, e.Geometry.Height
	case KindCircle:
		return e.Geometry.Radius * 2, e.Geometry.Radius * 2
	case KindImage:
		return float32(e.Geometry.ImageWidth), float32(e.Geometry.ImageHeight)
	case KindPath:
		minX, minY, maxX, maxY := e.Geometry.Path.Bounds()
		return maxX - minX, maxY - minY
	case KindSVGGroup:
		var maxX, maxY float32
		for _, c := range e.Geometry.Children {
			w, h := c.Bounds()
			right := c.Transform.Left + w
			bottom := c.Transform.Top + h
			if right > maxX {
				maxX = right
			}
			if bottom > maxY {
				maxY = bottom
			}
		}
		return maxX, maxY
	}
	return 0, 0
}
