// Package xmath implements the float32 2D vector and affine-matrix algebra
// the scene engine is built on: entity transforms, path transforms, and
// the arc-decomposition math PathMerger needs to bake a matrix into SVG
// path data. Trigonometry runs through github.com/chewxy/math32 to stay
// in float32 throughout rather than round-tripping via float64.
package xmath

import "github.com/chewxy/math32"

// Vector2 is a 2D point or direction in device-independent points.
type Vector2 struct {
	X, Y float32
}

// Vec2 constructs a Vector2.
func Vec2(x, y float32) Vector2 { return Vector2{X: x, Y: y} }

// Vector2Scalar constructs a Vector2 with both components set to s.
func Vector2Scalar(s float32) Vector2 { return Vector2{X: s, Y: s} }

// Add returns a+b.
func (a Vector2) Add(b Vector2) Vector2 { return Vector2{a.X + b.X, a.Y + b.Y} }

// Sub returns a-b.
func (a Vector2) Sub(b Vector2) Vector2 { return Vector2{a.X - b.X, a.Y - b.Y} }

// MulScalar returns a scaled by s.
func (a Vector2) MulScalar(s float32) Vector2 { return Vector2{a.X * s, a.Y * s} }

// Dot returns the dot product of a and b.
func (a Vector2) Dot(b Vector2) float32 { return a.X*b.X + a.Y*b.Y }

// Length returns the Euclidean length of a.
func (a Vector2) Length() float32 { return math32.Sqrt(a.Dot(a)) }

// Normal returns the unit-length vector in the direction of a. The zero
// vector maps to itself.
func (a Vector2) Normal() Vector2 {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.MulScalar(1 / l)
}

// Rot90CCW rotates a by +90 degrees about the origin.
func (a Vector2) Rot90CCW() Vector2 { return Vector2{-a.Y, a.X} }

// Rot90CW rotates a by -90 degrees about the origin.
func (a Vector2) Rot90CW() Vector2 { return Vector2{a.Y, -a.X} }

// Rot rotates a by angle radians about the given center.
func (a Vector2) Rot(angle float32, about Vector2) Vector2 {
	return RotateAbout2D(angle, about.X, about.Y).MulPoint(a)
}

// PerpCCW returns the unit normal 90 degrees counter-clockwise from a's
// direction; used by VarioBrush to offset a stroke segment to one side.
func (a Vector2) PerpCCW() Vector2 { return a.Normal().Rot90CCW() }

// PerpCW returns the unit normal 90 degrees clockwise from a's direction.
func (a Vector2) PerpCW() Vector2 { return a.Normal().Rot90CW() }

// DistTo returns the distance between a and b.
func (a Vector2) DistTo(b Vector2) float32 { return a.Sub(b).Length() }

// Lerp linearly interpolates between a and b at parameter t in [0,1].
func (a Vector2) Lerp(b Vector2, t float32) Vector2 {
	return Vector2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 { return deg * math32.Pi / 180 }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float32) float32 { return rad * 180 / math32.Pi }
