package xmath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// Matrix2 is a 2D affine transform, stored as the top two rows of the
// homogeneous 3x3 matrix:
//
//	| XX  XY  X0 |
//	| YX  YY  Y0 |
//	| 0   0   1  |
//
// MulPoint applies it as XX*x + XY*y + X0, YX*x + YY*y + Y0.
type Matrix2 struct {
	XX, YX, XY, YY, X0, Y0 float32
}

// Identity2 returns the identity transform.
func Identity2() Matrix2 { return Matrix2{XX: 1, YY: 1} }

// Translate2D returns a pure translation.
func Translate2D(x, y float32) Matrix2 { return Matrix2{XX: 1, YY: 1, X0: x, Y0: y} }

// Scale2D returns a pure scale about the origin.
func Scale2D(x, y float32) Matrix2 { return Matrix2{XX: x, YY: y} }

// Rotate2D returns a pure counter-clockwise rotation by angle radians
// about the origin.
func Rotate2D(angle float32) Matrix2 {
	s, c := math32.Sincos(angle)
	return Matrix2{XX: c, XY: -s, YX: s, YY: c}
}

// Shear2D returns a pure shear with the given x and y shear factors.
func Shear2D(shx, shy float32) Matrix2 {
	return Matrix2{XX: 1, XY: shx, YX: shy, YY: 1}
}

// RotateAbout2D returns a rotation by angle radians about the point (cx,cy).
func RotateAbout2D(angle, cx, cy float32) Matrix2 {
	return Translate2D(cx, cy).Mul(Rotate2D(angle)).Mul(Translate2D(-cx, -cy))
}

// Mul returns the composed transform a∘b, i.e. (a.Mul(b)).MulPoint(v) ==
// a.MulPoint(b.MulPoint(v)): b is applied first.
func (a Matrix2) Mul(b Matrix2) Matrix2 {
	return Matrix2{
		XX: a.XX*b.XX + a.XY*b.YX,
		XY: a.XX*b.XY + a.XY*b.YY,
		X0: a.XX*b.X0 + a.XY*b.Y0 + a.X0,
		YX: a.YX*b.XX + a.YY*b.YX,
		YY: a.YX*b.XY + a.YY*b.YY,
		Y0: a.YX*b.X0 + a.YY*b.Y0 + a.Y0,
	}
}

// MulPoint applies the transform to a point.
func (a Matrix2) MulPoint(v Vector2) Vector2 {
	return Vector2{
		X: a.XX*v.X + a.XY*v.Y + a.X0,
		Y: a.YX*v.X + a.YY*v.Y + a.Y0,
	}
}

// MulDir applies only the linear part of the transform (no translation),
// used for direction vectors and relative coordinate offsets.
func (a Matrix2) MulDir(v Vector2) Vector2 {
	return Vector2{X: a.XX*v.X + a.XY*v.Y, Y: a.YX*v.X + a.YY*v.Y}
}

// Translate appends a translation in the transform's local frame:
// m.Translate(x,y) == m.Mul(Translate2D(x,y)).
func (a Matrix2) Translate(x, y float32) Matrix2 { return a.Mul(Translate2D(x, y)) }

// Scale appends a scale in the transform's local frame.
func (a Matrix2) Scale(x, y float32) Matrix2 { return a.Mul(Scale2D(x, y)) }

// ScaleAbout appends a scale about the point (cx,cy) in the transform's
// local frame.
func (a Matrix2) ScaleAbout(sx, sy, cx, cy float32) Matrix2 {
	return a.Translate(cx, cy).Scale(sx, sy).Translate(-cx, -cy)
}

// Rotate appends a rotation by angle radians in the transform's local frame.
func (a Matrix2) Rotate(angle float32) Matrix2 { return a.Mul(Rotate2D(angle)) }

// RotateAbout appends a rotation about (cx,cy) in the transform's local frame.
func (a Matrix2) RotateAbout(angle, cx, cy float32) Matrix2 {
	return a.Translate(cx, cy).Rotate(angle).Translate(-cx, -cy)
}

// Shear appends a shear in the transform's local frame.
func (a Matrix2) Shear(shx, shy float32) Matrix2 { return a.Mul(Shear2D(shx, shy)) }

// Transpose swaps the off-diagonal entries of the linear part, leaving
// translation untouched. Used to turn a rotation into its inverse when
// transforming direction-only quantities (normals).
func (a Matrix2) Transpose() Matrix2 {
	return Matrix2{XX: a.XX, YY: a.YY, XY: a.YX, YX: a.XY, X0: a.X0, Y0: a.Y0}
}

// Inverse returns the inverse transform. If the matrix is singular the
// zero Matrix2 is returned.
func (a Matrix2) Inverse() Matrix2 {
	det := a.XX*a.YY - a.XY*a.YX
	if det == 0 {
		return Matrix2{}
	}
	id := 1 / det
	ixx := a.YY * id
	ixy := -a.XY * id
	iyx := -a.YX * id
	iyy := a.XX * id
	return Matrix2{
		XX: ixx, XY: ixy, YX: iyx, YY: iyy,
		X0: -(ixx*a.X0 + ixy*a.Y0),
		Y0: -(iyx*a.X0 + iyy*a.Y0),
	}
}

// Pos returns the translation component.
func (a Matrix2) Pos() (x, y float32) { return a.X0, a.Y0 }

// solveQuadraticFormula solves a*x^2 + b*x + c = 0 for real roots, using
// the numerically stable form that avoids catastrophic cancellation.
// It returns NaN for roots that do not exist, matching the degenerate
// cases a==0 (linear or no equation) and a negative discriminant.
func solveQuadraticFormula(a, b, c float32) (float32, float32) {
	if a == 0 {
		if b == 0 {
			if c == 0 {
				return 0, math32.NaN()
			}
			return math32.NaN(), math32.NaN()
		}
		return -c / b, math32.NaN()
	}

	if c == 0 {
		if b == 0 {
			return 0, math32.NaN()
		}
		return 0, -b / a
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return math32.NaN(), math32.NaN()
	}
	if discriminant == 0 {
		return -b / (2 * a), math32.NaN()
	}
	sq := math32.Sqrt(discriminant)
	if b < 0 {
		sq = -sq
	}
	q := -0.5 * (b + sq)
	x1, x2 := q/a, c/q
	if b < 0 {
		x1, x2 = x2, x1
	}
	return x1, x2
}

// Eigen returns the eigenvalues and corresponding unit eigenvectors of the
// transform's linear (rotation/scale/shear) part, ignoring translation.
func (a Matrix2) Eigen() (lambda1, lambda2 float32, v1, v2 Vector2) {
	// characteristic polynomial: lambda^2 - trace*lambda + det == 0
	trace := a.XX + a.YY
	det := a.XX*a.YY - a.XY*a.YX
	lambda1, lambda2 = solveQuadraticFormula(1, -trace, det)
	if math32.IsNaN(lambda2) && !math32.IsNaN(lambda1) {
		lambda2 = lambda1
	}
	v1 = eigenvector(a, lambda1)
	v2 = eigenvector(a, lambda2)
	return
}

func eigenvector(a Matrix2, lambda float32) Vector2 {
	if math32.IsNaN(lambda) {
		return Vector2{}
	}
	switch {
	case a.XY != 0:
		return Vector2{-a.XY, a.XX - lambda}.Normal()
	case a.YX != 0:
		return Vector2{a.YY - lambda, -a.YX}.Normal()
	case a.XX == lambda:
		return Vector2{1, 0}
	case a.YY == lambda:
		return Vector2{0, 1}
	default:
		return Vector2{}
	}
}

// Decompose factors the transform into translate∘rotate(phi)∘scale(sx,sy)∘
// rotate(theta), the polar/SVD-style decomposition used to recompute an
// arc's radii and x-axis-rotation after baking an arbitrary affine matrix
// into SVG path data.
func (a Matrix2) Decompose() (tx, ty, phi, sx, sy, theta float32) {
	tx, ty = a.Pos()

	e := (a.XX + a.YY) / 2
	f := (a.XX - a.YY) / 2
	g := (a.YX + a.XY) / 2
	h := (a.YX - a.XY) / 2

	q := math32.Sqrt(e*e + h*h)
	r := math32.Sqrt(f*f + g*g)
	sx = q + r
	sy = q - r

	a1 := math32.Atan2(g, f)
	a2 := math32.Atan2(h, e)

	theta = (a2 - a1) / 2
	phi = (a2 + a1) / 2
	return
}

// SetString parses an SVG transform-list attribute value into m, replacing
// its contents. It accepts "none" and a space-separated list of
// matrix(...)/translate(...)/scale(...)/rotate(...)/skewX(...)/skewY(...)
// function calls, composed in the SVG sense: each function is
// post-multiplied, so the rightmost function is applied first to the
// local geometry.
func (m *Matrix2) SetString(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		*m = Identity2()
		return nil
	}
	result := Identity2()
	for len(s) > 0 {
		open := strings.IndexByte(s, '(')
		if open < 0 {
			return fmt.Errorf("xmath: invalid transform %q", s)
		}
		fn := strings.TrimSpace(s[:open])
		close := strings.IndexByte(s[open:], ')')
		if close < 0 {
			return fmt.Errorf("xmath: unterminated transform %q", s)
		}
		close += open
		args, err := parseFloatList(s[open+1 : close])
		if err != nil {
			return fmt.Errorf("xmath: %q: %w", s, err)
		}
		op, err := transformOp(fn, args)
		if err != nil {
			return err
		}
		result = result.Mul(op)
		s = strings.TrimSpace(s[close+1:])
	}
	*m = result
	return nil
}

func transformOp(fn string, args []float32) (Matrix2, error) {
	arg := func(i int, def float32) float32 {
		if i < len(args) {
			return args[i]
		}
		return def
	}
	switch fn {
	case "matrix":
		if len(args) != 6 {
			return Matrix2{}, fmt.Errorf("xmath: matrix() wants 6 args, got %d", len(args))
		}
		return Matrix2{XX: args[0], YX: args[1], XY: args[2], YY: args[3], X0: args[4], Y0: args[5]}, nil
	case "translate":
		return Translate2D(arg(0, 0), arg(1, 0)), nil
	case "scale":
		sx := arg(0, 1)
		sy := sx
		if len(args) > 1 {
			sy = args[1]
		}
		return Scale2D(sx, sy), nil
	case "rotate":
		angle := DegToRad(arg(0, 0))
		if len(args) >= 3 {
			return RotateAbout2D(angle, args[1], args[2]), nil
		}
		return Rotate2D(angle), nil
	case "skewX":
		return Shear2D(math32.Tan(DegToRad(arg(0, 0))), 0), nil
	case "skewY":
		return Shear2D(0, math32.Tan(DegToRad(arg(0, 0)))), nil
	default:
		return Matrix2{}, fmt.Errorf("xmath: unknown transform function %q", fn)
	}
}

func parseFloatList(s string) ([]float32, error) {
	s = strings.ReplaceAll(s, ",", " ")
	fields := strings.Fields(s)
	out := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, err
		}
		out = append(out, float32(v))
	}
	return out, nil
}

// String renders m as an SVG transform-list attribute value, choosing the
// most compact recognizable function ("none", "translate", "scale", or
// "matrix") the way cogentcore's math32.Matrix2.String does.
func (a Matrix2) String() string {
	id := Identity2()
	if a == id {
		return "none"
	}
	if a.XY == 0 && a.YX == 0 {
		isTranslate := a.XX == 1 && a.YY == 1
		isScale := a.X0 == 0 && a.Y0 == 0
		switch {
		case isScale && !isTranslate:
			return fmt.Sprintf("scale(%v,%v)", a.XX, a.YY)
		case isTranslate && !isScale:
			return fmt.Sprintf("translate(%v,%v)", a.X0, a.Y0)
		case isTranslate && isScale:
			return "none"
		default:
			return fmt.Sprintf("translate(%v,%v) scale(%v,%v)", a.X0, a.Y0, a.XX, a.YY)
		}
	}
	return fmt.Sprintf("matrix(%v,%v,%v,%v,%v,%v)", a.XX, a.YX, a.XY, a.YY, a.X0, a.Y0)
}
