package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tileloom.dev/tileloom/xmath"
)

func TestIdentityTransformMatrixIsIdentity(t *testing.T) {
	m := IdentityTransform().Matrix(10, 10)
	got := m.MulPoint(xmath.Vec2(3, 4))
	assert.InDelta(t, float32(3), got.X, 1e-4)
	assert.InDelta(t, float32(4), got.Y, 1e-4)
}

func TestTransformMatrixTranslates(t *testing.T) {
	tr := IdentityTransform()
	tr.Left, tr.Top = 100, 50
	m := tr.Matrix(10, 10)
	got := m.MulPoint(xmath.Vec2(0, 0))
	assert.InDelta(t, float32(100), got.X, 1e-4)
	assert.InDelta(t, float32(50), got.Y, 1e-4)
}

func TestTransformMatrixScalesAboutOrigin(t *testing.T) {
	tr := IdentityTransform()
	tr.ScaleX, tr.ScaleY = 2, 2
	tr.OriginX, tr.OriginY = OriginXMid, OriginYMid
	m := tr.Matrix(10, 10)
	// center of a 10x10 box is (5,5); scaling about the center leaves it fixed.
	got := m.MulPoint(xmath.Vec2(5, 5))
	assert.InDelta(t, float32(5), got.X, 1e-4)
	assert.InDelta(t, float32(5), got.Y, 1e-4)
}

func TestEntityBoundsByKind(t *testing.T) {
	rect := Entity{Geometry: Geometry{Kind: KindRect, Width: 10, Height: 20}}
	w, h := rect.Bounds()
	assert.Equal(t, float32(10), w)
	assert.Equal(t, float32(20), h)

	circle := Entity{Geometry: Geometry{Kind: KindCircle, Radius: 5}}
	w, h = circle.Bounds()
	assert.Equal(t, float32(10), w)
	assert.Equal(t, float32(10), h)
}
