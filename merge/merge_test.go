package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tileloom.dev/tileloom/pathdata"
	"tileloom.dev/tileloom/scene"
)

func TestMergeBakesTranslationIntoAbsoluteCoordinates(t *testing.T) {
	a := scene.NewEntity("a", scene.Geometry{Kind: scene.KindRect, Width: 10, Height: 10}, "layer1")
	a.Transform.Left, a.Transform.Top = 100, 200

	b := scene.NewEntity("b", scene.Geometry{Kind: scene.KindCircle, Radius: 5}, "layer1")
	b.Transform.Left, b.Transform.Top = 300, 300

	path, appearance, err := Merge([]scene.Entity{a, b})
	require.NoError(t, err)
	require.NotEmpty(t, path)
	assert.Equal(t, byte('M'), path[0].Cmd)
	assert.Equal(t, a.Appearance, appearance)

	// first segment of a's rect is M(0,0) baked by translate(100,200)
	assert.InDelta(t, 100, path[0].Args[0], 1e-3)
	assert.InDelta(t, 200, path[0].Args[1], 1e-3)
}

func TestMergeRejectsFewerThanTwoEntities(t *testing.T) {
	a := scene.NewEntity("a", scene.Geometry{Kind: scene.KindRect, Width: 10, Height: 10}, "layer1")
	_, _, err := Merge([]scene.Entity{a})
	assert.Error(t, err)
}

func TestMergeBakedPathStringElidesRepeatedCommands(t *testing.T) {
	a := scene.NewEntity("a", scene.Geometry{Kind: scene.KindPath, Path: pathdata.MustParse("M10 20L30 40")}, "layer1")
	a.Transform.ScaleX, a.Transform.ScaleY = 2, 2

	b := scene.NewEntity("b", scene.Geometry{Kind: scene.KindPath, Path: pathdata.MustParse("M50 60")}, "layer1")
	b.Transform.Left = 100

	path, _, err := Merge([]scene.Entity{a, b})
	require.NoError(t, err)
	assert.Equal(t, "M20 40 60 80M150 60", path.String(3))
}

func TestMergeRejectsNonConvertibleKind(t *testing.T) {
	a := scene.NewEntity("a", scene.Geometry{Kind: scene.KindRect, Width: 10, Height: 10}, "layer1")
	b := scene.NewEntity("b", scene.Geometry{Kind: scene.KindImage, ImageWidth: 4, ImageHeight: 4}, "layer1")
	_, _, err := Merge([]scene.Entity{a, b})
	assert.Error(t, err)
}
