package brush

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tileloom.dev/tileloom/xmath"
)

func TestSingleSampleProducesDot(t *testing.T) {
	b := New(10)
	b.AddSample(xmath.Vec2(5, 5), 0)
	res, ok := b.Finish()
	require.True(t, ok)
	assert.NotEmpty(t, res.Path)
	assert.Equal(t, byte('M'), res.Path[0].Cmd)
}

func TestDroppedSamplesBelowThresholds(t *testing.T) {
	b := New(10)
	b.AddSample(xmath.Vec2(0, 0), 0)
	assert.False(t, b.AddSample(xmath.Vec2(0.2, 0.2), 0.5))
	assert.Equal(t, 1, b.Len())
}

func TestStrokeProducesClosedFillablePath(t *testing.T) {
	b := New(12)
	ts := 0.0
	for i := 0; i < 40; i++ {
		x := float32(i) * 4
		y := 20 + 5*float32(i%5)
		b.AddSample(xmath.Vec2(x, y), ts)
		ts += 16
	}
	res, ok := b.Finish()
	require.True(t, ok)
	require.NotEmpty(t, res.Path)
	assert.Equal(t, byte('Z'), res.Path[len(res.Path)-1].Cmd)
	assert.Less(t, res.Bounds[0], res.Bounds[2])
	assert.Less(t, res.Bounds[1], res.Bounds[3])
}

func TestFinishResetsBrush(t *testing.T) {
	b := New(8)
	b.AddSample(xmath.Vec2(0, 0), 0)
	b.AddSample(xmath.Vec2(10, 10), 20)
	_, ok := b.Finish()
	require.True(t, ok)
	assert.Equal(t, 0, b.Len())
}

func TestDouglasPeuckerDropsCollinearPoints(t *testing.T) {
	pts := []xmath.Vector2{
		xmath.Vec2(0, 0), xmath.Vec2(5, 0.1), xmath.Vec2(10, 0),
		xmath.Vec2(10, 10),
	}
	idx := douglasPeuckerIndices(pts, 1)
	assert.Equal(t, []int{0, 2, 3}, idx)
}
