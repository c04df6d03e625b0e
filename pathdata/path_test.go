package pathdata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tileloom.dev/tileloom/xmath"
)

func TestParseSimpleCommands(t *testing.T) {
	p, err := Parse("M1 2L3 4H5V6Z")
	assert.NoError(t, err)
	assert.Equal(t, Path{
		{Cmd: 'M', Args: []float32{1, 2}},
		{Cmd: 'L', Args: []float32{3, 4}},
		{Cmd: 'H', Args: []float32{5}},
		{Cmd: 'V', Args: []float32{6}},
		{Cmd: 'Z', Args: nil},
	}, p)
}

func TestParseImplicitRepeatAndPacked(t *testing.T) {
	p, err := Parse("M0 0 10 10 20 20")
	assert.NoError(t, err)
	assert.Equal(t, Path{
		{Cmd: 'M', Args: []float32{0, 0}},
		{Cmd: 'L', Args: []float32{10, 10}},
		{Cmd: 'L', Args: []float32{20, 20}},
	}, p)

	p, err = Parse("M0 0l1.5.5-.5-1.5")
	assert.NoError(t, err)
	assert.Equal(t, Path{
		{Cmd: 'M', Args: []float32{0, 0}},
		{Cmd: 'l', Args: []float32{1.5, 0.5}},
		{Cmd: 'l', Args: []float32{-0.5, -1.5}},
	}, p)
}

func TestParseRejectsMissingLeadingCommand(t *testing.T) {
	_, err := Parse("1 2 3 4")
	assert.Error(t, err)
}

func TestPathRoundTrip(t *testing.T) {
	cases := []string{
		"M0 0L10 10L20 0Z",
		"M0 0C1 1 2 1 3 0",
		"M10 10A5 5 0 0 1 20 20",
		"M0 0l-.5-.5h1v1z",
	}
	for _, s := range cases {
		p1, err := Parse(s)
		assert.NoError(t, err)
		rendered := p1.String(3)
		p2, err := Parse(rendered)
		assert.NoError(t, err)
		assert.Equal(t, p1, p2, "round trip mismatch for %q (rendered %q)", s, rendered)
	}
}

func TestStringCompactFormatting(t *testing.T) {
	p := Path{{Cmd: 'M', Args: []float32{-0.5, 0.25}}}
	assert.Equal(t, "M-.5.25", p.String(3))
}

func TestIdentityTransformIsNoOp(t *testing.T) {
	p := MustParse("M0 0L10 5C1 1 2 2 3 3A5 5 0 0 1 20 20")
	got := p.Transform(xmath.Identity2())
	for i := range p {
		assert.Equal(t, p[i].Cmd, got[i].Cmd)
		for j := range p[i].Args {
			assert.InDelta(t, p[i].Args[j], got[i].Args[j], 1e-3)
		}
	}
}

func TestTransformAbsoluteLine(t *testing.T) {
	p := MustParse("M0 0L10 0")
	got := p.Transform(xmath.Translate2D(5, 5))
	assert.InDelta(t, float32(5), got[0].Args[0], 1e-4)
	assert.InDelta(t, float32(5), got[0].Args[1], 1e-4)
	assert.InDelta(t, float32(15), got[1].Args[0], 1e-4)
	assert.InDelta(t, float32(5), got[1].Args[1], 1e-4)
}

func TestTransformRelativeLineIgnoresTranslation(t *testing.T) {
	p := MustParse("M0 0l10 0")
	got := p.Transform(xmath.Translate2D(100, 100))
	assert.InDelta(t, float32(10), got[1].Args[0], 1e-4)
	assert.InDelta(t, float32(0), got[1].Args[1], 1e-4)
}

func TestTransformHVBecomesL(t *testing.T) {
	p := MustParse("M0 0H10V10")
	got := p.Transform(xmath.Rotate2D(xmath.DegToRad(90)))
	assert.Equal(t, byte('L'), got[1].Cmd)
	assert.Equal(t, byte('L'), got[2].Cmd)
}

func TestTransformArcRecomputesRadii(t *testing.T) {
	p := MustParse("M0 0A10 5 0 0 1 20 0")
	got := p.Transform(xmath.Scale2D(2, 2))
	assert.InDelta(t, float32(20), got[0].Args[0], 1e-3)
	assert.InDelta(t, float32(10), got[0].Args[1], 1e-3)
}

func TestBoundsOfLineSquare(t *testing.T) {
	p := MustParse("M0 0L10 0L10 10L0 10Z")
	minX, minY, maxX, maxY := p.Bounds()
	assert.InDelta(t, float32(0), minX, 1e-3)
	assert.InDelta(t, float32(0), minY, 1e-3)
	assert.InDelta(t, float32(10), maxX, 1e-3)
	assert.InDelta(t, float32(10), maxY, 1e-3)
}
