package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tileloom.dev/tileloom/idgen"
	"tileloom.dev/tileloom/scene"
)

func TestSelectPointerDownOnHitCreatesProxy(t *testing.T) {
	var created idgen.ID
	var dragStarted bool
	c := NewController(Hooks{
		HitTest:         func(p Point) (idgen.ID, bool) { return "e1", true },
		CreateProxy:     func(id idgen.ID) { created = id },
		BeginDragSelect: func(p Point) { dragStarted = true },
	})
	c.PointerDown(Point{10, 10}, Modifiers{})
	assert.Equal(t, idgen.ID("e1"), created)
	assert.False(t, dragStarted)
}

func TestSelectPointerDownOnMissBeginsDragSelect(t *testing.T) {
	var dragStarted bool
	c := NewController(Hooks{
		HitTest:         func(p Point) (idgen.ID, bool) { return "", false },
		BeginDragSelect: func(p Point) { dragStarted = true },
	})
	c.PointerDown(Point{10, 10}, Modifiers{})
	assert.True(t, dragStarted)
}

func TestShapeBelowMinimumSizeIsDiscarded(t *testing.T) {
	var committed, ok bool
	c := NewController(Hooks{CommitShape: func(kind scene.Kind, accepted bool) { committed = true; ok = accepted }})
	c.SetTool(State{Tool: ToolShape, ShapeKind: scene.KindRect})
	c.PointerDown(Point{0, 0}, Modifiers{})
	c.PointerMove(Point{2, 2})
	c.PointerUp(Point{2, 2}, Modifiers{})
	require.True(t, committed)
	assert.False(t, ok)
}

func TestShapeAtOrAboveMinimumSizeCommits(t *testing.T) {
	var ok bool
	c := NewController(Hooks{CommitShape: func(kind scene.Kind, accepted bool) { ok = accepted }})
	c.SetTool(State{Tool: ToolShape, ShapeKind: scene.KindRect})
	c.PointerDown(Point{0, 0}, Modifiers{})
	c.PointerMove(Point{6, 6})
	c.PointerUp(Point{6, 6}, Modifiers{})
	assert.True(t, ok)
}

func TestArrowNudgeStepsAndShiftFast(t *testing.T) {
	var dx, dy float32
	c := NewController(Hooks{NudgeSelection: func(ndx, ndy float32) { dx, dy = ndx, ndy }})
	c.KeyDown("ArrowRight", Modifiers{})
	assert.Equal(t, float32(NudgeStep), dx)
	assert.Equal(t, float32(0), dy)

	c.KeyDown("ArrowDown", Modifiers{Shift: true})
	assert.Equal(t, float32(NudgeFastStep), dy)
}

func TestUndoHotkeyFiresAndSuppressedDuringTextFocus(t *testing.T) {
	var undone int
	c := NewController(Hooks{Undo: func() { undone++ }})
	c.KeyDown("z", Modifiers{Ctrl: true})
	assert.Equal(t, 1, undone)

	c.TextFieldFocused = true
	c.KeyDown("z", Modifiers{Ctrl: true})
	assert.Equal(t, 1, undone)
}

func TestRedoHotkeyAcceptsBothBindings(t *testing.T) {
	var redone int
	c := NewController(Hooks{Redo: func() { redone++ }})
	c.KeyDown("y", Modifiers{Ctrl: true})
	c.KeyDown("z", Modifiers{Ctrl: true, Shift: true})
	assert.Equal(t, 2, redone)
}

func TestParseKeymapRoundTrips(t *testing.T) {
	km := DefaultKeymap()
	data, err := km.MarshalYAML()
	require.NoError(t, err)

	parsed, err := ParseKeymap(data)
	require.NoError(t, err)
	assert.Equal(t, km[ActionUndo], parsed[ActionUndo])
}
