// Package control implements the tool state machine that turns a
// pointer/keyboard event stream into scene mutations. It never reaches
// into scene state directly; like render.Renderer and hittest.Tester,
// it is wired to the concrete store/command machinery through injected
// function fields, the same host-supplied-callback convention those
// packages use.
package control

import (
	"tileloom.dev/tileloom/idgen"
	"tileloom.dev/tileloom/scene"
)

// Tool names one of the controller's states.
type Tool string

const (
	ToolSelect        Tool = "select"
	ToolBrush         Tool = "brush"
	ToolVarioBrush    Tool = "vario-brush"
	ToolEraser        Tool = "eraser"
	ToolShape         Tool = "shape"
	ToolImportPending Tool = "import-pending"
)

// NudgeStep is the keyboard-arrow nudge distance in points; with Shift
// held the nudge is NudgeFastStep instead.
const (
	NudgeStep     = 1
	NudgeFastStep = 10
)

// MinShapeSize is the minimum width/height (rect) or radius (circle) a
// drawn shape must reach to be committed.
const MinShapeSize = 5

// State is the controller's current tool and its parameters.
type State struct {
	Tool        Tool
	BrushSize   float32
	Color       scene.Color
	VarioFactor float32
	ShapeKind   scene.Kind // rect or circle, meaningful only when Tool == ToolShape
}

// Modifiers reports which modifier keys were held during an event.
type Modifiers struct {
	Shift, Ctrl, Meta bool
}

// Point is a pointer position in tile space.
type Point struct{ X, Y float32 }

// Hooks are the callbacks a host wires the controller to. Every field
// is optional; a nil hook means that contract is a no-op.
type Hooks struct {
	HitTest       func(p Point) (idgen.ID, bool)
	CreateProxy   func(id idgen.ID)
	BeginDragSelect func(p Point)
	UpdateDragSelect func(p Point)
	EndDragSelect func(p Point, additive bool)
	NudgeSelection func(dx, dy float32)

	AppendFreehand func(p Point)
	CommitFreehand func(color scene.Color)

	AppendVario func(p Point, t float64)
	CommitVario func(color scene.Color)

	BeginShape  func(p Point)
	UpdateShape func(p Point)
	CommitShape func(kind scene.Kind, ok bool)

	Undo       func()
	Redo       func()
	Group      func()
	Ungroup    func()
	MergePaths func()
}

// Controller drives State transitions and routes events to Hooks
// according to the current tool's event contract.
type Controller struct {
	State State
	Hooks Hooks
	Keys  Keymap

	// TextFieldFocused suppresses every global hotkey while true.
	TextFieldFocused bool

	shapeOrigin Point
	inShape     bool
	lastShapeW  float32
	lastShapeH  float32
}

// NewController returns a Controller starting in Select.
func NewController(hooks Hooks) *Controller {
	return &Controller{State: State{Tool: ToolSelect}, Hooks: hooks, Keys: DefaultKeymap()}
}

// SetTool switches the active tool. Tool switches are never undoable.
func (c *Controller) SetTool(s State) { c.State = s }

// PointerDown dispatches a pointer-down event per the active tool's
// contract.
func (c *Controller) PointerDown(p Point, mods Modifiers) {
	switch c.State.Tool {
	case ToolSelect:
		if c.Hooks.HitTest == nil {
			return
		}
		if id, ok := c.Hooks.HitTest(p); ok {
			if c.Hooks.CreateProxy != nil {
				c.Hooks.CreateProxy(id)
			}
			return
		}
		if c.Hooks.BeginDragSelect != nil {
			c.Hooks.BeginDragSelect(p)
		}
	case ToolBrush, ToolEraser:
		if c.Hooks.AppendFreehand != nil {
			c.Hooks.AppendFreehand(p)
		}
	case ToolVarioBrush:
		if c.Hooks.AppendVario != nil {
			c.Hooks.AppendVario(p, 0)
		}
	case ToolShape:
		c.shapeOrigin = p
		c.inShape = true
		c.lastShapeW, c.lastShapeH = 0, 0
		if c.Hooks.BeginShape != nil {
			c.Hooks.BeginShape(p)
		}
	}
}

// PointerMove dispatches a pointer-move event.
func (c *Controller) PointerMove(p Point) {
	switch c.State.Tool {
	case ToolSelect:
		if c.Hooks.UpdateDragSelect != nil {
			c.Hooks.UpdateDragSelect(p)
		}
	case ToolBrush, ToolEraser:
		if c.Hooks.AppendFreehand != nil {
			c.Hooks.AppendFreehand(p)
		}
	case ToolVarioBrush:
		if c.Hooks.AppendVario != nil {
			c.Hooks.AppendVario(p, 0)
		}
	case ToolShape:
		if c.inShape {
			c.lastShapeW = abs(p.X - c.shapeOrigin.X)
			c.lastShapeH = abs(p.Y - c.shapeOrigin.Y)
		}
		if c.Hooks.UpdateShape != nil {
			c.Hooks.UpdateShape(p)
		}
	}
}

// PointerUp dispatches a pointer-up event, closing out whichever tool
// is active.
func (c *Controller) PointerUp(p Point, mods Modifiers) {
	switch c.State.Tool {
	case ToolSelect:
		if c.Hooks.EndDragSelect != nil {
			c.Hooks.EndDragSelect(p, mods.Shift || mods.Ctrl || mods.Meta)
		}
	case ToolBrush, ToolEraser:
		if c.Hooks.CommitFreehand != nil {
			c.Hooks.CommitFreehand(c.State.Color)
		}
	case ToolVarioBrush:
		if c.Hooks.CommitVario != nil {
			c.Hooks.CommitVario(c.State.Color)
		}
	case ToolShape:
		ok := shapeMeetsMinimum(c.State.ShapeKind, c.lastShapeW, c.lastShapeH)
		if c.Hooks.CommitShape != nil {
			c.Hooks.CommitShape(c.State.ShapeKind, ok)
		}
		c.inShape = false
	}
}

// shapeMeetsMinimum applies the rect (w>=5 and h>=5) or circle (r>=5)
// minimum-size threshold below which a drawn shape is discarded.
func shapeMeetsMinimum(kind scene.Kind, w, h float32) bool {
	if kind == scene.KindCircle {
		r := w
		if h > r {
			r = h
		}
		return r/2 >= MinShapeSize
	}
	return w >= MinShapeSize && h >= MinShapeSize
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// KeyDown dispatches a keyboard event: arrow-key nudges in Select, and
// global hotkeys (unless a text field owns focus).
func (c *Controller) KeyDown(key string, mods Modifiers) {
	if c.State.Tool == ToolSelect {
		if dx, dy, ok := arrowDelta(key); ok {
			step := float32(NudgeStep)
			if mods.Shift {
				step = NudgeFastStep
			}
			if c.Hooks.NudgeSelection != nil {
				c.Hooks.NudgeSelection(dx*step, dy*step)
			}
			return
		}
	}
	if c.TextFieldFocused {
		return
	}
	c.dispatchHotkey(key, mods)
}

func arrowDelta(key string) (dx, dy float32, ok bool) {
	switch key {
	case "ArrowLeft":
		return -1, 0, true
	case "ArrowRight":
		return 1, 0, true
	case "ArrowUp":
		return 0, -1, true
	case "ArrowDown":
		return 0, 1, true
	}
	return 0, 0, false
}

func (c *Controller) dispatchHotkey(key string, mods Modifiers) {
	for action, combo := range c.Keys {
		if combo.Matches(key, mods) {
			c.runAction(action)
		}
	}
}

func (c *Controller) runAction(action string) {
	switch canonicalAction(action) {
	case ActionUndo:
		if c.Hooks.Undo != nil {
			c.Hooks.Undo()
		}
	case ActionRedo:
		if c.Hooks.Redo != nil {
			c.Hooks.Redo()
		}
	case ActionGroup:
		if c.Hooks.Group != nil {
			c.Hooks.Group()
		}
	case ActionUngroup:
		if c.Hooks.Ungroup != nil {
			c.Hooks.Ungroup()
		}
	case ActionMergePaths:
		if c.Hooks.MergePaths != nil {
			c.Hooks.MergePaths()
		}
	}
}
