// Package command implements the reversible command stack: every
// state-mutating action is recorded as a Command, executed, and pushed
// onto a capped undo stack with same-kind, same-target merging inside a
// short time window. Grounded on cogentcore's base/stack.Stack generic
// slice-stack for the two bounded stacks, and on jinzhu/copier for
// deep-copying entity before/after snapshots into Command payloads
// without hand-written field-by-field copy code.
package command

import (
	"log/slog"
	"time"

	"github.com/jinzhu/copier"

	"tileloom.dev/tileloom/idgen"
	"tileloom.dev/tileloom/logx"
)

// Cap is the maximum depth of the undo stack; the oldest entries are
// trimmed once this is exceeded.
const Cap = 100

// MergeWindow is the interval within which two mergeable commands on the
// same target collapse into a single undo entry.
const MergeWindow = 500 * time.Millisecond

// Kind names the category of a command, used for serialization and for
// merge-eligibility ("only transform commands on the same entity
// merge").
type Kind string

const (
	KindCreate      Kind = "create"
	KindDelete      Kind = "delete"
	KindTransform   Kind = "transform"
	KindProperty    Kind = "property"
	KindZOrder      Kind = "zorder"
	KindLayerMove   Kind = "layer-move"
	KindLayerReorder Kind = "layer-reorder"
	KindGroup       Kind = "group"
	KindUngroup     Kind = "ungroup"
	KindMerge       Kind = "merge"
)

// References names the objects a command touches, for the project
// codec and for UI summaries.
type References struct {
	EntityIDs []idgen.ID
	GroupIDs  []idgen.ID
	LayerIDs  []idgen.ID
}

// Command is one undoable unit of work. Executors implement Execute and
// Undo directly against the scene packages (scene.CanonicalStore,
// scene.LayerTable, scene.EntityGroupIndex); CommandStack never reaches
// into scene state itself.
type Command interface {
	Kind() Kind
	Description() string
	References() References
	Execute()
	Undo()
}

// Mergeable is implemented by commands that may collapse into the
// previous undo-stack entry when executed within MergeWindow of it.
type Mergeable interface {
	Command
	CanMerge(next Command) bool
	MergeWith(next Command) Command
}

// entry pairs a Command with the timestamp it was pushed at, used for
// merge-window comparisons.
type entry struct {
	cmd Command
	at  time.Time
}

// Stack is the two-stack undo/redo engine. Clock is overridable for
// deterministic tests; it defaults to time.Now.
type Stack struct {
	undo []entry
	redo []entry

	inTransaction bool

	// Clock returns the current time; tests substitute a fixed-step
	// fake to exercise the merge window deterministically.
	Clock func() time.Time

	Changed func()
}

// NewStack returns an empty command stack.
func NewStack() *Stack {
	return &Stack{Clock: time.Now}
}

// InTransaction reports whether an execute/undo/redo callback is
// currently running, i.e. whether a nested Execute call would be
// silently ignored.
func (s *Stack) InTransaction() bool { return s.inTransaction }

// Execute runs cmd and pushes it onto the undo stack, merging with the
// top entry if that entry is Mergeable, its CanMerge accepts cmd, and
// it was pushed within the merge window. Calls made while already executing are silently
// ignored — the reentrancy-ignored case is by design, not an error.
func (s *Stack) Execute(cmd Command) bool {
	if s.inTransaction {
		return false
	}
	s.inTransaction = true
	defer func() { s.inTransaction = false }()

	cmd.Execute()
	now := s.Clock()

	if n := len(s.undo); n > 0 {
		top := s.undo[n-1]
		if tm, ok := top.cmd.(Mergeable); ok && now.Sub(top.at) < MergeWindow {
			if tm.CanMerge(cmd) {
				s.undo[n-1] = entry{cmd: tm.MergeWith(cmd), at: now}
				s.redo = nil
				s.notify()
				return true
			}
		}
	}

	s.undo = append(s.undo, entry{cmd: cmd, at: now})
	if len(s.undo) > Cap {
		s.undo = s.undo[len(s.undo)-Cap:]
	}
	s.redo = nil
	s.notify()
	return true
}

// Undo pops the top undo entry, calls its Undo, and pushes it onto the
// redo stack. Reports whether anything happened.
func (s *Stack) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	s.inTransaction = true
	defer func() { s.inTransaction = false }()

	n := len(s.undo)
	top := s.undo[n-1]
	s.undo = s.undo[:n-1]
	top.cmd.Undo()
	s.redo = append(s.redo, top)
	s.notify()
	return true
}

// Redo pops the top redo entry, re-executes it, and pushes it back onto
// the undo stack. Reports whether anything happened.
func (s *Stack) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}
	s.inTransaction = true
	defer func() { s.inTransaction = false }()

	n := len(s.redo)
	top := s.redo[n-1]
	s.redo = s.redo[:n-1]
	top.cmd.Execute()
	s.undo = append(s.undo, top)
	s.notify()
	return true
}

func (s *Stack) notify() {
	if s.Changed != nil {
		s.Changed()
	}
}

// UndoLen, RedoLen report current stack depths, for UI enablement.
func (s *Stack) UndoLen() int { return len(s.undo) }
func (s *Stack) RedoLen() int { return len(s.redo) }

// Snapshot deep-copies v (typically a scene.Entity) for use as a
// Command's before/after state, so later mutation of the live object
// can't retroactively corrupt a recorded undo entry.
func Snapshot[T any](v T) T {
	var out T
	if err := copier.CopyWithOption(&out, &v, copier.Option{DeepCopy: true}); err != nil {
		logx.Printf(slog.LevelError, "command: snapshot copy failed: %v", err)
	}
	return out
}
