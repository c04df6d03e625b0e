package control

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Action names a hotkey-triggerable global command.
const (
	ActionUndo       = "undo"
	ActionRedo       = "redo"
	ActionGroup      = "group"
	ActionUngroup    = "ungroup"
	ActionMergePaths = "merge-paths"
)

// Combo is one key binding: a key name plus the modifiers that must
// all be held (Ctrl and Meta are treated interchangeably, matching
// "Ctrl/Cmd" in the hotkey table).
type Combo struct {
	Key        string `yaml:"key"`
	Shift      bool   `yaml:"shift"`
	CtrlOrMeta bool   `yaml:"ctrlOrMeta"`
}

// Matches reports whether the given key event satisfies this combo.
func (c Combo) Matches(key string, mods Modifiers) bool {
	if !strings.EqualFold(c.Key, key) {
		return false
	}
	if c.Shift != mods.Shift {
		return false
	}
	if c.CtrlOrMeta != (mods.Ctrl || mods.Meta) {
		return false
	}
	return true
}

// Keymap maps action names to their bound combo.
type Keymap map[string]Combo

// DefaultKeymap returns the built-in global hotkey table: undo, redo
// (two equivalent bindings collapse to the single redo action via two
// entries), group, ungroup, merge paths.
func DefaultKeymap() Keymap {
	return Keymap{
		ActionUndo:       {Key: "z", CtrlOrMeta: true},
		ActionRedo:       {Key: "y", CtrlOrMeta: true},
		"redo-shift-z":   {Key: "z", Shift: true, CtrlOrMeta: true},
		ActionGroup:      {Key: "g", CtrlOrMeta: true},
		ActionUngroup:    {Key: "g", Shift: true, CtrlOrMeta: true},
		ActionMergePaths: {Key: "m", CtrlOrMeta: true},
	}
}

// canonicalAction returns the canonical action name a (possibly aliased) keymap
// key maps to; "redo-shift-z" is an alias for ActionRedo.
func canonicalAction(key string) string {
	if key == "redo-shift-z" {
		return ActionRedo
	}
	return key
}

// ParseKeymap decodes a YAML keymap document, in the same shape
// DefaultKeymap produces, for user-overridable bindings.
func ParseKeymap(data []byte) (Keymap, error) {
	var raw Keymap
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// MarshalYAML encodes km back into the on-disk keymap document shape.
func (km Keymap) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(map[string]Combo(km))
}
