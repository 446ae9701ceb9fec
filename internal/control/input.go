package control

import (
	"strings"

	"MaskBoard/internal/geom"
)

// ActionKind is an abstract editor input, independent of the UI toolkit.
type ActionKind int

const (
	ActionClick ActionKind = iota
	ActionClose
	ActionToggleMode
	ActionClear
	ActionRemoveImage
)

func (k ActionKind) String() string {
	switch k {
	case ActionClick:
		return "click"
	case ActionClose:
		return "close"
	case ActionToggleMode:
		return "toggle-mode"
	case ActionClear:
		return "clear"
	case ActionRemoveImage:
		return "remove-image"
	}
	return "unknown"
}

// Action is one normalized input event. Point is only used by ActionClick
// and is in stage coordinates.
type Action struct {
	Kind  ActionKind
	Point geom.Point
}

func Click(x, y float64) Action { return Action{Kind: ActionClick, Point: geom.Pt(x, y)} }

// Keymap maps key names to actions. Names compare case-insensitively.
type Keymap map[string]ActionKind

// NewKeymap builds a keymap from key names; empty names are skipped.
func NewKeymap(closeKey, toggleKey, clearKey string) Keymap {
	km := Keymap{}
	km.bind(closeKey, ActionClose)
	km.bind(toggleKey, ActionToggleMode)
	km.bind(clearKey, ActionClear)
	return km
}

func (km Keymap) bind(key string, k ActionKind) {
	if key = strings.TrimSpace(key); key != "" {
		km[strings.ToLower(key)] = k
	}
}

// Lookup returns the action bound to key, if any.
func (km Keymap) Lookup(key string) (Action, bool) {
	k, ok := km[strings.ToLower(key)]
	if !ok {
		return Action{}, false
	}
	return Action{Kind: k}, true
}
