package core

import "strings"

// Action is an abstract player intent. Front ends translate keys, MCP
// calls and WebSocket messages into actions.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionDrop
	ActionConfirm
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause
	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Drop",
	"Confirm", "Back", "Restart", "Quit", "Pause",
}

func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions collected during one tick. The zero
// value is an empty frame.
type InputFrame struct {
	set uint16
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// FrameOf builds a frame holding actions.
func FrameOf(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set adds a. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.set |= 1 << a
}

func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.set&(1<<a) != 0
}

func (f InputFrame) Empty() bool {
	return f.set == 0
}

// Clear empties the frame for the next tick.
func (f *InputFrame) Clear() {
	f.set = 0
}

// Clone returns a copy; frames are values so this is a plain copy.
func (f InputFrame) Clone() InputFrame {
	return f
}

// Actions lists the set actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionUp; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

func (f InputFrame) String() string {
	names := make([]string, 0, 4)
	for _, a := range f.Actions() {
		names = append(names, a.String())
	}
	return "[" + strings.Join(names, " ") + "]"
}
