package termline

// KeyAction is an editing operation triggered by a key or escape sequence.
type KeyAction int

// Actions the engine can dispatch to.
const (
	ActionNone KeyAction = iota
	ActionSubmit
	ActionInterrupt
	ActionEOF
	ActionBackspace
	ActionDelete
	ActionComplete
	ActionMoveLeft
	ActionMoveRight
	ActionMoveHome
	ActionMoveEnd
	ActionWordLeft
	ActionWordRight
	ActionKillWordLeft
	ActionHistoryPrevious
	ActionHistoryNext
)

// KeyMap maps control characters and escape sequences to actions.
type KeyMap struct {
	bindings  map[rune]KeyAction
	sequences map[string]KeyAction
}

// NewDefaultKeyMap creates the default bindings:
//
//   - Enter: submit (or insert a continuation newline on incomplete input)
//   - Backspace: delete left, Delete: delete at cursor
//   - Tab: autocomplete
//   - Ctrl+C: discard the current line, Ctrl+D: EOF on an empty buffer
//   - Ctrl+A/Home, Ctrl+E/End: line start/end
//   - Ctrl+W / Alt+Backspace: kill the word left of the cursor
//   - Arrow Left/Right: move cursor, Arrow Up/Down: browse history
//   - Alt+b / Alt+f (Alt+Left/Right on most terminals): word jump
func NewDefaultKeyMap() *KeyMap {
	km := &KeyMap{
		bindings:  make(map[rune]KeyAction),
		sequences: make(map[string]KeyAction),
	}

	km.bindings['\r'] = ActionSubmit
	km.bindings['\n'] = ActionSubmit
	km.bindings['\x03'] = ActionInterrupt // Ctrl+C
	km.bindings['\x04'] = ActionEOF       // Ctrl+D
	km.bindings['\x7f'] = ActionBackspace
	km.bindings['\b'] = ActionBackspace
	km.bindings['\t'] = ActionComplete
	km.bindings['\x01'] = ActionMoveHome     // Ctrl+A
	km.bindings['\x05'] = ActionMoveEnd      // Ctrl+E
	km.bindings['\x17'] = ActionKillWordLeft // Ctrl+W

	km.sequences["[A"] = ActionHistoryPrevious
	km.sequences["[B"] = ActionHistoryNext
	km.sequences["[C"] = ActionMoveRight
	km.sequences["[D"] = ActionMoveLeft
	km.sequences["[H"] = ActionMoveHome
	km.sequences["[F"] = ActionMoveEnd
	km.sequences["[3~"] = ActionDelete
	km.sequences["b"] = ActionWordLeft        // Alt+Left
	km.sequences["f"] = ActionWordRight       // Alt+Right
	km.sequences["\x7f"] = ActionKillWordLeft // Alt+Backspace

	return km
}

// Bind adds or replaces a binding for a single character.
func (km *KeyMap) Bind(key rune, action KeyAction) {
	km.bindings[key] = action
}

// BindSequence adds or replaces a binding for an escape sequence. The
// sequence excludes the leading ESC byte, e.g. "[A" for the Up arrow.
func (km *KeyMap) BindSequence(seq string, action KeyAction) {
	km.sequences[seq] = action
}

// GetAction returns the action bound to key, or ActionNone.
func (km *KeyMap) GetAction(key rune) KeyAction {
	if km == nil || km.bindings == nil {
		return ActionNone
	}
	return km.bindings[key]
}

// GetSequenceAction returns the action bound to an escape sequence, or
// ActionNone for unrecognized sequences, which the engine ignores.
func (km *KeyMap) GetSequenceAction(seq string) KeyAction {
	if km == nil || km.sequences == nil {
		return ActionNone
	}
	return km.sequences[seq]
}
