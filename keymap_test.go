package termline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap(t *testing.T) {
	km := NewDefaultKeyMap()

	assert.Equal(t, ActionSubmit, km.GetAction('\r'))
	assert.Equal(t, ActionSubmit, km.GetAction('\n'))
	assert.Equal(t, ActionInterrupt, km.GetAction('\x03'))
	assert.Equal(t, ActionEOF, km.GetAction('\x04'))
	assert.Equal(t, ActionBackspace, km.GetAction('\x7f'))
	assert.Equal(t, ActionBackspace, km.GetAction('\b'))
	assert.Equal(t, ActionComplete, km.GetAction('\t'))
	assert.Equal(t, ActionMoveHome, km.GetAction('\x01'))
	assert.Equal(t, ActionMoveEnd, km.GetAction('\x05'))
	assert.Equal(t, ActionKillWordLeft, km.GetAction('\x17'))

	assert.Equal(t, ActionHistoryPrevious, km.GetSequenceAction("[A"))
	assert.Equal(t, ActionHistoryNext, km.GetSequenceAction("[B"))
	assert.Equal(t, ActionMoveRight, km.GetSequenceAction("[C"))
	assert.Equal(t, ActionMoveLeft, km.GetSequenceAction("[D"))
	assert.Equal(t, ActionMoveHome, km.GetSequenceAction("[H"))
	assert.Equal(t, ActionMoveEnd, km.GetSequenceAction("[F"))
	assert.Equal(t, ActionDelete, km.GetSequenceAction("[3~"))
	assert.Equal(t, ActionWordLeft, km.GetSequenceAction("b"))
	assert.Equal(t, ActionWordRight, km.GetSequenceAction("f"))
	assert.Equal(t, ActionKillWordLeft, km.GetSequenceAction("\x7f"))

	// Unbound keys and sequences report no action.
	assert.Equal(t, ActionNone, km.GetAction('\x02'))
	assert.Equal(t, ActionNone, km.GetSequenceAction("[Z"))
}

func TestKeyMapBind(t *testing.T) {
	km := NewDefaultKeyMap()

	km.Bind('\x02', ActionMoveLeft) // Ctrl+B, emacs style
	assert.Equal(t, ActionMoveLeft, km.GetAction('\x02'))

	// Rebinding replaces.
	km.Bind('\x02', ActionMoveRight)
	assert.Equal(t, ActionMoveRight, km.GetAction('\x02'))

	km.BindSequence("[1;5D", ActionWordLeft) // Ctrl+Left
	assert.Equal(t, ActionWordLeft, km.GetSequenceAction("[1;5D"))
}

func TestKeyMapNilSafety(t *testing.T) {
	var km *KeyMap
	assert.Equal(t, ActionNone, km.GetAction('\r'))
	assert.Equal(t, ActionNone, km.GetSequenceAction("[A"))
}

func TestCustomKeyMapOnEngine(t *testing.T) {
	km := NewDefaultKeyMap()
	km.Bind('\x0c', ActionMoveHome) // Ctrl+L repurposed

	mock := newMockSurface(80, 24)
	e := New(mock, WithKeyMap(km))
	e.Read("$ ")
	e.HandleData("a")
	e.HandleData("b")
	e.HandleData("\x0c")
	assert.Equal(t, 0, e.cursor)
}
