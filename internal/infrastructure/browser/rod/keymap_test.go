package rod

import (
	"testing"

	"github.com/go-rod/rod/lib/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyCombo_SingleKey(t *testing.T) {
	mods, key, err := parseKeyCombo("PageDown")
	require.NoError(t, err)
	assert.Empty(t, mods)
	assert.Equal(t, input.PageDown, key)
}

func TestParseKeyCombo_ModifierAndLetter(t *testing.T) {
	mods, key, err := parseKeyCombo("Control+a")
	require.NoError(t, err)
	assert.Equal(t, []input.Key{input.ControlLeft}, mods)
	assert.Equal(t, input.KeyA, key)
}

func TestParseKeyCombo_MultipleModifiers(t *testing.T) {
	mods, key, err := parseKeyCombo("ctrl+Shift+ArrowLeft")
	require.NoError(t, err)
	assert.Equal(t, []input.Key{input.ControlLeft, input.ShiftLeft}, mods)
	assert.Equal(t, input.ArrowLeft, key)
}

func TestParseKeyCombo_CaseInsensitive(t *testing.T) {
	mods, key, err := parseKeyCombo("CONTROL+ENTER")
	require.NoError(t, err)
	assert.Equal(t, []input.Key{input.ControlLeft}, mods)
	assert.Equal(t, input.Enter, key)
}

func TestParseKeyCombo_Digit(t *testing.T) {
	_, key, err := parseKeyCombo("Control+1")
	require.NoError(t, err)
	assert.Equal(t, input.Digit1, key)
}

func TestParseKeyCombo_DirectionAliases(t *testing.T) {
	_, key, err := parseKeyCombo("down")
	require.NoError(t, err)
	assert.Equal(t, input.ArrowDown, key)
}

func TestParseKeyCombo_UnknownModifier(t *testing.T) {
	_, _, err := parseKeyCombo("Hyper+a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Hyper")
}

func TestParseKeyCombo_UnknownKey(t *testing.T) {
	_, _, err := parseKeyCombo("Control+F13")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "F13")
}

func TestParseKeyCombo_Empty(t *testing.T) {
	_, _, err := parseKeyCombo("")
	require.Error(t, err)
}
