package rod

import (
	"fmt"
	"strings"

	"github.com/go-rod/rod/lib/input"
)

var modifierKeys = map[string]input.Key{
	"control":       input.ControlLeft,
	"ctrl":          input.ControlLeft,
	"controlormeta": input.ControlLeft,
	"shift":         input.ShiftLeft,
	"alt":           input.AltLeft,
	"meta":          input.MetaLeft,
	"cmd":           input.MetaLeft,
	"command":       input.MetaLeft,
}

var namedKeys = map[string]input.Key{
	"enter":      input.Enter,
	"return":     input.Enter,
	"tab":        input.Tab,
	"escape":     input.Escape,
	"esc":        input.Escape,
	"backspace":  input.Backspace,
	"delete":     input.Delete,
	"space":      input.Space,
	"home":       input.Home,
	"end":        input.End,
	"pageup":     input.PageUp,
	"pagedown":   input.PageDown,
	"arrowup":    input.ArrowUp,
	"arrowdown":  input.ArrowDown,
	"arrowleft":  input.ArrowLeft,
	"arrowright": input.ArrowRight,
	"up":         input.ArrowUp,
	"down":       input.ArrowDown,
	"left":       input.ArrowLeft,
	"right":      input.ArrowRight,
}

var letterKeys = map[rune]input.Key{
	'a': input.KeyA, 'b': input.KeyB, 'c': input.KeyC, 'd': input.KeyD,
	'e': input.KeyE, 'f': input.KeyF, 'g': input.KeyG, 'h': input.KeyH,
	'i': input.KeyI, 'j': input.KeyJ, 'k': input.KeyK, 'l': input.KeyL,
	'm': input.KeyM, 'n': input.KeyN, 'o': input.KeyO, 'p': input.KeyP,
	'q': input.KeyQ, 'r': input.KeyR, 's': input.KeyS, 't': input.KeyT,
	'u': input.KeyU, 'v': input.KeyV, 'w': input.KeyW, 'x': input.KeyX,
	'y': input.KeyY, 'z': input.KeyZ,
}

var digitKeys = map[rune]input.Key{
	'0': input.Digit0, '1': input.Digit1, '2': input.Digit2, '3': input.Digit3,
	'4': input.Digit4, '5': input.Digit5, '6': input.Digit6, '7': input.Digit7,
	'8': input.Digit8, '9': input.Digit9,
}

// parseKeyCombo splits a combination like "Control+a" or "PageDown" into
// modifier keys and the final key. Token names follow the names the
// reasoning service emits, case-insensitively.
func parseKeyCombo(combo string) ([]input.Key, input.Key, error) {
	tokens := strings.Split(combo, "+")
	if len(tokens) == 0 || combo == "" {
		return nil, 0, fmt.Errorf("empty key combination")
	}

	var modifiers []input.Key
	for _, token := range tokens[:len(tokens)-1] {
		mod, ok := modifierKeys[strings.ToLower(strings.TrimSpace(token))]
		if !ok {
			return nil, 0, fmt.Errorf("unknown modifier %q in combination %q", token, combo)
		}
		modifiers = append(modifiers, mod)
	}

	key, err := parseKey(tokens[len(tokens)-1])
	if err != nil {
		return nil, 0, fmt.Errorf("%w in combination %q", err, combo)
	}
	return modifiers, key, nil
}

func parseKey(token string) (input.Key, error) {
	token = strings.TrimSpace(token)
	lower := strings.ToLower(token)

	if key, ok := namedKeys[lower]; ok {
		return key, nil
	}
	if len([]rune(lower)) == 1 {
		r := []rune(lower)[0]
		if key, ok := letterKeys[r]; ok {
			return key, nil
		}
		if key, ok := digitKeys[r]; ok {
			return key, nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", token)
}
