// Package hotkey binds key combinations to named actions and boolean options.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tide-actions/internal/message"
)

// ErrInvalidKeyBind is returned for key strings that do not parse.
var ErrInvalidKeyBind = errors.New("invalid key bind")

// KeyBind is one key with its modifiers, e.g. Ctrl+S or Alt+F5.
type KeyBind struct {
	Key  tcell.Key
	Rune rune // set when Key is tcell.KeyRune
	Mod  tcell.ModMask
}

// KeyBindSettings controls how a hotkey behaves when pressed.
type KeyBindSettings struct {
	// Toggle makes a hotkeyed boolean flip its value; otherwise the key only
	// switches it on.
	Toggle bool
	// MessageOutput is where feedback for this hotkey is shown.
	MessageOutput message.Output
}

// DefaultSettings toggles and reports on the custom hotbar.
var DefaultSettings = KeyBindSettings{Toggle: true, MessageOutput: message.OutputHotbar}

var modifierNames = []struct {
	name string
	mod  tcell.ModMask
}{
	{"Ctrl", tcell.ModCtrl},
	{"Alt", tcell.ModAlt},
	{"Shift", tcell.ModShift},
	{"Meta", tcell.ModMeta},
}

// keysByName maps lower-cased tcell key names to keys. The "Ctrl-X" names
// are left out; those are written as a Ctrl modifier plus a letter.
var keysByName = func() map[string]tcell.Key {
	m := map[string]tcell.Key{"escape": tcell.KeyEscape, "return": tcell.KeyEnter}
	for key, name := range tcell.KeyNames {
		if strings.HasPrefix(name, "Ctrl-") {
			continue
		}
		m[strings.ToLower(name)] = key
	}
	return m
}()

// ParseKeyBind parses strings such as "Ctrl+S", "Alt+F5", "Shift+Up" or "g".
func ParseKeyBind(s string) (KeyBind, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	if len(parts) == 0 || strings.TrimSpace(parts[len(parts)-1]) == "" {
		// "Ctrl++" style binds name the plus key
		if strings.HasSuffix(s, "++") {
			parts = append(parts[:len(parts)-2], "+")
		} else {
			return KeyBind{}, fmt.Errorf("%w: '%s'", ErrInvalidKeyBind, s)
		}
	}

	var kb KeyBind
	for _, part := range parts[:len(parts)-1] {
		mod, ok := parseModifier(part)
		if !ok {
			return KeyBind{}, fmt.Errorf("%w: unknown modifier '%s' in '%s'", ErrInvalidKeyBind, part, s)
		}
		kb.Mod |= mod
	}

	keyName := strings.TrimSpace(parts[len(parts)-1])
	if utf8.RuneCountInString(keyName) == 1 {
		r, _ := utf8.DecodeRuneInString(keyName)
		if kb.Mod&tcell.ModCtrl != 0 && isASCIILetter(r) {
			kb.Key = tcell.KeyCtrlA + tcell.Key(unicode.ToLower(r)-'a')
			return kb, nil
		}
		kb.Key, kb.Rune = tcell.KeyRune, unicode.ToLower(r)
		return kb, nil
	}
	if strings.EqualFold(keyName, "space") {
		kb.Key, kb.Rune = tcell.KeyRune, ' '
		return kb, nil
	}
	key, ok := keysByName[strings.ToLower(keyName)]
	if !ok {
		return KeyBind{}, fmt.Errorf("%w: unknown key '%s' in '%s'", ErrInvalidKeyBind, keyName, s)
	}
	kb.Key = key
	return kb, nil
}

// MustParseKeyBind is ParseKeyBind for built-in bindings known to be valid.
func MustParseKeyBind(s string) KeyBind {
	kb, err := ParseKeyBind(s)
	if err != nil {
		panic(err)
	}
	return kb
}

func parseModifier(name string) (tcell.ModMask, bool) {
	name = strings.TrimSpace(name)
	for _, m := range modifierNames {
		if strings.EqualFold(m.name, name) {
			return m.mod, true
		}
	}
	return 0, false
}

func isASCIILetter(r rune) bool {
	r = unicode.ToLower(r)
	return r >= 'a' && r <= 'z'
}

// ctrlLetter reports a Ctrl+letter bind. Tab, Enter and Backspace share
// codes with Ctrl+I, Ctrl+M and Ctrl+H and are told apart by the modifier.
func (k KeyBind) ctrlLetter() bool {
	return k.Mod&tcell.ModCtrl != 0 && k.Key >= tcell.KeyCtrlA && k.Key <= tcell.KeyCtrlZ
}

// IsZero reports whether no key is bound.
func (k KeyBind) IsZero() bool {
	return k == KeyBind{}
}

// Matches reports whether ev is this key combination.
func (k KeyBind) Matches(ev *tcell.EventKey) bool {
	if k.IsZero() {
		return false
	}
	mod := ev.Modifiers()
	if k.Key == tcell.KeyRune {
		// shift is implied by the rune's case
		return ev.Key() == tcell.KeyRune &&
			unicode.ToLower(ev.Rune()) == k.Rune &&
			mod&^tcell.ModShift == k.Mod&^tcell.ModShift
	}
	if ev.Key() != k.Key {
		return false
	}
	if k.ctrlLetter() {
		mod |= tcell.ModCtrl
	}
	return mod == k.Mod
}

// String formats the bind the way ParseKeyBind reads it.
func (k KeyBind) String() string {
	if k.IsZero() {
		return ""
	}
	var parts []string
	for _, m := range modifierNames {
		if k.Mod&m.mod != 0 {
			parts = append(parts, m.name)
		}
	}
	switch {
	case k.Key == tcell.KeyRune && k.Rune == ' ':
		parts = append(parts, "Space")
	case k.Key == tcell.KeyRune:
		parts = append(parts, string(k.Rune))
	case k.ctrlLetter():
		parts = append(parts, string(rune('A'+k.Key-tcell.KeyCtrlA)))
	default:
		parts = append(parts, tcell.KeyNames[k.Key])
	}
	return strings.Join(parts, "+")
}
