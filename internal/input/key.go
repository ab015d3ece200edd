package input

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Key is a single key press as the input trees match it.
// Keys for runes carry the rune in Ch; all other keys leave Ch zero.
type Key struct {
	Key tcell.Key
	Ch  rune
}

// KeyFromTcellEvent converts a terminal key event to a Key. Modifiers other
// than those tcell folds into the key (e.g. tcell.KeyCtrlA) are dropped.
func KeyFromTcellEvent(e *tcell.EventKey) Key {
	if e.Key() == tcell.KeyRune {
		return Rune(e.Rune())
	}
	return Key{Key: e.Key()}
}

// Rune returns the Key for typing the given character.
func Rune(ch rune) Key {
	return Key{Key: tcell.KeyRune, Ch: ch}
}

// namedKeys are the keys that are written as "<name>" in a keyspec.
var namedKeys = []struct {
	name string
	key  Key
}{
	{"space", Rune(' ')},
	{"lt", Rune('<')},
	{"cr", Key{Key: tcell.KeyEnter}},
	{"esc", Key{Key: tcell.KeyESC}},
	{"tab", Key{Key: tcell.KeyTab}},
	{"s-tab", Key{Key: tcell.KeyBacktab}},
	{"del", Key{Key: tcell.KeyDelete}},
	{"bs", Key{Key: tcell.KeyBackspace2}},
	{"c-bs", Key{Key: tcell.KeyBackspace}},
	{"c-space", Key{Key: tcell.KeyCtrlSpace}},
	{"up", Key{Key: tcell.KeyUp}},
	{"down", Key{Key: tcell.KeyDown}},
	{"left", Key{Key: tcell.KeyLeft}},
	{"right", Key{Key: tcell.KeyRight}},
	{"home", Key{Key: tcell.KeyHome}},
	{"end", Key{Key: tcell.KeyEnd}},
	{"pgup", Key{Key: tcell.KeyPgUp}},
	{"pgdn", Key{Key: tcell.KeyPgDn}},
}

// namedKey looks up "<name>" keys, including the control keys "c-a" through
// "c-z".
func namedKey(name string) (Key, bool) {
	for _, n := range namedKeys {
		if n.name == name {
			return n.key, true
		}
	}
	if len(name) == 3 && name[:2] == "c-" && name[2] >= 'a' && name[2] <= 'z' {
		return Key{Key: tcell.KeyCtrlA + tcell.Key(name[2]-'a')}, true
	}
	return Key{}, false
}

// String returns the keyspec notation of the key, e.g. "x", "<cr>" or
// "<c-a>".
func (k Key) String() string {
	for _, n := range namedKeys {
		if n.key == k {
			return "<" + n.name + ">"
		}
	}
	switch {
	case k.Key == tcell.KeyRune:
		return string(k.Ch)
	case k.Key >= tcell.KeyCtrlA && k.Key <= tcell.KeyCtrlZ:
		return fmt.Sprintf("<c-%c>", 'a'+rune(k.Key-tcell.KeyCtrlA))
	default:
		return fmt.Sprintf("<%s>", tcell.KeyNames[k.Key])
	}
}
