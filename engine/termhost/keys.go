package termhost

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/momo/engine"
)

var specialKeys = map[tcell.Key]engine.Key{
	tcell.KeyEscape: engine.KeyEscape,
	tcell.KeyUp:     engine.KeyUp,
	tcell.KeyDown:   engine.KeyDown,
	tcell.KeyLeft:   engine.KeyLeft,
	tcell.KeyRight:  engine.KeyRight,
}

var runeKeys = map[rune]engine.Key{
	' ': engine.KeySpace,
	'w': engine.KeyW,
	'a': engine.KeyA,
	's': engine.KeyS,
	'd': engine.KeyD,
	'q': engine.KeyQ,
	'r': engine.KeyR,
}

func engineKey(ev *tcell.EventKey) (engine.Key, bool) {
	if ev.Key() == tcell.KeyRune {
		k, ok := runeKeys[unicode.ToLower(ev.Rune())]
		return k, ok
	}
	k, ok := specialKeys[ev.Key()]
	return k, ok
}
