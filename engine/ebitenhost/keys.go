package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/momo/engine"
)

var keyMap = map[engine.Key]ebiten.Key{
	engine.KeySpace:  ebiten.KeySpace,
	engine.KeyEscape: ebiten.KeyEscape,
	engine.KeyW:      ebiten.KeyW,
	engine.KeyA:      ebiten.KeyA,
	engine.KeyS:      ebiten.KeyS,
	engine.KeyD:      ebiten.KeyD,
	engine.KeyQ:      ebiten.KeyQ,
	engine.KeyR:      ebiten.KeyR,
	engine.KeyUp:     ebiten.KeyArrowUp,
	engine.KeyDown:   ebiten.KeyArrowDown,
	engine.KeyLeft:   ebiten.KeyArrowLeft,
	engine.KeyRight:  ebiten.KeyArrowRight,
}

func ebitenKey(k engine.Key) (ebiten.Key, bool) {
	ek, ok := keyMap[k]
	return ek, ok
}
