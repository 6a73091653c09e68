package config

import (
	"github.com/brawlworks/skybrawl/shared/netconfig"
	"github.com/hajimehoshi/ebiten/v2"
)

// InputConfig holds keyboard bindings for the demo client.
type InputConfig struct {
	Bindings map[netconfig.ActionID][]ebiten.Key
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		Bindings: map[netconfig.ActionID][]ebiten.Key{
			netconfig.ActionMoveLeft:  {ebiten.KeyLeft, ebiten.KeyA},
			netconfig.ActionMoveRight: {ebiten.KeyRight, ebiten.KeyD},
			netconfig.ActionMoveUp:    {ebiten.KeyUp, ebiten.KeyW},
			netconfig.ActionMoveDown:  {ebiten.KeyDown, ebiten.KeyS},
			netconfig.ActionJump:      {ebiten.KeySpace},
			netconfig.ActionAttack:    {ebiten.KeyJ},
			netconfig.ActionSpecial:   {ebiten.KeyK},
		},
	}
}
