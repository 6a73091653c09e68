package components

import (
	"github.com/brawlworks/skybrawl/combat"
	"github.com/yohamta/donburi"
)

var Combat = donburi.NewComponentType[combat.State]()

// Damage is a one-shot damage event attached by a collision or hazard
// trigger and consumed exactly once by the combat system.
var Damage = donburi.NewComponentType[combat.DamageEvent]()
