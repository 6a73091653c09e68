package messages

import (
	"github.com/brawlworks/skybrawl/shared/netconfig"
	"github.com/leap-fish/necs/esync"
)

// AttackEvent is broadcast when an avatar starts an attack.
type AttackEvent struct {
	AvatarID esync.NetworkId
	Attack   netconfig.AttackID
	Facing   netconfig.Facing
}

// SpawnEvent is broadcast when an avatar joins the arena.
type SpawnEvent struct {
	AvatarID esync.NetworkId
	Name     string
	X, Y     float64
	Weight   float64
}

// DespawnEvent is broadcast when an avatar leaves the arena.
type DespawnEvent struct {
	AvatarID esync.NetworkId
}

// DefeatEvent is broadcast when an avatar loses its last stock.
type DefeatEvent struct {
	AvatarID esync.NetworkId
	SourceID esync.NetworkId // 0 if environmental
}
