package netcomponents

import (
	"github.com/brawlworks/skybrawl/shared/netconfig"
	"github.com/yohamta/donburi"
)

// NetAvatarStateData carries the discrete, non-interpolated avatar state.
type NetAvatarStateData struct {
	Facing       netconfig.Facing
	Health       int
	Stocks       int
	Accumulated  int    // Accumulated damage percent source value
	Invulnerable bool
	LastSequence uint64 // Last input sequence acknowledged (local avatar only)
}

var NetAvatarState = donburi.NewComponentType[NetAvatarStateData]()
