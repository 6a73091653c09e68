package components

import (
	"github.com/brawlworks/skybrawl/network"
	"github.com/yohamta/donburi"
)

// NetInterpData holds the snapshot buffer a remote avatar is rendered
// from. Nil for locally controlled avatars.
type NetInterpData struct {
	Buffer *network.FrameBuffer
}

var NetInterp = donburi.NewComponentType[NetInterpData]()
