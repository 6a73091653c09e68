package systems

import (
	"github.com/brawlworks/skybrawl/components"
	"github.com/brawlworks/skybrawl/shared/gameclock"
	"github.com/brawlworks/skybrawl/shared/netcomponents"
	"github.com/brawlworks/skybrawl/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NewNetInterpSystem returns an ECS system that samples each remote
// avatar's frame buffer on the interpolation delay and writes the
// result to its position and velocity components.
func NewNetInterpSystem(clock gameclock.Clock) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		now := clock.Now().UnixMilli()
		tags.RemoteAvatar.Each(e.World, func(entry *donburi.Entry) {
			interp := components.NetInterp.Get(entry)
			if interp.Buffer == nil {
				return
			}
			frame, ok := interp.Buffer.Sample(now)
			if !ok {
				return
			}
			pos := netcomponents.NetPosition.Get(entry)
			vel := netcomponents.NetVelocity.Get(entry)
			pos.X, pos.Y = frame.X, frame.Y
			vel.VelX, vel.VelY = frame.VelX, frame.VelY
			if frame.Facing != 0 {
				components.Avatar.Get(entry).Facing = frame.Facing
			}
		})
	}
}
