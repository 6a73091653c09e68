package scenes

import (
	"math"

	cfg "github.com/brawlworks/skybrawl/config"
	"github.com/brawlworks/skybrawl/shared/messages"
	"github.com/brawlworks/skybrawl/shared/netconfig"
	"github.com/leap-fish/necs/esync"
)

const (
	practiceGhostID esync.NetworkId = 9001
	ghostBaseX                      = 440.0
	ghostRangeX                     = 120.0
	ghostPeriodMs                   = 4000.0
	ghostAttackEvery                = 180 // ticks
)

// practiceGhost is the offline sparring partner: a scripted mover whose
// frames and attacks go through the exact same ingest paths as live
// network traffic, so prediction, interpolation and combat can be
// exercised without a server.
type practiceGhost struct {
	ticks int
}

func newPracticeGhost() *practiceGhost {
	return &practiceGhost{}
}

func (g *practiceGhost) tick(as *ArenaScene) {
	g.ticks++

	// Feed a frame at roughly the live position-update rate.
	if g.ticks%3 != 0 {
		return
	}

	now := as.clock.Now().UnixMilli()
	phase := 2 * math.Pi * float64(now%int64(ghostPeriodMs)) / ghostPeriodMs
	x := ghostBaseX + ghostRangeX*math.Sin(phase)
	velX := ghostRangeX * math.Cos(phase) * 2 * math.Pi / ghostPeriodMs

	facing := netconfig.FacingRight
	if velX < 0 {
		facing = netconfig.FacingLeft
	}

	entry, ok := as.remoteEntry(practiceGhostID)
	if !ok {
		return
	}
	as.ingestRemoteFrame(entry, messages.AvatarFrame{
		AvatarID:  practiceGhostID,
		X:         x,
		Y:         cfg.Arena.SpawnY,
		VelX:      velX,
		Facing:    facing,
		Timestamp: now,
	})

	if g.ticks%ghostAttackEvery == 0 {
		as.applyRemoteAttack(messages.AttackEvent{
			AvatarID: practiceGhostID,
			Attack:   netconfig.AttackJab,
			Facing:   facing,
		})
	}
}
