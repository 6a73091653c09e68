package components

import (
	"github.com/brawlworks/skybrawl/shared/netconfig"
	"github.com/yohamta/donburi"
)

// ControlMode gates which per-tick behavior applies to an avatar:
// local avatars are predicted and reconciled, remote avatars are
// interpolated. One avatar type with a mode tag, not a subclass split.
type ControlMode int

const (
	ControlLocal ControlMode = iota
	ControlRemote
)

type AvatarData struct {
	ID     uint
	Name   string
	Mode   ControlMode
	Weight float64
	Facing netconfig.Facing

	SpawnX, SpawnY float64
}

var Avatar = donburi.NewComponentType[AvatarData]()
