package archetypes

import (
	"github.com/brawlworks/skybrawl/components"
	cfg "github.com/brawlworks/skybrawl/config"
	"github.com/brawlworks/skybrawl/shared/netcomponents"
	"github.com/brawlworks/skybrawl/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	// Avatar carries everything an arena participant needs; the control
	// mode on components.Avatar decides which systems touch it.
	Avatar = newArchetype(
		components.Avatar,
		components.Combat,
		components.NetInterp,
		components.Correction,
		netcomponents.NetPosition,
		netcomponents.NetVelocity,
		netcomponents.NetAvatarState,
	)
)

// LocalTag and RemoteTag are added at spawn time on top of the Avatar
// archetype for cheap queries.
var (
	LocalTag  = tags.LocalAvatar
	RemoteTag = tags.RemoteAvatar
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
