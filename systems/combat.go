package systems

import (
	"github.com/brawlworks/skybrawl/combat"
	"github.com/brawlworks/skybrawl/components"
	"github.com/brawlworks/skybrawl/shared/gameclock"
	"github.com/brawlworks/skybrawl/shared/messages"
	"github.com/brawlworks/skybrawl/shared/netcomponents"
	"github.com/brawlworks/skybrawl/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CombatReporter mirrors locally resolved combat results to peers.
type CombatReporter interface {
	SendHealthUpdate(messages.HealthUpdate) error
	SendDefeat(messages.DefeatEvent) error
}

// NewCombatSystem returns an ECS system that resolves queued damage
// events for the locally owned avatar, applies knockback and respawn
// side effects, and mirrors the resulting combat state to peers.
// reporter may be nil in offline practice mode.
func NewCombatSystem(clock gameclock.Clock, resolver *combat.Resolver, reporter CombatReporter) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		now := clock.Now().UnixMilli()

		// --------------------------------------------------------------
		// 1. Process queued damage events (consumed exactly once)
		// --------------------------------------------------------------
		var pending []*donburi.Entry
		components.Damage.Each(e.World, func(entry *donburi.Entry) {
			pending = append(pending, entry)
		})
		for _, entry := range pending {
			ev := *components.Damage.Get(entry)
			donburi.Remove[combat.DamageEvent](entry, components.Damage)

			avatar := components.Avatar.Get(entry)
			if avatar.Mode != components.ControlLocal {
				// Remote avatars are resolved by their owning client;
				// their state arrives as health updates.
				continue
			}

			cs := components.Combat.Get(entry)
			res := resolver.Resolve(cs, avatar.Weight, ev)
			if !res.Applied {
				continue
			}

			vel := netcomponents.NetVelocity.Get(entry)
			if res.Knockback != (combat.Knockback{}) {
				vel.VelX = res.Knockback.X
				vel.VelY = res.Knockback.Y
			}
			if res.Respawned {
				pos := netcomponents.NetPosition.Get(entry)
				pos.X, pos.Y = avatar.SpawnX, avatar.SpawnY
				vel.VelX, vel.VelY = 0, 0
			}
			if res.Defeated {
				vel.VelX, vel.VelY = 0, 0
			}

			if reporter != nil {
				_ = reporter.SendHealthUpdate(messages.HealthUpdate{
					Health:       cs.Health,
					Stocks:       cs.Stocks,
					Accumulated:  cs.Accumulated,
					Invulnerable: cs.Invulnerable(now),
				})
				if res.Defeated {
					_ = reporter.SendDefeat(messages.DefeatEvent{SourceID: ev.SourceID})
				}
			}
		}

		// --------------------------------------------------------------
		// 2. Debug: press H to hurt the local avatar by 10 HP
		// --------------------------------------------------------------
		if inpututil.IsKeyJustPressed(ebiten.KeyH) {
			tags.LocalAvatar.Each(e.World, func(entry *donburi.Entry) {
				if entry.HasComponent(components.Damage) {
					return
				}
				donburi.Add(entry, components.Damage, &combat.DamageEvent{
					Amount: 10,
					Type:   combat.Physical,
					Source: "debug",
				})
			})
		}

		// --------------------------------------------------------------
		// 3. Advance phase timers and mirror combat state for rendering
		// --------------------------------------------------------------
		components.Combat.Each(e.World, func(entry *donburi.Entry) {
			cs := components.Combat.Get(entry)
			cs.Tick(now)

			st := netcomponents.NetAvatarState.Get(entry)
			st.Health = cs.Health
			st.Stocks = cs.Stocks
			st.Accumulated = cs.Accumulated
			st.Invulnerable = cs.Invulnerable(now)
			st.Facing = components.Avatar.Get(entry).Facing
		})
	}
}
