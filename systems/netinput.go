package systems

import (
	"log"
	"time"

	"github.com/brawlworks/skybrawl/combat"
	"github.com/brawlworks/skybrawl/components"
	cfg "github.com/brawlworks/skybrawl/config"
	"github.com/brawlworks/skybrawl/network"
	"github.com/brawlworks/skybrawl/shared/gameclock"
	"github.com/brawlworks/skybrawl/shared/messages"
	"github.com/brawlworks/skybrawl/shared/netcomponents"
	"github.com/brawlworks/skybrawl/shared/netconfig"
	"github.com/brawlworks/skybrawl/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// Sender is the subset of the transport adapter the input system needs.
// Nil in offline practice mode.
type Sender interface {
	SendInput(messages.PlayerInput) error
	SendAttack(netconfig.AttackID, netconfig.Facing) error
	SendPositionUpdate(messages.AvatarFrame) error
}

type netInputState struct {
	last        network.InputState
	lastSeq     uint64
	lastSend    time.Time
	attackHeld  bool
	specialHeld bool
}

// NewNetworkInputSystem returns an ECS system that polls the keyboard,
// feeds the predictor every frame, and sends PlayerInput messages when
// the input state changes (with a keepalive resend against drops).
func NewNetworkInputSystem(clock gameclock.Clock, pred *network.Predictor, sender Sender) func(*ecs.ECS) {
	state := &netInputState{}
	bindings := cfg.Input.Bindings

	return func(e *ecs.ECS) {
		entry, ok := tags.LocalAvatar.First(e.World)
		if !ok {
			return
		}
		// Defeated is terminal: no movement, no prediction, nothing
		// reported to peers.
		if components.Combat.Get(entry).Phase == combat.PhaseDefeated {
			return
		}
		pos := netcomponents.NetPosition.Get(entry)
		vel := netcomponents.NetVelocity.Get(entry)
		avatar := components.Avatar.Get(entry)

		changes := make(map[netconfig.ActionID]bool, int(netconfig.ActionCount))
		for action := netconfig.ActionMoveLeft; action < netconfig.ActionCount; action++ {
			changes[action] = anyKeyPressed(bindings[action])
		}

		desired := state.last
		desired.Apply(changes)

		now := clock.Now()
		changed := desired != state.last
		if changed {
			state.lastSeq = pred.RecordInput(changes, pos, vel)
			state.last = desired
		}

		// Attack edges lock movement locally and announce to peers.
		// Attack state is not part of the replayed movement step.
		if desired.Attack && !state.attackHeld {
			pred.TriggerAttack()
			if sender != nil {
				_ = sender.SendAttack(netconfig.AttackJab, avatar.Facing)
			}
		}
		state.attackHeld = desired.Attack
		if desired.Special && !state.specialHeld {
			pred.TriggerAttack()
			if sender != nil {
				_ = sender.SendAttack(netconfig.AttackSpecial, avatar.Facing)
			}
		}
		state.specialHeld = desired.Special

		if d := desired.Direction(); d < 0 {
			avatar.Facing = netconfig.FacingLeft
		} else if d > 0 {
			avatar.Facing = netconfig.FacingRight
		}

		// Apply prediction locally every frame
		pred.PredictTick(pos, vel)

		if sender == nil {
			return
		}

		// Only send to server when input changes or the resend interval elapses
		if changed || now.Sub(state.lastSend) >= cfg.Net.ResendInterval {
			input := messages.NewPlayerInput(state.lastSeq)
			for k, v := range desired.Actions() {
				input.Actions[k] = v
			}
			input.Direction = desired.Direction()
			input.Timestamp = now.UnixMilli()
			if err := sender.SendInput(input); err != nil {
				log.Printf("[netinput] send error: %v", err)
			}
			state.lastSend = now
		}

		// Report motion to peers; the client rate-limits these.
		_ = sender.SendPositionUpdate(messages.AvatarFrame{
			X: pos.X, Y: pos.Y,
			VelX: vel.VelX, VelY: vel.VelY,
			Facing:   avatar.Facing,
			Sequence: state.lastSeq,
		})
	}
}

func anyKeyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
