// Package combat implements the deterministic damage and knockback
// resolution pipeline. Each client is authoritative only for its own
// avatar; remote avatars receive resolved results as health updates.
package combat

import (
	"math"
	"time"

	cfg "github.com/brawlworks/skybrawl/config"
	"github.com/brawlworks/skybrawl/shared/gameclock"
	"github.com/leap-fish/necs/esync"
)

// DamageType selects the base damage modifier.
type DamageType int

const (
	Physical DamageType = iota
	Elemental
	Environmental
	Fall
)

func (t DamageType) String() string {
	switch t {
	case Physical:
		return "physical"
	case Elemental:
		return "elemental"
	case Environmental:
		return "environmental"
	case Fall:
		return "fall"
	}
	return "unknown"
}

// Knockback is an instantaneous velocity change applied on hit.
type Knockback struct {
	X, Y float64
}

// DamageEvent is produced by a collision or hazard trigger and consumed
// exactly once by Resolve.
type DamageEvent struct {
	Amount    float64
	Type      DamageType
	Knockback *Knockback
	Critical  bool
	Source    string
	SourceID  esync.NetworkId // attacking avatar, 0 if environmental
}

// Phase is an avatar's combat lifecycle state.
type Phase int

const (
	PhaseActive Phase = iota
	PhaseRespawning
	PhaseDefeated // terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseRespawning:
		return "respawning"
	case PhaseDefeated:
		return "defeated"
	}
	return "unknown"
}

// CanTransitionTo reports whether the phase machine allows moving to
// next. Defeated is terminal.
func (p Phase) CanTransitionTo(next Phase) bool {
	switch p {
	case PhaseActive:
		return next == PhaseRespawning || next == PhaseDefeated
	case PhaseRespawning:
		return next == PhaseActive
	}
	return false
}

// State is one avatar's combat state. It is mutated only by Resolve and
// Tick; remote observers hold copies pushed via health updates.
type State struct {
	Health      int
	MaxHealth   int
	Stocks      int
	Accumulated int // accumulated damage driving knockback/fall scaling

	InvulnerableUntil int64 // Unix ms, 0 = none
	Phase             Phase
}

// NewState creates a freshly spawned avatar state with full health and
// stocks.
func NewState(maxHealth, stocks int) State {
	return State{
		Health:    maxHealth,
		MaxHealth: maxHealth,
		Stocks:    stocks,
	}
}

// Invulnerable reports whether damage is currently rejected.
func (s *State) Invulnerable(nowMs int64) bool {
	return nowMs < s.InvulnerableUntil
}

// Defeated reports whether the avatar is out of stocks.
func (s *State) Defeated() bool {
	return s.Stocks == 0
}

// Percent returns the accumulated damage as a percentage of max health.
func (s *State) Percent() float64 {
	if s.MaxHealth == 0 {
		return 0
	}
	return float64(s.Accumulated) / float64(s.MaxHealth) * 100
}

// Tick returns the avatar to Active once the respawn window has passed.
func (s *State) Tick(nowMs int64) {
	if s.Phase == PhaseRespawning && nowMs >= s.InvulnerableUntil {
		s.Phase = PhaseActive
	}
}

// Result reports what Resolve did.
type Result struct {
	Applied   bool
	Damage    int
	Knockback Knockback // zero when the event carried none
	StockLost bool
	Respawned bool
	Defeated  bool
}

// Resolver computes final damage and knockback from event type,
// critical flag, target weight and accumulated-damage scaling.
type Resolver struct {
	clock gameclock.Clock
}

func NewResolver(clock gameclock.Clock) *Resolver {
	return &Resolver{clock: clock}
}

// Resolve applies ev to cs. Duplicate or late events hitting an
// invulnerable or defeated avatar are silently rejected; over an
// unreliable channel those are expected, not errors.
//
// Knockback and fall-damage scaling use the damage percentage from
// before this event lands, so a single hit is scaled by the state the
// sender observed.
func (r *Resolver) Resolve(cs *State, weight float64, ev DamageEvent) Result {
	now := r.clock.Now().UnixMilli()
	if cs.Defeated() || cs.Phase == PhaseDefeated || cs.Invulnerable(now) {
		return Result{}
	}
	if weight <= 0 {
		weight = 1
	}

	preHitPercent := cs.Percent()

	amount := ev.Amount
	switch ev.Type {
	case Physical:
		amount *= math.Max(0.7, 1-(weight-1)*0.1)
	case Elemental:
		amount *= 1.1
	case Fall:
		amount *= 1 + preHitPercent*cfg.Combat.FallDamageScale
	}
	if ev.Critical {
		amount *= cfg.Combat.CriticalMultiplier
	}

	// Damage is never fractional in the exposed state.
	final := int(math.Ceil(amount))

	cs.Health -= final
	if cs.Health < 0 {
		cs.Health = 0
	}
	cs.Accumulated += final

	res := Result{Applied: true, Damage: final}

	if ev.Knockback != nil {
		scale := (1 + preHitPercent*cfg.Combat.KnockbackDamageScale) / weight
		res.Knockback = Knockback{
			X: ev.Knockback.X * scale,
			Y: ev.Knockback.Y * scale,
		}
	}

	if cs.Health == 0 {
		cs.Stocks--
		res.StockLost = true
		if cs.Stocks > 0 {
			r.respawn(cs, now)
			res.Respawned = true
		} else {
			cs.Phase = PhaseDefeated
			res.Defeated = true
		}
		return res
	}

	invuln := cfg.Combat.InvulnDuration
	if ev.Critical {
		invuln = cfg.Combat.CritInvulnDuration
	}
	cs.InvulnerableUntil = now + durationMs(invuln)
	return res
}

// respawn resets health and accumulated damage (not stocks) and grants
// the longer respawn invulnerability window. Repositioning to a spawn
// point is the caller's job.
func (r *Resolver) respawn(cs *State, nowMs int64) {
	cs.Health = cs.MaxHealth
	cs.Accumulated = 0
	cs.Phase = PhaseRespawning
	cs.InvulnerableUntil = nowMs + durationMs(cfg.Combat.RespawnInvulnDuration)
}

func durationMs(d time.Duration) int64 {
	return d.Milliseconds()
}
