package combat

import (
	"testing"
	"time"

	cfg "github.com/brawlworks/skybrawl/config"
	"github.com/brawlworks/skybrawl/shared/gameclock"
	"github.com/brawlworks/skybrawl/shared/netconfig"
)

func newTestResolver() (*Resolver, *gameclock.Mock) {
	clock := gameclock.NewMock(time.Unix(1_700_000_000, 0))
	return NewResolver(clock), clock
}

func TestResolveFatalHitWithStocksRemaining(t *testing.T) {
	r, _ := newTestResolver()
	cs := NewState(100, 2)
	cs.Health = 10
	cs.Accumulated = 90

	res := r.Resolve(&cs, 1.0, DamageEvent{Amount: 1000, Type: Physical})

	if !res.Applied || !res.StockLost || !res.Respawned || res.Defeated {
		t.Fatalf("unexpected result %+v", res)
	}
	if cs.Stocks != 1 {
		t.Fatalf("Stocks = %d, want 1", cs.Stocks)
	}
	if cs.Health != 100 {
		t.Fatalf("Health after respawn = %d, want full 100", cs.Health)
	}
	if cs.Accumulated != 0 {
		t.Fatalf("Accumulated after respawn = %d, want 0", cs.Accumulated)
	}
	if cs.Phase != PhaseRespawning {
		t.Fatalf("Phase = %v, want respawning", cs.Phase)
	}
	if !cs.Invulnerable(r.clock.Now().UnixMilli()) {
		t.Fatalf("respawn must grant invulnerability")
	}
}

func TestResolveElimination(t *testing.T) {
	r, clock := newTestResolver()
	cs := NewState(100, 1)
	cs.Health = 10

	res := r.Resolve(&cs, 1.0, DamageEvent{Amount: 1000, Type: Physical})
	if !res.Defeated || res.Respawned {
		t.Fatalf("unexpected result %+v", res)
	}
	if cs.Stocks != 0 || cs.Phase != PhaseDefeated {
		t.Fatalf("state after elimination: stocks=%d phase=%v", cs.Stocks, cs.Phase)
	}

	// Defeated is terminal: further damage is a no-op, even long after.
	clock.Advance(time.Hour)
	if res := r.Resolve(&cs, 1.0, DamageEvent{Amount: 50, Type: Physical}); res.Applied {
		t.Fatalf("damage to a defeated avatar must be rejected")
	}
	if cs.Stocks != 0 || cs.Health != 0 {
		t.Fatalf("defeated state mutated: %+v", cs)
	}
}

func TestResolveKnockbackScaling(t *testing.T) {
	r, _ := newTestResolver()
	cs := NewState(100, 3)
	cs.Accumulated = 50

	res := r.Resolve(&cs, 1.0, DamageEvent{
		Amount:    1,
		Type:      Environmental,
		Knockback: &Knockback{X: 200, Y: -100},
	})

	// multiplier = 1 + 50*0.015 = 1.75
	if res.Knockback.X != 350 || res.Knockback.Y != -175 {
		t.Fatalf("knockback = %+v, want {350, -175}", res.Knockback)
	}
}

func TestResolveKnockbackUsesPreHitPercent(t *testing.T) {
	r, _ := newTestResolver()
	cs := NewState(100, 3)

	// First hit on a fresh avatar: no accumulated damage yet, so the
	// knockback is unscaled regardless of the hit's own amount.
	res := r.Resolve(&cs, 1.0, DamageEvent{
		Amount:    40,
		Type:      Environmental,
		Knockback: &Knockback{X: 100, Y: 0},
	})
	if res.Knockback.X != 100 {
		t.Fatalf("fresh-avatar knockback = %f, want unscaled 100", res.Knockback.X)
	}
}

func TestResolveKnockbackWeightDivides(t *testing.T) {
	r, _ := newTestResolver()
	cs := NewState(100, 3)

	res := r.Resolve(&cs, 2.0, DamageEvent{
		Amount:    1,
		Type:      Environmental,
		Knockback: &Knockback{X: 100, Y: -50},
	})
	if res.Knockback.X != 50 || res.Knockback.Y != -25 {
		t.Fatalf("heavy avatar knockback = %+v, want halved", res.Knockback)
	}
}

func TestResolveInvulnerabilityGating(t *testing.T) {
	r, clock := newTestResolver()
	cs := NewState(100, 3)

	first := r.Resolve(&cs, 1.0, DamageEvent{Amount: 10, Type: Environmental})
	if !first.Applied {
		t.Fatalf("first hit must land")
	}
	healthAfterFirst := cs.Health

	// Second hit inside the invulnerability window is a no-op.
	second := r.Resolve(&cs, 1.0, DamageEvent{Amount: 10, Type: Environmental})
	if second.Applied {
		t.Fatalf("hit during invulnerability must be rejected")
	}
	if cs.Health != healthAfterFirst {
		t.Fatalf("rejected hit changed health: %d -> %d", healthAfterFirst, cs.Health)
	}

	// After the window expires the next hit lands again.
	clock.Advance(cfg.Combat.InvulnDuration + time.Millisecond)
	third := r.Resolve(&cs, 1.0, DamageEvent{Amount: 10, Type: Environmental})
	if !third.Applied {
		t.Fatalf("hit after invulnerability expiry must land")
	}
}

func TestResolveCriticalMultiplierAndLongerWindow(t *testing.T) {
	r, clock := newTestResolver()
	cs := NewState(100, 3)

	res := r.Resolve(&cs, 1.0, DamageEvent{Amount: 10, Type: Environmental, Critical: true})
	if res.Damage != 15 {
		t.Fatalf("critical damage = %d, want 10*1.5 = 15", res.Damage)
	}

	// Still invulnerable past the normal window, inside the crit window.
	clock.Advance(cfg.Combat.InvulnDuration + 50*time.Millisecond)
	if !cs.Invulnerable(clock.Now().UnixMilli()) {
		t.Fatalf("critical hit should grant the longer window")
	}
	clock.Advance(cfg.Combat.CritInvulnDuration)
	if cs.Invulnerable(clock.Now().UnixMilli()) {
		t.Fatalf("crit window should have expired")
	}
}

func TestResolveTypeModifiers(t *testing.T) {
	cases := []struct {
		name   string
		ev     DamageEvent
		weight float64
		acc    int
		want   int
	}{
		{"environmental is unmodified", DamageEvent{Amount: 10, Type: Environmental}, 1.0, 0, 10},
		{"physical vs weight 2 reduced", DamageEvent{Amount: 10, Type: Physical}, 2.0, 0, 9},
		{"physical reduction floors at 0.7", DamageEvent{Amount: 10, Type: Physical}, 10.0, 0, 7},
		{"elemental amplified", DamageEvent{Amount: 10, Type: Elemental}, 1.0, 0, 11},
		{"fall scales with accumulated", DamageEvent{Amount: 10, Type: Fall}, 1.0, 50, 15},
		{"fractional result ceils", DamageEvent{Amount: 1, Type: Elemental}, 1.0, 0, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, _ := newTestResolver()
			cs := NewState(100, 3)
			cs.Accumulated = c.acc
			accBefore := cs.Accumulated

			res := r.Resolve(&cs, c.weight, c.ev)
			if res.Damage != c.want {
				t.Fatalf("damage = %d, want %d", res.Damage, c.want)
			}
			if cs.Accumulated != accBefore+c.want {
				t.Fatalf("accumulated = %d, want %d", cs.Accumulated, accBefore+c.want)
			}
		})
	}
}

func TestResolveDamageMonotonicity(t *testing.T) {
	r, clock := newTestResolver()
	cs := NewState(100, 3)

	prevHealth := cs.Health
	prevAcc := cs.Accumulated
	for i := 0; i < 8; i++ {
		res := r.Resolve(&cs, 1.0, DamageEvent{Amount: 5, Type: Environmental})
		if res.Applied {
			if cs.Health > prevHealth {
				t.Fatalf("health increased: %d -> %d", prevHealth, cs.Health)
			}
			if cs.Accumulated < prevAcc {
				t.Fatalf("accumulated decreased: %d -> %d", prevAcc, cs.Accumulated)
			}
		}
		prevHealth, prevAcc = cs.Health, cs.Accumulated
		clock.Advance(cfg.Combat.InvulnDuration + time.Millisecond)
	}
}

func TestStateTickEndsRespawning(t *testing.T) {
	r, clock := newTestResolver()
	cs := NewState(100, 2)
	cs.Health = 1

	r.Resolve(&cs, 1.0, DamageEvent{Amount: 10, Type: Environmental})
	if cs.Phase != PhaseRespawning {
		t.Fatalf("setup: expected respawning phase, got %v", cs.Phase)
	}

	cs.Tick(clock.Now().UnixMilli())
	if cs.Phase != PhaseRespawning {
		t.Fatalf("respawn window must hold the phase")
	}

	clock.Advance(cfg.Combat.RespawnInvulnDuration + time.Millisecond)
	cs.Tick(clock.Now().UnixMilli())
	if cs.Phase != PhaseActive {
		t.Fatalf("phase after respawn window = %v, want active", cs.Phase)
	}
}

func TestPhaseTransitions(t *testing.T) {
	cases := []struct {
		from, to Phase
		ok       bool
	}{
		{PhaseActive, PhaseRespawning, true},
		{PhaseActive, PhaseDefeated, true},
		{PhaseRespawning, PhaseActive, true},
		{PhaseRespawning, PhaseDefeated, false},
		{PhaseDefeated, PhaseActive, false},
		{PhaseDefeated, PhaseRespawning, false},
		{PhaseActive, PhaseActive, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.ok {
			t.Errorf("%v -> %v = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestProfileForOrientsKnockback(t *testing.T) {
	left, ok := ProfileFor(netconfig.AttackJab, netconfig.FacingLeft)
	if !ok {
		t.Fatalf("jab profile missing")
	}
	right, _ := ProfileFor(netconfig.AttackJab, netconfig.FacingRight)
	if left.Knockback.X != -right.Knockback.X {
		t.Fatalf("facing should mirror knockback X: %f vs %f", left.Knockback.X, right.Knockback.X)
	}
	if _, ok := ProfileFor(netconfig.AttackNone, netconfig.FacingRight); ok {
		t.Fatalf("AttackNone must have no profile")
	}
}
