package systems

import (
	"testing"
	"time"

	"github.com/brawlworks/skybrawl/combat"
	"github.com/brawlworks/skybrawl/components"
	"github.com/brawlworks/skybrawl/shared/gameclock"
	"github.com/brawlworks/skybrawl/shared/messages"
	"github.com/brawlworks/skybrawl/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type recordingReporter struct {
	healths []messages.HealthUpdate
	defeats []messages.DefeatEvent
}

func (r *recordingReporter) SendHealthUpdate(hu messages.HealthUpdate) error {
	r.healths = append(r.healths, hu)
	return nil
}

func (r *recordingReporter) SendDefeat(ev messages.DefeatEvent) error {
	r.defeats = append(r.defeats, ev)
	return nil
}

func TestCombatSystemAnnouncesDefeat(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	entry := spawnTestLocal(e)

	clock := gameclock.NewMock(time.Unix(1_700_000_000, 0))
	reporter := &recordingReporter{}
	sys := NewCombatSystem(clock, combat.NewResolver(clock), reporter)

	// Last stock, one hit from elimination.
	cs := components.Combat.Get(entry)
	cs.Stocks = 1
	cs.Health = 5

	attacker := esync.NetworkId(42)
	donburi.Add(entry, components.Damage, &combat.DamageEvent{
		Amount:   10,
		Type:     combat.Physical,
		Source:   "remote attack",
		SourceID: attacker,
	})
	sys(e)

	if cs.Phase != combat.PhaseDefeated {
		t.Fatalf("phase = %v, want defeated", cs.Phase)
	}
	if len(reporter.healths) != 1 {
		t.Fatalf("health updates sent = %d, want 1", len(reporter.healths))
	}
	if got := reporter.healths[0]; got.Stocks != 0 || got.Health != 0 {
		t.Fatalf("final health update = %+v", got)
	}
	if len(reporter.defeats) != 1 {
		t.Fatalf("defeat events sent = %d, want 1", len(reporter.defeats))
	}
	if got := reporter.defeats[0].SourceID; got != attacker {
		t.Fatalf("defeat SourceID = %d, want %d", got, attacker)
	}
}

func TestCombatSystemNonFatalHitSendsHealthOnly(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	entry := spawnTestLocal(e)

	clock := gameclock.NewMock(time.Unix(1_700_000_000, 0))
	reporter := &recordingReporter{}
	sys := NewCombatSystem(clock, combat.NewResolver(clock), reporter)

	donburi.Add(entry, components.Damage, &combat.DamageEvent{
		Amount: 10,
		Type:   combat.Physical,
		Source: "remote attack",
	})
	sys(e)

	if len(reporter.healths) != 1 {
		t.Fatalf("health updates sent = %d, want 1", len(reporter.healths))
	}
	if len(reporter.defeats) != 0 {
		t.Fatalf("non-fatal hit announced a defeat: %+v", reporter.defeats)
	}

	// The damage event is consumed exactly once.
	if entry.HasComponent(components.Damage) {
		t.Fatalf("damage event left on entity after resolution")
	}
	if st := netcomponents.NetAvatarState.Get(entry); st.Accumulated == 0 {
		t.Fatalf("mirrored state not updated after hit")
	}
}
