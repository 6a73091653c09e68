package network

import (
	"testing"
	"time"

	cfg "github.com/brawlworks/skybrawl/config"
	"github.com/brawlworks/skybrawl/shared/gameclock"
	"github.com/brawlworks/skybrawl/shared/netcomponents"
	"github.com/brawlworks/skybrawl/shared/netconfig"
)

func testClock() *gameclock.Mock {
	return gameclock.NewMock(time.Unix(1_700_000_000, 0))
}

// groundedState returns a MoveState resting on the GroundY fallback.
func groundedState() MoveState {
	return MoveState{X: 100, Y: cfg.Arena.GroundY, OnGround: true}
}

func TestStepAcceleratesTowardMaxSpeed(t *testing.T) {
	p := NewPredictor(testClock())
	s := groundedState()
	in := InputState{Right: true}

	for i := 0; i < 120; i++ {
		s = p.Step(s, in)
	}
	if s.VelX != cfg.Player.MaxSpeed {
		t.Fatalf("VelX after sustained input = %f, want capped at %f", s.VelX, cfg.Player.MaxSpeed)
	}
	if s.X <= 100 {
		t.Fatalf("expected rightward movement, X = %f", s.X)
	}
}

func TestStepFrictionStopsGroundedAvatar(t *testing.T) {
	p := NewPredictor(testClock())
	s := groundedState()
	s.VelX = cfg.Player.MaxSpeed

	for i := 0; i < 60; i++ {
		s = p.Step(s, InputState{})
	}
	if s.VelX != 0 {
		t.Fatalf("VelX after release = %f, want 0 (ground friction)", s.VelX)
	}
}

func TestStepJumpIsEdgeTriggered(t *testing.T) {
	p := NewPredictor(testClock())
	s := groundedState()

	s = p.Step(s, InputState{Jump: true})
	if s.JumpsUsed != 1 {
		t.Fatalf("JumpsUsed after press = %d, want 1", s.JumpsUsed)
	}

	// Holding the key must not consume the second jump.
	for i := 0; i < 10; i++ {
		s = p.Step(s, InputState{Jump: true})
	}
	if s.JumpsUsed != 1 {
		t.Fatalf("held jump consumed extra jumps: JumpsUsed = %d", s.JumpsUsed)
	}

	// Release then press again mid-air: double jump.
	s = p.Step(s, InputState{})
	s = p.Step(s, InputState{Jump: true})
	if s.JumpsUsed != 2 {
		t.Fatalf("JumpsUsed after double jump = %d, want 2", s.JumpsUsed)
	}

	// Third press is out of budget.
	s = p.Step(s, InputState{})
	velBefore := s.VelY
	s = p.Step(s, InputState{Jump: true})
	if s.VelY < velBefore {
		t.Fatalf("third jump should be rejected (VelY %f -> %f)", velBefore, s.VelY)
	}
}

func TestStepLandingResetsJumpBudget(t *testing.T) {
	p := NewPredictor(testClock())
	s := groundedState()

	s = p.Step(s, InputState{Jump: true})
	for i := 0; i < 300 && !s.OnGround; i++ {
		s = p.Step(s, InputState{})
	}
	if !s.OnGround {
		t.Fatalf("avatar never landed")
	}
	if s.Y != cfg.Arena.GroundY {
		t.Fatalf("landed at Y = %f, want ground %f", s.Y, cfg.Arena.GroundY)
	}
	if s.JumpsUsed != 0 {
		t.Fatalf("JumpsUsed after landing = %d, want 0", s.JumpsUsed)
	}
}

func TestStepAttackLockFreezesHorizontalInput(t *testing.T) {
	p := NewPredictor(testClock())
	s := groundedState()
	s.AttackLock = 3

	s = p.Step(s, InputState{Right: true})
	if s.VelX != 0 {
		t.Fatalf("horizontal input must be ignored during attack lock, VelX = %f", s.VelX)
	}
	if s.AttackLock != 2 {
		t.Fatalf("AttackLock should count down, got %d", s.AttackLock)
	}
}

func TestStepIsDeterministic(t *testing.T) {
	p := NewPredictor(testClock())
	in := InputState{Right: true, Jump: true}

	a, b := groundedState(), groundedState()
	for i := 0; i < 50; i++ {
		a = p.Step(a, in)
		b = p.Step(b, in)
	}
	if a != b {
		t.Fatalf("identical input sequences diverged: %+v vs %+v", a, b)
	}
}

func TestPredictTickAdvancesComponents(t *testing.T) {
	p := NewPredictor(testClock())
	pos := &netcomponents.NetPositionData{X: 100, Y: cfg.Arena.GroundY}
	vel := &netcomponents.NetVelocityData{}

	p.RecordInput(map[netconfig.ActionID]bool{netconfig.ActionMoveRight: true}, pos, vel)
	for i := 0; i < 10; i++ {
		p.PredictTick(pos, vel)
	}
	if pos.X <= 100 {
		t.Fatalf("prediction did not advance position, X = %f", pos.X)
	}
	if vel.VelX <= 0 {
		t.Fatalf("prediction did not build velocity, VelX = %f", vel.VelX)
	}
}

func TestRecordInputAssignsSequences(t *testing.T) {
	p := NewPredictor(testClock())
	pos := &netcomponents.NetPositionData{X: 5, Y: 6}
	vel := &netcomponents.NetVelocityData{VelX: 1}

	s1 := p.RecordInput(map[netconfig.ActionID]bool{netconfig.ActionMoveRight: true}, pos, vel)
	s2 := p.RecordInput(map[netconfig.ActionID]bool{netconfig.ActionJump: true}, pos, vel)
	if s1 != 1 || s2 != 2 {
		t.Fatalf("sequences = %d, %d, want 1, 2", s1, s2)
	}

	// The snapshot stores the state before the input takes effect.
	rec, ok := p.Buffer.Get(s1)
	if !ok {
		t.Fatalf("recorded snapshot missing")
	}
	if rec.X != 5 || rec.VelX != 1 {
		t.Fatalf("snapshot should hold pre-application motion state, got %+v", rec)
	}
	// And the merged input is cumulative.
	if !rec.Input.Right {
		t.Fatalf("snapshot input should include the merged change")
	}
}

func TestDisablingPredictionClearsBuffer(t *testing.T) {
	p := NewPredictor(testClock())
	pos := &netcomponents.NetPositionData{}
	vel := &netcomponents.NetVelocityData{}

	p.RecordInput(map[netconfig.ActionID]bool{netconfig.ActionMoveRight: true}, pos, vel)
	p.SetEnabled(false)

	if p.Buffer.Len() != 0 {
		t.Fatalf("disabling prediction must clear the buffer, Len = %d", p.Buffer.Len())
	}
	if seq := p.RecordInput(map[netconfig.ActionID]bool{netconfig.ActionJump: true}, pos, vel); seq != 0 {
		t.Fatalf("RecordInput while disabled returned %d, want 0", seq)
	}

	// PredictTick is a no-op while disabled.
	before := *pos
	p.PredictTick(pos, vel)
	if *pos != before {
		t.Fatalf("PredictTick mutated position while disabled")
	}
}
