package network

import (
	cfg "github.com/brawlworks/skybrawl/config"
	"github.com/brawlworks/skybrawl/shared/gameclock"
	"github.com/brawlworks/skybrawl/shared/gamemath"
	"github.com/brawlworks/skybrawl/shared/netcomponents"
	"github.com/brawlworks/skybrawl/shared/netconfig"
	"github.com/brawlworks/skybrawl/tags"
	"github.com/solarlune/resolv"
)

// Platform is an axis-aligned solid rect in the prediction collision
// space. The stage geometry itself is owned elsewhere; prediction only
// needs the solids.
type Platform struct {
	X, Y, W, H float64
}

// MoveState is the motion state threaded through one movement sub-step.
type MoveState struct {
	X, Y       float64
	VelX, VelY float64
	OnGround   bool
	JumpsUsed  int
	JumpHeld   bool // previous frame, for edge detection
	AttackLock int  // frames of movement lock remaining
}

// Predictor owns client-side prediction for the local avatar: the
// merged input state, the snapshot ring used for reconciliation, and a
// movement step that must match the authoritative side exactly.
type Predictor struct {
	Buffer *SnapshotBuffer

	clock   gameclock.Clock
	enabled bool
	input   InputState

	// Local physics state (mirrors the authoritative avatar physics)
	onGround   bool
	jumpsUsed  int
	jumpHeld   bool
	attackLock int

	// Collision space for prediction; GroundY approximation when nil
	space     *resolv.Space
	avatarObj *resolv.Object
	groundY   float64

	tolerance float64
	pending   *pendingSnapshot
}

// NewPredictor creates a prediction engine with defaults from config.
func NewPredictor(clock gameclock.Clock) *Predictor {
	return &Predictor{
		Buffer:    NewSnapshotBuffer(cfg.Net.InputBufferSize),
		clock:     clock,
		enabled:   true,
		onGround:  true,
		groundY:   cfg.Arena.GroundY,
		tolerance: cfg.Net.ReconcileTolerance,
	}
}

// SetEnabled toggles prediction. Disabling clears the snapshot buffer
// and drops any pending authoritative snapshot; the client becomes a
// dumb terminal that renders server state directly. This is a supported
// configuration, not an error.
func (p *Predictor) SetEnabled(enabled bool) {
	if !enabled {
		p.Buffer.Clear()
		p.pending = nil
	}
	p.enabled = enabled
}

// Enabled reports whether prediction is active.
func (p *Predictor) Enabled() bool {
	return p.enabled
}

// Input returns the current merged input state.
func (p *Predictor) Input() InputState {
	return p.input
}

// InitCollision builds a lightweight resolv.Space from the stage's
// solid rects so prediction gets real wall/ground collision instead of
// the GroundY approximation.
func (p *Predictor) InitCollision(platforms []Platform, arenaW, arenaH int, spawnX, spawnY float64) {
	p.space = resolv.NewSpace(arenaW, arenaH, 16, 16)

	for _, pl := range platforms {
		obj := resolv.NewObject(pl.X, pl.Y, pl.W, pl.H, tags.ResolvSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, pl.W, pl.H))
		p.space.Add(obj)
	}

	w := float64(cfg.Player.CollisionWidth)
	h := float64(cfg.Player.CollisionHeight)
	p.avatarObj = resolv.NewObject(spawnX, spawnY, w, h, tags.ResolvAvatar)
	p.avatarObj.SetShape(resolv.NewRectangle(0, 0, w, h))
	p.space.Add(p.avatarObj)
}

// RecordInput merges a partial input change into the current state and,
// when prediction is enabled, appends a snapshot of the pre-application
// motion state under the next sequence number. Returns the assigned
// sequence, or 0 when prediction is disabled.
func (p *Predictor) RecordInput(changes map[netconfig.ActionID]bool, pos *netcomponents.NetPositionData, vel *netcomponents.NetVelocityData) uint64 {
	p.input.Apply(changes)
	if !p.enabled {
		p.Buffer.Clear()
		return 0
	}
	return p.Buffer.Record(p.input, p.clock.Now().UnixMilli(), pos.X, pos.Y, vel.VelX, vel.VelY)
}

// TriggerAttack locks horizontal movement for the attack windup.
// Attack state is deliberately not part of the replayed movement step.
func (p *Predictor) TriggerAttack() {
	p.attackLock = cfg.Player.AttackLockFrames
}

// PredictTick applies one 60 Hz movement sub-step using the merged
// input and advances the avatar's simulated position without waiting
// for any server acknowledgment.
func (p *Predictor) PredictTick(pos *netcomponents.NetPositionData, vel *netcomponents.NetVelocityData) {
	if !p.enabled {
		return
	}
	s := MoveState{
		X: pos.X, Y: pos.Y,
		VelX: vel.VelX, VelY: vel.VelY,
		OnGround:   p.onGround,
		JumpsUsed:  p.jumpsUsed,
		JumpHeld:   p.jumpHeld,
		AttackLock: p.attackLock,
	}
	s = p.Step(s, p.input)
	pos.X, pos.Y = s.X, s.Y
	vel.VelX, vel.VelY = s.VelX, s.VelY
	p.onGround = s.OnGround
	p.jumpsUsed = s.JumpsUsed
	p.jumpHeld = s.JumpHeld
	p.attackLock = s.AttackLock
}

// Step applies one movement sub-step. Given a fixed collision space it
// is a pure function of (state, input); reconciliation replays depend
// on that.
func (p *Predictor) Step(s MoveState, in InputState) MoveState {
	// --- Horizontal input (locked during attack windup) ---
	dir := in.Direction()
	if s.AttackLock > 0 {
		dir = 0
	}
	if dir != 0 {
		s.VelX += float64(dir) * cfg.Player.Acceleration
	}

	// --- Jump (edge-triggered, double jump budget) ---
	if in.Jump && !s.JumpHeld && s.JumpsUsed < cfg.Player.MaxJumps {
		s.VelY = -cfg.Player.JumpSpeed
		s.OnGround = false
		s.JumpsUsed++
	}
	s.JumpHeld = in.Jump

	// --- Friction (ground only) ---
	if s.OnGround {
		s.VelX = gamemath.ApplyFriction(s.VelX, cfg.Player.Friction)
	}
	s.VelX = gamemath.ClampSpeed(s.VelX, cfg.Player.MaxSpeed)

	// --- Gravity (unconditional, must match the authoritative side) ---
	s.VelY += cfg.Player.Gravity
	if s.VelY > cfg.Player.MaxFallSpeed {
		s.VelY = cfg.Player.MaxFallSpeed
	}

	// --- Resolve movement ---
	if p.space != nil && p.avatarObj != nil {
		s = p.resolveCollisions(s)
	} else {
		s.X += s.VelX
		s.Y += gamemath.ClampSpeed(s.VelY, cfg.Player.MaxVertSpeed)
		if s.Y >= p.groundY {
			s.Y = p.groundY
			s.VelY = 0
			s.OnGround = true
			s.JumpsUsed = 0
		} else {
			s.OnGround = false
		}
	}

	if s.AttackLock > 0 {
		s.AttackLock--
	}
	return s
}

// resolveCollisions moves the avatar through the resolv space,
// stopping at walls and landing on solids.
func (p *Predictor) resolveCollisions(s MoveState) MoveState {
	obj := p.avatarObj
	obj.X, obj.Y = s.X, s.Y
	obj.Update()

	// Horizontal
	dx := s.VelX
	if dx != 0 {
		if check := obj.Check(dx, 0, tags.ResolvSolid); check != nil {
			if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 {
				contact := check.ContactWithObject(solids[0])
				dx = contact.X()
				s.VelX = 0
			}
		}
		obj.X += dx
		obj.Update()
	}

	// Vertical
	dy := gamemath.ClampSpeed(s.VelY, cfg.Player.MaxVertSpeed)
	checkDist := dy
	if dy >= 0 {
		checkDist++
	}
	landed := false
	blocked := false
	if check := obj.Check(0, checkDist, tags.ResolvSolid); check != nil {
		if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 {
			contact := check.ContactWithObject(solids[0])
			obj.Y += contact.Y()
			obj.Update()
			s.VelY = 0
			blocked = true
			if dy >= 0 {
				landed = true
				s.JumpsUsed = 0
			}
		}
	}
	if !blocked {
		obj.Y += dy
		obj.Update()
	}
	s.OnGround = landed

	s.X, s.Y = obj.X, obj.Y
	return s
}
