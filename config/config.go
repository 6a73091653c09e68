package config

import (
	"image/color"
	"time"

	"github.com/yohamta/donburi/ecs"
)

// PlayerConfig contains all avatar-related configuration values
type PlayerConfig struct {
	// Movement
	JumpSpeed    float64
	Acceleration float64
	MaxSpeed     float64
	MaxJumps     int // 2 = double jump

	// Physics
	Gravity      float64
	Friction     float64
	MaxFallSpeed float64
	MaxVertSpeed float64

	// Combat
	Health           int
	Stocks           int
	Weight           float64
	AttackLockFrames int // movement lock during attack windup

	// Dimensions
	CollisionWidth  int
	CollisionHeight int
}

// CombatConfig contains damage resolution configuration values
type CombatConfig struct {
	CriticalMultiplier   float64
	KnockbackDamageScale float64 // per accumulated-damage percent
	FallDamageScale      float64 // per accumulated-damage percent

	InvulnDuration        time.Duration
	CritInvulnDuration    time.Duration
	RespawnInvulnDuration time.Duration
}

// NetConfig contains state-synchronization configuration values
type NetConfig struct {
	InputBufferSize    int           // retained input snapshots (~1s at 60Hz)
	InterpBufferSize   int           // retained remote frames per avatar
	InterpolationDelay time.Duration // render delay for remote avatars
	ReconcileTolerance float64       // distance units before a correction snap
	CorrectionSmooth   time.Duration // visual smoothing of a correction snap
	ResendInterval     time.Duration // input keepalive resend period
	PositionUpdateHz   float64       // outbound position update cap
}

// ArenaConfig contains stage and window configuration values
type ArenaConfig struct {
	Width   int
	Height  int
	GroundY float64
	SpawnX  float64
	SpawnY  float64
}

// Global configuration instances
var Player PlayerConfig
var Combat CombatConfig
var Net NetConfig
var Arena ArenaConfig

// Default is the ECS layer all avatar entities and renderers live on.
const Default ecs.LayerID = 0

// Shared RGBA color constants
var (
	White       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow      = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Red         = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	BrightGreen = color.RGBA{R: 0, G: 255, B: 60, A: 255}
	LightGreen  = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	LightBlue   = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	Orange      = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Magenta     = color.RGBA{R: 255, G: 0, B: 255, A: 255}
)

// AvatarColors is the palette cycled through for remote avatars.
var AvatarColors = []color.RGBA{LightBlue, Orange, Magenta, Yellow}

func init() {
	Player = PlayerConfig{
		JumpSpeed:    15.0,
		Acceleration: 0.75,
		MaxSpeed:     6.0,
		MaxJumps:     2,

		Gravity:      0.75,
		Friction:     0.5,
		MaxFallSpeed: 10.0,
		MaxVertSpeed: 16.0,

		Health:           100,
		Stocks:           3,
		Weight:           1.0,
		AttackLockFrames: 12,

		CollisionWidth:  16,
		CollisionHeight: 40,
	}

	Combat = CombatConfig{
		CriticalMultiplier:   1.5,
		KnockbackDamageScale: 0.015,
		FallDamageScale:      0.01,

		InvulnDuration:        500 * time.Millisecond,
		CritInvulnDuration:    800 * time.Millisecond,
		RespawnInvulnDuration: 2 * time.Second,
	}

	Net = NetConfig{
		InputBufferSize:    60,
		InterpBufferSize:   120,
		InterpolationDelay: 100 * time.Millisecond,
		ReconcileTolerance: 5.0,
		CorrectionSmooth:   100 * time.Millisecond,
		ResendInterval:     50 * time.Millisecond,
		PositionUpdateHz:   20,
	}

	Arena = ArenaConfig{
		Width:   640,
		Height:  360,
		GroundY: 300,
		SpawnX:  100,
		SpawnY:  260,
	}
}
