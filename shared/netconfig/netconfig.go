// Package netconfig defines lightweight types shared between the sync
// engine and the wire protocol. It must have zero dependencies on ebiten
// or any graphics library so headless tools and tests stay lean.
package netconfig

// ActionID represents a logical game action.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionJump
	ActionAttack
	ActionSpecial
	ActionCount // Must be last - used for array sizing
)

// Facing is the horizontal direction an avatar looks toward.
type Facing int

const (
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// AttackID identifies an attack variant announced to peers.
type AttackID int

const (
	AttackNone AttackID = iota
	AttackJab
	AttackSmash
	AttackAerial
	AttackSpecial
)
