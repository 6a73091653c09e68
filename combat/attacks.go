package combat

import "github.com/brawlworks/skybrawl/shared/netconfig"

// AttackProfile describes the damage event template one attack
// produces on contact. Knockback X is toward the attacker's facing and
// is flipped by ProfileFor.
type AttackProfile struct {
	Damage    float64
	Type      DamageType
	Critical  bool
	Knockback Knockback
	Reach     float64
}

// Knockback is in px/frame, matching the movement step's velocity units.
var attackProfiles = map[netconfig.AttackID]AttackProfile{
	netconfig.AttackJab:     {Damage: 6, Type: Physical, Knockback: Knockback{X: 4, Y: -3}, Reach: 24},
	netconfig.AttackSmash:   {Damage: 14, Type: Physical, Critical: true, Knockback: Knockback{X: 9, Y: -6}, Reach: 28},
	netconfig.AttackAerial:  {Damage: 8, Type: Physical, Knockback: Knockback{X: 3, Y: -7}, Reach: 26},
	netconfig.AttackSpecial: {Damage: 10, Type: Elemental, Knockback: Knockback{X: 6, Y: -5}, Reach: 36},
}

// ProfileFor returns the damage template for one attack with the
// knockback oriented along facing. ok is false for AttackNone or an
// unknown id.
func ProfileFor(attack netconfig.AttackID, facing netconfig.Facing) (AttackProfile, bool) {
	p, ok := attackProfiles[attack]
	if !ok {
		return AttackProfile{}, false
	}
	p.Knockback.X *= float64(facing)
	return p, ok
}
