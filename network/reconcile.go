package network

import (
	"math"

	"github.com/brawlworks/skybrawl/shared/gamemath"
	"github.com/brawlworks/skybrawl/shared/messages"
	"github.com/brawlworks/skybrawl/shared/netcomponents"
)

type pendingSnapshot = messages.AuthoritativeSnapshot

// Correction reports the outcome of one reconciliation pass. DX/DY is
// the visual offset from the corrected position back to the position
// rendered before the snap, for the caller to smooth out.
type Correction struct {
	Corrected bool
	DX, DY    float64
}

// ApplyAuthoritative stores the latest authoritative snapshot for the
// next reconcile pass. Snapshots older than the stored one are dropped;
// the transport may deliver them reordered or duplicated.
func (p *Predictor) ApplyAuthoritative(snap messages.AuthoritativeSnapshot) {
	if !p.enabled {
		return
	}
	if p.pending != nil && snap.Sequence < p.pending.Sequence {
		return
	}
	cp := snap
	p.pending = &cp
}

// Reconcile compares the pending authoritative snapshot against the
// buffered prediction for the same sequence. On divergence beyond
// tolerance it snaps to the authoritative state and replays every
// buffered input after the acknowledged sequence through the movement
// step. The acknowledged prefix of the buffer is pruned either way.
//
// A snapshot referencing a pruned or never-sent sequence is ignored:
// an expected consequence of network delay, not an error.
func (p *Predictor) Reconcile(pos *netcomponents.NetPositionData, vel *netcomponents.NetVelocityData) Correction {
	if !p.enabled || p.pending == nil {
		return Correction{}
	}
	snap := *p.pending
	p.pending = nil

	rec, ok := p.Buffer.Get(snap.Sequence)
	if !ok {
		return Correction{}
	}

	var corr Correction
	if gamemath.Dist(rec.X, rec.Y, snap.X, snap.Y) > p.tolerance {
		oldX, oldY := pos.X, pos.Y

		s := MoveState{
			X: snap.X, Y: snap.Y,
			VelX: snap.VelX, VelY: snap.VelY,
			OnGround:  math.Abs(snap.VelY) < 0.1,
			JumpsUsed: p.jumpsUsed,
			JumpHeld:  rec.Input.Jump,
		}
		if s.OnGround {
			s.JumpsUsed = 0
		}
		// Replay only the movement step; attacks and cooldowns are not
		// replayed, accepting minor combat-timing drift.
		for _, replay := range p.Buffer.After(snap.Sequence) {
			s = p.Step(s, replay.Input)
		}

		pos.X, pos.Y = s.X, s.Y
		vel.VelX, vel.VelY = s.VelX, s.VelY
		p.onGround = s.OnGround
		p.jumpsUsed = s.JumpsUsed
		p.jumpHeld = s.JumpHeld
		if p.avatarObj != nil {
			p.avatarObj.X, p.avatarObj.Y = s.X, s.Y
			p.avatarObj.Update()
		}
		corr = Correction{Corrected: true, DX: oldX - s.X, DY: oldY - s.Y}
	}

	p.Buffer.PruneThrough(snap.Sequence)
	return corr
}
