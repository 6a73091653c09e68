package network

import "github.com/brawlworks/skybrawl/shared/netconfig"

// InputState is the merged set of currently held inputs for the local
// avatar.
type InputState struct {
	Left, Right, Up, Down bool
	Jump                  bool
	Attack                bool
	Special               bool
}

// Apply merges a partial input change into the state. Only the actions
// present in changes are touched.
func (s *InputState) Apply(changes map[netconfig.ActionID]bool) {
	for action, pressed := range changes {
		switch action {
		case netconfig.ActionMoveLeft:
			s.Left = pressed
		case netconfig.ActionMoveRight:
			s.Right = pressed
		case netconfig.ActionMoveUp:
			s.Up = pressed
		case netconfig.ActionMoveDown:
			s.Down = pressed
		case netconfig.ActionJump:
			s.Jump = pressed
		case netconfig.ActionAttack:
			s.Attack = pressed
		case netconfig.ActionSpecial:
			s.Special = pressed
		}
	}
}

// Direction returns -1, 0 or 1 from the held left/right keys.
func (s InputState) Direction() int {
	switch {
	case s.Left && !s.Right:
		return -1
	case s.Right && !s.Left:
		return 1
	}
	return 0
}

// Actions expands the state into the wire representation.
func (s InputState) Actions() map[netconfig.ActionID]bool {
	return map[netconfig.ActionID]bool{
		netconfig.ActionMoveLeft:  s.Left,
		netconfig.ActionMoveRight: s.Right,
		netconfig.ActionMoveUp:    s.Up,
		netconfig.ActionMoveDown:  s.Down,
		netconfig.ActionJump:      s.Jump,
		netconfig.ActionAttack:    s.Attack,
		netconfig.ActionSpecial:   s.Special,
	}
}

// InputSnapshot stores an input change alongside the motion state
// observed at that instant, before the input was applied.
type InputSnapshot struct {
	Sequence   uint64
	Input      InputState
	Timestamp  int64 // Unix ms
	X, Y       float64
	VelX, VelY float64
}

// SnapshotBuffer is a bounded ring of recent input snapshots keyed by
// sequence number, used for server reconciliation. The oldest entry is
// overwritten once capacity is exceeded; entries at or below the
// acknowledged sequence are treated as pruned.
type SnapshotBuffer struct {
	slots   []InputSnapshot
	nextSeq uint64
	acked   uint64
}

// NewSnapshotBuffer creates a buffer retaining up to capacity snapshots.
func NewSnapshotBuffer(capacity int) *SnapshotBuffer {
	if capacity <= 0 {
		capacity = 60
	}
	return &SnapshotBuffer{
		slots:   make([]InputSnapshot, capacity),
		nextSeq: 1,
	}
}

// Record stores a snapshot under the next sequence number and returns it.
func (b *SnapshotBuffer) Record(input InputState, timestamp int64, x, y, velX, velY float64) uint64 {
	seq := b.nextSeq
	b.slots[seq%uint64(len(b.slots))] = InputSnapshot{
		Sequence:  seq,
		Input:     input,
		Timestamp: timestamp,
		X:         x,
		Y:         y,
		VelX:      velX,
		VelY:      velY,
	}
	b.nextSeq = seq + 1
	return seq
}

// Get retrieves a snapshot by sequence. Returns false if the sequence
// was pruned, never recorded, or its slot has been overwritten.
func (b *SnapshotBuffer) Get(seq uint64) (InputSnapshot, bool) {
	if seq == 0 || seq <= b.acked || seq >= b.nextSeq {
		return InputSnapshot{}, false
	}
	rec := b.slots[seq%uint64(len(b.slots))]
	if rec.Sequence != seq {
		return InputSnapshot{}, false
	}
	return rec, true
}

// After returns all retained snapshots with sequence greater than seq,
// in sequence order.
func (b *SnapshotBuffer) After(seq uint64) []InputSnapshot {
	start := seq + 1
	if b.acked+1 > start {
		start = b.acked + 1
	}
	var out []InputSnapshot
	for s := start; s < b.nextSeq; s++ {
		if rec, ok := b.Get(s); ok {
			out = append(out, rec)
		}
	}
	return out
}

// PruneThrough discards every snapshot at or below seq.
func (b *SnapshotBuffer) PruneThrough(seq uint64) {
	if seq > b.acked {
		b.acked = seq
	}
}

// Len counts the retained, unpruned snapshots.
func (b *SnapshotBuffer) Len() int {
	n := 0
	for s := b.acked + 1; s < b.nextSeq; s++ {
		if _, ok := b.Get(s); ok {
			n++
		}
	}
	return n
}

// Clear drops every retained snapshot. Sequence numbering continues
// monotonically.
func (b *SnapshotBuffer) Clear() {
	for i := range b.slots {
		b.slots[i] = InputSnapshot{}
	}
	b.acked = b.nextSeq - 1
}
