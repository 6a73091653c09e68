package network

import (
	"time"

	"github.com/brawlworks/skybrawl/shared/gamemath"
	"github.com/brawlworks/skybrawl/shared/netconfig"
)

// RemoteFrame is a timestamped sample of a remote avatar's motion.
type RemoteFrame struct {
	X, Y       float64
	VelX, VelY float64
	Facing     netconfig.Facing
	Timestamp  int64 // sender Unix ms
}

// FrameBuffer accumulates snapshots for one remote avatar and renders
// them on a fixed delay, interpolating between the bracketing pair.
// The delay deliberately trades a small constant latency for
// jitter-free motion.
type FrameBuffer struct {
	frames   []RemoteFrame // ordered by timestamp
	capacity int
	delayMs  int64
}

// NewFrameBuffer creates a buffer retaining up to capacity frames and
// sampling delay behind the current time.
func NewFrameBuffer(capacity int, delay time.Duration) *FrameBuffer {
	if capacity <= 0 {
		capacity = 120
	}
	return &FrameBuffer{
		frames:   make([]RemoteFrame, 0, capacity),
		capacity: capacity,
		delayMs:  delay.Milliseconds(),
	}
}

// SetDelay adjusts the interpolation delay. Raising it improves
// smoothness at the cost of remote avatars appearing further in the
// past.
func (fb *FrameBuffer) SetDelay(delay time.Duration) {
	fb.delayMs = delay.Milliseconds()
}

// Len returns the number of buffered frames.
func (fb *FrameBuffer) Len() int {
	return len(fb.frames)
}

// Push inserts a frame in timestamp order, tolerating reordered
// delivery. A frame duplicating a buffered timestamp is dropped. The
// oldest frame is evicted once capacity is exceeded.
func (fb *FrameBuffer) Push(f RemoteFrame) {
	i := len(fb.frames)
	for i > 0 && fb.frames[i-1].Timestamp > f.Timestamp {
		i--
	}
	if i > 0 && fb.frames[i-1].Timestamp == f.Timestamp {
		return
	}
	fb.frames = append(fb.frames, RemoteFrame{})
	copy(fb.frames[i+1:], fb.frames[i:])
	fb.frames[i] = f

	if len(fb.frames) > fb.capacity {
		copy(fb.frames, fb.frames[1:])
		fb.frames = fb.frames[:fb.capacity]
	}
}

// Sample returns the frame to render at now: the linear interpolation
// between the pair bracketing now - delay. When no bracketing pair
// exists (sparse buffer, or we have run ahead of received data) it
// snaps to the newest frame, preferring a forward jump over a visible
// teleport backward. ok is false only while the buffer is empty.
//
// Frames older than the lookback horizon are discarded on each call so
// memory stays bounded regardless of session length.
func (fb *FrameBuffer) Sample(nowMs int64) (RemoteFrame, bool) {
	if len(fb.frames) == 0 {
		return RemoteFrame{}, false
	}

	renderTime := nowMs - fb.delayMs
	fb.discardBefore(renderTime - fb.delayMs)

	for i := 0; i < len(fb.frames)-1; i++ {
		from, to := fb.frames[i], fb.frames[i+1]
		if from.Timestamp <= renderTime && renderTime <= to.Timestamp {
			span := float64(to.Timestamp - from.Timestamp)
			t := 1.0
			if span > 0 {
				t = gamemath.Clamp01(float64(renderTime-from.Timestamp) / span)
			}
			return RemoteFrame{
				X:         gamemath.Lerp(from.X, to.X, t),
				Y:         gamemath.Lerp(from.Y, to.Y, t),
				VelX:      gamemath.Lerp(from.VelX, to.VelX, t),
				VelY:      gamemath.Lerp(from.VelY, to.VelY, t),
				Facing:    to.Facing,
				Timestamp: renderTime,
			}, true
		}
	}

	return fb.frames[len(fb.frames)-1], true
}

// discardBefore drops frames older than horizon, always keeping the
// newest frame as a fallback.
func (fb *FrameBuffer) discardBefore(horizon int64) {
	cut := 0
	for cut < len(fb.frames)-1 && fb.frames[cut].Timestamp < horizon {
		cut++
	}
	if cut > 0 {
		fb.frames = append(fb.frames[:0], fb.frames[cut:]...)
	}
}
