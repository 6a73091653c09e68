package systems

import (
	"time"

	"github.com/brawlworks/skybrawl/components"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// StartCorrection smooths a reconciliation snap of (dx, dy) pixels by
// tweening a render offset from the pre-correction position back to
// zero over the given duration.
func StartCorrection(entry *donburi.Entry, dx, dy float64, duration time.Duration) {
	if !entry.HasComponent(components.Correction) {
		return
	}
	c := components.Correction.Get(entry)
	secs := float32(duration.Seconds())
	c.OffsetX, c.OffsetY = dx, dy
	c.TweenX = gween.New(float32(dx), 0, secs, ease.Linear)
	c.TweenY = gween.New(float32(dy), 0, secs, ease.Linear)
}

// UpdateCorrections advances active correction tweens at the fixed tick
// rate and clears them once finished.
func UpdateCorrections(e *ecs.ECS) {
	const dt = float32(1.0 / 60.0)
	components.Correction.Each(e.World, func(entry *donburi.Entry) {
		c := components.Correction.Get(entry)
		if c.TweenX == nil {
			return
		}
		x, doneX := c.TweenX.Update(dt)
		y, doneY := c.TweenY.Update(dt)
		c.OffsetX, c.OffsetY = float64(x), float64(y)
		if doneX && doneY {
			c.TweenX, c.TweenY = nil, nil
			c.OffsetX, c.OffsetY = 0, 0
		}
	})
}
