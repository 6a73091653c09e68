package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// CorrectionData smooths a reconciliation snap: the renderer draws the
// avatar at its corrected position plus an offset that is tweened back
// to zero, so large corrections read as a fast glide instead of a
// teleport.
type CorrectionData struct {
	TweenX, TweenY   *gween.Tween
	OffsetX, OffsetY float64
}

var Correction = donburi.NewComponentType[CorrectionData]()
