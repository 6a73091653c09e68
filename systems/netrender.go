package systems

import (
	"fmt"
	"image/color"

	"github.com/brawlworks/skybrawl/components"
	cfg "github.com/brawlworks/skybrawl/config"
	"github.com/brawlworks/skybrawl/shared/netcomponents"
	"github.com/brawlworks/skybrawl/shared/netconfig"
	"github.com/brawlworks/skybrawl/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font/basicfont"
)

const (
	facingMarkerW = 4
	facingMarkerH = 6
	labelOffsetY  = 6
)

// DrawAvatars renders every avatar as a filled rect with a facing
// marker and a name/percent label. Invulnerable avatars flicker by
// drawing at reduced alpha.
func DrawAvatars(e *ecs.ECS, screen *ebiten.Image) {
	components.Avatar.Each(e.World, func(entry *donburi.Entry) {
		avatar := components.Avatar.Get(entry)
		pos := netcomponents.NetPosition.Get(entry)
		st := netcomponents.NetAvatarState.Get(entry)

		if st.Stocks <= 0 {
			return
		}

		drawX, drawY := pos.X, pos.Y
		if entry.HasComponent(components.Correction) {
			c := components.Correction.Get(entry)
			drawX += c.OffsetX
			drawY += c.OffsetY
		}

		body := avatarColor(avatar)
		if st.Invulnerable {
			body.A = 140
		}

		w := float32(cfg.Player.CollisionWidth)
		h := float32(cfg.Player.CollisionHeight)
		vector.DrawFilledRect(screen, float32(drawX), float32(drawY), w, h, body, false)

		// Small marker on the side the avatar faces
		markerX := float32(drawX) - facingMarkerW
		if avatar.Facing == netconfig.FacingRight {
			markerX = float32(drawX) + w
		}
		markerY := float32(drawY) + h/2 - facingMarkerH/2
		vector.DrawFilledRect(screen, markerX, markerY, facingMarkerW, facingMarkerH, body, false)

		label := fmt.Sprintf("%s %d%%", avatar.Name, st.Accumulated)
		labelX := int(drawX) + int(w)/2 - len(label)*7/2
		text.Draw(screen, label, basicfont.Face7x13, labelX, int(drawY)-labelOffsetY, cfg.White)
	})
}

// DrawHUD renders connection status and the local avatar's vitals in
// the top-left corner.
func DrawHUD(e *ecs.ECS, screen *ebiten.Image, status string) {
	face := basicfont.Face7x13
	y := 16
	text.Draw(screen, status, face, 8, y, cfg.White)

	entry, ok := tags.LocalAvatar.First(e.World)
	if !ok {
		return
	}

	st := netcomponents.NetAvatarState.Get(entry)
	y += 16
	if st.Stocks <= 0 {
		text.Draw(screen, "DEFEATED", face, 8, y, cfg.Red)
		return
	}
	vitals := fmt.Sprintf("HP %d  Stocks %d  %d%%", st.Health, st.Stocks, st.Accumulated)
	text.Draw(screen, vitals, face, 8, y, cfg.White)
}

func avatarColor(avatar *components.AvatarData) color.RGBA {
	if avatar.Mode == components.ControlLocal {
		return cfg.BrightGreen
	}
	palette := cfg.AvatarColors
	return palette[int(avatar.ID)%len(palette)]
}
