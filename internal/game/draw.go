package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/CrazyForks/wukong-survivors/internal/geom"
	"github.com/CrazyForks/wukong-survivors/internal/sim"
)

var (
	colorBackdrop = color.RGBA{15, 15, 18, 255}
	colorArena    = color.RGBA{30, 30, 36, 255}
	colorMinion   = color.RGBA{220, 80, 80, 255}
	colorElite    = color.RGBA{190, 70, 220, 255}
	colorHitFlash = color.RGBA{255, 220, 220, 255}
	colorPickup   = color.RGBA{240, 210, 80, 255}
	colorShot     = color.RGBA{255, 240, 120, 255}
	colorOrb      = color.RGBA{110, 210, 240, 255}
	colorPlayer   = color.RGBA{80, 200, 120, 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackdrop)

	// camera centered on player
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	playerPos := g.player.Position()
	camX := float32(sw)/2 - float32(playerPos.X)
	camY := float32(sh)/2 - float32(playerPos.Y)

	vector.DrawFilledRect(
		screen,
		camX, camY,
		arenaW, arenaH,
		colorArena,
		false,
	)

	g.stage.each(func(kind string, pos geom.Vec2, hitT float64) {
		x := camX + float32(pos.X)
		y := camY + float32(pos.Y)

		switch {
		case kind == "pickup":
			vector.DrawFilledCircle(screen, x, y, 4, colorPickup, false)

		case strings.HasSuffix(kind, "_shot"):
			vector.DrawFilledCircle(screen, x, y, 4, colorShot, false)

		case strings.HasSuffix(kind, "_orb"):
			vector.DrawFilledCircle(screen, x, y, 8, colorOrb, false)

		default:
			def, ok := g.lib.Enemies[kind]
			if !ok {
				vector.DrawFilledCircle(screen, x, y, 8, colorMinion, false)
				return
			}
			clr := colorMinion
			if def.Rank == "elite" {
				clr = colorElite
			}
			if hitT > 0 {
				clr = colorHitFlash
			}
			r := float32(def.Radius)
			vector.DrawFilledRect(screen, x-r, y-r, 2*r, 2*r, clr, false)
		}
	})

	g.drawPlayer(screen, camX, camY)
	g.drawHUD(screen)

	// ---- Modal overlays (priority: end screen > offers > pause) ----

	if g.end != nil {
		g.drawEndOverlay(screen, sw, sh)
		return
	}
	if len(g.offerQueue) > 0 {
		g.drawOfferOverlay(screen, sw, sh)
		return
	}
	if g.paused {
		g.drawPauseOverlay(screen, sw, sh)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image, camX, camY float32) {
	pos := g.player.Position()
	x := camX + float32(pos.X)
	y := camY + float32(pos.Y)

	if img := g.assets.Get("player"); img != nil {
		op := &ebiten.DrawImageOptions{}
		b := img.Bounds()
		op.GeoM.Translate(float64(x)-float64(b.Dx())/2, float64(y)-float64(b.Dy())/2)
		screen.DrawImage(img, op)
		return
	}

	vector.DrawFilledCircle(screen, x, y, float32(g.cfg.PlayerRadius), colorPlayer, false)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	into, toNext := g.session.XPProgress()
	stats := g.session.Stats()

	var b strings.Builder
	fmt.Fprintf(&b, "HP: %.0f/%.0f\n", g.player.HP(), g.player.MaxHP())
	fmt.Fprintf(&b, "LV: %d  XP: %.0f/%.0f\n", g.session.PlayerLevel(), into, toNext)
	fmt.Fprintf(&b, "Kills: %d  Enemies: %d\n", stats.EnemiesKilled, g.session.Spawner().Population())
	fmt.Fprintf(&b, "Coins: %.0f\n", stats.Currency)
	fmt.Fprintf(&b, "Time: %.1fs / %.0fs\n", g.session.Elapsed(), g.session.Level().SessionDuration)

	for _, w := range g.session.Arsenal().Weapons() {
		fmt.Fprintf(&b, "%s Lv%d\n", w.Name(), w.Level())
	}
	for _, rule := range g.session.Synergy().Active() {
		fmt.Fprintf(&b, "* %s\n", rule.Name)
	}

	ebitenutil.DebugPrintAt(screen, b.String(), 8, 8)
}

func (g *Game) drawEndOverlay(screen *ebiten.Image, sw, sh int) {
	vector.DrawFilledRect(screen, 0, 0, float32(sw), float32(sh), color.RGBA{0, 0, 0, 180}, false)

	headline := "DEFEAT"
	if g.end.Victory {
		headline = "VICTORY"
	}
	stats := g.end.Stats

	ebitenutil.DebugPrintAt(screen, headline, 8, 90)
	ebitenutil.DebugPrintAt(screen, "Press R to restart, F2 to copy the report", 8, 110)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Time: %.1fs", stats.TimeSurvived), 8, 130)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Level: %d", stats.PlayerLevel), 8, 150)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Kills: %d (%d elite)", stats.EnemiesKilled, stats.EliteKills), 8, 170)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Damage Dealt: %.0f", stats.DamageDealt), 8, 190)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Damage Taken: %.0f", stats.DamageTaken), 8, 210)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Coins: %.0f", stats.Currency), 8, 230)
}

func (g *Game) drawOfferOverlay(screen *ebiten.Image, sw, sh int) {
	vector.DrawFilledRect(screen, 0, 0, float32(sw), float32(sh), color.RGBA{0, 0, 0, 180}, false)

	cur := g.offerQueue[0]
	x, y := 12, 120

	ebitenutil.DebugPrintAt(screen, cur.title+" Choose:", x, y)
	y += 18

	for i, o := range cur.offers {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d) %s", i+1, describeOffer(o)), x, y)
		y += 16
	}
	y += 6
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Press 1-%d", len(cur.offers)), x, y)
}

func (g *Game) drawPauseOverlay(screen *ebiten.Image, sw, sh int) {
	vector.DrawFilledRect(screen, 0, 0, float32(sw), float32(sh), color.RGBA{0, 0, 0, 140}, false)
	ebitenutil.DebugPrintAt(screen, "PAUSED", 8, 90)
	ebitenutil.DebugPrintAt(screen, "Press the space bar to resume", 8, 110)
	ebitenutil.DebugPrintAt(screen, "Press R to restart", 8, 130)
}

func describeOffer(o sim.Offer) string {
	name := string(o.Kind)
	if spec, ok := sim.CatalogSpec(o.Kind); ok {
		name = spec.Name
	}
	if o.Type == sim.OfferNew {
		return fmt.Sprintf("%s (new)", name)
	}
	return fmt.Sprintf("%s -> Lv%d", name, o.Level)
}
