package ui

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Salvo-Sense/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	skyCol      = color.RGBA{R: 16, G: 22, B: 34, A: 255}
	groundCol   = color.RGBA{R: 34, G: 40, B: 28, A: 255}
	gridCol     = color.RGBA{R: 30, G: 40, B: 58, A: 90}
	baseCol     = color.RGBA{R: 70, G: 160, B: 220, A: 255}
	rubbleCol   = color.RGBA{R: 50, G: 46, B: 40, A: 255}
	lockedCol   = color.RGBA{R: 60, G: 64, B: 70, A: 160}
	defenseCol  = color.RGBA{R: 220, G: 90, B: 60, A: 255}
	aircraftCol = color.RGBA{R: 200, G: 220, B: 240, A: 255}
)

// threatColors shades facilities by their threat tier.
var threatColors = map[game.ThreatLevel]color.RGBA{
	game.ThreatLow:      {R: 150, G: 140, B: 90, A: 255},
	game.ThreatMedium:   {R: 180, G: 130, B: 60, A: 255},
	game.ThreatHigh:     {R: 200, G: 100, B: 50, A: 255},
	game.ThreatCritical: {R: 210, G: 60, B: 60, A: 255},
}

// weaponColors tints player ordnance by weapon.
var weaponColors = map[game.WeaponType]color.RGBA{
	game.WeaponMissile:  {R: 240, G: 240, B: 200, A: 255},
	game.WeaponGuided:   {R: 120, G: 240, B: 160, A: 255},
	game.WeaponAircraft: {R: 200, G: 220, B: 240, A: 255},
	game.WeaponCruise:   {R: 250, G: 200, B: 90, A: 255},
	game.WeaponBomb:     {R: 230, G: 230, B: 230, A: 255},
}

var missileColors = map[game.MissileKind]color.RGBA{
	game.MissileOffensive:   {R: 240, G: 80, B: 60, A: 255},
	game.MissileStrike:      {R: 250, G: 130, B: 40, A: 255},
	game.MissileInterceptor: {R: 240, G: 220, B: 80, A: 255},
}

var explosionColors = map[game.ExplosionKind]color.RGBA{
	game.ExplosionRegular:   {R: 255, G: 160, B: 60, A: 255},
	game.ExplosionAtomic:    {R: 255, G: 220, B: 120, A: 255},
	game.ExplosionFlash:     {R: 255, G: 255, B: 240, A: 255},
	game.ExplosionShockwave: {R: 255, G: 240, B: 200, A: 255},
}

var particleColors = map[game.ParticleKind]color.RGBA{
	game.ParticleSpark:  {R: 255, G: 200, B: 90, A: 255},
	game.ParticleDebris: {R: 120, G: 100, B: 80, A: 255},
	game.ParticleSmoke:  {R: 90, G: 90, B: 90, A: 255},
}

// fade scales a colour (premultiplied) by a in [0,1].
func fade(c color.RGBA, a float64) color.RGBA {
	if a <= 0 {
		return color.RGBA{}
	}
	if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 10, B: 14, A: 255})

	snap := g.engine.Snapshot()
	g.drawField(screen, &snap)
	g.drawDefenses(screen, &snap)
	g.drawFacilities(screen, &snap)
	g.drawBase(screen, &snap)
	g.drawOrdnance(screen, &snap)
	g.drawEffects(screen, &snap)
	g.drawAim(screen)

	// Battlefield border frame.
	ox, oy := float32(g.offX), float32(g.offY)
	gw, gh := float32(g.gameWidth), float32(g.gameHeight)
	vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0, color.RGBA{R: 60, G: 80, B: 110, A: 255}, false)
	vector.StrokeRect(screen, ox-3, oy-3, gw+6, gh+6, 1.0, color.RGBA{R: 40, G: 55, B: 80, A: 100}, false)

	g.feed.Draw(screen, g.offX+g.gameWidth+g.offX, g.height)

	if g.showHUD {
		g.drawHUD(screen, &snap)
	}
	g.drawBanner(screen, &snap)
}

// sx and sy convert field coordinates to screen coordinates.
func (g *Game) sx(x float64) float32 { return float32(x) + float32(g.offX) }
func (g *Game) sy(y float64) float32 { return float32(y) + float32(g.offY) }

func (g *Game) drawField(screen *ebiten.Image, snap *game.Snapshot) {
	ox, oy := float32(g.offX), float32(g.offY)
	gw := float32(g.gameWidth)
	groundY := float32(snap.Field.GroundY)

	vector.FillRect(screen, ox, oy, gw, groundY, skyCol, false)
	vector.FillRect(screen, ox, oy+groundY, gw, float32(g.gameHeight)-groundY, groundCol, false)
	drawGridOffset(screen, g.offX, g.offY, g.gameWidth, int(groundY), 100, gridCol)
	vector.StrokeLine(screen, ox, oy+groundY, ox+gw, oy+groundY, 1.0, color.RGBA{R: 80, G: 100, B: 70, A: 255}, false)
}

func (g *Game) drawDefenses(screen *ebiten.Image, snap *game.Snapshot) {
	for _, d := range snap.Defenses {
		if !d.Active {
			continue
		}
		cx, cy := g.sx(d.Pos.X), g.sy(d.Pos.Y)
		vector.StrokeCircle(screen, cx, cy, float32(d.Radius), 1.0, fade(defenseCol, 0.15), true)
		vector.FillRect(screen, cx-5, cy-5, 10, 10, defenseCol, false)
		if d.Missiles > 0 {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", d.Missiles), int(cx)+8, int(cy)-8)
		}
	}
}

func (g *Game) drawFacilities(screen *ebiten.Image, snap *game.Snapshot) {
	for i := range snap.Facilities {
		f := &snap.Facilities[i]
		x, y := g.sx(f.Rect.X), g.sy(f.Rect.Y)
		w, h := float32(f.Rect.W), float32(f.Rect.H)
		switch {
		case !f.Active:
			vector.StrokeRect(screen, x, y, w, h, 1.0, lockedCol, false)
		case f.Destroyed:
			vector.FillRect(screen, x, y+h*0.6, w, h*0.4, rubbleCol, false)
		default:
			vector.FillRect(screen, x, y, w, h, threatColors[f.Threat], false)
			drawHealthBar(screen, x, y-8, w, f.HealthFrac())
			ebitenutil.DebugPrintAt(screen, f.Name, int(x), int(y)-24)
		}
	}
}

func (g *Game) drawBase(screen *ebiten.Image, snap *game.Snapshot) {
	b := snap.Base
	x, y := g.sx(b.Rect.X), g.sy(b.Rect.Y)
	w, h := float32(b.Rect.W), float32(b.Rect.H)
	if b.Destroyed {
		vector.FillRect(screen, x, y+h*0.6, w, h*0.4, rubbleCol, false)
		return
	}
	vector.FillRect(screen, x, y, w, h, baseCol, false)
	frac := 0.0
	if b.MaxHealth > 0 {
		frac = b.Health / b.MaxHealth
	}
	drawHealthBar(screen, x, y-8, w, frac)
}

func drawHealthBar(screen *ebiten.Image, x, y, w float32, frac float64) {
	vector.FillRect(screen, x, y, w, 4, color.RGBA{R: 40, G: 20, B: 20, A: 255}, false)
	col := color.RGBA{R: 80, G: 200, B: 90, A: 255}
	if frac < 0.3 {
		col = color.RGBA{R: 220, G: 70, B: 50, A: 255}
	} else if frac < 0.6 {
		col = color.RGBA{R: 220, G: 180, B: 60, A: 255}
	}
	vector.FillRect(screen, x, y, w*float32(frac), 4, col, false)
}

// drawTrail renders a fading path, oldest sample faintest.
func (g *Game) drawTrail(screen *ebiten.Image, trail []game.TrailPoint, c color.RGBA) {
	n := len(trail)
	for i, p := range trail {
		a := 0.6 * float64(i+1) / float64(n)
		vector.FillRect(screen, g.sx(p.Pos.X)-1, g.sy(p.Pos.Y)-1, 2, 2, fade(c, a), false)
	}
}

func (g *Game) drawOrdnance(screen *ebiten.Image, snap *game.Snapshot) {
	for i := range snap.Projectiles {
		p := &snap.Projectiles[i]
		c := weaponColors[p.Weapon]
		g.drawTrail(screen, p.Trail, c)
		vector.FillCircle(screen, g.sx(p.Pos.X), g.sy(p.Pos.Y), 3, c, true)
	}
	for i := range snap.Missiles {
		m := &snap.Missiles[i]
		c := missileColors[m.Kind]
		g.drawTrail(screen, m.Trail, c)
		vector.FillCircle(screen, g.sx(m.Pos.X), g.sy(m.Pos.Y), 3, c, true)
	}
	for i := range snap.Aircraft {
		a := &snap.Aircraft[i]
		g.drawTrail(screen, a.Trail, aircraftCol)
		x, y := g.sx(a.Pos.X), g.sy(a.Pos.Y)
		vector.StrokeLine(screen, x-10, y, x+10, y, 3.0, aircraftCol, true)
		vector.StrokeLine(screen, x-2, y-6, x-2, y+6, 2.0, aircraftCol, true)
	}
}

func (g *Game) drawEffects(screen *ebiten.Image, snap *game.Snapshot) {
	for _, x := range snap.Explosions {
		cx, cy := g.sx(x.Pos.X), g.sy(x.Pos.Y)
		c := fade(explosionColors[x.Kind], x.Alpha)
		if x.Kind == game.ExplosionShockwave {
			vector.StrokeCircle(screen, cx, cy, float32(x.Radius), 2.0, c, true)
			continue
		}
		vector.FillCircle(screen, cx, cy, float32(x.Radius), c, true)
	}
	for _, p := range snap.Particles {
		s := float32(p.Size)
		vector.FillRect(screen, g.sx(p.Pos.X)-s/2, g.sy(p.Pos.Y)-s/2, s, s, fade(particleColors[p.Kind], p.Alpha), false)
	}
}

// drawAim draws a guide from the launch origin to the cursor.
func (g *Game) drawAim(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()
	if mx < g.offX || mx >= g.offX+g.gameWidth || my < g.offY || my >= g.offY+g.gameHeight {
		return
	}
	o := g.engine.Origin()
	c := fade(weaponColors[g.Weapon()], 0.25)
	vector.StrokeLine(screen, g.sx(o.X), g.sy(o.Y), float32(mx), float32(my), 1.0, c, true)
	vector.StrokeCircle(screen, float32(mx), float32(my), 6, 1.0, c, true)
}

func (g *Game) drawHUD(screen *ebiten.Image, snap *game.Snapshot) {
	s := snap.Session

	speedStr := "1x"
	switch {
	case g.simSpeed == 0:
		speedStr = "PAUSED"
	case g.simSpeed != 1:
		speedStr = fmt.Sprintf("%gx", g.simSpeed)
	}
	auto := "off"
	if g.autoOn {
		auto = "on"
	}

	lines := []string{
		fmt.Sprintf("T=%d  %s L%d  score %d  time %ds", snap.Tick, s.Phase, s.Level, s.Score, s.TimeLeftSeconds()),
		fmt.Sprintf("base %.0f/%.0f  threat %.2f  acc %.0f%%", snap.Base.Health, snap.Base.MaxHealth, snap.ThreatLevel, s.Stats.Accuracy()*100),
	}
	for i, w := range game.PlayerWeapons {
		sel := " "
		if i == g.selected {
			sel = "*"
		}
		n := "inf"
		if c := snap.Inventory.Count(w); c != game.Unlimited {
			n = fmt.Sprintf("%d", c)
		}
		lines = append(lines, fmt.Sprintf("  [%d]%s %-8s %s", i+1, sel, w, n))
	}
	lines = append(lines,
		fmt.Sprintf("SIM: %s  P=pause  ,/. speed", speedStr),
		fmt.Sprintf("click=fire  A=autopilot (%s)", auto),
		"R=restart  C=copy report  H=hide",
	)

	// Render into hudBuf at 1x, then scale up.
	const lineH = 12
	const charW = 6
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(g.offX/hudScale + 4)
	by := float32(g.offY/hudScale + 4)

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 8, B: 14, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 80, B: 120, A: 180}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}

// drawBanner shows the status line and, once the session ends, the outcome.
func (g *Game) drawBanner(screen *ebiten.Image, snap *game.Snapshot) {
	cx := g.offX + g.gameWidth/2
	if g.statusLeft > 0 && g.status != "" {
		w := len(g.status) * 7
		text.Draw(screen, g.status, basicfont.Face7x13, cx-w/2, g.offY+g.gameHeight-16, color.White)
	}
	if !snap.Session.Phase.Terminal() {
		return
	}
	out := game.DetermineOutcome(snap.Session, snap.Base)
	lines := []string{
		fmt.Sprintf("%s  -  score %d", out.Description, out.Score),
		"R to restart  C to copy the report",
	}
	by := float32(g.offY + g.gameHeight/2 - 30)
	vector.FillRect(screen, float32(g.offX), by, float32(g.gameWidth), 60, color.RGBA{R: 0, G: 0, B: 0, A: 180}, false)
	for i, l := range lines {
		w := len(l) * 7
		text.Draw(screen, l, basicfont.Face7x13, cx-w/2, int(by)+24+i*18, color.White)
	}
}

func drawGridOffset(screen *ebiten.Image, offX, offY, w, h, spacing int, c color.Color) {
	if spacing <= 0 {
		return
	}
	ox, oy := float32(offX), float32(offY)
	for x := 0; x <= w; x += spacing {
		xf := ox + float32(x)
		vector.StrokeLine(screen, xf, oy, xf, oy+float32(h), 1.0, c, false)
	}
	for y := 0; y <= h; y += spacing {
		yf := oy + float32(y)
		vector.StrokeLine(screen, ox, yf, ox+float32(w), yf, 1.0, c, false)
	}
}
