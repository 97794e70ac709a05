package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/game"
	"github.com/l1jgo/delve/internal/world"
)

const logLines = 5

var (
	white     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	yellow    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)
	red       = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)
	highlight = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua)

	bloodstain = component.Color{R: 191, G: 0, B: 0}
	tileColors = map[world.TileType]component.Color{
		world.Wall:       {R: 0, G: 255, B: 0},
		world.Floor:      {R: 0, G: 128, B: 128},
		world.DownStairs: {R: 0, G: 255, B: 255},
	}
	tileGlyphs = map[world.TileType]rune{
		world.Wall:       '#',
		world.Floor:      '.',
		world.DownStairs: '>',
	}
)

func rgb(c component.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func grey(c component.Color) component.Color {
	l := uint8((int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000)
	return component.Color{R: l, G: l, B: l}
}

func (u *UI) put(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		u.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Draw renders the current frame and shows it.
func (u *UI) Draw(g *game.Game) {
	u.sync(g)
	u.screen.Clear()
	switch g.State().Kind {
	case game.MainMenu:
		u.drawMainMenu()
	case game.GameOver:
		u.drawGameOver()
	case game.PreLoading, game.Loading:
		u.put(2, 2, "Loading...", white)
	default:
		u.drawMap(g)
		u.drawEntities(g)
		u.drawHUD(g)
		u.drawOverlay(g)
	}
	u.screen.Show()
}

func (u *UI) drawMap(g *game.Game) {
	m := g.Map()
	for idx, tile := range m.Tiles {
		if !m.Revealed[idx] {
			continue
		}
		fg, bg := tileColors[tile], component.Black
		if m.Visible[idx] {
			if m.Bloodstains.Has(idx) {
				bg = bloodstain
			}
		} else {
			fg = grey(fg)
		}
		x, y := m.XY(idx)
		u.screen.SetContent(x, y, tileGlyphs[tile], nil, tcell.StyleDefault.Foreground(rgb(fg)).Background(rgb(bg)))
	}
}

func (u *UI) drawEntities(g *game.Game) {
	m := g.Map()
	for _, d := range g.Renderables() {
		if !m.InBounds(d.Pos.X, d.Pos.Y) || !m.Visible[m.Index(d.Pos.X, d.Pos.Y)] {
			continue
		}
		bg := rgb(d.Renderable.BG)
		if d.Renderable.BG == component.Black && m.Bloodstains.Has(m.Index(d.Pos.X, d.Pos.Y)) {
			bg = rgb(bloodstain)
		}
		style := tcell.StyleDefault.Foreground(rgb(d.Renderable.FG)).Background(bg)
		u.screen.SetContent(d.Pos.X, d.Pos.Y, d.Renderable.Glyph, nil, style)
	}
}

func (u *UI) drawHUD(g *game.Game) {
	ctx := g.Context()
	m := g.Map()
	top := m.Height
	u.put(0, top, fmt.Sprintf("Depth: %d", m.Depth), yellow)
	if stats, ok := ctx.C.CombatStats.Get(ctx.Player); ok {
		style := white
		if stats.HP*3 <= stats.MaxHP {
			style = red
		}
		u.put(12, top, fmt.Sprintf("HP: %d / %d", stats.HP, stats.MaxHP), style)
	}
	if hc, ok := ctx.C.HungerClock.Get(ctx.Player); ok && hc.State != component.Normal {
		style := yellow
		if hc.State == component.Starving || hc.State == component.Hungry {
			style = red
		}
		u.put(30, top, hc.State.String(), style)
	}
	for i, line := range ctx.Log.Last(logLines) {
		u.put(0, top+1+i, line, white)
	}
}

func (u *UI) drawOverlay(g *game.Game) {
	st := g.State()
	c := g.Context().C
	switch st.Kind {
	case game.ShowInventory:
		u.drawList("Inventory", g.Inventory(), c)
	case game.ShowDropItem:
		u.drawList("Drop Which Item?", g.Inventory(), c)
	case game.ShowRemoveItem:
		u.drawList("Remove Which Item?", g.Equipment(), c)
	case game.ShowTargeting:
		u.put(0, 0, "Select Target:", yellow)
		for _, p := range g.Targets() {
			r, _, style, _ := u.screen.GetContent(p.X, p.Y)
			_, bg, _ := style.Decompose()
			if bg == tcell.ColorBlack || bg == tcell.ColorDefault {
				style = style.Background(tcell.ColorBlue)
			}
			u.screen.SetContent(p.X, p.Y, r, nil, style)
		}
		r, _, _, _ := u.screen.GetContent(u.cursor.X, u.cursor.Y)
		u.screen.SetContent(u.cursor.X, u.cursor.Y, r, nil, highlight)
	case game.Console:
		u.put(0, 0, "> console  (` or ESC to close)", yellow)
	}
}

func (u *UI) drawList(title string, items []ecs.EntityID, c *component.Components) {
	x, y := 15, 25-len(items)/2
	u.put(x, y-2, title, yellow)
	for i, id := range items {
		u.put(x, y+i, fmt.Sprintf("(%c) %s", 'a'+i, c.NameOf(id)), white)
	}
	u.put(x, y+len(items)+1, "ESCAPE to cancel", yellow)
}

func (u *UI) drawMainMenu() {
	u.put(20, 15, "Delve", yellow)
	for i, e := range u.menuEntries() {
		style := white
		if i == u.menu {
			style = highlight
		}
		u.put(20, 18+i, fmt.Sprintf("[%c] %s", e.key, e.label), style)
	}
}

func (u *UI) drawGameOver() {
	u.put(20, 15, "Your journey has ended!", yellow)
	u.put(20, 17, "One day, we'll tell you all about how you did.", white)
	u.put(20, 20, "Press any key to return to the menu.", white)
}
