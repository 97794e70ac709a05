// Package component holds the plain-data component types attached to
// entities, the Components table set, and the ordered table registry walked
// by save/restore.
package component

import "github.com/l1jgo/delve/internal/world"

type Position struct {
	X int
	Y int
}

// Point converts to a grid point.
func (p Position) Point() world.Point { return world.Point{X: p.X, Y: p.Y} }

// Color is a 24-bit RGB color. Renderers map it to their own palette.
type Color struct {
	R, G, B uint8
}

var (
	Black   = Color{0, 0, 0}
	Red     = Color{255, 0, 0}
	Green   = Color{0, 255, 0}
	Yellow  = Color{255, 255, 0}
	Cyan    = Color{0, 255, 255}
	Magenta = Color{255, 0, 255}
	Orange  = Color{255, 165, 0}
	Pink    = Color{255, 192, 203}
	Brown   = Color{165, 42, 42}
)

// Renderable draws with lower Order on top.
type Renderable struct {
	Glyph rune
	FG    Color
	BG    Color
	Order int
}

// Viewshed caches the tiles an entity can see. Visible keeps the order the
// FOV scan produced them in.
type Viewshed struct {
	Visible []world.Point
	Range   int
	Dirty   bool
}

func (v *Viewshed) Contains(p world.Point) bool {
	for _, t := range v.Visible {
		if t == p {
			return true
		}
	}
	return false
}

type Name struct {
	Name string
}

type GivenName struct {
	Name string
}

// ParticleLifetime is a short-lived visual effect entity.
type ParticleLifetime struct {
	LifetimeMS float64
}

// Animation drives a timed sequence such as the magic-map reveal.
type Animation struct {
	DurationMS float64
	ElapsedMS  float64
}
