package sim

import "github.com/l1jgo/delve/internal/component"

// ParticleRequest asks for a short-lived glyph at a tile.
type ParticleRequest struct {
	X, Y       int
	FG, BG     component.Color
	Glyph      rune
	LifetimeMS float64
}

// ParticleBuilder collects visual cues raised during a pass; the particle
// system turns them into entities.
type ParticleBuilder struct {
	requests []ParticleRequest
}

func (b *ParticleBuilder) Request(x, y int, fg, bg component.Color, glyph rune, lifetimeMS float64) {
	b.requests = append(b.requests, ParticleRequest{x, y, fg, bg, glyph, lifetimeMS})
}

// Drain returns and clears the pending requests.
func (b *ParticleBuilder) Drain() []ParticleRequest {
	out := b.requests
	b.requests = nil
	return out
}

func (b *ParticleBuilder) Len() int { return len(b.requests) }
