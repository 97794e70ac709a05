package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/sim"
	"github.com/l1jgo/delve/internal/world"
)

// ItemUseSystem resolves WantsToUseItem: target selection, then every effect
// the item carries. Phase 6 (Inventory), after pickup.
type ItemUseSystem struct {
	ctx *sim.Context
}

func NewItemUseSystem(ctx *sim.Context) *ItemUseSystem {
	return &ItemUseSystem{ctx: ctx}
}

func (s *ItemUseSystem) Phase() coresys.Phase { return coresys.PhaseInventory }

func (s *ItemUseSystem) Update(_ time.Duration) {
	c := s.ctx.C
	c.WantsToUseItem.Each(func(id ecs.EntityID, use *component.WantsToUseItem) {
		mustAlive(s.ctx, use.Item, "use item")
		s.use(id, use.Item, s.targets(id, use))
	})
	c.WantsToUseItem.Clear()
}

// targets resolves who the item affects. Entities already queued for
// destruction this turn are skipped.
func (s *ItemUseSystem) targets(user ecs.EntityID, use *component.WantsToUseItem) []ecs.EntityID {
	if use.Target == nil {
		return []ecs.EntityID{user}
	}
	m := s.ctx.Map
	c := s.ctx.C
	var out []ecs.EntityID
	add := func(idx int) {
		for _, e := range m.TileContent[idx] {
			if !s.ctx.World.Pending(e) {
				out = append(out, e)
			}
		}
	}

	aoe, ok := c.AreaOfEffect.Get(use.Item)
	if !ok {
		if m.InBounds(use.Target.X, use.Target.Y) {
			add(m.Index(use.Target.X, use.Target.Y))
		}
		return out
	}
	for _, p := range world.FieldOfView(*use.Target, aoe.Radius, m) {
		if p.X < 1 || p.X > m.Width-2 || p.Y < 1 || p.Y > m.Height-2 {
			continue
		}
		add(m.Index(p.X, p.Y))
		s.ctx.Particles.Request(p.X, p.Y, component.Orange, component.Black, '░', 200)
	}
	return out
}

func (s *ItemUseSystem) use(user, item ecs.EntityID, targets []ecs.EntityID) {
	c := s.ctx.C
	byPlayer := s.ctx.IsPlayer(user)
	itemName := c.NameOf(item)

	if heal, ok := c.ProvidesHealing.Get(item); ok {
		for _, t := range targets {
			stats, ok := c.CombatStats.Get(t)
			if !ok {
				continue
			}
			stats.HP = min(stats.MaxHP, stats.HP+heal.Amount)
			if byPlayer {
				s.ctx.Log.Add("You drink the %s, healing %d hp.", itemName, heal.Amount)
			}
			s.particleAt(t, component.Green, '♥')
		}
	}

	if c.ProvidesFood.Has(item) && len(targets) > 0 {
		if hc, ok := c.HungerClock.Get(targets[0]); ok {
			hc.State = component.WellFed
			hc.Duration = s.ctx.Scripts.WellFedDuration()
			s.ctx.Log.Add("You eat the %s.", itemName)
		}
	}

	if c.MagicMapper.Has(item) {
		s.ctx.Log.Add("The map is revealed to you!")
		anim := s.ctx.World.CreateEntity()
		c.Animation.Set(anim, &component.Animation{DurationMS: s.ctx.Opts.RevealMS})
		s.ctx.Requests.MagicMap = anim
	}

	if dmg, ok := c.InflictsDamage.Get(item); ok {
		for _, t := range targets {
			c.AddDamage(t, dmg.Amount)
			if byPlayer {
				s.ctx.Log.Add("You use %s on %s, inflicting %d damage.", itemName, c.Named(t), dmg.Amount)
				s.particleAt(t, component.Red, '‼')
			}
		}
	}

	if eq, ok := c.Equippable.Get(item); ok && len(targets) > 0 {
		equip(s.ctx, item, targets[0], eq.Slot)
	}

	if conf, ok := c.Confusion.Get(item); ok {
		turns := conf.Turns
		for _, t := range targets {
			if byPlayer {
				s.ctx.Log.Add("You use %s on %s, confusing them.", itemName, c.Named(t))
			}
			s.particleAt(t, component.Magenta, '?')
		}
		for _, t := range targets {
			c.Confusion.Set(t, &component.Confusion{Turns: turns})
		}
	}

	if c.Consumable.Has(item) {
		s.ctx.World.MarkForDestruction(item)
	}
	s.ctx.Zap.Debug("item used",
		zap.Stringer("user", user),
		zap.String("item", itemName),
		zap.Int("targets", len(targets)))
}

func (s *ItemUseSystem) particleAt(id ecs.EntityID, fg component.Color, glyph rune) {
	if pos, ok := s.ctx.C.Position.Get(id); ok {
		s.ctx.Particles.Request(pos.X, pos.Y, fg, component.Black, glyph, 200)
	}
}
