package component

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/l1jgo/delve/internal/core/ecs"
)

var titleCaser = cases.Title(language.English)

// Title normalizes a kind or item name for display ("health potion" ->
// "Health Potion").
func Title(s string) string {
	return titleCaser.String(s)
}

// Named formats an entity for the game log: "Given the Kind" when it has a
// given name, "Unnamed Kind" when it only has a kind, "Unknown" otherwise.
// The player is always shown by its plain name.
func (c *Components) Named(id ecs.EntityID) string {
	n, ok := c.Name.Get(id)
	if !ok {
		return "Unknown"
	}
	if g, ok := c.GivenName.Get(id); ok {
		return g.Name + " the " + n.Name
	}
	if c.Player.Has(id) {
		return n.Name
	}
	return "Unnamed " + n.Name
}

// NameOf returns the plain Name, or "Unknown".
func (c *Components) NameOf(id ecs.EntityID) string {
	if n, ok := c.Name.Get(id); ok {
		return n.Name
	}
	return "Unknown"
}
