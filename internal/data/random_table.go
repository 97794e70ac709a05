package data

import "github.com/l1jgo/delve/internal/core/rng"

type tableEntry struct {
	name   string
	weight int
}

// RandomTable picks names with probability proportional to their weight.
type RandomTable struct {
	entries []tableEntry
	total   int
}

// Add appends an entry. Non-positive weights are ignored so depth-scaled
// entries can be absent on early levels.
func (t *RandomTable) Add(name string, weight int) *RandomTable {
	if weight <= 0 {
		return t
	}
	t.entries = append(t.entries, tableEntry{name: name, weight: weight})
	t.total += weight
	return t
}

// Len returns the number of entries with positive weight.
func (t *RandomTable) Len() int { return len(t.entries) }

// Roll returns a weighted random name, or "" for an empty table. It consumes
// exactly one die roll from r when the table is non-empty.
func (t *RandomTable) Roll(r *rng.RNG) string {
	if t.total == 0 {
		return ""
	}
	roll := r.Roll(1, t.total) - 1
	for _, e := range t.entries {
		if roll < e.weight {
			return e.name
		}
		roll -= e.weight
	}
	return t.entries[len(t.entries)-1].name
}
