package data

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed spawns.yaml
var defaultSpawns []byte

// MonsterTemplate holds the static stats for one monster kind.
type MonsterTemplate struct {
	Kind      string `yaml:"kind"`
	Glyph     string `yaml:"glyph"`
	Color     string `yaml:"color"`
	HP        int    `yaml:"hp"`
	Defense   int    `yaml:"defense"`
	Power     int    `yaml:"power"`
	ViewRange int    `yaml:"view_range"`
	Weight    int    `yaml:"weight"`
	PerDepth  int    `yaml:"per_depth"` // added to Weight per dungeon level
}

// ItemTemplate describes an item or trap. Zero fields mean the component is
// not attached.
type ItemTemplate struct {
	Name           string `yaml:"name"`
	Glyph          string `yaml:"glyph"`
	Color          string `yaml:"color"`
	Weight         int    `yaml:"weight"`
	PerDepth       int    `yaml:"per_depth"`
	Consumable     bool   `yaml:"consumable"`
	Healing        int    `yaml:"healing"`
	Damage         int    `yaml:"damage"`
	Range          int    `yaml:"range"`
	Radius         int    `yaml:"radius"`
	ConfusionTurns int    `yaml:"confusion_turns"`
	Food           bool   `yaml:"food"`
	MagicMapping   bool   `yaml:"magic_mapping"`
	Equip          string `yaml:"equip"` // "melee" or "shield"
	PowerBonus     int    `yaml:"power_bonus"`
	DefenseBonus   int    `yaml:"defense_bonus"`
	MeleeKind      string `yaml:"melee_kind"` // "blunt" or "slash"
	Trap           bool   `yaml:"trap"`
}

// NameEntry is a weighted given name for monsters.
type NameEntry struct {
	Name   string `yaml:"name"`
	Weight int    `yaml:"weight"`
}

type spawnFile struct {
	Monsters []MonsterTemplate `yaml:"monsters"`
	Items    []ItemTemplate    `yaml:"items"`
	Names    []NameEntry       `yaml:"names"`
}

// SpawnTable holds all monster and item templates.
type SpawnTable struct {
	monsters []MonsterTemplate
	items    []ItemTemplate
	names    []NameEntry
	byKind   map[string]*MonsterTemplate
	byName   map[string]*ItemTemplate
}

// LoadSpawnTable loads templates from a YAML file.
func LoadSpawnTable(path string) (*SpawnTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn table: %w", err)
	}
	return ParseSpawnTable(raw)
}

// DefaultSpawnTable returns the built-in templates.
func DefaultSpawnTable() (*SpawnTable, error) {
	return ParseSpawnTable(defaultSpawns)
}

func ParseSpawnTable(raw []byte) (*SpawnTable, error) {
	var f spawnFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spawn table: %w", err)
	}
	t := &SpawnTable{
		monsters: f.Monsters,
		items:    f.Items,
		names:    f.Names,
		byKind:   make(map[string]*MonsterTemplate, len(f.Monsters)),
		byName:   make(map[string]*ItemTemplate, len(f.Items)),
	}
	for i := range t.monsters {
		m := &t.monsters[i]
		if m.Kind == "" || m.Glyph == "" {
			return nil, fmt.Errorf("parse spawn table: monster %d missing kind or glyph", i)
		}
		if _, dup := t.byKind[m.Kind]; dup {
			return nil, fmt.Errorf("parse spawn table: duplicate monster %q", m.Kind)
		}
		t.byKind[m.Kind] = m
	}
	for i := range t.items {
		it := &t.items[i]
		if it.Name == "" || it.Glyph == "" {
			return nil, fmt.Errorf("parse spawn table: item %d missing name or glyph", i)
		}
		if _, dup := t.byName[it.Name]; dup {
			return nil, fmt.Errorf("parse spawn table: duplicate item %q", it.Name)
		}
		switch it.Equip {
		case "", "melee", "shield":
		default:
			return nil, fmt.Errorf("parse spawn table: item %q has unknown slot %q", it.Name, it.Equip)
		}
		t.byName[it.Name] = it
	}
	return t, nil
}

func (t *SpawnTable) Monster(kind string) (*MonsterTemplate, bool) {
	m, ok := t.byKind[kind]
	return m, ok
}

func (t *SpawnTable) Item(name string) (*ItemTemplate, bool) {
	it, ok := t.byName[name]
	return it, ok
}

// MonsterCount returns the number of monster templates.
func (t *SpawnTable) MonsterCount() int { return len(t.monsters) }

// ItemCount returns the number of item templates.
func (t *SpawnTable) ItemCount() int { return len(t.items) }

// Monsters returns the weighted monster table for a dungeon depth.
func (t *SpawnTable) Monsters(depth int) *RandomTable {
	rt := &RandomTable{}
	for _, m := range t.monsters {
		rt.Add(m.Kind, m.Weight+m.PerDepth*depth)
	}
	return rt
}

// Items returns the weighted item and trap table for a dungeon depth.
func (t *SpawnTable) Items(depth int) *RandomTable {
	rt := &RandomTable{}
	for _, it := range t.items {
		rt.Add(it.Name, it.Weight+it.PerDepth*depth)
	}
	return rt
}

// Names returns the weighted given-name table.
func (t *SpawnTable) Names() *RandomTable {
	rt := &RandomTable{}
	for _, n := range t.names {
		rt.Add(n.Name, n.Weight)
	}
	return rt
}
