// Package world holds the dungeon level: its tile grid, the generator that
// builds it, and the grid algorithms (pathfinding, field of view) that read it.
package world

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/l1jgo/delve/internal/core/ecs"
)

// Default level dimensions.
const (
	DefaultWidth  = 80
	DefaultHeight = 43
)

type TileType uint8

const (
	Wall TileType = iota
	Floor
	DownStairs
)

func (t TileType) String() string {
	switch t {
	case Wall:
		return "wall"
	case Floor:
		return "floor"
	case DownStairs:
		return "down_stairs"
	}
	return fmt.Sprintf("tile(%d)", uint8(t))
}

// Point is a grid coordinate.
type Point struct {
	X int `cbor:"x"`
	Y int `cbor:"y"`
}

// Map is one dungeon level. Revealed, Visible and Blocked run parallel to
// Tiles. TileContent is derived every turn by map indexing and is never
// persisted.
type Map struct {
	Tiles    []TileType
	Rooms    []Rect
	Width    int
	Height   int
	Revealed []bool
	Visible  []bool
	Blocked  []bool
	Depth    int

	Bloodstains mapset.Set[int]
	TileContent [][]ecs.EntityID
}

// NewMap returns an all-wall map.
func NewMap(width, height, depth int) *Map {
	if width < 3 || height < 3 {
		panic(fmt.Sprintf("world: map %dx%d too small", width, height))
	}
	n := width * height
	m := &Map{
		Tiles:       make([]TileType, n),
		Width:       width,
		Height:      height,
		Revealed:    make([]bool, n),
		Visible:     make([]bool, n),
		Blocked:     make([]bool, n),
		Depth:       depth,
		Bloodstains: mapset.New[int](),
		TileContent: make([][]ecs.EntityID, n),
	}
	for i := range m.Tiles {
		m.Tiles[i] = Wall
	}
	return m
}

// Len returns the number of tiles.
func (m *Map) Len() int { return len(m.Tiles) }

func (m *Map) Index(x, y int) int {
	return y*m.Width + x
}

func (m *Map) XY(idx int) (int, int) {
	return idx % m.Width, idx / m.Width
}

func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// IsOpaque reports whether the tile blocks line of sight.
func (m *Map) IsOpaque(idx int) bool {
	return m.Tiles[idx] == Wall
}

// PopulateBlocked resets Blocked to the terrain-only value.
func (m *Map) PopulateBlocked() {
	for i, t := range m.Tiles {
		m.Blocked[i] = t == Wall
	}
}

// ClearContentIndex empties every tile's occupant list, keeping capacity.
func (m *Map) ClearContentIndex() {
	if len(m.TileContent) != len(m.Tiles) {
		m.TileContent = make([][]ecs.EntityID, len(m.Tiles))
		return
	}
	for i := range m.TileContent {
		m.TileContent[i] = m.TileContent[i][:0]
	}
}

// Occupants returns the entities indexed at (x, y) on the last indexing pass.
func (m *Map) Occupants(x, y int) []ecs.EntityID {
	if !m.InBounds(x, y) {
		return nil
	}
	return m.TileContent[m.Index(x, y)]
}

// Stain marks a tile with a blood stain.
func (m *Map) Stain(idx int) {
	m.Bloodstains.Put(idx)
}

// Stains returns the stained tile indices in ascending order.
func (m *Map) Stains() []int {
	out := make([]int, 0, m.Bloodstains.Size())
	m.Bloodstains.Each(func(idx int) { out = append(out, idx) })
	sort.Ints(out)
	return out
}

// ClearVisible hides every tile.
func (m *Map) ClearVisible() {
	for i := range m.Visible {
		m.Visible[i] = false
	}
}

// RevealRow marks an entire row as revealed. Used by the magic-map reveal.
func (m *Map) RevealRow(y int) {
	if y < 0 || y >= m.Height {
		return
	}
	for x := 0; x < m.Width; x++ {
		m.Revealed[m.Index(x, y)] = true
	}
}

// StairsAt reports whether (x, y) is a down staircase.
func (m *Map) StairsAt(x, y int) bool {
	return m.InBounds(x, y) && m.Tiles[m.Index(x, y)] == DownStairs
}
