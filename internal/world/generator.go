package world

import "github.com/l1jgo/delve/internal/core/rng"

const (
	MaxRoomAttempts = 30
	MinRoomSize     = 6
	MaxRoomSize     = 10
)

// Generate builds a rooms-and-corridors level. Every random choice comes from
// r, so the same stream yields the same map.
func Generate(depth, width, height int, r *rng.RNG) *Map {
	m := NewMap(width, height, depth)

	for i := 0; i < MaxRoomAttempts; i++ {
		w := r.Range(MinRoomSize, MaxRoomSize+1)
		h := r.Range(MinRoomSize, MaxRoomSize+1)
		if w+2 > width || h+2 > height {
			continue
		}
		x := r.Roll(1, width-w-1) - 1
		y := r.Roll(1, height-h-1) - 1
		room := NewRect(x, y, w, h)

		ok := true
		for _, other := range m.Rooms {
			if room.Intersect(other) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		m.carveRoom(room)
		if len(m.Rooms) > 0 {
			newX, newY := room.Center()
			prevX, prevY := m.Rooms[len(m.Rooms)-1].Center()
			if r.Range(0, 2) == 1 {
				m.carveHorizontal(prevX, newX, prevY)
				m.carveVertical(prevY, newY, newX)
			} else {
				m.carveVertical(prevY, newY, prevX)
				m.carveHorizontal(prevX, newX, newY)
			}
		}
		m.Rooms = append(m.Rooms, room)
	}

	if len(m.Rooms) > 0 {
		sx, sy := m.Rooms[len(m.Rooms)-1].Center()
		m.Tiles[m.Index(sx, sy)] = DownStairs
	}
	m.PopulateBlocked()
	return m
}

func (m *Map) carveRoom(room Rect) {
	for y := room.Y1 + 1; y <= room.Y2; y++ {
		for x := room.X1 + 1; x <= room.X2; x++ {
			m.Tiles[m.Index(x, y)] = Floor
		}
	}
}

func (m *Map) carveHorizontal(x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		if m.InBounds(x, y) {
			m.Tiles[m.Index(x, y)] = Floor
		}
	}
}

func (m *Map) carveVertical(y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		if m.InBounds(x, y) {
			m.Tiles[m.Index(x, y)] = Floor
		}
	}
}
