package world

import "github.com/zyedidia/generic/mapset"

// fraction is an exact rational slope; den is always positive.
type fraction struct{ num, den int }

func (f fraction) mulInt(n int) fraction { return fraction{f.num * n, f.den} }

// quadrant transforms (depth, col) into map coordinates for one cardinal
// direction around the origin.
type quadrant struct {
	cardinal int
	ox, oy   int
}

func (q quadrant) transform(depth, col int) (int, int) {
	switch q.cardinal {
	case 0: // north
		return q.ox + col, q.oy - depth
	case 1: // south
		return q.ox + col, q.oy + depth
	case 2: // east
		return q.ox + depth, q.oy + col
	default: // west
		return q.ox - depth, q.oy + col
	}
}

type fovRow struct {
	depth      int
	start, end fraction
}

// floor(n/d + 1/2) for d > 0.
func roundTiesUp(n, d int) int { return floorDiv(2*n+d, 2*d) }

// ceil(n/d - 1/2) for d > 0.
func roundTiesDown(n, d int) int { return -floorDiv(-(2*n - d), 2*d) }

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (r fovRow) cols() (int, int) {
	lo := r.start.mulInt(r.depth)
	hi := r.end.mulInt(r.depth)
	return roundTiesUp(lo.num, lo.den), roundTiesDown(hi.num, hi.den)
}

// symmetric reports whether col lies within the row's slopes; floor tiles
// outside this range are seen only from one side and are skipped.
func (r fovRow) symmetric(col int) bool {
	return col*r.start.den >= r.depth*r.start.num && col*r.end.den <= r.depth*r.end.num
}

func tileSlope(depth, col int) fraction {
	return fraction{2*col - 1, 2 * depth}
}

// FieldOfView returns the tiles visible from origin within radius using
// symmetric shadowcasting. Tiles outside the map count as opaque and are
// never returned. The result order is deterministic.
func FieldOfView(origin Point, radius int, m *Map) []Point {
	seen := mapset.New[int]()
	var out []Point
	mark := func(x, y int) {
		if !m.InBounds(x, y) {
			return
		}
		dx, dy := x-origin.X, y-origin.Y
		if dx*dx+dy*dy > radius*radius {
			return
		}
		idx := m.Index(x, y)
		if seen.Has(idx) {
			return
		}
		seen.Put(idx)
		out = append(out, Point{x, y})
	}
	opaque := func(x, y int) bool {
		if !m.InBounds(x, y) {
			return true
		}
		return m.IsOpaque(m.Index(x, y))
	}

	mark(origin.X, origin.Y)
	if radius <= 0 {
		return out
	}

	for c := 0; c < 4; c++ {
		q := quadrant{cardinal: c, ox: origin.X, oy: origin.Y}
		rows := []fovRow{{depth: 1, start: fraction{-1, 1}, end: fraction{1, 1}}}
		for len(rows) > 0 {
			row := rows[len(rows)-1]
			rows = rows[:len(rows)-1]
			if row.depth > radius {
				continue
			}

			lo, hi := row.cols()
			prevWall, havePrev := false, false
			for col := lo; col <= hi; col++ {
				x, y := q.transform(row.depth, col)
				wall := opaque(x, y)
				if wall || row.symmetric(col) {
					mark(x, y)
				}
				if havePrev && prevWall && !wall {
					row.start = tileSlope(row.depth, col)
				}
				if havePrev && !prevWall && wall {
					next := fovRow{depth: row.depth + 1, start: row.start, end: tileSlope(row.depth, col)}
					rows = append(rows, next)
				}
				prevWall, havePrev = wall, true
			}
			if havePrev && !prevWall {
				rows = append(rows, fovRow{depth: row.depth + 1, start: row.start, end: row.end})
			}
		}
	}
	return out
}
