package world

import (
	"math"

	"github.com/zyedidia/generic/heap"
)

const (
	CardinalCost = 1.0
	DiagonalCost = 1.45
)

// Path is an A* result. Steps are tile indices from source to destination
// inclusive and are empty when Success is false.
type Path struct {
	Success bool
	Steps   []int
	Cost    float64
}

type openNode struct {
	idx int
	f   float64
	seq int
}

var neighbourOffsets = [8]struct {
	dx, dy int
	cost   float64
}{
	{-1, 0, CardinalCost}, {1, 0, CardinalCost}, {0, -1, CardinalCost}, {0, 1, CardinalCost},
	{-1, -1, DiagonalCost}, {1, -1, DiagonalCost}, {-1, 1, DiagonalCost}, {1, 1, DiagonalCost},
}

// Exits lists the traversable neighbours of idx with their step cost.
func (m *Map) Exits(idx int, fn func(next int, cost float64)) {
	x, y := m.XY(idx)
	for _, n := range neighbourOffsets {
		nx, ny := x+n.dx, y+n.dy
		if !m.InBounds(nx, ny) {
			continue
		}
		ni := m.Index(nx, ny)
		if m.Blocked[ni] {
			continue
		}
		fn(ni, n.cost)
	}
}

// Distance is the Euclidean distance between two tiles.
func (m *Map) Distance(a, b int) float64 {
	ax, ay := m.XY(a)
	bx, by := m.XY(b)
	return math.Hypot(float64(ax-bx), float64(ay-by))
}

// AStar searches from start to end over unblocked tiles. The start tile
// itself may be blocked (the searcher usually stands on it). Blocked must be
// current.
func AStar(start, end int, m *Map) Path {
	n := m.Len()
	if start < 0 || start >= n || end < 0 || end >= n {
		return Path{}
	}
	if start == end {
		return Path{Success: true, Steps: []int{start}}
	}

	g := make([]float64, n)
	parent := make([]int, n)
	closed := make([]bool, n)
	for i := range g {
		g[i] = math.Inf(1)
		parent[i] = -1
	}
	g[start] = 0

	seq := 0
	open := heap.New(func(a, b openNode) bool {
		if a.f != b.f {
			return a.f < b.f
		}
		return a.seq < b.seq
	})
	open.Push(openNode{idx: start, f: m.Distance(start, end)})

	for open.Size() > 0 {
		cur, _ := open.Pop()
		if closed[cur.idx] {
			continue
		}
		if cur.idx == end {
			return Path{Success: true, Steps: walkBack(parent, end), Cost: g[end]}
		}
		closed[cur.idx] = true

		m.Exits(cur.idx, func(next int, cost float64) {
			if closed[next] {
				return
			}
			tentative := g[cur.idx] + cost
			if tentative >= g[next] {
				return
			}
			g[next] = tentative
			parent[next] = cur.idx
			seq++
			open.Push(openNode{idx: next, f: tentative + m.Distance(next, end), seq: seq})
		})
	}
	return Path{}
}

func walkBack(parent []int, end int) []int {
	var rev []int
	for at := end; at != -1; at = parent[at] {
		rev = append(rev, at)
	}
	steps := make([]int, len(rev))
	for i, idx := range rev {
		steps[len(rev)-1-i] = idx
	}
	return steps
}
