package world

// Rect is a room's bounding box. The carved interior is (X1, X2] × (Y1, Y2].
type Rect struct {
	X1 int `cbor:"x1"`
	Y1 int `cbor:"y1"`
	X2 int `cbor:"x2"`
	Y2 int `cbor:"y2"`
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Intersect is a plain AABB overlap test; touching edges count as overlap.
func (r Rect) Intersect(o Rect) bool {
	return r.X1 <= o.X2 && r.X2 >= o.X1 && r.Y1 <= o.Y2 && r.Y2 >= o.Y1
}

func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Contains reports whether (x, y) lies in the carved interior.
func (r Rect) Contains(x, y int) bool {
	return x > r.X1 && x <= r.X2 && y > r.Y1 && y <= r.Y2
}
