package block

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned box in block space.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Translate returns the box moved by offset.
func (b AABB) Translate(offset mgl32.Vec3) AABB {
	return AABB{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Intersects reports whether the two boxes overlap. Touching faces do not count.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X() < o.Max.X() && b.Max.X() > o.Min.X() &&
		b.Min.Y() < o.Max.Y() && b.Max.Y() > o.Min.Y() &&
		b.Min.Z() < o.Max.Z() && b.Max.Z() > o.Min.Z()
}
