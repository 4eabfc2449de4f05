package chunks

import (
	"github.com/go-gl/mathgl/mgl32"

	"mcvox/internal/world"
)

// chunkMargin pads chunk bounds, in blocks, before the frustum test.
const chunkMargin = 1.0

// frustum is one frame's view volume: six planes with inward normals in xyz
// and the offset in w, ordered left, right, bottom, top, near, far.
type frustum [6]mgl32.Vec4

// newFrustum extracts the planes of clip = proj * view from its rows.
func newFrustum(clip mgl32.Mat4) frustum {
	r0, r1, r2, r3 := clip.Row(0), clip.Row(1), clip.Row(2), clip.Row(3)
	f := frustum{
		r3.Add(r0), r3.Sub(r0),
		r3.Add(r1), r3.Sub(r1),
		r3.Add(r2), r3.Sub(r2),
	}
	for i, p := range f {
		if n := p.Vec3().Len(); n > 0 {
			f[i] = p.Mul(1 / n)
		}
	}
	return f
}

// intersectsBox reports whether [lo, hi] may overlap the view volume. Only the
// corner furthest along each plane normal is tested, so boxes near a frustum
// edge can pass while fully outside.
func (f frustum) intersectsBox(lo, hi mgl32.Vec3) bool {
	for _, p := range f {
		corner := hi
		for axis := 0; axis < 3; axis++ {
			if p[axis] < 0 {
				corner[axis] = lo[axis]
			}
		}
		if p.Vec3().Dot(corner)+p[3] < 0 {
			return false
		}
	}
	return true
}

// intersectsChunk tests the padded block bounds of the chunk at coord.
func (f frustum) intersectsChunk(coord world.ChunkCoord) bool {
	lo, hi := coord.Bounds()
	pad := mgl32.Vec3{chunkMargin, chunkMargin, chunkMargin}
	return f.intersectsBox(lo.Sub(pad), hi.Add(pad))
}
