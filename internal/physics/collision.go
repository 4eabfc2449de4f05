package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"mcvox/internal/block"
	"mcvox/internal/world"
)

// Collides reports whether box overlaps the collision boxes of any block.
func Collides(box block.AABB, w *world.World) bool {
	lo := BlockAt(box.Min)
	hi := BlockAt(box.Max)

	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				bt := w.Catalog().Type(w.BlockNumber(x, y, z))
				if bt == nil {
					continue
				}
				centre := mgl32.Vec3{float32(x), float32(y), float32(z)}
				for _, c := range bt.Colliders() {
					if c.Translate(centre).Intersects(box) {
						return true
					}
				}
			}
		}
	}
	return false
}

// FindGroundLevel returns the y of the highest non-air block in the column
// containing (x, z), searching down from the top of the chunk.
func FindGroundLevel(x, z float32, w *world.World) (int, bool) {
	bx := int(math.Floor(float64(x) + 0.5))
	bz := int(math.Floor(float64(z) + 0.5))
	for y := world.ChunkSizeY - 1; y >= 0; y-- {
		if w.BlockNumber(bx, y, bz) != block.Air {
			return y, true
		}
	}
	return 0, false
}
