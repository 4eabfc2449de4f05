// Package physics answers geometric queries against the voxel world: ray
// picking for block edits and box overlap tests for the camera.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"mcvox/internal/block"
	"mcvox/internal/profiling"
	"mcvox/internal/world"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 256.0

	stepSize = float32(0.02)
)

// unitBox is the pick volume for types without collision boxes.
var unitBox = []block.AABB{{Min: mgl32.Vec3{-0.5, -0.5, -0.5}, Max: mgl32.Vec3{0.5, 0.5, 0.5}}}

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int
	Distance         float32
	Hit              bool
}

// BlockAt rounds a point to the block whose unit cell contains it. Blocks are
// centred on integer coordinates.
func BlockAt(p mgl32.Vec3) [3]int {
	return [3]int{
		int(math.Floor(float64(p.X()) + 0.5)),
		int(math.Floor(float64(p.Y()) + 0.5)),
		int(math.Floor(float64(p.Z()) + 0.5)),
	}
}

// pickBoxes returns the boxes a ray can hit for the block at pos, or nil for air.
func pickBoxes(w *world.World, pos [3]int) []block.AABB {
	bt := w.Catalog().Type(w.BlockNumber(pos[0], pos[1], pos[2]))
	if bt == nil {
		return nil
	}
	if boxes := bt.Colliders(); len(boxes) > 0 {
		return boxes
	}
	return unitBox
}

func inside(p mgl32.Vec3, box block.AABB) bool {
	return p.X() >= box.Min.X() && p.X() <= box.Max.X() &&
		p.Y() >= box.Min.Y() && p.Y() <= box.Max.Y() &&
		p.Z() >= box.Min.Z() && p.Z() <= box.Max.Z()
}

// Raycast marches from start along direction in fixed steps and reports the
// first block whose pick boxes contain a sample point, together with the last
// empty cell before it.
func Raycast(start mgl32.Vec3, direction mgl32.Vec3, minDist, maxDist float32, w *world.World) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	if direction.Len() == 0 {
		return RaycastResult{}
	}
	direction = direction.Normalize()
	steps := int(maxDist / stepSize)

	lastEmptyPos := BlockAt(start)
	result := RaycastResult{Hit: false}

	for i := 0; i <= steps; i++ {
		dist := float32(i) * stepSize
		if dist < minDist {
			continue
		}

		pos := start.Add(direction.Mul(dist))
		blockPos := BlockAt(pos)

		centre := mgl32.Vec3{float32(blockPos[0]), float32(blockPos[1]), float32(blockPos[2])}
		for _, box := range pickBoxes(w, blockPos) {
			if inside(pos, box.Translate(centre)) {
				result.HitPosition = blockPos
				result.AdjacentPosition = lastEmptyPos
				result.Distance = dist
				result.Hit = true
				return result
			}
		}

		if w.BlockNumber(blockPos[0], blockPos[1], blockPos[2]) == block.Air {
			lastEmptyPos = blockPos
		}
	}

	return result
}
