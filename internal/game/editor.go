package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"mcvox/internal/block"
	"mcvox/internal/logger"
	"mcvox/internal/physics"
	"mcvox/internal/world"
)

// eyeHalfExtent sizes the box around the camera that placement must not overlap.
const eyeHalfExtent = 0.3

// Editor places and removes the block the camera looks at.
type Editor struct {
	world    *world.World
	palette  []block.ID
	selected int
}

// NewEditor collects every catalog type into the placement palette.
func NewEditor(w *world.World) *Editor {
	e := &Editor{world: w}
	cat := w.Catalog()
	for id := 1; id < cat.Len(); id++ {
		if cat.Type(block.ID(id)) != nil {
			e.palette = append(e.palette, block.ID(id))
		}
	}
	return e
}

// Selected returns the id that Place writes, or air for an empty catalog.
func (e *Editor) Selected() block.ID {
	if len(e.palette) == 0 {
		return block.Air
	}
	return e.palette[e.selected]
}

// Next cycles the palette.
func (e *Editor) Next() {
	if len(e.palette) == 0 {
		return
	}
	e.selected = (e.selected + 1) % len(e.palette)
	if t := e.world.Catalog().Type(e.Selected()); t != nil {
		logger.Info("selected block", zap.String("name", t.Name), zap.Uint16("id", uint16(t.ID)))
	}
}

// Pick returns the first block hit by the ray from eye through target.
func (e *Editor) Pick(eye, target mgl32.Vec3) physics.RaycastResult {
	return physics.Raycast(eye, target.Sub(eye), physics.MinReachDistance, physics.MaxReachDistance, e.world)
}

// Place puts the selected block in the empty cell in front of the first block
// hit by the ray from eye through target. It fails on a miss or when the new
// block would intersect the camera.
func (e *Editor) Place(eye, target mgl32.Vec3) bool {
	id := e.Selected()
	if id == block.Air {
		return false
	}
	hit := e.Pick(eye, target)
	if !hit.Hit {
		return false
	}
	p := hit.AdjacentPosition
	if p[1] < 0 || p[1] >= world.ChunkSizeY {
		return false
	}
	half := mgl32.Vec3{eyeHalfExtent, eyeHalfExtent, eyeHalfExtent}
	collider := block.AABB{Min: eye.Sub(half), Max: eye.Add(half)}
	return e.world.TrySetBlock(p[0], p[1], p[2], id, collider)
}

// Remove clears the first block hit by the ray from eye through target.
func (e *Editor) Remove(eye, target mgl32.Vec3) bool {
	hit := e.Pick(eye, target)
	if !hit.Hit {
		return false
	}
	p := hit.HitPosition
	return e.world.TrySetBlock(p[0], p[1], p[2], block.Air, block.AABB{})
}
