// Package renderer drives the per-frame draw of the viewer's renderables.
package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"mcvox/internal/graphics"
	"mcvox/internal/world"
)

// RenderContext is the per-frame state handed to every renderable.
type RenderContext struct {
	Camera *graphics.Camera
	World  *world.World
	DT     float64
	View   mgl32.Mat4
	Proj   mgl32.Mat4
}

// Renderable is one draw feature. Init and Dispose bracket its GL objects;
// all four methods run on the thread that owns the context.
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}
