// Package chunks draws the world's chunk meshes: an opaque pass over every
// visible chunk followed by a blended translucent pass.
package chunks

import (
	"path/filepath"

	"github.com/go-gl/gl/v4.6-core/gl"

	"mcvox/internal/config"
	"mcvox/internal/graphics"
	renderer "mcvox/internal/graphics/renderer"
	"mcvox/internal/profiling"
	"mcvox/internal/world"
)

const (
	vertShader = "main.vert"
	fragShader = "main.frag"

	translucentAlpha = 0.7
)

// Chunks implements chunk rendering feature
type Chunks struct {
	shaderDir      string
	shader         *graphics.Shader
	visibleScratch []*world.Chunk
	wireframe      bool
}

// NewChunks creates a chunk renderable that loads its shaders from shaderDir.
func NewChunks(shaderDir string) *Chunks {
	return &Chunks{
		shaderDir:      shaderDir,
		visibleScratch: make([]*world.Chunk, 0, 256),
	}
}

// Init compiles the chunk shader.
func (c *Chunks) Init() error {
	var err error
	c.shader, err = graphics.NewShader(
		filepath.Join(c.shaderDir, vertShader),
		filepath.Join(c.shaderDir, fragShader))
	return err
}

// SetWireframe toggles line rendering.
func (c *Chunks) SetWireframe(on bool) { c.wireframe = on }

func (c *Chunks) SetViewport(width, height int) {}

// Render draws every visible chunk: opaque first with back-face culling, then
// translucent with blending. Chunks are visited in creation order; translucent
// faces are not sorted by depth.
func (c *Chunks) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderChunks")()

	if c.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	c.shader.Use()
	c.shader.SetMatrix4("proj", &ctx.Proj[0])
	c.shader.SetMatrix4("view", &ctx.View[0])

	visible := c.collectVisible(ctx)
	profiling.Count("renderer.visibleChunks", len(visible))

	func() {
		defer profiling.Track("renderer.renderChunks.opaque")()
		gl.Enable(gl.CULL_FACE)
		c.shader.SetFloat("alpha", 1)
		for _, ch := range visible {
			c.setChunkOffset(ch)
			ch.Draw()
		}
	}()

	func() {
		defer profiling.Track("renderer.renderChunks.translucent")()
		gl.Disable(gl.CULL_FACE)
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		c.shader.SetFloat("alpha", translucentAlpha)
		for _, ch := range visible {
			if ch.TranslucentQuadCount() == 0 {
				continue
			}
			c.setChunkOffset(ch)
			ch.DrawTranslucent()
		}
		gl.Disable(gl.BLEND)
		gl.Enable(gl.CULL_FACE)
	}()
}

func (c *Chunks) setChunkOffset(ch *world.Chunk) {
	ox, oy, oz := ch.Coord().Origin()
	c.shader.SetIVec3("chunkOffset", int32(ox), int32(oy), int32(oz))
}

// collectVisible keeps chunks within the render distance of the camera target
// whose bounds intersect the view frustum.
func (c *Chunks) collectVisible(ctx renderer.RenderContext) []*world.Chunk {
	defer profiling.Track("renderer.renderChunks.collectVisible")()

	view := newFrustum(ctx.Proj.Mul4(ctx.View))
	var centre world.ChunkCoord
	if ctx.Camera != nil {
		t := ctx.Camera.Target
		centre = world.ChunkPosition(int(t.X()), int(t.Y()), int(t.Z()))
	}

	c.visibleScratch = filterVisible(c.visibleScratch[:0], ctx.World.Chunks(), view, centre, config.GetRenderDistance())
	return c.visibleScratch
}

// filterVisible appends the chunks of all that have geometry, lie within
// radius chunks of centre on the ground plane and intersect view.
func filterVisible(dst, all []*world.Chunk, view frustum, centre world.ChunkCoord, radius int) []*world.Chunk {
	for _, ch := range all {
		if ch.MeshQuadCount() == 0 && ch.TranslucentQuadCount() == 0 {
			continue
		}
		coord := ch.Coord()
		dx, dz := coord.X-centre.X, coord.Z-centre.Z
		if dx*dx+dz*dz > radius*radius {
			continue
		}
		if view.intersectsChunk(coord) {
			dst = append(dst, ch)
		}
	}
	return dst
}

// Dispose frees the shader. Chunk buffers belong to the world.
func (c *Chunks) Dispose() {
	if c.shader != nil {
		c.shader.Delete()
	}
}
